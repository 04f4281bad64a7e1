package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/zenibot/zeni/zeni"
	"github.com/zenibot/zeni/zeni/chinchiro"
	"github.com/zenibot/zeni/zeni/commands"
	"github.com/zenibot/zeni/zeni/commands/admin"
	"github.com/zenibot/zeni/zeni/commands/economy"
	"github.com/zenibot/zeni/zeni/commands/system"
	"github.com/zenibot/zeni/zeni/handlers"
	"github.com/zenibot/zeni/zeni/ledger"
	"github.com/zenibot/zeni/zeni/logger"
	"github.com/zenibot/zeni/zeni/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(slog.LevelInfo)))

	slog.Info("Starting Zeni Discord Bot",
		slog.String("version", version),
		slog.String("commit", commit))

	// .env is how the bot was historically deployed; missing file is fine.
	if err := godotenv.Load(); err == nil {
		slog.Info("Loaded environment overrides from .env")
	}

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := zeni.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))
	slog.Info("Configuration loaded successfully")

	store := ledger.NewStore(cfg.Ledger.Path, cfg.Ledger.StartEmptyOnCorrupt)
	ledgerService, err := ledger.NewService(store, cfg.Ledger.InitialBalance)
	if err != nil {
		slog.Error("Failed to load ledger",
			slog.String("type", "store"),
			slog.String("path", cfg.Ledger.Path),
			slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Ledger loaded",
		slog.String("type", "store"),
		slog.String("path", cfg.Ledger.Path))

	b := zeni.New(*cfg, version, commit)
	b.Ledger = ledgerService
	b.Dice = chinchiro.NewManager(ledgerService,
		time.Duration(cfg.Dice.SelectionTimeoutSec)*time.Second)
	b.Audit = services.NewAuditLog(cfg.Bot.LogChannelID)

	h := handler.New()

	// Economy commands
	h.Command("/balance", handlers.WrapWithLogging("balance", economy.BalanceHandler(b)))
	h.Command("/send", handlers.WrapWithLogging("send", economy.SendHandler(b)))
	h.Command("/leaderboard", handlers.WrapWithLogging("leaderboard", economy.LeaderboardHandler(b)))
	h.Command("/dice", handlers.WrapWithLogging("dice", economy.DiceHandler(b)))
	h.Component("/dice/", handlers.WrapComponentWithLogging("dice", economy.DiceComponentHandler(b)))

	// Admin commands
	h.Command("/issue", handlers.WrapWithLogging("issue", admin.IssueHandler(b)))
	h.Command("/reduce", handlers.WrapWithLogging("reduce", admin.ReduceHandler(b)))
	h.Command("/role-issue", handlers.WrapWithLogging("role-issue", admin.RoleIssueHandler(b)))

	// System commands
	h.Command("/help", handlers.WrapWithLogging("help", system.HelpHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
		)
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("error_details", fmt.Sprintf("%+v", err)),
			)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
		)
		os.Exit(-1)
	}

	// Background loops: periodic ledger flush and stale session cleanup.
	loopCtx, loopCancel := context.WithCancel(context.Background())
	g, loopCtx := errgroup.WithContext(loopCtx)
	g.Go(func() error {
		return ledgerService.AutoSave(loopCtx,
			time.Duration(cfg.Ledger.AutosaveMinutes)*time.Minute)
	})
	g.Go(func() error {
		return b.Dice.CleanupLoop(loopCtx)
	})

	slog.Info("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...")

	loopCancel()
	if err = g.Wait(); err != nil {
		slog.Error("Background loop exited with error", slog.Any("error", err))
	}
	if err = ledgerService.Flush(); err != nil {
		slog.Error("Final ledger flush failed",
			slog.String("type", "store"),
			slog.Any("error", err))
	} else {
		slog.Info("Ledger flushed",
			slog.String("type", "store"),
			slog.String("path", cfg.Ledger.Path))
	}
}
