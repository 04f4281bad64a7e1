package zeni

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/disgoorg/snowflake/v2"

	"github.com/zenibot/zeni/zeni/chinchiro"
	"github.com/zenibot/zeni/zeni/config"
	"github.com/zenibot/zeni/zeni/ledger"
	"github.com/zenibot/zeni/zeni/services"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string
	Ledger    *ledger.Service
	Dice      *chinchiro.Manager
	Audit     *services.AuditLog
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	b.Audit.SetClient(client)
	return nil
}

// IsAdmin reports whether the user is in the configured administrator list.
func (b *Bot) IsAdmin(id snowflake.ID) bool {
	for _, adminID := range b.Cfg.Bot.AdminIDs {
		if adminID == id {
			return true
		}
	}
	return false
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Zeni bot is now ready",
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithListeningActivity("the dice hit the felt"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}

	now := time.Now()
	b.Audit.Send(discord.Embed{
		Title:       "🤖 Bot started",
		Description: "Zeni currency bot is up and serving commands",
		Color:       config.SuccessColor,
		Timestamp:   &now,
	})
}
