package zeni

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return &cfg, nil
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	Bot    BotConfig    `toml:"bot"`
	Ledger LedgerConfig `toml:"ledger"`
	Dice   DiceConfig   `toml:"dice"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type BotConfig struct {
	Token        string         `toml:"token"`
	DevGuilds    []snowflake.ID `toml:"dev_guilds"`
	AdminIDs     []snowflake.ID `toml:"admin_ids"`
	LogChannelID snowflake.ID   `toml:"log_channel_id"`
}

type LedgerConfig struct {
	Path                string `toml:"path"`
	InitialBalance      int64  `toml:"initial_balance"`
	AutosaveMinutes     int    `toml:"autosave_minutes"`
	StartEmptyOnCorrupt bool   `toml:"start_empty_on_corrupt"`
}

type DiceConfig struct {
	Stakes              []int64 `toml:"stakes"`
	SelectionTimeoutSec int     `toml:"selection_timeout_sec"`
	RollDelayMS         int     `toml:"roll_delay_ms"`
}

func (c *Config) applyDefaults() {
	if c.Ledger.Path == "" {
		c.Ledger.Path = "zeni_ledger.json"
	}
	if c.Ledger.AutosaveMinutes <= 0 {
		c.Ledger.AutosaveMinutes = 5
	}
	if len(c.Dice.Stakes) == 0 {
		c.Dice.Stakes = []int64{1000, 5000, 10000}
	}
	if c.Dice.SelectionTimeoutSec <= 0 {
		c.Dice.SelectionTimeoutSec = 60
	}
	if c.Dice.RollDelayMS <= 0 {
		c.Dice.RollDelayMS = 2000
	}
}

// applyEnvOverrides lets a .env / environment deployment override the file,
// matching how the bot was historically configured.
func (c *Config) applyEnvOverrides() {
	if token := os.Getenv("BOT_TOKEN"); token != "" {
		c.Bot.Token = token
	}
	if raw := os.Getenv("ADMIN_USER_IDS"); raw != "" {
		var ids []snowflake.ID
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := snowflake.Parse(part)
			if err != nil {
				slog.Warn("Ignoring malformed admin id from environment",
					slog.String("value", part))
				continue
			}
			ids = append(ids, id)
		}
		if len(ids) > 0 {
			c.Bot.AdminIDs = ids
		}
	}
	if raw := os.Getenv("LOG_CHANNEL_ID"); raw != "" {
		if id, err := snowflake.Parse(raw); err == nil {
			c.Bot.LogChannelID = id
		} else {
			slog.Warn("Ignoring malformed log channel id from environment",
				slog.String("value", raw))
		}
	}
}
