package services

import (
	"log/slog"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// AuditLog mirrors every administrative or money-moving action into a
// configured log channel so moderators can review the economy. A zero channel
// id disables it; delivery failures are logged and swallowed.
type AuditLog struct {
	client    bot.Client
	channelID snowflake.ID
}

func NewAuditLog(channelID snowflake.ID) *AuditLog {
	return &AuditLog{channelID: channelID}
}

func (a *AuditLog) SetClient(client bot.Client) {
	a.client = client
}

func (a *AuditLog) Enabled() bool {
	return a.client != nil && a.channelID != 0
}

func (a *AuditLog) Send(embed discord.Embed) {
	if !a.Enabled() {
		slog.Debug("Audit log disabled, dropping entry",
			slog.String("title", embed.Title))
		return
	}
	if _, err := a.client.Rest().CreateMessage(a.channelID, discord.MessageCreate{
		Embeds: []discord.Embed{embed},
	}); err != nil {
		slog.Error("Failed to deliver audit log entry",
			slog.String("title", embed.Title),
			slog.Any("error", err))
	}
}
