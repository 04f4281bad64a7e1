package admin

import (
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/zenibot/zeni/zeni"
	"github.com/zenibot/zeni/zeni/config"
	"github.com/zenibot/zeni/zeni/ledger"
	"github.com/zenibot/zeni/zeni/utils"
)

var Issue = discord.SlashCommandCreate{
	Name:        "issue",
	Description: "🏦 Issue Zeni to a user (admin)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Who receives the Zeni",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "How much to issue",
			Required:    true,
			MinValue:    utils.Ptr(1),
		},
		discord.ApplicationCommandOptionString{
			Name:        "reason",
			Description: "Why the Zeni is issued",
			Required:    false,
		},
	},
}

func IssueHandler(b *zeni.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsAdmin(e.User().ID) {
			return utils.EH.CreatePermissionError(e)
		}

		data := e.SlashCommandInteractionData()
		target := data.User("user")
		amount := int64(data.Int("amount"))
		reason, _ := data.OptString("reason")

		if target.Bot {
			return utils.EH.CreateErrorEmbed(e, "Bots can't hold Zeni.")
		}

		newBalance := b.Ledger.ApplyDelta(target.ID.String(), amount, ledger.KindAdminIssue)

		description := fmt.Sprintf("Issued %s to %s\nNew balance: %s",
			utils.FormatZ(amount), target.Mention(), utils.FormatZ(newBalance))
		if reason != "" {
			description += "\nReason: " + reason
		}

		now := time.Now()
		b.Audit.Send(discord.Embed{
			Title:       "🏦 Zeni issued",
			Description: fmt.Sprintf("%s issued %s to %s", e.User().Mention(), utils.FormatZ(amount), target.Mention()),
			Color:       config.SuccessColor,
			Timestamp:   &now,
		})

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🏦 Zeni issued",
				Description: description,
				Color:       config.SuccessColor,
				Timestamp:   &now,
			}},
		})
	}
}
