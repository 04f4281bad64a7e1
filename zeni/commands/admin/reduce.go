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

var Reduce = discord.SlashCommandCreate{
	Name:        "reduce",
	Description: "🏦 Deduct Zeni from a user (admin)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Whose balance to reduce",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "How much to deduct",
			Required:    true,
			MinValue:    utils.Ptr(1),
		},
		discord.ApplicationCommandOptionString{
			Name:        "reason",
			Description: "Why the Zeni is deducted",
			Required:    false,
		},
	},
}

func ReduceHandler(b *zeni.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsAdmin(e.User().ID) {
			return utils.EH.CreatePermissionError(e)
		}

		data := e.SlashCommandInteractionData()
		target := data.User("user")
		amount := int64(data.Int("amount"))
		reason, _ := data.OptString("reason")

		acct := b.Ledger.GetOrCreate(target.ID.String())
		if acct.Balance < amount {
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf(
				"%s only holds %s, can't deduct %s.",
				target.Mention(), utils.FormatZ(acct.Balance), utils.FormatZ(amount)))
		}

		newBalance := b.Ledger.ApplyDelta(target.ID.String(), -amount, ledger.KindAdminReduce)

		description := fmt.Sprintf("Deducted %s from %s\nNew balance: %s",
			utils.FormatZ(amount), target.Mention(), utils.FormatZ(newBalance))
		if reason != "" {
			description += "\nReason: " + reason
		}

		now := time.Now()
		b.Audit.Send(discord.Embed{
			Title:       "🏦 Zeni deducted",
			Description: fmt.Sprintf("%s deducted %s from %s", e.User().Mention(), utils.FormatZ(amount), target.Mention()),
			Color:       config.WarningColor,
			Timestamp:   &now,
		})

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🏦 Zeni deducted",
				Description: description,
				Color:       config.WarningColor,
				Timestamp:   &now,
			}},
		})
	}
}
