package economy

import (
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/zenibot/zeni/zeni"
	"github.com/zenibot/zeni/zeni/config"
	"github.com/zenibot/zeni/zeni/ledger"
	"github.com/zenibot/zeni/zeni/utils"
)

var Send = discord.SlashCommandCreate{
	Name:        "send",
	Description: "💸 Send Zeni to another user",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Who receives the Zeni",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "How much to send",
			Required:    true,
			MinValue:    utils.Ptr(1),
		},
	},
}

func SendHandler(b *zeni.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()
		target := data.User("user")
		amount := int64(data.Int("amount"))

		if target.Bot {
			return utils.EH.CreateErrorEmbed(e, "Bots can't hold Zeni.")
		}
		if target.ID == e.User().ID {
			return utils.EH.CreateErrorEmbed(e, "You can't send Zeni to yourself.")
		}

		fromBalance, _, err := b.Ledger.Transfer(e.User().ID.String(), target.ID.String(), amount)
		if err != nil {
			if errors.Is(err, ledger.ErrInsufficientFunds) {
				acct := b.Ledger.GetOrCreate(e.User().ID.String())
				return utils.EH.CreateErrorEmbed(e, fmt.Sprintf(
					"You don't have enough Zeni. Your balance is %s.", utils.FormatZ(acct.Balance)))
			}
			return err
		}

		now := time.Now()
		b.Audit.Send(discord.Embed{
			Title: "💸 Transfer",
			Description: fmt.Sprintf("%s sent %s to %s",
				e.User().Mention(), utils.FormatZ(amount), target.Mention()),
			Color:     config.InfoColor,
			Timestamp: &now,
		})

		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf(
			"💸 Sent %s to %s\nYour new balance: %s",
			utils.FormatZ(amount), target.Mention(), utils.FormatZ(fromBalance)))
	}
}
