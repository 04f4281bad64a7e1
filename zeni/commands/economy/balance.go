package economy

import (
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/zenibot/zeni/zeni"
	"github.com/zenibot/zeni/zeni/config"
	"github.com/zenibot/zeni/zeni/utils"
)

var Balance = discord.SlashCommandCreate{
	Name:        "balance",
	Description: "💰 View your current Zeni balance and earnings",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "View another user's balance (admins only)",
			Required:    false,
		},
	},
}

func BalanceHandler(b *zeni.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		target := e.User()
		if other, ok := e.SlashCommandInteractionData().OptUser("user"); ok && other.ID != e.User().ID {
			if !b.IsAdmin(e.User().ID) {
				return utils.EH.CreateErrorEmbed(e, "Only administrators can view other users' balances.")
			}
			target = other
		}

		acct := b.Ledger.GetOrCreate(target.ID.String())

		description := fmt.Sprintf("```ansi\n"+
			"\x1b[1;36mBalance:\x1b[0m %s\n"+
			"\x1b[0;37m%s\x1b[0m\n"+
			"\n"+
			"\x1b[1;32mTotal earned:\x1b[0m %s\n"+
			"\x1b[1;31mTotal spent:\x1b[0m  %s\n"+
			"```",
			utils.FormatZ(acct.Balance),
			createBalanceBar(acct.Balance),
			utils.FormatZ(acct.TotalEarned),
			utils.FormatZ(acct.TotalSpent),
		)

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("💰 %s's Balance", target.EffectiveName()),
				Description: description,
				Color:       config.InfoColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Account since %s", acct.CreatedAt.Format("2006-01-02")),
				},
				Timestamp: &now,
			}},
		})
	}
}

func createBalanceBar(balance int64) string {
	const barLength = 10

	var milestone int64 = 1000000
	if balance < 100000 {
		milestone = 100000
	} else if balance < 500000 {
		milestone = 500000
	}

	progress := float64(balance) / float64(milestone)
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0 {
		progress = 0
	}
	filled := int(progress * float64(barLength))

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < barLength; i++ {
		if i < filled {
			bar.WriteString("■")
		} else {
			bar.WriteString("□")
		}
	}
	bar.WriteString(fmt.Sprintf("] %.1f%%", progress*100))

	return bar.String()
}
