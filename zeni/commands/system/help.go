package system

import (
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/zenibot/zeni/zeni"
	"github.com/zenibot/zeni/zeni/config"
)

var Help = discord.SlashCommandCreate{
	Name:        "help",
	Description: "📖 How the Zeni economy and the dice duel work",
}

func HelpHandler(b *zeni.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		fields := []discord.EmbedField{
			{
				Name: "💰 Economy",
				Value: "`/balance` — view your balance and earnings\n" +
					"`/send` — send Zeni to another user\n" +
					"`/leaderboard` — the richest Zeni holders",
			},
			{
				Name: "🎲 Dice duel",
				Value: "`/dice` — stake Zeni on a chinchiro duel against the house.\n" +
					"Each side throws three dice, up to three times, stopping on the " +
					"first scoring hand. Best hand wins the stake.",
			},
			{
				Name: "🎲 Payouts",
				Value: "```\n" +
					"1-1-1 (Triple Ones)  win 5x\n" +
					"4-5-6 straight       win 2x\n" +
					"Any other triple     win 3x\n" +
					"Pair + point die     win 1x (higher point wins)\n" +
					"1-2-3 straight       lose 2x\n" +
					"No hand              lose vs any point\n" +
					"```",
			},
		}

		if b.IsAdmin(e.User().ID) {
			fields = append(fields, discord.EmbedField{
				Name: "🏦 Administration",
				Value: "`/issue` — issue Zeni to a user\n" +
					"`/reduce` — deduct Zeni from a user\n" +
					"`/role-issue` — issue Zeni to every member of a role\n" +
					"`/balance user:` — view another user's balance",
			})
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:     "📖 Zeni Bot",
				Fields:    fields,
				Color:     config.InfoColor,
				Timestamp: &now,
			}},
			Flags: discord.MessageFlagEphemeral,
		})
	}
}
