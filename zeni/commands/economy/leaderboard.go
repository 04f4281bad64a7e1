package economy

import (
	"fmt"
	"math"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/disgoorg/snowflake/v2"

	"github.com/zenibot/zeni/zeni"
	"github.com/zenibot/zeni/zeni/config"
	"github.com/zenibot/zeni/zeni/utils"
)

var Leaderboard = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "🏆 The richest Zeni holders",
}

var medals = [3]string{"🥇", "🥈", "🥉"}

func LeaderboardHandler(b *zeni.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		accounts := b.Ledger.TopAccounts(config.LeaderboardSize)
		if len(accounts) == 0 {
			return utils.EH.CreateErrorEmbed(e, "Nobody holds any Zeni yet.")
		}

		totalPages := int(math.Ceil(float64(len(accounts)) / float64(config.AccountsPerPage)))

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				startIdx := page * config.AccountsPerPage
				endIdx := min(startIdx+config.AccountsPerPage, len(accounts))

				var description strings.Builder
				for i, acct := range accounts[startIdx:endIdx] {
					rank := startIdx + i
					prefix := fmt.Sprintf("`#%d`", rank+1)
					if rank < len(medals) {
						prefix = medals[rank]
					}

					mention := acct.ID
					if id, err := snowflake.Parse(acct.ID); err == nil {
						mention = discord.UserMention(id)
					}
					description.WriteString(fmt.Sprintf("%s %s — **%s**\n",
						prefix, mention, utils.FormatZ(acct.Balance)))
				}

				embed.
					SetTitle("🏆 Zeni Leaderboard").
					SetDescription(description.String()).
					SetColor(config.GoldColor).
					SetFooter(fmt.Sprintf("Page %d/%d", page+1, totalPages), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}
