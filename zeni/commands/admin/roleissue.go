package admin

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"

	"github.com/zenibot/zeni/zeni"
	"github.com/zenibot/zeni/zeni/config"
	"github.com/zenibot/zeni/zeni/ledger"
	"github.com/zenibot/zeni/zeni/utils"
)

var RoleIssue = discord.SlashCommandCreate{
	Name:        "role-issue",
	Description: "🏦 Issue Zeni to every member of a role (admin)",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionRole{
			Name:        "role",
			Description: "Every member of this role receives the Zeni",
			Required:    true,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "amount",
			Description: "How much each member receives",
			Required:    true,
			MinValue:    utils.Ptr(1),
		},
	},
}

func RoleIssueHandler(b *zeni.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsAdmin(e.User().ID) {
			return utils.EH.CreatePermissionError(e)
		}
		if e.GuildID() == nil {
			return utils.EH.CreateErrorEmbed(e, "This command only works in a server.")
		}

		data := e.SlashCommandInteractionData()
		role := data.Role("role")
		amount := int64(data.Int("amount"))

		// Listing members pages through the REST API, so answer late.
		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		ids, err := collectRoleMemberIDs(b, *e.GuildID(), role.ID)
		if err != nil {
			slog.Error("Failed to list role members",
				slog.String("type", "cmd"),
				slog.String("role_id", role.ID.String()),
				slog.Any("error", err))
			_, uerr := e.UpdateInteractionResponse(discord.MessageUpdate{
				Embeds: &[]discord.Embed{{
					Description: "❌ Failed to list the role's members. Please try again later.",
					Color:       config.ErrorColor,
				}},
			})
			return uerr
		}
		if len(ids) == 0 {
			_, uerr := e.UpdateInteractionResponse(discord.MessageUpdate{
				Embeds: &[]discord.Embed{{
					Description: fmt.Sprintf("❌ No members hold %s.", role.Mention()),
					Color:       config.ErrorColor,
				}},
			})
			return uerr
		}

		credited := b.Ledger.ApplyDeltaBulk(ids, amount, ledger.KindRoleIssue)

		now := time.Now()
		b.Audit.Send(discord.Embed{
			Title: "🏦 Role-wide issue",
			Description: fmt.Sprintf("%s issued %s to %d members of %s",
				e.User().Mention(), utils.FormatZ(amount), credited, role.Mention()),
			Color:     config.SuccessColor,
			Timestamp: &now,
		})

		_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{{
				Title: "🏦 Role-wide issue",
				Description: fmt.Sprintf("Issued %s to **%d** members of %s",
					utils.FormatZ(amount), credited, role.Mention()),
				Color:     config.SuccessColor,
				Timestamp: &now,
			}},
		})
		return err
	}
}

// collectRoleMemberIDs pages through the guild member list and keeps the
// non-bot members holding the role.
func collectRoleMemberIDs(b *zeni.Bot, guildID snowflake.ID, roleID snowflake.ID) ([]string, error) {
	const pageSize = 1000

	var ids []string
	var after snowflake.ID
	for {
		members, err := b.Client.Rest().GetMembers(guildID, pageSize, after)
		if err != nil {
			return nil, err
		}
		for _, member := range members {
			if member.User.Bot {
				continue
			}
			if slices.Contains(member.RoleIDs, roleID) {
				ids = append(ids, member.User.ID.String())
			}
			if member.User.ID > after {
				after = member.User.ID
			}
		}
		if len(members) < pageSize {
			return ids, nil
		}
	}
}
