package economy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/zenibot/zeni/zeni"
	"github.com/zenibot/zeni/zeni/chinchiro"
	"github.com/zenibot/zeni/zeni/config"
	"github.com/zenibot/zeni/zeni/utils"
)

var Dice = discord.SlashCommandCreate{
	Name:        "dice",
	Description: "🎲 Challenge the house to a chinchiro dice duel",
}

// DiceHandler opens the stake selection. The session opened here is released
// when the duel settles, the user cancels, or the cleanup loop reaps it after
// the selection timeout.
func DiceHandler(b *zeni.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		userID := e.User().ID.String()

		if !b.Dice.Begin(userID) {
			return utils.EH.CreateErrorEmbed(e, "You already have a dice duel in progress.")
		}

		acct := b.Ledger.GetOrCreate(userID)

		var buttons []discord.InteractiveComponent
		for _, stake := range b.Cfg.Dice.Stakes {
			buttons = append(buttons, discord.NewPrimaryButton(
				utils.FormatZ(stake),
				fmt.Sprintf("/dice/play/%s/%d", userID, stake),
			))
		}
		buttons = append(buttons, discord.NewDangerButton(
			"Cancel",
			fmt.Sprintf("/dice/cancel/%s", userID),
		))

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🎲 Chinchiro Duel",
				Description: fmt.Sprintf(
					"Pick your stake, %s. Best hand over up to three throws wins.\n\n"+
						"Your balance: **%s**\nSelection expires in %d seconds.",
					e.User().Mention(), utils.FormatZ(acct.Balance), b.Cfg.Dice.SelectionTimeoutSec),
				Color: config.DuelColor,
			}},
			Components: []discord.ContainerComponent{discord.NewActionRow(buttons...)},
		})
	}
}

// DiceComponentHandler routes the stake and cancel buttons. Custom IDs carry
// the opener's user id so nobody can press buttons on someone else's duel.
func DiceComponentHandler(b *zeni.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		parts := strings.Split(strings.TrimPrefix(e.Data.CustomID(), "/dice/"), "/")
		if len(parts) < 2 {
			return utils.EH.CreateEphemeralError(e, "This duel is no longer valid.")
		}
		action, ownerID := parts[0], parts[1]

		if e.User().ID.String() != ownerID {
			return utils.EH.CreateEphemeralError(e, "This isn't your duel.")
		}

		switch action {
		case "cancel":
			b.Dice.End(ownerID)
			return e.UpdateMessage(discord.MessageUpdate{
				Embeds: &[]discord.Embed{{
					Title:       "🎲 Chinchiro Duel",
					Description: "Duel cancelled. Your Zeni stays in your pocket.",
					Color:       config.WarningColor,
				}},
				Components: &[]discord.ContainerComponent{},
			})

		case "play":
			if len(parts) < 3 {
				return utils.EH.CreateEphemeralError(e, "This duel is no longer valid.")
			}
			amount, err := strconv.ParseInt(parts[2], 10, 64)
			if err != nil || amount <= 0 {
				return utils.EH.CreateEphemeralError(e, "This duel is no longer valid.")
			}
			// The cleanup loop may have reaped the session while the buttons
			// sat idle; a stake press on an abandoned duel must not play.
			if !b.Dice.Active(ownerID) {
				return expireDuelMessage(e)
			}
			return runDuel(b, e, ownerID, amount)

		default:
			return utils.EH.CreateEphemeralError(e, "This duel is no longer valid.")
		}
	}
}

func runDuel(b *zeni.Bot, e *handler.ComponentEvent, userID string, amount int64) error {
	if acct := b.Ledger.GetOrCreate(userID); acct.Balance < amount {
		return utils.EH.CreateEphemeralError(e, fmt.Sprintf(
			"You can't cover a %s stake. Your balance is %s.",
			utils.FormatZ(amount), utils.FormatZ(acct.Balance)))
	}

	if err := e.DeferUpdateMessage(); err != nil {
		return err
	}
	defer b.Dice.End(userID)

	delay := time.Duration(b.Cfg.Dice.RollDelayMS) * time.Millisecond
	var lines []string

	onRoll := func(ev chinchiro.RollEvent) {
		lines = append(lines, fmt.Sprintf("%s roll %d: %s → **%s**",
			sideLabel(ev.Side), ev.Attempt, utils.FormatDice(ev.Roll.Faces), ev.Roll.Hand.Label()))

		description := fmt.Sprintf("Stake: **%s**\n\n%s",
			utils.FormatZ(amount), strings.Join(lines, "\n"))
		if _, err := e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{{
				Title:       "🎲 Chinchiro Duel",
				Description: description,
				Color:       config.DuelColor,
			}},
			Components: &[]discord.ContainerComponent{},
		}); err != nil {
			return
		}
		time.Sleep(delay)
	}

	result, err := b.Dice.Run(userID, amount, onRoll)
	if err != nil {
		description := "The duel could not be played: " + err.Error()
		if errors.Is(err, chinchiro.ErrSessionExpired) {
			description = "This duel expired. Start a new one with `/dice`."
		}
		_, uerr := e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{{
				Title:       "🎲 Chinchiro Duel",
				Description: description,
				Color:       config.ErrorColor,
			}},
			Components: &[]discord.ContainerComponent{},
		})
		return uerr
	}

	embed := settlementEmbed(e.User().Mention(), result, lines)
	if _, err = e.UpdateInteractionResponse(discord.MessageUpdate{
		Embeds:     &[]discord.Embed{embed},
		Components: &[]discord.ContainerComponent{},
	}); err != nil {
		return err
	}

	now := time.Now()
	b.Audit.Send(discord.Embed{
		Title: "🎲 Dice duel settled",
		Description: fmt.Sprintf("%s staked %s\n%s vs %s → **%s**",
			e.User().Mention(),
			utils.FormatZ(result.Amount),
			result.Player.Final.Label(),
			result.House.Final.Label(),
			utils.FormatSignedZ(result.Payout)),
		Color:     config.DuelColor,
		Timestamp: &now,
	})
	return nil
}

// expireDuelMessage replaces an abandoned stake selection so the dead buttons
// disappear, mirroring the selection timeout the opening embed advertises.
func expireDuelMessage(e *handler.ComponentEvent) error {
	return e.UpdateMessage(discord.MessageUpdate{
		Embeds: &[]discord.Embed{{
			Title:       "🎲 Chinchiro Duel",
			Description: "This duel expired. Start a new one with `/dice`.",
			Color:       config.WarningColor,
		}},
		Components: &[]discord.ContainerComponent{},
	})
}

func sideLabel(s chinchiro.Side) string {
	if s == chinchiro.SideHouse {
		return "🏠 House"
	}
	return "🙂 You"
}

func settlementEmbed(mention string, result *chinchiro.Result, lines []string) discord.Embed {
	var verdict string
	color := config.WarningColor
	switch {
	case result.Payout > 0:
		verdict = fmt.Sprintf("%s wins **%s**!", mention, utils.FormatZ(result.Payout))
		color = config.SuccessColor
	case result.Payout < 0:
		verdict = fmt.Sprintf("The house takes **%s**.", utils.FormatZ(-result.Payout))
		color = config.HouseColor
	default:
		verdict = "It's a push. The stake returns."
	}

	now := time.Now()
	return discord.Embed{
		Title: "🎲 Chinchiro Duel — Result",
		Description: fmt.Sprintf("Stake: **%s**\n\n%s\n\n**%s** vs **%s**\n%s",
			utils.FormatZ(result.Amount),
			strings.Join(lines, "\n"),
			result.Player.Final.Label(),
			result.House.Final.Label(),
			verdict),
		Color: color,
		Footer: &discord.EmbedFooter{
			Text: fmt.Sprintf("New balance: %s", utils.FormatZ(result.NewBalance)),
		},
		Timestamp: &now,
	}
}
