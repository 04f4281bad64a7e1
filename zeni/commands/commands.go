package commands

import (
	"github.com/disgoorg/disgo/discord"

	"github.com/zenibot/zeni/zeni/commands/admin"
	"github.com/zenibot/zeni/zeni/commands/economy"
	"github.com/zenibot/zeni/zeni/commands/system"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands, admin.Commands...)
	Commands = append(Commands, economy.Commands...)
	Commands = append(Commands, system.Commands...)
}
