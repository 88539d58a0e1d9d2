package bot

import (
	"github.com/google/uuid"

	"partycards/internal/domain"
)

// IDPrefix marks player ids created for bots.
const IDPrefix = "bot_"

// Names are the display names handed out to bots, in order.
var Names = []string{
	"Bot Malandro",
	"Bot Escroto",
	"Bot Safado",
	"Bot Debochado",
	"Bot Inconveniente",
}

// NewPlayer creates an automated player whose name is not yet taken in the room.
func NewPlayer(seated []domain.Player) domain.Player {
	taken := make(map[string]bool, len(seated))
	for _, p := range seated {
		taken[p.DisplayName] = true
	}

	name := Names[len(seated)%len(Names)]
	for _, n := range Names {
		if !taken[n] {
			name = n
			break
		}
	}

	p := domain.NewPlayer(IDPrefix+uuid.NewString(), name)
	p.IsAutomated = true
	return p
}
