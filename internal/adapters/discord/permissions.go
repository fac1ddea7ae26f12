package discord

import (
	"github.com/bwmarrin/discordgo"

	"withgames/internal/domain"
	"withgames/internal/domain/entities"
)

// canManageEvent is the permission predicate for mutating operations:
// the event creator or a guild administrator.
func canManageEvent(i *discordgo.InteractionCreate, event *entities.Event) error {
	userID, _ := interactionUser(i)
	if userID == event.CreatorID {
		return nil
	}
	if i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return nil
	}
	return domain.ErrNotEventManager
}
