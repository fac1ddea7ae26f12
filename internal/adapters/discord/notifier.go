package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"

	"withgames/internal/ports/output"
)

var _ output.Notifier = (*Notifier)(nil)

// Notifier pushes messages through the Discord session. Fire-and-forget:
// delivery failures are logged, never returned (some users disable DMs).
type Notifier struct {
	session *discordgo.Session
}

// NewNotifier creates a Notifier.
func NewNotifier(session *discordgo.Session) *Notifier {
	return &Notifier{session: session}
}

func (n *Notifier) NotifyUser(_ context.Context, userID, content string) {
	ch, err := n.session.UserChannelCreate(userID)
	if err != nil || ch == nil {
		log.WithError(err).WithField("user_id", userID).Warn("cannot open DM channel")
		return
	}
	if _, err := n.session.ChannelMessageSend(ch.ID, content); err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("failed to send DM")
	}
}

func (n *Notifier) NotifyChannel(_ context.Context, channelID, content string) {
	if _, err := n.session.ChannelMessageSend(channelID, content); err != nil {
		log.WithError(err).WithField("channel_id", channelID).Warn("failed to send channel message")
	}
}
