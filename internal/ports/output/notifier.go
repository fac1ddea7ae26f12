package output

import "context"

// Notifier pushes user-facing notifications. Implementations are
// fire-and-forget: delivery failures are logged, never returned.
type Notifier interface {
	NotifyUser(ctx context.Context, userID, content string)
	NotifyChannel(ctx context.Context, channelID, content string)
}
