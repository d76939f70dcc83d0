package notify

//go:generate mockgen -package=mocks -destination=mocks/mock_notifier.go github.com/KirkDiggler/autoref/internal/services/notify Notifier

import "context"

// Notifier delivers match lines to the humans coordinating a match
type Notifier interface {
	// Notify delivers one line. Implementations must not block on slow readers.
	Notify(ctx context.Context, input *NotifyInput) error
}
