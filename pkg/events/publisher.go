package events

import (
	"context"
)

// Publisher sends item events to the message broker. Trace and correlation
// ids travel on the event itself.
type Publisher interface {
	Publish(ctx context.Context, exchange string, event *Event) error
	Close() error
}
