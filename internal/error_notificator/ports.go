package error_notificator

import "context"

type Notificator interface {
	// Notify sends a failure report to the ops chat
	Notify(ctx context.Context, err error, details string) error
}
