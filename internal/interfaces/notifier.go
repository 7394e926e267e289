package interfaces

import "context"

type Notifier interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}
