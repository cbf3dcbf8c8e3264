package port

import "context"

// Notifier sends operational notices to the site administrator.
type Notifier interface {
	NotifyTranslationDegraded(ctx context.Context, subject string, fields []string) error
}
