package noop

import (
	"context"
	"strings"

	"portfolio/internal/logging"
	"portfolio/internal/port"
)

type noopNotifier struct{}

// NewNoopNotifier creates a Notifier that only logs.
func NewNoopNotifier() port.Notifier {
	return noopNotifier{}
}

func (noopNotifier) NotifyTranslationDegraded(ctx context.Context, subject string, fields []string) error {
	logging.FromContext(ctx).Info("[NOOP EMAIL] translation fallback",
		logging.FieldComponent, "notifier",
		"subject", subject,
		"fields", strings.Join(fields, ","),
	)
	return nil
}
