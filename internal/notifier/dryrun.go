package notifier

import (
	"context"

	"stockpulse/internal/logger"
)

// DryRunNotifier logs instead of sending. Used in DRY_RUN mode so a
// full pipeline run can be exercised without SES credentials or real
// deliveries.
type DryRunNotifier struct{}

func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{}
}

func (n *DryRunNotifier) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	logger.Info(ctx, "DRY_RUN: email suppressed", "recipient", recipient, "subject", subject, "body_bytes", len(htmlBody))
	return nil
}
