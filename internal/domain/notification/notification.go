package notification

import (
	"context"

	"github.com/shuuuu87/DarkFocus/pkg/xcontext"
)

// Notifier delivers a user-facing message. Delivery is observational,
// callers never fail an operation on a notify error.
type Notifier interface {
	Notify(ctx context.Context, userID, event, message string) error
}

type logNotifier struct{}

func NewLogNotifier() *logNotifier {
	return &logNotifier{}
}

func (n *logNotifier) Notify(ctx context.Context, userID, event, message string) error {
	xcontext.Logger(ctx).Infof("notify user=%s event=%s: %s", userID, event, message)
	return nil
}
