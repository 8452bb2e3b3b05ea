package driven

import (
	"context"
	"time"
)

// IResetNotifier delivers reset codes out of band. Delivery failure never
// changes the outcome of the forgot-password operation.
type IResetNotifier interface {
	SendResetCode(ctx context.Context, email, code string, validFor time.Duration) error
}
