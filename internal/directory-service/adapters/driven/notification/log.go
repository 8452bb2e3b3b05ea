package notification

import (
	"context"
	"time"

	"membro-hub/internal/mylogger"
)

// LogNotifier prints reset codes to the log instead of publishing them.
// Used by the in-memory demo mode.
type LogNotifier struct {
	mylog mylogger.Logger
}

func NewLogNotifier(mylog mylogger.Logger) *LogNotifier {
	return &LogNotifier{mylog: mylog}
}

func (n *LogNotifier) SendResetCode(ctx context.Context, email, code string, validFor time.Duration) error {
	n.mylog.Action("sendResetCode").Info("reset code issued",
		"email", email, "code", code, "valid_for", validFor.String())
	return nil
}
