package mailer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Dispatcher delivers credential-lifecycle mail out of band. Real delivery is
// out of scope; the default implementation only logs.
type Dispatcher interface {
	SendVerificationCode(ctx context.Context, email, code string) error
	SendPasswordReset(ctx context.Context, email, resetToken string) error
}

// LogDispatcher writes the messages to the application log instead of sending
// them. The reset link points at the frontend reset page.
type LogDispatcher struct {
	frontendURL string
	logger      *zap.Logger
}

// NewLogDispatcher creates a log-only mail dispatcher
func NewLogDispatcher(frontendURL string, logger *zap.Logger) *LogDispatcher {
	return &LogDispatcher{frontendURL: frontendURL, logger: logger}
}

// SendVerificationCode logs the verification code for an address
func (d *LogDispatcher) SendVerificationCode(_ context.Context, email, code string) error {
	d.logger.Info("mock email: verification code",
		zap.String("email", email),
		zap.String("code", code),
	)
	return nil
}

// SendPasswordReset logs the reset link for an address
func (d *LogDispatcher) SendPasswordReset(_ context.Context, email, resetToken string) error {
	d.logger.Info("mock email: password reset link",
		zap.String("email", email),
		zap.String("link", fmt.Sprintf("%s/reset-password?token=%s", d.frontendURL, resetToken)),
	)
	return nil
}
