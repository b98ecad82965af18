package services

import (
	"context"

	types "github.com/sarunks7/storely-backend/internal/domain"
	"github.com/sarunks7/storely-backend/internal/platform/logger"
)

// Mailer is the port for account emails. Delivery itself is an external
// collaborator; the default implementation only logs.
type Mailer interface {
	SendActivationEmail(ctx context.Context, user *types.User, token string) error
	SendPasswordResetEmail(ctx context.Context, user *types.User, token string) error
}

type logMailer struct {
	log *logger.Logger
}

func NewLogMailer(log *logger.Logger) Mailer {
	return &logMailer{log: log.With("service", "LogMailer")}
}

func (m *logMailer) SendActivationEmail(ctx context.Context, user *types.User, token string) error {
	m.log.Info("activation email (log-only mailer)", "user_id", user.ID.String(), "email", user.Email, "token", token)
	return nil
}

func (m *logMailer) SendPasswordResetEmail(ctx context.Context, user *types.User, token string) error {
	m.log.Info("password reset email (log-only mailer)", "user_id", user.ID.String(), "email", user.Email, "token", token)
	return nil
}
