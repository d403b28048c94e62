package mailevent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cunyswap/cunyswap-backend/internal/domain/valueobject/mails"
	"github.com/cunyswap/cunyswap-backend/internal/domain/verification"
	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
	"github.com/cunyswap/cunyswap-backend/pkg/logging"
	"github.com/cunyswap/cunyswap-backend/pkg/otelx"
)

const NewUserSubject = "New User Joined CUNYswap"

// HandleEmailVerified alerts the admin mailbox that a new user finished
// verification. No admin email configured means no alert.
func (h *MailEventHandler) HandleEmailVerified(ctx context.Context, e *verification.EmailVerified) error {
	if e == nil || h.adminEmail == "" {
		return nil
	}
	const op = "mailevent.MailEventHandler.HandleEmailVerified"

	l := h.logger.With(slog.String("event", "EmailVerified"), slog.String("verification.id", e.VerificationID.String()))
	ctx, span := h.tracer.Start(
		ctx,
		"MailEventHandler.HandleEmailVerified",
		trace.WithNewRoot(),
		trace.WithLinks(trace.LinkFromContext(e.Extract())),
		trace.WithAttributes(
			attribute.String("event.verification.id", e.VerificationID.String()),
			attribute.String("event.verification.email", logging.RedactEmail(e.Email)),
		),
	)
	defer span.End()

	payload := mails.Payload{
		To:      h.adminEmail,
		Subject: NewUserSubject,
		Body: fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
          <h2 style="color: #ec4899;">New User Alert</h2>
          <div style="background: #fdf2f8; border-left: 4px solid #ec4899; padding: 15px; border-radius: 4px;">
            <p style="margin: 5px 0;"><strong>Email:</strong> %s</p>
            <p style="margin: 5px 0; color: #6b7280;"><strong>Joined:</strong> %s</p>
          </div>
        </div>`, e.Email, e.Timestamp.Format(time.RFC1123)),
	}
	if err := h.mailsender.SendMail(ctx, payload); err != nil {
		otelx.RecordSpanError(span, err, "failed to send admin notification")
		l.ErrorContext(ctx, "failed to send admin notification", slog.Any("error", err))
		return errorx.Wrap(err, op)
	}

	return nil
}
