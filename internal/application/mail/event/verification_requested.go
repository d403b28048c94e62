package mailevent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ARUMANDESU/validation"
	"github.com/ARUMANDESU/validation/is"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cunyswap/cunyswap-backend/internal/domain/valueobject/mails"
	"github.com/cunyswap/cunyswap-backend/internal/domain/verification"
	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
	"github.com/cunyswap/cunyswap-backend/pkg/logging"
	"github.com/cunyswap/cunyswap-backend/pkg/otelx"
)

const VerificationCodeSubject = "Your CUNYswap Verification Code"

func (h *MailEventHandler) HandleVerificationRequested(ctx context.Context, e *verification.VerificationRequested) error {
	if e == nil {
		return nil
	}
	const op = "mailevent.MailEventHandler.HandleVerificationRequested"

	l := h.logger.With(slog.String("event", "VerificationRequested"), slog.String("verification.id", e.VerificationID.String()))
	ctx, span := h.tracer.Start(
		ctx,
		"MailEventHandler.HandleVerificationRequested",
		trace.WithNewRoot(),
		trace.WithLinks(trace.LinkFromContext(e.Extract())),
		trace.WithAttributes(
			attribute.String("event.verification.id", e.VerificationID.String()),
			attribute.String("event.verification.email", logging.RedactEmail(e.Email)),
		),
	)
	defer span.End()

	err := validation.ValidateStruct(e,
		validation.Field(&e.Email, validation.Required, is.EmailFormat),
		validation.Field(&e.Code, validation.Required),
	)
	if err != nil {
		otelx.RecordSpanError(span, err, "validation failed")
		l.ErrorContext(ctx, "validation failed", slog.Any("error", err))
		return errorx.Wrap(err, op)
	}

	payload := mails.Payload{
		To:      e.Email,
		Subject: VerificationCodeSubject,
		Body:    verificationCodeBody(e.Code),
	}
	if err := h.mailsender.SendMail(ctx, payload); err != nil {
		otelx.RecordSpanError(span, err, "failed to send verification code email")
		l.ErrorContext(ctx, "failed to send verification code email", slog.Any("error", err))
		return errorx.Wrap(err, op)
	}

	return nil
}

func verificationCodeBody(code string) string {
	return fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
          <h2 style="color: #ec4899;">CUNYswap Email Verification</h2>
          <p>Your verification code is:</p>
          <div style="background: #fdf2f8; padding: 20px; text-align: center; border-radius: 12px;">
            <h1 style="color: #ec4899; font-size: 32px; margin: 0;">%s</h1>
          </div>
          <p>This code expires in <strong>10 minutes</strong>.</p>
          <p style="color: #6b7280; font-size: 14px;">
            If you didn't request this code, you can safely ignore this email.
          </p>
        </div>`, code)
}
