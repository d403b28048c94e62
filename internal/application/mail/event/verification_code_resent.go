package mailevent

import (
	"context"
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

func (h *MailEventHandler) HandleVerificationCodeResent(ctx context.Context, e *verification.VerificationCodeResent) error {
	if e == nil {
		return nil
	}
	const op = "mailevent.MailEventHandler.HandleVerificationCodeResent"

	l := h.logger.With(slog.String("event", "VerificationCodeResent"), slog.String("verification.id", e.VerificationID.String()))
	ctx, span := h.tracer.Start(
		ctx,
		"MailEventHandler.HandleVerificationCodeResent",
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
