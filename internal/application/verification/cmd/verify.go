package cmd

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cunyswap/cunyswap-backend/internal/domain/verification"
	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
	"github.com/cunyswap/cunyswap-backend/pkg/logging"
	"github.com/cunyswap/cunyswap-backend/pkg/otelx"
)

type Verify struct {
	Email string
	Code  string
}

type VerifyHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	repo   Repo
}

type VerifyHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Repo   Repo
}

func NewVerifyHandler(args VerifyHandlerArgs) *VerifyHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &VerifyHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		repo:   args.Repo,
	}
}

func (h *VerifyHandler) Handle(ctx context.Context, cmd Verify) error {
	const op = "cmd.VerifyHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "VerifyHandler.Handle",
		trace.WithAttributes(attribute.String("email", logging.RedactEmail(cmd.Email))),
	)
	defer span.End()

	err := h.repo.UpdateVerificationByEmail(ctx, cmd.Email, func(ctx context.Context, v *verification.Verification) error {
		if err := v.VerifyCode(cmd.Code); err != nil {
			trace.SpanFromContext(ctx).AddEvent("verification code rejected",
				trace.WithAttributes(attribute.Int("verification.attempts", int(v.Attempts()))),
			)
			return errorx.Wrap(err, op)
		}

		return nil
	})
	if err != nil {
		// A missing row gets the same response as a bad code so the endpoint
		// does not reveal whether a code was ever issued for the email.
		if errorx.IsNotFound(err) {
			err = verification.ErrVerificationNotFound
		}
		otelx.RecordSpanError(span, err, "failed to verify code")
		return errorx.Wrap(err, op)
	}

	return nil
}
