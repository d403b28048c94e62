package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cunyswap/cunyswap-backend/internal/domain/verification"
	"github.com/cunyswap/cunyswap-backend/pkg/logging"
	"github.com/cunyswap/cunyswap-backend/pkg/otelx"
)

type ResendCode struct {
	Email string
}

type ResendCodeHandler struct {
	tracer trace.Tracer
	logger *slog.Logger
	repo   Repo
}

type ResendCodeHandlerArgs struct {
	Tracer trace.Tracer
	Logger *slog.Logger
	Repo   Repo
}

func NewResendCodeHandler(args ResendCodeHandlerArgs) *ResendCodeHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &ResendCodeHandler{
		tracer: args.Tracer,
		logger: args.Logger,
		repo:   args.Repo,
	}
}

func (h *ResendCodeHandler) Handle(ctx context.Context, cmd ResendCode) error {
	ctx, span := h.tracer.Start(ctx, "ResendCodeHandler.Handle",
		trace.WithAttributes(attribute.String("email", logging.RedactEmail(cmd.Email))),
	)
	defer span.End()

	err := h.repo.UpdateVerificationByEmail(ctx, cmd.Email, func(ctx context.Context, v *verification.Verification) error {
		span := trace.SpanFromContext(ctx)
		otelx.SetSpanAttrs(span, map[string]any{
			"verification.id":       v.ID().String(),
			"verification.attempts": int(v.Attempts()),
		})
		if err := v.Resend(); err != nil {
			span.AddEvent("failed to resend code")
			return fmt.Errorf("failed to resend code: %w", err)
		}
		span.AddEvent("code resent")
		return nil
	})
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to update verification by email")
		return err
	}

	return nil
}
