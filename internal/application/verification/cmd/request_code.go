package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cunyswap/cunyswap-backend/internal/domain/verification"
	"github.com/cunyswap/cunyswap-backend/pkg/env"
	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
	"github.com/cunyswap/cunyswap-backend/pkg/logging"
	"github.com/cunyswap/cunyswap-backend/pkg/otelx"
)

var (
	tracer = otel.Tracer("cunyswap/application/verification/cmd")
	logger = otelslog.NewLogger("cunyswap/application/verification/cmd")
)

type RequestCode struct {
	Email string
}

type RequestCodeHandler struct {
	tracer         trace.Tracer
	logger         *slog.Logger
	mode           env.Mode
	allowedDomains []string
	repo           Repo
}

type RequestCodeHandlerArgs struct {
	Tracer         trace.Tracer
	Logger         *slog.Logger
	Mode           env.Mode
	AllowedDomains []string
	Repo           Repo
}

func NewRequestCodeHandler(args RequestCodeHandlerArgs) *RequestCodeHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &RequestCodeHandler{
		tracer:         args.Tracer,
		logger:         args.Logger,
		mode:           args.Mode,
		allowedDomains: args.AllowedDomains,
		repo:           args.Repo,
	}
}

// Handle issues a verification code for the email. The save is an upsert, so
// a repeat request replaces any pending verification outright: new code,
// attempts back to zero, and the previous code stops verifying. The resend
// timeout only guards the explicit resend operation.
func (h *RequestCodeHandler) Handle(ctx context.Context, cmd RequestCode) error {
	ctx, span := h.tracer.Start(ctx, "RequestCodeHandler.Handle",
		trace.WithAttributes(attribute.String("email", logging.RedactEmail(cmd.Email))),
	)
	defer span.End()

	h.logger.DebugContext(ctx, "requesting verification code")

	existing, err := h.repo.GetVerificationByEmail(ctx, cmd.Email)
	if err != nil && !errorx.IsNotFound(err) {
		otelx.RecordSpanError(span, err, "failed to get verification by email")
		return fmt.Errorf("failed to get verification by email: %w", err)
	}
	if existing != nil {
		span.AddEvent("pending verification will be overwritten",
			trace.WithAttributes(attribute.String("verification.id", existing.ID().String())),
		)
	}

	v, err := verification.NewVerification(cmd.Email, h.allowedDomains, h.mode)
	if err != nil {
		otelx.RecordSpanError(span, err, "failed to create verification")
		return fmt.Errorf("failed to create verification: %w", err)
	}

	if err := h.repo.SaveVerification(ctx, v); err != nil {
		otelx.RecordSpanError(span, err, "failed to save verification")
		return fmt.Errorf("failed to save verification: %w", err)
	}
	span.AddEvent("verification saved",
		trace.WithAttributes(attribute.String("verification.id", v.ID().String())),
	)

	return nil
}
