package mailevent

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/cunyswap/cunyswap-backend/internal/domain/valueobject/mails"
)

var (
	tracer = otel.Tracer("cunyswap/application/mail/event")
	logger = otelslog.NewLogger("cunyswap/application/mail/event")
)

type MailSender interface {
	SendMail(ctx context.Context, payload mails.Payload) error
}

type MailEventHandler struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	mailsender MailSender
	adminEmail string
	appBaseURL string
}

type MailEventHandlerArgs struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	Mailsender MailSender
	AdminEmail string
	AppBaseURL string
}

func NewMailEventHandler(args MailEventHandlerArgs) *MailEventHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &MailEventHandler{
		tracer:     args.Tracer,
		logger:     args.Logger,
		mailsender: args.Mailsender,
		adminEmail: args.AdminEmail,
		appBaseURL: args.AppBaseURL,
	}
}
