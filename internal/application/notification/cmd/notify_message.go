package cmd

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cunyswap/cunyswap-backend/internal/domain/valueobject/mails"
	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
	"github.com/cunyswap/cunyswap-backend/pkg/logging"
	"github.com/cunyswap/cunyswap-backend/pkg/otelx"
)

var (
	tracer = otel.Tracer("cunyswap/application/notification/cmd")
	logger = otelslog.NewLogger("cunyswap/application/notification/cmd")
)

type NotifyMessage struct {
	RecipientEmail string
	RecipientName  string
	SenderName     string
	MessagePreview string
	ItemTitle      string
	ConversationID string
}

type NotifyMessageHandler struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	mailsender MailSender
	appBaseURL string
}

type NotifyMessageHandlerArgs struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	Mailsender MailSender
	AppBaseURL string
}

func NewNotifyMessageHandler(args NotifyMessageHandlerArgs) *NotifyMessageHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &NotifyMessageHandler{
		tracer:     args.Tracer,
		logger:     args.Logger,
		mailsender: args.Mailsender,
		appBaseURL: args.AppBaseURL,
	}
}

func (h *NotifyMessageHandler) Handle(ctx context.Context, cmd NotifyMessage) error {
	const op = "cmd.NotifyMessageHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "NotifyMessageHandler.Handle",
		trace.WithAttributes(attribute.String("recipient.email", logging.RedactEmail(cmd.RecipientEmail))),
	)
	defer span.End()

	recipient := cmd.RecipientName
	if recipient == "" {
		recipient = "there"
	}

	about := ""
	if cmd.ItemTitle != "" {
		about = fmt.Sprintf(" about <strong>%s</strong>", html.EscapeString(cmd.ItemTitle))
	}

	preview := ""
	if cmd.MessagePreview != "" {
		preview = fmt.Sprintf(`
          <div style="background: #f3f4f6; border-left: 4px solid #ec4899; padding: 15px; margin: 20px 0; border-radius: 6px;">
            <p style="color: #374151; margin: 0; font-style: italic;">"%s"</p>
          </div>`, html.EscapeString(cmd.MessagePreview))
	}

	link := h.appBaseURL + "/messages"
	if cmd.ConversationID != "" {
		link += "/" + cmd.ConversationID
	}

	payload := mails.Payload{
		To:      cmd.RecipientEmail,
		Subject: fmt.Sprintf("New message from %s on CUNYswap", cmd.SenderName),
		Body: fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
          <h2 style="color: #111827;">Hey %s!</h2>
          <p style="color: #4b5563;"><strong>%s</strong> just sent you a message%s:</p>
          %s
          <div style="text-align: center; margin: 30px 0;">
            <a href="%s" style="display: inline-block; background: #ec4899; color: white; padding: 14px 32px; border-radius: 12px; text-decoration: none; font-weight: bold;">View Message</a>
          </div>
          <p style="color: #9ca3af; font-size: 12px; text-align: center;">CUNYswap - Made By Students for Students</p>
        </div>`,
			html.EscapeString(recipient), html.EscapeString(cmd.SenderName), about, preview, link),
	}

	if err := h.mailsender.SendMail(ctx, payload); err != nil {
		otelx.RecordSpanError(span, err, "failed to send message notification")
		h.logger.ErrorContext(ctx, "failed to send message notification", slog.Any("error", err))
		return errorx.Wrap(errorx.NewUpstreamServiceError().WithCause(err), op)
	}

	return nil
}
