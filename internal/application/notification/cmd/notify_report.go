package cmd

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cunyswap/cunyswap-backend/internal/domain/valueobject/mails"
	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
	"github.com/cunyswap/cunyswap-backend/pkg/otelx"
)

type NotifyReport struct {
	ItemID         string
	ItemTitle      string
	SellerID       string
	SellerName     string
	ReportedBy     string
	ReportedByName string
	Reason         string
	Details        string
	Timestamp      time.Time
}

type NotifyReportHandler struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	mailsender MailSender
	adminEmail string
	appBaseURL string
}

type NotifyReportHandlerArgs struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	Mailsender MailSender
	AdminEmail string
	AppBaseURL string
}

func NewNotifyReportHandler(args NotifyReportHandlerArgs) *NotifyReportHandler {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &NotifyReportHandler{
		tracer:     args.Tracer,
		logger:     args.Logger,
		mailsender: args.Mailsender,
		adminEmail: args.AdminEmail,
		appBaseURL: args.AppBaseURL,
	}
}

func (h *NotifyReportHandler) Handle(ctx context.Context, cmd NotifyReport) error {
	const op = "cmd.NotifyReportHandler.Handle"
	ctx, span := h.tracer.Start(ctx, "NotifyReportHandler.Handle",
		trace.WithAttributes(
			attribute.String("report.item_id", cmd.ItemID),
			attribute.String("report.reason", cmd.Reason),
		),
	)
	defer span.End()

	sellerName := cmd.SellerName
	if sellerName == "" {
		sellerName = "Unknown"
	}
	reporterName := cmd.ReportedByName
	if reporterName == "" {
		reporterName = "Anonymous"
	}

	details := ""
	if cmd.Details != "" {
		details = fmt.Sprintf(`
          <h3 style="color: #111827;">Additional Details:</h3>
          <div style="background: #f9fafb; border-left: 4px solid #dc2626; padding: 15px; border-radius: 6px;">
            <p style="color: #374151; margin: 0;">"%s"</p>
          </div>`, html.EscapeString(cmd.Details))
	}

	submitted := cmd.Timestamp
	if submitted.IsZero() {
		submitted = time.Now()
	}

	payload := mails.Payload{
		To:      h.adminEmail,
		Subject: fmt.Sprintf("New Report: %s - %q", cmd.Reason, cmd.ItemTitle),
		Body: fmt.Sprintf(`
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
          <h2 style="color: #dc2626;">CUNYswap Report</h2>
          <p style="background: #fee2e2; color: #991b1b; padding: 15px; border-radius: 8px; font-weight: bold;">
            A listing has been reported and requires review
          </p>
          <table style="width: 100%%;">
            <tr><td style="color: #6b7280; font-weight: bold; width: 140px;">Reason:</td><td>%s</td></tr>
            <tr><td style="color: #6b7280; font-weight: bold;">Item Title:</td><td><strong>%s</strong></td></tr>
            <tr><td style="color: #6b7280; font-weight: bold;">Item ID:</td><td style="font-family: monospace;">%s</td></tr>
            <tr><td style="color: #6b7280; font-weight: bold;">Seller:</td><td>%s (%s)</td></tr>
            <tr><td style="color: #6b7280; font-weight: bold;">Reported By:</td><td>%s (%s)</td></tr>
            <tr><td style="color: #6b7280; font-weight: bold;">Submitted:</td><td>%s</td></tr>
          </table>
          %s
          <div style="text-align: center; margin: 30px 0;">
            <a href="%s/item/%s" style="display: inline-block; background: #dc2626; color: white; padding: 14px 32px; border-radius: 12px; text-decoration: none; font-weight: bold;">View Listing</a>
          </div>
        </div>`,
			strings.ToUpper(html.EscapeString(cmd.Reason)),
			html.EscapeString(cmd.ItemTitle),
			html.EscapeString(cmd.ItemID),
			html.EscapeString(sellerName), html.EscapeString(cmd.SellerID),
			html.EscapeString(reporterName), html.EscapeString(cmd.ReportedBy),
			submitted.Format(time.RFC1123),
			details,
			h.appBaseURL, html.EscapeString(cmd.ItemID)),
	}

	if err := h.mailsender.SendMail(ctx, payload); err != nil {
		otelx.RecordSpanError(span, err, "failed to send report notification")
		h.logger.ErrorContext(ctx, "failed to send report notification", slog.Any("error", err))
		return errorx.Wrap(errorx.NewUpstreamServiceError().WithCause(err), op)
	}

	return nil
}
