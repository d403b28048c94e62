package notificationhttp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	notificationapp "github.com/cunyswap/cunyswap-backend/internal/application/notification"
	"github.com/cunyswap/cunyswap-backend/internal/application/notification/cmd"
	"github.com/cunyswap/cunyswap-backend/pkg/httpx"
	"github.com/cunyswap/cunyswap-backend/pkg/logging"
	"github.com/cunyswap/cunyswap-backend/pkg/otelx"
	"github.com/cunyswap/cunyswap-backend/pkg/sanitizex"
	"github.com/cunyswap/cunyswap-backend/pkg/validationx"
)

var (
	tracer = otel.Tracer("cunyswap/internal/ports/http/notification")
	logger = otelslog.NewLogger("cunyswap/internal/ports/http/notification")
)

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	cmd        *notificationapp.Command
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	App        *notificationapp.App
	Errhandler *httpx.ErrorHandler
}

func NewHTTP(args Args) *HTTP {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &HTTP{
		tracer:     args.Tracer,
		logger:     args.Logger,
		cmd:        &args.App.CMD,
		errhandler: args.Errhandler,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/notifications", func(r chi.Router) {
		r.Post("/message", h.NotifyMessage)
		r.Post("/report", h.NotifyReport)
	})
}

type NotifyMessageRequest struct {
	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
	SenderName     string `json:"sender_name"`
	MessagePreview string `json:"message_preview"`
	ItemTitle      string `json:"item_title"`
	ConversationID string `json:"conversation_id"`
}

func (r *NotifyMessageRequest) Sanitized() {
	r.RecipientEmail = sanitizex.CleanSingleLine(r.RecipientEmail)
	r.RecipientName = sanitizex.CleanSingleLine(r.RecipientName)
	r.SenderName = sanitizex.CleanSingleLine(r.SenderName)
	r.MessagePreview = sanitizex.CleanSingleLine(r.MessagePreview)
	r.ItemTitle = sanitizex.CleanSingleLine(r.ItemTitle)
	r.ConversationID = sanitizex.CleanSingleLine(r.ConversationID)
}

func (r *NotifyMessageRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{
		"recipient.email": logging.RedactEmail(r.RecipientEmail),
		"item.title":      r.ItemTitle,
	})
}

func (r *NotifyMessageRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RecipientEmail, validationx.EmailRules...),
		validation.Field(&r.SenderName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.MessagePreview, validation.Length(0, 500)),
		validation.Field(&r.ItemTitle, validation.Length(0, 200)),
	)
}

func (h *HTTP) NotifyMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "NotifyMessage")
	defer span.End()

	var req NotifyMessageRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	command := cmd.NotifyMessage{
		RecipientEmail: req.RecipientEmail,
		RecipientName:  req.RecipientName,
		SenderName:     req.SenderName,
		MessagePreview: req.MessagePreview,
		ItemTitle:      req.ItemTitle,
		ConversationID: req.ConversationID,
	}
	if err := h.cmd.NotifyMessage.Handle(ctx, command); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to send message notification")
		return
	}

	httpx.Success(w, r, http.StatusOK, nil)
}

type NotifyReportRequest struct {
	ItemID         string    `json:"item_id"`
	ItemTitle      string    `json:"item_title"`
	SellerID       string    `json:"seller_id"`
	SellerName     string    `json:"seller_name"`
	ReportedBy     string    `json:"reported_by"`
	ReportedByName string    `json:"reported_by_name"`
	Reason         string    `json:"reason"`
	Details        string    `json:"details"`
	Timestamp      time.Time `json:"timestamp"`
}

func (r *NotifyReportRequest) Sanitized() {
	r.ItemID = sanitizex.CleanSingleLine(r.ItemID)
	r.ItemTitle = sanitizex.CleanSingleLine(r.ItemTitle)
	r.SellerID = sanitizex.CleanSingleLine(r.SellerID)
	r.SellerName = sanitizex.CleanSingleLine(r.SellerName)
	r.ReportedBy = sanitizex.CleanSingleLine(r.ReportedBy)
	r.ReportedByName = sanitizex.CleanSingleLine(r.ReportedByName)
	r.Reason = sanitizex.CleanSingleLine(r.Reason)
	r.Details = sanitizex.CleanSingleLine(r.Details)
}

func (r *NotifyReportRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{
		"report.item_id": r.ItemID,
		"report.reason":  r.Reason,
	})
}

func (r *NotifyReportRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ItemID, validation.Required, validation.Length(1, 128)),
		validation.Field(&r.ItemTitle, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Reason, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Details, validation.Length(0, 2000)),
	)
}

func (h *HTTP) NotifyReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "NotifyReport")
	defer span.End()

	var req NotifyReportRequest
	if err := httpx.ReadJSON(w, r, &req); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to read json")
		return
	}

	req.Sanitized()
	req.SetSpanAttrs(span)
	if err := req.Validate(); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate request body")
		return
	}

	command := cmd.NotifyReport{
		ItemID:         req.ItemID,
		ItemTitle:      req.ItemTitle,
		SellerID:       req.SellerID,
		SellerName:     req.SellerName,
		ReportedBy:     req.ReportedBy,
		ReportedByName: req.ReportedByName,
		Reason:         req.Reason,
		Details:        req.Details,
		Timestamp:      req.Timestamp,
	}
	if err := h.cmd.NotifyReport.Handle(ctx, command); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to send report notification")
		return
	}

	httpx.Success(w, r, http.StatusOK, nil)
}
