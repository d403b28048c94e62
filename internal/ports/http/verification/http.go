package verificationhttp

import (
	"log/slog"
	"net/http"

	"github.com/ARUMANDESU/validation"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	verificationapp "github.com/cunyswap/cunyswap-backend/internal/application/verification"
	"github.com/cunyswap/cunyswap-backend/internal/application/verification/cmd"
	"github.com/cunyswap/cunyswap-backend/pkg/env"
	"github.com/cunyswap/cunyswap-backend/pkg/httpx"
	"github.com/cunyswap/cunyswap-backend/pkg/logging"
	"github.com/cunyswap/cunyswap-backend/pkg/otelx"
	"github.com/cunyswap/cunyswap-backend/pkg/sanitizex"
	"github.com/cunyswap/cunyswap-backend/pkg/validationx"
)

var (
	tracer = otel.Tracer("cunyswap/internal/ports/http/verification")
	logger = otelslog.NewLogger("cunyswap/internal/ports/http/verification")
)

type HTTP struct {
	tracer     trace.Tracer
	logger     *slog.Logger
	cmd        *verificationapp.Command
	query      *verificationapp.Query
	errhandler *httpx.ErrorHandler
}

type Args struct {
	Tracer     trace.Tracer
	Logger     *slog.Logger
	App        *verificationapp.App
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
		query:      &args.App.Query,
		errhandler: args.Errhandler,
	}
}

func (h *HTTP) Route(r chi.Router) {
	r.Route("/v1/verifications", func(r chi.Router) {
		r.Post("/request", h.RequestCode)
		r.Post("/verify", h.Verify)
		r.Post("/resend", h.ResendCode)
	})

	if env.Current() == env.Dev || env.Current() == env.Local || env.Current() == env.Test {
		r.Get("/dev/verifications/{email}", h.GetVerification)
	}
}

type RequestCodeRequest struct {
	Email string `json:"email"`
}

func (r *RequestCodeRequest) Sanitized() {
	r.Email = sanitizex.CleanEmail(r.Email)
}

func (r *RequestCodeRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *RequestCodeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
	)
}

func (h *HTTP) RequestCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "RequestVerificationCode")
	defer span.End()

	var req RequestCodeRequest
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

	if err := h.cmd.RequestCode.Handle(ctx, cmd.RequestCode{Email: req.Email}); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to request verification code")
		return
	}

	httpx.Success(w, r, http.StatusAccepted, nil)
}

type VerifyRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verification_code"`
}

func (r *VerifyRequest) Sanitized() {
	r.Email = sanitizex.CleanEmail(r.Email)
	r.VerificationCode = sanitizex.CleanSingleLine(r.VerificationCode)
}

func (r *VerifyRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *VerifyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
		validation.Field(&r.VerificationCode, validationx.CodeRules...),
	)
}

func (h *HTTP) Verify(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "VerifyCode")
	defer span.End()

	var req VerifyRequest
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

	cmd := cmd.Verify{
		Email: req.Email,
		Code:  req.VerificationCode,
	}
	if err := h.cmd.Verify.Handle(ctx, cmd); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to verify code")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"verified": true})
}

type ResendCodeRequest struct {
	Email string `json:"email"`
}

func (r *ResendCodeRequest) Sanitized() {
	r.Email = sanitizex.CleanEmail(r.Email)
}

func (r *ResendCodeRequest) SetSpanAttrs(span trace.Span) {
	otelx.SetSpanAttrs(span, map[string]any{"email": logging.RedactEmail(r.Email)})
}

func (r *ResendCodeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validationx.EmailRules...),
	)
}

func (h *HTTP) ResendCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ResendVerificationCode")
	defer span.End()

	var req ResendCodeRequest
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

	if err := h.cmd.ResendCode.Handle(ctx, cmd.ResendCode{Email: req.Email}); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to resend verification code")
		return
	}

	httpx.Success(w, r, http.StatusAccepted, nil)
}

func (h *HTTP) GetVerification(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GetVerification")
	defer span.End()

	email := sanitizex.CleanEmail(chi.URLParam(r, "email"))

	if err := validation.Validate(email, validationx.EmailRules...); err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to validate email")
		return
	}

	v, err := h.query.GetVerification.Handle(ctx, email)
	if err != nil {
		h.errhandler.HandleError(w, r, span, err, "failed to get verification")
		return
	}

	httpx.Success(w, r, http.StatusOK, httpx.Envelope{"verification": v})
}
