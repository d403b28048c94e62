package httpx

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	validation "github.com/ARUMANDESU/validation"
	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"

	cunyswap "github.com/cunyswap/cunyswap-backend"
	"github.com/cunyswap/cunyswap-backend/pkg/errorx"
	"github.com/cunyswap/cunyswap-backend/pkg/otelx"
)

type ErrorHandler struct {
	bundle *i18n.Bundle
	enloc  *i18n.Localizer
	esloc  *i18n.Localizer
}

func NewErrorHandler() *ErrorHandler {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.LoadMessageFileFS(cunyswap.Locales, "locales/en.toml")
	bundle.LoadMessageFileFS(cunyswap.Locales, "locales/es.toml")

	return &ErrorHandler{
		bundle: bundle,
		enloc:  i18n.NewLocalizer(bundle, "en"),
		esloc:  i18n.NewLocalizer(bundle, "es"),
	}
}

func (h *ErrorHandler) Localizer(lang string) *i18n.Localizer {
	switch {
	case strings.HasPrefix(lang, "es"):
		return h.esloc
	default:
		return h.enloc
	}
}

func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, span trace.Span, err error, msg string) {
	otelx.RecordSpanError(span, err, msg)
	slog.ErrorContext(r.Context(), msg, "error", err.Error())

	localizer := h.Localizer(r.Header.Get("Accept-Language"))

	var appErr *errorx.I18nError
	if errors.As(err, &appErr) {
		writeError(w, r,
			appErr.Code,
			appErr.Localize(localizer),
			appErr.HTTPStatusCode(),
		)
		return
	}

	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		var sb strings.Builder
		for field, fieldErr := range valErrs {
			if valErr, ok := fieldErr.(validation.Error); ok {
				sb.WriteString(fmt.Sprintf("%s: %s; ", field, localizeValidation(localizer, valErr)))
			} else {
				sb.WriteString(fmt.Sprintf("%s: %s; ", field, fieldErr.Error()))
			}
		}
		writeError(w, r,
			errorx.CodeValidationFailed,
			sb.String(),
			http.StatusBadRequest,
		)
		return
	}

	var valErr validation.Error
	if errors.As(err, &valErr) {
		writeError(w, r,
			errorx.CodeValidationFailed,
			localizeValidation(localizer, valErr),
			http.StatusBadRequest,
		)
		return
	}

	internalErr := errorx.NewInternalError().WithCause(err)
	writeError(w, r,
		internalErr.Code,
		internalErr.Localize(localizer),
		internalErr.HTTPStatusCode(),
	)
}

func localizeValidation(localizer *i18n.Localizer, valErr validation.Error) string {
	localized, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    valErr.Code(),
		TemplateData: valErr.Params(),
	})
	if err != nil {
		return valErr.Error()
	}
	return localized
}

func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	slog.ErrorContext(r.Context(), "bad request", "message", message)
	writeError(w, r,
		errorx.CodeInvalid,
		message,
		http.StatusBadRequest,
	)
}

func writeError(w http.ResponseWriter, r *http.Request,
	code errorx.Code,
	message string,
	status int,
) {
	response := Envelope{
		"code":    code,
		"message": message,
		"success": false,
	}

	if err := WriteJSON(w, status, response, nil); err != nil {
		slog.ErrorContext(r.Context(), "failed to write error response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
