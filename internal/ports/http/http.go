package http

import (
	"github.com/go-chi/chi/v5"

	notificationapp "github.com/cunyswap/cunyswap-backend/internal/application/notification"
	verificationapp "github.com/cunyswap/cunyswap-backend/internal/application/verification"
	notificationhttp "github.com/cunyswap/cunyswap-backend/internal/ports/http/notification"
	verificationhttp "github.com/cunyswap/cunyswap-backend/internal/ports/http/verification"
	"github.com/cunyswap/cunyswap-backend/pkg/httpx"
)

type Port struct {
	verification *verificationhttp.HTTP
	notification *notificationhttp.HTTP
}

type Args struct {
	VerificationApp *verificationapp.App
	NotificationApp *notificationapp.App
	Errhandler      *httpx.ErrorHandler
}

func NewPort(args Args) *Port {
	if args.Errhandler == nil {
		args.Errhandler = httpx.NewErrorHandler()
	}

	return &Port{
		verification: verificationhttp.NewHTTP(verificationhttp.Args{
			App:        args.VerificationApp,
			Errhandler: args.Errhandler,
		}),
		notification: notificationhttp.NewHTTP(notificationhttp.Args{
			App:        args.NotificationApp,
			Errhandler: args.Errhandler,
		}),
	}
}

func (p *Port) Route(r chi.Router) chi.Router {
	if r == nil {
		r = chi.NewRouter()
	}

	p.verification.Route(r)
	p.notification.Route(r)

	return r
}
