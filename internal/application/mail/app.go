package mail

import (
	mailevent "github.com/cunyswap/cunyswap-backend/internal/application/mail/event"
)

type App struct {
	Event *mailevent.MailEventHandler
}

type Args struct {
	Mailsender mailevent.MailSender
	AdminEmail string
	AppBaseURL string
}

func NewApp(args Args) *App {
	return &App{
		Event: mailevent.NewMailEventHandler(mailevent.MailEventHandlerArgs{
			Mailsender: args.Mailsender,
			AdminEmail: args.AdminEmail,
			AppBaseURL: args.AppBaseURL,
		}),
	}
}
