package notification

import (
	"github.com/cunyswap/cunyswap-backend/internal/application/notification/cmd"
)

type App struct {
	CMD Command
}

type Command struct {
	NotifyMessage *cmd.NotifyMessageHandler
	NotifyReport  *cmd.NotifyReportHandler
}

type Args struct {
	Mailsender cmd.MailSender
	AdminEmail string
	AppBaseURL string
}

func NewApp(args Args) *App {
	return &App{
		CMD: Command{
			NotifyMessage: cmd.NewNotifyMessageHandler(cmd.NotifyMessageHandlerArgs{
				Mailsender: args.Mailsender,
				AppBaseURL: args.AppBaseURL,
			}),
			NotifyReport: cmd.NewNotifyReportHandler(cmd.NotifyReportHandlerArgs{
				Mailsender: args.Mailsender,
				AdminEmail: args.AdminEmail,
				AppBaseURL: args.AppBaseURL,
			}),
		},
	}
}
