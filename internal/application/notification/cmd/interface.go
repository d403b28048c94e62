package cmd

import (
	"context"

	"github.com/cunyswap/cunyswap-backend/internal/domain/valueobject/mails"
)

type MailSender interface {
	SendMail(ctx context.Context, payload mails.Payload) error
}
