package mail

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/gomail.v2"

	"github.com/cunyswap/cunyswap-backend/internal/domain/valueobject/mails"
	"github.com/cunyswap/cunyswap-backend/pkg/logging"
	"github.com/cunyswap/cunyswap-backend/pkg/otelx"
)

var (
	tracer = otel.Tracer("cunyswap/internal/adapters/mail")
	logger = otelslog.NewLogger("cunyswap/internal/adapters/mail")
)

// SMTPSender delivers mail over SMTP with gomail.
type SMTPSender struct {
	tracer   trace.Tracer
	logger   *slog.Logger
	dialer   *gomail.Dialer
	from     string
	fromName string
}

type SMTPSenderArgs struct {
	Tracer   trace.Tracer
	Logger   *slog.Logger
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

func NewSMTPSender(args SMTPSenderArgs) *SMTPSender {
	if args.Tracer == nil {
		args.Tracer = tracer
	}
	if args.Logger == nil {
		args.Logger = logger
	}

	return &SMTPSender{
		tracer:   args.Tracer,
		logger:   args.Logger,
		dialer:   gomail.NewDialer(args.Host, args.Port, args.Username, args.Password),
		from:     args.From,
		fromName: args.FromName,
	}
}

func (s *SMTPSender) SendMail(ctx context.Context, payload mails.Payload) error {
	_, span := s.tracer.Start(ctx, "SMTPSender.SendMail",
		trace.WithAttributes(attribute.String("mail.to", logging.RedactEmail(payload.To))),
	)
	defer span.End()

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, s.fromName)
	m.SetHeader("To", payload.To)
	m.SetHeader("Subject", payload.Subject)
	m.SetBody("text/html", payload.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		otelx.RecordSpanError(span, err, "failed to send mail")
		return fmt.Errorf("failed to send mail: %w", err)
	}

	return nil
}

// LogSender logs mail instead of sending it. Used in local and test modes
// where no SMTP credentials exist; the logged code is what dev routes and
// tests read.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(l *slog.Logger) *LogSender {
	if l == nil {
		l = logger
	}
	return &LogSender{logger: l}
}

func (s *LogSender) SendMail(ctx context.Context, payload mails.Payload) error {
	s.logger.InfoContext(ctx, "mail not sent, logging instead",
		slog.String("to", payload.To),
		slog.String("subject", payload.Subject),
		slog.String("body", payload.Body),
	)
	return nil
}
