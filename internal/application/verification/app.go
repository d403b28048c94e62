package verification

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cunyswap/cunyswap-backend/internal/application/verification/cmd"
	"github.com/cunyswap/cunyswap-backend/internal/application/verification/query"
	"github.com/cunyswap/cunyswap-backend/pkg/env"
)

type App struct {
	CMD   Command
	Query Query
}

type Command struct {
	RequestCode *cmd.RequestCodeHandler
	Verify      *cmd.VerifyHandler
	ResendCode  *cmd.ResendCodeHandler
}

type Query struct {
	GetVerification *query.GetVerificationHandler
}

type Args struct {
	Mode           env.Mode
	AllowedDomains []string
	Repo           cmd.Repo
	Pool           *pgxpool.Pool
}

func NewApp(args Args) *App {
	return &App{
		CMD: Command{
			RequestCode: cmd.NewRequestCodeHandler(cmd.RequestCodeHandlerArgs{
				Mode:           args.Mode,
				AllowedDomains: args.AllowedDomains,
				Repo:           args.Repo,
			}),
			Verify: cmd.NewVerifyHandler(cmd.VerifyHandlerArgs{
				Repo: args.Repo,
			}),
			ResendCode: cmd.NewResendCodeHandler(cmd.ResendCodeHandlerArgs{
				Repo: args.Repo,
			}),
		},
		Query: Query{
			GetVerification: query.NewGetVerificationHandler(args.Pool),
		},
	}
}
