package postgres

import (
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
)

var (
	tracer = otel.Tracer("cunyswap/internal/adapters/repos/postgres")
	logger = otelslog.NewLogger("cunyswap/internal/adapters/repos/postgres")
)
