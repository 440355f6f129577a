package api

import (
	"database/sql"
	"log/slog"

	"github.com/JaimeStill/iris/internal/config"
	"github.com/JaimeStill/iris/internal/infrastructure"
	"github.com/JaimeStill/iris/pkg/pagination"
	"github.com/JaimeStill/iris/pkg/storage"
)

// Runtime is the slice of infrastructure and API limits the domain systems are built from.
type Runtime struct {
	DB         *sql.DB
	Storage    storage.System
	Logger     *slog.Logger
	Pagination pagination.Config
	MaxUpload  int64
}

func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		DB:         infra.Database.Connection(),
		Storage:    infra.Storage,
		Logger:     infra.Logger.With("module", "api"),
		Pagination: cfg.API.Pagination,
		MaxUpload:  cfg.API.MaxUploadSizeBytes(),
	}
}
