// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/iris/internal/config"
	"github.com/JaimeStill/iris/internal/infrastructure"
	"github.com/JaimeStill/iris/pkg/middleware"
	"github.com/JaimeStill/iris/pkg/module"
	"github.com/JaimeStill/iris/pkg/openapi"
	"github.com/JaimeStill/iris/pkg/routes"
)

// NewModule mounts every domain handler and the OpenAPI document under
// cfg.API.BasePath. Middleware runs CORS first and request logging last.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	spec, err := openapi.MarshalJSON(NewSpec(cfg))
	if err != nil {
		return nil, fmt.Errorf("build openapi spec: %w", err)
	}

	rt := NewRuntime(cfg, infra)
	domain := NewDomain(rt)

	mux := http.NewServeMux()
	routes.Register(mux, domain.Groups()...)
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	m, err := module.New(cfg.API.BasePath, mux)
	if err != nil {
		return nil, err
	}

	for _, mw := range []func(http.Handler) http.Handler{
		middleware.CORS(&cfg.API.CORS),
		middleware.NewHTTPMetrics(infra.Registry, "iris").Middleware(),
		middleware.Logger(rt.Logger),
	} {
		m.Use(mw)
	}

	return m, nil
}
