package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/vuminhngo/techstore-backend/api/responses"
	"github.com/vuminhngo/techstore-backend/pkg/config"
	pkgerrors "github.com/vuminhngo/techstore-backend/pkg/errors"
	"github.com/vuminhngo/techstore-backend/pkg/logger"
)

// Pinger is implemented by the infrastructure clients the readiness probe
// checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TechStore-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-TechStore-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		probe := func(name string, p Pinger) {
			if p == nil {
				checks[name] = "skipped"
				return
			}
			if err := p.Ping(ctx); err != nil {
				checks[name] = "down"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "readiness probe failed: "+name, err)
				}
				return
			}
			checks[name] = "up"
		}

		probe("database", dbP)
		probe("redis", redisP)

		if !healthy {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeDependency, "dependency unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, checks)
	}
}
