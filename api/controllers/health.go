package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/ayoubseh/boutique-backend/api/responses"
	"github.com/ayoubseh/boutique-backend/pkg/config"
	"github.com/ayoubseh/boutique-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

const readinessTimeout = 2 * time.Second

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Boutique-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady probes the database and Redis before reporting ready.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Boutique-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		checks["db"] = probe(ctx, dbP)
		checks["redis"] = probe(ctx, redisP)
		for name, status := range checks {
			// "skipped" means the dependency is intentionally not configured.
			if status != "ok" && status != "skipped" {
				healthy = false
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "dependency", name), "readiness probe failed")
				}
			}
		}

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}

		responses.WriteSuccessStatus(w, status, map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}

func probe(ctx context.Context, p pinger) string {
	if p == nil {
		return "skipped"
	}
	if err := p.Ping(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}
