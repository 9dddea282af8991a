package controllers

import (
	"net/http"

	"github.com/SatyanshPrakash/lunio-technologies-User-backend/api/responses"
	"github.com/SatyanshPrakash/lunio-technologies-User-backend/pkg/config"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Lunio-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, pingers ...func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Lunio-Env", cfg.App.Env)
		for _, ping := range pingers {
			if ping == nil {
				continue
			}
			if err := ping(); err != nil {
				responses.WriteSuccessStatus(w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
				})
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
