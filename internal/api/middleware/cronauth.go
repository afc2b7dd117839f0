package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/centerpulse/centerpulse/internal/config"
	"github.com/centerpulse/centerpulse/internal/pkg/errors"
	"github.com/centerpulse/centerpulse/internal/pkg/utils"
)

// CronAuth returns a middleware that guards the scheduled evaluation
// endpoints with a shared secret. Outside production the endpoints stay
// open so local sweeps can be triggered by hand.
func CronAuth(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.IsProduction() {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			var token string

			if authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					token = parts[1]
				}
			}

			if token == "" {
				utils.WriteError(w, errors.Unauthorized("Missing cron secret"))
				return
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.Alerting.CronSecret)) != 1 {
				utils.WriteError(w, errors.Unauthorized("Invalid cron secret"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
