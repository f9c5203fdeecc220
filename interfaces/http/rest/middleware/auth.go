package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"memehub-backend/domain/core/valueobjects"
	"memehub-backend/pkg/auth"
	"memehub-backend/pkg/common"
	pkgerrors "memehub-backend/pkg/errors"
)

// DeviceHeader is the header clients identify themselves with
const DeviceHeader = "X-Device-ID"

// RequireDevice validates the device header and applies IP and device
// rate limits. The parsed device ID lands in the request context.
func RequireDevice(ipLimiter *auth.IPRateLimiter, deviceLimiter *auth.DeviceRateLimiter, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allowed, _ := ipLimiter.Allow(r.Context(), clientIP(r)); !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
				return
			}

			deviceID, err := valueobjects.ParseDeviceID(r.Header.Get(DeviceHeader))
			if err != nil {
				common.RespondAppError(w, pkgerrors.NewUnauthorizedError("missing or invalid "+DeviceHeader+" header"))
				return
			}

			if allowed, _ := deviceLimiter.Allow(r.Context(), deviceID.String()); !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
				return
			}

			ctx := common.WithDeviceID(r.Context(), deviceID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin validates a Bearer JWT for the admin surface
func RequireAdmin(validator *auth.JWTValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				common.RespondAppError(w, pkgerrors.NewUnauthorizedError("missing bearer token"))
				return
			}

			claims, err := validator.Validate(parts[1])
			if err != nil {
				logger.Warn("Rejected admin token", zap.Error(err))
				common.RespondAppError(w, pkgerrors.NewUnauthorizedError("invalid token"))
				return
			}

			ctx := common.WithAdmin(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host := r.RemoteAddr
	if i := strings.LastIndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return host
}
