package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tatamelab/tatame/internal/ctxutil"
	"github.com/tatamelab/tatame/internal/logging"
	"github.com/tatamelab/tatame/internal/metrics"
)

// identity lê a identidade vinda do gateway e a propaga pelo contexto.
// Sem cabeçalho = requisição anônima; cada rota decide o que exigir.
func identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := req.Context()
			if s := req.Header.Get("X-User-ID"); s != "" {
				if id, err := strconv.ParseInt(s, 10, 64); err == nil {
					ctx = ctxutil.WithUserID(ctx, id)
				}
			}
			if role := req.Header.Get("X-User-Role"); role != "" {
				ctx = ctxutil.WithRole(ctx, role)
			}
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

func requireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := ctxutil.Role(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "identidade ausente")
			}
			for _, r := range roles {
				if role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "sem permissão")
		}
	}
}

func requestLogger(log *logging.Log) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			log.Sugar.Infow("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"dur_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}

func countRequests() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			metrics.HTTPRequests.WithLabelValues(c.Path(), strconv.Itoa(status)).Inc()
			return err
		}
	}
}

// currentUser: id do usuário autenticado ou 401.
func currentUser(c echo.Context) (int64, error) {
	id, ok := ctxutil.UserID(c.Request().Context())
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "identidade ausente")
	}
	return id, nil
}
