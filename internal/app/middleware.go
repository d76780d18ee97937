package app

import (
	"github.com/noorstudy/noorstudy-backend/internal/http/middleware"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, cfg.JWTSecretKey),
	}
}
