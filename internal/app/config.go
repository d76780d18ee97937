package app

import (
	"strings"
	"time"

	"github.com/noorstudy/noorstudy-backend/internal/pkg/envutil"
	"github.com/noorstudy/noorstudy-backend/internal/platform/logger"
)

type Config struct {
	Port             string
	JWTSecretKey     string
	InboxPollEvery   time.Duration
	CORSAllowOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	pollSeconds := envutil.GetEnvAsInt("INBOX_POLL_SECONDS", 8, log)

	var origins []string
	if raw := envutil.GetEnv("CORS_ORIGINS", "", log); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		Port:             envutil.GetEnv("PORT", "8080", log),
		JWTSecretKey:     envutil.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		InboxPollEvery:   time.Duration(pollSeconds) * time.Second,
		CORSAllowOrigins: origins,
	}
}
