package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
	_ "time/tzdata" // America/Sao_Paulo sem depender do zoneinfo do host

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// loadDotEnv carrega o .env (se existir) sem sobrescrever variáveis já definidas no ambiente.
func loadDotEnv() {
	dotenvOnce.Do(func() {
		path := getenv("ENV_FILE", ".env")
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("dotenv_load_error", "path", path, "err", err)
		}
	})
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvAny(def string, keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func parseDuration(env string, def time.Duration) time.Duration {
	if v := os.Getenv(env); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseInt(env string, def int) int {
	if v := os.Getenv(env); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func parseFloat(env string, def float64) float64 {
	if v := os.Getenv(env); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

// parseLocation carrega o fuso IANA; nome inválido cai em def.
func parseLocation(env, def string) *time.Location {
	name := getenv(env, def)
	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("invalid_timezone", "env", env, "value", name, "err", err)
		if loc, err = time.LoadLocation(def); err != nil {
			return time.UTC
		}
	}
	return loc
}

func parseBool(env string, def bool) bool {
	if v := os.Getenv(env); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func parseList(env, def string) []string {
	raw := getenv(env, def)
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
