package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	AppEnv string

	// Empty DSN runs the cart on in-memory slots.
	DatabaseDSN string
	// Empty URL logs placed orders instead of publishing them.
	RabbitMQURL string

	MenuFile         string
	ConfirmationPage string
	RedirectDelay    time.Duration
	RequestTimeout   time.Duration

	CORSAllowOrigins []string
}

// Load reads an optional .env file and then the process environment.
// A missing .env file is not an error; a malformed one is.
func Load(envFiles ...string) (Config, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:   getenv("PORT", "8084"),
		AppEnv: getenv("APP_ENV", "dev"),

		DatabaseDSN: getenv("BITECRAFT_DB_DSN", ""),
		RabbitMQURL: getenv("RABBITMQ_URL", ""),

		MenuFile:         getenv("MENU_FILE", ""),
		ConfirmationPage: getenv("CONFIRMATION_PAGE", "order-confirmation.html"),
		RedirectDelay:    parseDuration(getenv("REDIRECT_DELAY", "2s"), 2*time.Second),
		RequestTimeout:   parseDuration(getenv("REQUEST_TIMEOUT", "3s"), 3*time.Second),

		CORSAllowOrigins: splitCSV(getenv("CORS_ALLOW_ORIGINS", "*")),
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "prod") || strings.EqualFold(c.AppEnv, "production")
}

func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}
