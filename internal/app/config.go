package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (SAJJ_ prefix), flags, or YAML config files.
type Config struct {
	Addr       string `default:"0.0.0.0:8080" usage:"API server listen address"`
	DataDir    string `default:"./data" usage:"Directory for the JSON data files" flag:"data-dir"`
	UploadsDir string `default:"./data/uploads" usage:"Directory for payment proof uploads" flag:"uploads-dir"`

	AdminUser string `default:"admin" usage:"Admin username for Basic auth" flag:"admin-user"`
	AdminPass string `usage:"Admin password for Basic auth; empty disables auth (SAJJ_ADMIN_PASS)" flag:"admin-pass"`

	PaystackSecretKey string `usage:"Paystack secret key for payment verification (SAJJ_PAYSTACK_SECRET_KEY)" flag:"paystack-secret-key"`

	Notify    NotifyConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Graceful  GracefulConfig
}

// NotifyConfig controls the best-effort order and ticket notifications.
type NotifyConfig struct {
	EmailEndpoint  string `usage:"Form-to-email relay endpoint" flag:"notify-email-endpoint"`
	EmailAccessKey string `usage:"Access key for the email relay" flag:"notify-email-key"`
	EmailTo        string `usage:"Shop owner address notifications go to" flag:"notify-email-to"`
	SheetWebhook   string `usage:"Spreadsheet webhook for bookkeeping rows" flag:"notify-sheet-webhook"`
	Workers        int    `default:"2" usage:"Notification delivery workers" flag:"notify-workers"`
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SAJJ",
		Files:     []string{"config.yaml", "/etc/sajj/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like PORT to the
// application's SAJJ_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
