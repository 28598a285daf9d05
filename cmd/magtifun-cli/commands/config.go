package commands

import (
	"log/slog"
	"time"

	"github.com/ABGEO/magtifun.abgeo.dev/lib/configutil"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/keychain"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/restyutil"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/scrapers/magtifun"

	"golang.org/x/time/rate"
)

type Config struct {
	BaseUrl           string          `json:"base_url"`
	TimeoutSeconds    int             `json:"timeout_seconds"`
	RequestsPerSecond float64         `json:"requests_per_second"`
	CloudflareBypass  bool            `json:"cloudflare_bypass"`
	Keychain          keychain.Config `json:"keychain"`
	// turns on debug logs and writes every http exchange to <dev_state>/resty/magtifun
	Debug bool `json:"debug"`
}

var defaultConfig = Config{
	BaseUrl:           magtifun.DefaultBaseUrl,
	TimeoutSeconds:    30,
	RequestsPerSecond: 2,
	Keychain: keychain.Config{
		File: "~/.magtifun/keychain.db",
	},
}

// loadConfig reads path (and its .local override), a missing file leaves
// every setting at its default.
func loadConfig(path string) (Config, error) {
	return configutil.ReadWithDefaults(path, defaultConfig)
}

func newClient(config Config) (*magtifun.Client, error) {
	opts := magtifun.ClientOptions{
		BaseUrl:          config.BaseUrl,
		Timeout:          time.Duration(config.TimeoutSeconds) * time.Second,
		RateLimit:        rate.Limit(config.RequestsPerSecond),
		CloudflareBypass: config.CloudflareBypass,
	}
	if config.Debug {
		output, err := restyutil.NewFilesystemOutput("<dev_state>/resty/magtifun")
		if err != nil {
			slog.Warn("http dumps disabled", "err", err)
		} else {
			opts.DumpOutput = output
		}
	}
	return magtifun.NewClient(opts)
}
