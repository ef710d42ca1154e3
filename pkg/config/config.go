// Package config loads the job's settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/subosito/gotenv"
)

const legacyTokenKey = "PUSHBULLET_ACCESS_TOKEN"

// ErrConfigMissing is returned when a required setting is absent.
var ErrConfigMissing = errors.New("required configuration missing")

type Config struct {
	NotificationToken string `envconfig:"NOTIFICATION_TOKEN"`
	StationName       string `envconfig:"STATION_NAME"`

	URL           string        `envconfig:"TIDE_URL" default:"http://tidepredictions.pla.co.uk/"`
	RenderTimeout time.Duration `envconfig:"RENDER_TIMEOUT" default:"30s"`
	Fetcher       string        `envconfig:"FETCHER" default:"chrome"`
	CIBrowser     bool          `envconfig:"CI_BROWSER" default:"false"`
	DebugDir      string        `envconfig:"DEBUG_DIR"`

	PushbulletURL string `envconfig:"PUSHBULLET_URL" default:"https://api.pushbullet.com"`

	// Sun events are only added when both coordinates are set.
	Latitude  *float64 `envconfig:"STATION_LATITUDE"`
	Longitude *float64 `envconfig:"STATION_LONGITUDE"`
	TimeZone  string   `envconfig:"STATION_TIMEZONE" default:"Europe/London"`

	PushgatewayURL string `envconfig:"PUSHGATEWAY_URL"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
}

// LoadDotEnv reads KEY=value pairs from path into the process environment.
// Variables already set are left alone and a missing file is not an error.
func LoadDotEnv(path string) error {
	if err := gotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// Load processes the environment into a Config and checks the required
// settings.
func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if c.NotificationToken == "" {
		c.NotificationToken = os.Getenv(legacyTokenKey)
	}
	c.NotificationToken = strings.TrimSpace(c.NotificationToken)
	c.StationName = strings.TrimSpace(c.StationName)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports the first missing or unusable setting.
func (c *Config) Validate() error {
	if c.NotificationToken == "" {
		return fmt.Errorf("%w: NOTIFICATION_TOKEN not set", ErrConfigMissing)
	}
	if c.StationName == "" {
		return fmt.Errorf("%w: STATION_NAME not set", ErrConfigMissing)
	}
	if c.RenderTimeout <= 0 {
		return fmt.Errorf("RENDER_TIMEOUT must be positive, got %s", c.RenderTimeout)
	}
	switch c.Fetcher {
	case "chrome", "static":
	default:
		return fmt.Errorf("FETCHER must be chrome or static, got %q", c.Fetcher)
	}
	if (c.Latitude == nil) != (c.Longitude == nil) {
		return fmt.Errorf("STATION_LATITUDE and STATION_LONGITUDE must be set together")
	}
	return nil
}

// HasCoordinates reports whether sun events can be computed for the station.
func (c *Config) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}
