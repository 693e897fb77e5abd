package rom

import (
	"github.com/wnxd/ndsrom/config"
	"github.com/wnxd/ndsrom/logger"
)

// Config holds the builder configuration.
type Config struct {
	// Title, GameCode and MakerCode override the homebrew defaults when
	// non-empty.
	Title     string
	GameCode  string
	MakerCode string

	Region    uint8
	Version   uint8
	Autostart uint8

	// Perm gates the builder's log entries.
	Perm logger.Permission
}

func defaultConfig() Config {
	return Config{
		Perm: logger.Allow,
	}
}

// Option is a functional option for configuring the Builder.
type Option func(*Config)

func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

func WithGameCode(code string) Option {
	return func(c *Config) {
		c.GameCode = code
	}
}

func WithMakerCode(code string) Option {
	return func(c *Config) {
		c.MakerCode = code
	}
}

// WithRegion sets the region byte (00h normal, 40h Korea, 80h China).
func WithRegion(region uint8) Option {
	return func(c *Config) {
		c.Region = region
	}
}

func WithVersion(version uint8) Option {
	return func(c *Config) {
		c.Version = version
	}
}

// WithAutostart sets the autostart flags. Bit 2 skips the "Press Button"
// prompt after the health and safety screen.
func WithAutostart(flags uint8) Option {
	return func(c *Config) {
		c.Autostart = flags
	}
}

func WithLogger(perm logger.Permission) Option {
	return func(c *Config) {
		c.Perm = perm
	}
}

// WithConfig applies the identification fields of an environment or CLI
// configuration. Empty fields are ignored.
func WithConfig(cfg config.Config) Option {
	return func(c *Config) {
		if cfg.Title != "" {
			c.Title = cfg.Title
		}
		if cfg.GameCode != "" {
			c.GameCode = cfg.GameCode
		}
		if cfg.MakerCode != "" {
			c.MakerCode = cfg.MakerCode
		}
	}
}
