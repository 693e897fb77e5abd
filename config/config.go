package config

import "github.com/xyproto/env/v2"

const (
	EnvTitle     = "NDSROM_TITLE"
	EnvGameCode  = "NDSROM_GAMECODE"
	EnvMakerCode = "NDSROM_MAKER"
	EnvVerbose   = "NDSROM_VERBOSE"
)

// Config holds the user-adjustable header identification. Empty strings
// leave the header default in place.
type Config struct {
	Title     string
	GameCode  string
	MakerCode string
	Verbose   bool
}

// FromEnv reads the identification defaults from the environment. The
// environment is re-read on every call.
func FromEnv() Config {
	env.Load()
	return Config{
		Title:     env.Str(EnvTitle),
		GameCode:  env.Str(EnvGameCode),
		MakerCode: env.Str(EnvMakerCode),
		Verbose:   env.Bool(EnvVerbose),
	}
}

// Merge returns c with every non-empty field of o applied on top.
func (c Config) Merge(o Config) Config {
	if o.Title != "" {
		c.Title = o.Title
	}
	if o.GameCode != "" {
		c.GameCode = o.GameCode
	}
	if o.MakerCode != "" {
		c.MakerCode = o.MakerCode
	}
	c.Verbose = c.Verbose || o.Verbose
	return c
}
