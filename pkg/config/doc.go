// Package config loads environment-tagged structs with caarlos0/env.
//
// The cookie, session, logger and redis packages describe their settings as
// structs with env and envDefault tags, so one call per struct is enough:
//
//	var cfg struct {
//		Cookie cookie.Config
//		Log    logger.Config
//	}
//	config.MustLoad(&cfg)
//
// Load reads a .env file on first use and caches each type. Parse takes an
// explicit variable map and caches nothing.
package config
