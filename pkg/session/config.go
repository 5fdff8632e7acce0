package session

// DefaultKey is the cookie name used when Config.Key is empty.
const DefaultKey = "key"

// Config configures the session cookie and its default codec.
type Config struct {
	// Key is the cookie name that carries the session.
	Key string `env:"SESSION_KEY" envDefault:"key"`
	// Secret keys both encryption and signing of SecureCodec.
	Secret     string `env:"SESSION_SECRET"`
	Salt       string `env:"SESSION_SALT" envDefault:"salt"`
	SignedSalt string `env:"SESSION_SIGNED_SALT" envDefault:"signed salt"`
}

// DefaultConfig returns a Config with the default key and salts and no secret.
func DefaultConfig() Config {
	return Config{
		Key:        DefaultKey,
		Salt:       "salt",
		SignedSalt: "signed salt",
	}
}

func (c Config) key() string {
	if c.Key == "" {
		return DefaultKey
	}
	return c.Key
}
