package config

import (
	"errors"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParse wraps environment parsing failures.
var ErrParse = errors.New("config: failed to parse environment")

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> any (a T value)
)

// Load fills cfg from the environment, reading .env once per process.
// Each type is parsed once; later calls copy the cached value.
func Load[T any](cfg *T) error {
	typ := reflect.TypeFor[T]()
	if v, ok := cache.Load(typ); ok {
		*cfg = v.(T)
		return nil
	}

	dotenvOnce.Do(func() {
		// A missing .env file is normal outside development.
		_ = godotenv.Load()
	})

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return errors.Join(ErrParse, err)
	}
	v, _ := cache.LoadOrStore(typ, loaded)
	*cfg = v.(T)
	return nil
}

// MustLoad is Load that panics on error.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Parse fills cfg from the given variables only. It bypasses the cache
// and .env, which makes it suitable for tests.
func Parse[T any](cfg *T, environ map[string]string) error {
	var parsed T
	if err := env.ParseWithOptions(&parsed, env.Options{Environment: environ}); err != nil {
		return errors.Join(ErrParse, err)
	}
	*cfg = parsed
	return nil
}
