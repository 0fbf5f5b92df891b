package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// validatable is implemented by config structs that check their own invariants.
type validatable interface {
	Validate() error
}

var (
	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]any)

	envFilesOnce sync.Once
	envFiles     = []string{".env"}
)

// SetEnvFiles overrides the dotenv files read before the first Load or Parse.
// Must be called before any config is loaded; later calls have no effect.
func SetEnvFiles(files ...string) {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	envFiles = files
}

func loadEnvFiles() {
	envFilesOnce.Do(func() {
		cacheMu.Lock()
		files := envFiles
		cacheMu.Unlock()
		for _, f := range files {
			// Missing files are fine, the process env is the source of truth.
			_ = godotenv.Load(f)
		}
	})
}

// Load parses environment variables into v and caches the result per type.
// Subsequent calls for the same type return the cached copy.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	key := reflect.TypeFor[T]()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cached, ok := cache[key]; ok {
		*v = cached.(T)
		return nil
	}

	if err := parse(v); err != nil {
		return err
	}
	cache[key] = *v
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Intended for startup code where a missing setting must stop the process.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Parse reads environment variables into v without touching the cache.
func Parse[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	return parse(v)
}

func parse[T any](v *T) error {
	loadEnvFiles()

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if vc, ok := any(&parsed).(validatable); ok {
		if err := vc.Validate(); err != nil {
			return errors.Join(ErrInvalidConfig, err)
		}
	}
	*v = parsed
	return nil
}
