// Package envvar reads configuration values from environment variables, resolving secrets through a Provider.
package envvar

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/sanLimbu/todo-tracker/internal"
)

// Provider defines the interface used for retrieving secret values.
type Provider interface {
	Get(key string) (string, error)
}

// Configuration reads values from environment variables.
type Configuration struct {
	provider Provider
}

// Load reads the env filename and loads it into ENV for this process.
func Load(filename string) error {
	if err := godotenv.Load(filename); err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "loading env var file")
	}

	return nil
}

// New instantiates a new Configuration, provider may be nil when no secrets are used.
func New(provider Provider) *Configuration {
	return &Configuration{
		provider: provider,
	}
}

// Get returns the value of the environment variable key. When "<key>_SECURE" is set instead, its value
// is the secret path resolved by the provider.
func (c *Configuration) Get(key string) (string, error) {
	res := os.Getenv(key)

	valSecret := os.Getenv(fmt.Sprintf("%s_SECURE", key))
	if valSecret == "" {
		return res, nil
	}

	if c.provider == nil {
		return "", internal.NewErrorf(internal.ErrorCodeInvalidArgument, "no secret provider configured for %s", key)
	}

	valSecretRes, err := c.provider.Get(valSecret)
	if err != nil {
		return "", internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "provider.Get")
	}

	return valSecretRes, nil
}

// GetDefault returns the value of key, or def when it is empty.
func (c *Configuration) GetDefault(key, def string) (string, error) {
	res, err := c.Get(key)
	if err != nil {
		return "", err
	}

	if res == "" {
		return def, nil
	}

	return res, nil
}
