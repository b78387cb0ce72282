package driving

import "github.com/custodia-labs/convivio/internal/core/domain"

// SettingsService resolves effective application settings.
type SettingsService interface {
	// Get returns settings merged from defaults, the config file and the environment.
	Get() (*domain.AppSettings, error)

	// Set persists a single setting to the config file.
	// Returns domain.ErrInvalidInput for unknown keys or malformed values.
	Set(key, value string) error

	// Keys lists the recognised setting keys.
	Keys() []string
}
