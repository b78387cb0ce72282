package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/ports/driven"
	"github.com/custodia-labs/convivio/internal/core/ports/driving"
	"github.com/custodia-labs/convivio/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDefaultCurrency = "events.default_currency"
	keySuggestionLimit = "events.suggestion_limit"
	keyDatabaseURL     = "events.db_url"
	keyAPIBase         = "weather.api_base"
	keyUserAgent       = "weather.user_agent"
	keyHTTPTimeout     = "weather.http_timeout"
	keyForecastPeriods = "weather.forecast_periods"
	keyTransport       = "server.transport"
	keyHTTPAddr        = "server.http_addr"
)

type settingKind int

const (
	kindString settingKind = iota
	kindPositiveInt
	kindPositiveSeconds
	kindTransport
)

type settingDef struct {
	key  string
	env  string
	kind settingKind
}

// settingDefs lists every recognised key in display order.
var settingDefs = []settingDef{
	{keyDefaultCurrency, "EVENTS_DEFAULT_CURRENCY", kindString},
	{keySuggestionLimit, "EVENTS_SUGGESTION_LIMIT", kindPositiveInt},
	{keyDatabaseURL, "EVENTS_DB_URL", kindString},
	{keyAPIBase, "WEATHER_API_BASE", kindString},
	{keyUserAgent, "WEATHER_USER_AGENT", kindString},
	{keyHTTPTimeout, "WEATHER_HTTP_TIMEOUT", kindPositiveSeconds},
	{keyForecastPeriods, "WEATHER_FORECAST_PERIODS", kindPositiveInt},
	{keyTransport, "MCP_TRANSPORT", kindTransport},
	{keyHTTPAddr, "HTTP_ADDR", kindString},
}

// SettingsService resolves settings from defaults, the config file and
// the environment, in increasing order of precedence.
type SettingsService struct {
	configStore driven.ConfigStore
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
// configStore may be nil, in which case only defaults and the environment apply.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		lookupEnv:   os.LookupEnv,
	}
}

// Get returns the effective settings. Malformed values are logged and skipped.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()

	for _, def := range settingDefs {
		raw, source, ok := s.lookup(def)
		if !ok {
			continue
		}
		value, err := parseSetting(def.kind, raw)
		if err != nil {
			logger.Warn("ignoring %s from %s: %v", def.key, source, err)
			continue
		}
		assignSetting(&settings, def.key, value)
	}

	return &settings, nil
}

// Set persists a single setting to the config file.
func (s *SettingsService) Set(key, value string) error {
	def, ok := findSetting(key)
	if !ok {
		return domain.ValidationError("unknown setting %q", key)
	}
	if s.configStore == nil {
		return errors.New("no config store configured")
	}

	parsed, err := parseSetting(def.kind, value)
	if err != nil {
		return domain.ValidationError("invalid value for %s: %v", key, err)
	}

	var stored any
	switch v := parsed.(type) {
	case time.Duration:
		stored = v.Seconds()
	case domain.Transport:
		stored = v.String()
	default:
		stored = v
	}
	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// Keys lists the recognised setting keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingDefs))
	for i, def := range settingDefs {
		keys[i] = def.key
	}
	return keys
}

// lookup returns the raw value for def and where it came from.
func (s *SettingsService) lookup(def settingDef) (string, string, bool) {
	if s.lookupEnv != nil {
		if v, ok := s.lookupEnv(def.env); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), def.env, true
		}
	}
	if s.configStore == nil {
		return "", "", false
	}
	val, ok := s.configStore.Get(def.key)
	if !ok {
		return "", "", false
	}
	switch v := val.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return "", "", false
		}
		return strings.TrimSpace(v), s.configStore.Path(), true
	case int64:
		return strconv.FormatInt(v, 10), s.configStore.Path(), true
	case int:
		return strconv.Itoa(v), s.configStore.Path(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), s.configStore.Path(), true
	default:
		return fmt.Sprint(v), s.configStore.Path(), true
	}
}

func findSetting(key string) (settingDef, bool) {
	for _, def := range settingDefs {
		if def.key == key {
			return def, true
		}
	}
	return settingDef{}, false
}

func parseSetting(kind settingKind, raw string) (any, error) {
	switch kind {
	case kindPositiveInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", raw)
		}
		if n <= 0 {
			return nil, fmt.Errorf("%d must be positive", n)
		}
		return n, nil
	case kindPositiveSeconds:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number of seconds", raw)
		}
		if f <= 0 {
			return nil, fmt.Errorf("%v must be positive", f)
		}
		return time.Duration(f * float64(time.Second)), nil
	case kindTransport:
		t, ok := domain.ParseTransport(raw)
		if !ok {
			return nil, fmt.Errorf("unknown transport %q", raw)
		}
		return t, nil
	default:
		return raw, nil
	}
}

func assignSetting(settings *domain.AppSettings, key string, value any) {
	switch key {
	case keyDefaultCurrency:
		settings.Events.DefaultCurrency = value.(string)
	case keySuggestionLimit:
		settings.Events.SuggestionLimit = value.(int)
	case keyDatabaseURL:
		settings.Storage.DatabaseURL = value.(string)
	case keyAPIBase:
		settings.Weather.APIBase = strings.TrimRight(value.(string), "/")
	case keyUserAgent:
		settings.Weather.UserAgent = value.(string)
	case keyHTTPTimeout:
		settings.Weather.Timeout = value.(time.Duration)
	case keyForecastPeriods:
		settings.Weather.ForecastPeriods = value.(int)
	case keyTransport:
		settings.Server.Transport = value.(domain.Transport)
	case keyHTTPAddr:
		settings.Server.HTTPAddr = value.(string)
	}
}
