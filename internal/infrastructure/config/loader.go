// Package config provides the persistent settings store for medusa with Viper integration.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/bnema/medusa/internal/logging"
)

// ErrUnknownSetting is returned when a section/key pair is not recognised.
var ErrUnknownSetting = errors.New("unknown setting")

// Manager handles configuration loading, watching, and persistence.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	configDir      string
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
	ctx            context.Context
}

// Option customises a Manager.
type Option func(*Manager)

// WithConfigDir reads and writes config.toml in dir instead of the XDG location.
func WithConfigDir(dir string) Option {
	return func(m *Manager) {
		m.configDir = dir
	}
}

// WithContext sets the context whose logger the manager uses.
func WithContext(ctx context.Context) Option {
	return func(m *Manager) {
		m.ctx = ctx
	}
}

// NewManager creates a new configuration manager.
func NewManager(opts ...Option) (*Manager, error) {
	m := &Manager{
		viper:     viper.New(),
		callbacks: make([]func(*Config), 0),
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.configDir == "" {
		configDir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
		}
		m.configDir = configDir
	}

	v := m.viper
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(m.configDir)

	// MEDUSA_SECURITY_ENABLE_TOR, MEDUSA_BROWSER_HOME_PAGE, ...
	v.SetEnvPrefix("MEDUSA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "MEDUSA_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind MEDUSA_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "MEDUSA_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind MEDUSA_LOG_FORMAT: %w", err)
	}

	return m, nil
}

// Load loads the configuration from file and environment variables,
// creating a default file on first run.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(m.configDir, dirPerm); err != nil {
		return fmt.Errorf("failed to ensure config directory: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions",
			m.configFilePath(), err)
	}

	if createErr := m.createDefaultConfig(); createErr != nil {
		return fmt.Errorf("failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			m.configDir, createErr)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(), err)
	}
	return config, nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func normalizeConfig(config *Config) {
	config.Browser.HomePage = strings.TrimSpace(config.Browser.HomePage)
	config.Browser.SearchEngine = strings.ToLower(strings.TrimSpace(config.Browser.SearchEngine))
	if config.Browser.SearchEngine == "" {
		config.Browser.SearchEngine = DefaultSearchEngine
	}

	switch CookiePolicy(strings.ToLower(string(config.Privacy.CookiePolicy))) {
	case CookiePolicyAlways:
		config.Privacy.CookiePolicy = CookiePolicyAlways
	case CookiePolicyNever:
		config.Privacy.CookiePolicy = CookiePolicyNever
	default:
		config.Privacy.CookiePolicy = CookiePolicyNoThirdParty
	}

	switch TorMode(strings.ToLower(string(config.Tor.Mode))) {
	case TorModeSystem:
		config.Tor.Mode = TorModeSystem
	default:
		config.Tor.Mode = TorModeEmbedded
	}

	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	config.Logging.Format = strings.ToLower(strings.TrimSpace(config.Logging.Format))
	config.Appearance.Stylesheet = strings.TrimSpace(config.Appearance.Stylesheet)
}

// Get returns a copy of the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	return cloneConfig(m.config)
}

func cloneConfig(cfg *Config) *Config {
	clone := *cfg
	clone.ContentFiltering.ExtraLists = append([]string(nil), cfg.ContentFiltering.ExtraLists...)
	return &clone
}

// GetSetting returns the value stored under section.key. It never fails:
// an unset key yields its default, an unknown key yields nil.
func (m *Manager) GetSetting(section, key string) any {
	full := settingKey(section, key)
	if !isKnownSetting(full) {
		logging.FromContext(m.ctx).Debug().Str("key", full).Msg("unknown setting requested")
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.viper.Get(full)
}

// Bool returns a boolean setting, false for unknown keys.
func (m *Manager) Bool(section, key string) bool {
	return cast.ToBool(m.GetSetting(section, key))
}

// String returns a string setting, "" for unknown keys.
func (m *Manager) String(section, key string) string {
	return cast.ToString(m.GetSetting(section, key))
}

// UpdateSetting stores value under section.key and persists the whole
// configuration. The value is coerced to the setting's type, so "false"
// works for boolean settings.
func (m *Manager) UpdateSetting(section, key string, value any) error {
	full := settingKey(section, key)
	def, ok := settingValues(DefaultConfig())[full]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, full)
	}

	coerced, err := coerceSetting(def, value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", full, err)
	}

	m.mu.Lock()
	previous := m.viper.Get(full)
	m.viper.Set(full, coerced)

	cfg, err := m.unmarshalConfig()
	if err == nil {
		err = ensureDatabasePath(cfg)
	}
	if err == nil {
		normalizeConfig(cfg)
		err = validateConfig(cfg)
	}
	if err != nil {
		m.viper.Set(full, previous)
		m.mu.Unlock()
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := m.persistLocked(cfg); err != nil {
		m.mu.Unlock()
		return err
	}
	m.notifyCallbacksLocked()
	return nil
}

// Save validates cfg and writes it to disk as the new configuration.
func (m *Manager) Save(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	next := cloneConfig(cfg)
	normalizeConfig(next)
	if err := ensureDatabasePath(next); err != nil {
		return err
	}
	if err := validateConfig(next); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.mu.Lock()
	for key, value := range settingValues(next) {
		m.viper.Set(key, value)
	}
	if err := m.persistLocked(next); err != nil {
		m.mu.Unlock()
		return err
	}
	m.notifyCallbacksLocked()
	return nil
}

// persistLocked writes cfg and makes it current. Must hold m.mu for write.
func (m *Manager) persistLocked(cfg *Config) error {
	if err := WriteConfigOrdered(cfg, m.configFilePath()); err != nil {
		return err
	}
	// The watcher sees our own write; the in-memory config is already current.
	if m.watching {
		m.skipNextReload = true
	}
	m.config = cfg
	return nil
}

// ConfigFile returns the path to the configuration file in use.
func (m *Manager) ConfigFile() string {
	if used := m.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return m.configFilePath()
}

func (m *Manager) configFilePath() string {
	return filepath.Join(m.configDir, configFileName)
}

// createDefaultConfig writes the defaults to a fresh config file.
func (m *Manager) createDefaultConfig() error {
	configFile := m.configFilePath()
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	logging.FromContext(m.ctx).Info().Str("path", configFile).Msg("created default configuration file")
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	for key, value := range settingValues(DefaultConfig()) {
		m.viper.SetDefault(key, value)
	}
}

func settingKey(section, key string) string {
	return strings.ToLower(strings.TrimSpace(section)) + "." + strings.ToLower(strings.TrimSpace(key))
}

func isKnownSetting(full string) bool {
	_, ok := settingValues(DefaultConfig())[full]
	return ok
}

// SettingKeys returns every recognised section.key name.
func SettingKeys() []string {
	values := settingValues(DefaultConfig())
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	return keys
}

// SplitKey splits "section.key" into its two parts.
func SplitKey(full string) (section, key string, err error) {
	section, key, ok := strings.Cut(full, ".")
	if !ok || section == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q (expected section.key)", ErrUnknownSetting, full)
	}
	return section, key, nil
}

// coerceSetting converts value to the type of def.
func coerceSetting(def, value any) (any, error) {
	switch def.(type) {
	case bool:
		return cast.ToBoolE(value)
	case int:
		return cast.ToIntE(value)
	case []string:
		if s, ok := value.(string); ok {
			if strings.TrimSpace(s) == "" {
				return []string{}, nil
			}
			parts := strings.Split(s, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return parts, nil
		}
		return cast.ToStringSliceE(value)
	default:
		return cast.ToStringE(value)
	}
}
