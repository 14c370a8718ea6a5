// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

const (
	DefaultConfigFileName = "config.ini"
	EnvPrefix             = "STOWBLOB"

	SectionStorage = "storage"
	SectionGeneral = "general"

	DefaultProvider = "azure"
)

// ErrConfigMissing is returned when the configuration file or one of its required keys is absent
var ErrConfigMissing = errors.New("missing configuration")

type StorageConfig struct {
	Provider string `mapstructure:"provider" validate:"required"`
	// Account name (azure), project id (gcp) or access key id (aws)
	Account string `mapstructure:"account" validate:"required_unless=Provider gocloud"`
	// Access key (azure), credentials file (gcp) or secret access key (aws)
	Key string `mapstructure:"key" validate:"required_unless=Provider gocloud"`
	// Container (azure), bucket (gcp, aws) or bucket URL (gocloud)
	Container string `mapstructure:"container" validate:"required"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint" validate:"omitempty,url"`
}

type GeneralConfig struct {
	RestoreDir string `mapstructure:"restoredir"`
	Overwrite  bool   `mapstructure:"overwrite"`
	// Any other [general] settings, kept as read
	Extra map[string]any `mapstructure:",remain"`
}

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	General GeneralConfig `mapstructure:"general"`
}

// Keys that may be set in the storage section; the general section accepts any key
var storageKeys = []string{"provider", "account", "key", "container", "region", "endpoint"}

var generalKeys = []string{"restoredir", "overwrite"}

// Reads, validates and edits a single INI configuration file
type ConfigManager struct {
	path string
}

func NewConfigManager(path string) *ConfigManager {
	if path == "" {
		path = DefaultConfigFileName
	}
	return &ConfigManager{path: path}
}

func (m *ConfigManager) Path() string {
	return m.path
}

// Loads the file, applies defaults and STOWBLOB_<SECTION>_<KEY> environment overrides, and validates the result
func (m *ConfigManager) LoadConfig() (*Config, error) {
	file, err := m.readFile()
	if err != nil {
		return nil, err
	}

	v := newViper()
	if err := v.MergeConfigMap(sectionsToMap(file)); err != nil {
		return nil, fmt.Errorf("error merging config file %s: %w", m.path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(trimSpaceHook())); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", m.path, err)
	}
	cfg.Storage.Provider = strings.ToLower(cfg.Storage.Provider)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", m.path, err)
	}

	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(SectionStorage+".provider", DefaultProvider)
	v.SetDefault(SectionGeneral+".overwrite", true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range storageKeys {
		_ = v.BindEnv(SectionStorage + "." + key)
	}
	for _, key := range generalKeys {
		_ = v.BindEnv(SectionGeneral + "." + key)
	}
	return v
}

func trimSpaceHook() mapstructure.DecodeHookFuncKind {
	return func(from reflect.Kind, to reflect.Kind, data any) (any, error) {
		if from != reflect.String {
			return data, nil
		}
		return strings.TrimSpace(data.(string)), nil
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their INI key rather than the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Checks the invariants of a decoded configuration. Missing required keys are reported as ErrConfigMissing
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("error validating config: %w", err)
	}

	var missing, invalid []string
	for _, fe := range validationErrs {
		key := iniKey(fe.Namespace())
		switch fe.Tag() {
		case "required", "required_unless":
			missing = append(missing, key)
		default:
			invalid = append(invalid, fmt.Sprintf("%s (%s)", key, fe.Tag()))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: required keys not set: %s", ErrConfigMissing, strings.Join(missing, ", "))
	}
	return fmt.Errorf("invalid config values: %s", strings.Join(invalid, ", "))
}

// Turns a validator namespace such as "Config.storage.container" into "storage.container"
func iniKey(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func (m *ConfigManager) readFile() (*ini.File, error) {
	if _, err := os.Stat(m.path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: config file %s not found", ErrConfigMissing, m.path)
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	file, err := ini.LoadSources(ini.LoadOptions{Insensitive: true, SpaceBeforeInlineComment: true}, m.path)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", m.path, err)
	}
	return file, nil
}

// Opens the file for editing, starting from an empty document when it does not exist yet
func (m *ConfigManager) editFile() (*ini.File, error) {
	return ini.LoadSources(ini.LoadOptions{Loose: true, Insensitive: true, SpaceBeforeInlineComment: true}, m.path)
}

func sectionsToMap(file *ini.File) map[string]any {
	out := make(map[string]any)
	for _, section := range file.Sections() {
		if strings.EqualFold(section.Name(), ini.DefaultSection) {
			continue
		}
		values := make(map[string]any)
		for k, v := range section.KeysHash() {
			values[k] = v
		}
		out[section.Name()] = values
	}
	return out
}

func splitKey(key string) (section, field string, err error) {
	parts := strings.SplitN(strings.ToLower(key), ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid config key format: %s. Use format like 'section.key' (e.g., 'storage.container')", key)
	}
	return parts[0], parts[1], nil
}

func (m *ConfigManager) SetValue(key, value string) error {
	section, field, err := splitKey(key)
	if err != nil {
		return err
	}

	switch section {
	case SectionStorage:
		if !contains(storageKeys, field) {
			return fmt.Errorf("unknown config key for storage: %s", field)
		}
	case SectionGeneral:
	default:
		return fmt.Errorf("unknown section in config key: %s", section)
	}

	file, err := m.editFile()
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}
	file.Section(section).Key(field).SetValue(value)

	if err := file.SaveTo(m.path); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func (m *ConfigManager) GetValue(key string) (string, bool, error) {
	section, field, err := splitKey(key)
	if err != nil {
		return "", false, err
	}

	file, err := m.readFile()
	if err != nil {
		return "", false, err
	}

	s, err := file.GetSection(section)
	if err != nil || !s.HasKey(field) {
		return "", false, nil
	}
	return s.Key(field).String(), true, nil
}

func (m *ConfigManager) DeleteValue(key string) (bool, error) {
	section, field, err := splitKey(key)
	if err != nil {
		return false, err
	}

	file, err := m.readFile()
	if err != nil {
		return false, err
	}

	s, err := file.GetSection(section)
	if err != nil || !s.HasKey(field) {
		return false, nil
	}
	s.DeleteKey(field)

	if err := file.SaveTo(m.path); err != nil {
		return false, fmt.Errorf("error writing config file: %w", err)
	}
	return true, nil
}

// Returns every key of the file in 'section.key' form
func (m *ConfigManager) GetAllSettings() (map[string]string, error) {
	file, err := m.readFile()
	if err != nil {
		return nil, err
	}

	settings := make(map[string]string)
	for section, values := range sectionsToMap(file) {
		for k, v := range values.(map[string]any) {
			settings[section+"."+k] = v.(string)
		}
	}
	return settings, nil
}

// Returns the keys of settings in sorted order
func SortedKeys(settings map[string]string) []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
