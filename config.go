package paper

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/agiangrant/paper/style"
)

// DefaultConfigFile is the file LoadConfig reads when given an empty path.
const DefaultConfigFile = "paper.toml"

// Config represents the paper.toml configuration file.
type Config struct {
	Pool    PoolConfig    `toml:"pool"`
	Log     LogConfig     `toml:"log"`
	Theme   ThemeConfig   `toml:"theme"`
	Metrics MetricsConfig `toml:"metrics"`
}

// PoolConfig sizes the style pool.
type PoolConfig struct {
	// Released styles kept for reuse. 0 means no limit.
	MaxRetained int `toml:"max_retained" validate:"gte=0,lte=1048576"`
}

type LogConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	// Console output instead of JSON
	Human bool `toml:"human"`
}

type ThemeConfig struct {
	// Theme file (.toml, .yaml or .yml). Empty means no theme.
	File string `toml:"file" validate:"omitempty,theme_file"`
}

type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		Pool: PoolConfig{
			MaxRetained: style.DefaultPoolConfig().MaxRetained,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// LoadConfig loads the configuration from path, or from paper.toml when
// path is empty. A missing file yields the default config.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// SaveConfig writes config to path.
func SaveConfig(path string, config Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("paper: invalid config")

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("theme_file", func(fl validator.FieldLevel) bool {
			name := strings.ToLower(fl.Field().String())
			return strings.HasSuffix(name, ".toml") || strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks every field of the config.
func (c Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return fmt.Errorf("%w: %s failed validation for tag '%s'", ErrInvalidConfig, strings.ToLower(fe.Namespace()), fe.Tag())
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}
