package logger

// Config defines logger settings.
type Config struct {
	// Level: debug, info, warn, error
	Level string `yaml:"level" json:"level,omitempty" mapstructure:"level"`
	// Format: console or json
	Format string `yaml:"format" json:"format,omitempty" mapstructure:"format"`
	// Outputs: stdout, stderr, or file paths
	Outputs     []string       `yaml:"outputs" json:"outputs,omitempty" mapstructure:"outputs"`
	Rotation    RotationConfig `yaml:"rotation" json:"rotation,omitempty" mapstructure:"rotation"`
	Development bool           `yaml:"development" json:"development,omitempty" mapstructure:"development"`
}

// RotationConfig controls rotation of file outputs.
type RotationConfig struct {
	Enable     bool `yaml:"enable" json:"enable,omitempty" mapstructure:"enable"`
	MaxSizeMB  int  `yaml:"maxSizeMB" json:"maxSizeMB,omitempty" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"maxBackups" json:"maxBackups,omitempty" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"maxAgeDays" json:"maxAgeDays,omitempty" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" json:"compress,omitempty" mapstructure:"compress"`
}

// Enabled reports whether any output is configured.
func (c *Config) Enabled() bool {
	return c != nil && len(c.Outputs) > 0
}
