package dupcmp

import (
	"fmt"
	"strings"

	"github.com/go-ini/ini"
)

// Config represents the dupcmp configuration.
// It is only read from disk when a path is given explicitly; there is no
// implicit configuration file.
type Config struct {
	configPath string
	ini        *ini.File
}

// OutputConfig represents output format configuration
type OutputConfig struct {
	Format string // human, fdupes or json
}

// VerboseConfig represents verbosity configuration
type VerboseConfig struct {
	Level int    // 0=quiet, 1=basic, 2=detailed, 3=trace
	Debug string // comma-separated debug flags
}

// ScanConfig represents traversal configuration
type ScanConfig struct {
	Ignore []string // regular expressions, one per "ignore" key
}

// PerformanceConfig represents comparison tuning
type PerformanceConfig struct {
	CompareWorkers int    // concurrent comparisons per representative (default: 1)
	CompareBuffer  string // per-file read buffer (default: "64K")
}

// AllConfig represents all configuration options
type AllConfig struct {
	Output      *OutputConfig
	Verbose     *VerboseConfig
	Scan        *ScanConfig
	Performance *PerformanceConfig
}

var loadOptions = ini.LoadOptions{AllowShadows: true}

// LoadConfig loads configuration from configPath, or returns the defaults
// when configPath is empty
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{configPath: configPath}

	if configPath == "" {
		cfg.ini = ini.Empty(loadOptions)
		return cfg, nil
	}

	iniFile, err := ini.LoadSources(loadOptions, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	cfg.ini = iniFile

	return cfg, nil
}

// Path returns the file the configuration was read from, if any
func (c *Config) Path() string {
	return c.configPath
}

// GetOutputConfig returns the output configuration
func (c *Config) GetOutputConfig() *OutputConfig {
	outputConfig := &OutputConfig{
		Format: FormatHuman,
	}

	if c.ini.HasSection("output") {
		section := c.ini.Section("output")
		if section.HasKey("format") {
			outputConfig.Format = section.Key("format").String()
		}
	}

	return outputConfig
}

// GetVerboseConfig returns the verbose configuration
func (c *Config) GetVerboseConfig() *VerboseConfig {
	verboseConfig := &VerboseConfig{}

	if c.ini.HasSection("verbose") {
		section := c.ini.Section("verbose")
		if section.HasKey("level") {
			if level, err := section.Key("level").Int(); err == nil {
				verboseConfig.Level = level
			}
		}
		if section.HasKey("debug") {
			verboseConfig.Debug = section.Key("debug").String()
		}
	}

	return verboseConfig
}

// GetScanConfig returns the traversal configuration
func (c *Config) GetScanConfig() *ScanConfig {
	scanConfig := &ScanConfig{}

	if c.ini.HasSection("scan") {
		section := c.ini.Section("scan")
		if section.HasKey("ignore") {
			scanConfig.Ignore = section.Key("ignore").ValueWithShadows()
		}
	}

	return scanConfig
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	performanceConfig := &PerformanceConfig{
		CompareWorkers: 1,
		CompareBuffer:  "64K",
	}

	if c.ini.HasSection("performance") {
		section := c.ini.Section("performance")
		if section.HasKey("compare_workers") {
			if workers, err := section.Key("compare_workers").Int(); err == nil {
				performanceConfig.CompareWorkers = workers
			}
		}
		if section.HasKey("compare_buffer") {
			if bufferSize := section.Key("compare_buffer").String(); bufferSize != "" {
				performanceConfig.CompareBuffer = bufferSize
			}
		}
	}

	return performanceConfig
}

// GetAllConfig returns all configuration options
func (c *Config) GetAllConfig() *AllConfig {
	return &AllConfig{
		Output:      c.GetOutputConfig(),
		Verbose:     c.GetVerboseConfig(),
		Scan:        c.GetScanConfig(),
		Performance: c.GetPerformanceConfig(),
	}
}

// ApplyOverrides applies command-line overrides to the configuration.
// Accepts strings like "format:json", "level:2", "debug:walk", "ignore:\.git/",
// "workers:4" or "buffer:1M". Every "ignore" override adds a pattern.
func (c *Config) ApplyOverrides(overrides []string) error {
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid override format '%s', expected 'key:value'", override)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "format":
			c.ini.Section("output").Key("format").SetValue(value)
		case "level":
			c.ini.Section("verbose").Key("level").SetValue(value)
		case "debug":
			c.ini.Section("verbose").Key("debug").SetValue(value)
		case "ignore":
			if _, err := c.ini.Section("scan").NewKey("ignore", value); err != nil {
				return fmt.Errorf("failed to add ignore pattern: %w", err)
			}
		case "workers":
			c.ini.Section("performance").Key("compare_workers").SetValue(value)
		case "buffer":
			c.ini.Section("performance").Key("compare_buffer").SetValue(value)
		default:
			return fmt.Errorf("unsupported override key '%s' (supported: format, level, debug, ignore, workers, buffer)", key)
		}
	}

	return nil
}

// Validate checks every configured value
func (c *Config) Validate() error {
	all := c.GetAllConfig()
	if err := ValidateOutputFormat(all.Output.Format); err != nil {
		return err
	}
	if err := ValidateVerboseLevel(all.Verbose.Level); err != nil {
		return err
	}
	if err := ValidateCompareWorkers(all.Performance.CompareWorkers); err != nil {
		return err
	}
	if _, err := ParseHumanSize(all.Performance.CompareBuffer); err != nil {
		return fmt.Errorf("invalid compare buffer: %w", err)
	}
	for _, pattern := range all.Scan.Ignore {
		if _, err := NewIgnoreList(pattern); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOutputFormat validates that an output format is supported
func ValidateOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatHuman, FormatFdupes, FormatJSON:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: human, fdupes, json)", format)
	}
}

// ValidateVerboseLevel validates that a verbose level is valid
func ValidateVerboseLevel(level int) error {
	if level < 0 || level > 3 {
		return fmt.Errorf("invalid verbose level: %d (supported: 0-3)", level)
	}
	return nil
}

// ValidateCompareWorkers validates that the comparison worker count is reasonable
func ValidateCompareWorkers(workers int) error {
	if workers < 1 {
		return fmt.Errorf("compare workers must be at least 1, got: %d", workers)
	}
	if workers > 64 {
		return fmt.Errorf("compare workers should not exceed 64, got: %d", workers)
	}
	return nil
}
