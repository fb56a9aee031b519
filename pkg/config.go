package duplicatefinder

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ini/ini"
)

// Config represents the dupfind configuration file
type Config struct {
	configPath string
	ini        *ini.File
}

// HashConfig represents hash algorithm configuration
type HashConfig struct {
	Default string // Default hash algorithm
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	HashWorkers int    // Number of concurrent hash workers, 0 = one per CPU
	HashBuffer  string // Read chunk size, e.g. "4K"
}

// OutputConfig represents output format configuration
type OutputConfig struct {
	Format string // none, human, json, fdupes
	Color  string // auto, always, never
}

// VerboseConfig represents verbosity configuration
type VerboseConfig struct {
	Level int    // 0=quiet, 1=basic, 2=detailed, 3=trace
	Debug string // Debug flags (comma-separated)
}

// DeleteConfig represents deletion behaviour
type DeleteConfig struct {
	DryRun bool `ini:"dry_run"`
}

// AllConfig represents all configuration options
type AllConfig struct {
	Hash        *HashConfig
	Performance *PerformanceConfig
	Output      *OutputConfig
	Verbose     *VerboseConfig
	Delete      *DeleteConfig
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/dupfind/config (or the platform
// equivalent), or "" when no config directory can be determined
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dupfind", "config")
}

// LoadConfig loads configuration from configPath. A missing file, or an empty
// path, yields the built-in defaults without touching disk.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{
		configPath: configPath,
	}

	if configPath == "" {
		cfg.ini = ini.Empty()
		return cfg, cfg.setDefaults()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg.ini = ini.Empty()
		if err := cfg.setDefaults(); err != nil {
			return nil, fmt.Errorf("failed to set default config: %w", err)
		}
		return cfg, nil
	}

	iniFile, err := ini.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	cfg.ini = iniFile
	return cfg, nil
}

// Path returns the file the configuration is loaded from and saved to
func (c *Config) Path() string {
	return c.configPath
}

// setDefaults sets default configuration values
func (c *Config) setDefaults() error {
	defaults := []struct {
		section, key, value string
	}{
		{"filehash", "default", DefaultHashAlgorithm},
		{"performance", "hash_workers", "0"},
		{"performance", "hash_buffer", DefaultHashBuffer},
		{"output", "format", DefaultOutputFormat},
		{"output", "color", "auto"},
		{"verbose", "level", "0"},
		{"verbose", "debug", ""},
		{"delete", "dry_run", "false"},
	}

	for _, d := range defaults {
		section, err := c.ini.NewSection(d.section)
		if err != nil {
			return fmt.Errorf("failed to create %s section: %w", d.section, err)
		}
		if _, err := section.NewKey(d.key, d.value); err != nil {
			return fmt.Errorf("failed to set default %s.%s: %w", d.section, d.key, err)
		}
	}
	return nil
}

// GetHashConfig returns the hash configuration
func (c *Config) GetHashConfig() *HashConfig {
	hashConfig := &HashConfig{
		Default: DefaultHashAlgorithm,
	}

	if c.ini.HasSection("filehash") {
		section := c.ini.Section("filehash")
		if section.HasKey("default") {
			hashConfig.Default = section.Key("default").String()
		}
	}

	return hashConfig
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	performanceConfig := &PerformanceConfig{
		HashWorkers: 0,
		HashBuffer:  DefaultHashBuffer,
	}

	if c.ini.HasSection("performance") {
		section := c.ini.Section("performance")
		if section.HasKey("hash_workers") {
			if workers, err := section.Key("hash_workers").Int(); err == nil {
				performanceConfig.HashWorkers = workers
			}
		}
		if section.HasKey("hash_buffer") {
			if bufferSize := section.Key("hash_buffer").String(); bufferSize != "" {
				performanceConfig.HashBuffer = bufferSize
			}
		}
	}

	return performanceConfig
}

// GetOutputConfig returns the output configuration
func (c *Config) GetOutputConfig() *OutputConfig {
	outputConfig := &OutputConfig{
		Format: DefaultOutputFormat,
		Color:  "auto",
	}

	if c.ini.HasSection("output") {
		section := c.ini.Section("output")
		if section.HasKey("format") {
			outputConfig.Format = section.Key("format").String()
		}
		if section.HasKey("color") {
			outputConfig.Color = section.Key("color").String()
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

// GetDeleteConfig returns the deletion configuration
func (c *Config) GetDeleteConfig() *DeleteConfig {
	deleteConfig := &DeleteConfig{}
	if c.ini.HasSection("delete") {
		if err := c.ini.Section("delete").MapTo(deleteConfig); err != nil {
			return &DeleteConfig{}
		}
	}
	return deleteConfig
}

// GetAllConfig returns all configuration options
func (c *Config) GetAllConfig() *AllConfig {
	return &AllConfig{
		Hash:        c.GetHashConfig(),
		Performance: c.GetPerformanceConfig(),
		Output:      c.GetOutputConfig(),
		Verbose:     c.GetVerboseConfig(),
		Delete:      c.GetDeleteConfig(),
	}
}

// Validate checks every value a run depends on
func (c *Config) Validate() error {
	for _, typed := range []struct {
		section, key, kind string
	}{
		{"performance", "hash_workers", "int"},
		{"verbose", "level", "int"},
		{"delete", "dry_run", "bool"},
	} {
		if err := c.checkKeyType(typed.section, typed.key, typed.kind); err != nil {
			return err
		}
	}

	all := c.GetAllConfig()
	if err := ValidateHashAlgorithm(all.Hash.Default); err != nil {
		return err
	}
	if err := ValidateHashWorkers(all.Performance.HashWorkers); err != nil {
		return err
	}
	if _, err := ParseHumanSize(all.Performance.HashBuffer); err != nil {
		return fmt.Errorf("invalid hash_buffer: %w", err)
	}
	if err := ValidateOutputFormat(all.Output.Format); err != nil {
		return err
	}
	if err := ValidateColorMode(all.Output.Color); err != nil {
		return err
	}
	return ValidateVerboseLevel(all.Verbose.Level)
}

// checkKeyType reports a key whose value does not parse as kind; the getters
// silently fall back to defaults on such values
func (c *Config) checkKeyType(section, key, kind string) error {
	if !c.ini.HasSection(section) || !c.ini.Section(section).HasKey(key) {
		return nil
	}
	k := c.ini.Section(section).Key(key)
	var err error
	switch kind {
	case "int":
		_, err = k.Int()
	case "bool":
		_, err = k.Bool()
	}
	if err != nil {
		return fmt.Errorf("invalid %s.%s %q: %w", section, key, k.String(), err)
	}
	return nil
}

// FinderOptions builds pipeline options from the configuration
func (c *Config) FinderOptions(observer Observer) (FinderOptions, error) {
	performance := c.GetPerformanceConfig()
	bufferSize, err := ParseHumanSize(performance.HashBuffer)
	if err != nil {
		return FinderOptions{}, fmt.Errorf("invalid hash_buffer: %w", err)
	}
	return FinderOptions{
		Algorithm:  c.GetHashConfig().Default,
		Workers:    performance.HashWorkers,
		BufferSize: bufferSize,
		Observer:   observer,
	}, nil
}

// SetHashDefault sets the default hash algorithm
func (c *Config) SetHashDefault(algorithm string) {
	c.ini.Section("filehash").Key("default").SetValue(algorithm)
}

// SetHashWorkers sets the number of hash workers
func (c *Config) SetHashWorkers(workers int) {
	c.ini.Section("performance").Key("hash_workers").SetValue(strconv.Itoa(workers))
}

// SetVerboseLevel sets the verbose level
func (c *Config) SetVerboseLevel(level int) {
	c.ini.Section("verbose").Key("level").SetValue(strconv.Itoa(level))
}

// SetOutputFormat sets the output format
func (c *Config) SetOutputFormat(format string) {
	c.ini.Section("output").Key("format").SetValue(format)
}

// SetDryRun sets the default dry-run mode for deletions
func (c *Config) SetDryRun(dryRun bool) {
	c.ini.Section("delete").Key("dry_run").SetValue(strconv.FormatBool(dryRun))
}

// SetHashBuffer sets the read chunk size, e.g. "64K"
func (c *Config) SetHashBuffer(size string) {
	c.ini.Section("performance").Key("hash_buffer").SetValue(size)
}

// SetColorMode sets when human output is coloured
func (c *Config) SetColorMode(mode string) {
	c.ini.Section("output").Key("color").SetValue(mode)
}

// SetDebugFlags sets the comma-separated debug flags
func (c *Config) SetDebugFlags(flags string) {
	c.ini.Section("verbose").Key("debug").SetValue(flags)
}

// Save saves the configuration to disk, creating its directory if needed
func (c *Config) Save() error {
	if c.configPath == "" {
		return fmt.Errorf("no config path to save to")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return c.ini.SaveTo(c.configPath)
}

// SaveTo saves the configuration to path and makes path the config's home
func (c *Config) SaveTo(path string) error {
	c.configPath = path
	return c.Save()
}

// WriteTo writes the configuration in INI form
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	return c.ini.WriteTo(w)
}

// ApplyOverrides applies command-line overrides to the configuration.
// Accepts strings like "default:sha256", "format:json", "level:2",
// "hash_workers:8", "hash_buffer:64K", "dry_run:true".
func (c *Config) ApplyOverrides(overrides []string) error {
	for _, override := range overrides {
		parts := strings.SplitN(override, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid override format '%s', expected 'key:value'", override)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "default":
			c.ini.Section("filehash").Key("default").SetValue(value)
		case "hash_workers", "hash_buffer":
			c.ini.Section("performance").Key(key).SetValue(value)
		case "format", "color":
			c.ini.Section("output").Key(key).SetValue(value)
		case "level", "debug":
			c.ini.Section("verbose").Key(key).SetValue(value)
		case "dry_run":
			c.ini.Section("delete").Key("dry_run").SetValue(value)
		default:
			return fmt.Errorf("unsupported override key '%s' (supported: default, hash_workers, hash_buffer, format, color, level, debug, dry_run)", key)
		}
	}

	return nil
}

// ValidateHashAlgorithm validates that a hash algorithm is supported
func ValidateHashAlgorithm(algorithm string) error {
	if _, ok := HashTypeFromName(algorithm); !ok {
		return fmt.Errorf("unsupported hash algorithm: %s (supported: %s)", algorithm, strings.Join(SupportedHashAlgorithms(), ", "))
	}
	return nil
}

// ValidateVerboseLevel validates that a verbose level is valid
func ValidateVerboseLevel(level int) error {
	if level < VerboseQuiet || level > VerboseTrace {
		return fmt.Errorf("invalid verbose level: %d (supported: 0-3)", level)
	}
	return nil
}

// ValidateHashWorkers validates that the hash worker count is reasonable.
// Zero selects one worker per logical CPU.
func ValidateHashWorkers(workers int) error {
	if workers < 0 {
		return fmt.Errorf("hash workers must not be negative, got: %d", workers)
	}
	if workers > MaxHashWorkers {
		return fmt.Errorf("hash workers should not exceed %d, got: %d", MaxHashWorkers, workers)
	}
	return nil
}

// ValidateColorMode validates a colour mode
func ValidateColorMode(mode string) error {
	switch strings.ToLower(mode) {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("unsupported color mode: %s (supported: auto, always, never)", mode)
	}
}
