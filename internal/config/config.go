// Package config resolves the drive filler options from command-line flags,
// DRIVE_FILLER_* environment variables, an optional YAML file and built-in
// defaults, in that order of precedence. It also writes options back as YAML.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/zoro11031/drive-filler/internal/common"
	"github.com/zoro11031/drive-filler/internal/filler"
)

// Options is the user-facing form of a fill run
type Options struct {
	Root string `yaml:"root"`

	FileMinSize        datasize.ByteSize `yaml:"file-min-size"`
	FileMaxSize        datasize.ByteSize `yaml:"file-max-size"`
	FilePrefix         string            `yaml:"file-prefix"`
	FileSuffix         string            `yaml:"file-suffix"`
	FileExtension      string            `yaml:"file-extension"`
	FileUseProgressive bool              `yaml:"file-use-progressive"`

	Subdirectories             bool   `yaml:"subdirectories"`
	SubdirectoryMinFiles       int    `yaml:"subdirectory-min-files"`
	SubdirectoryMaxFiles       int    `yaml:"subdirectory-max-files"`
	SubdirectoryPrefix         string `yaml:"subdirectory-prefix"`
	SubdirectorySuffix         string `yaml:"subdirectory-suffix"`
	SubdirectoryUseProgressive bool   `yaml:"subdirectory-use-progressive"`

	Zero    bool   `yaml:"zero"`
	DryRun  bool   `yaml:"dry-run"`
	Seed    uint64 `yaml:"seed"`
	LogFile string `yaml:"log-file"`
}

// NewViper returns a viper instance holding the defaults and reading
// DRIVE_FILLER_* environment variables
func NewViper() *viper.Viper {
	v := viper.New()
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configFile into v, if given, and decodes the merged options
func Load(v *viper.Viper, configFile string) (*Options, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var opts Options
	err := v.Unmarshal(&opts, viper.DecodeHook(DecodeHook()), func(decoderConfig *mapstructure.DecoderConfig) {
		decoderConfig.TagName = "yaml"
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode options: %w", err)
	}

	return &opts, nil
}

// DecodeHook turns strings such as "500MB" into datasize.ByteSize values
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.TextUnmarshallerHookFunc()
}

// Validate rejects options that cannot be repaired by clamping
func (o *Options) Validate() error {
	if err := common.ValidateNotEmpty(o.Root); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyRoot, err)
	}

	components := []struct {
		key   string
		value string
	}{
		{KeyFilePrefix, o.FilePrefix},
		{KeyFileSuffix, o.FileSuffix},
		{KeySubdirectoryPrefix, o.SubdirectoryPrefix},
		{KeySubdirectorySuffix, o.SubdirectorySuffix},
	}
	for _, c := range components {
		if err := common.ValidateNameComponent(c.value); err != nil {
			return fmt.Errorf("invalid %s: %w", c.key, err)
		}
	}

	if err := common.ValidateExtension(o.FileExtension); err != nil {
		return fmt.Errorf("invalid %s: %w", KeyFileExtension, err)
	}

	return nil
}

// Params converts the options into generator parameters. Ranges are
// repaired later by filler.NewConfig.
func (o *Options) Params() filler.Params {
	return filler.Params{
		Root:        o.Root,
		FileMinSize: sizeToInt64(o.FileMinSize),
		FileMaxSize: sizeToInt64(o.FileMaxSize),
		FileNaming: filler.Naming{
			Prefix:      o.FilePrefix,
			Suffix:      o.FileSuffix,
			Extension:   o.FileExtension,
			Progressive: o.FileUseProgressive,
		},
		Subdirectories:       o.Subdirectories,
		SubdirectoryMinFiles: o.SubdirectoryMinFiles,
		SubdirectoryMaxFiles: o.SubdirectoryMaxFiles,
		SubdirectoryNaming: filler.Naming{
			Prefix:      o.SubdirectoryPrefix,
			Suffix:      o.SubdirectorySuffix,
			Progressive: o.SubdirectoryUseProgressive,
		},
		DrainRemainingSpace: o.Zero,
		DryRun:              o.DryRun,
	}
}

func sizeToInt64(size datasize.ByteSize) int64 {
	if size.Bytes() > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(size.Bytes())
}

// Marshal renders the options as YAML
func (o *Options) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}
	return data, nil
}

// Save writes the options to path as YAML using atomic write pattern
// This prevents a half-written config file if the write fails midway
func (o *Options) Save(path string) error {
	data, err := o.Marshal()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Create temporary file in the same directory for atomic rename
	tmpFile, err := os.CreateTemp(dir, ".drive-filler.yaml.tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath) // Cleanup on error

	if err := tmpFile.Chmod(0644); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to set permissions on temp file: %w", err)
	}

	fmt.Fprintln(tmpFile, "# drive-filler configuration")
	fmt.Fprintf(tmpFile, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	// Sync to ensure data is written to disk
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Atomic rename - if this succeeds, the old config is replaced atomically
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to config: %w", err)
	}

	return nil
}
