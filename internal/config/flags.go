package config

import (
	"fmt"

	"github.com/c2h5oh/datasize"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ByteSizeValue is a pflag.Value accepting sizes such as 500MB, 5GB or a
// plain byte count
type ByteSizeValue datasize.ByteSize

func (b *ByteSizeValue) String() string {
	return datasize.ByteSize(*b).String()
}

func (b *ByteSizeValue) Set(s string) error {
	var size datasize.ByteSize
	if err := size.UnmarshalText([]byte(s)); err != nil {
		return fmt.Errorf("invalid size %q: %w", s, err)
	}
	*b = ByteSizeValue(size)
	return nil
}

func (b *ByteSizeValue) Type() string {
	return "size"
}

func newByteSizeValue(def string) *ByteSizeValue {
	b := new(ByteSizeValue)
	if err := b.Set(def); err != nil {
		panic(err)
	}
	return b
}

// BindPersistentFlags registers the options shared by every command
func BindPersistentFlags(v *viper.Viper, flagSet *pflag.FlagSet) error {
	flagSet.StringP(KeyRoot, "r", Defaults[KeyRoot], "Directory to fill")
	flagSet.String(KeyLogFile, Defaults[KeyLogFile], "Also write narration to this file (rotated)")

	return bindAll(v, flagSet, KeyRoot, KeyLogFile)
}

// BindFillFlags registers the options of a fill run
func BindFillFlags(v *viper.Viper, flagSet *pflag.FlagSet) error {
	flagSet.Var(newByteSizeValue(Defaults[KeyFileMinSize]), KeyFileMinSize, "Minimum file size (e.g. 500MB)")
	flagSet.Var(newByteSizeValue(Defaults[KeyFileMaxSize]), KeyFileMaxSize, "Maximum file size (e.g. 5GB)")
	flagSet.String(KeyFilePrefix, Defaults[KeyFilePrefix], "Prefix of generated file names")
	flagSet.String(KeyFileSuffix, Defaults[KeyFileSuffix], "Suffix of generated file names, before the extension")
	flagSet.String(KeyFileExtension, Defaults[KeyFileExtension], "Extension of generated files")
	flagSet.Bool(KeyFileUseProgressive, false, "Name files 0, 1, 2, ... instead of random tokens")

	flagSet.Bool(KeySubdirectories, false, "Spread files over generated subdirectories")
	flagSet.Int(KeySubdirectoryMinFiles, 10, "Minimum number of files per subdirectory")
	flagSet.Int(KeySubdirectoryMaxFiles, 50, "Maximum number of files per subdirectory")
	flagSet.String(KeySubdirectoryPrefix, Defaults[KeySubdirectoryPrefix], "Prefix of generated subdirectory names")
	flagSet.String(KeySubdirectorySuffix, Defaults[KeySubdirectorySuffix], "Suffix of generated subdirectory names")
	flagSet.Bool(KeySubdirectoryUseProgressive, false, "Name subdirectories 0, 1, 2, ... instead of random tokens")

	flagSet.Bool(KeyZero, false, "Finish with one file sized to the remaining free space")
	flagSet.Bool(KeyDryRun, false, "Narrate three rounds without touching the disk")
	flagSet.Uint64(KeySeed, 0, "Seed for names, counts and sizes (0 picks one from the clock)")

	return bindAll(v, flagSet,
		KeyFileMinSize, KeyFileMaxSize, KeyFilePrefix, KeyFileSuffix, KeyFileExtension, KeyFileUseProgressive,
		KeySubdirectories, KeySubdirectoryMinFiles, KeySubdirectoryMaxFiles,
		KeySubdirectoryPrefix, KeySubdirectorySuffix, KeySubdirectoryUseProgressive,
		KeyZero, KeyDryRun, KeySeed,
	)
}

func bindAll(v *viper.Viper, flagSet *pflag.FlagSet, keys ...string) error {
	for _, key := range keys {
		if err := v.BindPFlag(key, flagSet.Lookup(key)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}
	return nil
}
