package config

import "runtime"

// Option keys. They double as flag names, YAML keys and, upper-cased with
// dashes replaced by underscores, as DRIVE_FILLER_* environment variables.
const (
	// Volume
	KeyRoot = "root"

	// Files
	KeyFileMinSize        = "file-min-size"
	KeyFileMaxSize        = "file-max-size"
	KeyFilePrefix         = "file-prefix"
	KeyFileSuffix         = "file-suffix"
	KeyFileExtension      = "file-extension"
	KeyFileUseProgressive = "file-use-progressive"

	// Subdirectories
	KeySubdirectories             = "subdirectories"
	KeySubdirectoryMinFiles       = "subdirectory-min-files"
	KeySubdirectoryMaxFiles       = "subdirectory-max-files"
	KeySubdirectoryPrefix         = "subdirectory-prefix"
	KeySubdirectorySuffix         = "subdirectory-suffix"
	KeySubdirectoryUseProgressive = "subdirectory-use-progressive"

	// Run
	KeyZero    = "zero"
	KeyDryRun  = "dry-run"
	KeySeed    = "seed"
	KeyLogFile = "log-file"
)

// EnvPrefix is prepended to environment variable names
const EnvPrefix = "DRIVE_FILLER"

// Default values for configuration keys
var Defaults = map[string]string{
	KeyRoot:                       defaultRoot(),
	KeyFileMinSize:                "500MB",
	KeyFileMaxSize:                "5GB",
	KeyFilePrefix:                 "",
	KeyFileSuffix:                 "",
	KeyFileExtension:              ".bin",
	KeyFileUseProgressive:         "false",
	KeySubdirectories:             "false",
	KeySubdirectoryMinFiles:       "10",
	KeySubdirectoryMaxFiles:       "50",
	KeySubdirectoryPrefix:         "",
	KeySubdirectorySuffix:         "",
	KeySubdirectoryUseProgressive: "false",
	KeyZero:                       "false",
	KeyDryRun:                     "false",
	KeySeed:                       "0",
	KeyLogFile:                    "",
}

func defaultRoot() string {
	if runtime.GOOS == "windows" {
		return `C:\fill`
	}
	return "/mnt/fill"
}
