package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	errUtils "github.com/workshoplabs/labctl/errors"
	log "github.com/workshoplabs/labctl/pkg/logger"
	"github.com/workshoplabs/labctl/pkg/perf"
	"github.com/workshoplabs/labctl/pkg/schema"
	u "github.com/workshoplabs/labctl/pkg/utils"
)

// NotFound indicates that no `labctl.yaml` was found at an explicitly
// requested location. An absent config elsewhere is not an error: the
// defaults below apply.
var NotFound = errors.New("'labctl.yaml' CLI config was not found")

var defaultCliConfig = schema.Configuration{
	Default: true,
	Gcloud: schema.Gcloud{
		Bin: "gcloud",
	},
	Billing: schema.Billing{
		Filter: "Trial",
	},
	Project: schema.Project{
		Prefix: "workshop-",
	},
	Env: schema.Env{
		File:     "workshop.env",
		Template: "workshop.env.template",
		Key:      "GOOGLE_CLOUD_PROJECT",
	},
	Logs: schema.Logs{
		File:  "/dev/stderr",
		Level: "Info",
	},
	Version: schema.Version{
		Check: schema.VersionCheck{
			Enabled:   true,
			Frequency: "daily",
		},
	},
}

// InitCliConfig finds and merges CLI configurations in the following order:
// system dir, user config dir, current dir, ENV vars, command-line arguments.
//
// When configPathOverride is set (the --config flag) only that file is read.
// Otherwise, if LABCTL_CLI_CONFIG_PATH is set only that directory is
// checked. With neither present the search walks the lower to higher
// priority locations and merges every config it finds.
func InitCliConfig(configPathOverride string) (schema.Configuration, error) {
	defer perf.Track(nil, "config.InitCliConfig")()

	var cliConfig schema.Configuration
	configFound := false

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetTypeByDefaultValue(true)

	// Default configuration values. These apply even when a config file is
	// found but does not mention the key.
	v.SetDefault("gcloud.bin", defaultCliConfig.Gcloud.Bin)
	v.SetDefault("billing.filter", defaultCliConfig.Billing.Filter)
	v.SetDefault("project.prefix", defaultCliConfig.Project.Prefix)
	v.SetDefault("env.file", defaultCliConfig.Env.File)
	v.SetDefault("env.template", defaultCliConfig.Env.Template)
	v.SetDefault("env.key", defaultCliConfig.Env.Key)
	v.SetDefault("logs.file", defaultCliConfig.Logs.File)
	v.SetDefault("logs.level", defaultCliConfig.Logs.Level)
	v.SetDefault("version.check.enabled", defaultCliConfig.Version.Check.Enabled)
	v.SetDefault("version.check.frequency", defaultCliConfig.Version.Check.Frequency)

	switch {
	case configPathOverride != "":
		// 1. The --config flag points at a single config file.
		found, configPath, err := processConfigFile(configPathOverride, v)
		if err != nil {
			return cliConfig, err
		}
		if !found {
			return cliConfig, errUtils.Build(NotFound).
				WithContext("path", configPathOverride).
				WithHint("check the --config flag").
				Err()
		}
		configFound = true
		cliConfig.CliConfigPath = configPath

	case os.Getenv(CliConfigPathEnvVar) != "":
		// 2. LABCTL_CLI_CONFIG_PATH names the only directory to check.
		configDir := os.Getenv(CliConfigPathEnvVar)
		log.Debug("Found ENV var", "var", CliConfigPathEnvVar, "value", configDir)

		configFile := filepath.Join(configDir, CliConfigFileName)
		found, configPath, err := processConfigFile(configFile, v)
		if err != nil {
			return cliConfig, err
		}
		if !found {
			return cliConfig, errUtils.Build(NotFound).
				WithContext("path", configDir).
				WithHintf("check the %s environment variable", CliConfigPathEnvVar).
				Err()
		}
		configFound = true
		cliConfig.CliConfigPath = configPath

	default:
		// 3. Check the system directory (optional).
		configFilePathSystem := ""
		if runtime.GOOS == "windows" {
			if appDataDir := os.Getenv(WindowsAppDataEnvVar); len(appDataDir) > 0 {
				configFilePathSystem = filepath.Join(appDataDir, "labctl")
			}
		} else {
			configFilePathSystem = SystemDirConfigFilePath
		}

		if len(configFilePathSystem) > 0 {
			found, configPath, err := processConfigFile(filepath.Join(configFilePathSystem, CliConfigFileName), v)
			if err != nil {
				return cliConfig, err
			}
			if found {
				configFound = true
				cliConfig.CliConfigPath = configPath
			}
		}

		// 4. Check the user config dir: XDG_CONFIG_HOME if defined,
		// otherwise ~/.config, each with a labctl subdirectory.
		userConfigFile := filepath.Join(xdg.ConfigHome, "labctl", CliConfigFileName)
		found, configPath, err := processConfigFile(userConfigFile, v)
		if err != nil {
			return cliConfig, err
		}
		if found {
			configFound = true
			cliConfig.CliConfigPath = configPath
		}

		// 5. Check the current directory.
		cwd, err := os.Getwd()
		if err != nil {
			return cliConfig, err
		}
		found, configPath, err = processConfigFile(filepath.Join(cwd, CliConfigFileName), v)
		if err != nil {
			return cliConfig, err
		}
		if found {
			configFound = true
			cliConfig.CliConfigPath = configPath
		}
	}

	if !configFound {
		// Use the default config if no config was found in any location.
		j, err := json.Marshal(defaultCliConfig)
		if err != nil {
			return cliConfig, err
		}

		if err := v.MergeConfig(bytes.NewReader(j)); err != nil {
			return cliConfig, err
		}
	}

	if err := v.Unmarshal(&cliConfig); err != nil {
		return cliConfig, err
	}

	processEnvVars(&cliConfig)

	cliConfig.Initialized = true
	return cliConfig, nil
}

// processConfigFile merges one config file into the viper instance if it
// exists. Returns whether a file was found and its resolved path.
func processConfigFile(path string, v *viper.Viper) (bool, string, error) {
	configPath, fileExists := u.SearchConfigFile(path)
	if !fileExists {
		return false, "", nil
	}

	reader, err := os.Open(configPath)
	if err != nil {
		return false, "", errUtils.Build(errUtils.ErrOpenFile).
			WithCause(err).
			WithContext("path", configPath).
			Err()
	}

	defer func(reader *os.File) {
		if err := reader.Close(); err != nil {
			log.Warn("error closing config file", "path", configPath, "error", err)
		}
	}(reader)

	if err := v.MergeConfig(reader); err != nil {
		return false, "", errors.Wrapf(err, "merging config file %s", configPath)
	}

	log.Debug("Merged CLI config", "path", configPath)
	return true, configPath, nil
}

// processEnvVars applies LABCTL_* environment variable overrides on top of
// the merged file configuration.
func processEnvVars(cliConfig *schema.Configuration) {
	if gcloudBin := os.Getenv("LABCTL_GCLOUD_BIN"); len(gcloudBin) > 0 {
		log.Debug("Found ENV var", "var", "LABCTL_GCLOUD_BIN", "value", gcloudBin)
		cliConfig.Gcloud.Bin = gcloudBin
	}

	if minVersion := os.Getenv("LABCTL_GCLOUD_MIN_VERSION"); len(minVersion) > 0 {
		log.Debug("Found ENV var", "var", "LABCTL_GCLOUD_MIN_VERSION", "value", minVersion)
		cliConfig.Gcloud.MinVersion = minVersion
	}

	if billingFilter := os.Getenv("LABCTL_BILLING_FILTER"); len(billingFilter) > 0 {
		log.Debug("Found ENV var", "var", "LABCTL_BILLING_FILTER", "value", billingFilter)
		cliConfig.Billing.Filter = billingFilter
	}

	if projectPrefix := os.Getenv("LABCTL_PROJECT_PREFIX"); len(projectPrefix) > 0 {
		log.Debug("Found ENV var", "var", "LABCTL_PROJECT_PREFIX", "value", projectPrefix)
		cliConfig.Project.Prefix = projectPrefix
	}

	if envFile := os.Getenv("LABCTL_ENV_FILE"); len(envFile) > 0 {
		log.Debug("Found ENV var", "var", "LABCTL_ENV_FILE", "value", envFile)
		cliConfig.Env.File = envFile
	}

	if envTemplate := os.Getenv("LABCTL_ENV_TEMPLATE"); len(envTemplate) > 0 {
		log.Debug("Found ENV var", "var", "LABCTL_ENV_TEMPLATE", "value", envTemplate)
		cliConfig.Env.Template = envTemplate
	}

	if envKey := os.Getenv("LABCTL_ENV_KEY"); len(envKey) > 0 {
		log.Debug("Found ENV var", "var", "LABCTL_ENV_KEY", "value", envKey)
		cliConfig.Env.Key = envKey
	}

	if logsLevel := os.Getenv("LABCTL_LOGS_LEVEL"); len(logsLevel) > 0 {
		log.Debug("Found ENV var", "var", "LABCTL_LOGS_LEVEL", "value", logsLevel)
		cliConfig.Logs.Level = logsLevel
	}

	if logsFile := os.Getenv("LABCTL_LOGS_FILE"); len(logsFile) > 0 {
		log.Debug("Found ENV var", "var", "LABCTL_LOGS_FILE", "value", logsFile)
		cliConfig.Logs.File = logsFile
	}
}
