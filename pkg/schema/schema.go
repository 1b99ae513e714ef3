package schema

// Configuration represents the schema for the `labctl.yaml` CLI config.
type Configuration struct {
	Gcloud        Gcloud  `yaml:"gcloud" json:"gcloud" mapstructure:"gcloud"`
	Billing       Billing `yaml:"billing" json:"billing" mapstructure:"billing"`
	Project       Project `yaml:"project" json:"project" mapstructure:"project"`
	Env           Env     `yaml:"env" json:"env" mapstructure:"env"`
	Hooks         Hooks   `yaml:"hooks,omitempty" json:"hooks,omitempty" mapstructure:"hooks"`
	Logs          Logs    `yaml:"logs,omitempty" json:"logs,omitempty" mapstructure:"logs"`
	Version       Version `yaml:"version,omitempty" json:"version,omitempty" mapstructure:"version"`
	CliConfigPath string  `yaml:"cliConfigPath,omitempty" json:"cliConfigPath,omitempty" mapstructure:"cliConfigPath"`
	Initialized   bool    `yaml:"initialized" json:"initialized" mapstructure:"initialized"`
	Default       bool    `yaml:"default" json:"default" mapstructure:"default"`
}

// Gcloud configures how the Google Cloud CLI binary is invoked.
type Gcloud struct {
	// Bin is the gcloud executable name or path.
	Bin string `yaml:"bin" json:"bin" mapstructure:"bin"`
	// MinVersion is the minimum Google Cloud SDK version labctl accepts.
	// Empty disables the version gate.
	MinVersion string `yaml:"min_version,omitempty" json:"min_version,omitempty" mapstructure:"min_version"`
}

// Billing configures trial billing account discovery.
type Billing struct {
	// Filter is the display-name substring that marks a trial account.
	Filter string `yaml:"filter" json:"filter" mapstructure:"filter"`
}

// Project configures workshop project identifier generation.
type Project struct {
	// Prefix is prepended to generated project identifiers.
	Prefix string `yaml:"prefix" json:"prefix" mapstructure:"prefix"`
}

// Env configures the local environment record file.
type Env struct {
	// File is the environment file path, relative to the working directory.
	File string `yaml:"file" json:"file" mapstructure:"file"`
	// Template is copied to File when File does not exist yet.
	Template string `yaml:"template,omitempty" json:"template,omitempty" mapstructure:"template"`
	// Key is the managed environment variable name.
	Key string `yaml:"key" json:"key" mapstructure:"key"`
}

// Hooks lists shell commands labctl runs at lifecycle points.
type Hooks struct {
	// AfterSetup commands run after a successful `labctl setup`, with the
	// resolved project exported in the environment.
	AfterSetup []string `yaml:"after_setup,omitempty" json:"after_setup,omitempty" mapstructure:"after_setup"`
}

// Logs configures log verbosity and destination.
type Logs struct {
	File  string `yaml:"file,omitempty" json:"file,omitempty" mapstructure:"file"`
	Level string `yaml:"level,omitempty" json:"level,omitempty" mapstructure:"level"`
}

// Version configures the periodic release check.
type Version struct {
	Check VersionCheck `yaml:"check,omitempty" json:"check,omitempty" mapstructure:"check"`
}

// VersionCheck controls when `labctl` looks for a newer release.
type VersionCheck struct {
	Enabled bool `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	// Frequency accepts seconds, a duration like "12h", or a keyword
	// such as daily or weekly.
	Frequency string `yaml:"frequency,omitempty" json:"frequency,omitempty" mapstructure:"frequency"`
}
