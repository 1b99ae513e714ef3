package config

const (
	// CliConfigFileName is the base name of the CLI config file, searched
	// with a .yaml or .yml extension.
	CliConfigFileName = "labctl"

	// SystemDirConfigFilePath is the system-wide config directory on Unix.
	SystemDirConfigFilePath = "/usr/local/etc/labctl"

	// WindowsAppDataEnvVar points at the roaming config root on Windows.
	WindowsAppDataEnvVar = "LOCALAPPDATA"

	// CliConfigPathEnvVar restricts the config search to a single directory.
	CliConfigPathEnvVar = "LABCTL_CLI_CONFIG_PATH"
)
