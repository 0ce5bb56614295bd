package cnst

const (
	// ConsoleYaml is the default configuration file name
	ConsoleYaml = "console.yaml"
)
