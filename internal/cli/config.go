package cli

// Config stores CLI options for a single generation run.
type Config struct {
	Path        string
	Types       []string
	Filename    string
	ShowVersion bool
}

// OutputFilename returns destination file path for generator layer.
func (c *Config) OutputFilename() string {
	return c.Filename
}
