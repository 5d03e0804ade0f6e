package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	var typesRaw string

	fs := pflag.NewFlagSet("gen-debug", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Path, "path", "p", "", "package path to scan")
	fs.StringVarP(&typesRaw, "types", "t", "", "comma-separated type names (default: all annotated types)")
	fs.StringVarP(&cfg.Filename, "filename", "o", "", "output file name")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("--path is required")
	}
	if strings.TrimSpace(cfg.Filename) == "" {
		return nil, fmt.Errorf("--filename is required")
	}

	cfg.Types = splitCommaList(typesRaw)
	return cfg, nil
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
