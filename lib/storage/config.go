package storage

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// Config describes where the leveldb data lives. The supported forms are
// `memory://` and `file:///absolute/path`.
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (*Config, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, err
	}

	config := &Config{Scheme: parsed.Scheme}
	switch parsed.Scheme {
	case "memory":
	case "file":
		if len(parsed.Path) < 1 {
			return nil, fmt.Errorf("empty path found: %q", s)
		}
		config.Path = filepath.Clean(parsed.Path)
	default:
		return nil, fmt.Errorf("unsupported storage type: %q", parsed.Scheme)
	}

	return config, nil
}

func (c Config) String() string {
	if c.Scheme == "memory" {
		return "memory://"
	}
	return fmt.Sprintf("%s://%s", c.Scheme, c.Path)
}
