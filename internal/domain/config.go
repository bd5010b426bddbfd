package domain

import (
	"fmt"
	"strings"
)

// Settings holds per-project configuration loaded from .automigrate.yaml.
type Settings struct {
	Only   []string `yaml:"only"    json:"only,omitempty"`
	Skip   []string `yaml:"skip"    json:"skip,omitempty"`
	DryRun bool     `yaml:"dry_run" json:"dry_run,omitempty"`
}

// DefaultSettings returns settings that run every fix.
func DefaultSettings() Settings {
	return Settings{}
}

// Validate checks the settings for empty or conflicting fix ids.
func (s Settings) Validate() error {
	only := make(map[string]bool, len(s.Only))
	for _, id := range s.Only {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("only: empty fix id")
		}
		only[id] = true
	}
	for _, id := range s.Skip {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("skip: empty fix id")
		}
		if only[id] {
			return fmt.Errorf("fix %q is listed in both only and skip", id)
		}
	}
	return nil
}

// ValidateAgainst checks that every referenced fix id exists in c.
func (s Settings) ValidateAgainst(c *Catalog) error {
	for _, ids := range [][]string{s.Only, s.Skip} {
		for _, id := range ids {
			if _, ok := c.Lookup(id); !ok {
				return fmt.Errorf("%w: %q", ErrUnknownFix, id)
			}
		}
	}
	return nil
}
