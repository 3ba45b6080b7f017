// Package catalog loads the term's course offerings and renders the
// registration page that hosts the cart panel.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Section is one scheduled section of a course.
type Section struct {
	ID       string `yaml:"id"`
	Label    string `yaml:"label"`
	Schedule string `yaml:"schedule"`
	Fee      string `yaml:"fee"`
}

// Course is an offering with its selectable sections.
type Course struct {
	Code     string    `yaml:"code"`
	Title    string    `yaml:"title"`
	Credits  string    `yaml:"credits"`
	Sections []Section `yaml:"sections"`
}

// Catalog is the registration page input.
type Catalog struct {
	Term             string   `yaml:"term"`
	Currency         string   `yaml:"currency"`
	CreditsRemaining string   `yaml:"credits_remaining"`
	Courses          []Course `yaml:"courses"`
}

// Load reads a YAML catalog from path, or the embedded default when path is
// empty.
func Load(path string) (Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Validate rejects empty or duplicate course codes and empty section ids.
func (c Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Courses))
	for _, co := range c.Courses {
		if co.Code == "" {
			return errors.New("catalog: course with empty code")
		}
		if seen[co.Code] {
			return fmt.Errorf("catalog: duplicate course %s", co.Code)
		}
		seen[co.Code] = true
		for _, s := range co.Sections {
			if s.ID == "" {
				return fmt.Errorf("catalog: course %s has a section with empty id", co.Code)
			}
		}
	}
	return nil
}
