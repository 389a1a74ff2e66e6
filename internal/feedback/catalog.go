// Package feedback turns script signals into coaching lines: template
// selection per speech type, signal-driven overrides, and the tone and
// reading-level rewrites applied afterwards.
package feedback

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var defaultTemplates []byte

// Group names a list of lines inside a bundle.
type Group string

const (
	GroupStrengths    Group = "strengths"
	GroupImprovements Group = "improvements"
	GroupNotes        Group = "notes"
	GroupChecklist    Group = "checklist"
)

// Required number of lines per group.
var groupSizes = map[Group]int{
	GroupStrengths:    3,
	GroupImprovements: 3,
	GroupNotes:        2,
	GroupChecklist:    3,
}

// Condition is a signal test that triggers an override.
type Condition string

const (
	MissingEmotion  Condition = "missing_emotion"
	MissingEvidence Condition = "missing_evidence"
	MissingQuestion Condition = "missing_question"
	WordCountBelow  Condition = "word_count_below"
)

// Override swaps one templated line for Text when its condition holds.
type Override struct {
	Group     Group     `yaml:"group"`
	Index     int       `yaml:"index"`
	When      Condition `yaml:"when"`
	Threshold int       `yaml:"threshold,omitempty"`
	Text      string    `yaml:"text"`
}

// Bundle is the template set for one speech type.
type Bundle struct {
	Strengths    []string   `yaml:"strengths"`
	Improvements []string   `yaml:"improvements"`
	Notes        []string   `yaml:"notes"`
	Checklist    []string   `yaml:"checklist"`
	Overrides    []Override `yaml:"overrides"`
}

func (b Bundle) group(g Group) []string {
	switch g {
	case GroupStrengths:
		return b.Strengths
	case GroupImprovements:
		return b.Improvements
	case GroupNotes:
		return b.Notes
	case GroupChecklist:
		return b.Checklist
	}
	return nil
}

// Catalog holds one bundle per speech type. A loaded catalog is never
// modified, so a single instance serves every request.
type Catalog struct {
	SpeechTypes map[SpeechType]Bundle `yaml:"speech_types"`
}

// ParseCatalog decodes and validates a YAML template catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalogFile reads a catalog from path.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	return ParseCatalog(data)
}

// LoadCatalog returns the catalog at path, or the built-in one when path is
// empty.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	return LoadCatalogFile(path)
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded catalog. It panics if the embedded
// file is invalid, which the package tests guard against.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := ParseCatalog(defaultTemplates)
		if err != nil {
			panic("feedback: invalid embedded templates: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Validate checks that every speech type has a complete bundle and that all
// overrides point at existing lines.
func (c *Catalog) Validate() error {
	for _, t := range SpeechTypes {
		b, ok := c.SpeechTypes[t]
		if !ok {
			return fmt.Errorf("templates: missing speech type %q", t)
		}
		for g, n := range groupSizes {
			if got := len(b.group(g)); got != n {
				return fmt.Errorf("templates: %s %s has %d lines, want %d", t, g, got, n)
			}
		}
		for i, o := range b.Overrides {
			n, ok := groupSizes[o.Group]
			if !ok {
				return fmt.Errorf("templates: %s override %d: unknown group %q", t, i, o.Group)
			}
			if o.Index < 0 || o.Index >= n {
				return fmt.Errorf("templates: %s override %d: index %d out of range", t, i, o.Index)
			}
			switch o.When {
			case MissingEmotion, MissingEvidence, MissingQuestion:
			case WordCountBelow:
				if o.Threshold <= 0 {
					return fmt.Errorf("templates: %s override %d: word_count_below needs a threshold", t, i)
				}
			default:
				return fmt.Errorf("templates: %s override %d: unknown condition %q", t, i, o.When)
			}
			if o.Text == "" {
				return fmt.Errorf("templates: %s override %d: empty text", t, i)
			}
		}
	}
	return nil
}

// Bundle returns the bundle for t, falling back to the public speech bundle.
func (c *Catalog) Bundle(t SpeechType) Bundle {
	if b, ok := c.SpeechTypes[t]; ok {
		return b
	}
	return c.SpeechTypes[PublicSpeech]
}
