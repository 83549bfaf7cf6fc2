// Package content loads the static site content: sponsors, judges, FAQ,
// prizes and project ideas. The data is read once at startup and served
// read-only; accessors hand out copies so no caller can change what the
// next caller sees.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aanand-mishra/hackathon-api/internal/types"
)

//go:embed content.yaml
var builtin []byte

// Catalog is the loaded content.
type Catalog struct {
	sponsors []types.Sponsor
	judges   []types.Judge
	faqs     []types.FAQ
	prizes   []types.Prize
	ideas    []types.Idea
}

type document struct {
	Sponsors []types.Sponsor `yaml:"sponsors"`
	Judges   []types.Judge   `yaml:"judges"`
	FAQs     []types.FAQ     `yaml:"faqs"`
	Prizes   []types.Prize   `yaml:"prizes"`
	Ideas    []types.Idea    `yaml:"ideas"`
}

// Load reads the catalog from path, or the built-in content when path is
// empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(builtin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content.Load: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML content document. Judge ids must be unique since
// they are used for lookups.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("content.Parse: %w", err)
	}

	seen := make(map[string]bool, len(doc.Judges))
	for _, j := range doc.Judges {
		if j.ID == "" {
			return nil, fmt.Errorf("content.Parse: judge %q has no id", j.Name)
		}
		if seen[j.ID] {
			return nil, fmt.Errorf("content.Parse: duplicate judge id %q", j.ID)
		}
		seen[j.ID] = true
	}

	return &Catalog{
		sponsors: doc.Sponsors,
		judges:   doc.Judges,
		faqs:     doc.FAQs,
		prizes:   doc.Prizes,
		ideas:    doc.Ideas,
	}, nil
}

// Sponsors returns a copy of the sponsor list in display order.
func (c *Catalog) Sponsors() []types.Sponsor { return clone(c.sponsors) }

// Judges returns a copy of the judges in display order, with full bios.
func (c *Catalog) Judges() []types.Judge { return clone(c.judges) }

// FAQs returns a copy of the question and answer list.
func (c *Catalog) FAQs() []types.FAQ { return clone(c.faqs) }

// Prizes returns a copy of the prize list.
func (c *Catalog) Prizes() []types.Prize { return clone(c.prizes) }

// Judge looks a judge up by id.
func (c *Catalog) Judge(id string) (types.Judge, bool) {
	for _, j := range c.judges {
		if j.ID == id {
			return j, true
		}
	}
	return types.Judge{}, false
}

// IdeaFilter narrows the idea list. Empty fields match everything;
// comparisons ignore case.
type IdeaFilter struct {
	Category   string
	Difficulty string
}

func (c *Catalog) Ideas(f IdeaFilter) []types.Idea {
	out := make([]types.Idea, 0, len(c.ideas))
	for _, idea := range c.ideas {
		if f.Category != "" && !strings.EqualFold(idea.Category, f.Category) {
			continue
		}
		if f.Difficulty != "" && !strings.EqualFold(idea.Difficulty, f.Difficulty) {
			continue
		}
		idea.TechStack = clone(idea.TechStack)
		idea.PotentialFeatures = clone(idea.PotentialFeatures)
		out = append(out, idea)
	}
	return out
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
