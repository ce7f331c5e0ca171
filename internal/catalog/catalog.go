// Package catalog defines the immutable, ordered list of tour steps and
// loads tour definitions from YAML. Catalog order is navigation order.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tourguide/internal/geometry"
)

// Kind distinguishes the two step shapes.
type Kind int

const (
	// KindSpotlight dims the screen except for a cutout around a target.
	KindSpotlight Kind = iota

	// KindModal has no target: centered tooltip over an opaque backdrop.
	KindModal
)

// String returns the YAML form of the kind.
func (k Kind) String() string {
	if k == KindModal {
		return "modal"
	}
	return "spotlight"
}

// ParseKind converts the YAML form back to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "spotlight", "":
		return KindSpotlight, true
	case "modal":
		return KindModal, true
	}
	return KindSpotlight, false
}

// Step is one immutable tour step descriptor.
type Step struct {
	// ID is unique within the tour and stable across sessions.
	ID string

	Kind Kind

	// TargetRef locates a live UI region at render time. It is an opaque
	// identifier, never a direct handle: the region may not exist yet or
	// may re-mount between renders. Empty for modal steps.
	TargetRef string

	Title       string
	Description string
	Placement   geometry.Placement

	// Emphasize requests an extra visual affordance on the target.
	Emphasize bool
}

// Catalog is a tour definition: identity, version stamp, and the ordered
// steps. The version string is stamped into the persisted record at
// completion; bumping it re-surfaces the tour.
type Catalog struct {
	id      string
	version string
	steps   []Step
}

// New validates the steps and builds a catalog. The steps slice is copied;
// later mutation of the argument does not affect the catalog.
func New(id, version string, steps []Step) (*Catalog, error) {
	seen := make(map[string]struct{}, len(steps))
	for i, s := range steps {
		if s.ID == "" {
			return nil, fmt.Errorf("step %d: missing id", i)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("step %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = struct{}{}
		if s.Kind == KindSpotlight && s.TargetRef == "" {
			return nil, fmt.Errorf("step %q: spotlight steps require a target", s.ID)
		}
	}
	c := &Catalog{id: id, version: version, steps: make([]Step, len(steps))}
	copy(c.steps, steps)
	return c, nil
}

// ID returns the tour identifier.
func (c *Catalog) ID() string { return c.id }

// Version returns the tour definition version.
func (c *Catalog) Version() string { return c.version }

// Len returns the number of steps.
func (c *Catalog) Len() int { return len(c.steps) }

// Step returns the descriptor at index i.
func (c *Catalog) Step(i int) (Step, bool) {
	if i < 0 || i >= len(c.steps) {
		return Step{}, false
	}
	return c.steps[i], true
}

// fileSchema is the on-disk YAML shape of a tour definition.
type fileSchema struct {
	ID      string       `yaml:"id"`
	Version string       `yaml:"version"`
	Steps   []stepSchema `yaml:"steps"`
}

type stepSchema struct {
	ID          string `yaml:"id"`
	Kind        string `yaml:"kind"`
	Target      string `yaml:"target"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Placement   string `yaml:"placement"`
	Emphasize   bool   `yaml:"emphasize"`
}

// Load reads and validates a tour definition file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tour definition: %w", err)
	}
	return Parse(data)
}

// Parse validates a tour definition from raw YAML.
func Parse(data []byte) (*Catalog, error) {
	var file fileSchema
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tour definition: %w", err)
	}
	if file.ID == "" {
		return nil, fmt.Errorf("tour definition is missing an id")
	}
	if file.Version == "" {
		return nil, fmt.Errorf("tour %q: missing version", file.ID)
	}

	steps := make([]Step, 0, len(file.Steps))
	for i, s := range file.Steps {
		kind, ok := ParseKind(s.Kind)
		if !ok {
			return nil, fmt.Errorf("step %d: unknown kind %q", i, s.Kind)
		}
		placement, ok := geometry.ParsePlacement(s.Placement)
		if !ok {
			return nil, fmt.Errorf("step %q: unknown placement %q", s.ID, s.Placement)
		}
		steps = append(steps, Step{
			ID:          s.ID,
			Kind:        kind,
			TargetRef:   s.Target,
			Title:       s.Title,
			Description: s.Description,
			Placement:   placement,
			Emphasize:   s.Emphasize,
		})
	}
	return New(file.ID, file.Version, steps)
}
