package factors

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goccy/go-json"
)

// ErrUnknownFactor is returned when a referenced factor id is not present in
// the loaded dataset.
var ErrUnknownFactor = errors.New("unknown emission factor")

// Catalog provides lookups against one immutable dataset load.
type Catalog struct {
	// Thread-safe initialization
	once sync.Once
	err  error

	meta    Meta
	byID    map[string]EmissionFactor
	ordered []EmissionFactor
}

// NewCatalog parses the embedded factor dataset and returns a ready Catalog.
// It returns a non-nil error if the embedded data cannot be parsed or is
// structurally empty.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{}
	if err := c.init(); err != nil {
		return nil, err
	}
	return c, nil
}

// init parses the embedded dataset exactly once.
func (c *Catalog) init() error {
	c.once.Do(func() {
		var data dataset
		if err := json.Unmarshal(rawFactorJSON, &data); err != nil {
			c.err = fmt.Errorf("failed to parse factor dataset: %w", err)
			return
		}
		if data.Meta.Version == "" {
			c.err = errors.New("factor dataset has no version")
			return
		}
		if len(data.Factors) == 0 {
			c.err = errors.New("factor dataset contains no factors")
			return
		}

		c.meta = data.Meta
		c.byID = make(map[string]EmissionFactor, len(data.Factors))
		c.ordered = make([]EmissionFactor, 0, len(data.Factors))
		for id, f := range data.Factors {
			// The map key is authoritative for the id.
			f.ID = id
			c.byID[id] = f
			c.ordered = append(c.ordered, f)
		}
		sort.Slice(c.ordered, func(i, j int) bool {
			return c.ordered[i].ID < c.ordered[j].ID
		})
	})
	return c.err
}

// Factor returns the factor for the given id.
// Returns an error wrapping ErrUnknownFactor if the id is not in the catalog.
func (c *Catalog) Factor(id string) (EmissionFactor, error) {
	f, ok := c.byID[id]
	if !ok {
		return EmissionFactor{}, fmt.Errorf("%w: %q", ErrUnknownFactor, id)
	}
	return f, nil
}

// All returns every factor in the catalog, sorted by id. The returned slice
// is a copy and safe for the caller to reorder.
func (c *Catalog) All() []EmissionFactor {
	out := make([]EmissionFactor, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Version returns the dataset version shared by all factors in this load.
func (c *Catalog) Version() string {
	return c.meta.Version
}

// Meta returns the dataset provenance block.
func (c *Catalog) Meta() Meta {
	return c.meta
}
