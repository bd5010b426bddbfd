package domain

import (
	"fmt"
	"strings"
)

// Catalog is the ordered, immutable set of fixes a run evaluates.
type Catalog struct {
	fixes []Fix
	index map[string]int
}

// NewCatalog validates and freezes fixes in the given order. IDs must be
// non-empty and unique; fixes that are not prompt-only must implement Applier.
func NewCatalog(fixes ...Fix) (*Catalog, error) {
	c := &Catalog{
		fixes: make([]Fix, 0, len(fixes)),
		index: make(map[string]int, len(fixes)),
	}
	for _, f := range fixes {
		id := f.ID()
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w: fix with empty id", ErrInvalidCatalog)
		}
		if _, dup := c.index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate fix id %q", ErrInvalidCatalog, id)
		}
		if !f.PromptOnly() {
			if _, ok := f.(Applier); !ok {
				return nil, fmt.Errorf("%w: fix %q is not prompt-only but has no Run", ErrInvalidCatalog, id)
			}
		}
		c.index[id] = len(c.fixes)
		c.fixes = append(c.fixes, f)
	}
	return c, nil
}

// Fixes returns the fixes in catalog order.
func (c *Catalog) Fixes() []Fix {
	out := make([]Fix, len(c.fixes))
	copy(out, c.fixes)
	return out
}

func (c *Catalog) Len() int { return len(c.fixes) }

func (c *Catalog) Lookup(id string) (Fix, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.fixes[i], true
}

// IDs returns the fix ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.fixes))
	for i, f := range c.fixes {
		ids[i] = f.ID()
	}
	return ids
}

// Filter returns a new catalog keeping catalog order. When only is
// non-empty just those fixes are kept; ids in skip are then removed.
// Unknown ids in either list are an error.
func (c *Catalog) Filter(only, skip []string) (*Catalog, error) {
	if err := c.checkKnown(only); err != nil {
		return nil, err
	}
	if err := c.checkKnown(skip); err != nil {
		return nil, err
	}

	keep := make(map[string]bool, len(c.fixes))
	for _, f := range c.fixes {
		keep[f.ID()] = len(only) == 0
	}
	for _, id := range only {
		keep[id] = true
	}
	for _, id := range skip {
		keep[id] = false
	}

	var selected []Fix
	for _, f := range c.fixes {
		if keep[f.ID()] {
			selected = append(selected, f)
		}
	}
	return NewCatalog(selected...)
}

func (c *Catalog) checkKnown(ids []string) error {
	for _, id := range ids {
		if _, ok := c.index[id]; !ok {
			return fmt.Errorf("%w: %q (known: %s)", ErrUnknownFix, id, strings.Join(c.IDs(), ", "))
		}
	}
	return nil
}

// FixSummary describes a catalog entry for listings.
type FixSummary struct {
	ID         string `json:"id"`
	PromptOnly bool   `json:"prompt_only"`
}

// Summaries lists every fix in catalog order.
func (c *Catalog) Summaries() []FixSummary {
	out := make([]FixSummary, len(c.fixes))
	for i, f := range c.fixes {
		out[i] = FixSummary{ID: f.ID(), PromptOnly: f.PromptOnly()}
	}
	return out
}
