package ndagen

import "time"

// Document is the in-memory agreement: page geometry, an ordered block
// sequence and optional style defaults.
type Document struct {
	Page     PageSettings
	Defaults *StyleDefaults // nil until defaults are applied
	Meta     Metadata
	Created  time.Time

	blocks []Block
}

// Blocks returns a copy of the block sequence in append order.
func (d *Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	for i, b := range d.blocks {
		out[i] = cloneBlock(b)
	}
	return out
}

// Len returns the number of blocks.
func (d *Document) Len() int { return len(d.blocks) }

func (d *Document) clone() *Document {
	c := *d
	if d.Defaults != nil {
		defaults := *d.Defaults
		c.Defaults = &defaults
	}
	c.blocks = d.Blocks()
	return &c
}
