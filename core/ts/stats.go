// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package ts

// Counts tallies messages by status.
type Counts struct {
	Finished   int `json:"finished"   yaml:"finished"`
	Unfinished int `json:"unfinished" yaml:"unfinished"`
	Vanished   int `json:"vanished"   yaml:"vanished"`
	Obsolete   int `json:"obsolete"   yaml:"obsolete"`
}

func (c *Counts) add(s Status) {
	switch s {
	case Finished:
		c.Finished++
	case Unfinished:
		c.Unfinished++
	case Vanished:
		c.Vanished++
	case Obsolete:
		c.Obsolete++
	}
}

// Total returns the number of messages counted.
func (c Counts) Total() int {
	return c.Finished + c.Unfinished + c.Vanished + c.Obsolete
}

// Progress returns the finished share of current messages, in [0, 1].
func (c Counts) Progress() float64 {
	current := c.Finished + c.Unfinished
	if current == 0 {
		return 1
	}

	return float64(c.Finished) / float64(current)
}

// Stats summarises a catalog.
type Stats struct {
	Language string            `json:"language" yaml:"language"`
	Counts   Counts            `json:"counts"   yaml:"counts"`
	Contexts map[string]Counts `json:"contexts" yaml:"contexts"`
}

// Stats counts the catalog's messages by status, overall and per context.
func (c *Catalog) Stats() Stats {
	st := Stats{
		Language: c.Language,
		Contexts: make(map[string]Counts),
	}

	for ctx, m := range c.All() {
		st.Counts.add(m.Status)

		cc := st.Contexts[ctx.Name]
		cc.add(m.Status)
		st.Contexts[ctx.Name] = cc
	}

	return st
}
