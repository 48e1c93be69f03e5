package readability

import "golang.org/x/net/html"

// Candidate is the scoring record of one ancestor of content-bearing text.
type Candidate struct {
	Node  *html.Node
	Score float64
}

// Candidates is the scoring table of a single parse, keyed by node identity.
// It is created by the scorer, read by the cleaner and dropped afterwards.
type Candidates struct {
	byID  map[int]*Candidate
	order []*Candidate
}

func newCandidates() *Candidates {
	return &Candidates{byID: make(map[int]*Candidate)}
}

// Lookup returns the candidate recorded for the node with the given id.
func (c *Candidates) Lookup(id int) (*Candidate, bool) {
	cand, ok := c.byID[id]
	return cand, ok
}

func (c *Candidates) add(id int, cand *Candidate) {
	c.byID[id] = cand
	c.order = append(c.order, cand)
}

// Len returns the number of candidates.
func (c *Candidates) Len() int {
	return len(c.order)
}

// All returns the candidates in creation order.
func (c *Candidates) All() []*Candidate {
	return c.order
}

// Best returns the highest scoring candidate. Ties go to the candidate created
// first. It returns nil for an empty table.
func (c *Candidates) Best() *Candidate {
	var best *Candidate
	for _, cand := range c.order {
		if best == nil || cand.Score > best.Score {
			best = cand
		}
	}
	return best
}
