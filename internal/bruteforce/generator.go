package bruteforce

import (
	"github.com/flbdx/maskuni/internal/mask"
)

// Generator streams every Mask of width Width satisfying Constraints,
// each exactly once, in the canonical distribution-then-permutation
// order of spec §4.7. It is restartable and never sets an error flag
// after a successful construction (parse errors are reported by
// ParseFile before a Generator is ever built).
type Generator struct {
	width       int
	constraints []Constraint
	dist        *distributionIter
	perm        *permIter
}

// New builds a Generator over width and constraints, as produced by
// ParseFile.
func New(width int, constraints []Constraint) *Generator {
	g := &Generator{width: width, constraints: constraints}
	g.dist = newDistributionIter(constraints, width)
	return g
}

func (g *Generator) Next() (*mask.Mask, bool) {
	for {
		if g.perm == nil {
			dist, ok := g.dist.Next()
			if !ok {
				return nil, false
			}
			g.perm = newPermIter(dist, g.width)
		}

		chosen, ok := g.perm.Next()
		if !ok {
			g.perm = nil
			continue
		}

		m := mask.New(g.width)
		for _, k := range chosen {
			if err := m.PushRight(g.constraints[k].Charset.Clone()); err != nil {
				// An overflow here can't actually occur: every charset in
				// a bruteforce constraint set is non-empty and width is
				// bounded, so the product is bounded by the counting
				// pass that already succeeded before generation started.
				return nil, false
			}
		}
		return m, true
	}
}

func (g *Generator) Reset() {
	g.dist = newDistributionIter(g.constraints, g.width)
	g.perm = nil
}

func (g *Generator) Good() bool { return true }

func (g *Generator) Err() error { return nil }

var _ mask.Generator = (*Generator)(nil)
