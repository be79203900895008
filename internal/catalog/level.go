package catalog

import (
	"strings"

	"catalog/navigator/internal/domain"
)

// DefaultMaxVisibleLevels caps how many panels the cascading menu renders
const DefaultMaxVisibleLevels = 4

// PanelSearch holds one independent filter per panel level. Empty means no filter.
type PanelSearch map[int]string

// Term returns the filter for a level; a nil PanelSearch has none
func (p PanelSearch) Term(level int) string {
	return p[level]
}

// Clone returns a copy that can be mutated independently
func (p PanelSearch) Clone() PanelSearch {
	out := make(PanelSearch, len(p))
	for level, term := range p {
		out[level] = term
	}
	return out
}

// Projector computes the visible nodes of each panel from the active path
type Projector struct {
	tree      domain.Tree
	maxLevels int
}

func NewProjector(tree domain.Tree, maxLevels int) *Projector {
	if maxLevels <= 0 {
		maxLevels = DefaultMaxVisibleLevels
	}
	return &Projector{
		tree:      tree,
		maxLevels: maxLevels,
	}
}

func (p *Projector) MaxLevels() int {
	return p.maxLevels
}

// Level returns the nodes shown in panel level. Level 0 is the filtered root
// list and ignores activePath. Level k lists the children of the node at
// activePath[k-1], reached by descending the path from the roots. Levels past
// the cap, or past the end of the active path, are empty.
func (p *Projector) Level(level int, activePath []domain.CategoryID, search PanelSearch) []*domain.CategoryNode {
	if level < 0 || level >= p.maxLevels {
		return nil
	}
	if level > len(activePath) {
		return nil
	}

	nodes := []*domain.CategoryNode(p.tree)
	for _, id := range activePath[:level] {
		parent := childByID(nodes, id)
		if parent == nil {
			return nil
		}
		nodes = parent.Children
	}
	return FilterByName(nodes, search.Term(level))
}

// Resolve maps the active path to nodes, stopping at the first id that is not
// a child of the previous node
func (p *Projector) Resolve(activePath []domain.CategoryID) []*domain.CategoryNode {
	resolved := make([]*domain.CategoryNode, 0, len(activePath))
	nodes := []*domain.CategoryNode(p.tree)
	for _, id := range activePath {
		node := childByID(nodes, id)
		if node == nil {
			break
		}
		resolved = append(resolved, node)
		nodes = node.Children
	}
	return resolved
}

// FilterByName keeps nodes whose name contains term, ignoring case but not
// spaces. A blank term keeps everything. The result never aliases the input slice.
func FilterByName(nodes []*domain.CategoryNode, term string) []*domain.CategoryNode {
	needle := ""
	if strings.TrimSpace(term) != "" {
		needle = strings.ToLower(term)
	}
	out := make([]*domain.CategoryNode, 0, len(nodes))
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if needle == "" || strings.Contains(strings.ToLower(node.Name), needle) {
			out = append(out, node)
		}
	}
	return out
}

func childByID(nodes []*domain.CategoryNode, id domain.CategoryID) *domain.CategoryNode {
	for _, node := range nodes {
		if node != nil && node.ID == id {
			return node
		}
	}
	return nil
}
