package catalog

import "catalog/navigator/internal/domain"

// Index maps category ids to nodes for existence checks. It cannot answer
// ancestry questions; use FindPath for those.
type Index map[domain.CategoryID]*domain.CategoryNode

// BuildIndex indexes every node in one traversal. The first occurrence of a duplicated id wins.
func BuildIndex(tree domain.Tree) Index {
	index := make(Index)
	walk(tree, func(node *domain.CategoryNode, _ []*domain.CategoryNode) bool {
		if _, ok := index[node.ID]; !ok {
			index[node.ID] = node
		}
		return true
	})
	return index
}

func (idx Index) Has(id domain.CategoryID) bool {
	_, ok := idx[id]
	return ok
}

func (idx Index) Lookup(id domain.CategoryID) (*domain.CategoryNode, bool) {
	node, ok := idx[id]
	return node, ok
}

func (idx Index) Len() int {
	return len(idx)
}
