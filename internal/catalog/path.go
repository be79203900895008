package catalog

import "catalog/navigator/internal/domain"

// walk visits every node depth-first, roots in order and then each node's
// children in declared order. visit receives the node and the chain from its
// root to the node itself; the chain is reused between calls, copy it to keep
// it. Returning false stops the walk. A child that is already on the chain is
// a back-edge and is skipped, so hand-built cyclic trees still terminate.
func walk(tree domain.Tree, visit func(node *domain.CategoryNode, chain []*domain.CategoryNode) bool) {
	chain := make([]*domain.CategoryNode, 0, 8)
	onChain := make(map[*domain.CategoryNode]struct{})

	var visitAll func(nodes []*domain.CategoryNode) bool
	visitAll = func(nodes []*domain.CategoryNode) bool {
		for _, node := range nodes {
			if node == nil {
				continue
			}
			if _, cycle := onChain[node]; cycle {
				continue
			}
			chain = append(chain, node)
			onChain[node] = struct{}{}
			if !visit(node, chain) {
				return false
			}
			if !visitAll(node.Children) {
				return false
			}
			delete(onChain, node)
			chain = chain[:len(chain)-1]
		}
		return true
	}
	visitAll(tree)
}

// FindPath returns the chain [root, ..., target] for the first node in
// document order whose id matches. Later nodes sharing the id are not reachable.
func FindPath(tree domain.Tree, id domain.CategoryID) ([]*domain.CategoryNode, bool) {
	var found []*domain.CategoryNode
	walk(tree, func(node *domain.CategoryNode, chain []*domain.CategoryNode) bool {
		if node.ID != id {
			return true
		}
		found = append([]*domain.CategoryNode(nil), chain...)
		return false
	})
	return found, found != nil
}

// PathTo returns the chain [root, ..., node] for this exact node, compared by
// identity, so a node whose id repeats an earlier one still gets its own ancestors.
func PathTo(tree domain.Tree, target *domain.CategoryNode) ([]*domain.CategoryNode, bool) {
	if target == nil {
		return nil, false
	}
	var found []*domain.CategoryNode
	walk(tree, func(node *domain.CategoryNode, chain []*domain.CategoryNode) bool {
		if node != target {
			return true
		}
		found = append([]*domain.CategoryNode(nil), chain...)
		return false
	})
	return found, found != nil
}
