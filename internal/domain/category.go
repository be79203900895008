package domain

// CategoryID identifies a category node. Payload ids may be strings or numbers;
// both are canonicalised to their string form.
type CategoryID string

func (id CategoryID) String() string {
	return string(id)
}

// CategoryNode is one category in the catalog tree
type CategoryNode struct {
	ID       CategoryID      `json:"id"`
	Name     string          `json:"name"`
	Children []*CategoryNode `json:"children,omitempty"`
}

// HasChildren reports whether the node can be expanded into a deeper panel
func (n *CategoryNode) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// Tree is the ordered list of root categories (a forest)
type Tree []*CategoryNode

// Count returns the total number of nodes in the forest
func (t Tree) Count() int {
	total := 0
	for _, node := range t {
		if node == nil {
			continue
		}
		total += 1 + Tree(node.Children).Count()
	}
	return total
}

// IDs returns the ids of the given nodes in order
func IDs(nodes []*CategoryNode) []CategoryID {
	ids := make([]CategoryID, 0, len(nodes))
	for _, node := range nodes {
		ids = append(ids, node.ID)
	}
	return ids
}
