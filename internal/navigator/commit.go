package navigator

import (
	"catalog/navigator/internal/catalog"
	"catalog/navigator/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Committer turns a chosen node into the selection handed to the host
type Committer struct {
	catalog *catalog.Catalog
}

func NewCommitter(cat *catalog.Catalog) *Committer {
	return &Committer{catalog: cat}
}

// Commit resolves the full ancestor chain of node. The node itself is looked
// up first; a node that is not part of the tree is resolved by id, and the
// selection then reports the tree's node so node, path and breadcrumb agree.
// An id that cannot be found is treated as top-level.
func (c *Committer) Commit(node *domain.CategoryNode) domain.Selection {
	path, ok := c.catalog.PathTo(node)
	if !ok {
		path, ok = c.catalog.FindPath(node.ID)
	}
	if ok {
		node = path[len(path)-1]
	} else {
		log.Debugf("Category %s not found in catalog, committing it without ancestors", node.ID)
		path = []*domain.CategoryNode{node}
	}
	return domain.Selection{
		Node:       node,
		Path:       path,
		Breadcrumb: domain.Breadcrumb(path),
	}
}
