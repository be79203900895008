// Package catalog holds the read-only category tree of one fetched snapshot
// together with the structures derived from it: the id index, the level
// projector and the flattened search index.
package catalog

import "catalog/navigator/internal/domain"

// Options tune the derived structures
type Options struct {
	MaxVisibleLevels int
	SearchLimit      int
}

// Catalog is built once per snapshot and shared by every navigator session over it
type Catalog struct {
	tree      domain.Tree
	index     Index
	search    *SearchIndex
	projector *Projector
}

func New(tree domain.Tree, opts Options) *Catalog {
	if tree == nil {
		tree = domain.Tree{}
	}
	return &Catalog{
		tree:      tree,
		index:     BuildIndex(tree),
		search:    NewSearchIndex(tree, opts.SearchLimit),
		projector: NewProjector(tree, opts.MaxVisibleLevels),
	}
}

// Empty is the catalog shown when no categories could be loaded
func Empty(opts Options) *Catalog {
	return New(domain.Tree{}, opts)
}

func (c *Catalog) Tree() domain.Tree {
	return c.tree
}

// Len is the number of nodes in the snapshot
func (c *Catalog) Len() int {
	return c.search.Len()
}

func (c *Catalog) IsEmpty() bool {
	return len(c.tree) == 0
}

func (c *Catalog) MaxVisibleLevels() int {
	return c.projector.MaxLevels()
}

func (c *Catalog) Has(id domain.CategoryID) bool {
	return c.index.Has(id)
}

func (c *Catalog) Lookup(id domain.CategoryID) (*domain.CategoryNode, bool) {
	return c.index.Lookup(id)
}

func (c *Catalog) FindPath(id domain.CategoryID) ([]*domain.CategoryNode, bool) {
	if !c.index.Has(id) {
		return nil, false
	}
	return FindPath(c.tree, id)
}

func (c *Catalog) PathTo(node *domain.CategoryNode) ([]*domain.CategoryNode, bool) {
	return PathTo(c.tree, node)
}

func (c *Catalog) Level(level int, activePath []domain.CategoryID, search PanelSearch) []*domain.CategoryNode {
	return c.projector.Level(level, activePath, search)
}

func (c *Catalog) Resolve(activePath []domain.CategoryID) []*domain.CategoryNode {
	return c.projector.Resolve(activePath)
}

func (c *Catalog) Search(term string) Result {
	return c.search.Search(term)
}

func (c *Catalog) Suggest(term string, n int) []string {
	return c.search.Suggest(term, n)
}

func (c *Catalog) Entries() []Entry {
	return c.search.Entries()
}
