package navigator

import (
	"testing"

	"catalog/navigator/internal/catalog"
	"catalog/navigator/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCommitter_ResolvesBreadcrumb(t *testing.T) {
	tree := catalog.NormalizeJSON([]byte(electronicsPayload))
	committer := NewCommitter(catalog.New(tree, catalog.Options{}))
	desktops := tree[0].Children[0].Children[1]

	selection := committer.Commit(desktops)
	assert.Same(t, desktops, selection.Node)
	assert.Equal(t, "Electronics > Computers > Desktops", selection.Breadcrumb)
	assert.Len(t, selection.Path, 3)
}

func TestCommitter_UnknownNodeFallsBackToItself(t *testing.T) {
	committer := NewCommitter(catalog.Empty(catalog.Options{}))
	orphan := &domain.CategoryNode{ID: "x", Name: "Orphan"}

	selection := committer.Commit(orphan)
	assert.Equal(t, []*domain.CategoryNode{orphan}, selection.Path)
	assert.Equal(t, "Orphan", selection.Breadcrumb)
}

func TestCommitter_DuplicateIDKeepsItsOwnPath(t *testing.T) {
	tree := domain.Tree{
		{ID: "1", Name: "Electronics", Children: []*domain.CategoryNode{
			{ID: "acc", Name: "Accessories"},
		}},
		{ID: "2", Name: "Home", Children: []*domain.CategoryNode{
			{ID: "acc", Name: "Home Accessories"},
		}},
	}
	committer := NewCommitter(catalog.New(tree, catalog.Options{}))
	later := tree[1].Children[0]

	selection := committer.Commit(later)
	assert.Same(t, later, selection.Node)
	assert.Equal(t, "Home > Home Accessories", selection.Breadcrumb)
	assert.Same(t, selection.Node, selection.Path[len(selection.Path)-1])
}

func TestCommitter_DetachedNodeResolvesByID(t *testing.T) {
	tree := catalog.NormalizeJSON([]byte(electronicsPayload))
	committer := NewCommitter(catalog.New(tree, catalog.Options{}))
	detached := &domain.CategoryNode{ID: "4", Name: "Desktops (stale copy)"}

	selection := committer.Commit(detached)
	assert.Same(t, tree[0].Children[0].Children[1], selection.Node)
	assert.Equal(t, "Electronics > Computers > Desktops", selection.Breadcrumb)
}
