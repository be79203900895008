// Package navigator drives one browsing session over a catalog: which panels
// are expanded, what each panel filters by, the global search box, and the
// final commit of a category.
package navigator

import (
	"errors"
	"slices"
	"strings"

	"catalog/navigator/internal/catalog"
	"catalog/navigator/internal/domain"

	log "github.com/sirupsen/logrus"
)

var (
	ErrNotOpen  = errors.New("navigator is not open")
	ErrNilNode  = errors.New("no category to select")
	ErrBadLevel = errors.New("panel level out of range")
)

// Mode is the session state of a Controller
type Mode int

const (
	ModeClosed Mode = iota
	ModeBrowsing
	ModeSearching
)

func (m Mode) String() string {
	switch m {
	case ModeClosed:
		return "closed"
	case ModeBrowsing:
		return "browsing"
	case ModeSearching:
		return "searching"
	default:
		return "unknown"
	}
}

// CommitFunc receives the selection when a category is committed
type CommitFunc func(domain.Selection)

// Controller owns the state of one navigator mount. It is not safe for
// concurrent use; events are expected one at a time from the host.
type Controller struct {
	catalog   *catalog.Catalog
	committer *Committer
	onCommit  CommitFunc

	mode        Mode
	activePath  []domain.CategoryID
	panelSearch catalog.PanelSearch
	searchTerm  string
}

func NewController(cat *catalog.Catalog, onCommit CommitFunc) *Controller {
	if cat == nil {
		cat = catalog.Empty(catalog.Options{})
	}
	return &Controller{
		catalog:     cat,
		committer:   NewCommitter(cat),
		onCommit:    onCommit,
		panelSearch: catalog.PanelSearch{},
	}
}

func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

func (c *Controller) Mode() Mode {
	return c.mode
}

func (c *Controller) IsOpen() bool {
	return c.mode != ModeClosed
}

// Open starts a fresh session; nothing from a previous session survives
func (c *Controller) Open() {
	c.reset()
	c.mode = ModeBrowsing
	log.Debugf("Navigator opened over %d categories", c.catalog.Len())
}

// Close dismisses the session without committing anything
func (c *Controller) Close() {
	if !c.IsOpen() {
		return
	}
	c.reset()
	log.Debug("Navigator dismissed")
}

func (c *Controller) reset() {
	c.mode = ModeClosed
	c.activePath = nil
	c.panelSearch = catalog.PanelSearch{}
	c.searchTerm = ""
}

// Hover makes node, shown on panel level, the active node of that level and
// drops every deeper level. Only nodes with children below the last visible
// level are expanded; hovering a leaf just collapses the deeper panels. Nodes
// that are not on a visible panel are ignored. It reports whether the active
// path changed.
func (c *Controller) Hover(node *domain.CategoryNode, level int) bool {
	if c.mode != ModeBrowsing || node == nil {
		return false
	}
	maxLevels := c.catalog.MaxVisibleLevels()
	if level < 0 || level >= maxLevels || level > len(c.activePath) {
		return false
	}
	if !containsID(c.catalog.Level(level, c.activePath, nil), node.ID) {
		return false
	}

	next := make([]domain.CategoryID, 0, level+1)
	next = append(next, c.activePath[:level]...)
	if node.HasChildren() && level < maxLevels-1 {
		next = append(next, node.ID)
	}
	if slices.Equal(next, c.activePath) {
		return false
	}
	c.activePath = next
	log.Debugf("Navigator hover level=%d id=%s path=%v", level, node.ID, c.activePath)
	return true
}

// SetPanelSearch sets the filter of one panel. A blank term clears it.
func (c *Controller) SetPanelSearch(level int, term string) error {
	if !c.IsOpen() {
		return ErrNotOpen
	}
	if level < 0 || level >= c.catalog.MaxVisibleLevels() {
		return ErrBadLevel
	}
	if strings.TrimSpace(term) == "" {
		delete(c.panelSearch, level)
		return nil
	}
	c.panelSearch[level] = term
	return nil
}

// SetSearchTerm updates the global search box. A non-blank term switches to
// searching; clearing it returns to browsing with the earlier path intact.
func (c *Controller) SetSearchTerm(term string) error {
	if !c.IsOpen() {
		return ErrNotOpen
	}
	c.searchTerm = term
	if strings.TrimSpace(term) == "" {
		c.mode = ModeBrowsing
	} else {
		c.mode = ModeSearching
	}
	return nil
}

// SearchResults returns the global search matches while searching
func (c *Controller) SearchResults() catalog.Result {
	if c.mode != ModeSearching {
		return catalog.Result{}
	}
	return c.catalog.Search(c.searchTerm)
}

// Suggestions offers close names when the current search has no matches
func (c *Controller) Suggestions(n int) []string {
	if c.mode != ModeSearching || !c.SearchResults().Empty() {
		return nil
	}
	return c.catalog.Suggest(c.searchTerm, n)
}

// Reveal expands the panels down to the category with the given id, clears
// the search box and returns to browsing. Nothing is committed. An unknown id
// collapses every panel and reports false.
func (c *Controller) Reveal(id domain.CategoryID) (bool, error) {
	if !c.IsOpen() {
		return false, ErrNotOpen
	}

	path, found := c.catalog.FindPath(id)
	ids := domain.IDs(path)
	if limit := c.catalog.MaxVisibleLevels(); len(ids) > limit {
		ids = ids[:limit]
	}
	c.activePath = ids
	c.searchTerm = ""
	c.mode = ModeBrowsing
	log.Debugf("Navigator reveal id=%s found=%t path=%v", id, found, ids)
	return found, nil
}

// Select commits node, hands the selection to the commit callback and ends the session
func (c *Controller) Select(node *domain.CategoryNode) (domain.Selection, error) {
	if !c.IsOpen() {
		return domain.Selection{}, ErrNotOpen
	}
	if node == nil {
		return domain.Selection{}, ErrNilNode
	}

	selection := c.committer.Commit(node)
	if c.onCommit != nil {
		c.onCommit(selection)
	}
	c.reset()
	log.Debugf("Navigator committed %q", selection.Breadcrumb)
	return selection, nil
}

// Level returns the nodes of one panel for the current session
func (c *Controller) Level(level int) []*domain.CategoryNode {
	if !c.IsOpen() {
		return nil
	}
	return c.catalog.Level(level, c.activePath, c.panelSearch)
}

// VisibleLevels is the number of panels to render: the root panel plus one per
// expanded node, bounded by the catalog's cap
func (c *Controller) VisibleLevels() int {
	if !c.IsOpen() {
		return 0
	}
	return min(len(c.activePath)+1, c.catalog.MaxVisibleLevels())
}

func (c *Controller) ActivePath() []domain.CategoryID {
	return append([]domain.CategoryID(nil), c.activePath...)
}

// ActiveNodes resolves the active path to nodes
func (c *Controller) ActiveNodes() []*domain.CategoryNode {
	return c.catalog.Resolve(c.activePath)
}

func (c *Controller) PanelSearch() catalog.PanelSearch {
	return c.panelSearch.Clone()
}

func (c *Controller) SearchTerm() string {
	return c.searchTerm
}

func containsID(nodes []*domain.CategoryNode, id domain.CategoryID) bool {
	for _, node := range nodes {
		if node.ID == id {
			return true
		}
	}
	return false
}
