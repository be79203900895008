package task

import (
	"time"

	"catalog/navigator/internal/domain"
)

type SelectionCommittedTask struct {
	Owner       string              `json:"owner"`        // Host-side owner of the selection (form, user, record)
	CategoryID  domain.CategoryID   `json:"category_id"`  // Committed category
	Breadcrumb  string              `json:"breadcrumb"`   // "Electronics > Computers > Desktops"
	PathIDs     []domain.CategoryID `json:"path_ids"`     // Root-to-node ids
	CommittedAt time.Time           `json:"committed_at"` // When the host committed it
}

// NewSelectionCommittedTask builds the event for a committed selection
func NewSelectionCommittedTask(owner string, sel domain.Selection, at time.Time) *SelectionCommittedTask {
	t := &SelectionCommittedTask{
		Owner:       owner,
		Breadcrumb:  sel.Breadcrumb,
		PathIDs:     sel.PathIDs(),
		CommittedAt: at.UTC(),
	}
	if sel.Node != nil {
		t.CategoryID = sel.Node.ID
	}
	return t
}

func (t *SelectionCommittedTask) TaskType() string {
	return "SelectionCommittedTask"
}

func (t *SelectionCommittedTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
