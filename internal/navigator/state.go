package navigator

import "catalog/navigator/internal/domain"

// State is a serializable copy of a session
type State struct {
	Mode        string              `json:"mode"`
	ActivePath  []domain.CategoryID `json:"active_path"`
	PanelSearch map[int]string      `json:"panel_search,omitempty"`
	SearchTerm  string              `json:"search_term,omitempty"`
}

func (c *Controller) Snapshot() State {
	return State{
		Mode:        c.mode.String(),
		ActivePath:  c.ActivePath(),
		PanelSearch: c.PanelSearch(),
		SearchTerm:  c.searchTerm,
	}
}
