package task

// CatalogSnapshotTask announces that a freshly fetched category tree differs from the previous one
type CatalogSnapshotTask struct {
	Source    string `json:"source"`     // URL or file the payload came from
	Digest    string `json:"digest"`     // xxhash of the raw payload, hex encoded
	NodeCount int    `json:"node_count"` // Nodes kept after normalization
	RootCount int    `json:"root_count"`
}

func (t *CatalogSnapshotTask) TaskType() string {
	return "CatalogSnapshotTask"
}

func (t *CatalogSnapshotTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
