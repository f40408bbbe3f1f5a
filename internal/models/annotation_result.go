package models

// ChangeKind tells whether a curl sample was inserted or rewritten
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeUpdated ChangeKind = "updated"
)

// Change records the annotation applied to a single operation
type Change struct {
	Path        string     `json:"path"`
	Method      string     `json:"method"`
	OperationID string     `json:"operation_id,omitempty"`
	Kind        ChangeKind `json:"kind"`
	Index       int        `json:"index"`
	Source      string     `json:"source"`

	// Recreated is set when a malformed samples field was discarded
	Recreated bool `json:"recreated,omitempty"`
}

// Summary represents the outcome of one annotation pass over a document
type Summary struct {
	File         string   `json:"file"`
	TotalPaths   int      `json:"total_paths"`
	SkippedPaths int      `json:"skipped_paths"`
	Added        int      `json:"added"`
	Updated      int      `json:"updated"`
	Recreated    int      `json:"recreated"`
	Written      bool     `json:"written"`
	Changes      []Change `json:"changes"`
}

// AddChange adds a change to the summary and updates the counters
func (s *Summary) AddChange(change Change) {
	s.Changes = append(s.Changes, change)
	switch change.Kind {
	case ChangeAdded:
		s.Added++
	case ChangeUpdated:
		s.Updated++
	}
	if change.Recreated {
		s.Recreated++
	}
}

// Changed reports whether at least one operation was annotated
func (s *Summary) Changed() bool {
	return len(s.Changes) > 0
}
