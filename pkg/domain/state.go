package domain

import "time"

// SourceCursor is the per-source progress marker. Once a pass for a source
// completes, both ids advance to the newest fullnames observed in that pass's
// raw fetch, not merely the newest filtered item - matching rules may change
// over time without re-scanning history.
type SourceCursor struct {
	LastPostID    string    `json:"lastPostId,omitempty"`
	LastCommentID string    `json:"lastCommentId,omitempty"`
	LastRunAt     time.Time `json:"lastRunAt"`
}

// PipelineState aggregates all source cursors, persisted as a single durable
// unit at pass boundaries.
type PipelineState struct {
	Sources map[string]SourceCursor `json:"sources"`
}

// NewPipelineState creates an empty state
func NewPipelineState() *PipelineState {
	return &PipelineState{Sources: map[string]SourceCursor{}}
}

// Cursor returns the cursor for a source, zero-valued if the source was never seen
func (s *PipelineState) Cursor(source string) SourceCursor {
	if s.Sources == nil {
		return SourceCursor{}
	}
	return s.Sources[source]
}

// SetCursor records the cursor for a source
func (s *PipelineState) SetCursor(source string, c SourceCursor) {
	if s.Sources == nil {
		s.Sources = map[string]SourceCursor{}
	}
	s.Sources[source] = c
}
