package types

import "time"

// Session is a named, persisted layout snapshot. Only pinned windows are
// expected to be captured; the persistence collaborator decides.
type Session struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Snapshot    CanvasState `json:"snapshot"`
}

// SessionMetadata is the listing view of a session, without the snapshot.
type SessionMetadata struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	WindowCount int       `json:"window_count"`
}

// ToMetadata converts a session to its listing view.
func (s *Session) ToMetadata() SessionMetadata {
	return SessionMetadata{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		WindowCount: len(s.Snapshot.Windows),
	}
}
