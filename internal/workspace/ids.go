package workspace

import "github.com/google/uuid"

// DocumentID identifies a document across solution versions.
type DocumentID struct {
	ProjectID ProjectID
	id        uuid.UUID
}

// NewDocumentID allocates a fresh identity in project p.
func NewDocumentID(p ProjectID) DocumentID {
	return DocumentID{ProjectID: p, id: uuid.New()}
}

func (d DocumentID) String() string { return d.id.String() }

// IsZero reports whether d was never allocated.
func (d DocumentID) IsZero() bool { return d.id == uuid.Nil }

// ProjectID identifies a project across solution versions.
type ProjectID struct {
	id uuid.UUID
}

// NewProjectID allocates a fresh project identity.
func NewProjectID() ProjectID {
	return ProjectID{id: uuid.New()}
}

func (p ProjectID) String() string { return p.id.String() }
