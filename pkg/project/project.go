// Package project is the boundary to the remote project store. The core
// treats a project's editor_json as the authoritative element list and touches
// nothing else in the record.
package project

import (
	"context"

	"github.com/creativemagic/thumbstudio/pkg/element"
)

// Status values the editor writes back to the store.
const (
	StatusEditing   = "editing"
	StatusCompleted = "completed"
)

// EditorJSON is the persisted editor state.
type EditorJSON struct {
	Elements   []element.Element `json:"elements"`
	SizePreset string            `json:"sizePreset"`
}

// Project is the slice of the remote record the editor reads and writes.
type Project struct {
	ID            string     `json:"id"`
	SizePreset    string     `json:"size_preset"`
	EditorJSON    EditorJSON `json:"editor_json"`
	Headline      string     `json:"hebrew_headline,omitempty"`
	BackgroundURL string     `json:"flux_result_image_url,omitempty"`
	UserImageURL  string     `json:"user_image_url,omitempty"`
	FinalImageURL string     `json:"final_image_url,omitempty"`
	Status        string     `json:"status,omitempty"`
}

// Store is the remote CRUD collaborator.
type Store interface {
	Get(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, p *Project) error
}

// Storage is the remote file storage collaborator: raw bytes in, public URL
// out. The core never sees credentials.
type Storage interface {
	Upload(ctx context.Context, filename string, data []byte, mimeType string) (string, error)
}
