// Package export serializes the rendered canvas surface into an encoded
// image file and hands it to the remote storage collaborator, then marks the
// project completed.
package export

import (
	"context"
	"fmt"
	"image"

	"github.com/creativemagic/thumbstudio/pkg/imageio"
	"github.com/creativemagic/thumbstudio/pkg/project"
)

// Quality used when exporting lossy formats.
const Quality = 92

// Exporter rasterizes final frames and persists them.
type Exporter struct {
	storage  project.Storage
	projects project.Store
}

// New builds an exporter over the storage and project collaborators.
func New(storage project.Storage, projects project.Store) *Exporter {
	return &Exporter{storage: storage, projects: projects}
}

// EncodeSurface serializes a rendered surface. Exports default to PNG, the
// format the download flow always used.
func EncodeSurface(surface image.Image, format imageio.Format) ([]byte, error) {
	if format == "" {
		format = imageio.PNG
	}
	data, err := imageio.EncodeBytes(surface, format, Quality)
	if err != nil {
		return nil, fmt.Errorf("failed to encode final image: %w", err)
	}
	return data, nil
}

// Export encodes the surface, uploads it, and records the resulting URL on
// the project with a completed status. It returns the public URL.
func (e *Exporter) Export(ctx context.Context, p *project.Project, surface image.Image, format imageio.Format) (string, error) {
	if format == "" {
		format = imageio.PNG
	}
	data, err := EncodeSurface(surface, format)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("creative_magic_%s.%s", p.ID, format)
	url, err := e.storage.Upload(ctx, filename, data, format.MIME())
	if err != nil {
		return "", fmt.Errorf("failed to upload final image: %w", err)
	}

	p.FinalImageURL = url
	p.Status = project.StatusCompleted
	if err := e.projects.Update(ctx, p); err != nil {
		return "", fmt.Errorf("failed to update project %s: %w", p.ID, err)
	}
	return url, nil
}
