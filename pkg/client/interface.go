package client

import (
	"context"

	"github.com/creativemagic/thumbstudio/pkg/geometry"
)

// FaceFinder is the boundary to a remote vision model that locates faces in
// an image. Implementations return boxes as percentages of the image the
// model saw; converting them to pixels is the caller's job, against an
// explicit reference resolution.
type FaceFinder interface {
	FindFaces(ctx context.Context, model, imgB64 string) ([]geometry.PercentBox, error)
	Describe(ctx context.Context, model, prompt, imgB64 string) (string, error)
}
