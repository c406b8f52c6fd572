package export

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/creativemagic/thumbstudio/pkg/imageio"
	"github.com/creativemagic/thumbstudio/pkg/project"
)

type stubStorage struct {
	filename string
	mimeType string
	data     []byte
	err      error
}

func (s *stubStorage) Upload(ctx context.Context, filename string, data []byte, mimeType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.filename = filename
	s.mimeType = mimeType
	s.data = data
	return "https://cdn.example.com/" + filename, nil
}

type stubStore struct {
	updated *project.Project
	err     error
}

func (s *stubStore) Get(ctx context.Context, id string) (*project.Project, error) {
	return nil, errors.New("not implemented")
}

func (s *stubStore) Update(ctx context.Context, p *project.Project) error {
	if s.err != nil {
		return s.err
	}
	s.updated = p
	return nil
}

func testSurface() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 64, 36))
}

func TestEncodeSurfaceDefaultsToPNG(t *testing.T) {
	data, err := EncodeSurface(testSurface(), "")
	if err != nil {
		t.Fatalf("EncodeSurface failed: %v", err)
	}

	img, err := imageio.DecodeBytes(data)
	if err != nil {
		t.Fatalf("Encoded surface not decodable: %v", err)
	}
	if img.Bounds().Dx() != 64 {
		t.Errorf("Expected width 64, got %d", img.Bounds().Dx())
	}
}

func TestExport(t *testing.T) {
	storage := &stubStorage{}
	store := &stubStore{}
	exporter := New(storage, store)

	p := &project.Project{ID: "proj-1", Status: project.StatusEditing}
	url, err := exporter.Export(context.Background(), p, testSurface(), imageio.PNG)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if storage.filename != "creative_magic_proj-1.png" {
		t.Errorf("Unexpected filename %q", storage.filename)
	}
	if storage.mimeType != "image/png" {
		t.Errorf("Unexpected MIME type %q", storage.mimeType)
	}
	if len(storage.data) == 0 {
		t.Error("No data uploaded")
	}

	if p.FinalImageURL != url {
		t.Errorf("Project URL %q does not match returned %q", p.FinalImageURL, url)
	}
	if p.Status != project.StatusCompleted {
		t.Errorf("Expected status %q, got %q", project.StatusCompleted, p.Status)
	}
	if store.updated != p {
		t.Error("Project record was not persisted")
	}
}

func TestExportUploadFailure(t *testing.T) {
	storage := &stubStorage{err: errors.New("bucket gone")}
	store := &stubStore{}
	exporter := New(storage, store)

	p := &project.Project{ID: "proj-2", Status: project.StatusEditing}
	if _, err := exporter.Export(context.Background(), p, testSurface(), imageio.PNG); err == nil {
		t.Fatal("Expected upload error")
	}

	if p.Status != project.StatusEditing {
		t.Error("A failed export must not mark the project completed")
	}
	if store.updated != nil {
		t.Error("A failed export must not persist the project")
	}
}

func TestExportUpdateFailure(t *testing.T) {
	storage := &stubStorage{}
	store := &stubStore{err: errors.New("store offline")}
	exporter := New(storage, store)

	p := &project.Project{ID: "proj-3"}
	if _, err := exporter.Export(context.Background(), p, testSurface(), imageio.JPEG); err == nil {
		t.Fatal("Expected update error")
	}
}
