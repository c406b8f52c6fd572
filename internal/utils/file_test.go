package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"photo.jpg", "jpg"},
		{"photo.PNG", "png"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
	}

	for _, test := range tests {
		if got := GetFileExtension(test.input); got != test.expected {
			t.Errorf("GetFileExtension(%s) = %s, expected %s", test.input, got, test.expected)
		}
	}
}

func TestIsImageFile(t *testing.T) {
	if !IsImageFile("face.webp") {
		t.Error("webp should be recognized as an image")
	}
	if !IsImageFile("face.JPEG") {
		t.Error("extension check should be case-insensitive")
	}
	if IsImageFile("notes.txt") {
		t.Error("txt is not an image")
	}
}

func TestSanitizeFilename(t *testing.T) {
	if got := SanitizeFilename(`a/b\c:d*e?f"g<h>i|j`); got != "a_b_c_d_e_f_g_h_i_j" {
		t.Errorf("SanitizeFilename = %s", got)
	}
	if got := SanitizeFilename("  trimmed. "); got != "trimmed" {
		t.Errorf("SanitizeFilename should trim spaces and dots, got %s", got)
	}
}

func TestOutputFilename(t *testing.T) {
	got := OutputFilename("out", "photo.jpg", "_face_1", "png")
	want := filepath.Join("out", "photo_face_1.png")
	if got != want {
		t.Errorf("OutputFilename = %s, expected %s", got, want)
	}
}

func TestEnsureDirAndFileExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir on an existing directory should succeed: %v", err)
	}

	if FileExists(dir) {
		t.Error("FileExists should be false for directories")
	}

	file := filepath.Join(dir, "x.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(file) {
		t.Error("FileExists should be true for a regular file")
	}
}
