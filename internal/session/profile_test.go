package session

import (
	"bytes"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/moviemaze/internal/shared"
)

// pngHeader is enough of a PNG for content sniffing.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		email   string
		wantErr bool
	}{
		{"valid", "Ann", "ann@x.com", false},
		{"missing name", " ", "ann@x.com", true},
		{"missing email", "Ann", "", true},
		{"no at", "Ann", "ann.x.com", true},
		{"no dot in domain", "Ann", "ann@x", true},
		{"whitespace", "Ann", "a nn@x.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile(tt.user, tt.email)
			if tt.wantErr && !errors.Is(err, shared.ErrInvalidProfile) {
				t.Errorf("expected ErrInvalidProfile, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestEncodeImage(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		uri, err := EncodeImage(pngHeader)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasPrefix(uri, "data:image/png;base64,") {
			t.Errorf("unexpected uri %s", uri)
		}
		if err := ValidateImageURI(uri); err != nil {
			t.Errorf("expected encoded uri to validate, got %v", err)
		}
	})

	t.Run("not an image", func(t *testing.T) {
		if _, err := EncodeImage([]byte("hello world")); !errors.Is(err, shared.ErrInvalidProfile) {
			t.Errorf("expected ErrInvalidProfile, got %v", err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		data := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, MaxImageSize)...)
		if _, err := EncodeImage(data); !errors.Is(err, shared.ErrInvalidProfile) {
			t.Errorf("expected ErrInvalidProfile, got %v", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := EncodeImage(nil); err == nil {
			t.Error("expected error for empty image")
		}
	})
}

func TestReadImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "avatar.png")
	if err := os.WriteFile(path, pngHeader, 0644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}

	uri, err := ReadImage(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("unexpected uri %s", uri)
	}

	if _, err := ReadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidateImageURI(t *testing.T) {
	valid := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte("jpeg"))
	tests := []struct {
		uri     string
		wantErr bool
	}{
		{"https://example.com/a.png", false},
		{valid, false},
		{"data:text/plain;base64,aGk=", true},
		{"data:image/png;base64,!!!", true},
		{"ftp://example.com/a.png", true},
	}

	for _, tt := range tests {
		err := ValidateImageURI(tt.uri)
		if tt.wantErr != (err != nil) {
			t.Errorf("ValidateImageURI(%q) error = %v, wantErr %v", tt.uri, err, tt.wantErr)
		}
	}
}
