package session

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/desertthunder/moviemaze/internal/shared"
)

// MaxImageSize is the largest profile image accepted, in bytes.
const MaxImageSize = 5 * 1024 * 1024

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email looks like an address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateProfile applies the profile form rules: name and email are required and email must be well formed.
func ValidateProfile(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", shared.ErrInvalidProfile)
	}
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", shared.ErrInvalidProfile)
	}
	if !ValidEmail(email) {
		return fmt.Errorf("%w: please enter a valid email address", shared.ErrInvalidProfile)
	}
	return nil
}

// EncodeImage validates raw image bytes and returns them as a base64 data URI.
func EncodeImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: image is empty", shared.ErrInvalidProfile)
	}
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("%w: image size should be less than 5MB", shared.ErrInvalidProfile)
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: please select an image file (got %s)", shared.ErrInvalidProfile, contentType)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ReadImage loads an image file from disk and encodes it with [EncodeImage].
func ReadImage(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if info.Size() > MaxImageSize {
		return "", fmt.Errorf("%w: image size should be less than 5MB", shared.ErrInvalidProfile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return EncodeImage(data)
}

// ValidateImageURI accepts remote image URLs and image data URIs within the size limit.
func ValidateImageURI(uri string) error {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return nil
	}

	header, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return fmt.Errorf("%w: profile image must be an image URL or data URI", shared.ErrInvalidProfile)
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageSize+2 {
		return fmt.Errorf("%w: image size should be less than 5MB", shared.ErrInvalidProfile)
	}
	if _, err := base64.StdEncoding.DecodeString(payload); err != nil {
		return fmt.Errorf("%w: invalid image data: %v", shared.ErrInvalidProfile, err)
	}
	return nil
}
