package session

import (
	"strings"

	"github.com/desertthunder/moviemaze/internal/models"
)

// DefaultDisplayName is shown when a record carries no usable name.
const DefaultDisplayName = "User"

// DisplayName picks the label for a user record: the first non-blank of name, displayName, firstName, fullName,
// username and the local part of email, falling back to [DefaultDisplayName]. A nil record yields the fallback.
func DisplayName(r *models.UserRecord) string {
	if r == nil {
		return DefaultDisplayName
	}

	local, _, _ := strings.Cut(r.Email, "@")
	for _, candidate := range []string{r.Name, r.DisplayName, r.FirstName, r.FullName, r.Username, local} {
		if v := strings.TrimSpace(candidate); v != "" {
			return v
		}
	}
	return DefaultDisplayName
}

// Initial returns the upper-cased first letter of the display name, used as an avatar placeholder.
func Initial(r *models.UserRecord) string {
	name := []rune(DisplayName(r))
	return strings.ToUpper(string(name[0]))
}
