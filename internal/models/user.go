package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// UserRecord is the identity of the single signed-in user.
type UserRecord struct {
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	DisplayName  string    `json:"displayName"`
	FirstName    string    `json:"firstName"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	ProfileImage *string   `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// HasProfileImage reports whether a non-empty profile image is set.
func (u UserRecord) HasProfileImage() bool {
	return u.ProfileImage != nil && *u.ProfileImage != ""
}

// Profile is the partial input accepted by login and registration.
//
// Avatar, Picture, Image, PhotoURL and ProfilePicture are aliases that some identity sources use for the profile image.
// They are folded into [UserRecord.ProfileImage] once, when the record is built.
type Profile struct {
	Username       string    `json:"username,omitempty"`
	Name           string    `json:"name,omitempty"`
	DisplayName    string    `json:"displayName,omitempty"`
	FirstName      string    `json:"firstName,omitempty"`
	FullName       string    `json:"fullName,omitempty"`
	Email          string    `json:"email,omitempty"`
	ProfileImage   string    `json:"profileImage,omitempty"`
	Avatar         string    `json:"avatar,omitempty"`
	Picture        string    `json:"picture,omitempty"`
	Image          string    `json:"image,omitempty"`
	PhotoURL       string    `json:"photoURL,omitempty"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitzero"`
	UpdatedAt      time.Time `json:"updatedAt,omitzero"`
}

// ImageAliases returns the profile image candidates in priority order.
func (p Profile) ImageAliases() []string {
	return []string{p.ProfileImage, p.Avatar, p.Picture, p.Image, p.PhotoURL, p.ProfilePicture}
}

// UserPatch holds the fields to merge over the current [UserRecord]. Nil fields are left untouched.
//
// ClearProfileImage removes the image; in JSON it is set by an explicit `"profileImage": null`.
type UserPatch struct {
	Username          *string `json:"username,omitempty"`
	Name              *string `json:"name,omitempty"`
	DisplayName       *string `json:"displayName,omitempty"`
	FirstName         *string `json:"firstName,omitempty"`
	FullName          *string `json:"fullName,omitempty"`
	Email             *string `json:"email,omitempty"`
	ProfileImage      *string `json:"profileImage,omitempty"`
	ClearProfileImage bool    `json:"-"`
}

// UnmarshalJSON decodes a patch, treating `"profileImage": null` as a request to clear the image.
func (p *UserPatch) UnmarshalJSON(data []byte) error {
	type plain UserPatch
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*p = UserPatch(decoded)
	if raw, ok := fields["profileImage"]; ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		p.ProfileImage = nil
		p.ClearProfileImage = true
	}
	return nil
}

// IsEmpty reports whether the patch changes nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Name == nil && p.DisplayName == nil && p.FirstName == nil &&
		p.FullName == nil && p.Email == nil && p.ProfileImage == nil && !p.ClearProfileImage
}

// Credential is an entry of the local account list.
type Credential struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
