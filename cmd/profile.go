package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/session"
	"github.com/desertthunder/moviemaze/internal/shared"
	"github.com/urfave/cli/v3"
)

// ProfileShow prints the signed-in user's profile.
func (r *Runner) ProfileShow(ctx context.Context, cmd *cli.Command) error {
	user, err := r.requireSession()
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, true)
	}

	r.writePlainHeader(fmt.Sprintf("[%s] %s", session.Initial(&user), session.DisplayName(&user)))
	r.writePlain("Username:     %s\n", user.Username)
	r.writePlain("Name:         %s\n", user.Name)
	r.writePlain("Email:        %s\n", user.Email)
	if user.DisplayName != "" {
		r.writePlain("Display name: %s\n", user.DisplayName)
	}
	if user.HasProfileImage() {
		r.writePlain("Image:        %s\n", summarizeImage(*user.ProfileImage))
	}
	r.writePlain("Member since: %s\n", user.CreatedAt.Local().Format("Jan 2, 2006"))
	r.writePlain("Updated:      %s\n", user.UpdatedAt.Local().Format("Jan 2, 2006 15:04"))
	return nil
}

// ProfileUpdate applies the given fields to the profile. Name and email must remain valid.
func (r *Runner) ProfileUpdate(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	var patch models.UserPatch
	for flag, field := range map[string]**string{
		"name":         &patch.Name,
		"email":        &patch.Email,
		"username":     &patch.Username,
		"display-name": &patch.DisplayName,
		"first-name":   &patch.FirstName,
		"full-name":    &patch.FullName,
	} {
		if cmd.IsSet(flag) {
			v := strings.TrimSpace(cmd.String(flag))
			*field = &v
		}
	}

	if patch.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", shared.ErrMissingArgument)
	}

	user, err := r.session.UpdateProfile(ctx, patch)
	if err != nil {
		return err
	}

	r.logger.Info("profile updated", "user", user.Username)
	return r.writePlain("✓ Profile updated\n")
}

// ProfileImage sets the profile image from a local file (stored as a data URI) or an http(s) URL.
func (r *Runner) ProfileImage(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.requireSession(); err != nil {
		return err
	}

	var patch models.UserPatch
	source := cmd.StringArg("source")
	switch {
	case cmd.Bool("clear"):
		patch.ClearProfileImage = true
	case source == "":
		return fmt.Errorf("%w: image file or URL is required", shared.ErrMissingArgument)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		patch.ProfileImage = &source
	default:
		uri, err := session.ReadImage(source)
		if err != nil {
			return err
		}
		patch.ProfileImage = &uri
	}

	if _, err := r.session.UpdateProfile(ctx, patch); err != nil {
		return err
	}

	if patch.ClearProfileImage {
		return r.writePlain("✓ Profile image removed\n")
	}
	return r.writePlain("✓ Profile image updated\n")
}

// summarizeImage shortens data URIs for display.
func summarizeImage(uri string) string {
	if rest, ok := strings.CutPrefix(uri, "data:"); ok {
		mime, _, _ := strings.Cut(rest, ";")
		return fmt.Sprintf("embedded %s (%d bytes encoded)", mime, len(uri))
	}
	return uri
}
