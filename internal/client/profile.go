// ABOUTME: Profile operations on the gateway
// ABOUTME: Read and update profile, change password, preferences, and avatar upload

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/abhinavhh/hotel-booking-client/internal/models"
)

// Default failure messages for profile operations
const (
	MsgProfileFailed     = "Failed to load profile"
	MsgUpdateFailed      = "Failed to update profile"
	MsgChangePwdFailed   = "Failed to change password"
	MsgPreferencesFailed = "Failed to update preferences"
	MsgAvatarFailed      = "Failed to upload avatar"
)

// AvatarField is the multipart field carrying the uploaded image
const AvatarField = "avatar"

// IsImageFile reports whether filename's extension names an image type
func IsImageFile(filename string) bool {
	return strings.HasPrefix(mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))), "image/")
}

type profileResponse struct {
	Profile *models.Profile `json:"profile"`
}

func decodeProfile(resp *Response) (*models.Profile, error) {
	var body profileResponse
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}
	if body.Profile == nil {
		return nil, contractError(resp.Status, errMissingField("profile"))
	}
	return body.Profile, nil
}

// Profile calls GET /profile
func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	resp, err := c.Request(ctx, http.MethodGet, "/profile", nil)
	if err != nil {
		return nil, withDefault(err, MsgProfileFailed)
	}
	return decodeProfile(resp)
}

// UpdateProfile calls PUT /profile and returns the updated profile
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.Profile, error) {
	resp, err := c.Request(ctx, http.MethodPut, "/profile", update)
	if err != nil {
		return nil, withDefault(err, MsgUpdateFailed)
	}
	return decodeProfile(resp)
}

// ChangePassword calls POST /profile/change-password
func (c *Client) ChangePassword(ctx context.Context, change models.PasswordChange) error {
	if _, err := c.Request(ctx, http.MethodPost, "/profile/change-password", change); err != nil {
		return withDefault(err, MsgChangePwdFailed)
	}
	return nil
}

// UpdatePreferences calls PUT /profile/preferences and returns the updated profile
func (c *Client) UpdatePreferences(ctx context.Context, prefs models.Preferences) (*models.Profile, error) {
	resp, err := c.Request(ctx, http.MethodPut, "/profile/preferences", prefs)
	if err != nil {
		return nil, withDefault(err, MsgPreferencesFailed)
	}
	return decodeProfile(resp)
}

// UploadAvatar sends image as a multipart form under the avatar field
func (c *Client) UploadAvatar(ctx context.Context, filename string, image io.Reader) (*models.Profile, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(AvatarField, filepath.Base(filename))
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: MsgAvatarFailed, Err: err}
	}
	if _, err := io.Copy(part, image); err != nil {
		return nil, &Error{Kind: KindValidation, Message: MsgAvatarFailed, Err: fmt.Errorf("reading image: %w", err)}
	}
	if err := mw.Close(); err != nil {
		return nil, &Error{Kind: KindValidation, Message: MsgAvatarFailed, Err: err}
	}

	resp, err := c.send(ctx, http.MethodPost, "/profile/avatar", mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, withDefault(err, MsgAvatarFailed)
	}
	return decodeProfile(resp)
}
