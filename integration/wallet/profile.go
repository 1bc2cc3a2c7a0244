package wallet

import (
	"context"
	"fmt"
	"net/http"
)

// Profile fetches the caller's full profile.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var profile Profile
	if err := c.do(ctx, call{method: http.MethodGet, path: "/user/profile", out: &profile}); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// UpdateProfile changes mutable profile fields and returns the updated
// record.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (Profile, error) {
	var profile Profile
	if err := c.do(ctx, call{
		method: http.MethodPut,
		path:   "/user/profile",
		body:   req,
		out:    &profile,
	}); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// Notifications lists the caller's notifications, newest first.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var resp struct {
		Notifications []Notification `json:"notifications"`
	}
	if err := c.do(ctx, call{method: http.MethodGet, path: "/user/notifications", out: &resp}); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	if notificationID == "" {
		return fmt.Errorf("%w: notification id is required", ErrValidation)
	}
	return c.do(ctx, call{method: http.MethodPost, path: "/user/notifications/" + notificationID + "/read"})
}
