// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tinder4devs/devtinder-tui/internal/model"
)

// =============================================================================
// SESSION
// =============================================================================

// LoginRequest carries the credentials for Login.
type LoginRequest struct {
	EmailID  string `json:"emailId"`
	Password string `json:"password"`
}

// SignupRequest carries the fields for Signup. Optional fields are omitted
// from the payload when empty; the server rejects blank values.
type SignupRequest struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	EmailID   string   `json:"emailId"`
	Password  string   `json:"password"`
	BirthDate string   `json:"birthDate,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	PhotoURL  string   `json:"photoUrl,omitempty"`
	Skills    []string `json:"skills,omitempty"`
}

// Login authenticates with the API and stores the session cookie in the jar.
// Returns the authenticated profile.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Profile, error) {
	var profile model.Profile
	err := c.do(ctx, http.MethodPost, "/login", LoginRequest{EmailID: email, Password: password}, &profile)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Signup registers a new account. The server replies with the created profile;
// a follow-up Login establishes the session.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*model.Profile, error) {
	var resp struct {
		Message string        `json:"message"`
		Data    model.Profile `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Logout invalidates the session on the server and clears local cookies.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/logout", nil, nil)
	// The jar is replaced regardless: a failed logout must not leave a
	// replayable session cookie behind.
	c.clearCookies()
	return err
}

// clearCookies drops the session cookie jar.
func (c *Client) clearCookies() {
	if jar := c.httpClient.Jar; jar != nil {
		if u, err := url.Parse(c.baseURL); err == nil {
			for _, cookie := range jar.Cookies(u) {
				cookie.MaxAge = -1
				jar.SetCookies(u, []*http.Cookie{cookie})
			}
		}
	}
}

// =============================================================================
// PROFILE
// =============================================================================

// ProfileView fetches the authenticated user's profile. Used as the session
// probe on startup: ErrNoSession means the stored cookie is gone or expired.
func (c *Client) ProfileView(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	if err := c.do(ctx, http.MethodGet, "/profile/view", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ProfileEdit holds the editable subset of a profile.
type ProfileEdit struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Age       int      `json:"age,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	PhotoURL  string   `json:"photoUrl,omitempty"`
	About     string   `json:"about,omitempty"`
	Skills    []string `json:"skills,omitempty"`
}

// EditProfile saves profile changes and returns the updated profile.
func (c *Client) EditProfile(ctx context.Context, edit ProfileEdit) (*model.Profile, error) {
	var resp struct {
		Message string        `json:"message"`
		Data    model.Profile `json:"data"`
	}
	if err := c.do(ctx, http.MethodPatch, "/profile/edit", edit, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// =============================================================================
// PASSWORD RESET
// =============================================================================

// SendOTP requests a one-time password be mailed to the given address.
// Returns the server's confirmation message.
func (c *Client) SendOTP(ctx context.Context, email string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	body := struct {
		EmailID string `json:"emailId"`
	}{EmailID: email}
	if err := c.do(ctx, http.MethodPost, "/forgot-password/send-otp", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ResetPassword exchanges a valid OTP for a new password.
func (c *Client) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	body := struct {
		EmailID     string `json:"emailId"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}{EmailID: email, OTP: otp, NewPassword: newPassword}
	return c.do(ctx, http.MethodPatch, "/forgot-password/reset", body, nil)
}

// =============================================================================
// FEED AND DECISIONS
// =============================================================================

// Feed fetches the next batch of candidate profiles.
func (c *Client) Feed(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := c.do(ctx, http.MethodGet, "/user/feed", nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// SendDecision records an interested/ignore decision for a candidate.
// The decision is one-way: the server never returns a decided profile
// to this user's feed again.
func (c *Client) SendDecision(ctx context.Context, decision model.Decision, userID string) error {
	if !decision.Valid() {
		return fmt.Errorf("invalid decision %q", decision)
	}
	path := fmt.Sprintf("/request/send/%s/%s", decision, url.PathEscape(userID))
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// =============================================================================
// CONNECTIONS AND REQUESTS
// =============================================================================

// Connections fetches the user's mutual matches.
func (c *Client) Connections(ctx context.Context) ([]model.Profile, error) {
	var resp struct {
		Data []model.Profile `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/user/connections", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ReceivedRequests fetches pending incoming connection requests.
func (c *Client) ReceivedRequests(ctx context.Context) ([]model.RequestRecord, error) {
	var resp struct {
		ConnectionRequests []model.RequestRecord `json:"connectionRequests"`
	}
	if err := c.do(ctx, http.MethodGet, "/user/requests/received", nil, &resp); err != nil {
		return nil, err
	}
	return resp.ConnectionRequests, nil
}

// ReviewRequest accepts or rejects an incoming connection request by its
// request ID. Both review statuses hit their own endpoint so the server
// records the actual outcome.
func (c *Client) ReviewRequest(ctx context.Context, status model.ReviewStatus, requestID string) error {
	if status != model.ReviewAccepted && status != model.ReviewRejected {
		return fmt.Errorf("invalid review status %q", status)
	}
	path := fmt.Sprintf("/request/review/%s/%s", status, url.PathEscape(requestID))
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// =============================================================================
// CHAT
// =============================================================================

// ChatHistory fetches the persisted transcript with the given user.
func (c *Client) ChatHistory(ctx context.Context, targetUserID string) ([]model.ChatMessage, error) {
	var resp struct {
		Messages []model.ChatMessage `json:"messages"`
	}
	path := "/chat/" + url.PathEscape(targetUserID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// =============================================================================
// PREMIUM
// =============================================================================

// PaymentOrder describes a created payment order for premium checkout.
type PaymentOrder struct {
	Key      string `json:"key"`
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Notes    struct {
		FirstName      string `json:"firstName"`
		LastName       string `json:"lastName"`
		MembershipType string `json:"membershipType"`
	} `json:"notes"`
}

// CreatePaymentOrder starts a premium purchase for the given plan.
func (c *Client) CreatePaymentOrder(ctx context.Context, membershipType string) (*PaymentOrder, error) {
	body := struct {
		MembershipType string `json:"membershipType"`
	}{MembershipType: membershipType}

	var resp struct {
		Key     string `json:"keyId"`
		Payment struct {
			ID       string `json:"id"`
			Amount   int64  `json:"amount"`
			Currency string `json:"currency"`
			Notes    struct {
				FirstName      string `json:"firstName"`
				LastName       string `json:"lastName"`
				MembershipType string `json:"membershipType"`
			} `json:"notes"`
		} `json:"payment"`
	}
	if err := c.do(ctx, http.MethodPost, "/payment/create", body, &resp); err != nil {
		return nil, err
	}

	order := &PaymentOrder{
		Key:      resp.Key,
		OrderID:  resp.Payment.ID,
		Amount:   resp.Payment.Amount,
		Currency: resp.Payment.Currency,
	}
	order.Notes.FirstName = resp.Payment.Notes.FirstName
	order.Notes.LastName = resp.Payment.Notes.LastName
	order.Notes.MembershipType = resp.Payment.Notes.MembershipType
	return order, nil
}

// VerifyPremium asks the server whether the current user holds a premium
// membership. Used after checkout and on account-view mount.
func (c *Client) VerifyPremium(ctx context.Context) (bool, error) {
	var resp struct {
		IsPremium bool `json:"isPremium"`
	}
	if err := c.do(ctx, http.MethodGet, "/premium/verify", nil, &resp); err != nil {
		return false, err
	}
	return resp.IsPremium, nil
}
