// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/tinder4devs/devtinder-tui/internal/util"
)

// persistedCookie is the on-disk form of a session cookie. Only the fields
// needed to replay the cookie are kept.
type persistedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// SaveSession writes the client's cookies for its base URL to path with
// owner-only permissions. Used by the CLI so a login survives the process.
// SECURITY: the file holds a live session token; 0600 and atomic write.
func (c *Client) SaveSession(path string) error {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}

	var out []persistedCookie
	for _, ck := range c.httpClient.Jar.Cookies(u) {
		out = append(out, persistedCookie{
			Name:    ck.Name,
			Value:   ck.Value,
			Path:    ck.Path,
			Expires: ck.Expires,
		})
	}
	if len(out) == 0 {
		return fmt.Errorf("no session to save")
	}

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return util.AtomicWriteFile(path, data, 0600)
}

// LoadSession restores previously saved cookies into the client's jar.
// A missing file is not an error; the next request simply gets ErrNoSession.
func (c *Client) LoadSession(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var saved []persistedCookie
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("failed to decode session file: %w", err)
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}

	cookies := make([]*http.Cookie, 0, len(saved))
	for _, ck := range saved {
		if !ck.Expires.IsZero() && ck.Expires.Before(time.Now()) {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:    ck.Name,
			Value:   ck.Value,
			Path:    ck.Path,
			Expires: ck.Expires,
		})
	}
	c.httpClient.Jar.SetCookies(u, cookies)
	return nil
}

// ClearSession deletes the persisted session file. Called on logout.
func ClearSession(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
