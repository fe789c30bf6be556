package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// apiError is a non-2xx answer from the server.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

type apiClient struct {
	base   string
	bearer string
	http   *http.Client
}

func newClient(base, bearer string) *apiClient {
	return &apiClient{
		base:   strings.TrimRight(base, "/"),
		bearer: bearer,
		http:   &http.Client{Timeout: 30 * time.Second},
	}
}

// do sends in as JSON (when non-nil) and decodes the response into out (when non-nil).
func (c *apiClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		var m struct {
			Message string `json:"message"`
		}
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &m) == nil && m.Message != "" {
			msg = m.Message
		}
		return &apiError{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type user struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type note struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (c *apiClient) register(ctx context.Context, username, password string) (user, error) {
	var u user
	err := c.do(ctx, http.MethodPost, "/register", map[string]string{"username": username, "password": password}, &u)
	return u, err
}

func (c *apiClient) login(ctx context.Context, username, password string) (loginResult, error) {
	var r loginResult
	err := c.do(ctx, http.MethodPost, "/login", map[string]string{"username": username, "password": password}, &r)
	return r, err
}

func (c *apiClient) me(ctx context.Context) (map[string]any, error) {
	var m map[string]any
	err := c.do(ctx, http.MethodGet, "/me", nil, &m)
	return m, err
}

func (c *apiClient) listNotes(ctx context.Context) ([]note, error) {
	var ns []note
	err := c.do(ctx, http.MethodGet, "/notes", nil, &ns)
	return ns, err
}

func (c *apiClient) addNote(ctx context.Context, title, content string) (note, error) {
	var n note
	err := c.do(ctx, http.MethodPost, "/notes", map[string]string{"title": title, "content": content}, &n)
	return n, err
}

func (c *apiClient) editNote(ctx context.Context, id int64, title, content string) (note, error) {
	var n note
	err := c.do(ctx, http.MethodPut, "/notes/"+strconv.FormatInt(id, 10), map[string]string{"title": title, "content": content}, &n)
	return n, err
}

func (c *apiClient) deleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+strconv.FormatInt(id, 10), nil, nil)
}
