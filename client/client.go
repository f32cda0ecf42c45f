// Package client talks to the notes REST API on behalf of the terminal UI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	authmodel "notesai/internal/auth/model"
	"notesai/internal/note/model"
)

// ErrUnauthenticated means an authenticated call was rejected; the caller's
// token is expired or invalid and the session should be dropped.
var ErrUnauthenticated = errors.New("session expired")

type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("API error (status %d)", e.Status)
	}
	return e.Detail
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *Client) Signup(ctx context.Context, email, password string) (string, error) {
	return c.credentials(ctx, "/signup", email, password)
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.credentials(ctx, "/token", email, password)
}

func (c *Client) credentials(ctx context.Context, path, email, password string) (string, error) {
	var out authmodel.TokenResponse
	err := c.do(ctx, http.MethodPost, path, "", authmodel.CredentialsRequest{Email: email, Password: password}, &out)
	if err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (c *Client) ListNotes(ctx context.Context, token string) ([]model.NoteResponse, error) {
	notes := []model.NoteResponse{}
	if err := c.do(ctx, http.MethodGet, "/notes", token, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) CreateNote(ctx context.Context, token, title, content string) (*model.NoteResponse, error) {
	var n model.NoteResponse
	if err := c.do(ctx, http.MethodPost, "/notes", token, model.NoteRequest{Title: title, Content: content}, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) UpdateNote(ctx context.Context, token string, id int64, title, content string) (*model.NoteResponse, error) {
	var n model.NoteResponse
	path := fmt.Sprintf("/notes/%d", id)
	if err := c.do(ctx, http.MethodPut, path, token, model.NoteRequest{Title: title, Content: content}, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) DeleteNote(ctx context.Context, token string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/notes/%d", id), token, nil, nil)
}

func (c *Client) SummarizeNote(ctx context.Context, token string, id int64) (*model.NoteResponse, error) {
	var n model.NoteResponse
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/notes/%d/summarize", id), token, nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not connect to the backend API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized && token != "" {
			return ErrUnauthenticated
		}
		var e struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Detail: e.Detail}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
