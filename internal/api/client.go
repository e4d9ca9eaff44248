// Package api talks to the todos REST service on behalf of one fixed user.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/idilsaglam/todo/internal/model"
)

const contentType = "application/json; charset=UTF-8"

// Client issues list/create/update/delete requests against /todos.
// It never retries and sets no timeout; callers cancel through ctx.
type Client struct {
	baseURL string
	userID  int
	http    *http.Client
	token   string
	log     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

// WithToken sends "Authorization: Bearer <token>" when token is not empty.
func WithToken(token string) Option { return func(c *Client) { c.token = token } }

func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

func New(baseURL string, userID int, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		http:    http.DefaultClient,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) UserID() int { return c.userID }

// List fetches every todo of the user.
func (c *Client) List(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	if err := c.do(ctx, http.MethodGet, "/todos?userId="+strconv.Itoa(c.userID), nil, &todos); err != nil {
		return nil, err
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}

// Create posts d and returns the todo with its server-assigned id.
func (c *Client) Create(ctx context.Context, d model.Draft) (model.Todo, error) {
	var out model.Todo
	err := c.do(ctx, http.MethodPost, "/todos", d, &out)
	return out, err
}

type patchBody struct {
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
}

// Update patches completed, userId and title of t; the id travels in the path.
func (c *Client) Update(ctx context.Context, t model.Todo) (model.Todo, error) {
	var out model.Todo
	body := patchBody{Completed: t.Completed, UserID: t.UserID, Title: t.Title}
	err := c.do(ctx, http.MethodPatch, "/todos/"+strconv.Itoa(t.ID), body, &out)
	return out, err
}

// Remove deletes the todo. The response body is ignored.
func (c *Client) Remove(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	fail := func(status int, err error) error {
		c.log.Warn().Str("method", method).Str("path", path).Int("status", status).Err(err).Msg("request failed")
		return &RequestError{Method: method, Path: path, Status: status, Err: err}
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fail(0, fmt.Errorf("json marshal: %w", err))
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fail(0, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Request-Id", reqID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", reqID).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		var cause error
		if s := strings.TrimSpace(string(snippet)); s != "" {
			cause = errors.New(s)
		}
		return fail(resp.StatusCode, cause)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fail(resp.StatusCode, fmt.Errorf("json decode: %w", err))
	}
	return nil
}
