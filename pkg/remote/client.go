package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tableflip.dev/mindbox/pkg/journal"
)

// RejectedError is an application-level rejection: the store answered, but
// with success=false and a message meant for the user. Everything else a call
// can return is a transport failure.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "remote: request rejected"
	}
	return "remote: " + e.Message
}

// IsRejected reports whether err is an application rejection rather than a
// transport failure.
func IsRejected(err error) bool {
	var rejected *RejectedError
	return errors.As(err, &rejected)
}

const defaultTimeout = 15 * time.Second

// Client issues typed CRUD requests against the journaling store. It holds no
// state beyond the connection details; callers own cache reloads.
type Client struct {
	base   *url.URL
	client *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// New creates a client for the store rooted at baseURL (e.g.
// "http://localhost:5000/api").
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("remote: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("remote: base url %q needs scheme and host", baseURL)
	}
	c := &Client{
		base:   base,
		client: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// envelope is the store's uniform response shape: a success flag plus either
// a payload or an error message.
type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Files   []journal.File  `json:"files"`
	File    *journal.File   `json:"file"`
	Entries []journal.Entry `json:"entries"`
	Entry   *journal.Entry  `json:"entry"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload interface{}) (*envelope, error) {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("remote: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("remote: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("remote: %s %s: decode response: %w", method, path, err)
	}
	if !env.Success {
		return nil, &RejectedError{Message: env.Error}
	}
	return &env, nil
}

// ListFiles returns every file owned by ownerID.
func (c *Client) ListFiles(ctx context.Context, ownerID string) ([]journal.File, error) {
	env, err := c.do(ctx, http.MethodGet, "/files", url.Values{"owner_id": {ownerID}}, nil)
	if err != nil {
		return nil, err
	}
	return env.Files, nil
}

// CreateFile stores a new file and returns it with the server-assigned ID.
func (c *Client) CreateFile(ctx context.Context, f journal.File) (*journal.File, error) {
	env, err := c.do(ctx, http.MethodPost, "/files", nil, f.Normalize())
	if err != nil {
		return nil, err
	}
	return env.File, nil
}

// UpdateFile replaces the mutable fields of the file identified by f.ID.
func (c *Client) UpdateFile(ctx context.Context, f journal.File) (*journal.File, error) {
	if f.ID == "" {
		return nil, errors.New("remote: update file: missing id")
	}
	env, err := c.do(ctx, http.MethodPut, "/files/"+url.PathEscape(f.ID), nil, f.Normalize())
	if err != nil {
		return nil, err
	}
	return env.File, nil
}

// DeleteFile removes a file; the store cascades to its entries.
func (c *Client) DeleteFile(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("remote: delete file: missing id")
	}
	_, err := c.do(ctx, http.MethodDelete, "/files/"+url.PathEscape(id), nil, nil)
	return err
}

// ListEntries returns every entry owned by ownerID across all files.
func (c *Client) ListEntries(ctx context.Context, ownerID string) ([]journal.Entry, error) {
	env, err := c.do(ctx, http.MethodGet, "/entries", url.Values{"owner_id": {ownerID}}, nil)
	if err != nil {
		return nil, err
	}
	return env.Entries, nil
}

// CreateEntry stores a new entry and returns it with ID and stamps assigned.
func (c *Client) CreateEntry(ctx context.Context, e journal.Entry) (*journal.Entry, error) {
	env, err := c.do(ctx, http.MethodPost, "/entries", nil, e)
	if err != nil {
		return nil, err
	}
	return env.Entry, nil
}

// UpdateEntry replaces mood and elements of the entry identified by e.ID.
func (c *Client) UpdateEntry(ctx context.Context, e journal.Entry) (*journal.Entry, error) {
	if e.ID == "" {
		return nil, errors.New("remote: update entry: missing id")
	}
	env, err := c.do(ctx, http.MethodPut, "/entries/"+url.PathEscape(e.ID), nil, e)
	if err != nil {
		return nil, err
	}
	return env.Entry, nil
}

// DeleteEntry removes a single entry.
func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("remote: delete entry: missing id")
	}
	_, err := c.do(ctx, http.MethodDelete, "/entries/"+url.PathEscape(id), nil, nil)
	return err
}

// RecentEntries returns the newest entries of one file; the store caps the
// list at ten.
func (c *Client) RecentEntries(ctx context.Context, fileID string) ([]journal.Entry, error) {
	if fileID == "" {
		return nil, errors.New("remote: recent entries: missing file id")
	}
	env, err := c.do(ctx, http.MethodGet, "/entries/file/"+url.PathEscape(fileID)+"/recent", nil, nil)
	if err != nil {
		return nil, err
	}
	return env.Entries, nil
}

// UploadAvatar pushes a profile image over the store's multipart path. Kept
// minimal: the profile surface itself lives outside this client.
func (c *Client) UploadAvatar(ctx context.Context, ownerID, filename string, r io.Reader) error {
	if ownerID == "" {
		return errors.New("remote: upload avatar: missing owner id")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("avatar", filename)
	if err != nil {
		return fmt.Errorf("remote: upload avatar: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("remote: upload avatar: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("remote: upload avatar: %w", err)
	}

	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + "/auth/user/" + url.PathEscape(ownerID) + "/avatar"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), &buf)
	if err != nil {
		return fmt.Errorf("remote: upload avatar: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("remote: upload avatar: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("remote: upload avatar: decode response: %w", err)
	}
	if !env.Success {
		return &RejectedError{Message: env.Error}
	}
	return nil
}
