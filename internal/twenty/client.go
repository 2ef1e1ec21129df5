// Package twenty is an HTTP client for the Twenty CRM REST API. It
// covers the handful of objects the sync engine needs: the
// repProgressions custom object, workspace members, and notes (which
// double as call-log records).
package twenty

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Sentinel errors for common HTTP error classes.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrNoAPIKey     = errors.New("no API key configured")
)

// Client issues authenticated requests against a Twenty workspace.
type Client struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// New creates a client for the given CRM base URL (without the /rest
// suffix) and API key.
func New(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// GetRepProgression returns the progression record for a workspace
// member, or nil when none exists. The REST endpoint has no
// server-side filter for the custom object, so matching happens here.
func (c *Client) GetRepProgression(workspaceMemberID string) (*RepProgression, error) {
	var list []RepProgression
	if err := c.get("/rest/repProgressions", "repProgressions", &list); err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].WorkspaceMemberID == workspaceMemberID {
			return &list[i], nil
		}
	}
	return nil, nil
}

// ListRepProgressions returns every progression record in the workspace.
func (c *Client) ListRepProgressions() ([]RepProgression, error) {
	var list []RepProgression
	if err := c.get("/rest/repProgressions", "repProgressions", &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateRepProgression creates a remote progression record.
func (c *Client) CreateRepProgression(p *RepProgression) (*RepProgression, error) {
	var created RepProgression
	if err := c.post("/rest/repProgressions", "createRepProgression", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateRepProgression patches an existing remote progression record.
func (c *Client) UpdateRepProgression(id string, p *RepProgression) (*RepProgression, error) {
	var updated RepProgression
	path := "/rest/repProgressions/" + url.PathEscape(id)
	if err := c.doEnvelope("PATCH", path, "updateRepProgression", p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetWorkspaceMembers lists the workspace's user identities.
func (c *Client) GetWorkspaceMembers() ([]WorkspaceMember, error) {
	var members []WorkspaceMember
	if err := c.get("/rest/workspaceMembers", "workspaceMembers", &members); err != nil {
		return nil, err
	}
	return members, nil
}

// CurrentWorkspaceMember resolves the member with the given id, or the
// sole member of a single-member workspace when id is empty. Returns
// nil when no member matches.
func (c *Client) CurrentWorkspaceMember(id string) (*WorkspaceMember, error) {
	members, err := c.GetWorkspaceMembers()
	if err != nil {
		return nil, err
	}
	if id == "" && len(members) == 1 {
		return &members[0], nil
	}
	for i := range members {
		if members[i].ID == id {
			return &members[i], nil
		}
	}
	return nil, nil
}

// CreateNote stores a note, used for call-log records.
func (c *Client) CreateNote(title, body, personID string) (*Note, error) {
	note := Note{Title: title, Body: body, PersonID: personID}
	var created Note
	if err := c.post("/rest/notes", "createNote", &note, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetNotes lists recent notes, newest first.
func (c *Client) GetNotes(limit int) ([]Note, error) {
	path := "/rest/notes"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var notes []Note
	if err := c.get(path, "notes", &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// --- HTTP helpers ---

// apiError is the standard error body from Twenty.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e *apiError) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

func (c *Client) get(path, envelopeKey string, result any) error {
	return c.doEnvelope("GET", path, envelopeKey, nil, result)
}

func (c *Client) post(path, envelopeKey string, body, result any) error {
	return c.doEnvelope("POST", path, envelopeKey, body, result)
}

// doEnvelope executes a request and unwraps Twenty's response envelope
// ({"data": {"<key>": ...}}) into result.
func (c *Client) doEnvelope(method, path, envelopeKey string, body, result any) error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		msg := string(respBody)
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.text() != "" {
			msg = apiErr.text()
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrForbidden, msg)
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrNotFound, msg)
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, msg)
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}

	var envelope struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("unmarshal envelope: %w", err)
	}
	raw, ok := envelope.Data[envelopeKey]
	if !ok {
		// Tolerate responses without the envelope (older Twenty builds)
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("response missing %q", envelopeKey)
		}
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("unmarshal %s: %w", envelopeKey, err)
	}
	return nil
}
