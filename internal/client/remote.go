// Package client implements the network-backed variant of the credential
// store. Each operation maps 1:1 onto a request against the passkeep server;
// store semantics are unchanged, but any operation may additionally fail with
// a transport error, which is wrapped in common.ErrTransport.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/passkeep/passkeep/internal/common"
	"github.com/passkeep/passkeep/internal/vault"
)

// Remote talks to a passkeep server. It is not safe for concurrent use; the
// store model is single-writer.
type Remote struct {
	baseURL string
	http    *http.Client
	token   string
}

// NewRemote builds a Remote for the server at baseURL (e.g.
// "http://127.0.0.1:8080").
func NewRemote(baseURL string) *Remote {
	return &Remote{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Login exchanges the master password for an access token used by all
// subsequent calls.
func (r *Remote) Login(ctx context.Context, masterPassword string) error {
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	err := r.do(ctx, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"password": masterPassword}, &resp)
	if err != nil {
		return err
	}
	r.token = resp.AccessToken
	return nil
}

// List fetches the full collection.
func (r *Remote) List(ctx context.Context) ([]vault.Plain, error) {
	var out []vault.Plain
	if err := r.do(ctx, http.MethodGet, "/api/v1/records", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Search asks the server for records matching term. An empty term lists
// everything, same as the local store.
func (r *Remote) Search(ctx context.Context, term string) ([]vault.Plain, error) {
	path := "/api/v1/records"
	if term != "" {
		path += "?q=" + url.QueryEscape(term)
	}
	var out []vault.Plain
	if err := r.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one record by id.
func (r *Remote) Get(ctx context.Context, id string) (vault.Plain, error) {
	var out vault.Plain
	if err := r.do(ctx, http.MethodGet, "/api/v1/records/"+url.PathEscape(id), nil, &out); err != nil {
		return vault.Plain{}, err
	}
	return out, nil
}

// Add creates a record from the draft and returns the server-assigned result.
func (r *Remote) Add(ctx context.Context, d vault.Draft) (vault.Plain, error) {
	var out vault.Plain
	if err := r.do(ctx, http.MethodPost, "/api/v1/records", d, &out); err != nil {
		return vault.Plain{}, err
	}
	return out, nil
}

// Update applies the patch to the record with the given id.
func (r *Remote) Update(ctx context.Context, id string, p vault.Patch) (vault.Plain, error) {
	var out vault.Plain
	if err := r.do(ctx, http.MethodPut, "/api/v1/records/"+url.PathEscape(id), p, &out); err != nil {
		return vault.Plain{}, err
	}
	return out, nil
}

// Delete removes the record with the given id. A miss reports false, nil.
func (r *Remote) Delete(ctx context.Context, id string) (bool, error) {
	err := r.do(ctx, http.MethodDelete, "/api/v1/records/"+url.PathEscape(id), nil, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ClearAll erases the whole remote collection.
func (r *Remote) ClearAll(ctx context.Context) error {
	return r.do(ctx, http.MethodDelete, "/api/v1/records", nil, nil)
}

// do performs one request. A non-nil body is JSON-encoded; a non-nil out has
// the response decoded into it. Status codes map onto the shared sentinels:
// 404 is ErrNotFound, 401 is ErrUnauthorized, any other non-2xx is
// ErrTransport.
func (r *Remote) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: unexpected status %d", common.ErrTransport, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", common.ErrTransport, err)
		}
	}
	return nil
}
