// Package collection implements clients for the remote REST collection
// resources (todos and users).
//
// A Client talks to one collection:
//
//	GET    /v1/{resource}       list, wrapped {"value": T} fields
//	POST   /v1/{resource}       create, flat body without id
//	PUT    /v1/{resource}/{id}  update, flat body with id (wholesale)
//	DELETE /v1/{resource}/{id}  delete
//
// Mutation replies are drained and ignored; callers observe the new state by
// listing again. Client surfaces every failure; wrap it in FailSoft to get
// the swallow-and-log behaviour.
package collection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HeaderRequestID carries a per-call identifier to the remote side.
const HeaderRequestID = "X-Request-ID"

// maxBody caps how much of a reply is read.
const maxBody = 4 << 20

// Record is implemented by every record type a collection holds.
type Record interface {
	RecordID() int64
	Persisted() bool
}

// Collection is the four-operation contract shared by Client and FailSoft.
type Collection[T Record] interface {
	Resource() string
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft T) error
	Update(ctx context.Context, record T) error
	Delete(ctx context.Context, id int64) error
}

// Codec ties a record type to its resource name and wire shapes.
type Codec[T Record] struct {
	// Resource is the path segment under /v1/, e.g. "todos".
	Resource string
	// Decode validates and unwraps a list body.
	Decode func(body []byte) ([]T, error)
	// Encode returns the flat request body for a record.
	Encode func(T) any
	// Check validates a record before it is sent. Optional.
	Check func(T) error
}

// Client is a collection client over HTTP.
type Client[T Record] struct {
	http    *http.Client
	baseURL string
	codec   Codec[T]
	log     *zap.Logger
}

// New returns a Client for codec's resource rooted at baseURL.
func New[T Record](httpClient *http.Client, baseURL string, codec Codec[T], log *zap.Logger) *Client[T] {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client[T]{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		codec:   codec,
		log:     log,
	}
}

// Resource returns the collection name.
func (c *Client[T]) Resource() string { return c.codec.Resource }

func (c *Client[T]) collectionPath() string {
	return "/v1/" + c.codec.Resource
}

func (c *Client[T]) itemPath(id int64) string {
	return c.collectionPath() + "/" + strconv.FormatInt(id, 10)
}

// List fetches and unwraps the whole collection.
func (c *Client[T]) List(ctx context.Context) ([]T, error) {
	body, err := c.do(ctx, http.MethodGet, c.collectionPath(), nil)
	if err != nil {
		return nil, err
	}
	items, err := c.codec.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", ErrDecode, c.codec.Resource, err)
	}
	return items, nil
}

// Create posts a draft. The draft must not carry an identifier; the
// assigned one is only visible through a later List.
func (c *Client[T]) Create(ctx context.Context, draft T) error {
	if draft.Persisted() {
		return fmt.Errorf("%w: create %s: identifier is assigned by the server", ErrInvalidDraft, c.codec.Resource)
	}
	if err := c.check(draft); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPost, c.collectionPath(), c.codec.Encode(draft))
	return err
}

// Update replaces a persisted record wholesale.
func (c *Client[T]) Update(ctx context.Context, record T) error {
	if !record.Persisted() {
		return fmt.Errorf("%w: update %s", ErrNoID, c.codec.Resource)
	}
	id := record.RecordID()
	if err := c.check(record); err != nil {
		return err
	}
	_, err := c.do(ctx, http.MethodPut, c.itemPath(id), c.codec.Encode(record))
	return err
}

// Delete removes a record by identifier.
func (c *Client[T]) Delete(ctx context.Context, id int64) error {
	if id == 0 {
		return fmt.Errorf("%w: delete %s", ErrNoID, c.codec.Resource)
	}
	_, err := c.do(ctx, http.MethodDelete, c.itemPath(id), nil)
	return err
}

func (c *Client[T]) check(record T) error {
	if c.codec.Check == nil {
		return nil
	}
	if err := c.codec.Check(record); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidDraft, c.codec.Resource, err)
	}
	return nil
}

func (c *Client[T]) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, reqID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %w", ErrTransport, method, path, err)
	}
	if len(data) > maxBody {
		return nil, fmt.Errorf("%w: %s %s: response exceeds %d bytes", ErrTooLarge, method, path, maxBody)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Method: method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(data)),
		}
	}

	c.log.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", reqID),
	)
	return data, nil
}
