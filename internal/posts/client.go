package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/studiowebux/postboard/internal/executor"
	"github.com/studiowebux/postboard/internal/types"
)

// ErrNotFound is returned by Get when the server answers 404
var ErrNotFound = errors.New("post not found")

// StatusError is returned for any other non-2xx answer
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Status)
}

// Recorder receives every remote read, successful or not
type Recorder interface {
	Save(req *types.FetchRequest, result *types.FetchResult) error
}

// Client reads the posts collection from a REST API
type Client struct {
	baseURL    string
	collection string
	timeout    time.Duration
	tls        *types.TLSConfig
	recorder   Recorder
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithTLS sets TLS options for the transport
func WithTLS(cfg *types.TLSConfig) Option {
	return func(c *Client) { c.tls = cfg }
}

// WithRecorder logs every read into r
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// New creates a client for {baseURL}/{collection}
func New(baseURL, collection string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		collection: strings.Trim(collection, "/"),
		timeout:    executor.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CollectionURL returns the URL of the whole collection
func (c *Client) CollectionURL() string {
	return c.baseURL + "/" + c.collection
}

// ItemURL returns the URL of a single post
func (c *Client) ItemURL(id int) string {
	return c.CollectionURL() + "/" + strconv.Itoa(id)
}

// List reads the full collection in server order
func (c *Client) List(ctx context.Context) ([]types.Post, error) {
	result, err := c.fetch(ctx, "list", c.CollectionURL())
	if err != nil {
		return nil, err
	}

	var posts []types.Post
	if err := json.Unmarshal([]byte(result.Body), &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return posts, nil
}

// Get reads one post by id
func (c *Client) Get(ctx context.Context, id int) (types.Post, error) {
	result, err := c.fetch(ctx, "detail", c.ItemURL(id))
	if err != nil {
		return types.Post{}, err
	}

	var post types.Post
	if err := json.Unmarshal([]byte(result.Body), &post); err != nil {
		return types.Post{}, fmt.Errorf("failed to decode post %d: %w", id, err)
	}
	return post, nil
}

func (c *Client) fetch(ctx context.Context, name, url string) (*types.FetchResult, error) {
	req := &types.FetchRequest{Name: name, Method: http.MethodGet, URL: url}

	result, err := executor.Execute(ctx, req, c.tls, c.timeout)
	if err != nil {
		return nil, err
	}

	if c.recorder != nil {
		if err := c.recorder.Save(req, result); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("Failed to record fetch")
		}
	}

	log.Debug().
		Str("url", url).
		Int("status", result.Status).
		Int64("durationMs", result.Duration).
		Msg("Fetched")

	if result.Error != "" {
		return nil, fmt.Errorf("GET %s: %s", url, result.Error)
	}
	if result.Status == http.StatusNotFound {
		return nil, fmt.Errorf("GET %s: %w", url, ErrNotFound)
	}
	if !executor.IsSuccessStatus(result.Status) {
		return nil, &StatusError{URL: url, Status: result.Status}
	}
	return result, nil
}
