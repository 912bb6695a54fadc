package updater

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/story-labs/launcher/internal/branding"
)

// DefaultBaseURL is the GitHub REST API root.
const DefaultBaseURL = "https://api.github.com"

// Release represents a published release.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Version returns the tag with every leading "v" removed ("v2.3.0" → "2.3.0").
func (r *Release) Version() string {
	return strings.TrimLeft(r.TagName, "v")
}

// Asset represents a downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
	Size        int64  `json:"size"`
}

// Client resolves and downloads releases.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	token      string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL points the client at a different registry API root.
func WithBaseURL(url string) Option {
	return func(cl *Client) {
		if url != "" {
			cl.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithUserAgent overrides the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		if ua != "" {
			cl.userAgent = ua
		}
	}
}

// WithToken sets an API token for higher rate limits.
func WithToken(token string) Option {
	return func(cl *Client) {
		cl.token = token
	}
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// New creates a Client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURL:    DefaultBaseURL,
		userAgent:  branding.ClientID(),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the registry API root in use.
func (c *Client) BaseURL() string {
	return c.baseURL
}
