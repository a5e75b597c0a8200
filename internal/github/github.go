// Package github is a minimal client for the GitHub code search API.
//
// Only the request search needs is implemented: a code search scoped by
// user, path, filename and extension. Every failure is reported as *Error so
// callers can tell remote failures apart from their own.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultBaseURL is the public GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

// DefaultTimeout bounds a whole request including reading the body.
const DefaultTimeout = 10 * time.Second

// maxBody caps how much of a response is read.
const maxBody = 8 << 20

// Kind classifies a remote failure.
type Kind string

const (
	KindNetwork   Kind = "network"    // transport failure or timeout
	KindAuth      Kind = "auth"       // 401, or 403 without rate limiting
	KindRateLimit Kind = "rate_limit" // 403/429 with the rate limit exhausted
	KindMalformed Kind = "malformed"  // body could not be decoded
	KindStatus    Kind = "status"     // any other non-2xx status
)

// Error is returned for every failed request.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 for transport failures
	Message string // API message or transport error text
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("github %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("github %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// CodeQuery scopes a code search.
type CodeQuery struct {
	User      string
	Path      string
	Filename  string
	Extension string
}

// String renders the search qualifiers, e.g.
// "user:caskroom path:Casks filename:firefox extension:rb".
func (q CodeQuery) String() string {
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+":"+v)
		}
	}
	add("user", q.User)
	add("path", q.Path)
	add("filename", q.Filename)
	add("extension", q.Extension)
	return strings.Join(parts, " ")
}

// Repository identifies the repository owning a hit.
type Repository struct {
	FullName string `json:"full_name"`
}

// CodeResult is one code search hit.
type CodeResult struct {
	Name       string     `json:"name"`
	Path       string     `json:"path"`
	Repository Repository `json:"repository"`
}

type codeSearchResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []CodeResult `json:"items"`
}

type apiError struct {
	Message string `json:"message"`
}

// Client issues GitHub API requests.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Options configures a Client. Zero values select defaults.
type Options struct {
	BaseURL string
	Token   string // Empty means unauthenticated; see TokenFromEnv
	Timeout time.Duration
}

// TokenFromEnv returns GITHUB_TOKEN, or HOMEBREW_GITHUB_API_TOKEN when unset.
func TokenFromEnv() string {
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		return t
	}
	return os.Getenv("HOMEBREW_GITHUB_API_TOKEN")
}

// New creates a client.
func New(opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimSuffix(base, "/"),
		token:   opts.Token,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   5 * time.Second,
				ResponseHeaderTimeout: timeout,
			},
		},
	}
}

// SearchCode runs a code search and returns the hits in API order.
func (c *Client) SearchCode(ctx context.Context, q CodeQuery) ([]CodeResult, error) {
	u := c.baseURL + "/search/code?q=" + url.QueryEscape(q.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Status: resp.StatusCode, Message: "reading response: " + err.Error(), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, body)
	}

	var out codeSearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &Error{Kind: KindMalformed, Status: resp.StatusCode, Message: "decoding response: " + err.Error(), Err: err}
	}
	for _, it := range out.Items {
		if it.Path == "" || it.Repository.FullName == "" {
			return nil, &Error{Kind: KindMalformed, Status: resp.StatusCode, Message: "search hit without path or repository"}
		}
	}
	return out.Items, nil
}

func statusError(resp *http.Response, body []byte) *Error {
	msg := http.StatusText(resp.StatusCode)
	var ae apiError
	if json.Unmarshal(body, &ae) == nil && ae.Message != "" {
		msg = ae.Message
	}

	kind := KindStatus
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		kind = KindAuth
	case http.StatusForbidden, http.StatusTooManyRequests:
		kind = KindAuth
		if resp.StatusCode == http.StatusTooManyRequests || resp.Header.Get("X-RateLimit-Remaining") == "0" {
			kind = KindRateLimit
		}
	}
	return &Error{Kind: kind, Status: resp.StatusCode, Message: msg}
}
