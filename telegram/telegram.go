// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package telegram is a minimal typed client for the Telegram Bot API.
//
// It covers two methods: getUpdates and sendMessage. Failures are reported
// as one of three error types:
//
//   - [*ConfigError] when the client cannot be constructed;
//   - [*RequestError] when a request could not be made or its response could
//     not be read as JSON;
//   - [*APIError] when Telegram rejected the request, or when a sent message
//     was not returned back.
//
// The client does not retry, rate limit or track the update offset; callers
// own all of that.
package telegram

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Bot API endpoint.
	DefaultBaseURL = "https://api.telegram.org"
	// DefaultTimeout limits every request made by a client that was
	// constructed without a custom HTTP client.
	DefaultTimeout = 30 * time.Second
)

// Config configures a [Client].
type Config struct {
	// Token is the bot token issued by @BotFather.
	Token string
	// BaseURL overrides DefaultBaseURL.
	BaseURL string
	// HTTPClient overrides the client's own HTTP client. Its timeout is used
	// as is.
	HTTPClient *http.Client
	// Logger is used for debug logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client makes requests to the Bot API. It is safe for concurrent use.
type Client struct {
	apiURL   string // <base>/bot<token>
	httpc    *http.Client
	scrubber *strings.Replacer
	logger   *slog.Logger
}

// New returns a new Client.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSuffix(cmp.Or(cfg.BaseURL, DefaultBaseURL), "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, &ConfigError{Err: fmt.Errorf("base URL %q is not an absolute HTTP URL", base)}
	}

	c := &Client{
		apiURL:   base + "/bot" + cfg.Token,
		httpc:    cfg.HTTPClient,
		scrubber: newScrubber(cfg.Token),
		logger:   cfg.Logger,
	}
	if c.httpc == nil {
		c.httpc, err = newHTTPClient(http.DefaultTransport)
		if err != nil {
			return nil, err
		}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c, nil
}

// newHTTPClient returns an HTTP client with a private copy of rt, so that
// connection pool settings are not shared with other users of rt.
func newHTTPClient(rt http.RoundTripper) (*http.Client, error) {
	t, ok := rt.(*http.Transport)
	if !ok {
		return nil, &ConfigError{Err: fmt.Errorf("cannot clone HTTP transport of type %T", rt)}
	}
	return &http.Client{
		Transport: t.Clone(),
		Timeout:   DefaultTimeout,
	}, nil
}

func newScrubber(token string) *strings.Replacer {
	if token == "" {
		return nil
	}
	oldnew := []string{token, "[EXPUNGED]"}
	if escaped := url.PathEscape(token); escaped != token {
		oldnew = append(oldnew, escaped, "[EXPUNGED]")
	}
	return strings.NewReplacer(oldnew...)
}

// GetUpdates fetches incoming updates in the order sent by Telegram.
//
// A nil offset leaves the offset parameter out of the request; note that
// this is not the same as an offset of zero.
//
// A successful response whose result is missing or malformed yields an
// empty slice and no error.
func (c *Client) GetUpdates(ctx context.Context, offset *int64) ([]Update, error) {
	var query url.Values
	if offset != nil {
		query = url.Values{"offset": {strconv.FormatInt(*offset, 10)}}
	}

	updates, err := call[[]Update](ctx, c, http.MethodGet, "getUpdates", query, nil)
	if errors.Is(err, errBadResult) {
		c.logger.WarnContext(ctx, "ignoring malformed getUpdates result", slog.Any("err", err))
		return []Update{}, nil
	}
	if err != nil {
		return nil, err
	}
	if updates == nil {
		updates = []Update{}
	}
	return updates, nil
}

// SendMessage sends a text message and returns it as stored by Telegram.
func (c *Client) SendMessage(ctx context.Context, req SendMessageRequest) (*Message, error) {
	msg, err := call[Message](ctx, c, http.MethodPost, "sendMessage", nil, req)
	if errors.Is(err, errBadResult) {
		return nil, &APIError{Description: failedToParseMessage}
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
