// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"go.astrophena.name/tgapi/internal/request"
)

const (
	unknownAPIError      = "Unknown API error"
	failedToParseMessage = "Failed to parse message response"
)

// errBadResult is returned by call when the envelope reports success but its
// result is missing or does not decode into the expected type. Each method
// decides how strict to be about it.
var errBadResult = errors.New("missing or malformed result")

// envelope is the object wrapping every Bot API response.
type envelope struct {
	failed      bool // ok is present and false
	description string
	errorCode   int
	retryAfter  time.Duration
	result      json.RawMessage // nil if absent or null
}

func decodeEnvelope(b []byte) (envelope, error) {
	if !json.Valid(b) {
		return envelope{}, ErrMalformedResponse
	}

	var env envelope
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		// Valid JSON, but not an object: there are no envelope fields.
		return env, nil
	}

	if ok, isBool := field[bool](fields, "ok"); isBool && !ok {
		env.failed = true
	}
	env.description = unknownAPIError
	if desc, ok := field[string](fields, "description"); ok {
		env.description = desc
	}
	if code, ok := field[float64](fields, "error_code"); ok {
		env.errorCode = int(code)
	}
	if params, ok := field[map[string]any](fields, "parameters"); ok {
		if secs, ok := params["retry_after"].(float64); ok {
			env.retryAfter = time.Duration(secs) * time.Second
		}
	}
	if present(fields, "result") {
		env.result = fields["result"]
	}
	return env, nil
}

// field returns the named envelope field if it holds a JSON value of type T.
func field[T any](fields map[string]json.RawMessage, name string) (T, bool) {
	var v any
	if err := json.Unmarshal(fields[name], &v); err != nil {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

func (e envelope) err() error {
	if !e.failed {
		return nil
	}
	return &APIError{
		Description: e.description,
		ErrorCode:   e.errorCode,
		RetryAfter:  e.retryAfter,
	}
}

// call makes a Bot API request, checks the response envelope and decodes its
// result into T.
//
// Transport failures and bodies that are not JSON are returned as
// [*RequestError], ok:false envelopes as [*APIError]. A result that is
// missing or has the wrong shape is reported as errBadResult.
func call[T any](ctx context.Context, c *Client, httpMethod, method string, query url.Values, body any) (T, error) {
	var zero T

	u := c.apiURL + "/" + method
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	c.logger.DebugContext(ctx, "calling Bot API", slog.String("method", method))

	b, err := request.Make[request.Bytes](ctx, request.Params{
		Method:     httpMethod,
		URL:        u,
		Body:       body,
		HTTPClient: c.httpc,
		Scrubber:   c.scrubber,
	})
	// Telegram reports failures with 4xx statuses and an ok:false envelope,
	// so the body of a non-2xx response still has to be looked at.
	var statusErr *request.StatusError
	if err != nil {
		if !errors.As(err, &statusErr) {
			return zero, &RequestError{Method: method, Err: err}
		}
		b = statusErr.Body
	}

	env, decodeErr := decodeEnvelope(b)
	if decodeErr != nil {
		if err != nil {
			decodeErr = fmt.Errorf("%w: %w", decodeErr, err)
		}
		return zero, &RequestError{Method: method, Err: decodeErr}
	}
	if err := env.err(); err != nil {
		return zero, err
	}
	if err != nil {
		// Non-2xx status without an ok:false envelope.
		return zero, &RequestError{Method: method, Err: err}
	}

	if env.result == nil {
		return zero, fmt.Errorf("%s: %w: no result", method, errBadResult)
	}
	var v T
	if err := json.Unmarshal(env.result, &v); err != nil {
		return zero, fmt.Errorf("%s: %w: %v", method, errBadResult, err)
	}
	return v, nil
}
