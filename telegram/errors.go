// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package telegram

import (
	"errors"
	"strconv"
	"time"
)

// ErrMalformedResponse is matched by a [*RequestError] when the server
// responds with a body that is not valid JSON.
var ErrMalformedResponse = errors.New("response body is not valid JSON")

// ConfigError is returned by [New] when the client cannot be set up.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "telegram: configuration: " + e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// RequestError reports a failure to complete a Bot API request or to read
// its response: connection, DNS, TLS and timeout errors, and response bodies
// that are not JSON.
type RequestError struct {
	// Method is the Bot API method, like "getUpdates".
	Method string
	Err    error
}

func (e *RequestError) Error() string { return "telegram: " + e.Method + ": " + e.Err.Error() }
func (e *RequestError) Unwrap() error { return e.Err }

// APIError is a failure reported by the Bot API itself, or a successful
// response that lacks the expected result.
type APIError struct {
	Description string
	// ErrorCode is the envelope's error_code, or zero.
	ErrorCode int
	// RetryAfter is set when the server asks to wait before repeating the
	// request.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.ErrorCode != 0 {
		return "telegram: API error " + strconv.Itoa(e.ErrorCode) + ": " + e.Description
	}
	return "telegram: API error: " + e.Description
}
