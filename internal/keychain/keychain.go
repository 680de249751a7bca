// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package keychain stores bot tokens in the system keychain.
package keychain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"
)

const service = "go.astrophena.name/tgapi"

// ErrNotFound is returned by Token when no token is stored for the account.
var ErrNotFound = errors.New("no token in keychain")

// Token returns the bot token stored for account.
func Token(account string) (string, error) {
	tok, err := keyring.Get(service, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w for %q", ErrNotFound, account)
	}
	if err != nil {
		return "", fmt.Errorf("reading keychain: %w", err)
	}
	return tok, nil
}

// SetToken stores the bot token for account, replacing any previous one.
func SetToken(account, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("refusing to store an empty token")
	}
	if err := keyring.Set(service, account, token); err != nil {
		return fmt.Errorf("writing keychain: %w", err)
	}
	return nil
}
