// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package telegram

import (
	"encoding/json"
	"fmt"
)

// Update is an incoming update returned by getUpdates.
type Update struct {
	// UpdateID increases monotonically and is used as the getUpdates cursor.
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// Message is a Telegram message.
type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

// User is a Telegram user or bot.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Chat is a Telegram chat.
type Chat struct {
	ID int64 `json:"id"`
	// Type is one of "private", "group", "supergroup" or "channel", though
	// any value sent by the server is kept as is.
	Type     string `json:"type"`
	Title    string `json:"title,omitempty"`
	Username string `json:"username,omitempty"`
}

// SendMessageRequest holds the arguments of the sendMessage method.
//
// Zero values of optional fields are left out of the request body.
// Telegram never assigns message ID 0, so a zero ReplyToMessageID means
// "not a reply".
type SendMessageRequest struct {
	ChatID           int64  `json:"chat_id"`
	Text             string `json:"text"`
	ReplyToMessageID int64  `json:"reply_to_message_id,omitempty"`
	ParseMode        string `json:"parse_mode,omitempty"`
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (u *Update) UnmarshalJSON(data []byte) error {
	if _, err := requireFields(data, "update", "update_id"); err != nil {
		return err
	}
	type plain Update
	return json.Unmarshal(data, (*plain)(u))
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (m *Message) UnmarshalJSON(data []byte) error {
	if _, err := requireFields(data, "message", "message_id", "chat"); err != nil {
		return err
	}
	type plain Message
	return json.Unmarshal(data, (*plain)(m))
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
func (u *User) UnmarshalJSON(data []byte) error {
	if _, err := requireFields(data, "user", "id", "first_name"); err != nil {
		return err
	}
	type plain User
	return json.Unmarshal(data, (*plain)(u))
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
//
// The chat type is read from "type", falling back to "chat_type".
func (c *Chat) UnmarshalJSON(data []byte) error {
	fields, err := requireFields(data, "chat", "id")
	if err != nil {
		return err
	}
	if !present(fields, "type") && !present(fields, "chat_type") {
		return fmt.Errorf("telegram: chat: missing required field %q", "type")
	}

	type plain Chat
	aux := struct {
		*plain
		ChatType string `json:"chat_type"`
	}{plain: (*plain)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.Type == "" {
		c.Type = aux.ChatType
	}
	return nil
}

// requireFields reports an error if data is not a JSON object or lacks any of
// the named fields. A field set to null counts as missing.
func requireFields(data []byte, typ string, names ...string) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("telegram: %s: %w", typ, err)
	}
	for _, name := range names {
		if !present(fields, name) {
			return nil, fmt.Errorf("telegram: %s: missing required field %q", typ, name)
		}
	}
	return fields, nil
}

func present(fields map[string]json.RawMessage, name string) bool {
	v, ok := fields[name]
	return ok && string(v) != "null"
}
