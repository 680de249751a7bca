// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package telegram

import (
	"encoding/json"
	"testing"

	"go.astrophena.name/tgapi/internal/testutil"
)

func TestChatUnmarshal(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		in      string
		want    Chat
		wantErr bool
	}{
		"type":              {in: `{"id":1,"type":"private"}`, want: Chat{ID: 1, Type: "private"}},
		"chat_type":         {in: `{"id":1,"chat_type":"group"}`, want: Chat{ID: 1, Type: "group"}},
		"type wins":         {in: `{"id":1,"type":"supergroup","chat_type":"group"}`, want: Chat{ID: 1, Type: "supergroup"}},
		"unknown type kept": {in: `{"id":1,"type":"forum"}`, want: Chat{ID: 1, Type: "forum"}},
		"missing type":      {in: `{"id":1,"title":"x"}`, wantErr: true},
		"missing id":        {in: `{"type":"private"}`, wantErr: true},
		"null id":           {in: `{"id":null,"type":"private"}`, wantErr: true},
		"not an object":     {in: `"chat"`, wantErr: true},
		"wrong type for id": {in: `{"id":"1","type":"private"}`, wantErr: true},
		"optional fields":   {in: `{"id":1,"type":"channel","title":"News","username":"news"}`, want: Chat{ID: 1, Type: "channel", Title: "News", Username: "news"}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var got Chat
			err := json.Unmarshal([]byte(tc.in), &got)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("want error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestMessageMarshal(t *testing.T) {
	t.Parallel()

	msg := Message{MessageID: 1, Chat: Chat{ID: 2, Type: "private"}}
	b, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, string(b), `{"message_id":1,"chat":{"id":2,"type":"private"}}`)

	var back Message
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, back, msg)
}
