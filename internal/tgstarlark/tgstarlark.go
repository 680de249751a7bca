// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package tgstarlark exposes the Telegram client to Starlark and runs reply
// scripts.
//
// A reply script is a Starlark file that defines a reply function:
//
//	def reply(message):
//	    if message["text"] == "/ping":
//	        return "pong"
//	    return None
//
// The message is a dict with the same keys as the Bot API Message object.
// Returning a string sends it as the reply, returning None skips the message.
//
// Scripts can also use the predeclared telegram module:
//
//	updates = telegram.get_updates(offset = 10)
//	sent = telegram.send_message(chat_id = 123, text = "hi", reply_to_message_id = 5)
package tgstarlark

import (
	"context"
	"encoding/json"
	"fmt"

	"go.astrophena.name/tgapi/internal/logger"
	"go.astrophena.name/tgapi/telegram"

	starlarkjson "go.starlark.net/lib/json"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

const contextKey = "context"

// SetContext makes ctx available to builtins called on thread.
func SetContext(thread *starlark.Thread, ctx context.Context) {
	thread.SetLocal(contextKey, ctx)
}

// Context returns the context set by SetContext, or [context.Background].
func Context(thread *starlark.Thread) context.Context {
	if ctx, ok := thread.Local(contextKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}

// Module returns a Starlark module named telegram that calls the Bot API
// through c.
func Module(c *telegram.Client) *starlarkstruct.Module {
	m := &module{c: c}
	return &starlarkstruct.Module{
		Name: "telegram",
		Members: starlark.StringDict{
			"get_updates":  starlark.NewBuiltin("telegram.get_updates", m.getUpdates),
			"send_message": starlark.NewBuiltin("telegram.send_message", m.sendMessage),
		},
	}
}

type module struct {
	c *telegram.Client
}

func (m *module) getUpdates(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var offsetVal starlark.Value = starlark.None
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "offset?", &offsetVal); err != nil {
		return nil, err
	}

	var offset *int64
	if offsetVal != starlark.None {
		var n int64
		if err := starlark.AsInt(offsetVal, &n); err != nil {
			return nil, fmt.Errorf("%s: offset: %w", b.Name(), err)
		}
		offset = &n
	}

	updates, err := m.c.GetUpdates(Context(thread), offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return toValue(thread, updates)
}

func (m *module) sendMessage(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		chatID    starlark.Value
		text      string
		replyTo   starlark.Value = starlark.None
		parseMode string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"chat_id", &chatID,
		"text", &text,
		"reply_to_message_id?", &replyTo,
		"parse_mode?", &parseMode,
	); err != nil {
		return nil, err
	}

	req := telegram.SendMessageRequest{Text: text, ParseMode: parseMode}
	if err := starlark.AsInt(chatID, &req.ChatID); err != nil {
		return nil, fmt.Errorf("%s: chat_id: %w", b.Name(), err)
	}
	if replyTo != starlark.None {
		if err := starlark.AsInt(replyTo, &req.ReplyToMessageID); err != nil {
			return nil, fmt.Errorf("%s: reply_to_message_id: %w", b.Name(), err)
		}
	}

	msg, err := m.c.SendMessage(Context(thread), req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	return toValue(thread, msg)
}

// toValue converts v to Starlark values through its JSON representation.
func toValue(thread *starlark.Thread, v any) (starlark.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return starlark.Call(thread, starlarkjson.Module.Members["decode"], starlark.Tuple{starlark.String(b)}, nil)
}

// Script is a loaded reply script. It is not safe for concurrent use.
type Script struct {
	thread *starlark.Thread
	reply  starlark.Callable
}

// Load executes the script in src and returns it. The script must define a
// reply function. Output of print is sent to logf.
func Load(ctx context.Context, filename string, src []byte, c *telegram.Client, logf logger.Logf) (*Script, error) {
	thread := &starlark.Thread{
		Name:  filename,
		Print: func(_ *starlark.Thread, msg string) { logf("%s: %s", filename, msg) },
	}
	SetContext(thread, ctx)

	predeclared := starlark.StringDict{
		"json":     starlarkjson.Module,
		"telegram": Module(c),
	}
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, filename, src, predeclared)
	if err != nil {
		return nil, err
	}

	reply, ok := globals["reply"].(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("%s: reply function is not defined", filename)
	}
	return &Script{thread: thread, reply: reply}, nil
}

// Reply calls the script's reply function with msg. It reports false if the
// function returned None.
func (s *Script) Reply(ctx context.Context, msg telegram.Message) (text string, ok bool, err error) {
	SetContext(s.thread, ctx)

	arg, err := toValue(s.thread, msg)
	if err != nil {
		return "", false, err
	}
	res, err := starlark.Call(s.thread, s.reply, starlark.Tuple{arg}, nil)
	if err != nil {
		return "", false, err
	}

	switch res := res.(type) {
	case starlark.String:
		return string(res), true, nil
	case starlark.NoneType:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("%s: reply returned %s, want string or None", s.thread.Name, res.Type())
	}
}
