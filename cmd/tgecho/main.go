// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bufio"
	"cmp"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"go.astrophena.name/tgapi/internal/cli"
	"go.astrophena.name/tgapi/internal/keychain"
	"go.astrophena.name/tgapi/internal/logger"
	"go.astrophena.name/tgapi/internal/tgstarlark"
	"go.astrophena.name/tgapi/telegram"
)

func main() { cli.Main(new(app)) }

type app struct {
	token           string
	configPath      string
	useKeychain     bool
	keychainAccount string
	saveToken       bool
	scriptPath      string

	// for tests
	httpc   *http.Client
	baseURL string
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.token, "token", "", "Bot `token`.")
	fs.StringVar(&a.configPath, "config", "", "Read configuration from YAML `file`.")
	fs.BoolVar(&a.useKeychain, "keychain", false, "Read the bot token from the system keychain.")
	fs.StringVar(&a.keychainAccount, "keychain-account", "tgecho", "Keychain `account` holding the bot token.")
	fs.BoolVar(&a.saveToken, "save-token", false, "Store the bot token read from stdin in the system keychain and exit.")
	fs.StringVar(&a.scriptPath, "script", "", "Compute replies with Starlark `file`.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	if len(env.Args) > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrInvalidArgs, env.Args)
	}

	if a.saveToken {
		s := bufio.NewScanner(env.Stdin)
		s.Scan()
		if err := s.Err(); err != nil {
			return err
		}
		if err := keychain.SetToken(a.keychainAccount, s.Text()); err != nil {
			return err
		}
		env.Logf("Token stored in keychain for %q.", a.keychainAccount)
		return nil
	}

	var cfg config
	if a.configPath != "" {
		var err error
		if cfg, err = loadConfig(a.configPath); err != nil {
			return err
		}
	}

	token := cmp.Or(a.token, env.Getenv("TGECHO_TOKEN"), cfg.Token)
	if token == "" && a.useKeychain {
		var err error
		if token, err = keychain.Token(a.keychainAccount); err != nil {
			return err
		}
	}
	if token == "" {
		return fmt.Errorf("%w: bot token is not set, use -token, TGECHO_TOKEN, -config or -keychain", cli.ErrInvalidArgs)
	}

	c, err := telegram.New(telegram.Config{
		Token:      token,
		BaseURL:    a.baseURL,
		HTTPClient: a.httpc,
		Logger:     slog.New(slog.NewTextHandler(logger.Logf(env.Logf), nil)),
	})
	if err != nil {
		return err
	}

	reply := echo
	if path := cmp.Or(a.scriptPath, cfg.Script); path != "" {
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		script, err := tgstarlark.Load(ctx, path, src, c, env.Logf)
		if err != nil {
			return err
		}
		reply = script.Reply
	}

	return replyOnce(ctx, c, reply, env.Logf)
}

// replyFunc returns the reply text for msg, or false to leave it unanswered.
type replyFunc func(ctx context.Context, msg telegram.Message) (text string, ok bool, err error)

func echo(_ context.Context, msg telegram.Message) (string, bool, error) {
	return msg.Text, true, nil
}

// replyOnce fetches pending updates and replies to each text message. It
// stops at the first error.
func replyOnce(ctx context.Context, c *telegram.Client, reply replyFunc, logf logger.Logf) error {
	updates, err := c.GetUpdates(ctx, nil)
	if err != nil {
		return err
	}

	for _, u := range updates {
		msg := u.Message
		if msg == nil || msg.Text == "" {
			continue
		}

		text, ok, err := reply(ctx, *msg)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		sent, err := c.SendMessage(ctx, telegram.SendMessageRequest{
			ChatID:           msg.Chat.ID,
			Text:             text,
			ReplyToMessageID: msg.MessageID,
		})
		if err != nil {
			return err
		}
		logf("Replied to message %d in chat %d with message %d.", msg.MessageID, msg.Chat.ID, sent.MessageID)
	}

	return nil
}
