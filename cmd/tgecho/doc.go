// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Tgecho replies to pending Telegram messages once and exits.

It fetches pending updates of a bot, and replies to every text message in
the same chat with the text of the message itself. The first failed reply
stops the run.

# Usage

	$ TGECHO_TOKEN=... tgecho [flags...]

The bot token is taken from the first of these that is set: the -token flag,
the TGECHO_TOKEN environment variable, the configuration file, the system
keychain (with -keychain).

A token can be stored in the system keychain with:

	$ echo "$TOKEN" | tgecho -save-token

# Configuration file

The -config flag names a YAML file:

	token: "123456:ABC..."
	script: reply.star

# Reply scripts

Instead of echoing, replies can be computed by a Starlark script that defines
a reply function. It receives the message as a dict and returns the reply
text, or None to leave the message unanswered:

	def reply(message):
	    if message["text"] == "/ping":
	        return "pong"
	    return None

Scripts can call the Bot API through the predeclared telegram module, see
the tgstarlark package.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/tgapi/internal/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
