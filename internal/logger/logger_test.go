// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"fmt"
	"log"
	"strings"
	"testing"

	"go.astrophena.name/tgapi/internal/testutil"
)

func TestLogfWriter(t *testing.T) {
	t.Parallel()

	var lines []string
	logf := Logf(func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})

	l := log.New(logf, "", 0)
	l.Printf("hello %s", "world")
	l.Print("bye")

	testutil.AssertEqual(t, strings.Join(lines, ""), "hello world\nbye\n")
}
