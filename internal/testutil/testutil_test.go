// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package testutil

import (
	"io"
	"net/http"
	"testing"

	"golang.org/x/tools/txtar"
)

func TestMockHTTPClient(t *testing.T) {
	t.Parallel()

	httpc := MockHTTPClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		io.WriteString(w, r.URL.Path)
	}))

	res, err := httpc.Get("https://example.com/hello")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	AssertEqual(t, res.StatusCode, http.StatusTeapot)
	AssertEqual(t, string(b), "/hello")
}

func TestTxtarFile(t *testing.T) {
	t.Parallel()

	ar := txtar.Parse([]byte("comment\n-- a.json --\n  {\"a\": 1}\n\n-- b --\n"))

	got, ok := TxtarFile(ar, "a.json")
	AssertEqual(t, ok, true)
	AssertEqual(t, got, `{"a": 1}`)

	got, ok = TxtarFile(ar, "b")
	AssertEqual(t, ok, true)
	AssertEqual(t, got, "")

	_, ok = TxtarFile(ar, "missing")
	AssertEqual(t, ok, false)
}
