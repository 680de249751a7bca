// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"go.astrophena.name/tgapi/internal/testutil"
)

func TestLoadInfo(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		bi   *debug.BuildInfo
		ok   bool
		want Info
	}{
		"no build info": {
			want: Info{Name: "tgecho", Version: "devel"},
		},
		"devel with vcs": {
			bi: &debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.time", Value: "2025-01-02T03:04:05Z"},
				},
			},
			ok:   true,
			want: Info{Name: "tgecho", Version: "devel", Commit: "abc123", BuiltAt: "2025-01-02T03:04:05Z"},
		},
		"tagged": {
			bi:   &debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}},
			ok:   true,
			want: Info{Name: "tgecho", Version: "v1.2.3"},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := loadInfo("tgecho", func() (*debug.BuildInfo, bool) { return tc.bi, tc.ok })
			want := tc.want
			want.Go, want.OS, want.Arch = runtime.Version(), runtime.GOOS, runtime.GOARCH
			testutil.AssertEqual(t, got, want)
		})
	}
}

func TestUserAgent(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		in   Info
		want string
	}{
		"tagged":            {in: Info{Version: "v1.2.3", Commit: "abc"}, want: "tgapi/v1.2.3 (+https://go.astrophena.name/tgapi)"},
		"devel with commit": {in: Info{Version: "devel", Commit: "abc"}, want: "tgapi/abc (+https://go.astrophena.name/tgapi)"},
		"devel":             {in: Info{Version: "devel"}, want: "tgapi/devel (+https://go.astrophena.name/tgapi)"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, userAgent(tc.in), tc.want)
		})
	}
}

func TestInfoString(t *testing.T) {
	t.Parallel()

	i := Info{Name: "tgecho", Version: "v1.0.0", Commit: "abc", BuiltAt: "now", Go: "go1.24", OS: "linux", Arch: "amd64"}
	testutil.AssertEqual(t, i.String(), "tgecho v1.0.0 (go1.24, linux/amd64)\ncommit abc\nbuilt at now\n")
}
