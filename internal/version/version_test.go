package version

import (
	"runtime/debug"
	"testing"

	"github.com/teleivo/assertive/assert"
)

func TestVersion(t *testing.T) {
	tests := map[string]struct {
		in   debug.BuildInfo
		want string
	}{
		"Release": {
			in:   debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}},
			want: "v0.3.0",
		},
		"DevelWithoutVCS": {
			in:   debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			want: "(devel)",
		},
		"DevelWithRevision": {
			in: debug.BuildInfo{
				Main:     debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}},
			},
			want: "(devel) 0123456789ab",
		},
		"DevelModified": {
			in: debug.BuildInfo{
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			want: "(devel) abc-dirty",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.EqualValues(t, version(&test.in), test.want, "version(%+v)", test.in)
		})
	}
}
