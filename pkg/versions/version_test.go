package versions

import (
	"fmt"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetVersionInfo(t *testing.T) { //nolint:paralleltest // Modifies global variables
	// Save original values
	origVersion := Version
	origCommit := Commit
	origBuildDate := BuildDate
	t.Cleanup(func() {
		Version = origVersion
		Commit = origCommit
		BuildDate = origBuildDate
	})

	tests := []struct {
		name      string
		version   string
		commit    string
		buildDate string
		check     func(t *testing.T, v VersionInfo)
	}{
		{
			name:      "dev version with commit",
			version:   "dev",
			commit:    "abc123def456789",
			buildDate: unknownStr,
			check: func(t *testing.T, v VersionInfo) {
				t.Helper()
				assert.Equal(t, "build-abc123de", v.Version)
				assert.Equal(t, "abc123def456789", v.Commit)
				assert.Equal(t, unknownStr, v.BuildDate)
			},
		},
		{
			name:      "release version",
			version:   "v1.2.3",
			commit:    "abc123def456789",
			buildDate: "2026-01-15T10:30:00Z",
			check: func(t *testing.T, v VersionInfo) {
				t.Helper()
				assert.Equal(t, "v1.2.3", v.Version)
				assert.Equal(t, "2026-01-15 10:30:00 UTC", v.BuildDate)
			},
		},
		{
			name:      "invalid date kept verbatim",
			version:   "v2.0.0",
			commit:    "xyz789",
			buildDate: "not-a-date",
			check: func(t *testing.T, v VersionInfo) {
				t.Helper()
				assert.Equal(t, "not-a-date", v.BuildDate)
			},
		},
	}

	for _, tt := range tests { //nolint:paralleltest // Modifies global variables
		t.Run(tt.name, func(t *testing.T) {
			Version = tt.version
			Commit = tt.commit
			BuildDate = tt.buildDate

			got := GetVersionInfo()

			assert.Equal(t, runtime.Version(), got.GoVersion)
			assert.Equal(t, fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH), got.Platform)
			tt.check(t, got)
		})
	}
}

func TestDevVersionUsesBuildInfo(t *testing.T) { //nolint:paralleltest // Modifies global variables
	origVersion := Version
	origCommit := Commit
	origBuildDate := BuildDate
	t.Cleanup(func() {
		Version = origVersion
		Commit = origCommit
		BuildDate = origBuildDate
	})

	Version = "dev"
	Commit = unknownStr
	BuildDate = unknownStr

	got := GetVersionInfo()
	assert.True(t, strings.HasPrefix(got.Version, "build-"), "dev builds get a manufactured version, got %q", got.Version)
}
