package version

import (
	"errors"
	"runtime/debug"
	"strings"
	"testing"
)

// stub replaces the build info and git lookups until the test ends.
func stub(t *testing.T, info *debug.BuildInfo, gitOut map[string]string) {
	t.Helper()
	origInfo, origGit := readBuildInfo, runGit
	t.Cleanup(func() {
		readBuildInfo, runGit = origInfo, origGit
		Reset()
	})

	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	runGit = func(args ...string) (string, error) {
		out, ok := gitOut[args[0]]
		if !ok {
			return "", errors.New("not a git repository")
		}
		return out, nil
	}
	Reset()
}

func TestResolve_FromBuildInfo(t *testing.T) {
	stub(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-03-14T08:00:00Z"},
		},
	}, map[string]string{"rev-parse": "ffffff", "describe": "v9.9.9"})

	if got := GetVersion(); got != "v0.4.1" {
		t.Errorf("GetVersion() = %q, want v0.4.1", got)
	}
	if got := GetCommit(); got != "0123456" {
		t.Errorf("GetCommit() = %q, want 0123456", got)
	}
	if got := GetDate(); got != "2026-03-14" {
		t.Errorf("GetDate() = %q, want 2026-03-14", got)
	}
}

func TestResolve_DevelFallsBackToGit(t *testing.T) {
	stub(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
		map[string]string{"rev-parse": "abc1234", "describe": "v1.0.0"})

	if got := GetVersion(); got != "v1.0.0" {
		t.Errorf("GetVersion() = %q, want v1.0.0", got)
	}
	if got := GetCommit(); got != "abc1234" {
		t.Errorf("GetCommit() = %q, want abc1234", got)
	}
}

func TestResolve_NoSources(t *testing.T) {
	tests := []struct {
		name       string
		gitOut     map[string]string
		wantVer    string
		wantCommit string
	}{
		{"no git", nil, "dev", "unknown"},
		{"untagged", map[string]string{"rev-parse": "abc1234"}, "dev", "abc1234"},
		{"empty describe", map[string]string{"rev-parse": "abc1234", "describe": ""}, "dev", "abc1234"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub(t, nil, tt.gitOut)

			if got := GetVersion(); got != tt.wantVer {
				t.Errorf("GetVersion() = %q, want %q", got, tt.wantVer)
			}
			if got := GetCommit(); got != tt.wantCommit {
				t.Errorf("GetCommit() = %q, want %q", got, tt.wantCommit)
			}
			if GetDate() == "" {
				t.Error("GetDate() returned empty string")
			}
		})
	}
}

func TestResolve_LdflagsWin(t *testing.T) {
	stub(t, &debug.BuildInfo{Main: debug.Module{Version: "v0.4.1"}}, nil)
	Version, Commit, Date = "1.2.0", "abc123", "2026-03-15"

	info := Info()
	if !strings.HasPrefix(info, "hwd 1.2.0 (commit: abc123, built: 2026-03-15, ") {
		t.Errorf("Info() = %q", info)
	}
}
