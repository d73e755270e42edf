// Package version provides build version information and runtime metadata.
package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"
	"time"
)

// Name is the binary name shown in version output.
const Name = "hwd"

var (
	// Set via -ldflags "-X .../internal/version.Version=..." at build time.
	Version = ""
	Commit  = ""
	Date    = ""

	once sync.Once

	// Swapped in tests.
	readBuildInfo = debug.ReadBuildInfo
	runGit        = git
)

const gitTimeout = 2 * time.Second

// resolve fills the unset fields from ldflags, then the embedded build info,
// then the git checkout the binary runs in.
func resolve() {
	once.Do(func() {
		fromBuildInfo()
		if Commit == "" {
			Commit = gitOr("unknown", "rev-parse", "--short", "HEAD")
		}
		if Version == "" {
			Version = gitOr("dev", "describe", "--tags", "--abbrev=0")
		}
		if Date == "" {
			Date = time.Now().Format("2006-01-02")
		}
	})
}

func fromBuildInfo() {
	info, ok := readBuildInfo()
	if !ok {
		return
	}
	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "" && s.Value != "" {
				Commit = s.Value[:min(len(s.Value), 7)]
			}
		case "vcs.time":
			if Date == "" {
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					Date = t.Format("2006-01-02")
				}
			}
		}
	}
}

// gitOr runs git and returns def on failure or empty output.
func gitOr(def string, args ...string) string {
	out, err := runGit(args...)
	if err != nil || out == "" {
		return def
	}
	return out
}

// Reset clears resolved values so the next call re-detects them.
func Reset() {
	Version, Commit, Date = "", "", ""
	once = sync.Once{}
}

func git(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(out.String()), nil
}

// GetVersion returns the resolved version.
func GetVersion() string {
	resolve()
	return Version
}

// GetCommit returns the resolved commit.
func GetCommit() string {
	resolve()
	return Commit
}

// GetDate returns the build date.
func GetDate() string {
	resolve()
	return Date
}

// Info returns the one-line version banner.
func Info() string {
	resolve()
	return fmt.Sprintf("%s %s (commit: %s, built: %s, %s/%s)",
		Name, Version, Commit, Date, runtime.GOOS, runtime.GOARCH)
}
