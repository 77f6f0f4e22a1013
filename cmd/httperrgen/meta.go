package main

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Overridable with -ldflags "-X main.Version=...".
var (
	Version string
	Commit  string
	Date    string
)

var descriptionTemplate = `
Generates HTTP error accessors for annotated Go enums.
  Version: %s (%s)
           %s

Annotate each constant of the enum and run the tool via go generate:

  //go:generate httperrgen --type=AppError

  const (
      //httperr:detail status = 404, message = "resource not found"
      NotFound AppError = iota
  )
`

func Description() string {
	return fmt.Sprintf(descriptionTemplate, Version, Commit, Date)
}

func init() {
	info, _ := debug.ReadBuildInfo()
	Version = firstNonEmpty(Version, moduleVersion(info), "dev")
	Commit = firstNonEmpty(Commit, shortRevision(info), "unknown")
	Date = firstNonEmpty(Date, commitDate(info), "unknown")
}

func moduleVersion(info *debug.BuildInfo) string {
	if info == nil || info.Main.Version == "(devel)" {
		return ""
	}
	return info.Main.Version
}

func buildSetting(info *debug.BuildInfo, key string) string {
	if info == nil {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

func shortRevision(info *debug.BuildInfo) string {
	rev := buildSetting(info, "vcs.revision")
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

func commitDate(info *debug.BuildInfo) string {
	v := buildSetting(info, "vcs.time")
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.Format(time.DateOnly)
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
