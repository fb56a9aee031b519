package main

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X main.version=..."
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// getVersion prefers the linker-set version, then module build info
func getVersion() string {
	if version != "dev" && version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
	}
	return "development"
}

// getCommit prefers the linker-set commit, then the vcs.revision build setting
func getCommit() string {
	if commit != "unknown" && commit != "" {
		return commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}
	return "unknown"
}

func getVersionString() string {
	c := getCommit()
	if len(c) > 7 {
		c = c[:7]
	}
	if c == "unknown" {
		return getVersion()
	}
	if date != "unknown" {
		return fmt.Sprintf("%s (%s, built %s)", getVersion(), c, date)
	}
	return fmt.Sprintf("%s (%s)", getVersion(), c)
}
