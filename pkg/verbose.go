package duplicatefinder

import (
	"fmt"
	"io"
	"strings"
)

// Verbose levels
const (
	VerboseQuiet    = 0 // summary, duplicates, deletions
	VerboseBasic    = 1 // per-file failures and run identifiers
	VerboseDetailed = 2 // per-file progress
	VerboseTrace    = 3 // per-file digests
)

// VerboseObserver writes pipeline events as text lines, filtered by level.
// It replaces process-wide verbosity state: each run gets its own instance.
type VerboseObserver struct {
	out        io.Writer
	level      int
	debugFlags map[string]bool
}

// NewVerboseObserver creates an observer writing to out. debugFlags uses the
// same syntax as ParseDebugFlags.
func NewVerboseObserver(out io.Writer, level int, debugFlags string) *VerboseObserver {
	return &VerboseObserver{
		out:        out,
		level:      level,
		debugFlags: ParseDebugFlags(debugFlags),
	}
}

// Level returns the configured verbose level
func (v *VerboseObserver) Level() int {
	return v.level
}

// IsDebugEnabled returns true if the specified debug flag is enabled
func (v *VerboseObserver) IsDebugEnabled(flag string) bool {
	return v.debugFlags[strings.ToLower(flag)]
}

// Log writes a message at the specified verbose level
func (v *VerboseObserver) Log(level int, format string, args ...interface{}) {
	if v.level < level {
		return
	}
	if level > VerboseQuiet {
		fmt.Fprintf(v.out, "[VERBOSE-%d] ", level)
	}
	fmt.Fprintf(v.out, format, args...)
	if !strings.HasSuffix(format, "\n") {
		fmt.Fprintf(v.out, "\n")
	}
}

func (v *VerboseObserver) ScanStarted(runID string, total int) {
	v.Log(VerboseBasic, "Run %s: %d files to fingerprint", runID, total)
}

func (v *VerboseObserver) FileHashed(result HashResult, processed, total int) {
	if v.IsDebugEnabled("scan") || v.level >= VerboseDetailed {
		v.Log(VerboseQuiet, "Processed %d out of %d", processed, total)
	}
	v.Log(VerboseTrace, "%s  %s", result.Digest, result.Path)
}

func (v *VerboseObserver) FileFailed(err *IOError, processed, total int) {
	v.Log(VerboseBasic, "Skipping file (%d out of %d): %v", processed, total, err)
}

func (v *VerboseObserver) DuplicateFound(original, duplicate string) {
	v.Log(VerboseQuiet, "Duplicate found: %s : %s", original, duplicate)
}

func (v *VerboseObserver) ScanFinished(summary Summary) {
	v.Log(VerboseQuiet, "Scanned %d files, found %d duplicates", summary.FilesScanned, summary.Duplicates)
	if summary.FilesFailed > 0 {
		v.Log(VerboseQuiet, "%d files could not be read", summary.FilesFailed)
	}
	v.Log(VerboseBasic, "Run %s: %d distinct digests", summary.RunID, summary.DistinctDigests)
}

func (v *VerboseObserver) FileDeleted(path string) {
	v.Log(VerboseQuiet, "Deleted duplicate file %s", path)
}

func (v *VerboseObserver) DeleteFailed(err *DeleteError) {
	v.Log(VerboseQuiet, "Warning: %v", err)
}

// ParseDebugFlags parses a comma-separated flag list.
// Supports both simple flags ("scan,delete") and key:value format ("scan:true,delete:false")
func ParseDebugFlags(flagsStr string) map[string]bool {
	debugFlags := make(map[string]bool)
	if flagsStr == "" {
		return debugFlags
	}

	for _, flag := range strings.Split(flagsStr, ",") {
		flag = strings.TrimSpace(flag)
		if flag == "" {
			continue
		}

		parts := strings.SplitN(flag, ":", 2)
		flagName := strings.ToLower(parts[0])
		flagValue := true

		if len(parts) > 1 {
			switch strings.ToLower(parts[1]) {
			case "false", "0", "no", "off":
				flagValue = false
			}
		}

		debugFlags[flagName] = flagValue
	}
	return debugFlags
}
