package duplicatefinder

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/google/vectorio"
	"github.com/taigrr/colorhash"
)

// fallbackIOVMax is the iovec count accepted by writev on every supported
// kernel (golang/go#58623)
const fallbackIOVMax = 1024

// WriteReport writes one path per line to outputPath, replacing any existing
// content. Every failure is returned as a *WriteError.
func WriteReport(outputPath string, duplicates []string) error {
	file, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return &WriteError{Path: outputPath, Err: err}
	}
	defer file.Close()

	if err := writeLinesWithVectorIO(file, duplicates); err != nil {
		return &WriteError{Path: outputPath, Err: err}
	}

	if err := file.Sync(); err != nil {
		return &WriteError{Path: outputPath, Err: fmt.Errorf("failed to sync report: %w", err)}
	}
	if err := file.Close(); err != nil {
		return &WriteError{Path: outputPath, Err: err}
	}
	return nil
}

// writeLinesWithVectorIO writes lines with writev, chunked to respect IOV_MAX
func writeLinesWithVectorIO(file *os.File, lines []string) error {
	if len(lines) == 0 {
		return nil
	}

	buffers := make([][]byte, len(lines))
	iovecs := make([]syscall.Iovec, len(lines))
	for i, line := range lines {
		buffers[i] = []byte(line + "\n")
		iovecs[i].Base = &buffers[i][0]
		iovecs[i].SetLen(len(buffers[i]))
	}

	for offset := 0; offset < len(iovecs); offset += fallbackIOVMax {
		end := offset + fallbackIOVMax
		if end > len(iovecs) {
			end = len(iovecs)
		}

		expected := 0
		for _, buf := range buffers[offset:end] {
			expected += len(buf)
		}

		nw, err := vectorio.WritevRaw(uintptr(file.Fd()), iovecs[offset:end])
		if err != nil {
			return fmt.Errorf("failed to write report lines with vectorio: %w", err)
		}
		if nw != expected {
			// Short writev: finish the chunk with plain writes.
			if err := writeRemainder(file, buffers[offset:end], nw); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeRemainder writes whatever part of buffers lies beyond the first
// written bytes
func writeRemainder(w io.Writer, buffers [][]byte, written int) error {
	for _, buf := range buffers {
		if written >= len(buf) {
			written -= len(buf)
			continue
		}
		if _, err := w.Write(buf[written:]); err != nil {
			return fmt.Errorf("failed to write report line: %w", err)
		}
		written = 0
	}
	return nil
}

// ValidateOutputFormat validates that an output format is supported
func ValidateOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatNone, FormatHuman, FormatJSON, FormatFdupes:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: none, human, json, fdupes)", format)
	}
}

// FormatResult prints the duplicate groups of result to w.
//
//	human   one block per group, original marked, optionally coloured by digest
//	json    the whole ScanResult
//	fdupes  one path per line, groups separated by a blank line
//	none    nothing
func FormatResult(w io.Writer, result *ScanResult, format string, color bool) error {
	switch strings.ToLower(format) {
	case FormatNone, "":
		return nil
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case FormatFdupes:
		for i, group := range result.Groups {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			for _, file := range group.Files {
				if _, err := fmt.Fprintln(w, file); err != nil {
					return err
				}
			}
		}
		return nil
	case FormatHuman:
		for _, group := range result.Groups {
			label := group.Hash
			if color {
				label = colorizeDigest(group.Hash)
			}
			if _, err := fmt.Fprintf(w, "%s (%d files)\n", label, group.Count); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "  keep   %s\n", group.Original()); err != nil {
				return err
			}
			for _, dup := range group.Duplicates() {
				if _, err := fmt.Fprintf(w, "  dup    %s\n", dup); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return ValidateOutputFormat(format)
	}
}

// colorizeDigest wraps a hex digest in an ANSI colour derived from the digest,
// so a group keeps the same colour across runs
func colorizeDigest(hexDigest string) string {
	h := colorhash.HashString(hexDigest)
	if h < 0 {
		h = -h
	}
	code := 31 + h%6
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", code, hexDigest)
}
