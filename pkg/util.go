package duplicatefinder

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var sizeMultipliers = map[string]int64{
	"":    1,
	"B":   1,
	"K":   1 << 10,
	"KB":  1 << 10,
	"KIB": 1 << 10,
	"M":   1 << 20,
	"MB":  1 << 20,
	"MIB": 1 << 20,
	"G":   1 << 30,
	"GB":  1 << 30,
	"GIB": 1 << 30,
}

// ParseHumanSize parses human-readable size strings (e.g., "4K", "512k", "1M").
// Suffixes are binary multiples.
func ParseHumanSize(sizeStr string) (int, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(sizeStr))
	if trimmed == "" {
		return 0, fmt.Errorf("empty size string")
	}

	split := strings.IndexFunc(trimmed, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	numPart, suffix := trimmed, ""
	if split >= 0 {
		numPart, suffix = trimmed[:split], strings.TrimSpace(trimmed[split:])
	}
	if numPart == "" {
		return 0, fmt.Errorf("no numeric part in size string: %s", sizeStr)
	}

	num, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric part in size string %s: %w", sizeStr, err)
	}

	multiplier, ok := sizeMultipliers[suffix]
	if !ok {
		return 0, fmt.Errorf("unknown size suffix: %s", suffix)
	}

	result := num * float64(multiplier)
	if result < 1 {
		return 0, fmt.Errorf("size must be positive: %s", sizeStr)
	}
	if result > float64(int64(^uint(0)>>1)) {
		return 0, fmt.Errorf("size too large: %s", sizeStr)
	}
	return int(result), nil
}
