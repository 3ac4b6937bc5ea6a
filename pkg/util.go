package dupcmp

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHumanSize parses human-readable size strings (e.g., "64K", "512k", "1M")
func ParseHumanSize(sizeStr string) (int, error) {
	if sizeStr == "" {
		return 0, fmt.Errorf("empty size string")
	}

	sizeStr = strings.ToUpper(strings.TrimSpace(sizeStr))

	var numPart string
	var suffix string
	for i, char := range sizeStr {
		if char >= '0' && char <= '9' || char == '.' {
			numPart += string(char)
		} else {
			suffix = strings.TrimSpace(sizeStr[i:])
			break
		}
	}

	if numPart == "" {
		return 0, fmt.Errorf("no numeric part in size string: %s", sizeStr)
	}

	num, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric part in size string %s: %w", sizeStr, err)
	}

	var multiplier int64 = 1
	switch suffix {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unknown size suffix: %s", suffix)
	}

	result := int64(num * float64(multiplier))
	if result <= 0 {
		return 0, fmt.Errorf("size must be positive: %s", sizeStr)
	}
	if result > int64(^uint(0)>>1) {
		return 0, fmt.Errorf("size too large: %s", sizeStr)
	}

	return int(result), nil
}

// humanSize renders a byte count with a binary suffix for log lines
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(n)/float64(div), "KMGTPE"[exp])
}
