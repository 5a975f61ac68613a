package logger

import "strings"

// levelRank orders the log levels from most to least verbose
var levelRank = map[string]int{
	"trace": 0,
	"debug": 1,
	"info":  2,
	"warn":  3,
	"error": 4,
}

// normalizeLogLevel lowercases level and falls back to "info" for unknown values
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if _, ok := levelRank[normalized]; ok {
		return normalized
	}
	return "info"
}

// enabled reports whether a message at level passes the threshold
func enabled(threshold, level string) bool {
	return levelRank[strings.ToLower(level)] >= levelRank[threshold]
}
