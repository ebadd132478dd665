package presenter

import "strings"

// Whole-phrase rewrites applied after generic formatting. Order matters:
// each rewrite replaces an exact substring, so several may apply to one code.
var reasonOverrides = []struct {
	from string
	to   string
}{
	{"Minimum Servers Enforcement", "Maintaining minimum servers"},
	{"Maximum Servers Enforcement", "Maintaining maximum servers"},
	{"Scale Up Threshold", "High utilization"},
	{"Scale Down Threshold", "Low utilization"},
}

// FormatTriggerReason converts a machine trigger-reason code such as
// "scale_up_threshold" into a human phrase. Empty input stays empty.
func FormatTriggerReason(code string) string {
	if code == "" {
		return ""
	}

	words := strings.Split(strings.ReplaceAll(code, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		words[i] = strings.ToUpper(string(runes[0])) + string(runes[1:])
	}

	formatted := strings.Join(words, " ")
	for _, override := range reasonOverrides {
		formatted = strings.ReplaceAll(formatted, override.from, override.to)
	}

	return formatted
}
