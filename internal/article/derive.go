package article

import "strings"

const (
	// TitlePlaceholder is used when the source has no non-blank line.
	TitlePlaceholder = "無題"

	maxTitleRunes       = 60
	maxDescriptionRunes = 120
)

// DeriveTitle returns the first non-blank line with heading markers
// stripped, ellipsized to 60 runes.
func DeriveTitle(text string) string {
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "#"))
		if line == "" {
			continue
		}
		return Ellipsize(line, maxTitleRunes)
	}
	return TitlePlaceholder
}

// DeriveDescription joins every non-blank line except the first (the
// title line) with single spaces, collapses runs of whitespace, and
// ellipsizes to 120 runes. Returns "" when there is no body text.
func DeriveDescription(text string) string {
	var body []string
	seenTitle := false
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if !seenTitle {
			seenTitle = true
			continue
		}
		body = append(body, line)
	}

	joined := strings.Join(strings.Fields(strings.Join(body, " ")), " ")
	if joined == "" {
		return ""
	}
	return Ellipsize(joined, maxDescriptionRunes)
}

// Ellipsize truncates s to limit runes, replacing the final three runes
// with "..." when truncation happens. Rune-wise so multibyte text is
// never cut mid-character.
func Ellipsize(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
