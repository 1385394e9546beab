// Package article converts locally authored text into the HTML and
// metadata expected by the recruit blog CMS.
package article

import "strings"

// Normalize converts plain text or lightweight Markdown into HTML, one
// line at a time. Supported markers: "#"–"###" headings, "-"/"*" list
// items. Everything else becomes a paragraph. Inline styling, links and
// tables are intentionally not supported.
func Normalize(text string) string {
	var b strings.Builder
	inList := false

	closeList := func() {
		if inList {
			b.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t\r")

		switch {
		case strings.TrimSpace(line) == "":
			closeList()
		case strings.HasPrefix(line, "### "):
			closeList()
			b.WriteString("<h3>" + escapeHTML(strings.TrimSpace(line[4:])) + "</h3>\n")
		case strings.HasPrefix(line, "## "):
			closeList()
			b.WriteString("<h2>" + escapeHTML(strings.TrimSpace(line[3:])) + "</h2>\n")
		case strings.HasPrefix(line, "# "):
			closeList()
			b.WriteString("<h1>" + escapeHTML(strings.TrimSpace(line[2:])) + "</h1>\n")
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			if !inList {
				b.WriteString("<ul>\n")
				inList = true
			}
			b.WriteString("<li>" + escapeHTML(strings.TrimSpace(line[2:])) + "</li>\n")
		default:
			closeList()
			b.WriteString("<p>" + escapeHTML(strings.TrimSpace(line)) + "</p>\n")
		}
	}
	closeList()

	return strings.TrimRight(b.String(), "\n")
}

// escapeHTML escapes &, < and > in that order. Ampersand goes first so
// already-escaped entities are not escaped twice.
func escapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
