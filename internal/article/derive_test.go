package article

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty returns placeholder", "", TitlePlaceholder},
		{"blank lines only", "\n  \n\t\n", TitlePlaceholder},
		{"plain first line", "Hello\nbody", "Hello"},
		{"heading markers stripped", "# Hello", "Hello"},
		{"deep heading markers stripped", "### 研修について", "研修について"},
		{"skips leading blank lines", "\n\n  # Title\nbody", "Title"},
		{"marker-only line skipped", "#\nReal title", "Real title"},
		{"surrounding whitespace trimmed", "   spaced out   \n", "spaced out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DeriveTitle(tt.input)
			if result != tt.expected {
				t.Errorf("DeriveTitle() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestDeriveTitleTruncation(t *testing.T) {
	result := DeriveTitle(strings.Repeat("A", 100))
	if got := utf8.RuneCountInString(result); got != 60 {
		t.Errorf("truncated title length = %d runes, want 60", got)
	}
	if !strings.HasSuffix(result, "...") {
		t.Errorf("truncated title %q does not end in ellipsis", result)
	}
	if !strings.HasPrefix(result, strings.Repeat("A", 57)) {
		t.Errorf("truncated title %q should keep the first 57 runes", result)
	}

	// Multibyte titles are cut on rune boundaries.
	result = DeriveTitle(strings.Repeat("あ", 80))
	if got := utf8.RuneCountInString(result); got != 60 {
		t.Errorf("truncated multibyte title length = %d runes, want 60", got)
	}
	if !utf8.ValidString(result) {
		t.Errorf("truncated multibyte title is not valid UTF-8: %q", result)
	}

	// Exactly at the limit is kept as-is.
	exact := strings.Repeat("B", 60)
	if got := DeriveTitle(exact); got != exact {
		t.Errorf("DeriveTitle(60 runes) = %q, want unchanged", got)
	}
}

func TestDeriveCategory(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Category
	}{
		{"no keywords falls back to first label", "nothing relevant here", CategoryNews},
		{"empty text falls back to first label", "", CategoryNews},
		{"single keyword wins", "今月の研修について", CategoryPrograms},
		{"interview keyword", "新入社員へのインタビュー記事です", CategoryInterview},
		{"event keyword", "勉強会を開催します", CategoryEvent},
		{"majority wins", "研修と研修と休暇、イベントがひとつ", CategoryPrograms},
		// 制度 and 社員インタビュー score one each; the earlier declared
		// label wins.
		{"tie resolves to earlier declared label", "制度とインタビュー", CategoryPrograms},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DeriveCategory(tt.input)
			if result != tt.expected {
				t.Errorf("DeriveCategory(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestDeriveCategoryDeterministic(t *testing.T) {
	input := "研修とイベントと社員の話"
	first := DeriveCategory(input)
	for i := 0; i < 10; i++ {
		if got := DeriveCategory(input); got != first {
			t.Fatalf("DeriveCategory not deterministic: %q then %q", first, got)
		}
	}
}

func TestDeriveCategoryCaseInsensitive(t *testing.T) {
	c := &Classifier{keywords: map[Category][]string{
		CategoryEvent: {"meetup"},
	}}
	if got := c.Classify("Our MEETUP schedule"); got != CategoryEvent {
		t.Errorf("Classify() = %q, want %q", got, CategoryEvent)
	}
}

func TestNewClassifierFromFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "keywords.yaml")
	data := "categories:\n  - label: イベント\n    keywords: [\"ハッカソン\"]\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := NewClassifierFromFile(path)
	if err != nil {
		t.Fatalf("NewClassifierFromFile() error = %v", err)
	}
	if got := c.Classify("社内ハッカソンのレポート"); got != CategoryEvent {
		t.Errorf("Classify() = %q, want %q", got, CategoryEvent)
	}

	// Unknown labels are rejected.
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("categories:\n  - label: 謎\n    keywords: [x]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewClassifierFromFile(bad); err == nil {
		t.Error("NewClassifierFromFile() accepted an unknown label")
	}

	// Empty keywords are rejected: counting an empty pattern matches
	// between every rune and drowns out real scores.
	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("categories:\n  - label: 制度\n    keywords: [\"研修\", \"\"]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewClassifierFromFile(empty); err == nil {
		t.Error("NewClassifierFromFile() accepted an empty keyword")
	}
	blank := filepath.Join(dir, "blank.yaml")
	if err := os.WriteFile(blank, []byte("categories:\n  - label: 制度\n    keywords: [\"  \"]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewClassifierFromFile(blank); err == nil {
		t.Error("NewClassifierFromFile() accepted a whitespace-only keyword")
	}
}

func TestDeriveDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"title only", "# Hello", ""},
		{"single body line", "# Hello\n\nBody text.", "Body text."},
		{"lines joined with spaces", "Title\nfirst\nsecond", "first second"},
		{"whitespace collapsed", "Title\nfirst    second\t third", "first second third"},
		{"blank lines skipped", "Title\n\n\nfirst\n\nsecond\n", "first second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DeriveDescription(tt.input)
			if result != tt.expected {
				t.Errorf("DeriveDescription() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestDeriveDescriptionTruncation(t *testing.T) {
	input := "Title\n" + strings.Repeat("x", 200)
	result := DeriveDescription(input)
	if got := utf8.RuneCountInString(result); got != 120 {
		t.Errorf("truncated description length = %d runes, want 120", got)
	}
	if !strings.HasSuffix(result, "...") {
		t.Errorf("truncated description %q does not end in ellipsis", result)
	}
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories() {
		got, err := ParseCategory(string(c))
		if err != nil {
			t.Errorf("ParseCategory(%q) error = %v", c, err)
		}
		if got != c {
			t.Errorf("ParseCategory(%q) = %q", c, got)
		}
	}

	if _, err := ParseCategory("技術"); err == nil {
		t.Error("ParseCategory() accepted a label outside the fixed set")
	}
	if _, err := ParseCategory(""); err == nil {
		t.Error("ParseCategory() accepted an empty label")
	}
}
