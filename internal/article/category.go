package article

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is one of the fixed labels the blog schema accepts.
type Category string

const (
	CategoryNews      Category = "お知らせ"
	CategoryPrograms  Category = "制度"
	CategoryInterview Category = "社員インタビュー"
	CategoryEvent     Category = "イベント"
)

// Categories returns the labels in declared order. The first label is the
// fallback when classification finds no keyword or ends in a tie.
func Categories() []Category {
	return []Category{CategoryNews, CategoryPrograms, CategoryInterview, CategoryEvent}
}

// ParseCategory validates an explicit category override against the fixed
// label set.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if s == string(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q (valid: %s)", s, joinCategories())
}

func joinCategories() string {
	labels := make([]string, 0, 4)
	for _, c := range Categories() {
		labels = append(labels, string(c))
	}
	return strings.Join(labels, ", ")
}

//go:embed keywords.yaml
var defaultKeywordsYAML []byte

// keywordConfig is the YAML shape of a keyword list file.
type keywordConfig struct {
	Categories []struct {
		Label    string   `yaml:"label"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"categories"`
}

// Classifier scores text against per-category keyword lists.
type Classifier struct {
	keywords map[Category][]string
}

// NewClassifier builds a classifier from the embedded default keyword
// lists.
func NewClassifier() *Classifier {
	c, err := parseKeywords(defaultKeywordsYAML)
	if err != nil {
		// The embedded file ships with the binary; failing to parse it is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("parsing embedded keywords.yaml: %v", err))
	}
	return c
}

// NewClassifierFromFile builds a classifier from a keyword list file.
// Labels outside the fixed category set are rejected.
func NewClassifierFromFile(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keyword file %s: %w", path, err)
	}
	c, err := parseKeywords(data)
	if err != nil {
		return nil, fmt.Errorf("parsing keyword file %s: %w", path, err)
	}
	return c, nil
}

func parseKeywords(data []byte) (*Classifier, error) {
	var cfg keywordConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing keywords YAML: %w", err)
	}

	keywords := make(map[Category][]string, len(cfg.Categories))
	for _, entry := range cfg.Categories {
		label, err := ParseCategory(entry.Label)
		if err != nil {
			return nil, err
		}
		for _, kw := range entry.Keywords {
			// strings.Count matches an empty pattern between every rune,
			// which would swamp every other score.
			if strings.TrimSpace(kw) == "" {
				return nil, fmt.Errorf("category %s has an empty keyword", label)
			}
		}
		keywords[label] = entry.Keywords
	}
	return &Classifier{keywords: keywords}, nil
}

// Classify sums case-insensitive keyword occurrences per category and
// returns the label with the strictly highest score. Ties and an all-zero
// result resolve to the first declared label. The tie-break is observable
// categorization behavior and must not be changed casually.
func (c *Classifier) Classify(text string) Category {
	lower := strings.ToLower(text)

	best := Categories()[0]
	bestScore := 0
	for _, label := range Categories() {
		score := 0
		for _, kw := range c.keywords[label] {
			score += strings.Count(lower, strings.ToLower(kw))
		}
		if score > bestScore {
			best = label
			bestScore = score
		}
	}
	return best
}

var defaultClassifier = NewClassifier()

// DeriveCategory classifies text with the embedded default keyword lists.
func DeriveCategory(text string) Category {
	return defaultClassifier.Classify(text)
}
