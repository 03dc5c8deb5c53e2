package catalog

import (
	"sort"

	"github.com/UzayAnil/swiftcode/internal/model"
)

// Language is a static reference entry for a supported language
type Language struct {
	Key       string // lookup key, e.g. "go"
	Name      string // display name
	Lexer     string // lexer hint for the text-processing service
	Extension string
}

// Project is a static reference entry for an exercise collection
type Project struct {
	Key      string
	Name     string
	Language string
	URL      string
}

// Catalog holds the static Language and Project lookup tables
type Catalog struct {
	languages map[string]Language
	projects  []Project
}

// New creates the built-in catalog
func New() *Catalog {
	languages := map[string]Language{
		"go":         {Key: "go", Name: "Go", Lexer: "go", Extension: ".go"},
		"python":     {Key: "python", Name: "Python", Lexer: "python", Extension: ".py"},
		"javascript": {Key: "javascript", Name: "JavaScript", Lexer: "javascript", Extension: ".js"},
		"ruby":       {Key: "ruby", Name: "Ruby", Lexer: "ruby", Extension: ".rb"},
		"java":       {Key: "java", Name: "Java", Lexer: "java", Extension: ".java"},
		"c":          {Key: "c", Name: "C", Lexer: "c", Extension: ".c"},
	}

	projects := []Project{
		{Key: "stdlib-samples", Name: "Standard Library Samples", Language: "go", URL: "https://pkg.go.dev/std"},
		{Key: "rosetta", Name: "Rosetta Snippets", Language: "python", URL: "https://rosettacode.org"},
	}

	return &Catalog{
		languages: languages,
		projects:  projects,
	}
}

// Language returns the language for the given key
func (c *Catalog) Language(key string) (Language, error) {
	lang, ok := c.languages[key]
	if !ok {
		return Language{}, model.ErrUnknownLanguage
	}
	return lang, nil
}

// Languages returns all supported languages sorted by key
func (c *Catalog) Languages() []Language {
	keys := make([]string, 0, len(c.languages))
	for key := range c.languages {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	languages := make([]Language, len(keys))
	for i, key := range keys {
		languages[i] = c.languages[key]
	}
	return languages
}

// Projects returns the static project table
func (c *Catalog) Projects() []Project {
	return c.projects
}
