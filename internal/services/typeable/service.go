package typeable

import (
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Prepared is the output of turning raw source into a typeable stream
type Prepared struct {
	// TypeableText is the character stream presented to the player
	TypeableText string
	// TypeableCount is the number of characters the player must type.
	// Leading indentation is excluded (the client auto-indents); each
	// line break costs one keystroke.
	TypeableCount int
}

// Service turns raw source code into the stream a player must retype.
// Comment tokens are lexed out so players race over real code only.
type Service struct {
	logger *slog.Logger
}

// New creates a new typeable Service
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger.With(slog.String("component", "typeable")),
	}
}

// Prepare lexes the code with the hinted language and strips comments
func (s *Service) Prepare(code, language string) (*Prepared, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		s.logger.Debug("no lexer for language, using fallback",
			slog.String("language", language))
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for tok := iterator(); tok != chroma.EOF; tok = iterator() {
		// Preprocessor directives lex as comments but are real code
		if tok.Type.InCategory(chroma.Comment) && !tok.Type.InSubCategory(chroma.CommentPreproc) {
			continue
		}
		b.WriteString(tok.Value)
	}

	text, count := normalize(b.String())
	return &Prepared{
		TypeableText:  text,
		TypeableCount: count,
	}, nil
}

// normalize trims trailing whitespace, drops lines emptied by comment
// removal and counts the keystrokes the remaining text demands
func normalize(text string) (string, int) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}

	count := 0
	for i, line := range lines {
		count += len([]rune(strings.TrimLeft(line, " \t")))
		if i < len(lines)-1 {
			count++ // the line break itself
		}
	}

	return strings.Join(lines, "\n"), count
}
