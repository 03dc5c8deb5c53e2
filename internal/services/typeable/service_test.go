package typeable

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/UzayAnil/swiftcode/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New(testutil.NopLogger())
}

func (s *ServiceSuite) TestStripsLineComments() {
	code := "x = 1  # set up\ny = 2\n"

	prepared, err := s.service.Prepare(code, "python")
	s.Require().NoError(err)
	s.Equal("x = 1\ny = 2", prepared.TypeableText)
}

func (s *ServiceSuite) TestDropsCommentOnlyLines() {
	code := "# a full-line comment\nx = 1\n"

	prepared, err := s.service.Prepare(code, "python")
	s.Require().NoError(err)
	s.Equal("x = 1", prepared.TypeableText)
}

func (s *ServiceSuite) TestStripsBlockComments() {
	code := "/* header\ncomment */\nint x = 1;\n"

	prepared, err := s.service.Prepare(code, "c")
	s.Require().NoError(err)
	s.Equal("int x = 1;", prepared.TypeableText)
}

func (s *ServiceSuite) TestKeepsPreprocessorDirectives() {
	code := "#include <stdio.h>\nint x = 1;\n"

	prepared, err := s.service.Prepare(code, "c")
	s.Require().NoError(err)
	s.Contains(prepared.TypeableText, "#include <stdio.h>")
}

func (s *ServiceSuite) TestCountExcludesLeadingIndentation() {
	code := "if x:\n    y = 1\n"

	prepared, err := s.service.Prepare(code, "python")
	s.Require().NoError(err)
	// "if x:" (5) + newline (1) + "y = 1" (5); the indent is free
	s.Equal(11, prepared.TypeableCount)
}

func (s *ServiceSuite) TestCountChargesLineBreaksBetweenLines() {
	code := "a = 1\nb = 2\nc = 3\n"

	prepared, err := s.service.Prepare(code, "python")
	s.Require().NoError(err)
	// Three 5-char lines plus two separating breaks; no break after the last
	s.Equal(17, prepared.TypeableCount)
}

func (s *ServiceSuite) TestUnknownLanguageFallsBack() {
	code := "hello world\n"

	prepared, err := s.service.Prepare(code, "no-such-language")
	s.Require().NoError(err)
	s.Equal("hello world", prepared.TypeableText)
	s.Equal(11, prepared.TypeableCount)
}

func (s *ServiceSuite) TestGoSourceKeepsCodeDropsComments() {
	code := "package main\n\n// main is the entrypoint\nfunc main() {\n\tprintln(\"hi\")\n}\n"

	prepared, err := s.service.Prepare(code, "go")
	s.Require().NoError(err)
	s.NotContains(prepared.TypeableText, "entrypoint")
	s.Contains(prepared.TypeableText, "package main")
	s.Contains(prepared.TypeableText, "func main() {")
}

func (s *ServiceSuite) TestEmptyCode() {
	prepared, err := s.service.Prepare("", "go")
	s.Require().NoError(err)
	s.Equal("", prepared.TypeableText)
	s.Zero(prepared.TypeableCount)
}
