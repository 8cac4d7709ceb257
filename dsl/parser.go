// Package dsl 解析 .admit 作业文件：一次生成所需的考试信息、数据文件与输出位置。
//
//	job HalfYearly v1 {
//	  exam: "Half Yearly Exam"
//	  logo: "assets/logo.png"
//	  records: "data/students.xlsx"
//	  backend: fpdf
//	}
package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	dslLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
		{Name: "LineComment", Pattern: `//[^\n]*`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "Number", Pattern: `(?:\d+\.\d+|\d+)`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.-]*`},
		{Name: "Symbol", Pattern: `[:;,]`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
	})

	jobParser = participle.MustBuild[Job](
		participle.Lexer(dslLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Job is the root AST node for an .admit job file.
type Job struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Name    string         `parser:"Newline* 'job' @Ident"`
	Version string         `parser:"@Ident?"`
	Entries []*Assignment  `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}' Newline*"`
}

// Assignment uses colon syntax (key: value).
type Assignment struct {
	Pos   lexer.Position `parser:"" json:"-"`
	Key   string         `parser:"@Ident"`
	Value *Value         `parser:"':' @@"`
}

// Value is a quoted string, a bare number or a bare identifier.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Ident  *string        `parser:"| @Ident"`
}

// Text returns the value as plain text.
func (v *Value) Text() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Ident != nil:
		return *v.Ident
	default:
		return ""
	}
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Parse parses a job file from an io.Reader.
func Parse(r io.Reader) (*Job, error) {
	return jobParser.Parse("", r)
}

// ParseString parses a job file from a string.
func ParseString(input string) (*Job, error) {
	return jobParser.ParseString("", input)
}
