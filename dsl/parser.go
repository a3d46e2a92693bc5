// Package dsl 解析并执行编辑脚本：逐行修改配置、切换布局、为选区设置覆盖样式。
//
//	set typography.fontSize = 24
//	set button.backgroundColor = "#ff0000"
//	layout list
//	region 10 10 200 120 { set button.borderRadius = 0 }
//	reset
package dsl

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// 颜色只在 '=' 之后的取值位置识别，行首的 # 一律是注释。
	scriptLexer = lexer.MustStateful(lexer.Rules{
		"Root": {
			{Name: "Whitespace", Pattern: `[ \t\r]+`},
			{Name: "Newline", Pattern: `\n+`},
			{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
			{Name: "LineComment", Pattern: `//[^\n]*`},
			{Name: "HashComment", Pattern: `#[^\n]*`},
			{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:px)?`},
			{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
			{Name: "Assign", Pattern: `=`, Action: lexer.Push("Value")},
			{Name: "Symbol", Pattern: `[.;]`},
			{Name: "LBrace", Pattern: `{`},
			{Name: "RBrace", Pattern: `}`},
		},
		"Value": {
			{Name: "Whitespace", Pattern: `[ \t\r]+`},
			{Name: "BlockComment", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
			{Name: "Color", Pattern: `#(?:[0-9A-Fa-f]{8}|[0-9A-Fa-f]{6}|[0-9A-Fa-f]{3,4})\b`, Action: lexer.Pop()},
			{Name: "Number", Pattern: `-?(?:\d+\.\d+|\d+)(?:px)?`, Action: lexer.Pop()},
			{Name: "String", Pattern: `"(?:\\.|[^"])*"`, Action: lexer.Pop()},
			{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`, Action: lexer.Pop()},
			{Name: "Newline", Pattern: `\n+`, Action: lexer.Pop()},
		},
	})

	scriptParser = participle.MustBuild[Script](
		participle.Lexer(scriptLexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment", "HashComment"),
	)
)

// Script is the root AST node for an edit script.
type Script struct {
	Statements []*Statement `parser:"Newline* ( @@ ( ';' | Newline )* )*"`
}

// Statement is one top-level instruction.
type Statement struct {
	Pos    lexer.Position `parser:"" json:"-"`
	Set    *Set           `parser:"  @@"`
	Layout *Layout        `parser:"| @@"`
	Region *RegionBlock   `parser:"| @@"`
	Reset  bool           `parser:"| @'reset'"`
}

// Set assigns a value to section.key.
type Set struct {
	Pos     lexer.Position `parser:"" json:"-"`
	Section string         `parser:"'set' @Ident"`
	Key     string         `parser:"'.' @Ident"`
	Value   *Value         `parser:"'=' @@"`
}

// Layout switches the top-level layoutType.
type Layout struct {
	Type string `parser:"'layout' @Ident"`
}

// RegionBlock declares a region and the overrides applied inside it.
type RegionBlock struct {
	X      string `parser:"'region' @Number"`
	Y      string `parser:"@Number"`
	Width  string `parser:"@Number"`
	Height string `parser:"@Number"`
	Body   []*Set `parser:"'{' Newline* ( @@ ( ';' | Newline )* )* '}'"`
}

// Value is the right-hand side of a set statement.
type Value struct {
	String *StringLiteral `parser:"  @String"`
	Number *string        `parser:"| @Number"`
	Color  *string        `parser:"| @Color"`
	Word   *string        `parser:"| @Ident"`
}

// Raw returns the value as text, ready for Field.ParseValue.
func (v *Value) Raw() string {
	switch {
	case v == nil:
		return ""
	case v.String != nil:
		return string(*v.String)
	case v.Number != nil:
		return *v.Number
	case v.Color != nil:
		return *v.Color
	case v.Word != nil:
		return *v.Word
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

// Parse parses an edit script from an io.Reader.
func Parse(r io.Reader) (*Script, error) {
	return scriptParser.Parse("", r)
}

// ParseString parses an edit script from a string.
func ParseString(input string) (*Script, error) {
	return scriptParser.ParseString("", input)
}
