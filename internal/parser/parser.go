// Package parser implements the minimal recursive-descent parser behind
// SPEC_FULL.md §4.11's front end: function declarations, the restricted
// statement/expression surface, and the `"use compile"` directive that
// marks a function a compilation candidate. It is grounded on the
// teacher's bootstrap/syntax/parse_stmt.go and parse_expr.go -- a
// recursive-descent parser over a Lexer, with a precedence-climbing
// binary-operator parser mirroring the teacher's precedenceParse, trimmed
// to this repository's smaller operator/statement set (no generics, no
// multi-comparison chaining, no tupled expressions).
package parser

import (
	"fmt"

	"nitro/internal/ast"
	"nitro/internal/common"
	"nitro/internal/lexer"
	"nitro/internal/report"
	"nitro/internal/typing"
)

// Error is a syntax error raised while parsing.
type Error struct {
	Line, Col int
	Message   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// Parser consumes a token stream from internal/lexer and builds the AST
// node types of internal/ast directly -- there is no separate untyped
// "parse tree" stage, since this front end never needs to reparse or
// pretty-print its own input.
type Parser struct {
	lex *lexer.Lexer
	tok lexer.Token
}

// New creates a Parser over src.
func New(src string) (*Parser, error) {
	p := &Parser{lex: lexer.New(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return &Error{0, 0, err.Error()}
	}
	p.tok = tok
	return nil
}

func (p *Parser) pos() report.Position {
	return report.Position{Line: p.tok.Line, Col: p.tok.Col}
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &Error{p.tok.Line, p.tok.Col, fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(kind lexer.Kind, what string) (lexer.Token, error) {
	if p.tok.Kind != kind {
		return lexer.Token{}, p.errorf("expected %s, got %q", what, p.tok.Text)
	}
	tok := p.tok
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

// ParseProgram parses a whole source file into its top-level function
// declarations (spec.md's restricted subset has no other top-level
// construct: no imports, no classes, no globals).
func (p *Parser) ParseProgram() ([]*ast.FuncDecl, error) {
	var decls []*ast.FuncDecl
	for p.tok.Kind != lexer.TokEOF {
		decl, err := p.parseFuncDecl()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	return decls, nil
}

// parseFuncDecl parses `func name(params) returnType { body }`, peeling
// off a leading `"use compile";` directive statement from the body if
// present.
func (p *Parser) parseFuncDecl() (*ast.FuncDecl, error) {
	pos := p.pos()
	if _, err := p.expect(lexer.TokFunc, "'func'"); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.TokIdent, "function name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.TokLParen, "'('"); err != nil {
		return nil, err
	}
	var params []ast.Param
	for p.tok.Kind != lexer.TokRParen {
		if len(params) > 0 {
			if _, err := p.expect(lexer.TokComma, "','"); err != nil {
				return nil, err
			}
		}
		paramName, err := p.expect(lexer.TokIdent, "parameter name")
		if err != nil {
			return nil, err
		}
		paramType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{
			Sym:  &common.Symbol{Name: paramName.Text, Mutable: true},
			Type: paramType,
		})
	}
	if _, err := p.expect(lexer.TokRParen, "')'"); err != nil {
		return nil, err
	}

	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	body, annotated, err := p.parseFuncBody()
	if err != nil {
		return nil, err
	}

	return ast.NewFuncDecl(pos, nameTok.Text, params, retType, body, annotated), nil
}

// parseFuncBody parses the `{ ... }` block, stripping a leading
// `"use compile";` directive statement and reporting its presence
// separately -- the directive marks the function a compilation
// candidate but is not itself a statement in the lowered AST (spec.md §6
// "a predicate marking which function declarations are to be compiled").
func (p *Parser) parseFuncBody() (*ast.Block, bool, error) {
	pos := p.pos()
	if _, err := p.expect(lexer.TokLBrace, "'{'"); err != nil {
		return nil, false, err
	}

	annotated := false
	if p.tok.Kind == lexer.TokStringLit && p.tok.Text == "use compile" {
		if err := p.advance(); err != nil {
			return nil, false, err
		}
		if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
			return nil, false, err
		}
		annotated = true
	}

	var stmts []ast.Node
	for p.tok.Kind != lexer.TokRBrace {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, false, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(lexer.TokRBrace, "'}'"); err != nil {
		return nil, false, err
	}

	return ast.NewBlock(pos, stmts), annotated, nil
}

// parseType parses one of the four declared-type spellings the
// restricted surface supports at parameter/return/var-decl boundaries.
// ref(object) and ref(array<T>) values only ever arise from expressions
// (`new`, array/object literals); they have no standalone type-annotation
// spelling in this front end, matching spec.md's closed lattice without
// needing a structural-type grammar.
func (p *Parser) parseType() (typing.Type, error) {
	switch p.tok.Kind {
	case lexer.TokInt32:
		if err := p.advance(); err != nil {
			return typing.Type{}, err
		}
		return typing.Int32(), nil
	case lexer.TokFloat64:
		if err := p.advance(); err != nil {
			return typing.Type{}, err
		}
		return typing.Float64(), nil
	case lexer.TokBool:
		if err := p.advance(); err != nil {
			return typing.Type{}, err
		}
		return typing.Bool(), nil
	case lexer.TokVoid:
		if err := p.advance(); err != nil {
			return typing.Type{}, err
		}
		return typing.Void(), nil
	default:
		return typing.Type{}, p.errorf("expected a type, got %q", p.tok.Text)
	}
}
