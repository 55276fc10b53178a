package parser

import (
	"strconv"

	"nitro/internal/ast"
	"nitro/internal/common"
	"nitro/internal/lexer"
)

// assignOps maps an assignment-spelling token to its common.Operator --
// every compound-assign form plus bare '='.
var assignOps = map[lexer.Kind]common.Operator{
	lexer.TokAssign:        common.OpAssign,
	lexer.TokPlusAssign:    common.OpAddAssign,
	lexer.TokMinusAssign:   common.OpSubAssign,
	lexer.TokStarAssign:    common.OpMulAssign,
	lexer.TokSlashAssign:   common.OpDivAssign,
	lexer.TokPercentAssign: common.OpModAssign,
	lexer.TokBitOrAssign:   common.OpBitOrAssign,
	lexer.TokBitAndAssign:  common.OpBitAndAssign,
	lexer.TokBitXorAssign:  common.OpBitXorAssign,
	lexer.TokShlAssign:     common.OpShlAssign,
	lexer.TokShrAssign:     common.OpShrAssign,
	lexer.TokUShrAssign:    common.OpUShrAssign,
}

// precTable orders binary operator tokens from lowest to highest
// precedence, mirroring the teacher's precTable in parse_expr.go but
// over this repository's smaller operator set (no '**', no multi-way
// comparison chaining).
var precTable = []map[lexer.Kind]common.Operator{
	{lexer.TokBitOr: common.OpBitOr},
	{lexer.TokBitXor: common.OpBitXor},
	{lexer.TokBitAnd: common.OpBitAnd},
	{lexer.TokStrictEq: common.OpStrictEq, lexer.TokStrictNe: common.OpStrictNe},
	{lexer.TokLt: common.OpLt, lexer.TokGt: common.OpGt, lexer.TokLe: common.OpLe, lexer.TokGe: common.OpGe},
	{lexer.TokShl: common.OpShl, lexer.TokShr: common.OpShr, lexer.TokUShr: common.OpUShr},
	{lexer.TokPlus: common.OpAdd, lexer.TokMinus: common.OpSub},
	{lexer.TokStar: common.OpMul, lexer.TokSlash: common.OpDiv, lexer.TokPercent: common.OpMod},
}

// parseExpr = assign_expr
func (p *Parser) parseExpr() (ast.Node, error) {
	return p.parseAssignExpr()
}

// assign_expr = bin_or_expr [assign_op assign_expr]
// Assignment is right-associative and binds looser than every binary
// operator, matching the chained-assignment scenario `x = y = 3` of
// spec.md §8.
func (p *Parser) parseAssignExpr() (ast.Node, error) {
	lhs, err := p.parseBinaryExpr(0)
	if err != nil {
		return nil, err
	}
	if op, ok := assignOps[p.tok.Kind]; ok {
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAssignExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryOp(pos, op, lhs, rhs), nil
	}
	return lhs, nil
}

// parseBinaryExpr implements precedence climbing over precTable, starting
// at level minPrec (0 is lowest-precedence, `|`).
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Node, error) {
	lhs, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}

	for level := minPrec; level < len(precTable); level++ {
		op, ok := precTable[level][p.tok.Kind]
		if !ok {
			continue
		}
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseBinaryExpr(level + 1)
		if err != nil {
			return nil, err
		}
		lhs = ast.NewBinaryOp(pos, op, lhs, rhs)
		// Re-scan from the same level: another operator at this level or
		// lower may follow (e.g. `a + b - c`).
		level = minPrec - 1
	}

	return lhs, nil
}

// unary_expr = ['+' | '-' | '!' | '~' | '++' | '--' | 'typeof'] unary_expr | postfix_expr
func (p *Parser) parseUnaryExpr() (ast.Node, error) {
	pos := p.pos()
	var op common.Operator
	switch p.tok.Kind {
	case lexer.TokPlus:
		op = common.OpUnaryPlus
	case lexer.TokMinus:
		op = common.OpUnaryMinus
	case lexer.TokNot:
		op = common.OpLogicalNot
	case lexer.TokBitNot:
		op = common.OpBitNot
	case lexer.TokIncr:
		op = common.OpPrefixIncr
	case lexer.TokDecr:
		op = common.OpPrefixDecr
	case lexer.TokTypeof:
		op = common.OpTypeof
	default:
		return p.parsePostfixExpr()
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	operand, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	return ast.NewUnaryOp(pos, op, operand, false), nil
}

// postfix_expr = primary {'++' | '--' | '.' IDENT | '[' expr ']' | '(' args ')'}
func (p *Parser) parsePostfixExpr() (ast.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		pos := p.pos()
		switch p.tok.Kind {
		case lexer.TokIncr:
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr = ast.NewUnaryOp(pos, common.OpPostfixIncr, expr, true)
		case lexer.TokDecr:
			if err := p.advance(); err != nil {
				return nil, err
			}
			expr = ast.NewUnaryOp(pos, common.OpPostfixDecr, expr, true)
		case lexer.TokDot:
			if err := p.advance(); err != nil {
				return nil, err
			}
			field, err := p.expect(lexer.TokIdent, "field name")
			if err != nil {
				return nil, err
			}
			expr = ast.NewPropertyAccess(pos, expr, field.Text)
		case lexer.TokLBracket:
			if err := p.advance(); err != nil {
				return nil, err
			}
			index, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.TokRBracket, "']'"); err != nil {
				return nil, err
			}
			expr = ast.NewElementAccess(pos, expr, index)
		case lexer.TokLParen:
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			expr = ast.NewCall(pos, expr, args)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgList() ([]ast.Node, error) {
	if _, err := p.expect(lexer.TokLParen, "'('"); err != nil {
		return nil, err
	}
	var args []ast.Node
	for p.tok.Kind != lexer.TokRParen {
		if len(args) > 0 {
			if _, err := p.expect(lexer.TokComma, "','"); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	if _, err := p.expect(lexer.TokRParen, "')'"); err != nil {
		return nil, err
	}
	return args, nil
}

// primary = INTLIT | FLOATLIT | STRINGLIT | BOOLLIT | IDENT | '(' expr ')'
//
//	| 'new' IDENT '(' args ')' | '[' array_lit ']' | '{' object_lit '}'
func (p *Parser) parsePrimary() (ast.Node, error) {
	pos := p.pos()
	switch p.tok.Kind {
	case lexer.TokIntLit:
		text := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, p.errorf("malformed integer literal %q", text)
		}
		return ast.NewIntLiteral(pos, int32(n)), nil
	case lexer.TokFloatLit:
		text := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorf("malformed float literal %q", text)
		}
		return ast.NewFloatLiteral(pos, f), nil
	case lexer.TokStringLit:
		text := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewStringLiteral(pos, text), nil
	case lexer.TokBoolLit:
		text := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewBoolLiteral(pos, text == "true"), nil
	case lexer.TokIdent:
		text := p.tok.Text
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewIdentifier(pos, text, nil), nil
	case lexer.TokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokRParen, "')'"); err != nil {
			return nil, err
		}
		return expr, nil
	case lexer.TokNew:
		return p.parseNewExpr()
	case lexer.TokLBracket:
		return p.parseArrayLiteral()
	case lexer.TokLBrace:
		return p.parseObjectLiteral()
	default:
		return nil, p.errorf("expected an expression, got %q", p.tok.Text)
	}
}

func (p *Parser) parseNewExpr() (ast.Node, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // 'new'
		return nil, err
	}
	name, err := p.expect(lexer.TokIdent, "class name")
	if err != nil {
		return nil, err
	}
	args, err := p.parseArgList()
	if err != nil {
		return nil, err
	}
	return ast.NewNewExpr(pos, name.Text, args), nil
}

func (p *Parser) parseArrayLiteral() (ast.Node, error) {
	pos := p.pos()
	if _, err := p.expect(lexer.TokLBracket, "'['"); err != nil {
		return nil, err
	}
	var elems []ast.Node
	for p.tok.Kind != lexer.TokRBracket {
		if len(elems) > 0 {
			if _, err := p.expect(lexer.TokComma, "','"); err != nil {
				return nil, err
			}
		}
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
	}
	if _, err := p.expect(lexer.TokRBracket, "']'"); err != nil {
		return nil, err
	}
	return ast.NewArrayLiteral(pos, elems), nil
}

// object_lit = '{' [IDENT ':' expr {',' IDENT ':' expr}] '}'
func (p *Parser) parseObjectLiteral() (ast.Node, error) {
	pos := p.pos()
	if _, err := p.expect(lexer.TokLBrace, "'{'"); err != nil {
		return nil, err
	}
	var names []string
	var values []ast.Node
	for p.tok.Kind != lexer.TokRBrace {
		if len(names) > 0 {
			if _, err := p.expect(lexer.TokComma, "','"); err != nil {
				return nil, err
			}
		}
		name, err := p.expect(lexer.TokIdent, "field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokColon, "':'"); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		names = append(names, name.Text)
		values = append(values, value)
	}
	if _, err := p.expect(lexer.TokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return ast.NewObjectLiteral(pos, names, values), nil
}
