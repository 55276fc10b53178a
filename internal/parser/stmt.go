package parser

import (
	"nitro/internal/ast"
	"nitro/internal/common"
	"nitro/internal/lexer"
)

// parseStmt = var_decl | if_stmt | while_stmt | for_stmt | do_while_stmt
//
//	| 'break' ';' | 'continue' ';' | return_stmt | block | expr_stmt
func (p *Parser) parseStmt() (ast.Node, error) {
	switch p.tok.Kind {
	case lexer.TokLet, lexer.TokConst:
		decl, err := p.parseVarDeclEntries()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
			return nil, err
		}
		return decl, nil
	case lexer.TokIf:
		return p.parseIf()
	case lexer.TokWhile:
		return p.parseWhile()
	case lexer.TokFor:
		return p.parseFor()
	case lexer.TokDo:
		return p.parseDoWhile()
	case lexer.TokBreak:
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
			return nil, err
		}
		return ast.NewBreak(pos), nil
	case lexer.TokContinue:
		pos := p.pos()
		if err := p.advance(); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
			return nil, err
		}
		return ast.NewContinue(pos), nil
	case lexer.TokReturn:
		return p.parseReturn()
	case lexer.TokLBrace:
		return p.parseBlock()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	pos := p.pos()
	if _, err := p.expect(lexer.TokLBrace, "'{'"); err != nil {
		return nil, err
	}
	var stmts []ast.Node
	for p.tok.Kind != lexer.TokRBrace {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(lexer.TokRBrace, "'}'"); err != nil {
		return nil, err
	}
	return ast.NewBlock(pos, stmts), nil
}

func (p *Parser) parseIf() (*ast.If, error) {
	pos := p.pos()
	var branches []ast.CondBranch

	if err := p.advance(); err != nil { // 'if'
		return nil, err
	}
	cond, body, err := p.parseCondAndBlock()
	if err != nil {
		return nil, err
	}
	branches = append(branches, ast.CondBranch{Cond: cond, Body: body})

	var elseBlock *ast.Block
	for p.tok.Kind == lexer.TokElse {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.Kind == lexer.TokIf {
			if err := p.advance(); err != nil {
				return nil, err
			}
			cond, body, err := p.parseCondAndBlock()
			if err != nil {
				return nil, err
			}
			branches = append(branches, ast.CondBranch{Cond: cond, Body: body})
			continue
		}
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
		break
	}

	return ast.NewIf(pos, branches, elseBlock), nil
}

func (p *Parser) parseCondAndBlock() (ast.Node, *ast.Block, error) {
	if _, err := p.expect(lexer.TokLParen, "'('"); err != nil {
		return nil, nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(lexer.TokRParen, "')'"); err != nil {
		return nil, nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

func (p *Parser) parseWhile() (*ast.While, error) {
	pos := p.pos()
	if err := p.advance(); err != nil {
		return nil, err
	}
	cond, body, err := p.parseCondAndBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhile(pos, cond, body), nil
}

func (p *Parser) parseDoWhile() (*ast.DoWhile, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // 'do'
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokWhile, "'while'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokLParen, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokRParen, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
		return nil, err
	}
	return ast.NewDoWhile(pos, body, cond), nil
}

// for_stmt = 'for' '(' [simple_stmt] ';' [expr] ';' [simple_stmt] ')' block
func (p *Parser) parseFor() (*ast.For, error) {
	pos := p.pos()
	if err := p.advance(); err != nil { // 'for'
		return nil, err
	}
	if _, err := p.expect(lexer.TokLParen, "'('"); err != nil {
		return nil, err
	}

	var init ast.Node
	var err error
	if p.tok.Kind != lexer.TokSemi {
		init, err = p.parseForClauseStmt()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
		return nil, err
	}

	var cond ast.Node
	if p.tok.Kind != lexer.TokSemi {
		cond, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
		return nil, err
	}

	var update ast.Node
	if p.tok.Kind != lexer.TokRParen {
		update, err = p.parseForClauseStmt()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokRParen, "')'"); err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewFor(pos, init, cond, update, body), nil
}

// parseForClauseStmt parses the init/update slot of a `for` header: either
// a var_decl entry list without its own trailing ';' (the caller consumes
// that) or a bare expression.
func (p *Parser) parseForClauseStmt() (ast.Node, error) {
	if p.tok.Kind == lexer.TokLet || p.tok.Kind == lexer.TokConst {
		return p.parseVarDeclEntries()
	}
	return p.parseExpr()
}

func (p *Parser) parseReturn() (*ast.Return, error) {
	pos := p.pos()
	if err := p.advance(); err != nil {
		return nil, err
	}
	var value ast.Node
	if p.tok.Kind != lexer.TokSemi {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
		return nil, err
	}
	return ast.NewReturn(pos, value), nil
}

func (p *Parser) parseExprStmt() (ast.Node, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokSemi, "';'"); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseVarDeclEntries parses `('let'|'const') name type ['=' expr] {',' name type ['=' expr]}`
// without consuming a trailing ';' -- callers (parseStmt and the `for`
// header's parseForClauseStmt) are responsible for that.
func (p *Parser) parseVarDeclEntries() (*ast.VarDecl, error) {
	pos := p.pos()
	mutable := p.tok.Kind == lexer.TokLet
	if err := p.advance(); err != nil { // 'let'/'const'
		return nil, err
	}

	var entries []ast.VarDeclEntry
	for {
		nameTok, err := p.expect(lexer.TokIdent, "variable name")
		if err != nil {
			return nil, err
		}
		declType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		var init ast.Node
		if p.tok.Kind == lexer.TokAssign {
			if err := p.advance(); err != nil {
				return nil, err
			}
			init, err = p.parseExpr()
			if err != nil {
				return nil, err
			}
		}
		entries = append(entries, ast.VarDeclEntry{
			Sym:         &common.Symbol{Name: nameTok.Text, Mutable: mutable},
			Type:        declType,
			Initializer: init,
		})
		if p.tok.Kind != lexer.TokComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	return ast.NewVarDecl(pos, entries), nil
}
