package parser

import (
	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/lexer"
)

func (p *Parser) parseStmt() ast.Stmt {
	switch p.curTok.Type {
	case lexer.LET:
		return p.parseLetStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.BREAK:
		return p.parseBreakStmt()
	case lexer.CONTINUE:
		return p.parseContinueStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseLetStmt() ast.Stmt {
	start := p.curTok.Span

	mutable := false
	if p.peekTok.Type == lexer.MUT {
		p.nextToken()
		mutable = true
	}

	if !p.expect(lexer.IDENT) {
		return nil
	}
	nameTok := p.curTok
	name := ast.NewIdent(nameTok.Literal, nameTok.Span)

	var typ ast.TypeExpr
	if p.peekTok.Type == lexer.COLON {
		p.nextToken() // move to ':'
		p.nextToken() // move to first type token

		if !isTypeStart(p.curTok.Type) {
			p.reportError("expected type expression after ':' in let binding '"+nameTok.Literal+"'", p.curTok.Span)
			return nil
		}
		typ = p.parseType()
		if typ == nil {
			return nil
		}
	}

	if !p.expect(lexer.ASSIGN) {
		return nil
	}
	p.nextToken() // move to value start

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	span := mergeSpan(start, value.Span())
	span = mergeSpan(span, p.curTok.Span)
	stmt := ast.NewLetStmt(mutable, name, typ, value, span)

	p.nextToken()
	return stmt
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.curTok.Span

	if p.peekTok.Type == lexer.SEMICOLON {
		p.nextToken()
		span := mergeSpan(start, p.curTok.Span)
		stmt := ast.NewReturnStmt(nil, span)
		p.nextToken()
		return stmt
	}

	p.nextToken()
	value := p.parseExpr()
	if value == nil {
		return nil
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	span := mergeSpan(start, value.Span())
	span = mergeSpan(span, p.curTok.Span)
	stmt := ast.NewReturnStmt(value, span)

	p.nextToken()
	return stmt
}

func (p *Parser) parseWhileStmt() ast.Stmt {
	start := p.curTok.Span
	p.nextToken() // move to condition start

	cond := p.parseExpr()
	if cond == nil {
		return nil
	}

	if !p.expect(lexer.LBRACE) {
		return nil
	}
	body := p.parseBlockExpr()
	if body == nil {
		return nil
	}

	stmt := ast.NewWhileStmt(cond, body, mergeSpan(start, body.Span()))
	p.nextToken()
	return stmt
}

func (p *Parser) parseForStmt() ast.Stmt {
	start := p.curTok.Span

	if !p.expect(lexer.IDENT) {
		return nil
	}
	iterTok := p.curTok
	iterator := ast.NewIdent(iterTok.Literal, iterTok.Span)

	if !p.expect(lexer.IN) {
		return nil
	}
	p.nextToken() // move to iterable start

	iterable := p.parseExpr()
	if iterable == nil {
		return nil
	}

	if !p.expect(lexer.LBRACE) {
		return nil
	}
	body := p.parseBlockExpr()
	if body == nil {
		return nil
	}

	stmt := ast.NewForStmt(iterator, iterable, body, mergeSpan(start, body.Span()))
	p.nextToken()
	return stmt
}

func (p *Parser) parseBreakStmt() ast.Stmt {
	start := p.curTok.Span
	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	stmt := ast.NewBreakStmt(mergeSpan(start, p.curTok.Span))
	p.nextToken()
	return stmt
}

func (p *Parser) parseContinueStmt() ast.Stmt {
	start := p.curTok.Span
	if !p.expect(lexer.SEMICOLON) {
		return nil
	}
	stmt := ast.NewContinueStmt(mergeSpan(start, p.curTok.Span))
	p.nextToken()
	return stmt
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.curTok.Span
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	if !p.expect(lexer.SEMICOLON) {
		return nil
	}

	span := mergeSpan(start, expr.Span())
	span = mergeSpan(span, p.curTok.Span)
	stmt := ast.NewExprStmt(expr, span)

	p.nextToken()
	return stmt
}

// parseBlockExpr parses `{ stmt* expr? }`. curTok must be LBRACE on entry.
// The final statement is treated as the block's tail value when it parses
// as a bare expression with no trailing semicolon.
func (p *Parser) parseBlockExpr() *ast.BlockExpr {
	start := p.curTok.Span

	if p.curTok.Type != lexer.LBRACE {
		p.reportError("expected '{' to start block", p.curTok.Span)
		return nil
	}

	p.nextToken() // move past '{'

	var stmts []ast.Stmt
	var tail ast.Expr

	for p.curTok.Type != lexer.RBRACE && p.curTok.Type != lexer.EOF {
		prevTok := p.curTok

		if !isStatementStart(p.curTok.Type) {
			p.reportError("expected a statement", p.curTok.Span)
			p.recoverStatement(prevTok)
			continue
		}

		if isExprStart(p.curTok.Type) {
			exprStart := p.curTok.Span
			errCount := len(p.errors)
			expr := p.parseExpr()
			if expr == nil {
				p.recoverStatement(prevTok)
				continue
			}

			if p.peekTok.Type == lexer.SEMICOLON {
				p.nextToken() // move to ';'
				stmts = append(stmts, ast.NewExprStmt(expr, mergeSpan(exprStart, p.curTok.Span)))
				p.nextToken()
				continue
			}

			if p.peekTok.Type == lexer.RBRACE {
				p.nextToken() // move to '}'
				tail = expr
				break
			}

			if len(p.errors) == errCount {
				p.reportError("expected ';' or '}' after expression", p.peekTok.Span)
			}
			p.recoverStatement(prevTok)
			continue
		}

		stmt := p.parseStmt()
		if stmt != nil {
			stmts = append(stmts, stmt)
			continue
		}

		if p.curTok.Type == lexer.RBRACE || p.curTok.Type == lexer.EOF {
			break
		}
		p.recoverStatement(prevTok)
	}

	if p.curTok.Type != lexer.RBRACE {
		p.reportError("expected '}' to close block", p.curTok.Span)
		return ast.NewBlockExpr(stmts, tail, mergeSpan(start, p.curTok.Span))
	}

	return ast.NewBlockExpr(stmts, tail, mergeSpan(start, p.curTok.Span))
}
