package parser

import (
	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/lexer"
)

// spanSetter is satisfied by nodes that expose SetSpan. parseGroupedExpr uses
// it to widen spans without wrapping the underlying node in a synthetic AST
// type.
type spanSetter interface {
	SetSpan(lexer.Span)
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseExprPrecedence(precedenceLowest)
}

func (p *Parser) parseExprPrecedence(precedence int) ast.Expr {
	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.reportError("unexpected token in expression '"+string(p.curTok.Type)+"'", p.curTok.Span)
		return nil
	}

	left := prefix()
	if left == nil {
		return nil
	}

	for p.peekTok.Type != lexer.SEMICOLON && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			break
		}

		p.nextToken()

		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expr {
	tok := p.curTok
	return ast.NewIdent(tok.Literal, tok.Span)
}

func (p *Parser) parseIntegerLiteral() ast.Expr {
	tok := p.curTok
	return ast.NewIntegerLit(tok.Literal, tok.Span)
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	tok := p.curTok
	return ast.NewFloatLit(tok.Literal, tok.Span)
}

func (p *Parser) parseStringLiteral() ast.Expr {
	tok := p.curTok
	return ast.NewStringLit(tok.Value, tok.Span)
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	tok := p.curTok
	return ast.NewBoolLit(tok.Type == lexer.TRUE, tok.Span)
}

func (p *Parser) parseNilLiteral() ast.Expr {
	return ast.NewNilLit(p.curTok.Span)
}

// parsePrefixExpr handles prefix operators registered via registerPrefix. It
// must consume the operator before recursing so Pratt precedence
// (precedencePrefix) controls binding.
func (p *Parser) parsePrefixExpr() ast.Expr {
	operatorTok := p.curTok

	// Check for mutable reference: &mut
	if operatorTok.Type == lexer.AMPERSAND && p.peekTok.Type == lexer.MUT {
		p.nextToken() // consume '&'
		p.nextToken() // consume 'mut'
		operatorTok.Type = lexer.REF_MUT
	} else {
		p.nextToken()
	}

	right := p.parseExprPrecedence(precedencePrefix)
	if right == nil {
		return nil
	}

	span := mergeSpan(operatorTok.Span, right.Span())

	return ast.NewPrefixExpr(operatorTok.Type, right, span)
}

// parseGroupedExpr parses "(expr)" without introducing an explicit ParenExpr
// node: it rewrites the span on the parsed sub-expression instead.
func (p *Parser) parseGroupedExpr() ast.Expr {
	start := p.curTok.Span
	p.nextToken() // consume '('

	expr := p.parseExpr()
	if expr == nil {
		return nil
	}

	if !p.expect(lexer.RPAREN) {
		return nil
	}

	span := mergeSpan(start, expr.Span())
	span = mergeSpan(span, p.curTok.Span)

	if setter, ok := expr.(spanSetter); ok {
		setter.SetSpan(span)
	}

	return expr
}

func (p *Parser) parseInfixExpr(left ast.Expr) ast.Expr {
	operatorTok := p.curTok
	precedence := p.curPrecedence()

	p.nextToken()

	right := p.parseExprPrecedence(precedence)
	if right == nil {
		return nil
	}

	span := mergeSpan(left.Span(), operatorTok.Span)
	span = mergeSpan(span, right.Span())

	return ast.NewInfixExpr(operatorTok.Type, left, right, span)
}

func (p *Parser) parseAssignExpr(target ast.Expr) ast.Expr {
	assignTok := p.curTok

	p.nextToken()

	nextPrec := precedenceAssign - 1
	if nextPrec < precedenceLowest {
		nextPrec = precedenceLowest
	}

	right := p.parseExprPrecedence(nextPrec)
	if right == nil {
		return nil
	}

	span := mergeSpan(target.Span(), assignTok.Span)
	span = mergeSpan(span, right.Span())

	return ast.NewAssignExpr(target, right, span)
}

func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	openTok := p.curTok

	p.nextToken()

	var args []ast.Expr

	if p.curTok.Type != lexer.RPAREN {
		arg := p.parseExpr()
		if arg == nil {
			return nil
		}
		args = append(args, arg)

		for p.peekTok.Type == lexer.COMMA {
			p.nextToken() // move to comma
			p.nextToken() // move to next argument start

			if p.curTok.Type == lexer.RPAREN {
				// Trailing comma: call(a, b, )
				break
			}

			arg = p.parseExpr()
			if arg == nil {
				return nil
			}
			args = append(args, arg)
		}

		if !p.expect(lexer.RPAREN) {
			return nil
		}
	}

	span := mergeSpan(callee.Span(), openTok.Span)
	span = mergeSpan(span, p.curTok.Span)

	return ast.NewCallExpr(callee, args, span)
}

func (p *Parser) parseFieldExpr(target ast.Expr) ast.Expr {
	dotTok := p.curTok
	p.nextToken() // advance past DOT

	if p.curTok.Type != lexer.IDENT {
		p.reportError("expected field name", p.curTok.Span)
		return nil
	}

	fieldTok := p.curTok
	field := ast.NewIdent(fieldTok.Literal, fieldTok.Span)

	span := mergeSpan(target.Span(), dotTok.Span)
	span = mergeSpan(span, fieldTok.Span)

	return ast.NewFieldExpr(target, field, span)
}

func (p *Parser) parseIndexExpr(target ast.Expr) ast.Expr {
	openTok := p.curTok

	p.nextToken()

	var indices []ast.Expr

	if p.curTok.Type != lexer.RBRACKET {
		index := p.parseExpr()
		if index == nil {
			return nil
		}
		indices = append(indices, index)

		for p.peekTok.Type == lexer.COMMA {
			p.nextToken() // move to comma
			p.nextToken() // move to next index start

			index = p.parseExpr()
			if index == nil {
				return nil
			}
			indices = append(indices, index)
		}
	}

	if !p.expect(lexer.RBRACKET) {
		return nil
	}

	span := mergeSpan(target.Span(), openTok.Span)
	if len(indices) > 0 {
		span = mergeSpan(span, indices[len(indices)-1].Span())
	}
	span = mergeSpan(span, p.curTok.Span)

	return ast.NewIndexExpr(target, indices, span)
}

// parseIfExpr parses an if/else-if/else chain. Malphas has no bare if
// statement: every if is parsed as an expression.
func (p *Parser) parseIfExpr() ast.Expr {
	start := p.curTok.Span

	var clauses []*ast.IfClause

	for {
		clauseStart := p.curTok.Span
		p.nextToken() // move past 'if'/'else if' keyword

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

		clauses = append(clauses, ast.NewIfClause(cond, body, mergeSpan(clauseStart, body.Span())))

		if p.peekTok.Type == lexer.ELSE {
			p.nextToken() // move to 'else'
			if p.peekTok.Type == lexer.IF {
				p.nextToken() // move to 'if'
				continue
			}
			break
		}
		break
	}

	var elseBlock *ast.BlockExpr
	end := clauses[len(clauses)-1].Span()

	if p.curTok.Type == lexer.ELSE {
		if !p.expect(lexer.LBRACE) {
			return nil
		}
		elseBlock = p.parseBlockExpr()
		if elseBlock == nil {
			return nil
		}
		end = elseBlock.Span()
	}

	return ast.NewIfExpr(clauses, elseBlock, mergeSpan(start, end))
}

// parseBlockLiteral allows a bare block to be used wherever an expression is
// expected, matching BlockExpr's own tail-value semantics.
func (p *Parser) parseBlockLiteral() ast.Expr {
	return p.parseBlockExpr()
}
