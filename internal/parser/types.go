package parser

import (
	"github.com/malphas-lang/malphas-lang/internal/ast"
	"github.com/malphas-lang/malphas-lang/internal/lexer"
)

// parseType parses a type expression, including the postfix `?` optional
// suffix, which can wrap any of the other type forms.
func (p *Parser) parseType() ast.TypeExpr {
	base := p.parseBaseType()
	if base == nil {
		return nil
	}
	for p.peekTok.Type == lexer.QUESTION {
		p.nextToken() // move to '?'
		base = ast.NewOptionalType(base, mergeSpan(base.Span(), p.curTok.Span))
	}
	return base
}

func (p *Parser) parseBaseType() ast.TypeExpr {
	switch p.curTok.Type {
	case lexer.IDENT:
		return p.parseNamedType()
	case lexer.ASTERISK:
		return p.parsePointerType()
	case lexer.AMPERSAND:
		// `&mut T` fuses the AMPERSAND and MUT tokens, same as
		// parsePrefixExpr does for the expression-level unary operator.
		mutable := p.peekTok.Type == lexer.MUT
		return p.parseReferenceType(mutable)
	case lexer.LBRACKET:
		return p.parseArrayOrSliceType()
	case lexer.CHAN:
		return p.parseChanType()
	default:
		p.reportError("expected type expression", p.curTok.Span)
		return nil
	}
}

func (p *Parser) parseNamedType() ast.TypeExpr {
	nameTok := p.curTok
	name := ast.NewIdent(nameTok.Literal, nameTok.Span)
	return ast.NewNamedType(name, nameTok.Span)
}

func (p *Parser) parsePointerType() ast.TypeExpr {
	start := p.curTok.Span
	p.nextToken() // move to element type
	elem := p.parseType()
	if elem == nil {
		return nil
	}
	return ast.NewPointerType(elem, mergeSpan(start, elem.Span()))
}

func (p *Parser) parseReferenceType(mutable bool) ast.TypeExpr {
	start := p.curTok.Span
	p.nextToken() // consume '&'
	if mutable {
		p.nextToken() // consume 'mut'
	}
	elem := p.parseType()
	if elem == nil {
		return nil
	}
	return ast.NewReferenceType(mutable, elem, mergeSpan(start, elem.Span()))
}

func (p *Parser) parseChanType() ast.TypeExpr {
	start := p.curTok.Span
	p.nextToken() // move to element type
	elem := p.parseType()
	if elem == nil {
		return nil
	}
	return ast.NewChanType(elem, mergeSpan(start, elem.Span()))
}

// parseArrayOrSliceType parses `[]T` and `[N]T` forms.
func (p *Parser) parseArrayOrSliceType() ast.TypeExpr {
	start := p.curTok.Span

	if p.peekTok.Type == lexer.RBRACKET {
		p.nextToken() // move to ']'
		p.nextToken() // move to element type
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		return ast.NewSliceType(elem, mergeSpan(start, elem.Span()))
	}

	p.nextToken() // move to length expr
	length := p.parseExpr()
	if !p.expect(lexer.RBRACKET) {
		return nil
	}
	p.nextToken() // move to element type
	elem := p.parseType()
	if elem == nil {
		return nil
	}
	return ast.NewArrayType(elem, length, mergeSpan(start, elem.Span()))
}
