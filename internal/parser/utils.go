package parser

import "github.com/malphas-lang/malphas-lang/internal/lexer"

func sameTokenPosition(a, b lexer.Token) bool {
	return a.Type == b.Type && a.Span.Start == b.Span.Start && a.Span.End == b.Span.End
}

func isTopLevelDeclStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.FN, lexer.GLOBAL, lexer.USE:
		return true
	default:
		return false
	}
}

func isStatementStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.LET, lexer.RETURN, lexer.WHILE, lexer.FOR, lexer.BREAK, lexer.CONTINUE:
		return true
	default:
		return isExprStart(tt)
	}
}

func isExprStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENT, lexer.INT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE, lexer.NIL,
		lexer.BANG, lexer.MINUS, lexer.AMPERSAND, lexer.ASTERISK,
		lexer.LPAREN, lexer.LBRACE, lexer.IF:
		return true
	default:
		return false
	}
}

func isTypeStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENT, lexer.ASTERISK, lexer.AMPERSAND, lexer.LBRACKET, lexer.CHAN:
		return true
	default:
		return false
	}
}

// recoverDecl skips tokens until it finds a plausible start of the next
// top-level declaration, so one bad declaration doesn't cascade into
// spurious errors for the rest of the file.
func (p *Parser) recoverDecl(prev lexer.Token) {
	if p.curTok.Type == lexer.EOF {
		return
	}

	if sameTokenPosition(p.curTok, prev) {
		p.nextToken()
	}

	for p.curTok.Type != lexer.EOF {
		switch p.curTok.Type {
		case lexer.SEMICOLON:
			p.nextToken()
			return
		case lexer.RBRACE:
			return
		default:
			if isTopLevelDeclStart(p.curTok.Type) {
				return
			}
		}

		p.nextToken()
	}
}

// recoverStatement skips tokens until the next statement boundary so one
// bad statement inside a block doesn't derail the rest of the block.
func (p *Parser) recoverStatement(prev lexer.Token) {
	if p.curTok.Type == lexer.EOF || p.curTok.Type == lexer.RBRACE {
		return
	}

	if sameTokenPosition(p.curTok, prev) {
		p.nextToken()
	}

	for p.curTok.Type != lexer.EOF && p.curTok.Type != lexer.RBRACE {
		if p.curTok.Type == lexer.SEMICOLON {
			p.nextToken()
			return
		}
		p.nextToken()
	}
}
