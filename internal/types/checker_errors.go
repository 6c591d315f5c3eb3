package types

import (
	"github.com/malphas-lang/malphas-lang/internal/diag"
	"github.com/malphas-lang/malphas-lang/internal/lexer"
)

// toDiagSpan converts a lexer.Span to a diag.Span, attributing it to the
// filename the checker was invoked with.
func (c *Checker) toDiagSpan(span lexer.Span) diag.Span {
	filename := span.Filename
	if filename == "" {
		filename = c.filename
	}
	return diag.Span{
		Filename: filename,
		Line:     span.Line,
		Column:   span.Column,
		Start:    span.Start,
		End:      span.End,
	}
}

func (c *Checker) reportError(msg string, span lexer.Span, code diag.Code) {
	diagSpan := c.toDiagSpan(span)

	d := diag.Diagnostic{
		Stage:    diag.StageTypeCheck,
		Severity: diag.SeverityError,
		Code:     code,
		Message:  msg,
		Span:     diagSpan,
	}

	if diagSpan.IsValid() {
		d = d.WithPrimarySpan(diagSpan, "")
	}

	c.Errors = append(c.Errors, d)
}
