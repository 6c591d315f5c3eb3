package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/malphas-lang/malphas-lang/internal/diag"
	"github.com/malphas-lang/malphas-lang/internal/lexer"
	"github.com/malphas-lang/malphas-lang/internal/mir"
	"github.com/malphas-lang/malphas-lang/internal/mir/ssa"
	"github.com/malphas-lang/malphas-lang/internal/parser"
	"github.com/malphas-lang/malphas-lang/internal/types"
)

// compile runs parse, typecheck, lower, and the SSA pass over filename,
// honoring the --dump-mir/--dump-ssa flags. It returns a plain error (never
// a panic) for parse/type failures, reserving InternalError panics for the
// SSA pass's own invariant violations.
func compile(filename string) (*mir.Module, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}

	p := parser.New(string(src), parser.WithFilename(filename))
	file := p.ParseFile()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, reportParseErrors(filename, errs)
	}

	checker := types.NewChecker()
	checker.CheckWithFilename(file, filename)
	if len(checker.Errors) > 0 {
		return nil, reportDiagnostics(filename, checker.Errors)
	}

	lowerer := mir.NewLowerer(checker.TypeInfo, checker.GlobalScope)
	treeMod, err := lowerer.LowerFile(file)
	if err != nil {
		return nil, fmt.Errorf("lowering %s: %w", filename, err)
	}

	if dumpMIR {
		fmt.Println(treeMod.PrettyPrint())
	}

	log := logrus.WithField("file", filename)
	ssaMod := transformModule(treeMod, log)

	if dumpSSA {
		fmt.Println(ssaMod.PrettyPrint())
	}

	return ssaMod, nil
}

func transformModule(mod *mir.Module, log *logrus.Entry) *mir.Module {
	out := &mir.Module{}
	for _, g := range mod.Globals {
		out.Globals = append(out.Globals, g)
	}
	for _, fn := range mod.Funcs {
		out.Funcs = append(out.Funcs, ssa.FuncWithLog(fn, log))
	}
	return out
}

func reportParseErrors(filename string, errs []parser.ParseError) error {
	f := diag.NewFormatter()
	for _, e := range errs {
		f.Format(diag.Diagnostic{
			Stage:    diag.StageParser,
			Severity: diag.SeverityError,
			Code:     diag.CodeParserUnexpectedToken,
			Message:  e.Message,
			Span:     toDiagSpan(filename, e.Span),
		})
	}
	return fmt.Errorf("%s: %d parse error(s)", filename, len(errs))
}

func reportDiagnostics(filename string, ds []diag.Diagnostic) error {
	f := diag.NewFormatter()
	for _, d := range ds {
		f.Format(d)
	}
	return fmt.Errorf("%s: %d type error(s)", filename, len(ds))
}

func toDiagSpan(filename string, s lexer.Span) diag.Span {
	if s.Filename != "" {
		filename = s.Filename
	}
	return diag.Span{Filename: filename, Line: s.Line, Column: s.Column, Start: s.Start, End: s.End}
}
