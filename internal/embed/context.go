package embed

import (
	"context"

	"github.com/yuin/goldmark/parser"
)

var (
	passContextKey = parser.NewContextKey()
	parseErrorKey  = parser.NewContextKey()
	diagnosticsKey = parser.NewContextKey()
)

// DiagnosticsMetaKey is the document metadata key holding a pass's diagnostics.
const DiagnosticsMetaKey = "embedDiagnostics"

// NewContext returns a parser context whose oEmbed fetches are bound to ctx.
func NewContext(ctx context.Context, opts ...parser.ContextOption) parser.Context {
	pc := parser.NewContext(opts...)
	if ctx != nil {
		pc.Set(passContextKey, ctx)
	}
	return pc
}

// Diagnostics returns the diagnostics recorded during the pass, sorted by offset.
func Diagnostics(pc parser.Context) []Diagnostic {
	if v, ok := pc.Get(diagnosticsKey).([]Diagnostic); ok {
		return v
	}
	return nil
}

// ParseError returns the first ErrParse raised during the pass, if any.
func ParseError(pc parser.Context) error {
	if err, ok := pc.Get(parseErrorKey).(error); ok {
		return err
	}
	return nil
}

func passContext(pc parser.Context) context.Context {
	if ctx, ok := pc.Get(passContextKey).(context.Context); ok {
		return ctx
	}
	return context.Background()
}

func setParseError(pc parser.Context, err error) {
	if ParseError(pc) == nil {
		pc.Set(parseErrorKey, err)
	}
}
