package embed

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// Diagnostic is an advisory message attached to a document pass. It never
// aborts the pass.
type Diagnostic struct {
	Message string
	URL     string
	Offset  int
	Line    int // 1-based
	Column  int // 1-based, in runes
}

// NewDiagnostic builds a Diagnostic positioned at offset within source.
func NewDiagnostic(source []byte, offset int, url, message string) Diagnostic {
	line, col := position(source, offset)
	return Diagnostic{
		Message: message,
		URL:     url,
		Offset:  offset,
		Line:    line,
		Column:  col,
	}
}

// String formats the diagnostic as "line:col: message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s", d.Line, d.Column, d.Message)
}

func position(source []byte, offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	head := source[:offset]
	line = bytes.Count(head, []byte{'\n'}) + 1
	lineStart := bytes.LastIndexByte(head, '\n') + 1
	col = utf8.RuneCount(head[lineStart:]) + 1
	return line, col
}
