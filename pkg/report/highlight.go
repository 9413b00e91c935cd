package report

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const (
	// ReportLanguage is the lexer used for previewing markdown reports.
	ReportLanguage = "markdown"
	// DefaultStyle is the chroma style for console previews.
	DefaultStyle = "monokai"
	// terminalFormatter renders tokens with 256 colors escape sequences.
	terminalFormatter = "terminal256"
)

// Highlight writes the markdown report to w.
// When colored is true the report is highlighted with the chroma style named codeStyle,
// see https://pygments.org/docs/styles for the available styles.
func Highlight(w io.Writer, markdown string, codeStyle string, colored bool) error {
	if !colored {
		_, err := io.WriteString(w, markdown)
		return err
	}

	lexer := lexers.Get(ReportLanguage)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(codeStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get(terminalFormatter)
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iter, err := lexer.Tokenise(nil, markdown)
	if err != nil {
		return fmt.Errorf("tokenise failed: %w", err)
	}

	if err := formatter.Format(w, style, iter); err != nil {
		return fmt.Errorf("format report: %s", err)
	}
	return nil
}
