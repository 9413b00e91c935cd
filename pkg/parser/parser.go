package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyDocument = errors.New("empty coverage document")
	ErrTrailingData  = errors.New("unexpected data after coverage document")
)

// Parser decodes xccov json reports.
type Parser struct {
	logger logrus.FieldLogger
}

// NewParser creates a parser, logger may be nil.
func NewParser(logger logrus.FieldLogger) *Parser {
	if logger == nil {
		logger = logrus.New()
	}
	return &Parser{logger: logger.WithField("source", "parser")}
}

// Parse decodes data into a CoverageReport.
// A document that is blank, `null`, or followed by anything other than whitespace is rejected.
func (p *Parser) Parse(data []byte) (*CoverageReport, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyDocument
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	report := &CoverageReport{}
	if err := dec.Decode(report); err != nil {
		return nil, fmt.Errorf("decode coverage report: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w at offset %d", ErrTrailingData, dec.InputOffset())
	}

	// xccov may print targets without any file entry
	for _, t := range report.Targets {
		if t.Files == nil {
			t.Files = []*FileCoverage{}
		}
	}

	p.logger.Debugf("parsed coverage report: %d targets, %d/%d lines", len(report.Targets), report.CoveredLines, report.ExecutableLines)
	return report, nil
}

// Parse decodes data with a default parser.
func Parse(data []byte) (*CoverageReport, error) {
	return NewParser(nil).Parse(data)
}
