package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/TFMV/codemetrics/types"
)

// JSONSink writes each report as an indented JSON document.
type JSONSink struct {
	w io.Writer
}

func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{w: w}
}

func (s *JSONSink) Write(ctx context.Context, report types.BatchReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	enc := json.NewEncoder(s.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
