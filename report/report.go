package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/TFMV/codemetrics/types"
)

// Sink receives finished batch reports.
type Sink interface {
	Write(ctx context.Context, report types.BatchReport) error
}

// Format names accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns the sink for format writing to w. An empty format selects
// text output.
func New(format string, w io.Writer) (Sink, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		return NewTextSink(w), nil
	case FormatJSON:
		return NewJSONSink(w), nil
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}
