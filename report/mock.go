package report

import (
	"context"
	"sync"

	"github.com/TFMV/codemetrics/types"
)

// MockSink records written reports. WriteFunc, when set, replaces the
// default behaviour.
type MockSink struct {
	WriteFunc func(ctx context.Context, report types.BatchReport) error

	mu      sync.Mutex
	reports []types.BatchReport
}

func NewMockSink() *MockSink {
	return &MockSink{}
}

func (m *MockSink) Write(ctx context.Context, report types.BatchReport) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, report)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, report)
	return nil
}

// Reports returns the reports written so far.
func (m *MockSink) Reports() []types.BatchReport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.BatchReport(nil), m.reports...)
}
