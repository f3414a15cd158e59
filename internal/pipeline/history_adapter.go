package pipeline

import (
	"context"

	"github.com/nocshop/shopgen/internal/history"
)

type historyAdapter struct {
	store *history.Store
}

// HistoryRecorder adapts a history store to the RunRecorder interface.
func HistoryRecorder(store *history.Store) RunRecorder {
	return historyAdapter{store: store}
}

func (h historyAdapter) Record(ctx context.Context, report *Report) error {
	return h.store.Append(ctx, history.Run{
		ID:            report.RunID,
		StartedAt:     report.StartedAt,
		Duration:      report.Duration,
		Repos:         report.Repos,
		CloneFailures: report.CloneFailures,
		ScanFailures:  report.ScanFailures,
		Status:        report.Status,
	})
}
