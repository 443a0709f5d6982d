package export

import (
	"context"
	"log/slog"
	"time"

	"huangye/pkg/model"
)

// Exporter is one external submission sink.
type Exporter interface {
	Name() string
	Export(ctx context.Context, sub *model.Submission) error
}

// Mirror fans a submission out to all sinks in the background. Errors are
// logged only; the HTTP response to the submitter never waits on a sink.
func Mirror(exporters []Exporter, sub *model.Submission) {
	for _, e := range exporters {
		go func(e Exporter) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := e.Export(ctx, sub); err != nil {
				slog.Error("submission mirror failed", "sink", e.Name(), "submission", sub.ID, "error", err)
				return
			}
			slog.Debug("submission mirrored", "sink", e.Name(), "submission", sub.ID)
		}(e)
	}
}
