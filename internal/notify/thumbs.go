package notify

import "go.uber.org/zap"

// LogRenderer stands in for an image pipeline: it records which
// renditions a real renderer would produce.
type LogRenderer struct {
	logger *zap.Logger
}

func NewLogRenderer(logger *zap.Logger) *LogRenderer {
	return &LogRenderer{logger: logger}
}

func (r *LogRenderer) Warm(entity string, id int64, field string) error {
	r.logger.Info("thumbnails warmed",
		zap.String("entity", entity),
		zap.Int64("id", id),
		zap.String("field", field))
	return nil
}
