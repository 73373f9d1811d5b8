package logger

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	FieldModelName    = "model_name"
	FieldModelVersion = "model_version"
	FieldRunID        = "run_id"
	FieldJobID        = "job_id"
	FieldJobTitle     = "job_title"
	FieldStage        = "name"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts key/value pairs into zap fields, trimming whitespace and
// dropping entries with an empty key or value.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ModelFields describes a registered model. A non-positive version is omitted.
func ModelFields(name string, version int, runID string) []zap.Field {
	v := ""
	if version > 0 {
		v = strconv.Itoa(version)
	}
	return StringFields(
		StringField{Key: FieldModelName, Value: name},
		StringField{Key: FieldModelVersion, Value: v},
		StringField{Key: FieldRunID, Value: runID},
	)
}

func WithModelFields(logger *zap.Logger, name string, version int, runID string) *zap.Logger {
	return WithFields(logger, ModelFields(name, version, runID)...)
}

// JobFields describes the job posting a prediction is made for.
func JobFields(jobID, title string) []zap.Field {
	return StringFields(
		StringField{Key: FieldJobID, Value: jobID},
		StringField{Key: FieldJobTitle, Value: title},
	)
}

// StageFields describes how many rows a pipeline stage received, dropped and kept.
func StageFields(name string, initial, dropped, left int) []zap.Field {
	return []zap.Field{
		zap.String(FieldStage, name),
		zap.Int("initial", initial),
		zap.Int("dropped", dropped),
		zap.Int("left", left),
	}
}
