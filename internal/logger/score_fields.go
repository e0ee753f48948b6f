package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProfileA is the structured log field key for the evaluating profile id.
	FieldProfileA = "profile_a"
	// FieldProfileB is the structured log field key for the evaluated profile id.
	FieldProfileB = "profile_b"
	// FieldMethod is the structured log field key for the similarity method tag.
	FieldMethod = "similarity_method"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
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

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// PairFields returns standard zap fields identifying a scored profile pair.
// Empty values are ignored to keep log entries compact when information is missing.
func PairFields(profileA, profileB string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProfileA, Value: profileA},
		StringField{Key: FieldProfileB, Value: profileB},
	)
}

// WithPairFields attaches the pair identity fields to the provided logger.
// If the logger is nil, a no-op logger is created to avoid panics.
func WithPairFields(logger *zap.Logger, profileA, profileB string) *zap.Logger {
	fields := PairFields(profileA, profileB)
	return WithFields(logger, fields...)
}
