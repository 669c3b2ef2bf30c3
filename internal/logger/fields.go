package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the LLM backend name.
	FieldProvider = "llm_provider"
	// FieldModel is the structured log field key for the LLM model identifier.
	FieldModel = "llm_model"
	// FieldTool is the structured log field key for a dispatched tool name.
	FieldTool = "tool"
	// FieldCallID correlates all entries of one tool invocation.
	FieldCallID = "call_id"
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

// WithBackendFields attaches the backend provider and model to the logger.
// A nil logger yields a no-op logger.
func WithBackendFields(l *zap.Logger, provider, model string) *zap.Logger {
	l = OrNop(l)

	fields := StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
	if len(fields) == 0 {
		return l
	}

	return l.With(fields...)
}

// WithCall attaches the tool name and call id to the logger.
func WithCall(l *zap.Logger, tool, callID string) *zap.Logger {
	l = OrNop(l)

	fields := StringFields(
		StringField{Key: FieldTool, Value: tool},
		StringField{Key: FieldCallID, Value: callID},
	)
	if len(fields) == 0 {
		return l
	}

	return l.With(fields...)
}
