package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/spigell/offer-matcher/internal/logger"
	"go.uber.org/zap"
)

// Handler runs one tool with arguments already validated against its schema.
type Handler func(ctx context.Context, args map[string]any) (any, error)

// Result is the text payload returned to the caller of a tool.
type Result struct {
	Text    string
	IsError bool
}

type tool struct {
	descriptor Descriptor
	handler    Handler
}

// Registry maps tool names to their descriptors and handlers.
// Tools are listed in registration order.
type Registry struct {
	mu     sync.RWMutex
	order  []string
	tools  map[string]tool
	logger *zap.Logger
}

func NewRegistry(l *zap.Logger) *Registry {
	return &Registry{
		tools:  make(map[string]tool),
		logger: logger.OrNop(l),
	}
}

// Register adds a tool. Registering an existing name replaces its handler and descriptor.
func (r *Registry) Register(d Descriptor, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[d.Name]; !ok {
		r.order = append(r.order, d.Name)
	}
	r.tools[d.Name] = tool{descriptor: d, handler: h}
}

func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].descriptor)
	}
	return out
}

// Call runs the named tool. Unknown tools, invalid arguments, handler errors and panics
// all come back as an error result for this call only.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (res Result) {
	l := logger.WithCall(r.logger, name, uuid.NewString())

	r.mu.RLock()
	t, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		l.Warn("unknown tool")
		return errorResult(fmt.Sprintf("未知工具: %s", name))
	}

	if args == nil {
		args = map[string]any{}
	}

	defer func() {
		if rec := recover(); rec != nil {
			l.Error("tool handler panic recovered",
				zap.String("panic", fmt.Sprintf("%v", rec)),
				zap.String("stack_trace", string(debug.Stack())),
			)
			res = errorResult(fmt.Sprintf("internal error: %v", rec))
		}
	}()

	if err := t.descriptor.InputSchema.Validate(args); err != nil {
		l.Warn("rejected tool arguments", zap.Error(err))
		return errorResult(err.Error())
	}

	l.Info("calling tool", zap.Strings("arguments", argumentNames(args)))

	out, err := t.handler(WithLogger(ctx, l), args)
	if err != nil {
		l.Error("tool call failed", zap.Error(err))
		return errorResult(err.Error())
	}

	text, err := encode(out)
	if err != nil {
		l.Error("encoding tool result", zap.Error(err))
		return errorResult(err.Error())
	}

	l.Debug("tool call finished", zap.Int("result_length", len(text)))
	return Result{Text: text}
}

func errorResult(msg string) Result {
	text, err := encode(map[string]string{"error": msg})
	if err != nil {
		text = msg
	}
	return Result{Text: text, IsError: true}
}

// encode renders v as indented JSON without escaping HTML characters.
func encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func argumentNames(args map[string]any) []string {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type loggerKey struct{}

// WithLogger stores the per-call logger in ctx.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// LoggerFrom returns the per-call logger, or a no-op logger outside of a call.
func LoggerFrom(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return zap.NewNop()
}
