package ai

import (
	"context"
	"fmt"
	"time"
)

// DefaultTimeout bounds every call to a generative backend.
const DefaultTimeout = 2 * time.Minute

// ErrorMarker prefixes the textual form of a failed gateway call.
const ErrorMarker = "错误:"

type FailureKind string

const (
	// FailureTransport covers connection errors and timeouts.
	FailureTransport FailureKind = "transport"
	// FailureStatus is a non-success HTTP status or an API error.
	FailureStatus FailureKind = "status"
	// FailureDecode means the backend answered but the body was not understood.
	FailureDecode FailureKind = "decode"
)

type Failure struct {
	Kind   FailureKind
	Detail string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s failure: %s", f.Kind, f.Detail)
}

// Result is the outcome of a generation call: either Text or a Failure, never both.
type Result struct {
	Text    string
	Failure *Failure
}

func Success(text string) Result {
	return Result{Text: text}
}

func Failed(kind FailureKind, detail string) Result {
	return Result{Failure: &Failure{Kind: kind, Detail: detail}}
}

func (r Result) OK() bool {
	return r.Failure == nil
}

// String returns the generated text, or the error marker form "错误: <detail>" for failures.
func (r Result) String() string {
	if r.Failure != nil {
		return ErrorMarker + " " + r.Failure.Detail
	}
	return r.Text
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GenerateRequest struct {
	Prompt      string
	System      string
	Temperature float64
	// MaxTokens of zero leaves the backend default in place.
	MaxTokens int
	Stream    bool
}

type ChatRequest struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Gateway is the only path to a generative backend. Implementations never return errors:
// Available reports false on any failure, Generate and Chat report failures in the Result,
// and Embeddings returns an empty vector.
type Gateway interface {
	Available(ctx context.Context) bool
	Generate(ctx context.Context, req GenerateRequest) Result
	Chat(ctx context.Context, req ChatRequest) Result
	Embeddings(ctx context.Context, text string) []float64
	Provider() string
	Model() string
}
