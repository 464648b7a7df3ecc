// Package journal keeps a record of submitted operations. Each submission,
// whether it succeeded, failed validation or was rejected by the admin API,
// becomes one Entry with its parameters (secrets redacted).
package journal

import (
	"context"
	"time"
)

// Status summarises how a submission ended.
type Status string

const (
	StatusOK      Status = "ok"
	StatusInvalid Status = "invalid"
	StatusFailed  Status = "failed"
)

// RedactedValue replaces sensitive parameter values.
const RedactedValue = "[redacted]"

// DefaultLimit is used by Recent when the caller passes a non-positive limit.
const DefaultLimit = 50

// Entry is one journal record.
type Entry struct {
	ID        string         `json:"id"`
	Category  string         `json:"category"`
	Operation string         `json:"operation"`
	Actor     string         `json:"actor,omitempty"`
	Params    map[string]any `json:"params,omitempty"`
	Status    Status         `json:"status"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Recorder persists and lists entries.
type Recorder interface {
	Record(ctx context.Context, entry Entry) (Entry, error)
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// Nop discards entries. It is used when no journal path is configured.
type Nop struct{}

func (Nop) Record(_ context.Context, entry Entry) (Entry, error) { return entry, nil }

func (Nop) Recent(context.Context, int) ([]Entry, error) { return nil, nil }

// Redact returns a copy of params with the values of keys replaced.
func Redact(params map[string]any, keys ...string) map[string]any {
	if params == nil {
		return nil
	}
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = v
	}
	for _, key := range keys {
		if _, ok := out[key]; ok {
			out[key] = RedactedValue
		}
	}
	return out
}
