package fixtures

import (
	"context"
	"sync"

	"github.com/sukkergris/cqrs"
)

// InvocationRecorder collects labels in invocation order, shared between the
// middleware created from it. Use it to assert decorator chain ordering.
type InvocationRecorder struct {
	mu     sync.Mutex
	Labels []string
}

// Record appends a label.
func (r *InvocationRecorder) Record(label string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Labels = append(r.Labels, label)
}

// Recorded returns a copy of the labels recorded so far.
func (r *InvocationRecorder) Recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.Labels))
	copy(out, r.Labels)
	return out
}

// CommandMiddleware returns middleware recording label before delegating.
func (r *InvocationRecorder) CommandMiddleware(label string) func(next cqrs.CommandHandler[TestCommand]) cqrs.CommandHandler[TestCommand] {
	return func(next cqrs.CommandHandler[TestCommand]) cqrs.CommandHandler[TestCommand] {
		return func(ctx context.Context, cmd TestCommand) (cqrs.Result, error) {
			r.Record(label)
			return next(ctx, cmd)
		}
	}
}

// QueryMiddleware returns middleware recording label before delegating.
func (r *InvocationRecorder) QueryMiddleware(label string) cqrs.QueryMiddleware[TestQuery, *TestQueryResult] {
	return func(next cqrs.QueryHandler[TestQuery, *TestQueryResult]) cqrs.QueryHandler[TestQuery, *TestQueryResult] {
		return cqrs.NewQueryHandlerFunc(func(ctx context.Context, qry TestQuery) (*TestQueryResult, error) {
			r.Record(label)
			return next.HandleQuery(ctx, qry)
		})
	}
}
