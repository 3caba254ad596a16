package sessions

import (
	"context"

	"github.com/strrl/claude-explorer/pkg/models"
)

// asyncResult carries one fetch outcome across a goroutine boundary.
type asyncResult[T any] struct {
	value T
	err   error
}

// fetchAsync runs fn off the caller's goroutine and waits for the
// result or cancellation, whichever comes first. The TUI issues every
// load through this so a keypress can abandon a slow filesystem walk.
func fetchAsync[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	results := make(chan asyncResult[T], 1)
	go func() {
		value, err := fn()
		results <- asyncResult[T]{value: value, err: err}
	}()

	select {
	case result := <-results:
		return result.value, result.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// FetchProjectsAsync loads the project listing, honoring cancellation.
func (s *Service) FetchProjectsAsync(ctx context.Context, opts ProjectListOptions) ([]models.Project, error) {
	return fetchAsync(ctx, func() ([]models.Project, error) {
		return s.ListProjects(opts).Data, nil
	})
}

// FetchSessionsAsync loads a project's sessions, honoring cancellation.
func (s *Service) FetchSessionsAsync(ctx context.Context, encodedPath string, opts SessionListOptions) ([]models.Session, error) {
	return fetchAsync(ctx, func() ([]models.Session, error) {
		page, err := s.ListSessions(encodedPath, opts)
		if err != nil {
			return nil, err
		}
		return page.Data, nil
	})
}

// FetchMessagesAsync loads a session's messages, honoring cancellation.
func (s *Service) FetchMessagesAsync(ctx context.Context, encodedPath, sessionID string, opts MessageListOptions) ([]models.Message, error) {
	return fetchAsync(ctx, func() ([]models.Message, error) {
		page, err := s.ListMessages(encodedPath, sessionID, opts)
		if err != nil {
			return nil, err
		}
		return page.Data, nil
	})
}
