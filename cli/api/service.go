package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/oaiiae/huma-phonebook/datastores"
)

type (
	StoreOpener   = func(context.Context) (datastores.ContactsStore, io.Closer, error)
	ServerBuilder = func(datastores.ContactsStore) *http.Server
)

// Service serves HTTP over a store opened by [Service.Run].
// The store is closed before Run returns, and [Service.Stop] waits for Run
// to return, so a stopped service has released its store.
type Service struct {
	open   StoreOpener
	server ServerBuilder
	logger *slog.Logger

	mu      sync.Mutex
	srv     *http.Server
	stopped bool
	done    chan struct{}
}

func NewService(open StoreOpener, server ServerBuilder, logger *slog.Logger) *Service {
	return &Service{open: open, server: server, logger: logger, done: make(chan struct{})}
}

// Run opens the store and serves until the server fails or [Service.Stop]
// is called. It must be called once.
func (s *Service) Run(ctx context.Context) (err error) {
	defer close(s.done)
	if s.isStopped() {
		return nil
	}

	store, closer, err := s.open(ctx)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close store: %w", cerr))
		}
	}()

	srv := s.server(store)
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.srv = srv
	s.mu.Unlock()

	s.logger.Info("server listening", "addr", srv.Addr)
	err = srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	s.logger.Info("server closed")
	return nil
}

// Stop shuts the server down and waits for [Service.Run] to return,
// or for ctx to be done.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	srv := s.srv
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}
	select {
	case <-s.done:
		return err
	case <-ctx.Done():
		return errors.Join(err, ctx.Err())
	}
}

func (s *Service) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}
