package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nalgeon/be"

	"github.com/oaiiae/huma-phonebook/datastores"
)

type closeFunc func() error

func (f closeFunc) Close() error { return f() }

// testService returns a service over an in-memory store, a channel receiving
// once the store is opened and a flag set once it is closed.
func testService(t *testing.T, addr string) (*Service, <-chan struct{}, *atomic.Bool) {
	t.Helper()
	opened := make(chan struct{})
	closed := new(atomic.Bool)
	svc := NewService(
		func(context.Context) (datastores.ContactsStore, io.Closer, error) {
			close(opened)
			return datastores.NewContactsInmem(), closeFunc(func() error { closed.Store(true); return nil }), nil
		},
		func(datastores.ContactsStore) *http.Server {
			return &http.Server{Addr: addr, ReadHeaderTimeout: time.Second}
		},
		slog.New(slog.DiscardHandler),
	)
	return svc, opened, closed
}

func TestServiceStopClosesStore(t *testing.T) {
	svc, opened, closed := testService(t, "127.0.0.1:0")
	errc := make(chan error, 1)
	go func() { errc <- svc.Run(context.Background()) }()
	<-opened

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	be.Err(t, svc.Stop(ctx), nil)
	be.True(t, closed.Load())
	be.Err(t, <-errc, nil)
}

func TestServiceStopBeforeRun(t *testing.T) {
	svc, opened, closed := testService(t, "127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	be.Err(t, svc.Stop(ctx), context.Canceled)

	be.Err(t, svc.Run(context.Background()), nil)
	select {
	case <-opened:
		t.Fatal("store opened after stop")
	default:
	}
	be.True(t, !closed.Load())
	be.Err(t, svc.Stop(context.Background()), nil)
}

func TestServiceListenFailureClosesStore(t *testing.T) {
	svc, _, closed := testService(t, "127.0.0.1:-1")
	err := svc.Run(context.Background())
	be.Err(t, err, "listen and serve")
	be.True(t, closed.Load())
}

func TestServiceOpenFailure(t *testing.T) {
	errDisk := errors.New("disk full")
	svc := NewService(
		func(context.Context) (datastores.ContactsStore, io.Closer, error) { return nil, nil, errDisk },
		func(datastores.ContactsStore) *http.Server { t.Fatal("server built without a store"); return nil },
		slog.New(slog.DiscardHandler),
	)
	err := svc.Run(context.Background())
	be.Err(t, err, errDisk)
	be.Err(t, err, "open store")
	be.Err(t, svc.Stop(context.Background()), nil)
}
