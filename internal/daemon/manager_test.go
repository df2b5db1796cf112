// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

// fakeServer blocks in Start until Shutdown, or fails immediately with startErr.
type fakeServer struct {
	startErr    error
	shutdownErr error

	once     sync.Once
	stopped  chan struct{}
	runOnce  sync.Once
	running  chan struct{}
	mu       sync.Mutex
	shutdown int
}

func newFakeServer() *fakeServer {
	return &fakeServer{stopped: make(chan struct{}), running: make(chan struct{})}
}

func (f *fakeServer) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	f.runOnce.Do(func() { close(f.running) })
	<-f.stopped
	return nil
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.mu.Lock()
	f.shutdown++
	f.mu.Unlock()
	f.once.Do(func() { close(f.stopped) })
	return f.shutdownErr
}

func (f *fakeServer) shutdownCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shutdown
}

func TestNewManager_MissingServer(t *testing.T) {
	_, err := NewManager(nil, time.Second)
	if !errors.Is(err, ErrMissingServer) {
		t.Fatalf("NewManager() error = %v, want %v", err, ErrMissingServer)
	}
}

func TestManager_StartStop_OK(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv := newFakeServer()
	mgr, err := NewManager(srv, 2*time.Second)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- mgr.Start(ctx)
	}()

	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("Start() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after context cancellation")
	}
	if got := srv.shutdownCalls(); got != 1 {
		t.Errorf("server shutdown calls = %d, want 1", got)
	}
}

func TestManager_StartTwice(t *testing.T) {
	srv := newFakeServer()
	mgr, err := NewManager(srv, time.Second)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- mgr.Start(ctx) }()

	select {
	case <-srv.running:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}
	if err := mgr.Start(ctx); !errors.Is(err, ErrManagerAlreadyStarted) {
		t.Fatalf("second Start() error = %v, want %v", err, ErrManagerAlreadyStarted)
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Start() error = %v", err)
	}
}

func TestManager_ServerFailure(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	boom := errors.New("bind: address already in use")
	srv := newFakeServer()
	srv.startErr = boom

	mgr, err := NewManager(srv, time.Second)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	err = mgr.Start(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Start() error = %v, want %v", err, boom)
	}
	if got := srv.shutdownCalls(); got != 1 {
		t.Errorf("server shutdown calls = %d, want 1", got)
	}
}

func TestManager_ShutdownNotStarted(t *testing.T) {
	mgr, err := NewManager(newFakeServer(), time.Second)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if err := mgr.Shutdown(context.Background()); !errors.Is(err, ErrManagerNotStarted) {
		t.Errorf("Shutdown() error = %v, want %v", err, ErrManagerNotStarted)
	}
}

func TestManager_ShutdownHooks_LIFO(t *testing.T) {
	srv := newFakeServer()
	mgr, err := NewManager(srv, time.Second)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		mgr.RegisterShutdownHook(name, func(context.Context) error {
			order = append(order, name)
			return nil
		})
	}
	mgr.RegisterShutdownHook("failing", func(context.Context) error {
		return errors.New("flush failed")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = mgr.Start(ctx)
	if err == nil || !strings.Contains(err.Error(), "hook failing: flush failed") {
		t.Fatalf("Start() error = %v, want failing hook error", err)
	}

	want := "third,second,first"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("hook order = %s, want %s", got, want)
	}

	// A second shutdown is a no-op.
	if err := mgr.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown() error = %v", err)
	}
	if got := srv.shutdownCalls(); got != 1 {
		t.Errorf("server shutdown calls = %d, want 1", got)
	}
}
