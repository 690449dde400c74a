package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/catalog-admin/internal/lifecycle"
)

func TestStartupReadiness(t *testing.T) {
	lc := lifecycle.New()

	if lc.Ready() {
		t.Error("Ready() = true before startup")
	}

	var ran atomic.Bool
	lc.OnStartup(func() {
		time.Sleep(10 * time.Millisecond)
		ran.Store(true)
	})

	lc.WaitForStartup()

	if !ran.Load() {
		t.Error("startup function did not run")
	}
	if !lc.Ready() {
		t.Error("Ready() = false after WaitForStartup")
	}
}

func TestShutdownDrains(t *testing.T) {
	lc := lifecycle.New()

	var drained atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		drained.Store(true)
	})

	lc.WaitForStartup()

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !drained.Load() {
		t.Error("shutdown function did not drain")
	}
	if lc.Ready() {
		t.Error("Ready() = true after shutdown")
	}
}

func TestShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()

	block := make(chan struct{})
	lc.OnShutdown(func() {
		<-block
	})

	err := lc.Shutdown(20 * time.Millisecond)
	if err == nil {
		t.Error("Shutdown() error = nil, want timeout error")
	}
	close(block)
}

func TestContextCancelledOnShutdown(t *testing.T) {
	lc := lifecycle.New()
	lc.Shutdown(time.Second)

	select {
	case <-lc.Context().Done():
	default:
		t.Error("Context() not cancelled after Shutdown")
	}
}
