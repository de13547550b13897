package core

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func captureCrash(t *testing.T) (*bytes.Buffer, chan int) {
	t.Helper()
	var buf bytes.Buffer
	codes := make(chan int, 4)
	crashOutput = &buf
	crashExit = func(code int) { codes <- code }
	t.Cleanup(func() {
		crashOutput = os.Stderr
		crashExit = os.Exit
		SetCrashFinalizer(nil)
	})
	return &buf, codes
}

func TestHandleCrash_NilIsNoop(t *testing.T) {
	buf, codes := captureCrash(t)
	HandleCrash(nil)
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
	select {
	case <-codes:
		t.Error("Expected no exit for nil panic value")
	default:
	}
}

func TestHandleCrash_RunsFinalizerOnce(t *testing.T) {
	buf, codes := captureCrash(t)
	calls := 0
	SetCrashFinalizer(func() { calls++ })

	HandleCrash("boom")
	HandleCrash("again")

	if calls != 1 {
		t.Errorf("Expected finalizer to run once, ran %d times", calls)
	}
	if !strings.Contains(buf.String(), "CRASH DETECTED: boom") {
		t.Errorf("Expected crash banner, got %q", buf.String())
	}
	if code := <-codes; code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
}

func TestGo_RecoversPanic(t *testing.T) {
	buf, codes := captureCrash(t)
	Go(func() { panic("worker") })

	if code := <-codes; code != 1 {
		t.Errorf("Expected exit code 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "worker") {
		t.Errorf("Expected panic value in output, got %q", buf.String())
	}
}
