package commands

import (
	"os"
	"testing"
	"time"
)

func TestSignalContextCancelsOnInterrupt(t *testing.T) {
	ctx, stop := signalContext()
	defer stop()

	proc, err := os.FindProcess(os.Getpid())
	if err != nil {
		t.Fatalf("FindProcess() error = %v", err)
	}
	if err := proc.Signal(os.Interrupt); err != nil {
		t.Fatalf("Signal() error = %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context not cancelled on interrupt")
	}
}
