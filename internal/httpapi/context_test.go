package httpapi

import (
	"context"
	"testing"
	"time"
)

func TestJoinContextsCancelFirst(t *testing.T) {
	a, cancelA := context.WithCancel(context.Background())
	b := context.Background()
	joined, cancel := joinContexts(a, b)
	defer cancel()

	cancelA()
	select {
	case <-joined.Done():
	case <-time.After(time.Second):
		t.Fatalf("joined context not canceled when first parent canceled")
	}
}

func TestJoinContextsCancelSecond(t *testing.T) {
	a := context.Background()
	b, cancelB := context.WithCancel(context.Background())
	joined, cancel := joinContexts(a, b)
	defer cancel()

	cancelB()
	select {
	case <-joined.Done():
	case <-time.After(time.Second):
		t.Fatalf("joined context not canceled when second parent canceled")
	}
}

func TestSetBaseContextNilResets(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	SetBaseContext(ctx)
	cancel()
	SetBaseContext(nil)
	if daemonCtx.Err() != nil {
		t.Fatalf("nil reset should restore a live background context")
	}
}
