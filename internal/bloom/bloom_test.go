package bloom

import (
	"context"
	"testing"
)

func TestFilter_AddAndMayContain(t *testing.T) {
	f := NewInMemory(1024, 4)
	ctx := context.Background()

	if err := f.Add(ctx, []byte("badword")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	ok, err := f.MayContain(ctx, []byte("badword"))
	if err != nil {
		t.Fatalf("MayContain failed: %v", err)
	}
	if !ok {
		t.Error("expected MayContain true for an added item")
	}
}

func TestFilter_UnrelatedItemIsAbsent(t *testing.T) {
	f := NewInMemory(1<<16, 5)
	ctx := context.Background()

	if err := f.Add(ctx, []byte("badword")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	ok, err := f.MayContain(ctx, []byte("totally_unrelated_token"))
	if err != nil {
		t.Fatalf("MayContain failed: %v", err)
	}
	if ok {
		t.Error("expected MayContain false for an unrelated item (false positives should be rare with this bit count)")
	}
}
