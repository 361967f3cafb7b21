package store

import (
	"context"
	"testing"
)

func TestInitDB_EmptyURL(t *testing.T) {
	if err := InitDB(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty database URL")
	}
	if GetPool() != nil {
		t.Error("pool should stay nil after failed init")
	}
}
