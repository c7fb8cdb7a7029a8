package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/storage"
)

func TestAPIServer_StartStop(t *testing.T) {
	logger := zap.NewNop()
	store := journal.NewStore(storage.NewMemory(0), "trades", logger)
	j := journal.New(store, journal.NewBuilder(nil), logger)
	api := NewAPIServer(0, j, logger)

	errc := api.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, api.Stop(ctx))

	select {
	case err, ok := <-errc:
		assert.False(t, ok, "unexpected listen error: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("server goroutine did not exit")
	}
}
