package sse

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startedManager(t *testing.T) *Manager {
	t.Helper()

	manager := NewManager(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	t.Cleanup(func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
		defer shutdownCancel()
		require.NoError(t, manager.Shutdown(shutdownCtx))
		cancel()
	})

	return manager
}

func TestManager_ConnectDisconnect(t *testing.T) {
	manager := startedManager(t)

	client, err := manager.Connect()
	require.NoError(t, err)
	assert.Contains(t, client.ID, "sse-")
	assert.Equal(t, 1, manager.ClientCount())

	other, err := manager.Connect()
	require.NoError(t, err)
	assert.NotEqual(t, client.ID, other.ID)
	assert.Equal(t, 2, manager.ClientCount())

	manager.Disconnect(client.ID)
	assert.Equal(t, 1, manager.ClientCount())

	// Disconnecting twice is harmless.
	manager.Disconnect(client.ID)
	assert.Equal(t, 1, manager.ClientCount())

	manager.Disconnect(other.ID)
	assert.Equal(t, 0, manager.ClientCount())
}

func TestManager_EmitReachesClients(t *testing.T) {
	manager := startedManager(t)

	client, err := manager.Connect()
	require.NoError(t, err)
	defer manager.Disconnect(client.ID)

	manager.Emit(NewCatalogUpdatedEvent(3, 42))

	select {
	case event := <-client.EventChan:
		assert.Equal(t, EventCatalogUpdated, event.Type)
		data, ok := event.Data.(CatalogUpdatedData)
		require.True(t, ok)
		assert.Equal(t, uint64(3), data.Revision)
		assert.Equal(t, 42, data.TotalMovies)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for catalog update event")
	}
}

func TestManager_EmitWithoutClients(t *testing.T) {
	manager := startedManager(t)

	// No clients connected; events are simply discarded.
	manager.Emit(NewCatalogUpdatedEvent(1, 10))
	manager.Emit(NewHeartbeatEvent())

	assert.Equal(t, 0, manager.ClientCount())
}

func TestManager_ShutdownClosesClients(t *testing.T) {
	manager := NewManager(testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go manager.Start(ctx)

	client, err := manager.Connect()
	require.NoError(t, err)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	require.NoError(t, manager.Shutdown(shutdownCtx))

	select {
	case <-client.Done:
	case <-time.After(time.Second):
		t.Fatal("client was not closed on shutdown")
	}

	assert.Equal(t, 0, manager.ClientCount())

	// Emitting after shutdown must not panic.
	manager.Emit(NewHeartbeatEvent())

	// Shutdown is idempotent.
	require.NoError(t, manager.Shutdown(shutdownCtx))
}
