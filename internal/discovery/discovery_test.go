package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multipick/internal/eventbus"
)

func makeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("bb"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".hidden"), nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "a-dir"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a-dir", "nested"), nil, 0644))
	return root
}

func TestScanListsEntriesInNameOrder(t *testing.T) {
	root := makeTree(t)

	items, err := Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, ".hidden", items[0].Name)
	assert.True(t, items[0].IsDotfile())
	assert.Equal(t, "a-dir/", items[1].DisplayName())
	assert.True(t, items[1].IsDir)
	assert.Equal(t, "b.txt", items[2].Name)
	assert.Equal(t, int64(2), items[2].Size)
	assert.Equal(t, filepath.Join(root, "b.txt"), items[2].Path)
}

func TestScanMissingDirectory(t *testing.T) {
	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestScanCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, makeTree(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanRequestPublishesItems(t *testing.T) {
	root := makeTree(t)
	bus := eventbus.New()
	defer bus.Close()

	scanned := make(chan eventbus.ItemsScannedEvent, 1)
	bus.Subscribe(eventbus.EventItemsScanned, func(e eventbus.DomainEvent) {
		scanned <- e.(eventbus.ItemsScannedEvent)
	})
	ds := NewDiscoveryService(bus)
	defer ds.StopScan()

	bus.Publish(eventbus.ScanRequestedEvent{Root: root})

	select {
	case ev := <-scanned:
		assert.Equal(t, root, ev.Root)
		assert.Len(t, ev.Items, 3)
	case <-time.After(2 * time.Second):
		t.Fatal("no ItemsScanned event")
	}
}

func TestScanErrorPublishesErrorEvent(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	errs := make(chan eventbus.ErrorEvent, 1)
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		errs <- e.(eventbus.ErrorEvent)
	})
	ds := NewDiscoveryService(bus)

	require.NoError(t, ds.StartScan(context.Background(), filepath.Join(t.TempDir(), "missing")))
	ds.StopScan()

	select {
	case ev := <-errs:
		assert.Error(t, ev.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("no Error event")
	}
}

func TestBackToBackScanRequestsListLatestRoot(t *testing.T) {
	first := makeTree(t)
	second := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(second, "only.txt"), nil, 0644))

	bus := eventbus.New()
	defer bus.Close()

	scanned := make(chan eventbus.ItemsScannedEvent, 4)
	bus.Subscribe(eventbus.EventItemsScanned, func(e eventbus.DomainEvent) {
		scanned <- e.(eventbus.ItemsScannedEvent)
	})
	ds := NewDiscoveryService(bus)
	defer ds.StopScan()

	bus.Publish(eventbus.ScanRequestedEvent{Root: first, Seq: 1})
	bus.Publish(eventbus.ScanRequestedEvent{Root: second, Seq: 2})

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-scanned:
			if ev.Root != second {
				continue
			}
			require.Len(t, ev.Items, 1)
			assert.Equal(t, "only.txt", ev.Items[0].Name)
			return
		case <-deadline:
			t.Fatal("latest root was never listed")
		}
	}
}

func TestStartScanReplacesRunningScan(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	completed := make(chan string, 4)
	bus.Subscribe(eventbus.EventScanCompleted, func(e eventbus.DomainEvent) {
		completed <- e.(eventbus.ScanCompletedEvent).Root
	})
	ds := NewDiscoveryService(bus)

	first, second := makeTree(t), makeTree(t)
	require.NoError(t, ds.StartScan(context.Background(), first))
	require.NoError(t, ds.StartScan(context.Background(), second))
	ds.StopScan()

	seen := map[string]bool{}
	deadline := time.After(2 * time.Second)
	for !seen[second] {
		select {
		case root := <-completed:
			seen[root] = true
		case <-deadline:
			t.Fatal("second scan never completed")
		}
	}
}

func TestOutdatedScanRequestIsDropped(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	started := make(chan string, 4)
	bus.Subscribe(eventbus.EventScanStarted, func(e eventbus.DomainEvent) {
		started <- e.(eventbus.ScanStartedEvent).Root
	})
	ds := NewDiscoveryService(bus).(*discoveryService)

	newer, older := makeTree(t), makeTree(t)
	ds.startScan(context.Background(), newer, 2)
	ds.startScan(context.Background(), older, 1)
	ds.StopScan()

	select {
	case root := <-started:
		assert.Equal(t, newer, root)
	case <-time.After(2 * time.Second):
		t.Fatal("no ScanStarted event")
	}
	select {
	case root := <-started:
		t.Fatalf("unexpected scan of %s", root)
	case <-time.After(200 * time.Millisecond):
	}
	assert.Equal(t, uint64(2), ds.lastSeq)
}
