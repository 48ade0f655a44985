package discovery

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"multipick/internal/domain"
	"multipick/internal/eventbus"
)

// DiscoveryService lists directory entries as selectable items
type DiscoveryService interface {
	StartScan(ctx context.Context, root string) error
	StopScan()
}

// discoveryService is the concrete implementation
type discoveryService struct {
	bus eventbus.EventBus

	// startMu serializes StartScan so a replaced scan has finished before
	// the next one begins
	startMu sync.Mutex
	lastSeq uint64

	mu         sync.Mutex
	scanRoot   string
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewDiscoveryService creates a new discovery service
func NewDiscoveryService(bus eventbus.EventBus) DiscoveryService {
	ds := &discoveryService{
		bus: bus,
	}

	// Subscribe to scan requests
	bus.Subscribe(eventbus.EventScanRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ScanRequestedEvent); ok {
			ds.startScan(context.Background(), event.Root, event.Seq)
		}
	})

	return ds
}

// StartScan lists root in the background and publishes the result. A scan
// that is still running is cancelled first.
func (ds *discoveryService) StartScan(ctx context.Context, root string) error {
	ds.startScan(ctx, root, 0)
	return nil
}

// startScan does the work of StartScan. A non-zero seq at or below the last
// one started marks a request that was overtaken and is dropped.
func (ds *discoveryService) startScan(ctx context.Context, root string, seq uint64) {
	ds.startMu.Lock()
	defer ds.startMu.Unlock()

	if seq != 0 {
		if seq <= ds.lastSeq {
			log.Printf("Dropping outdated scan request for %s", root)
			return
		}
		ds.lastSeq = seq
	}

	ds.mu.Lock()
	if ds.cancelFunc != nil {
		log.Printf("Cancelling scan of %s in favour of %s", ds.scanRoot, root)
		ds.cancelFunc()
	}
	ds.mu.Unlock()
	ds.wg.Wait()

	// Create cancellable context
	scanCtx, cancel := context.WithCancel(ctx)
	ds.mu.Lock()
	ds.scanRoot = root
	ds.cancelFunc = cancel
	ds.mu.Unlock()

	ds.bus.Publish(eventbus.ScanStartedEvent{Root: root})

	ds.wg.Add(1)
	go func() {
		defer ds.wg.Done()

		found := 0
		defer func() {
			ds.mu.Lock()
			ds.scanRoot = ""
			ds.cancelFunc = nil
			ds.mu.Unlock()
			cancel()

			ds.bus.Publish(eventbus.ScanCompletedEvent{Root: root, ItemsFound: found})
		}()

		items, err := Scan(scanCtx, root)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Printf("Error scanning directory %s: %v", root, err)
				ds.bus.Publish(eventbus.ErrorEvent{
					Message: fmt.Sprintf("Failed to scan %s", root),
					Err:     err,
				})
			}
			return
		}
		found = len(items)
		ds.bus.Publish(eventbus.ItemsScannedEvent{Root: root, Items: items})
	}()
}

// StopScan stops any ongoing scan
func (ds *discoveryService) StopScan() {
	ds.startMu.Lock()
	defer ds.startMu.Unlock()

	ds.mu.Lock()
	if ds.cancelFunc != nil {
		ds.cancelFunc()
	}
	ds.mu.Unlock()

	ds.wg.Wait()
}

// Scan lists the entries of root in name order. Entries whose metadata
// cannot be read are logged and skipped.
func Scan(ctx context.Context, root string) ([]domain.Item, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", abs, err)
	}

	items := make([]domain.Item, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := entry.Info()
		if err != nil {
			log.Printf("Skipping %s: %v", entry.Name(), err)
			continue
		}
		items = append(items, domain.Item{
			Path:    filepath.Join(abs, entry.Name()),
			Name:    entry.Name(),
			IsDir:   entry.IsDir(),
			Size:    info.Size(),
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
		})
	}
	return items, nil
}
