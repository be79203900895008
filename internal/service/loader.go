package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"catalog/navigator/internal/catalog"
	"catalog/navigator/internal/client"
	"catalog/navigator/internal/domain/task"
	"catalog/navigator/internal/navigator"
	"catalog/navigator/internal/queue"
	"catalog/navigator/internal/state"

	"github.com/cespare/xxhash/v2"
	log "github.com/sirupsen/logrus"
)

// ErrStale is returned when the mount that asked for the tree went away while it was being fetched
var ErrStale = errors.New("navigator unmounted during fetch")

// Loader fetches the category tree and builds the catalog for it. The catalog
// of the last snapshot is reused as long as the payload does not change.
type Loader struct {
	source    client.Source
	parser    *client.TreePageParser
	tracker   state.SnapshotTracker
	publisher queue.Publisher
	opts      catalog.Options

	mu      sync.Mutex
	current *catalog.Catalog
	digest  string
}

func NewLoader(
	source client.Source,
	parser *client.TreePageParser,
	tracker state.SnapshotTracker,
	publisher queue.Publisher,
	opts catalog.Options,
) *Loader {
	if tracker == nil {
		tracker = state.NewMemorySnapshotTracker()
	}
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	return &Loader{
		source:    source,
		parser:    parser,
		tracker:   tracker,
		publisher: publisher,
		opts:      opts,
	}
}

// Load returns the catalog for the current payload of the source. Fetch and
// parse failures are logged and yield an empty catalog. A ticket that is no
// longer current yields ErrStale and nothing is built.
func (l *Loader) Load(ctx context.Context, ticket navigator.Ticket) (*catalog.Catalog, error) {
	payload, err := l.source.Fetch(ctx)
	if !ticket.Current() {
		log.Debugf("Discarding category payload from %s: navigator unmounted", l.source.Name())
		return nil, ErrStale
	}
	if err != nil {
		log.Errorf("❌ Failed to fetch categories from %s: %v", l.source.Name(), err)
		return catalog.Empty(l.opts), nil
	}

	digest := Digest(payload.Body)
	cat, changed, err := l.build(ticket, payload, digest)
	if err != nil || !changed {
		return cat, err
	}

	l.recordSnapshot(ctx, payload.Source, digest, cat)
	return cat, nil
}

// build returns the catalog for payload and whether it replaced the current
// one. The ticket is checked again once the lock is held, since another load
// may have kept it waiting past an unmount.
func (l *Loader) build(ticket navigator.Ticket, payload *client.Payload, digest string) (*catalog.Catalog, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !ticket.Current() {
		log.Debugf("Discarding category payload from %s: navigator unmounted", l.source.Name())
		return nil, false, ErrStale
	}
	if l.current != nil && l.digest == digest {
		log.Debugf("Category payload unchanged (%s), reusing catalog", digest)
		return l.current, false, nil
	}

	tree, stats, err := payload.Tree(l.parser)
	if err != nil {
		log.Errorf("❌ Failed to read categories from %s: %v", l.source.Name(), err)
		return catalog.Empty(l.opts), false, nil
	}

	cat := catalog.New(tree, l.opts)
	l.current = cat
	l.digest = digest
	log.Infof("✅ Loaded %d categories (%d roots) from %s", cat.Len(), len(tree), payload.Source)
	if stats.Dropped > 0 || stats.Duplicates > 0 {
		log.Warnf("⚠️ Category payload had %d unreadable nodes and %d duplicate ids", stats.Dropped, stats.Duplicates)
	}
	return cat, true, nil
}

// recordSnapshot announces a snapshot that differs from the last one recorded for the source
func (l *Loader) recordSnapshot(ctx context.Context, source, digest string, cat *catalog.Catalog) {
	previous, err := l.tracker.GetDigest(ctx, source)
	if err != nil {
		log.Warnf("⚠️ Failed to read snapshot digest: %v", err)
	}
	if previous == digest {
		return
	}

	if err := l.tracker.SetDigest(ctx, source, digest); err != nil {
		log.Warnf("⚠️ Failed to record snapshot digest: %v", err)
	}

	_, err = l.publisher.Publish(ctx, &task.CatalogSnapshotTask{
		Source:    source,
		Digest:    digest,
		NodeCount: cat.Len(),
		RootCount: len(cat.Tree()),
	})
	if err != nil {
		log.Warnf("⚠️ Failed to publish catalog snapshot: %v", err)
		return
	}
	log.Infof("🔄 Category snapshot changed for %s (%s)", source, digest)
}

// Digest fingerprints a raw payload
func Digest(body []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(body))
}
