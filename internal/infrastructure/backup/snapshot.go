// Package backup writes JSON snapshots of account data and decorates a
// store so every account mutation triggers one.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"wardrobe.backend/internal/domain/entities"
	domainRepos "wardrobe.backend/internal/domain/repositories"
	"wardrobe.backend/pkg/logger"
	"wardrobe.backend/pkg/metrics"
)

// Snapshot is the persisted document. Password hashes never appear in it.
type Snapshot struct {
	GeneratedAt time.Time                  `json:"generatedAt"`
	Users       []*entities.User           `json:"users"`
	Preferences []*entities.UserPreference `json:"preferences"`
	Addresses   []*entities.UserAddress    `json:"addresses"`
}

// Sink receives the encoded snapshot
type Sink interface {
	Name() string
	Write(ctx context.Context, data []byte) error
}

// Writer reads account data from a store and pushes it to every sink.
type Writer struct {
	store   domainRepos.Store
	sinks   []Sink
	metrics *metrics.Metrics
	now     func() time.Time
	mu      sync.Mutex
}

func NewWriter(store domainRepos.Store, m *metrics.Metrics, sinks ...Sink) *Writer {
	return &Writer{
		store:   store,
		sinks:   sinks,
		metrics: m,
		now:     time.Now,
	}
}

// Build collects the current snapshot without writing it
func (w *Writer) Build(ctx context.Context) (*Snapshot, error) {
	users, err := w.store.Users().List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	prefs, err := w.store.Preferences().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	addresses, err := w.store.Addresses().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return &Snapshot{
		GeneratedAt: w.now().UTC(),
		Users:       users,
		Preferences: prefs,
		Addresses:   addresses,
	}, nil
}

// Write builds a snapshot and hands it to every sink. Writes are serialised;
// a failing sink does not stop the others.
func (w *Writer) Write(ctx context.Context) (err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	defer func() { w.metrics.SnapshotWritten(err) }()

	snap, err := w.Build(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	for _, sink := range w.sinks {
		if sinkErr := sink.Write(ctx, data); sinkErr != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", sink.Name(), sinkErr))
		}
	}
	if err == nil {
		logger.Debug(ctx, "Snapshot written",
			zap.Int("users", len(snap.Users)),
			zap.Int("sinks", len(w.sinks)),
		)
	}
	return err
}
