// internal/app/state/store.go

// Package state owns every domain entity (groups, members, messages,
// polls, settings, students, fees, live lectures) in memory and is the
// sole arbiter of the domain invariants: one student per group, one
// pinned message per group, one poll vote per voter, monotonic fee
// status. Mutations are atomic under a single mutex; readers only ever
// see clones. After each mutation the full snapshot is mirrored to the
// storage adapter by a background persister (fire-and-forget, errors
// logged and swallowed; the in-memory state stays authoritative for
// the session).
package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dalemusser/coachhub/internal/app/storage"
	"github.com/dalemusser/coachhub/internal/domain/models"
	"go.uber.org/zap"
)

// ErrForbidden is returned when an admin-only mutation is invoked by a
// student actor. Domain-logic problems (unknown ids, malformed drafts)
// never error; they degrade to silent no-ops.
var ErrForbidden = errors.New("state: operation requires admin role")

// Actor identifies the caller of a mutation. Role checks happen here at
// the mutation boundary, not just in the client UI.
type Actor struct {
	ID   string
	Name string
	Role string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// Options tunes store behavior. Zero values get defaults.
type Options struct {
	// TypingTTL is how long a typing signal stays visible before the
	// keyed expiry timer removes it. Default 3s.
	TypingTTL time.Duration

	// SaveDebounce coalesces bursts of mutations into one snapshot
	// write. Default 250ms; zero keeps the default, negative disables
	// debouncing entirely (every mutation saves immediately).
	SaveDebounce time.Duration
}

// Store is the application state container.
type Store struct {
	mu   sync.Mutex
	data *models.Snapshot

	typing       map[string][]string
	typingTimers map[typingKey]*time.Timer
	typingTTL    time.Duration

	subs    map[int]chan Event
	nextSub int

	adapter  storage.Adapter
	debounce time.Duration
	log      *zap.Logger

	ready bool

	dirty    chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New builds a store mirroring to adapter. Call Load before serving and
// Start to begin background persistence.
func New(adapter storage.Adapter, logger *zap.Logger, opts Options) *Store {
	if opts.TypingTTL <= 0 {
		opts.TypingTTL = 3 * time.Second
	}
	if opts.SaveDebounce == 0 {
		opts.SaveDebounce = 250 * time.Millisecond
	}
	if opts.SaveDebounce < 0 {
		opts.SaveDebounce = 0
	}
	return &Store{
		data:         models.NewSnapshot(),
		typing:       map[string][]string{},
		typingTimers: map[typingKey]*time.Timer{},
		typingTTL:    opts.TypingTTL,
		subs:         map[int]chan Event{},
		adapter:      adapter,
		debounce:     opts.SaveDebounce,
		log:          logger,
		dirty:        make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
}

// Load rehydrates the snapshot from the adapter, seeding the default
// demo data set on first run. Mutations before Load are undefined
// behavior; the HTTP layer only mounts routes after Load succeeds.
func (s *Store) Load(ctx context.Context) error {
	snap, err := s.adapter.Load(ctx)
	switch {
	case err == nil:
		normalize(snap)
	case errors.Is(err, storage.ErrNotFound):
		s.log.Info("no snapshot found, seeding default data")
		snap = defaultSnapshot()
	default:
		return err
	}

	s.mu.Lock()
	s.data = snap
	s.ready = true
	s.mu.Unlock()
	return nil
}

// Ready reports whether Load has completed.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// View returns a deep copy of the current snapshot.
func (s *Store) View() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Start launches the background persister. Mutations mark the snapshot
// dirty; the persister coalesces marks within the debounce window and
// writes one envelope per burst.
func (s *Store) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop halts the persister and flushes a final snapshot so shutdown
// never loses the tail of the session.
func (s *Store) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })
	s.wg.Wait()
	return s.save(ctx)
}

func (s *Store) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case <-s.dirty:
			if s.debounce > 0 && !s.coalesce() {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := s.save(ctx); err != nil {
				s.log.Warn("snapshot save failed", zap.Error(err))
			}
			cancel()
		}
	}
}

// coalesce absorbs further dirty marks until the debounce window
// elapses. It returns false when the store is stopping.
func (s *Store) coalesce() bool {
	t := time.NewTimer(s.debounce)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return false
		case <-s.dirty:
		case <-t.C:
			return true
		}
	}
}

func (s *Store) save(ctx context.Context) error {
	s.mu.Lock()
	snap := s.data.Clone()
	s.mu.Unlock()
	return s.adapter.Save(ctx, snap)
}

// markDirty queues a persistence pass. Callers hold s.mu; the send is
// non-blocking because dirty has capacity one and a pending mark
// already covers this mutation.
func (s *Store) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

// normalize backfills nil collections on snapshots loaded from older
// envelopes so mutation code can assume allocated maps.
func normalize(snap *models.Snapshot) {
	if snap.Groups == nil {
		snap.Groups = []models.Group{}
	}
	if snap.Messages == nil {
		snap.Messages = map[string][]models.Message{}
	}
	if snap.PendingStudents == nil {
		snap.PendingStudents = []models.PendingStudent{}
	}
	if snap.GroupMembers == nil {
		snap.GroupMembers = map[string][]string{}
	}
	if snap.Students == nil {
		snap.Students = map[string]models.Student{}
	}
	if snap.Settings == nil {
		snap.Settings = map[string]models.GroupSettings{}
	}
	if snap.DisabledStudents == nil {
		snap.DisabledStudents = []string{}
	}
	if snap.GroupLives == nil {
		snap.GroupLives = map[string]models.LiveLecture{}
	}
	if snap.Fees == nil {
		snap.Fees = map[string]models.FeeRecord{}
	}
	if snap.Role == "" {
		snap.Role = models.RoleStudent
	}
}
