package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"opencut-backend/application/ports"
	"opencut-backend/domain/config"
	"opencut-backend/domain/core/aggregates"
	"opencut-backend/domain/core/valueobjects"
	"opencut-backend/domain/versioning"
	pkgerrors "opencut-backend/pkg/errors"
)

// sessionState is the per-session mutable state the aggregate does not
// own: undo/redo history and the clip selection. The mutex serializes
// every operation touching the session's timeline.
type sessionState struct {
	mu        sync.Mutex
	history   *versioning.History
	selection *SelectionSet
}

// EditorService owns the open editing sessions. Each session pairs a
// timeline aggregate (held in the repository) with history and selection
// state. Every mutating operation runs snapshot-before-mutate: the
// pre-operation state is pushed onto the undo stack only after the
// operation succeeds, so failed operations leave both the timeline and
// the history untouched.
type EditorService struct {
	repo      ports.TimelineRepository
	snapshots ports.SnapshotStore
	eventBus  ports.EventBus
	cfg       func() *config.DomainConfig
	autosave  bool
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*sessionState
}

// NewEditorService creates the editor service. cfg is called per new
// session so a dynamic config reload applies to sessions opened after it.
// A nil snapshot store disables autosave and snapshot persistence.
func NewEditorService(
	repo ports.TimelineRepository,
	snapshots ports.SnapshotStore,
	eventBus ports.EventBus,
	cfg func() *config.DomainConfig,
	autosave bool,
	logger *zap.Logger,
) *EditorService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EditorService{
		repo:      repo,
		snapshots: snapshots,
		eventBus:  eventBus,
		cfg:       cfg,
		autosave:  autosave && snapshots != nil,
		logger:    logger,
		sessions:  make(map[string]*sessionState),
	}
}

// CreateSession opens a new editing session with an empty timeline
func (s *EditorService) CreateSession(ctx context.Context, name string) (*aggregates.Timeline, error) {
	cfg := s.cfg()
	timeline, err := aggregates.NewTimelineWithConfig(name, cfg)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, timeline); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[timeline.ID().String()] = &sessionState{
		history:   versioning.NewHistory(cfg.MaxUndoDepth),
		selection: NewSelectionSet(),
	}
	s.mu.Unlock()

	s.publishEvents(ctx, timeline)
	s.logger.Info("session created",
		zap.String("sessionID", timeline.ID().String()),
		zap.String("name", timeline.Name()),
	)
	return timeline, nil
}

// OpenFromSnapshot opens a session seeded from a persisted snapshot
func (s *EditorService) OpenFromSnapshot(ctx context.Context, snapshotID string) (*aggregates.Timeline, error) {
	if s.snapshots == nil {
		return nil, pkgerrors.NewInternal("no snapshot store configured", nil)
	}
	snap, err := s.snapshots.LoadSnapshot(ctx, snapshotID)
	if err != nil {
		return nil, err
	}

	cfg := s.cfg()
	timeline, err := aggregates.ReconstructTimeline(snap, cfg)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, timeline); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.sessions[timeline.ID().String()] = &sessionState{
		history:   versioning.NewHistory(cfg.MaxUndoDepth),
		selection: NewSelectionSet(),
	}
	s.mu.Unlock()

	s.logger.Info("session opened from snapshot",
		zap.String("sessionID", timeline.ID().String()),
		zap.String("snapshotID", snapshotID),
	)
	return timeline, nil
}

// CloseSession persists a final snapshot (when a store is configured) and
// discards the session with its history and selection.
func (s *EditorService) CloseSession(ctx context.Context, sessionID string) error {
	id, err := valueobjects.NewTimelineIDFromString(sessionID)
	if err != nil {
		return err
	}
	timeline, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.snapshots != nil {
		if err := s.snapshots.SaveSnapshot(ctx, timeline.Snapshot()); err != nil {
			s.logger.Warn("final snapshot save failed",
				zap.String("sessionID", sessionID),
				zap.Error(err),
			)
		}
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.logger.Info("session closed", zap.String("sessionID", sessionID))
	return nil
}

// GetTimeline returns the live aggregate for a session
func (s *EditorService) GetTimeline(ctx context.Context, sessionID string) (*aggregates.Timeline, error) {
	id, err := valueobjects.NewTimelineIDFromString(sessionID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// ListSessions returns all open timelines
func (s *EditorService) ListSessions(ctx context.Context) ([]*aggregates.Timeline, error) {
	return s.repo.List(ctx)
}

// SaveSnapshot persists the session's current state by explicit request
func (s *EditorService) SaveSnapshot(ctx context.Context, sessionID string) error {
	if s.snapshots == nil {
		return pkgerrors.NewInternal("no snapshot store configured", nil)
	}
	timeline, err := s.GetTimeline(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.snapshots.SaveSnapshot(ctx, timeline.Snapshot())
}

// Mutate runs op against the session's timeline under the session lock
// with snapshot-before-mutate semantics. The op is applied to a working
// copy reconstructed from the current snapshot, so a failure anywhere in
// a composed operation discards the copy and leaves the live timeline,
// the history, and the selection exactly as they were.
func (s *EditorService) Mutate(ctx context.Context, sessionID string, op func(*aggregates.Timeline) error) error {
	state, err := s.state(sessionID)
	if err != nil {
		return err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	timeline, err := s.GetTimeline(ctx, sessionID)
	if err != nil {
		return err
	}

	before := timeline.Snapshot()
	working, err := aggregates.ReconstructTimeline(before, s.cfg())
	if err != nil {
		return pkgerrors.Wrap(err, "current state could not be copied")
	}
	if err := op(working); err != nil {
		return err
	}

	state.history.Push(before)
	state.selection.Prune(func(ref valueobjects.SelectionRef) bool {
		_, ok := working.FindClip(ref.TrackID(), ref.ClipID())
		return ok
	})

	if err := s.repo.Save(ctx, working); err != nil {
		return err
	}
	s.publishEvents(ctx, working)
	s.maybeAutosave(ctx, working)
	return nil
}

// Undo restores the state before the most recent mutation
func (s *EditorService) Undo(ctx context.Context, sessionID string) error {
	return s.restore(ctx, sessionID, "undo")
}

// Redo reverses the most recent undo
func (s *EditorService) Redo(ctx context.Context, sessionID string) error {
	return s.restore(ctx, sessionID, "redo")
}

// CanUndo reports whether the session has undoable history
func (s *EditorService) CanUndo(sessionID string) bool {
	state, err := s.state(sessionID)
	if err != nil {
		return false
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.history.CanUndo()
}

// CanRedo reports whether the session has redoable history
func (s *EditorService) CanRedo(sessionID string) bool {
	state, err := s.state(sessionID)
	if err != nil {
		return false
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.history.CanRedo()
}

func (s *EditorService) restore(ctx context.Context, sessionID, direction string) error {
	state, err := s.state(sessionID)
	if err != nil {
		return err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	timeline, err := s.GetTimeline(ctx, sessionID)
	if err != nil {
		return err
	}

	current := timeline.Snapshot()
	var target aggregates.TimelineSnapshot
	if direction == "undo" {
		target, err = state.history.Undo(current)
	} else {
		target, err = state.history.Redo(current)
	}
	if err != nil {
		return err
	}

	if err := timeline.RestoreTracks(target, direction); err != nil {
		// The popped entry could not be restored; put the stacks back
		// without touching the redoable future.
		if direction == "undo" {
			state.history.RevertUndo(target)
		} else {
			state.history.RevertRedo(target)
		}
		return err
	}

	state.selection.Prune(func(ref valueobjects.SelectionRef) bool {
		_, ok := timeline.FindClip(ref.TrackID(), ref.ClipID())
		return ok
	})

	if err := s.repo.Save(ctx, timeline); err != nil {
		return err
	}
	s.publishEvents(ctx, timeline)
	return nil
}

// Select selects a clip: additive toggles it within the current
// selection, otherwise the selection is replaced. The clip must resolve
// on the live timeline.
func (s *EditorService) Select(ctx context.Context, sessionID string, trackID valueobjects.TrackID, clipID valueobjects.ClipID, additive bool) error {
	state, err := s.state(sessionID)
	if err != nil {
		return err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	timeline, err := s.GetTimeline(ctx, sessionID)
	if err != nil {
		return err
	}
	if _, ok := timeline.FindClip(trackID, clipID); !ok {
		return pkgerrors.NewNotFound("clip " + clipID.String())
	}
	ref, err := valueobjects.NewSelectionRef(trackID, clipID)
	if err != nil {
		return err
	}

	if additive {
		state.selection.Toggle(ref)
	} else {
		state.selection.Replace(ref)
	}
	return nil
}

// SetSelection replaces the selection wholesale. Refs that do not resolve
// on the live timeline are dropped rather than rejected: a marquee can
// legitimately sweep over stale UI state.
func (s *EditorService) SetSelection(ctx context.Context, sessionID string, refs []valueobjects.SelectionRef) error {
	state, err := s.state(sessionID)
	if err != nil {
		return err
	}
	state.mu.Lock()
	defer state.mu.Unlock()

	timeline, err := s.GetTimeline(ctx, sessionID)
	if err != nil {
		return err
	}

	resolved := make([]valueobjects.SelectionRef, 0, len(refs))
	for _, ref := range refs {
		if _, ok := timeline.FindClip(ref.TrackID(), ref.ClipID()); ok {
			resolved = append(resolved, ref)
		}
	}
	state.selection.Set(resolved)
	return nil
}

// ClearSelection empties the session's selection
func (s *EditorService) ClearSelection(sessionID string) error {
	state, err := s.state(sessionID)
	if err != nil {
		return err
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	state.selection.Clear()
	return nil
}

// Selected returns the session's selected refs in selection order
func (s *EditorService) Selected(sessionID string) ([]valueobjects.SelectionRef, error) {
	state, err := s.state(sessionID)
	if err != nil {
		return nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.selection.Refs(), nil
}

// DeleteSelected removes every selected clip. Refs that no longer resolve
// are skipped; the selection ends empty.
func (s *EditorService) DeleteSelected(ctx context.Context, sessionID string) error {
	refs, err := s.Selected(sessionID)
	if err != nil {
		return err
	}
	return s.Mutate(ctx, sessionID, func(tl *aggregates.Timeline) error {
		for _, ref := range refs {
			tl.RemoveClip(ref.TrackID(), ref.ClipID())
		}
		return nil
	})
}

// SplitSelected splits every selected clip whose span strictly contains
// the playhead. Clips the playhead misses are skipped, not errors.
func (s *EditorService) SplitSelected(ctx context.Context, sessionID string, playhead float64) error {
	refs, err := s.Selected(sessionID)
	if err != nil {
		return err
	}
	return s.Mutate(ctx, sessionID, func(tl *aggregates.Timeline) error {
		for _, ref := range refs {
			clip, ok := tl.FindClip(ref.TrackID(), ref.ClipID())
			if !ok || !clip.Range().ContainsStrict(playhead) {
				continue
			}
			if _, err := tl.SplitClip(ref.TrackID(), ref.ClipID(), playhead); err != nil {
				return err
			}
		}
		return nil
	})
}

// DuplicateSelected duplicates every selected clip
func (s *EditorService) DuplicateSelected(ctx context.Context, sessionID string) error {
	refs, err := s.Selected(sessionID)
	if err != nil {
		return err
	}
	return s.Mutate(ctx, sessionID, func(tl *aggregates.Timeline) error {
		for _, ref := range refs {
			if _, ok := tl.FindClip(ref.TrackID(), ref.ClipID()); !ok {
				continue
			}
			if _, err := tl.DuplicateClip(ref.TrackID(), ref.ClipID()); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *EditorService) state(sessionID string) (*sessionState, error) {
	s.mu.RLock()
	state, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerrors.NewNotFound("session " + sessionID)
	}
	return state, nil
}

func (s *EditorService) publishEvents(ctx context.Context, timeline *aggregates.Timeline) {
	if s.eventBus == nil {
		timeline.MarkEventsAsCommitted()
		return
	}
	pending := timeline.GetUncommittedEvents()
	if len(pending) == 0 {
		return
	}
	if err := s.eventBus.PublishBatch(ctx, pending); err != nil {
		s.logger.Warn("event publish failed",
			zap.String("timelineID", timeline.ID().String()),
			zap.Int("count", len(pending)),
			zap.Error(err),
		)
	}
	timeline.MarkEventsAsCommitted()
}

func (s *EditorService) maybeAutosave(ctx context.Context, timeline *aggregates.Timeline) {
	if !s.autosave {
		return
	}
	if err := s.snapshots.SaveSnapshot(ctx, timeline.Snapshot()); err != nil {
		s.logger.Warn("autosave failed",
			zap.String("timelineID", timeline.ID().String()),
			zap.Error(err),
		)
	}
}
