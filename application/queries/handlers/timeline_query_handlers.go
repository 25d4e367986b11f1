package handlers

import (
	"context"
	"fmt"

	"opencut-backend/application/ports"
	"opencut-backend/application/queries"
	"opencut-backend/application/queries/bus"
	"opencut-backend/application/queries/models"
	"opencut-backend/application/services"
	"opencut-backend/domain/core/valueobjects"
	"opencut-backend/pkg/export"
	pkgerrors "opencut-backend/pkg/errors"
)

// GetTimelineHandler resolves the full timeline read model
type GetTimelineHandler struct {
	editor *services.EditorService
}

// NewGetTimelineHandler creates the handler
func NewGetTimelineHandler(editor *services.EditorService) *GetTimelineHandler {
	return &GetTimelineHandler{editor: editor}
}

// Handle executes the query
func (h *GetTimelineHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetTimelineQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	timeline, err := h.editor.GetTimeline(ctx, q.SessionID)
	if err != nil {
		return nil, err
	}
	return models.NewTimelineView(timeline), nil
}

// GetTrackHandler resolves the read model of one track
type GetTrackHandler struct {
	editor *services.EditorService
}

func NewGetTrackHandler(editor *services.EditorService) *GetTrackHandler {
	return &GetTrackHandler{editor: editor}
}

func (h *GetTrackHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetTrackQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	timeline, err := h.editor.GetTimeline(ctx, q.SessionID)
	if err != nil {
		return nil, err
	}
	trackID, err := valueobjects.NewTrackIDFromString(q.TrackID)
	if err != nil {
		return nil, pkgerrors.NewValidation(err.Error())
	}
	track, err := timeline.GetTrack(trackID)
	if err != nil {
		return nil, err
	}
	return models.NewTrackView(track), nil
}

// GetDurationHandler resolves a session's duration figures
type GetDurationHandler struct {
	editor *services.EditorService
}

func NewGetDurationHandler(editor *services.EditorService) *GetDurationHandler {
	return &GetDurationHandler{editor: editor}
}

func (h *GetDurationHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetDurationQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	timeline, err := h.editor.GetTimeline(ctx, q.SessionID)
	if err != nil {
		return nil, err
	}
	return models.DurationView{
		TotalDuration:    timeline.TotalDuration(),
		PlaybackDuration: timeline.PlaybackDuration(),
	}, nil
}

// ListSessionsHandler lists open sessions
type ListSessionsHandler struct {
	editor *services.EditorService
}

func NewListSessionsHandler(editor *services.EditorService) *ListSessionsHandler {
	return &ListSessionsHandler{editor: editor}
}

func (h *ListSessionsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(queries.ListSessionsQuery); !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	timelines, err := h.editor.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]models.SessionSummary, 0, len(timelines))
	for _, tl := range timelines {
		summaries = append(summaries, models.NewSessionSummary(tl))
	}
	return summaries, nil
}

// GetSelectionHandler resolves a session's selection
type GetSelectionHandler struct {
	editor *services.EditorService
}

func NewGetSelectionHandler(editor *services.EditorService) *GetSelectionHandler {
	return &GetSelectionHandler{editor: editor}
}

func (h *GetSelectionHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetSelectionQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	refs, err := h.editor.Selected(q.SessionID)
	if err != nil {
		return nil, err
	}
	entries := make([]models.SelectionEntry, 0, len(refs))
	for _, ref := range refs {
		entries = append(entries, models.SelectionEntry{
			TrackID: ref.TrackID().String(),
			ClipID:  ref.ClipID().String(),
		})
	}
	return entries, nil
}

// GetHistoryStatusHandler reports undo/redo availability
type GetHistoryStatusHandler struct {
	editor *services.EditorService
}

func NewGetHistoryStatusHandler(editor *services.EditorService) *GetHistoryStatusHandler {
	return &GetHistoryStatusHandler{editor: editor}
}

func (h *GetHistoryStatusHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetHistoryStatusQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	return models.HistoryStatus{
		CanUndo: h.editor.CanUndo(q.SessionID),
		CanRedo: h.editor.CanRedo(q.SessionID),
	}, nil
}

// ExportEDLHandler renders a timeline as CMX3600
type ExportEDLHandler struct {
	editor    *services.EditorService
	frameRate float64
}

// NewExportEDLHandler creates the handler. frameRate is the project
// frame rate used for timecode math.
func NewExportEDLHandler(editor *services.EditorService, frameRate float64) *ExportEDLHandler {
	return &ExportEDLHandler{editor: editor, frameRate: frameRate}
}

func (h *ExportEDLHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ExportEDLQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	timeline, err := h.editor.GetTimeline(ctx, q.SessionID)
	if err != nil {
		return nil, err
	}
	return export.GenerateEDL(timeline, export.Options{
		Title:     q.Title,
		FrameRate: h.frameRate,
	}), nil
}

// ListSnapshotsHandler lists persisted snapshots
type ListSnapshotsHandler struct {
	snapshots ports.SnapshotStore
}

func NewListSnapshotsHandler(snapshots ports.SnapshotStore) *ListSnapshotsHandler {
	return &ListSnapshotsHandler{snapshots: snapshots}
}

func (h *ListSnapshotsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(queries.ListSnapshotsQuery); !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}
	if h.snapshots == nil {
		return nil, pkgerrors.NewInternal("no snapshot store configured", nil)
	}
	return h.snapshots.ListSnapshots(ctx)
}
