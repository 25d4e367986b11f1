// Package di assembles the application graph.
package di

import (
	"context"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"opencut-backend/application/commands"
	"opencut-backend/application/commands/bus"
	commandhandlers "opencut-backend/application/commands/handlers"
	"opencut-backend/application/ports"
	"opencut-backend/application/queries"
	querybus "opencut-backend/application/queries/bus"
	queryhandlers "opencut-backend/application/queries/handlers"
	"opencut-backend/application/services"
	domaincfg "opencut-backend/domain/config"
	"opencut-backend/infrastructure/config"
	"opencut-backend/infrastructure/messaging"
	"opencut-backend/infrastructure/messaging/eventbridge"
	dynamostore "opencut-backend/infrastructure/persistence/dynamodb"
	"opencut-backend/infrastructure/persistence/memory"
	sqlitestore "opencut-backend/infrastructure/persistence/sqlite"
	"opencut-backend/infrastructure/thumbnails"
	"opencut-backend/interfaces/http/rest"
	"opencut-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Watcher    *config.ConfigWatcher
	Repo       ports.TimelineRepository
	Snapshots  ports.SnapshotStore
	EventBus   ports.EventBus
	Editor     *services.EditorService
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
	Collector  *observability.Collector
	Handler    http.Handler
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideConfigWatcher creates the dynamic limits watcher, or nil when
// no limits file is configured. The cleanup function stops the watcher.
func ProvideConfigWatcher(cfg *config.Config, logger *zap.Logger) (*config.ConfigWatcher, func(), error) {
	if cfg.DynamicConfigPath == "" {
		return nil, func() {}, nil
	}
	watcher, err := config.NewConfigWatcher(cfg.DynamicConfigPath, logger)
	if err != nil {
		return nil, nil, err
	}
	watcher.Start()
	return watcher, watcher.Stop, nil
}

// ProvideDomainConfig returns the provider the editor consults on every
// session create and mutation, so limit reloads take effect immediately
func ProvideDomainConfig(watcher *config.ConfigWatcher) func() *domaincfg.DomainConfig {
	if watcher == nil {
		return domaincfg.DefaultDomainConfig
	}
	return watcher.DomainConfig
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideTimelineRepository creates the live session store
func ProvideTimelineRepository() ports.TimelineRepository {
	return memory.NewTimelineRepository()
}

// ProvideSnapshotStore creates the configured snapshot backend, or nil
// when persistence is disabled. The cleanup function releases the
// backend's resources.
func ProvideSnapshotStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.SnapshotStore, func(), error) {
	switch cfg.SnapshotDriver {
	case config.SnapshotDriverSQLite:
		store, err := sqlitestore.NewSnapshotStore(cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case config.SnapshotDriverDynamoDB:
		awsCfg, err := ProvideAWSConfig(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		store := dynamostore.NewSnapshotStore(awsdynamodb.NewFromConfig(awsCfg), cfg.DynamoDBTable, logger)
		return store, func() {}, nil
	default:
		return nil, func() {}, nil
	}
}

// ProvideEventBus creates the local dispatcher, fanned out to
// EventBridge when enabled
func ProvideEventBus(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.EventBus, error) {
	dispatcher := messaging.NewEventDispatcher(logger)
	if !cfg.EnableEventBridge {
		return dispatcher, nil
	}

	awsCfg, err := ProvideAWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	publisher := eventbridge.NewPublisher(awseventbridge.NewFromConfig(awsCfg), cfg.EventBusName, logger)
	return messaging.NewFanoutBus(dispatcher, publisher), nil
}

// ProvideCollector creates the metrics collector, or nil when metrics
// are disabled
func ProvideCollector(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector("opencut")
}

// ProvideEditorService creates the editing service
func ProvideEditorService(
	repo ports.TimelineRepository,
	snapshots ports.SnapshotStore,
	eventBus ports.EventBus,
	domainCfg func() *domaincfg.DomainConfig,
	cfg *config.Config,
	logger *zap.Logger,
) *services.EditorService {
	autosave := cfg.Autosave && snapshots != nil
	return services.NewEditorService(repo, snapshots, eventBus, domainCfg, autosave, logger)
}

// ProvideThumbnailProvider creates the thumbnail client, or nil when no
// service URL is configured
func ProvideThumbnailProvider(cfg *config.Config, logger *zap.Logger) ports.ThumbnailProvider {
	if cfg.ThumbnailServiceURL == "" {
		return nil
	}
	return thumbnails.NewClient(cfg.ThumbnailServiceURL, logger)
}

// ProvideCommandBus creates a command bus with all handlers registered
func ProvideCommandBus(editor *services.EditorService, collector *observability.Collector, logger *zap.Logger) (*bus.CommandBus, error) {
	middleware := []bus.Middleware{bus.LoggingMiddleware(logger)}
	if collector != nil {
		middleware = append(middleware, bus.MetricsMiddleware(collector))
	}
	commandBus := bus.NewCommandBus(middleware...)

	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandler
	}{
		{&commands.CreateSessionCommand{}, commandhandlers.NewCreateSessionHandler(editor)},
		{&commands.OpenSessionCommand{}, commandhandlers.NewOpenSessionHandler(editor)},
		{&commands.CloseSessionCommand{}, commandhandlers.NewCloseSessionHandler(editor)},
		{&commands.SaveSnapshotCommand{}, commandhandlers.NewSaveSnapshotHandler(editor)},
		{&commands.RenameTimelineCommand{}, commandhandlers.NewRenameTimelineHandler(editor)},
		{&commands.AddTrackCommand{}, commandhandlers.NewAddTrackHandler(editor)},
		{&commands.RemoveTrackCommand{}, commandhandlers.NewRemoveTrackHandler(editor)},
		{&commands.RenameTrackCommand{}, commandhandlers.NewRenameTrackHandler(editor)},
		{&commands.ToggleTrackMuteCommand{}, commandhandlers.NewToggleTrackMuteHandler(editor)},
		{&commands.AddClipCommand{}, commandhandlers.NewAddClipHandler(editor)},
		{&commands.RemoveClipCommand{}, commandhandlers.NewRemoveClipHandler(editor)},
		{&commands.MoveClipCommand{}, commandhandlers.NewMoveClipHandler(editor)},
		{&commands.SetClipStartCommand{}, commandhandlers.NewSetClipStartHandler(editor)},
		{&commands.TrimClipCommand{}, commandhandlers.NewTrimClipHandler(editor)},
		{&commands.SplitClipCommand{}, commandhandlers.NewSplitClipHandler(editor)},
		{&commands.DuplicateClipCommand{}, commandhandlers.NewDuplicateClipHandler(editor)},
		{&commands.FreezeFrameCommand{}, commandhandlers.NewFreezeFrameHandler(editor)},
		{&commands.ToggleClipMuteCommand{}, commandhandlers.NewToggleClipMuteHandler(editor)},
		{&commands.RenameClipCommand{}, commandhandlers.NewRenameClipHandler(editor)},
		{&commands.UndoCommand{}, commandhandlers.NewUndoHandler(editor)},
		{&commands.RedoCommand{}, commandhandlers.NewRedoHandler(editor)},
		{&commands.SelectClipCommand{}, commandhandlers.NewSelectClipHandler(editor)},
		{&commands.SetSelectionCommand{}, commandhandlers.NewSetSelectionHandler(editor)},
		{&commands.ClearSelectionCommand{}, commandhandlers.NewClearSelectionHandler(editor)},
		{&commands.DeleteSelectedCommand{}, commandhandlers.NewDeleteSelectedHandler(editor)},
		{&commands.SplitSelectedCommand{}, commandhandlers.NewSplitSelectedHandler(editor)},
		{&commands.DuplicateSelectedCommand{}, commandhandlers.NewDuplicateSelectedHandler(editor)},
	}
	for _, reg := range registrations {
		if err := commandBus.Register(reg.cmd, reg.handler); err != nil {
			return nil, err
		}
	}
	return commandBus, nil
}

// ProvideQueryBus creates a query bus with all handlers registered
func ProvideQueryBus(
	editor *services.EditorService,
	snapshots ports.SnapshotStore,
	cfg *config.Config,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(logger)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetTimelineQuery{}, queryhandlers.NewGetTimelineHandler(editor)},
		{queries.GetTrackQuery{}, queryhandlers.NewGetTrackHandler(editor)},
		{queries.GetDurationQuery{}, queryhandlers.NewGetDurationHandler(editor)},
		{queries.ListSessionsQuery{}, queryhandlers.NewListSessionsHandler(editor)},
		{queries.GetSelectionQuery{}, queryhandlers.NewGetSelectionHandler(editor)},
		{queries.GetHistoryStatusQuery{}, queryhandlers.NewGetHistoryStatusHandler(editor)},
		{queries.ExportEDLQuery{}, queryhandlers.NewExportEDLHandler(editor, cfg.FrameRate)},
		{queries.ListSnapshotsQuery{}, queryhandlers.NewListSnapshotsHandler(snapshots)},
	}
	for _, reg := range registrations {
		if err := queryBus.Register(reg.query, reg.handler); err != nil {
			return nil, err
		}
	}
	return queryBus, nil
}

// ProvideRouter builds the HTTP handler
func ProvideRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	thumbnailProvider ports.ThumbnailProvider,
	collector *observability.Collector,
	cfg *config.Config,
	logger *zap.Logger,
) http.Handler {
	return rest.NewRouter(commandBus, queryBus, thumbnailProvider, collector, cfg.EnableCORS, logger).Setup()
}
