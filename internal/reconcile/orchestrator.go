package reconcile

import (
	"context"
	"errors"
	"fmt"

	"inventorysync/internal/feed"
	"inventorysync/internal/logger"
	"inventorysync/internal/models"

	"github.com/google/uuid"
)

// State is a stage of a sync run.
type State string

const (
	StateIdle        State = "idle"
	StateGating      State = "gating"
	StateFetching    State = "fetching"
	StateDecoding    State = "decoding"
	StateReconciling State = "reconciling"
	StateCommitting  State = "committing"
	StateIndexing    State = "indexing"
	StateDone        State = "done"
	StateDisabled    State = "disabled"
	StateFailed      State = "failed"
)

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateDisabled || s == StateFailed
}

// Report summarises one run. A Done report may still carry record, commit
// or index failures.
type Report struct {
	RunID          string
	State          State
	Records        int
	Created        int
	Updated        int
	Failed         int
	CategoryErrors int
	Adjustments    []models.SourceItem
	RecordErrors   []error
	CommitErr      error
	IndexErrors    map[string]error
	Err            error
}

// Dependencies are the collaborators of an Orchestrator.
type Dependencies struct {
	Settings   Settings
	Fetcher    FeedFetcher
	Products   ProductStore
	Categories CategoryStore
	Stock      StockStore
	Indexes    IndexRegistry
	IndexerIDs []string
	StoreID    int
	// RootCategoryID parents new categories; empty means the seeded root.
	RootCategoryID string
	Logger         *logger.Logger
}

type Orchestrator struct {
	settings   Settings
	fetcher    FeedFetcher
	reconciler *ProductReconciler
	committer  *StockCommitter
	refresher  *IndexRefresher
	indexerIDs []string
	logger     *logger.Logger
}

func NewOrchestrator(deps Dependencies) *Orchestrator {
	log := deps.Logger
	if log == nil {
		log = logger.New("info", "console")
	}

	resolver := NewCategoryResolver(deps.Categories, deps.StoreID, deps.RootCategoryID, log)
	return &Orchestrator{
		settings:   deps.Settings,
		fetcher:    deps.Fetcher,
		reconciler: NewProductReconciler(deps.Products, resolver, log),
		committer:  NewStockCommitter(deps.Stock, log),
		refresher:  NewIndexRefresher(deps.Indexes, log),
		indexerIDs: append([]string(nil), deps.IndexerIDs...),
		logger:     log,
	}
}

// Execute runs one sync to completion. Every failure ends up in the log;
// nothing is returned to the trigger.
func (o *Orchestrator) Execute(ctx context.Context) {
	o.Run(ctx)
}

// Run performs one sync and reports what happened.
func (o *Orchestrator) Run(ctx context.Context) *Report {
	report := &Report{
		RunID:       uuid.New().String(),
		State:       StateIdle,
		IndexErrors: map[string]error{},
	}
	log := o.logger.With("run_id", report.RunID)

	report.State = StateGating
	url, ok := o.gate(ctx, log, report)
	if !ok {
		report.State = StateDisabled
		return report
	}

	report.State = StateFetching
	resp, err := o.fetcher.Fetch(ctx, url)
	if err != nil {
		o.fail(log, report, err)
		return report
	}

	report.State = StateDecoding
	records, err := feed.Decode(resp)
	if err != nil {
		o.fail(log, report, err)
		return report
	}
	report.Records = len(records)
	log.Info("Fetched %d products from feed", len(records))

	report.State = StateReconciling
	batch := &StockBatch{}
	for _, entry := range records {
		record := entry.Product
		if entry.Err != nil {
			report.Failed++
			report.RecordErrors = append(report.RecordErrors, &RecordError{SKU: record.SKU, Op: "decode", Err: entry.Err})
			log.Error("Error processing product with SKU %s: %v", record.SKU, entry.Err)
			continue
		}

		outcome, err := o.reconcile(ctx, record)
		if err != nil {
			report.Failed++
			report.RecordErrors = append(report.RecordErrors, err)
			if errors.Is(err, ErrNotFound) {
				log.Warn("Product with SKU %s not found.", record.SKU)
			} else {
				log.Error("Error processing product with SKU %s: %v", record.SKU, err)
			}
			continue
		}

		if outcome.Created {
			report.Created++
		} else {
			report.Updated++
		}
		if outcome.CategoryErr != nil {
			report.CategoryErrors++
		}
		batch.Add(record)
	}
	report.Adjustments = batch.Items()

	report.State = StateCommitting
	if err := o.committer.Commit(ctx, batch.Items()); err != nil {
		log.Error("Error saving source items: %v", err)
		report.CommitErr = err
	}

	report.State = StateIndexing
	for id, err := range o.refresher.Refresh(ctx, o.indexerIDs) {
		if err != nil {
			report.IndexErrors[id] = err
		}
	}

	report.State = StateDone
	log.Info("Products synced successfully: %d created, %d updated, %d failed", report.Created, report.Updated, report.Failed)
	return report
}

// gate reads the enable flag and the feed url. A settings read error counts
// as disabled.
func (o *Orchestrator) gate(ctx context.Context, log *logger.Logger, report *Report) (string, bool) {
	enabled, err := o.settings.SyncEnabled(ctx)
	if err != nil {
		log.Error("Error reading sync settings: %v", err)
		report.Err = &FatalRunError{Stage: StateGating, Err: err}
		return "", false
	}
	if !enabled {
		log.Info("Sync is disabled.")
		report.Err = &FatalRunError{Stage: StateGating, Err: ErrSyncDisabled}
		return "", false
	}

	url, err := o.settings.FeedURL(ctx)
	if err != nil {
		log.Error("Error reading sync settings: %v", err)
		report.Err = &FatalRunError{Stage: StateGating, Err: err}
		return "", false
	}
	if url == "" {
		log.Info("Url API does not exist")
		report.Err = &FatalRunError{Stage: StateGating, Err: ErrFeedNotConfigured}
		return "", false
	}
	return url, true
}

func (o *Orchestrator) fail(log *logger.Logger, report *Report, err error) {
	report.Err = &FatalRunError{Stage: report.State, Err: err}
	report.State = StateFailed
	log.Error("Error syncing products: %v", err)
}

// reconcile isolates a panicking record the same way as a failing one.
func (o *Orchestrator) reconcile(ctx context.Context, record feed.RemoteProduct) (outcome *Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			err = &RecordError{SKU: record.SKU, Op: "reconcile", Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return o.reconciler.Reconcile(ctx, record)
}
