package services

import (
	"context"
	"sync"

	"ghana-rentals/config"
	"ghana-rentals/models"
	"ghana-rentals/storage"
	"ghana-rentals/utils"
)

// QueryParser turns a free-text question into structured entities.
type QueryParser interface {
	Parse(text string) models.QueryEntities
}

// SourceDiscoverer yields the URLs to scrape for a query. Deterministic for
// a given set of entities.
type SourceDiscoverer interface {
	DiscoverSources(entities models.QueryEntities) []string
}

// Extractor pulls raw records out of one source URL. It absorbs its own
// failures: a broken source yields an empty slice, never an error.
type Extractor interface {
	Extract(ctx context.Context, url string) []*models.RawRecord
}

// Pipeline sequences one query end to end: parse, discover, extract,
// normalize, persist, filter, aggregate. The raw writer and the dataset
// store may be nil; persistence then silently degrades.
type Pipeline struct {
	logger     *utils.Logger
	parser     QueryParser
	discoverer SourceDiscoverer
	extractor  Extractor
	rawWriter  storage.RawRecordWriter
	store      storage.DatasetStore
	normalizer *Normalizer
	aggregator *Aggregator

	maxConcurrency    int
	rateLimitMs       int
	referenceCurrency string
	exchangeRate      float64
}

// NewPipeline wires the collaborators into a runnable pipeline.
func NewPipeline(cfg *config.Config, logger *utils.Logger, parser QueryParser,
	discoverer SourceDiscoverer, extractor Extractor,
	rawWriter storage.RawRecordWriter, store storage.DatasetStore) *Pipeline {
	return &Pipeline{
		logger:            logger,
		parser:            parser,
		discoverer:        discoverer,
		extractor:         extractor,
		rawWriter:         rawWriter,
		store:             store,
		normalizer:        NewNormalizer(logger),
		aggregator:        NewAggregator(logger),
		maxConcurrency:    cfg.MaxConcurrency,
		rateLimitMs:       cfg.RateLimitMs,
		referenceCurrency: cfg.ReferenceCurrency,
		exchangeRate:      cfg.USDToGHSRate,
	}
}

// Run answers one query. Only an unusable query or total data exhaustion
// produce an error status; per-source and persistence failures degrade the
// run but never abort it.
func (p *Pipeline) Run(ctx context.Context, queryText string) *models.RunResult {
	p.logger.Info("[pipeline] Running query: %q", queryText)
	result := &models.RunResult{Status: models.StatusSuccess, Handles: make(map[string]string)}

	entities := p.parser.Parse(queryText)
	if entities.Location == nil && entities.Bedrooms == nil &&
		entities.PropertyType == models.PropertyTypeUnknown {
		result.Status = models.StatusError
		result.ErrorMessage = "Could not understand key details from your query. " +
			"Please mention a location, a bedroom count, or a property type."
		p.logger.Warn("[pipeline] %s", result.ErrorMessage)
		return result
	}

	sourceURLs := p.discoverer.DiscoverSources(entities)
	if len(sourceURLs) == 0 {
		result.Status = models.StatusError
		result.ErrorMessage = "Could not identify any online sources for your query."
		p.logger.Warn("[pipeline] %s", result.ErrorMessage)
		return result
	}

	rawRecords := p.extractAll(ctx, sourceURLs)
	p.logger.Info("[pipeline] Extraction finished — %d raw records from %d sources",
		len(rawRecords), len(sourceURLs))

	if len(rawRecords) > 0 {
		p.persistRaw(ctx, rawRecords, result)
	}

	dataset := p.normalizer.NormalizeAll(rawRecords)
	if len(dataset) > 0 {
		p.persistNormalized(ctx, dataset, result)
	} else {
		dataset = p.loadHistorical(ctx)
	}

	if len(dataset) == 0 {
		result.Status = models.StatusError
		result.ErrorMessage = "No rental data could be gathered for your query, " +
			"and no previously stored data was available."
		p.logger.Warn("[pipeline] %s", result.ErrorMessage)
		return result
	}

	filtered := FilterRecords(dataset, entities)
	p.logger.Info("[pipeline] %d of %d records match the query", len(filtered), len(dataset))

	result.Report = p.aggregator.Summarize(filtered, entities, p.referenceCurrency, p.exchangeRate)
	return result
}

// extractAll fans the source URLs out over a rate-limited worker pool.
// Sources fail independently; the order of the collected records follows
// source order so reruns are comparable.
func (p *Pipeline) extractAll(ctx context.Context, urls []string) []*models.RawRecord {
	perSource := make([][]*models.RawRecord, len(urls))
	var mu sync.Mutex

	pool := utils.NewWorkerPool(p.maxConcurrency, p.rateLimitMs)
	for i, u := range urls {
		i, u := i, u
		pool.Submit(func() {
			records := p.extractor.Extract(ctx, u)
			mu.Lock()
			perSource[i] = records
			mu.Unlock()
		})
	}
	pool.Wait()

	var all []*models.RawRecord
	for _, records := range perSource {
		all = append(all, records...)
	}
	return all
}

func (p *Pipeline) persistRaw(ctx context.Context, records []*models.RawRecord, result *models.RunResult) {
	if p.rawWriter != nil {
		if err := p.rawWriter.WriteRaw(records); err != nil {
			p.logger.Error("[pipeline] Raw CSV write failed: %v", err)
		}
	}
	if p.store == nil {
		return
	}
	handle, err := p.store.StoreRaw(ctx, records, storage.NamespaceRaw)
	if err != nil {
		p.logger.Error("[pipeline] Storing raw snapshot failed: %v", err)
		return
	}
	result.Handles[storage.NamespaceRaw] = handle
	p.logger.Info("[pipeline] Raw snapshot stored at %s", handle)
}

func (p *Pipeline) persistNormalized(ctx context.Context, records []*models.NormalizedRecord, result *models.RunResult) {
	if p.store == nil {
		return
	}
	handle, err := p.store.StoreNormalized(ctx, records, storage.NamespaceProcessed)
	if err != nil {
		p.logger.Error("[pipeline] Storing processed snapshot failed: %v", err)
		return
	}
	result.Handles[storage.NamespaceProcessed] = handle
	p.logger.Info("[pipeline] Processed snapshot stored at %s", handle)
}

// loadHistorical falls back to the most recently persisted dataset when the
// current extraction produced nothing.
func (p *Pipeline) loadHistorical(ctx context.Context) []*models.NormalizedRecord {
	if p.store == nil {
		return nil
	}
	records, err := p.store.LoadLatestNormalized(ctx, storage.NamespaceProcessed)
	if err != nil {
		p.logger.Error("[pipeline] Loading historical dataset failed: %v", err)
		return nil
	}
	if len(records) > 0 {
		p.logger.Info("[pipeline] Falling back to historical dataset (%d records)", len(records))
	}
	return records
}
