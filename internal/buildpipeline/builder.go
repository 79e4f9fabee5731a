package buildpipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/brightlane/fuzzyindex/internal/catalog"
	"github.com/brightlane/fuzzyindex/internal/engine"
	"github.com/brightlane/fuzzyindex/internal/facets"
	"github.com/brightlane/fuzzyindex/internal/ngram"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BuildRequest names the catalog export to build and where to publish the
// result.
type BuildRequest struct {
	CatalogKey string
	GramWidth  int
	CutoffPct  float64
}

// Builder runs one end-to-end build: fetch catalog from S3, build the
// index, serialize it, upload it back to S3, and publish a completion
// notification.
type Builder struct {
	source      *CatalogSource
	notifier    *Notifier
	indexBucket string
	log         *zap.Logger
}

// NewBuilder constructs a Builder from its collaborators.
func NewBuilder(source *CatalogSource, notifier *Notifier, indexBucket string, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{source: source, notifier: notifier, indexBucket: indexBucket, log: log}
}

// Run executes one build and returns the generated build id.
func (b *Builder) Run(ctx context.Context, req BuildRequest) (string, error) {
	buildID := uuid.NewString()
	log := b.log.With(zap.String("build_id", buildID), zap.String("catalog_key", req.CatalogKey))
	log.Info("build started")

	raw, err := b.source.Fetch(ctx, req.CatalogKey)
	if err != nil {
		log.Error("catalog fetch failed", zap.Error(err))
		return buildID, err
	}

	idx := buildIndex(raw, req.GramWidth, req.CutoffPct)
	data := engine.SerializeAll(idx)

	indexKey := fmt.Sprintf("indexes/%s.fzx", buildID)
	if err := b.source.UploadIndex(ctx, b.indexBucket, indexKey, data); err != nil {
		log.Error("index upload failed", zap.Error(err))
		return buildID, err
	}

	event := BuildCompletedEvent{
		BuildID:      buildID,
		IndexBucket:  b.indexBucket,
		IndexKey:     indexKey,
		ProductCount: idx.Container.Len(),
		CompletedAt:  time.Now(),
	}
	if err := b.notifier.Publish(ctx, event); err != nil {
		log.Error("build notification failed", zap.Error(err))
		return buildID, err
	}

	log.Info("build completed", zap.Int("product_count", event.ProductCount))
	return buildID, nil
}

// buildIndex runs the full in-memory pipeline: container, gram tree, and
// (for now) empty facet indexes — category/tag/order registration is a
// catalog-specific ingestion concern left to callers that have that
// metadata, which the generic catalog export this pipeline consumes does
// not carry.
func buildIndex(raw []catalog.RawProduct, gramWidth int, cutoffPct float64) *engine.Index {
	container := catalog.BuildContainer(raw)

	builder := ngram.NewBuilder(gramWidth)
	for _, p := range container.Products {
		grams := catalog.GramFeed(p, p.Vendor(container.Vendors))
		builder.Feed(int32(p.SerializationID), grams)
	}
	gram := ngram.Freeze(builder, container.Len(), cutoffPct)

	return &engine.Index{
		Container:  container,
		Gram:       gram,
		Categories: facets.NewCategoryIndex(nil),
		Tags:       facets.NewTagIndex(nil),
		Orders:     facets.NewOrderBuilder(container.Len()).Freeze(),
	}
}
