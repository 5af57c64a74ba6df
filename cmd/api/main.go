package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/openpecha/corpusgraph/internal/annotation"
	"github.com/openpecha/corpusgraph/internal/auth"
	"github.com/openpecha/corpusgraph/internal/blobstore"
	"github.com/openpecha/corpusgraph/internal/category"
	"github.com/openpecha/corpusgraph/internal/config"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/internal/httpapi"
	"github.com/openpecha/corpusgraph/internal/idgen"
	"github.com/openpecha/corpusgraph/internal/indexer"
	"github.com/openpecha/corpusgraph/internal/nomen"
	"github.com/openpecha/corpusgraph/internal/observability"
	"github.com/openpecha/corpusgraph/internal/relocation"
	"github.com/openpecha/corpusgraph/internal/repository/expression"
	"github.com/openpecha/corpusgraph/internal/repository/manifestation"
	"github.com/openpecha/corpusgraph/internal/repository/person"
	"github.com/openpecha/corpusgraph/internal/repository/segment"
	"github.com/openpecha/corpusgraph/internal/traversal"
	"github.com/openpecha/corpusgraph/internal/validate"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	logger, err := observability.NewLogger(cfg.Development)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)

	if cfg.OTLPEndpoint != "" {
		tp, err := observability.NewTracerProvider(ctx, cfg.OTLPEndpoint, "corpusgraph")
		if err != nil {
			logger.Fatal("failed to initialize tracer provider", zap.Error(err))
		}
		defer func() { _ = tp.Shutdown(ctx) }()
	}

	graphClient, err := graph.NewClient(ctx, graph.Config{
		URI: cfg.GraphURI, Username: cfg.GraphUsername, Password: cfg.GraphPassword, Database: cfg.GraphDatabase,
	}, logger)
	if err != nil {
		logger.Fatal("failed to connect to graph store", zap.Error(err))
	}
	defer func() { _ = graphClient.Close(ctx) }()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		logger.Fatal("failed to load AWS configuration", zap.Error(err))
	}
	blobs := blobstore.New(s3.NewFromConfig(awsCfg), cfg.BlobBucket, logger)

	var notifier *indexer.Notifier
	if cfg.IndexerEventBusName != "" {
		notifier = indexer.New(eventbridge.NewFromConfig(awsCfg), cfg.IndexerEventBusName, cfg.IndexerSource, logger)
	}

	catalog := graph.NewCatalog()
	ids := idgen.New()
	nomens := nomen.New(catalog, ids)
	checker := validate.New(catalog)
	relocator := relocation.New(catalog, metrics)

	segmentationEngine := annotation.NewSegmentation(catalog, ids, checker)
	paginationEngine := annotation.NewPagination(segmentationEngine)
	alignmentEngine := annotation.NewAlignment(segmentationEngine, catalog, ids, checker)
	noteEngine := annotation.NewNote(catalog, ids)
	bibliographyEngine := annotation.NewBibliography(catalog, ids)

	expressions := expression.New(graphClient, catalog, ids, nomens, checker)
	manifestations := manifestation.New(
		graphClient, catalog, ids, nomens, checker, blobs, relocator,
		segmentationEngine, paginationEngine, alignmentEngine, noteEngine, bibliographyEngine, notifier,
	)
	segments := segment.New(graphClient, catalog)
	persons := person.New(graphClient, catalog, ids, nomens)
	categories := category.New(graphClient, catalog, ids, nomens, checker)
	apiKeys := auth.New(graphClient, catalog, ids)
	fetcher := traversal.NewGraphFetcher(graphClient, catalog)

	router := httpapi.NewRouter(&httpapi.Server{
		Graph:          graphClient,
		Expressions:    expressions,
		Manifestations: manifestations,
		Segments:       segments,
		Persons:        persons,
		Categories:     categories,
		ApiKeys:        apiKeys,
		Segmentation:   segmentationEngine,
		Pagination:     paginationEngine,
		Alignment:      alignmentEngine,
		Notes:          noteEngine,
		Bibliography:   bibliographyEngine,
		Fetcher:        fetcher,
		Metrics:        metrics,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	log.Println("server stopped")
}
