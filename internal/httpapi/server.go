// Package httpapi is the thin HTTP façade (component L'): a go-chi router
// with one handler per resource, each decoding JSON, validating the
// request shape, calling exactly one repository/engine method, and mapping
// the returned typed error to a status code.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/openpecha/corpusgraph/internal/annotation"
	"github.com/openpecha/corpusgraph/internal/auth"
	"github.com/openpecha/corpusgraph/internal/category"
	"github.com/openpecha/corpusgraph/internal/graph"
	"github.com/openpecha/corpusgraph/internal/observability"
	"github.com/openpecha/corpusgraph/internal/repository/expression"
	"github.com/openpecha/corpusgraph/internal/repository/manifestation"
	"github.com/openpecha/corpusgraph/internal/repository/person"
	"github.com/openpecha/corpusgraph/internal/repository/segment"
	"github.com/openpecha/corpusgraph/internal/traversal"
)

// neo4jTx is a local alias so handler files that open their own
// transactions (annotation create/delete, each wrapping one annotation
// subsystem call) don't need to import the driver package directly.
type neo4jTx = neo4j.ManagedTransaction

// Server bundles every collaborator a handler might call. It holds no
// mutable state of its own; all state lives in the graph store and blobs.
type Server struct {
	Graph          *graph.Client
	Expressions    *expression.Repository
	Manifestations *manifestation.Repository
	Segments       *segment.Repository
	Persons        *person.Repository
	Categories     *category.Repository
	ApiKeys        *auth.Repository
	Segmentation   *annotation.Segmentation
	Pagination     *annotation.Pagination
	Alignment      *annotation.Alignment
	Notes          *annotation.Note
	Bibliography   *annotation.Bibliography
	Fetcher        *traversal.GraphFetcher
	Metrics        *observability.Metrics
	Logger         *zap.Logger
}

// client is a short accessor used by handlers that open their own write
// transaction spanning an annotation-subsystem call.
func (s *Server) client() *graph.Client { return s.Graph }

// NewRouter wires every route in spec §6 behind request logging, recovery,
// CORS and API-key authentication.
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-API-Key", "X-Application", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.health)

	r.Route("/v2", func(r chi.Router) {
		r.Use(auth.Middleware(s.ApiKeys))

		r.Route("/texts", func(r chi.Router) {
			r.Get("/", s.listExpressions)
			r.Post("/", s.createExpression)
			r.Get("/relations", s.allExpressionRelations)
			r.Get("/{id}", s.getExpression)
			r.Put("/{id}/title", s.updateExpressionTitle)
			r.Get("/{id}/instances", s.listManifestations)
			r.Post("/{id}/instances", s.createManifestation)
		})

		r.Route("/editions", func(r chi.Router) {
			r.Get("/{id}/content", s.getEditionContent)
			r.Get("/{id}/metadata", s.getEditionMetadata)
			r.Put("/{id}/metadata", s.updateEditionMetadata)
			r.Get("/{id}/related", s.editionRelated)
			r.Get("/{id}/segment-related", s.editionSegmentRelated)
		})

		r.Route("/annotations/{kind}", func(r chi.Router) {
			r.Post("/{id}", s.createAnnotation)
			r.Get("/{id}", s.getAnnotation)
			r.Delete("/{id}", s.deleteAnnotation)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.listCategories)
			r.Post("/", s.createCategory)
		})

		r.Route("/persons", func(r chi.Router) {
			r.Get("/", s.listPersons)
			r.Post("/", s.createPerson)
			r.Get("/{id}", s.getPerson)
			r.Delete("/{id}", s.deletePerson)
		})

		r.Route("/api-keys", func(r chi.Router) {
			r.Get("/", s.listApiKeys)
			r.Post("/", s.createApiKey)
			r.Delete("/{id}", s.revokeApiKey)
			r.Post("/{id}/rotate", s.rotateApiKey)
		})
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}
