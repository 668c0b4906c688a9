package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	cperrors "github.com/coursepath/coursepath/pkg/errors"
	"github.com/coursepath/coursepath/pkg/pipeline"
	"github.com/coursepath/coursepath/pkg/progress"
)

const defaultServeAddr = ":8080"

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [catalog.json]",
		Short: "Serve the catalog pipeline over HTTP",
		Long: `Serve runs an HTTP API over a single catalog file.

Endpoints:
  GET    /healthz                        liveness check
  GET    /v1/courses                     full course list
  POST   /v1/layout                      compute a layout (pipeline options in the body)
  GET    /v1/render                      render an artifact (?format=svg&type=grid)
  POST   /v1/records                     create a student record
  GET    /v1/records/{id}                fetch a record
  PUT    /v1/records/{id}                replace a record
  DELETE /v1/records/{id}                delete a record
  GET    /v1/records/{id}/availability   classify every course for the record`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, args[0], addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, catalogPath, addr string) error {
	ctx := cmd.Context()

	if addr == "" {
		addr = c.Config.Server.Addr
	}
	if addr == "" {
		addr = defaultServeAddr
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	store, err := c.newStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	srv := &server{
		cli:         c,
		runner:      runner,
		store:       store,
		catalogPath: catalogPath,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(srv.loggerMiddleware)

	r.Get("/healthz", srv.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/courses", srv.handleCourses)
		r.Post("/layout", srv.handleLayout)
		r.Get("/render", srv.handleRender)
		r.Route("/records", func(r chi.Router) {
			r.Post("/", srv.handleCreateRecord)
			r.Get("/{id}", srv.handleGetRecord)
			r.Put("/{id}", srv.handlePutRecord)
			r.Delete("/{id}", srv.handleDeleteRecord)
			r.Get("/{id}/availability", srv.handleAvailability)
		})
	})

	c.Logger.Info("serving", "addr", addr, "catalog", catalogPath)
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newStore selects the record store: MongoDB when configured, in-memory
// otherwise.
func (c *CLI) newStore(cmd *cobra.Command) (progress.Store, error) {
	srvCfg := c.Config.Server
	if srvCfg.MongoURI == "" {
		c.Logger.Warn("no mongo_uri configured, records are kept in memory")
		return progress.NewMemoryStore(), nil
	}

	db := srvCfg.MongoDatabase
	if db == "" {
		db = appName
	}
	coll := srvCfg.MongoCollection
	if coll == "" {
		coll = "records"
	}
	return progress.NewMongoStore(cmd.Context(), srvCfg.MongoURI, db, coll)
}

// server bundles the HTTP handler dependencies.
type server struct {
	cli         *CLI
	runner      *pipeline.Runner
	store       progress.Store
	catalogPath string
}

// loggerMiddleware attaches a request-scoped logger to the context and logs
// each request on completion.
func (s *server) loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.cli.Logger.With("request_id", middleware.GetReqID(r.Context()))
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(withLogger(r.Context(), logger)))
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleCourses(w http.ResponseWriter, r *http.Request) {
	idx, _, err := s.runner.LoadIndex(r.Context(), pipeline.Options{CatalogPath: s.catalogPath})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idx.Courses())
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			writeError(w, cperrors.Wrap(cperrors.ErrCodeInvalidInput, err, "decode request"))
			return
		}
	}
	opts.CatalogPath = s.catalogPath
	opts.Logger = loggerFromContext(r.Context())

	idx, hash, err := s.runner.LoadIndex(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.SetLayoutDefaults()
	if err := pipeline.ValidateVizType(opts.VizType); err != nil {
		writeError(w, err)
		return
	}
	l, err := s.runner.ComputeLayout(r.Context(), idx, hash, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}

	opts := pipeline.Options{
		CatalogPath: s.catalogPath,
		VizType:     r.URL.Query().Get("type"),
		Formats:     []string{format},
		Logger:      loggerFromContext(r.Context()),
	}
	s.cli.Config.applyLayoutConfig(&opts)

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", artifactContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	rec := progress.NewRecord()
	if r.Body != nil && r.ContentLength != 0 {
		var body progress.Record
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, cperrors.Wrap(cperrors.ErrCodeInvalidRecord, err, "decode record"))
			return
		}
		body.ID = rec.ID
		rec = &body
	}
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	var rec progress.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, cperrors.Wrap(cperrors.ErrCodeInvalidRecord, err, "decode record"))
		return
	}
	rec.ID = chi.URLParam(r, "id")
	if err := s.store.Put(r.Context(), &rec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &rec)
}

func (s *server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	idx, _, err := s.runner.LoadIndex(r.Context(), pipeline.Options{CatalogPath: s.catalogPath})
	if err != nil {
		writeError(w, err)
		return
	}

	future, _ := strconv.ParseBool(r.URL.Query().Get("future"))
	states := progress.ClassifyAll(idx, rec, future)
	writeJSON(w, http.StatusOK, states)
}

func artifactContentType(format string) string {
	switch format {
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/json"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes onto HTTP statuses and writes a JSON body
// with the user-facing message.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch cperrors.GetCode(err) {
	case cperrors.ErrCodeInvalidInput, cperrors.ErrCodeInvalidCatalog, cperrors.ErrCodeInvalidRecord,
		cperrors.ErrCodeInvalidFormat, cperrors.ErrCodeInvalidVizType, cperrors.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	case cperrors.ErrCodeNotFound, cperrors.ErrCodeCourseNotFound, cperrors.ErrCodeRecordNotFound,
		cperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{
		"error": cperrors.UserMessage(err),
		"code":  string(cperrors.GetCode(err)),
	})
}
