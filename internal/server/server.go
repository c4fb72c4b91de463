// Package server exposes statement preview and commit over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tally-home/tally/internal/buildinfo"
	"github.com/tally-home/tally/internal/dedup"
	"github.com/tally-home/tally/internal/importer"
	"github.com/tally-home/tally/internal/importlog"
	"github.com/tally-home/tally/internal/model"
	"github.com/tally-home/tally/internal/review"
	"github.com/tally-home/tally/internal/store"
)

// MaxUploadBytes caps statement uploads.
const MaxUploadBytes = 10 << 20

// Options configures a Server. Store and Parser are required.
type Options struct {
	Store  store.Store
	Parser importer.Parser
	Logger *slog.Logger
	// LogRoot, when set, is the data directory whose import log records
	// every preview and commit.
	LogRoot string
	Now     func() time.Time
}

// Server handles the /api routes.
type Server struct {
	store   store.Store
	parser  importer.Parser
	log     *slog.Logger
	logRoot string
	now     func() time.Time
}

// New creates a Server.
func New(opts Options) *Server {
	s := &Server{
		store:   opts.Store,
		parser:  opts.Parser,
		log:     opts.Logger,
		logRoot: opts.LogRoot,
		now:     opts.Now,
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/categories", s.handleCategories).Methods(http.MethodGet)
	r.HandleFunc("/api/import/preview", s.handlePreview).Methods(http.MethodPost)
	r.HandleFunc("/api/import/commit", s.handleCommit).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.respondError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
		"build":   buildinfo.String(),
	})
}

type categoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	var expense, income []categoryOption
	for _, c := range model.ExpenseCategories() {
		expense = append(expense, categoryOption{Value: string(c), Label: c.Label()})
	}
	for _, c := range model.IncomeCategories() {
		income = append(income, categoryOption{Value: string(c), Label: c.Label()})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"expense": expense,
		"income":  income,
	})
}

// readUpload returns the statement bytes from a multipart "file" field or
// the raw request body.
func readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)

	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "multipart/form-data" {
		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, fmt.Errorf("reading file field: %w", err)
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return "", nil, fmt.Errorf("reading upload: %w", err)
		}
		return header.Filename, data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return "", nil, fmt.Errorf("reading body: %w", err)
	}
	return r.URL.Query().Get("filename"), data, nil
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	name, data, err := readUpload(w, r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(bytes.TrimSpace(data)) == 0 {
		s.respondError(w, http.StatusBadRequest, "no file uploaded")
		return
	}

	parsed, err := s.parser.Parse(bytes.NewReader(data))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if parsed.Empty() {
		s.respondError(w, http.StatusUnprocessableEntity, "no valid records found")
		return
	}

	existingTx, existingInc, err := store.Existing(r.Context(), s.store)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	batch := dedup.Detect(parsed, existingTx, existingInc)
	counts := review.New(batch).Counts()

	s.log.Info("previewed statement", "file", name,
		"expenses", counts.Expenses.Total, "income", counts.Income.Total, "duplicates", batch.Duplicates())
	s.record(importlog.Entry{
		File:       name,
		Action:     importlog.ActionPreview,
		Expenses:   counts.Expenses.Total,
		Income:     counts.Income.Total,
		Duplicates: batch.Duplicates(),
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"transactions": batch.Expenses,
		"income":       batch.Income,
		"counts":       counts,
	})
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	var batch model.Batch
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxUploadBytes))
	if err := dec.Decode(&batch); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	for _, c := range batch.Expenses {
		if c.Selected && !c.Category.Valid() {
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("transaction %s: invalid category %q", c.ID, c.Category))
			return
		}
	}
	for _, c := range batch.Income {
		if c.Selected && !c.Category.Valid() {
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("income %s: invalid category %q", c.ID, c.Category))
			return
		}
	}

	txns, inc := review.New(batch).Accept(s.now())
	if len(txns)+len(inc) == 0 {
		s.respondError(w, http.StatusBadRequest, "nothing selected")
		return
	}
	if err := store.Insert(r.Context(), s.store, txns, inc); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.log.Info("committed statement", "expenses", len(txns), "income", len(inc))
	s.record(importlog.Entry{
		File:       r.URL.Query().Get("filename"),
		Action:     importlog.ActionCommit,
		Expenses:   len(txns),
		Income:     len(inc),
		Duplicates: batch.Duplicates(),
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"imported": map[string]int{
			"transactions": len(txns),
			"income":       len(inc),
		},
	})
}

func (s *Server) record(e importlog.Entry) {
	if s.logRoot == "" {
		return
	}
	e.Timestamp = s.now()
	if err := importlog.Append(s.logRoot, []importlog.Entry{e}); err != nil {
		s.log.Warn("writing import log", "error", err)
	}
}
