package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-home/tally/internal/importer"
	"github.com/tally-home/tally/internal/importlog"
	"github.com/tally-home/tally/internal/model"
	"github.com/tally-home/tally/internal/store/csvstore"
)

var fixedNow = time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	root   string
	store  *csvstore.Store
	server *Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	st := csvstore.New(root)
	n := 0
	parser := &importer.RBCParser{NewID: func() string {
		n++
		return fmt.Sprintf("cand-%d", n)
	}}
	return &testEnv{
		root:  root,
		store: st,
		server: New(Options{
			Store:   st,
			Parser:  parser,
			LogRoot: root,
			Now:     func() time.Time { return fixedNow },
		}),
	}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func statement(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("../../testdata/rbc_chequing.csv")
	require.NoError(t, err)
	return data
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestCategories(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	expense := body["expense"].([]any)
	income := body["income"].([]any)
	assert.Len(t, expense, len(model.ExpenseCategories()))
	assert.Len(t, income, len(model.IncomeCategories()))
	first := expense[0].(map[string]any)
	assert.Equal(t, "groceries", first["value"])
	assert.Equal(t, model.ExpenseGroceries.Label(), first["label"])
}

func TestPreview_RawBody(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/import/preview?filename=jan.csv", bytes.NewReader(statement(t)))
	req.Header.Set("Content-Type", "text/csv")

	rec, body := env.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, body["transactions"], 4)
	assert.Len(t, body["income"], 2)

	first := body["transactions"].([]any)[0].(map[string]any)
	assert.Equal(t, "cand-1", first["id"])
	assert.Equal(t, "COSTCO WHOLESALE", first["description"])
	assert.Equal(t, "groceries", first["category"])
	assert.Equal(t, "124.53", first["amount"])
	assert.Equal(t, true, first["selected"])
	assert.Equal(t, false, first["isDuplicate"])

	entries, err := importlog.Read(env.root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, importlog.ActionPreview, entries[0].Action)
	assert.Equal(t, "jan.csv", entries[0].File)
	assert.Equal(t, 4, entries[0].Expenses)
}

func TestPreview_Multipart(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "statement.csv")
	require.NoError(t, err)
	_, err = fw.Write(statement(t))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/import/preview", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec, body := env.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, body["transactions"], 4)

	entries, err := importlog.Read(env.root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "statement.csv", entries[0].File)
}

func TestPreview_FlagsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.store.InsertTransactions(context.Background(), []model.Transaction{{
		ID:          "existing-1",
		Amount:      decimal.RequireFromString("124.53"),
		Category:    model.ExpenseGroceries,
		Description: "costco wholesale",
		Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Currency:    model.CurrencyCAD,
		CreatedAt:   fixedNow,
		UpdatedAt:   fixedNow,
	}}))

	req := httptest.NewRequest(http.MethodPost, "/api/import/preview", bytes.NewReader(statement(t)))
	rec, body := env.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	costco := body["transactions"].([]any)[0].(map[string]any)
	assert.Equal(t, true, costco["isDuplicate"])
	assert.Equal(t, false, costco["selected"])

	counts := body["counts"].(map[string]any)["transactions"].(map[string]any)
	assert.EqualValues(t, 1, counts["duplicates"])
	assert.EqualValues(t, 3, counts["selected"])
}

func TestPreview_NoRecords(t *testing.T) {
	env := newTestEnv(t)
	header := "Account Type,Account Number,Transaction Date,Cheque Number,Description 1,Description 2,CAD$,USD$\n"
	rec, body := env.do(t, httptest.NewRequest(http.MethodPost, "/api/import/preview", strings.NewReader(header)))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "no valid records found", body["error"])
}

func TestPreview_EmptyBody(t *testing.T) {
	env := newTestEnv(t)
	rec, body := env.do(t, httptest.NewRequest(http.MethodPost, "/api/import/preview", strings.NewReader("")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no file uploaded", body["error"])
}

func TestCommit(t *testing.T) {
	env := newTestEnv(t)

	_, preview := env.do(t, httptest.NewRequest(http.MethodPost, "/api/import/preview", bytes.NewReader(statement(t))))
	txns := preview["transactions"].([]any)
	// The user recategorizes the first expense and drops the second.
	txns[0].(map[string]any)["category"] = "shopping"
	txns[1].(map[string]any)["selected"] = false

	payload, err := json.Marshal(map[string]any{"transactions": txns, "income": preview["income"]})
	require.NoError(t, err)

	rec, body := env.do(t, httptest.NewRequest(http.MethodPost, "/api/import/commit?filename=jan.csv", bytes.NewReader(payload)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	imported := body["imported"].(map[string]any)
	assert.EqualValues(t, 3, imported["transactions"])
	assert.EqualValues(t, 2, imported["income"])

	stored, err := env.store.Transactions(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "cand-1", stored[0].ID)
	assert.Equal(t, model.ExpenseShopping, stored[0].Category)
	assert.True(t, stored[0].CreatedAt.Equal(fixedNow))

	// Previewing the same file again now flags the committed rows.
	_, again := env.do(t, httptest.NewRequest(http.MethodPost, "/api/import/preview", bytes.NewReader(statement(t))))
	counts := again["counts"].(map[string]any)
	assert.EqualValues(t, 3, counts["transactions"].(map[string]any)["duplicates"])
	assert.EqualValues(t, 2, counts["income"].(map[string]any)["duplicates"])

	entries, err := importlog.Read(env.root)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, importlog.ActionCommit, entries[1].Action)
	assert.Equal(t, 3, entries[1].Expenses)
}

func TestCommit_Rejects(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		body   string
		status int
		errMsg string
	}{
		{"bad json", "{", http.StatusBadRequest, "invalid JSON"},
		{"nothing selected", `{"transactions":[],"income":[]}`, http.StatusBadRequest, "nothing selected"},
		{"bad category", `{"transactions":[{"id":"x","amount":"1","category":"salary","description":"d","date":"2024-01-01T00:00:00Z","currency":"CAD","selected":true}]}`, http.StatusBadRequest, "invalid category"},
		{"store validation", `{"income":[{"id":"x","amount":"1.001","source":"s","category":"gift","date":"2024-01-01T00:00:00Z","currency":"CAD","selected":true}]}`, http.StatusInternalServerError, "decimal-places"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := env.do(t, httptest.NewRequest(http.MethodPost, "/api/import/commit", strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, body["error"], tt.errMsg)
		})
	}
}

func TestRouting(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])

	rec, _ = env.do(t, httptest.NewRequest(http.MethodGet, "/api/import/preview", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListenAndServe_Shutdown(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- env.server.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
}
