package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"notesai/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoSummarizer struct{}

func (echoSummarizer) Summarize(_ context.Context, text string) string { return "summary of " + text }

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "router-secret", AccessTokenTTL: time.Minute}
}

func TestHealthz(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	h := Setup(db, testConfig(), echoSummarizer{})

	mock.ExpectPing()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	mock.ExpectPing().WillReturnError(errors.New("down"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := Setup(db, testConfig(), echoSummarizer{})

	routes := []struct{ method, path string }{
		{http.MethodGet, "/notes"},
		{http.MethodPost, "/notes"},
		{http.MethodPut, "/notes/1"},
		{http.MethodDelete, "/notes/1"},
		{http.MethodPost, "/notes/1/summarize"},
	}
	for _, rt := range routes {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(rt.method, rt.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", rt.method, rt.path)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	}
}

func TestSignupThenListNotes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	h := Setup(db, testConfig(), echoSummarizer{})

	userCols := []string{"id", "email", "hashed_password", "created_at"}
	selectUser := regexp.QuoteMeta(`SELECT id, email, hashed_password, created_at FROM users WHERE email = $1`)

	mock.ExpectQuery(selectUser).WithArgs("alice@example.com").WillReturnRows(sqlmock.NewRows(userCols))
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(5), time.Now()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/signup",
		strings.NewReader(`{"email":"alice@example.com","password":"pw"}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))

	mock.ExpectQuery(selectUser).WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow(int64(5), "alice@example.com", "hash", time.Now()))
	mock.ExpectQuery(`FROM notes WHERE owner_id = \$1`).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "title", "content", "summary", "created_at", "updated_at"}))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
