package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/shoevote/api/internal/adapters/handler/http"
	repo "github.com/shoevote/api/internal/adapters/repository/postgres"
	"github.com/shoevote/api/internal/core/domain"
	"github.com/shoevote/api/internal/core/services"
)

const testAdminSecret = "test-admin-secret"

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	itemRepo := repo.NewItemRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	rankRepo := repo.NewRankingRepository(db)
	exportRepo := repo.NewExportRepository(db)

	ledger := services.NewLedgerService(voteRepo)
	catalog := services.NewCatalogService(itemRepo, ledger)
	ranking := services.NewRankingService(rankRepo)
	export := services.NewExportService(exportRepo)
	sessions := services.NewSessionService("test-secret")

	router := handler.NewHandler(
		handler.NewSessionHandler(sessions),
		handler.NewVoteHandler(ledger),
		handler.NewRankingHandler(ranking),
		handler.NewCatalogHandler(catalog, ledger),
		handler.NewExportHandler(export),
		sessions,
		testAdminSecret,
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// newSessionCookie logs a self-declared voter in and returns the
// session cookie to attach to subsequent requests.
func (app *TestApp) newSessionCookie(t *testing.T, email string) *http.Cookie {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"email": email, "name": "Voter " + email})
	resp, err := app.Client.Post(app.Server.URL+"/api/session", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_token" {
			return cookie
		}
	}
	t.Fatal("session_token cookie not set")
	return nil
}

// addItems seeds the catalog through the admin API.
func (app *TestApp) addItems(t *testing.T, references ...string) []domain.Item {
	t.Helper()

	body, _ := json.Marshal(map[string][]string{"references": references})
	req, err := http.NewRequest(http.MethodPost, app.Server.URL+"/api/admin/items", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Secret", testAdminSecret)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var items []domain.Item
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	return items
}

// doVoter performs a request on behalf of a logged-in voter.
func (app *TestApp) doVoter(t *testing.T, cookie *http.Cookie, method, path string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.AddCookie(cookie)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

// doAdmin performs a request with the shared admin secret.
func (app *TestApp) doAdmin(t *testing.T, method, path string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, app.Server.URL+path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Admin-Secret", testAdminSecret)

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}
