package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	web "habitloop/internal/adapters/http"
	"habitloop/internal/adapters/http/middleware"
	"habitloop/internal/adapters/storage"
	catalogStore "habitloop/internal/adapters/storage/catalog"
	progressStore "habitloop/internal/adapters/storage/progress"
	revisionStore "habitloop/internal/adapters/storage/revision"
	"habitloop/internal/application/orchestrators"
	"habitloop/internal/domain/unlock"
)

const (
	testPremiumCode = "TEST-PREMIUM"
	testAdminCode   = "TEST-ADMIN"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
	Stores  *web.Stores
	tmpDir  string
}

// newTestApp creates a fully wired app with a temp SQLite DB and tasks file
// and starts an HTTP server. Skipped unless HABITLOOP_BROWSER_TESTS=1 so the
// suite passes on machines without the Playwright browsers installed.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	if os.Getenv("HABITLOOP_BROWSER_TESTS") != "1" {
		t.Skip("set HABITLOOP_BROWSER_TESTS=1 to run browser tests")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := storage.MigrateDB(db, dbPath); err != nil {
		t.Fatalf("failed to migrate test DB: %v", err)
	}

	catStore := catalogStore.NewFileStore(filepath.Join(tmpDir, "tasks.json"))
	stores := &web.Stores{
		ProgressStore: progressStore.NewSQLiteStore(db),
		CatalogStore:  catStore,
		RevisionStore: revisionStore.NewSQLiteStore(db),
	}

	// Seed the default two-week program
	seedDeps := orchestrators.SeedCatalogDeps{CatalogStore: catStore}
	if err := orchestrators.ExecuteSeedCatalog(context.Background(), seedDeps); err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	mux := web.NewMux(web.Options{
		StaticDir:   findStaticDir(t),
		SessionKey:  []byte("0123456789abcdef0123456789abcdef"),
		CSRFKey:     []byte("fedcba9876543210fedcba9876543210"),
		PremiumCode: unlock.Secret{Plain: testPremiumCode},
		AdminCode:   unlock.Secret{Plain: testAdminCode},
	}, stores)
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
		Stores:  stores,
		tmpDir:  tmpDir,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login identifies the browser session with the given email.
func (a *testApp) login(t *testing.T, page playwright.Page, email string) {
	t.Helper()
	_, err := page.Goto(a.BaseURL + "/login")
	if err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=email]").Fill(email); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect home: %v", err)
	}
}

// findStaticDir walks up from the working directory to the project root
// (contains go.mod) and returns its static directory.
func findStaticDir(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return filepath.Join(dir, "static")
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
