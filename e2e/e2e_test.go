//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"family-records-go/internal/config"
	"family-records-go/internal/db"
	accountsdomain "family-records-go/internal/domain/accounts"
	familydomain "family-records-go/internal/domain/family"
	locationdomain "family-records-go/internal/domain/location"
	"family-records-go/internal/export"
	accountsrepo "family-records-go/internal/repository/postgres/accounts"
	familyrepo "family-records-go/internal/repository/postgres/family"
	locationrepo "family-records-go/internal/repository/postgres/location"
	"family-records-go/internal/transport/httpserver"
	"family-records-go/internal/transport/httpserver/handler"
	authmw "family-records-go/internal/transport/httpserver/middleware"
	"family-records-go/pkg/hashid"
	"family-records-go/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

type dropMailer struct{}

func (dropMailer) Send(ctx context.Context, to, subject, body string) error { return nil }

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.NewFromEnv()

	cfg := config.Config{
		HTTPPort: "0",
		DB:       config.DBConfig{DSN: dsn},
		Auth:     config.AuthConfig{JWTSecret: "e2e-secret", TokenTTL: time.Hour},
		App: config.AppConfig{
			BaseURL:             "http://localhost",
			PageSize:            10,
			ResetTokenTTL:       10 * time.Minute,
			FamilyDeleteCascade: true,
			HashidSalt:          "e2e-salt",
			HashidMinLength:     8,
		},
	}

	dbConn, err := db.New(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}
	if err := seedUser(dbConn); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	codec, err := hashid.New(cfg.App.HashidSalt, cfg.App.HashidMinLength)
	if err != nil {
		t.Fatalf("hashid codec: %v", err)
	}

	locations := locationdomain.NewService(locationrepo.NewPostgres(dbConn))
	families := familydomain.NewService(familyrepo.NewPostgres(dbConn), locations, cfg.App.FamilyDeleteCascade)
	accounts := accountsdomain.NewService(accountsrepo.NewPostgres(dbConn), dropMailer{}, log, cfg.App.BaseURL, cfg.App.ResetTokenTTL)

	exporter := export.NewExporter(t.TempDir(), log)
	auth := authmw.NewJWTAuth(cfg.Auth)
	handlers := handler.New(accounts, locations, families, exporter, codec, auth, cfg.App.PageSize, log)

	server := httptest.NewServer(httpserver.NewRouter(cfg, handlers, auth))
	return &testEnv{server: server, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE password_resets, users, hobbies, family_members, family_heads, cities, states RESTART IDENTITY CASCADE",
	).Error
}

func seedUser(dbConn *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("Staff123!"), bcrypt.MinCost)
	if err != nil {
		return err
	}
	return dbConn.Exec(
		"INSERT INTO users (email, password_hash) VALUES (?, ?)",
		"staff@example.com", string(hash),
	).Error
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func requestJSON(t *testing.T, client *http.Client, method, url string, payload any) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp, respBody
}

func decodeBody(t *testing.T, body []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(body, dst); err != nil {
		t.Fatalf("decode response %s: %v", body, err)
	}
}

func login(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()
	resp, body := requestJSON(t, client, http.MethodPost, baseURL+"/api/auth/login", map[string]string{
		"email":    "staff@example.com",
		"password": "Staff123!",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: status %d body %s", resp.StatusCode, body)
	}
}

type stateEnvelope struct {
	Success bool `json:"success"`
	State   struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Status string `json:"status"`
	} `json:"state"`
}

type stateListEnvelope struct {
	Success     bool  `json:"success"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageList    []int `json:"pageList"`
	Items       []struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Status string `json:"status"`
	} `json:"items"`
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()
	client := newClient(t)

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/auth/login", map[string]string{
		"email":    "staff@example.com",
		"password": "Wrong123!",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body %s", resp.StatusCode, body)
	}

	var envlp struct {
		Success bool   `json:"success"`
		Field   string `json:"field"`
	}
	decodeBody(t, body, &envlp)
	if envlp.Success || envlp.Field != "password" {
		t.Fatalf("body = %s, want field=password", body)
	}

	resp, _ = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/states", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: status = %d, want 401", resp.StatusCode)
	}
}

func TestStateLifecycle(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()
	client := newClient(t)
	login(t, client, env.server.URL)

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/states", map[string]string{"name": "Gujarat"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create state: status %d body %s", resp.StatusCode, body)
	}
	var created stateEnvelope
	decodeBody(t, body, &created)
	if created.State.ID == "" || created.State.Status != "active" {
		t.Fatalf("created state = %+v", created.State)
	}

	// Identifier on the wire is obfuscated, never the numeric id.
	if created.State.ID == "1" {
		t.Fatal("state id exposed as plain integer")
	}

	resp, body = requestJSON(t, client, http.MethodPut, env.server.URL+"/api/states/"+created.State.ID, map[string]any{
		"name":   "Gujarat",
		"status": 2,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update state: status %d body %s", resp.StatusCode, body)
	}
	var updated stateEnvelope
	decodeBody(t, body, &updated)
	if updated.State.Status != "inactive" {
		t.Fatalf("status = %q, want inactive", updated.State.Status)
	}

	resp, body = requestJSON(t, client, http.MethodDelete, env.server.URL+"/api/states/"+created.State.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete state: status %d body %s", resp.StatusCode, body)
	}

	resp, _ = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/states/"+created.State.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted state: status = %d, want 404", resp.StatusCode)
	}
}

func TestStateSearchAndPagination(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()
	client := newClient(t)
	login(t, client, env.server.URL)

	for i := 0; i < 12; i++ {
		name := fmt.Sprintf("State %02d", i)
		resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/states", map[string]string{"name": name})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create %q: status %d body %s", name, resp.StatusCode, body)
		}
	}

	resp, body := requestJSON(t, client, http.MethodGet, env.server.URL+"/api/states?page=2", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list page 2: status %d body %s", resp.StatusCode, body)
	}
	var page stateListEnvelope
	decodeBody(t, body, &page)
	if page.CurrentPage != 2 || page.TotalPages != 2 {
		t.Fatalf("page = %d/%d, want 2/2", page.CurrentPage, page.TotalPages)
	}
	if len(page.Items) != 2 {
		t.Fatalf("page 2 has %d items, want 2", len(page.Items))
	}
	if len(page.PageList) != 2 || page.PageList[0] != 1 || page.PageList[1] != 2 {
		t.Fatalf("pageList = %v, want [1 2]", page.PageList)
	}

	// An unusable page value falls back to page 1.
	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/states?page=99", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list page 99: status %d body %s", resp.StatusCode, body)
	}
	decodeBody(t, body, &page)
	if page.CurrentPage != 1 {
		t.Fatalf("out-of-range page = %d, want 1", page.CurrentPage)
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/states?search=State+03", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search: status %d body %s", resp.StatusCode, body)
	}
	decodeBody(t, body, &page)
	if len(page.Items) != 1 || page.Items[0].Name != "State 03" {
		t.Fatalf("search items = %+v, want single State 03", page.Items)
	}
}

func TestFamilyFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()
	client := newClient(t)
	login(t, client, env.server.URL)

	_, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/states", map[string]string{"name": "Goa"})
	var state stateEnvelope
	decodeBody(t, body, &state)

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/cities", map[string]any{
		"name":  "Panaji",
		"state": state.State.ID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create city: status %d body %s", resp.StatusCode, body)
	}
	var city struct {
		City struct {
			ID string `json:"id"`
		} `json:"city"`
	}
	decodeBody(t, body, &city)

	resp, body = requestJSON(t, client, http.MethodPost, env.server.URL+"/api/families", map[string]any{
		"head": map[string]any{
			"name":          "Ramesh",
			"surname":       "Naik",
			"dob":           "1980-05-10",
			"mobno":         "9876543210",
			"address":       "12 Beach Road",
			"pincode":       "403001",
			"maritalStatus": "unmarried",
			"state":         state.State.ID,
			"city":          city.City.ID,
		},
		"members": []map[string]any{{
			"name":          "Suresh",
			"dob":           "1985-02-20",
			"maritalStatus": "unmarried",
			"relation":      "brother",
		}},
		"hobbies": []map[string]any{{"name": "fishing"}},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create family: status %d body %s", resp.StatusCode, body)
	}
	var family struct {
		Head struct {
			ID string `json:"id"`
		} `json:"head"`
	}
	decodeBody(t, body, &family)

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/families/"+family.Head.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get family: status %d body %s", resp.StatusCode, body)
	}
	var detail struct {
		Members []any `json:"members"`
		Hobbies []any `json:"hobbies"`
	}
	decodeBody(t, body, &detail)
	if len(detail.Members) != 1 || len(detail.Hobbies) != 1 {
		t.Fatalf("detail = %d members, %d hobbies; want 1 and 1", len(detail.Members), len(detail.Hobbies))
	}

	// Searching by city name finds the head once.
	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/families?search=panaji", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("search families: status %d body %s", resp.StatusCode, body)
	}
	var list struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	decodeBody(t, body, &list)
	if len(list.Items) != 1 || list.Items[0].ID != family.Head.ID {
		t.Fatalf("search items = %+v, want the created head once", list.Items)
	}

	resp, body = requestJSON(t, client, http.MethodDelete, env.server.URL+"/api/families/"+family.Head.ID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete family: status %d body %s", resp.StatusCode, body)
	}
	resp, _ = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/families/"+family.Head.ID, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get deleted family: status = %d, want 404", resp.StatusCode)
	}
}
