package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bloomnext/pos-inventory/internal/auth"
	api "github.com/bloomnext/pos-inventory/internal/http"
	handler "github.com/bloomnext/pos-inventory/internal/http/handlers"
	"github.com/bloomnext/pos-inventory/internal/models"
	"github.com/bloomnext/pos-inventory/internal/repo"
)

// testEnv wires a router against in-memory repositories, with an admin user
// already registered and logged in.
type testEnv struct {
	router    http.Handler
	products  *repo.InMemoryProductRepository
	movements *repo.InMemoryMovementRepository
	refresh   *auth.InMemoryRefreshStore
	token     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	products := repo.NewInMemoryProductRepository()
	movements := repo.NewInMemoryMovementRepository()
	users := repo.NewInMemoryUserRepository()
	refresh := auth.NewInMemoryRefreshStore()
	tokens := auth.NewManager("test-secret", time.Hour)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if _, err := users.CreateUser(context.Background(), models.User{
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         "admin",
	}); err != nil {
		t.Fatalf("failed to seed admin user: %v", err)
	}

	h := handler.New(handler.Deps{
		Products:  products,
		Movements: movements,
		Stock:     repo.NewInMemoryStockRepository(products, movements),
		Users:     users,
		Metrics:   repo.NewInMemoryMetricsRepository(products, movements),
		Tokens:    tokens,
		Refresh:   refresh,
	})

	env := &testEnv{
		router:    api.NewRouter(h, nil),
		products:  products,
		movements: movements,
		refresh:   refresh,
	}
	env.token = env.login(t, "admin", "secret123").Token
	return env
}

func (e *testEnv) do(method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) login(t *testing.T, username, password string) handler.LoginResult {
	t.Helper()

	body, _ := json.Marshal(handler.CredentialsRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", w.Code, w.Body.String())
	}
	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding login response: %v", err)
	}
	return resp
}

func (e *testEnv) createProduct(t *testing.T, p handler.ProductRequest) handler.ProductResponse {
	t.Helper()

	w := e.do(http.MethodPost, "/api/products", p)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	return resp
}

func (e *testEnv) adjustStock(productID int, adj handler.StockAdjustRequest) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, fmt.Sprintf("/api/products/%d/stock/adjust", productID), adj)
}

func (e *testEnv) receiveStock(productID int, adj handler.StockAdjustRequest) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, fmt.Sprintf("/api/products/%d/stock/receive", productID), adj)
}

func (e *testEnv) setStock(productID, newQty int, note string) *httptest.ResponseRecorder {
	return e.do(http.MethodPost, fmt.Sprintf("/api/products/%d/stock/set", productID), handler.StockSetRequest{NewQty: &newQty, Note: note})
}

func decodeProduct(t *testing.T, w *httptest.ResponseRecorder) handler.ProductResponse {
	t.Helper()

	var resp handler.ProductResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("error decoding product response: %v", err)
	}
	return resp
}

func multipartCSV(csvContent, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}
