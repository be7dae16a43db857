package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kamaljaya32/Laundry/internal/config"
	"github.com/Kamaljaya32/Laundry/internal/database"
	"github.com/Kamaljaya32/Laundry/internal/models"
	"github.com/Kamaljaya32/Laundry/internal/services/storage"
	"github.com/Kamaljaya32/Laundry/internal/websocket"
	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The API tests run against a real embedded PostgreSQL instance so the
// transactional behavior of checkout and the job lifecycle are exercised
// end to end, not mocked.
const testDBPort = 5434

var testServer *httptest.Server

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "laundry-api-test")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}

	epg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		DataPath(filepath.Join(tmp, "data")).
		Port(testDBPort).
		Database("laundry_test").
		Username("postgres").
		Password("postgres").
		Logger(io.Discard))
	if err := epg.Start(); err != nil {
		log.Fatalf("Failed to start embedded postgres: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=localhost port=%d user=postgres password=postgres dbname=laundry_test sslmode=disable",
		testDBPort,
	)
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = epg.Stop()
		log.Fatalf("Failed to connect to test database: %v", err)
	}

	db := &database.DB{DB: gdb}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.ServiceType{},
		&models.Order{},
		&models.Job{},
		&models.OrderCounter{},
		&models.Expense{},
		&models.InventoryItem{},
	); err != nil {
		_ = epg.Stop()
		log.Fatalf("Migration failed: %v", err)
	}

	cfg := &config.Config{
		JWTSecret: "test-secret",
		UploadDir: filepath.Join(tmp, "uploads"),
		Shop: config.ShopConfig{
			Name:    "IFA CELL & LAUNDRY",
			Address: "Jl. Bumi Tamalanrea Permai No.18, Makassar",
		},
	}
	store, err := storage.New(cfg.UploadDir)
	if err != nil {
		_ = epg.Stop()
		log.Fatalf("Failed to init storage: %v", err)
	}
	hub := websocket.NewHub()
	go hub.Run()

	testServer = httptest.NewServer(NewRouter(db, cfg, hub, store))

	code := m.Run()

	testServer.Close()
	_ = epg.Stop()
	os.RemoveAll(tmp)
	os.Exit(code)
}

// doJSON performs a request against the test server, decoding the JSON
// response into out when given, and returns the status code
func doJSON(t *testing.T, method, path, token string, body, out interface{}) int {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, testServer.URL+path, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("Failed to decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

// registerOwner creates a fresh shop account and returns its access token.
// Every test registers its own owner so data never leaks between tests.
func registerOwner(t *testing.T) string {
	t.Helper()

	var resp struct {
		Tokens struct {
			AccessToken string `json:"accessToken"`
		} `json:"tokens"`
	}
	status := doJSON(t, http.MethodPost, "/auth/register", "", map[string]string{
		"username": "owner-" + uuid.NewString()[:8],
		"email":    uuid.NewString() + "@laundry.test",
		"password": "rahasia123",
		"name":     "Test Owner",
	}, &resp)
	if status != http.StatusCreated {
		t.Fatalf("Register failed with status %d", status)
	}
	if resp.Tokens.AccessToken == "" {
		t.Fatal("Register returned no access token")
	}
	return resp.Tokens.AccessToken
}

func createTestCustomer(t *testing.T, token, name, phone string) models.Customer {
	t.Helper()

	var customer models.Customer
	status := doJSON(t, http.MethodPost, "/api/customers", token, map[string]string{
		"name":  name,
		"phone": phone,
	}, &customer)
	if status != http.StatusCreated {
		t.Fatalf("Create customer failed with status %d", status)
	}
	return customer
}

type checkoutResponse struct {
	Order models.Order `json:"order"`
	Job   models.Job   `json:"job"`
}

func checkoutBody(customerID string) map[string]interface{} {
	return map[string]interface{}{
		"customerId": customerID,
		"items": []map[string]interface{}{
			{"service": "Cuci Kering", "weight": 2, "price": 10000},
			{"service": "Setrika", "weight": 1, "price": 5000},
		},
		"payment":       "unpaid",
		"discountType":  "percent",
		"discountInput": 10,
	}
}

func TestCheckoutCreatesOrderJobAndCountsCustomer(t *testing.T) {
	token := registerOwner(t)
	customer := createTestCustomer(t, token, "Budi Santoso", "081234567890")

	var cr checkoutResponse
	status := doJSON(t, http.MethodPost, "/api/orders", token, checkoutBody(customer.ID), &cr)
	if status != http.StatusCreated {
		t.Fatalf("Checkout failed with status %d", status)
	}
	if cr.Order.OrderNumber != 1 {
		t.Errorf("Expected first order number 1, got %d", cr.Order.OrderNumber)
	}
	if cr.Job.OrderNumber != cr.Order.OrderNumber {
		t.Errorf("Job order number %d does not match order %d", cr.Job.OrderNumber, cr.Order.OrderNumber)
	}
	if !cr.Order.Total.Equal(decimal.NewFromInt(22500)) {
		t.Errorf("Expected total 22500, got %s", cr.Order.Total)
	}

	// The job shows up on the dashboard
	var jobs []models.Job
	if status := doJSON(t, http.MethodGet, "/api/jobs", token, nil, &jobs); status != http.StatusOK {
		t.Fatalf("List jobs failed with status %d", status)
	}
	if len(jobs) != 1 || jobs[0].OrderNumber != 1 {
		t.Fatalf("Expected one job with order number 1, got %v", jobs)
	}

	// The customer's lifetime order count was incremented in the same commit
	var reloaded models.Customer
	if status := doJSON(t, http.MethodGet, "/api/customers/"+customer.ID, token, nil, &reloaded); status != http.StatusOK {
		t.Fatalf("Get customer failed with status %d", status)
	}
	if reloaded.TotalOrders != 1 {
		t.Errorf("Expected totalOrders 1, got %d", reloaded.TotalOrders)
	}

	// Numbers are sequential per owner
	var second checkoutResponse
	if status := doJSON(t, http.MethodPost, "/api/orders", token, checkoutBody(customer.ID), &second); status != http.StatusCreated {
		t.Fatalf("Second checkout failed with status %d", status)
	}
	if second.Order.OrderNumber != 2 {
		t.Errorf("Expected second order number 2, got %d", second.Order.OrderNumber)
	}
}

func TestPickedUpRemovesJobKeepsOrder(t *testing.T) {
	token := registerOwner(t)
	customer := createTestCustomer(t, token, "Ani Rahma", "085298761234")

	var cr checkoutResponse
	if status := doJSON(t, http.MethodPost, "/api/orders", token, checkoutBody(customer.ID), &cr); status != http.StatusCreated {
		t.Fatalf("Checkout failed with status %d", status)
	}

	patch := fmt.Sprintf("/api/jobs/%d/status", cr.Job.ID)
	status := doJSON(t, http.MethodPatch, patch, token, map[string]string{"status": "picked_up"}, nil)
	if status != http.StatusOK {
		t.Fatalf("Status transition failed with status %d", status)
	}

	// The job is gone from the active set
	var jobs []models.Job
	if status := doJSON(t, http.MethodGet, "/api/jobs", token, nil, &jobs); status != http.StatusOK {
		t.Fatalf("List jobs failed with status %d", status)
	}
	if len(jobs) != 0 {
		t.Errorf("Expected no active jobs after pickup, got %d", len(jobs))
	}

	// The order survives with the final status
	var order models.Order
	path := fmt.Sprintf("/api/orders/%d", cr.Order.ID)
	if status := doJSON(t, http.MethodGet, path, token, nil, &order); status != http.StatusOK {
		t.Fatalf("Get order failed with status %d", status)
	}
	if order.Status != models.StatusPickedUp {
		t.Errorf("Expected order status picked_up, got %s", order.Status)
	}
	if order.OrderNumber != cr.Order.OrderNumber {
		t.Errorf("Order number changed: %d vs %d", order.OrderNumber, cr.Order.OrderNumber)
	}
}

func TestCheckoutRollsBackOnUnknownCustomer(t *testing.T) {
	token := registerOwner(t)

	status := doJSON(t, http.MethodPost, "/api/orders", token, checkoutBody(uuid.NewString()), nil)
	if status != http.StatusBadRequest {
		t.Fatalf("Expected 400 for unknown customer, got %d", status)
	}

	// Nothing was written: no orders, no jobs
	var orders []models.Order
	if status := doJSON(t, http.MethodGet, "/api/orders", token, nil, &orders); status != http.StatusOK {
		t.Fatalf("List orders failed with status %d", status)
	}
	if len(orders) != 0 {
		t.Errorf("Expected no orders after rollback, got %d", len(orders))
	}
	var jobs []models.Job
	if status := doJSON(t, http.MethodGet, "/api/jobs", token, nil, &jobs); status != http.StatusOK {
		t.Fatalf("List jobs failed with status %d", status)
	}
	if len(jobs) != 0 {
		t.Errorf("Expected no jobs after rollback, got %d", len(jobs))
	}

	// The counter was rolled back too: the first real order is still #1
	customer := createTestCustomer(t, token, "Citra Dewi", "081355512345")
	var cr checkoutResponse
	if status := doJSON(t, http.MethodPost, "/api/orders", token, checkoutBody(customer.ID), &cr); status != http.StatusCreated {
		t.Fatalf("Checkout failed with status %d", status)
	}
	if cr.Order.OrderNumber != 1 {
		t.Errorf("Expected order number 1 after rolled-back attempt, got %d", cr.Order.OrderNumber)
	}
}

func TestConcurrentFirstCheckouts(t *testing.T) {
	token := registerOwner(t)
	customer := createTestCustomer(t, token, "Dian Puspita", "081277788899")

	// Two devices submit the owner's first-ever order at the same time.
	// Both must succeed with distinct sequential numbers.
	do := func() (int, int64, error) {
		payload, err := json.Marshal(checkoutBody(customer.ID))
		if err != nil {
			return 0, 0, err
		}
		req, err := http.NewRequest(http.MethodPost, testServer.URL+"/api/orders", bytes.NewReader(payload))
		if err != nil {
			return 0, 0, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return 0, 0, err
		}
		defer resp.Body.Close()

		var cr checkoutResponse
		if resp.StatusCode == http.StatusCreated {
			if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
				return resp.StatusCode, 0, err
			}
		}
		return resp.StatusCode, cr.Order.OrderNumber, nil
	}

	type result struct {
		status int
		number int64
		err    error
	}
	results := make(chan result, 2)
	for i := 0; i < 2; i++ {
		go func() {
			status, number, err := do()
			results <- result{status, number, err}
		}()
	}

	numbers := map[int64]bool{}
	for i := 0; i < 2; i++ {
		res := <-results
		if res.err != nil {
			t.Fatalf("Concurrent checkout failed: %v", res.err)
		}
		if res.status != http.StatusCreated {
			t.Fatalf("Concurrent checkout returned status %d", res.status)
		}
		numbers[res.number] = true
	}
	if !numbers[1] || !numbers[2] {
		t.Errorf("Expected order numbers {1, 2}, got %v", numbers)
	}
}
