package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/testtrackhq/testtrack/internal/handlers"
	"github.com/testtrackhq/testtrack/internal/models"
	"github.com/testtrackhq/testtrack/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Test{},
		&models.TestResult{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// setupApp wires the API routes against the given database, without the
// session gate so each handler can be exercised directly
func setupApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	api := app.Group("/api")

	testsHandler := &handlers.TestsHandler{DB: db}
	usersHandler := &handlers.UsersHandler{DB: db}
	resultsHandler := &handlers.ResultsHandler{DB: db}
	exportHandler := &handlers.ExportHandler{DB: db}

	api.Get("/tests", testsHandler.ListTests)
	api.Post("/tests", testsHandler.CreateTest)
	api.Get("/tests/:id", testsHandler.GetTest)
	api.Put("/tests/:id", testsHandler.UpdateTest)
	api.Delete("/tests/:id", testsHandler.DeleteTest)
	api.Post("/tests/:id/duplicate", testsHandler.DuplicateTest)
	api.Get("/tests/:id/results", testsHandler.GetTestResults)
	api.Delete("/tests/:id/results", testsHandler.ClearTestResults)

	api.Get("/users", usersHandler.ListUsers)
	api.Post("/users", usersHandler.CreateUser)
	api.Delete("/users/:id", usersHandler.DeleteUser)

	api.Get("/results", resultsHandler.ListResults)
	api.Post("/results", resultsHandler.CreateResult)
	api.Delete("/results/:id", resultsHandler.DeleteResult)

	api.Get("/export/csv", exportHandler.ExportCSV)

	return app
}

func postJSON(t *testing.T, app *fiber.App, url string, payload interface{}) {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode >= 300 {
		t.Fatalf("POST %s returned %d", url, resp.StatusCode)
	}
}

// TestCreateAndGetTest tests POST /api/tests then GET /api/tests/:id
func TestCreateAndGetTest(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	reqBody := map[string]interface{}{
		"id":        "TC-001",
		"title":     "Login works",
		"story":     "As a user I can log in",
		"category":  "Auth",
		"priority":  "high",
		"testSteps": []string{"open page", "log in"},
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest("POST", "/api/tests", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("Expected status 201, got %d", resp.StatusCode)
	}

	req = httptest.NewRequest("GET", "/api/tests/TC-001", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var test models.Test
	if err := json.NewDecoder(resp.Body).Decode(&test); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if test.Title != "Login works" {
		t.Errorf("Expected title 'Login works', got %q", test.Title)
	}
	if test.ConsolidatedStatus != "pending" {
		t.Errorf("Expected pending status, got %q", test.ConsolidatedStatus)
	}
}

// TestCreateTestDuplicateIDConflict tests duplicate id rejection over HTTP
func TestCreateTestDuplicateIDConflict(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	payload := map[string]interface{}{
		"id":    "TC-001",
		"title": "First",
		"story": "story",
	}
	postJSON(t, app, "/api/tests", payload)

	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/api/tests", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 409 {
		t.Errorf("Expected status 409, got %d", resp.StatusCode)
	}
}

// TestCreateTestMissingFields tests validation failure over HTTP
func TestCreateTestMissingFields(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	body, _ := json.Marshal(map[string]interface{}{"id": "TC-001"})
	req := httptest.NewRequest("POST", "/api/tests", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected status 400, got %d", resp.StatusCode)
	}
}

// TestResultFlowUpdatesConsolidatedStatus walks the pass/fail conflict scenario
func TestResultFlowUpdatesConsolidatedStatus(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	postJSON(t, app, "/api/tests", map[string]interface{}{
		"id": "TC-001", "title": "t", "story": "s",
	})
	alice, err := services.CreateUser(db, "Alice")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	bob, err := services.CreateUser(db, "Bob")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	postJSON(t, app, "/api/results", map[string]interface{}{
		"testId": "TC-001", "userId": alice.ID, "status": "pass",
	})
	postJSON(t, app, "/api/results", map[string]interface{}{
		"testId": "TC-001", "userId": bob.ID, "status": "fail",
	})

	req := httptest.NewRequest("GET", "/api/tests/TC-001", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	var test models.Test
	if err := json.NewDecoder(resp.Body).Decode(&test); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if test.ConsolidatedStatus != "fail" {
		t.Errorf("Expected consolidated status fail, got %q", test.ConsolidatedStatus)
	}
}

// TestCreateResultForMissingTest tests referential rejection over HTTP
func TestCreateResultForMissingTest(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	alice, err := services.CreateUser(db, "Alice")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	body, _ := json.Marshal(map[string]interface{}{
		"testId": "TC-404", "userId": alice.ID, "status": "pass",
	})
	req := httptest.NewRequest("POST", "/api/results", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 422 {
		t.Errorf("Expected status 422, got %d", resp.StatusCode)
	}
}

// TestDuplicateTestEndpoint tests POST /api/tests/:id/duplicate
func TestDuplicateTestEndpoint(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	postJSON(t, app, "/api/tests", map[string]interface{}{
		"id": "TC-001", "title": "Original", "story": "s",
	})

	req := httptest.NewRequest("POST", "/api/tests/TC-001/duplicate", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Errorf("Expected status 201, got %d", resp.StatusCode)
	}

	var dup models.Test
	if err := json.NewDecoder(resp.Body).Decode(&dup); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if dup.ID == "TC-001" {
		t.Error("Duplicate kept the source id")
	}
	if dup.Title != "Original (Copy)" {
		t.Errorf("Expected title 'Original (Copy)', got %q", dup.Title)
	}
}

// TestDeleteUserEndpoint tests DELETE /api/users/:id with cascade
func TestDeleteUserEndpoint(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	postJSON(t, app, "/api/tests", map[string]interface{}{
		"id": "TC-001", "title": "t", "story": "s",
	})
	alice, err := services.CreateUser(db, "Alice")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	postJSON(t, app, "/api/results", map[string]interface{}{
		"testId": "TC-001", "userId": alice.ID, "status": "pass",
	})

	req := httptest.NewRequest("DELETE", "/api/users/"+alice.ID, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	// Status fell back to pending once the only result went away
	req = httptest.NewRequest("GET", "/api/tests/TC-001", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	var test models.Test
	if err := json.NewDecoder(resp.Body).Decode(&test); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if test.ConsolidatedStatus != "pending" {
		t.Errorf("Expected pending, got %q", test.ConsolidatedStatus)
	}
}

// TestExportCSVEndpoint tests GET /api/export/csv
func TestExportCSVEndpoint(t *testing.T) {
	db := setupTestDB(t)
	app := setupApp(db)

	postJSON(t, app, "/api/tests", map[string]interface{}{
		"id": "TC-001", "title": "t", "story": "s",
	})

	req := httptest.NewRequest("GET", "/api/export/csv", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Expected csv content type, got %q", ct)
	}
}
