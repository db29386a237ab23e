package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MangoYoun/aidlc-workshop-tableorder/config"
	"github.com/MangoYoun/aidlc-workshop-tableorder/models"
	"github.com/MangoYoun/aidlc-workshop-tableorder/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Store{},
		&models.AdminUser{},
		&models.TableAuth{},
		&models.TableSession{},
		&models.Category{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func seed(t *testing.T) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	store := models.Store{Name: "맛있는 식당"}
	config.DB.Create(&store)
	config.DB.Create(&models.AdminUser{StoreID: store.ID, Username: "manager", PasswordHash: string(hash)})
	config.DB.Create(&models.TableAuth{StoreID: store.ID, TableNumber: "7", PasswordHash: string(hash)})

	category := models.Category{StoreID: store.ID, Name: "찌개", DisplayOrder: 1}
	config.DB.Create(&category)
	config.DB.Create(&models.Menu{StoreID: store.ID, CategoryID: category.ID, Name: "김치찌개", Price: 9000, IsAvailable: true})
	config.DB.Create(&models.Menu{StoreID: store.ID, CategoryID: category.ID, Name: "된장찌개", Price: 8500, IsAvailable: true})
}

func doJSON(r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tableLogin(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/table-login", gin.H{
		"store_id": 1, "table_number": "7", "password": "secret123",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("table login failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		SessionToken string `json:"session_token"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.SessionToken == "" {
		t.Fatal("no session token in login response")
	}
	return resp.SessionToken
}

func adminLogin(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/admin-login", gin.H{
		"store_id": 1, "username": "manager", "password": "secret123",
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin login failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Token
}

func TestTableOrderFlow(t *testing.T) {
	r := setupRouter(t)
	seed(t)
	token := tableLogin(t, r)
	session := map[string]string{"X-Session-Token": token}

	// Menus are public but need a store id
	w := doJSON(r, http.MethodGet, "/api/menus", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("menus without store_id should be 400, got %d", w.Code)
	}
	w = doJSON(r, http.MethodGet, "/api/menus?store_id=1", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("menus: %d %s", w.Code, w.Body.String())
	}
	var menusResp struct {
		Menus      []models.Menu     `json:"menus"`
		Categories []models.Category `json:"categories"`
	}
	json.Unmarshal(w.Body.Bytes(), &menusResp)
	if len(menusResp.Menus) != 2 || len(menusResp.Categories) != 1 {
		t.Fatalf("got %d menus, %d categories", len(menusResp.Menus), len(menusResp.Categories))
	}

	// Place an order; total is recomputed server-side from snapshot prices
	w = doJSON(r, http.MethodPost, "/api/orders", gin.H{
		"items": []gin.H{
			{"menu_id": 1, "quantity": 2},
			{"menu_id": 2, "quantity": 1},
		},
		"total_amount": 1, // advisory, ignored
	}, session)
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: %d %s", w.Code, w.Body.String())
	}
	var orderResp struct {
		Order models.Order `json:"order"`
	}
	json.Unmarshal(w.Body.Bytes(), &orderResp)
	if orderResp.Order.TotalAmount != 26500 {
		t.Fatalf("total = %d, want 26500", orderResp.Order.TotalAmount)
	}
	if len(orderResp.Order.Items) != 2 {
		t.Fatalf("order has %d items", len(orderResp.Order.Items))
	}
	if orderResp.Order.Status != models.StatusPending {
		t.Fatalf("status = %s", orderResp.Order.Status)
	}

	// History shows the order
	w = doJSON(r, http.MethodGet, "/api/orders", nil, session)
	if w.Code != http.StatusOK {
		t.Fatalf("list orders: %d", w.Code)
	}
	var orders []models.Order
	json.Unmarshal(w.Body.Bytes(), &orders)
	if len(orders) != 1 {
		t.Fatalf("history has %d orders, want 1", len(orders))
	}
}

func TestOrderRequiresSession(t *testing.T) {
	r := setupRouter(t)
	seed(t)

	w := doJSON(r, http.MethodPost, "/api/orders", gin.H{"items": []gin.H{{"menu_id": 1, "quantity": 1}}}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token should be 401, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/api/orders", gin.H{"items": []gin.H{{"menu_id": 1, "quantity": 1}}},
		map[string]string{"X-Session-Token": "bogus"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bogus token should be 401, got %d", w.Code)
	}
}

func TestTableLoginLockout(t *testing.T) {
	r := setupRouter(t)
	seed(t)

	login := func() *httptest.ResponseRecorder {
		return doJSON(r, http.MethodPost, "/api/auth/table-login", gin.H{
			"store_id": 1, "table_number": "7", "password": "wrong",
		}, nil)
	}

	for i := 0; i < 5; i++ {
		if w := login(); w.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: got %d, want 401", i+1, w.Code)
		}
	}
	// The account is now locked, even with the right password
	w := doJSON(r, http.MethodPost, "/api/auth/table-login", gin.H{
		"store_id": 1, "table_number": "7", "password": "secret123",
	}, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("locked account should be 403, got %d %s", w.Code, w.Body.String())
	}
}

func TestAdminMenuManagement(t *testing.T) {
	r := setupRouter(t)
	seed(t)
	auth := map[string]string{"Authorization": "Bearer " + adminLogin(t, r)}

	// No token
	w := doJSON(r, http.MethodPost, "/api/admin/menus", gin.H{}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated admin call should be 401, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/api/admin/menus", gin.H{
		"category_id": 1, "name": "부대찌개", "price": 11000,
	}, auth)
	if w.Code != http.StatusCreated {
		t.Fatalf("create menu: %d %s", w.Code, w.Body.String())
	}
	var created struct {
		Menu models.Menu `json:"menu"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)

	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/menus/%d", created.Menu.ID), gin.H{
		"price": 12000, "is_available": false,
	}, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("update menu: %d %s", w.Code, w.Body.String())
	}

	// Rejected price
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/menus/%d", created.Menu.ID), gin.H{"price": 0}, auth)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("zero price should be 400, got %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/admin/menus/%d", created.Menu.ID), nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("delete menu: %d %s", w.Code, w.Body.String())
	}
}

func TestAdminOrderStatusTransitions(t *testing.T) {
	r := setupRouter(t)
	seed(t)
	token := tableLogin(t, r)
	auth := map[string]string{"Authorization": "Bearer " + adminLogin(t, r)}

	w := doJSON(r, http.MethodPost, "/api/orders", gin.H{
		"items": []gin.H{{"menu_id": 1, "quantity": 1}},
	}, map[string]string{"X-Session-Token": token})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: %d %s", w.Code, w.Body.String())
	}
	var orderResp struct {
		Order models.Order `json:"order"`
	}
	json.Unmarshal(w.Body.Bytes(), &orderResp)
	orderID := orderResp.Order.ID

	// Skipping a state is rejected
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/status", orderID),
		gin.H{"status": "completed"}, auth)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("pending→completed should be 422, got %d %s", w.Code, w.Body.String())
	}

	for _, status := range []string{"preparing", "completed"} {
		w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/orders/%d/status", orderID),
			gin.H{"status": status}, auth)
		if w.Code != http.StatusOK {
			t.Fatalf("transition to %s: %d %s", status, w.Code, w.Body.String())
		}
	}

	// Dashboard summary reflects the completed order
	w = doJSON(r, http.MethodGet, "/api/admin/orders", nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("admin orders: %d", w.Code)
	}
	var dashboard struct {
		OrderSummary map[string]int `json:"order_summary"`
		TotalRevenue int            `json:"total_revenue"`
		Count        int            `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &dashboard)
	if dashboard.Count != 1 || dashboard.OrderSummary["completed"] != 1 {
		t.Fatalf("dashboard = %+v", dashboard)
	}
	if dashboard.TotalRevenue != 9000 {
		t.Fatalf("revenue = %d, want 9000", dashboard.TotalRevenue)
	}
}

func TestAdminCloseSession(t *testing.T) {
	r := setupRouter(t)
	seed(t)
	token := tableLogin(t, r)
	auth := map[string]string{"Authorization": "Bearer " + adminLogin(t, r)}

	var session models.TableSession
	if err := config.DB.Where("session_token = ?", token).First(&session).Error; err != nil {
		t.Fatal(err)
	}

	w := doJSON(r, http.MethodPost, fmt.Sprintf("/api/admin/sessions/%d/close", session.ID), nil, auth)
	if w.Code != http.StatusOK {
		t.Fatalf("close session: %d %s", w.Code, w.Body.String())
	}

	// A closed session can no longer order
	w = doJSON(r, http.MethodPost, "/api/orders", gin.H{
		"items": []gin.H{{"menu_id": 1, "quantity": 1}},
	}, map[string]string{"X-Session-Token": token})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("closed session should be 401, got %d", w.Code)
	}
}
