package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const productColumns = "id, name, description, ingredients, image_url, price_egp, category_id, is_featured, trending_score, created_at, updated_at"

func setupProductTest(t *testing.T) (*ProductHandler, sqlmock.Sqlmock, *gin.Engine) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	// Real Redis client pointed at localhost; every GET misses because no
	// server answers, which exercises the database fallback path.
	redisClient := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
	})

	logger := zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel))
	handler := NewProductHandler(db, redisClient, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/categories", handler.GetCategories)
	router.GET("/products", handler.GetProducts)
	router.GET("/products/:id", handler.GetProduct)

	return handler, mock, router
}

func TestProductHandler_GetCategories_Success(t *testing.T) {
	handler, mock, router := setupProductTest(t)
	defer handler.db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "image_url", "sort_order", "created_at", "updated_at"}).
		AddRow("breads", "Breads", "https://example.com/breads.jpg", 1, time.Now(), time.Now()).
		AddRow("cakes", "Cakes", "https://example.com/cakes.jpg", 3, time.Now(), time.Now())

	mock.ExpectQuery("SELECT id, name, image_url, sort_order, created_at, updated_at FROM categories ORDER BY sort_order").
		WillReturnRows(rows)

	req := httptest.NewRequest("GET", "/categories", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestProductHandler_GetProducts_Success(t *testing.T) {
	handler, mock, router := setupProductTest(t)
	defer handler.db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "ingredients", "image_url", "price_egp", "category_id", "is_featured", "trending_score", "created_at", "updated_at"}).
		AddRow("sourdough-bread", "Sourdough Bread", "Artisanal loaf", "Flour, water, salt", "https://example.com/s.jpg", 35.0, "breads", true, 8, time.Now(), time.Now()).
		AddRow("croissant", "Butter Croissant", "Flaky pastry", "Flour, butter", "https://example.com/c.jpg", 15.0, "pastries", true, 9, time.Now(), time.Now())

	mock.ExpectQuery("SELECT " + productColumns + " FROM products ORDER BY id").
		WillReturnRows(rows)

	req := httptest.NewRequest("GET", "/products", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestProductHandler_GetProducts_FilterByCategory(t *testing.T) {
	handler, mock, router := setupProductTest(t)
	defer handler.db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "ingredients", "image_url", "price_egp", "category_id", "is_featured", "trending_score", "created_at", "updated_at"}).
		AddRow("sourdough-bread", "Sourdough Bread", "Artisanal loaf", "Flour, water, salt", "https://example.com/s.jpg", 35.0, "breads", true, 8, time.Now(), time.Now())

	mock.ExpectQuery("SELECT " + productColumns + " FROM products WHERE category_id = \\$1 ORDER BY id").
		WithArgs("breads").
		WillReturnRows(rows)

	req := httptest.NewRequest("GET", "/products?category=breads", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestProductHandler_GetProduct_Success(t *testing.T) {
	handler, mock, router := setupProductTest(t)
	defer handler.db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "description", "ingredients", "image_url", "price_egp", "category_id", "is_featured", "trending_score", "created_at", "updated_at"}).
		AddRow("sourdough-bread", "Sourdough Bread", "Artisanal loaf", "Flour, water, salt", "https://example.com/s.jpg", 35.0, "breads", true, 8, time.Now(), time.Now())

	mock.ExpectQuery("SELECT " + productColumns + " FROM products WHERE id = \\$1").
		WithArgs("sourdough-bread").
		WillReturnRows(rows)

	req := httptest.NewRequest("GET", "/products/sourdough-bread", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}

func TestProductHandler_GetProduct_NotFound(t *testing.T) {
	handler, mock, router := setupProductTest(t)
	defer handler.db.Close()

	mock.ExpectQuery("SELECT " + productColumns + " FROM products WHERE id = \\$1").
		WithArgs("no-such-product").
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest("GET", "/products/no-such-product", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Database expectations were not met: %v", err)
	}
}
