package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/mohabnada13/nory/cache"
	"github.com/mohabnada13/nory/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type ProductHandler struct {
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

func NewProductHandler(db *sql.DB, redisClient *redis.Client, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		db:          db,
		redisClient: redisClient,
		logger:      logger,
	}
}

func (h *ProductHandler) GetCategories(c *gin.Context) {
	ctx, span := otel.Tracer("nory").Start(c.Request.Context(), "GetCategories")
	defer span.End()

	rows, err := h.db.QueryContext(ctx,
		"SELECT id, name, image_url, sort_order, created_at, updated_at FROM categories ORDER BY sort_order")
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to fetch categories", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.ImageURL, &cat.SortOrder, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			span.RecordError(err)
			h.logger.Error("Failed to scan category", zap.Error(err))
			continue
		}
		categories = append(categories, cat)
	}

	span.SetAttributes(attribute.Int("categories.count", len(categories)))
	c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	ctx, span := otel.Tracer("nory").Start(c.Request.Context(), "GetProducts")
	defer span.End()

	query := "SELECT id, name, description, ingredients, image_url, price_egp, category_id, is_featured, trending_score, created_at, updated_at FROM products"
	args := []interface{}{}
	if categoryID := c.Query("category"); categoryID != "" {
		query += " WHERE category_id = $1"
		args = append(args, categoryID)
	}
	query += " ORDER BY id"

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to fetch products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Ingredients, &p.ImageURL, &p.PriceEGP,
			&p.CategoryID, &p.IsFeatured, &p.TrendingScore, &p.CreatedAt, &p.UpdatedAt); err != nil {
			span.RecordError(err)
			h.logger.Error("Failed to scan product", zap.Error(err))
			continue
		}
		products = append(products, p)
	}

	span.SetAttributes(attribute.Int("products.count", len(products)))
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	ctx, span := otel.Tracer("nory").Start(c.Request.Context(), "GetProduct")
	defer span.End()

	id := c.Param("id")
	span.SetAttributes(attribute.String("product.id", id))

	// Try to get from cache first
	cachedData, err := cache.GetProduct(ctx, h.redisClient, id)
	if err == nil {
		var product models.Product
		if err := json.Unmarshal(cachedData, &product); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			c.JSON(http.StatusOK, product)
			return
		}
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	var product models.Product
	err = h.db.QueryRowContext(ctx,
		"SELECT id, name, description, ingredients, image_url, price_egp, category_id, is_featured, trending_score, created_at, updated_at FROM products WHERE id = $1",
		id,
	).Scan(&product.ID, &product.Name, &product.Description, &product.Ingredients, &product.ImageURL,
		&product.PriceEGP, &product.CategoryID, &product.IsFeatured, &product.TrendingScore,
		&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		span.RecordError(err)
		h.logger.Error("Failed to fetch product", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Cache the product for 5 minutes
	cache.SetProduct(ctx, h.redisClient, id, product, 5*time.Minute)

	c.JSON(http.StatusOK, product)
}
