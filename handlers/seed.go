package handlers

import (
	"database/sql"
	"net/http"

	"github.com/mohabnada13/nory/cache"
	"github.com/mohabnada13/nory/models"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type SeedHandler struct {
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

func NewSeedHandler(db *sql.DB, redisClient *redis.Client, logger *zap.Logger) *SeedHandler {
	return &SeedHandler{
		db:          db,
		redisClient: redisClient,
		logger:      logger,
	}
}

var sampleCategories = []models.Category{
	{ID: "breads", Name: "Breads", ImageURL: "https://source.unsplash.com/random/300x300/?bread", SortOrder: 1},
	{ID: "pastries", Name: "Pastries", ImageURL: "https://source.unsplash.com/random/300x300/?pastry", SortOrder: 2},
	{ID: "cakes", Name: "Cakes", ImageURL: "https://source.unsplash.com/random/300x300/?cake", SortOrder: 3},
	{ID: "cookies", Name: "Cookies", ImageURL: "https://source.unsplash.com/random/300x300/?cookie", SortOrder: 4},
	{ID: "chocolates", Name: "Chocolates", ImageURL: "https://source.unsplash.com/random/300x300/?chocolate", SortOrder: 5},
}

var sampleProducts = []models.Product{
	// Breads
	{
		ID:          "sourdough-bread",
		Name:        "Sourdough Bread",
		Description: "Artisanal sourdough bread with a crispy crust and soft interior.",
		Ingredients: "Flour, water, salt, sourdough starter.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?sourdough",
		PriceEGP:    35.0, CategoryID: "breads", IsFeatured: true, TrendingScore: 8,
	},
	{
		ID:          "baguette",
		Name:        "French Baguette",
		Description: "Traditional French baguette with a crispy exterior and chewy interior.",
		Ingredients: "Flour, water, salt, yeast.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?baguette",
		PriceEGP:    25.0, CategoryID: "breads", IsFeatured: false, TrendingScore: 6,
	},
	{
		ID:          "multigrain-bread",
		Name:        "Multigrain Bread",
		Description: "Healthy multigrain bread packed with seeds and grains.",
		Ingredients: "Whole wheat flour, oats, flax seeds, sunflower seeds, water, salt, yeast.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?multigrain",
		PriceEGP:    40.0, CategoryID: "breads", IsFeatured: false, TrendingScore: 7,
	},
	{
		ID:          "ciabatta",
		Name:        "Ciabatta",
		Description: "Italian bread with a light, airy texture and crisp crust.",
		Ingredients: "Flour, water, salt, yeast, olive oil.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?ciabatta",
		PriceEGP:    30.0, CategoryID: "breads", IsFeatured: false, TrendingScore: 5,
	},

	// Pastries
	{
		ID:          "croissant",
		Name:        "Butter Croissant",
		Description: "Flaky, buttery French pastry with a golden crust.",
		Ingredients: "Flour, butter, sugar, salt, yeast, milk.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?croissant",
		PriceEGP:    15.0, CategoryID: "pastries", IsFeatured: true, TrendingScore: 9,
	},
	{
		ID:          "pain-au-chocolat",
		Name:        "Pain au Chocolat",
		Description: "Chocolate-filled croissant pastry with a buttery, flaky texture.",
		Ingredients: "Flour, butter, sugar, salt, yeast, milk, dark chocolate.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?pain-au-chocolat",
		PriceEGP:    18.0, CategoryID: "pastries", IsFeatured: false, TrendingScore: 8,
	},
	{
		ID:          "danish-pastry",
		Name:        "Danish Pastry",
		Description: "Sweet pastry with fruit filling and vanilla custard.",
		Ingredients: "Flour, butter, sugar, eggs, milk, vanilla, fruit preserves.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?danish-pastry",
		PriceEGP:    20.0, CategoryID: "pastries", IsFeatured: false, TrendingScore: 7,
	},
	{
		ID:          "cinnamon-roll",
		Name:        "Cinnamon Roll",
		Description: "Sweet roll with cinnamon-sugar filling and cream cheese frosting.",
		Ingredients: "Flour, butter, sugar, cinnamon, cream cheese, vanilla.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?cinnamon-roll",
		PriceEGP:    22.0, CategoryID: "pastries", IsFeatured: true, TrendingScore: 9,
	},

	// Cakes
	{
		ID:          "chocolate-cake",
		Name:        "Chocolate Cake",
		Description: "Rich, moist chocolate cake with chocolate ganache frosting.",
		Ingredients: "Flour, sugar, cocoa powder, eggs, butter, vanilla, chocolate.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?chocolate-cake",
		PriceEGP:    120.0, CategoryID: "cakes", IsFeatured: true, TrendingScore: 10,
	},
	{
		ID:          "red-velvet",
		Name:        "Red Velvet Cake",
		Description: "Classic red velvet cake with cream cheese frosting.",
		Ingredients: "Flour, sugar, cocoa powder, red food coloring, eggs, butter, cream cheese.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?red-velvet",
		PriceEGP:    140.0, CategoryID: "cakes", IsFeatured: false, TrendingScore: 8,
	},
	{
		ID:          "carrot-cake",
		Name:        "Carrot Cake",
		Description: "Spiced carrot cake with walnuts and cream cheese frosting.",
		Ingredients: "Flour, sugar, carrots, walnuts, cinnamon, eggs, cream cheese.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?carrot-cake",
		PriceEGP:    110.0, CategoryID: "cakes", IsFeatured: false, TrendingScore: 7,
	},
	{
		ID:          "cheesecake",
		Name:        "New York Cheesecake",
		Description: "Creamy New York style cheesecake with graham cracker crust.",
		Ingredients: "Cream cheese, sugar, eggs, vanilla, graham crackers, butter.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?cheesecake",
		PriceEGP:    150.0, CategoryID: "cakes", IsFeatured: true, TrendingScore: 9,
	},

	// Cookies
	{
		ID:          "chocolate-chip",
		Name:        "Chocolate Chip Cookies",
		Description: "Classic chocolate chip cookies with a soft center and crisp edges.",
		Ingredients: "Flour, butter, sugar, brown sugar, eggs, vanilla, chocolate chips.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?chocolate-chip-cookie",
		PriceEGP:    8.0, CategoryID: "cookies", IsFeatured: true, TrendingScore: 9,
	},
	{
		ID:          "oatmeal-raisin",
		Name:        "Oatmeal Raisin Cookies",
		Description: "Chewy oatmeal cookies with plump raisins and a hint of cinnamon.",
		Ingredients: "Flour, oats, butter, sugar, eggs, raisins, cinnamon.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?oatmeal-cookie",
		PriceEGP:    8.0, CategoryID: "cookies", IsFeatured: false, TrendingScore: 6,
	},
	{
		ID:          "peanut-butter",
		Name:        "Peanut Butter Cookies",
		Description: "Soft peanut butter cookies with the classic crisscross pattern.",
		Ingredients: "Flour, peanut butter, butter, sugar, eggs, vanilla.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?peanut-butter-cookie",
		PriceEGP:    9.0, CategoryID: "cookies", IsFeatured: false, TrendingScore: 7,
	},
	{
		ID:          "shortbread",
		Name:        "Shortbread Cookies",
		Description: "Buttery, crumbly Scottish shortbread cookies.",
		Ingredients: "Flour, butter, sugar.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?shortbread",
		PriceEGP:    7.0, CategoryID: "cookies", IsFeatured: false, TrendingScore: 5,
	},

	// Chocolates
	{
		ID:          "dark-chocolate-truffles",
		Name:        "Dark Chocolate Truffles",
		Description: "Rich dark chocolate truffles dusted with cocoa powder.",
		Ingredients: "Dark chocolate, heavy cream, butter, cocoa powder.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?chocolate-truffle",
		PriceEGP:    15.0, CategoryID: "chocolates", IsFeatured: true, TrendingScore: 8,
	},
	{
		ID:          "chocolate-covered-strawberries",
		Name:        "Chocolate Covered Strawberries",
		Description: "Fresh strawberries dipped in premium chocolate.",
		Ingredients: "Strawberries, dark chocolate, white chocolate.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?chocolate-strawberry",
		PriceEGP:    25.0, CategoryID: "chocolates", IsFeatured: true, TrendingScore: 9,
	},
	{
		ID:          "assorted-chocolates",
		Name:        "Assorted Chocolate Box",
		Description: "Handcrafted selection of milk, dark, and white chocolates with various fillings.",
		Ingredients: "Milk chocolate, dark chocolate, white chocolate, nuts, caramel, fruit fillings.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?chocolate-box",
		PriceEGP:    120.0, CategoryID: "chocolates", IsFeatured: false, TrendingScore: 7,
	},
	{
		ID:          "chocolate-bark",
		Name:        "Chocolate Bark with Nuts",
		Description: "Dark chocolate bark loaded with assorted nuts and dried fruits.",
		Ingredients: "Dark chocolate, almonds, pistachios, walnuts, dried cranberries.",
		ImageURL:    "https://source.unsplash.com/random/400x300/?chocolate-bark",
		PriceEGP:    60.0, CategoryID: "chocolates", IsFeatured: false, TrendingScore: 6,
	},
}

// SeedSampleData loads the demo catalog in a single transaction. Re-running
// updates rows in place. Any authenticated user may seed; there is no admin
// role in this demo.
func (h *SeedHandler) SeedSampleData(c *gin.Context) {
	ctx, span := otel.Tracer("nory").Start(c.Request.Context(), "SeedSampleData")
	defer span.End()

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to begin seed transaction", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed sample data. Please try again later."})
		return
	}
	defer tx.Rollback()

	for _, cat := range sampleCategories {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, name, image_url, sort_order)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, image_url = EXCLUDED.image_url,
			    sort_order = EXCLUDED.sort_order, updated_at = CURRENT_TIMESTAMP`,
			cat.ID, cat.Name, cat.ImageURL, cat.SortOrder,
		)
		if err != nil {
			span.RecordError(err)
			h.logger.Error("Failed to seed category", zap.String("category_id", cat.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed sample data. Please try again later."})
			return
		}
	}

	for _, p := range sampleProducts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, name, description, ingredients, image_url, price_egp, category_id, is_featured, trending_score)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name, description = EXCLUDED.description,
			    ingredients = EXCLUDED.ingredients, image_url = EXCLUDED.image_url,
			    price_egp = EXCLUDED.price_egp, category_id = EXCLUDED.category_id,
			    is_featured = EXCLUDED.is_featured, trending_score = EXCLUDED.trending_score,
			    updated_at = CURRENT_TIMESTAMP`,
			p.ID, p.Name, p.Description, p.Ingredients, p.ImageURL,
			p.PriceEGP, p.CategoryID, p.IsFeatured, p.TrendingScore,
		)
		if err != nil {
			span.RecordError(err)
			h.logger.Error("Failed to seed product", zap.String("product_id", p.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed sample data. Please try again later."})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		span.RecordError(err)
		h.logger.Error("Failed to commit seed transaction", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed sample data. Please try again later."})
		return
	}

	// Seeding updates rows in place, so drop any cached copies.
	for _, p := range sampleProducts {
		if err := cache.DeleteProduct(ctx, h.redisClient, p.ID); err != nil {
			h.logger.Warn("Failed to invalidate product cache", zap.String("product_id", p.ID), zap.Error(err))
		}
	}

	span.SetAttributes(
		attribute.Int("seed.categories", len(sampleCategories)),
		attribute.Int("seed.products", len(sampleProducts)),
	)
	h.logger.Info("Sample data seeded",
		zap.Int("categories", len(sampleCategories)),
		zap.Int("products", len(sampleProducts)),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Sample data seeded successfully",
		"categoriesCount": len(sampleCategories),
		"productsCount":   len(sampleProducts),
	})
}
