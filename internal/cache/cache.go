package cache

import (
	"context"
	"encoding/json"
	"time"

	"tamaq_back_end/internal/database"
	"tamaq_back_end/internal/models"
)

const (
	CategoriesCacheTTL = time.Hour
	FoodCacheTTL       = 10 * time.Minute
)

const (
	categoriesCacheKey = "categories:all"
	foodListCacheKey   = "food:all"
)

// GetCachedCategories lit la liste des catégories depuis Redis
func GetCachedCategories(ctx context.Context) ([]models.Category, bool) {
	val, err := database.RedisClient.Get(ctx, categoriesCacheKey).Result()
	if err != nil {
		return nil, false
	}
	var cats []models.Category
	if json.Unmarshal([]byte(val), &cats) != nil {
		return nil, false
	}
	return cats, true
}

func SetCachedCategories(ctx context.Context, cats []models.Category) {
	data, _ := json.Marshal(cats)
	database.RedisClient.Set(ctx, categoriesCacheKey, data, CategoriesCacheTTL)
}

// GetCachedFoodList lit la carte complète depuis Redis
func GetCachedFoodList(ctx context.Context) ([]models.Food, bool) {
	val, err := database.RedisClient.Get(ctx, foodListCacheKey).Result()
	if err != nil {
		return nil, false
	}
	var foods []models.Food
	if json.Unmarshal([]byte(val), &foods) != nil {
		return nil, false
	}
	return foods, true
}

func SetCachedFoodList(ctx context.Context, foods []models.Food) {
	data, _ := json.Marshal(foods)
	database.RedisClient.Set(ctx, foodListCacheKey, data, FoodCacheTTL)
}

// InvalidateCatalog purge les caches après une mutation admin
func InvalidateCatalog(ctx context.Context) {
	database.RedisClient.Del(ctx, categoriesCacheKey, foodListCacheKey)
}
