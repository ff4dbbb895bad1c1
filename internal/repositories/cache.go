package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"veridesk/internal/config"
	"veridesk/internal/models"

	"github.com/redis/go-redis/v9"
)

var (
	RedisCtx    = context.Background()
	RedisClient *redis.Client
)

// InitRedis initializes the shared Redis client
func InitRedis() {
	host := config.GetEnv("REDIS_HOST", "localhost")
	port := config.GetEnv("REDIS_PORT", "6379")

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	})

	if _, err := RedisClient.Ping(RedisCtx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connection verified")
}

func getUserCacheKeyByID(id uint) string {
	return fmt.Sprintf("user:id:%d", id)
}

func GetUserCacheKeyByEmail(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

func GetUserCacheKeyByPhone(phone string) string {
	return fmt.Sprintf("user:phone:%s", phone)
}

func cacheGetUser(key string) (*models.User, error) {
	val, err := RedisClient.Get(RedisCtx, key).Result()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func cacheSetUser(key string, user *models.User, expiration time.Duration) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return RedisClient.Set(RedisCtx, key, data, expiration).Err()
}

// InvalidateUserCache removes all cached entries for a user
func InvalidateUserCache(userID uint) {
	keys := []string{getUserCacheKeyByID(userID)}

	var user models.User
	if err := DB.First(&user, userID).Error; err == nil {
		if user.Email != "" {
			keys = append(keys, GetUserCacheKeyByEmail(user.Email))
		}
		if user.Phone != "" {
			keys = append(keys, GetUserCacheKeyByPhone(user.Phone))
		}
	}

	if err := RedisClient.Del(RedisCtx, keys...).Err(); err != nil {
		log.Printf("Failed to invalidate cache for user %d: %v", userID, err)
	}
}
