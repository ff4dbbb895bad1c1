package repositories

import (
	"fmt"
	"log"
	"strings"
	"time"

	"veridesk/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	userCacheExpiration = 24 * time.Hour
)

func GetUserByEmail(email string) (*models.User, error) {
	// Try cache first
	cacheKey := GetUserCacheKeyByEmail(email)
	cachedUser, err := cacheGetUser(cacheKey)
	if err == nil {
		return cachedUser, nil
	}
	if err != redis.Nil {
		log.Printf("Cache error for email %s: %v", email, err)
	}

	// Cache miss, query database
	var user models.User
	err = DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}

	// Update cache async to avoid blocking
	go func() {
		if err := cacheSetUser(cacheKey, &user, userCacheExpiration); err != nil {
			log.Printf("Failed to cache user by email: %v", err)
		}
	}()

	return &user, nil
}

func GetUserByID(userID uint) (*models.User, error) {
	cacheKey := getUserCacheKeyByID(userID)
	cachedUser, err := cacheGetUser(cacheKey)
	if err == nil {
		return cachedUser, nil
	}
	if err != redis.Nil {
		log.Printf("Cache error for ID %d: %v", userID, err)
	}

	var user models.User
	err = DB.Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}

	go func() {
		if err := cacheSetUser(cacheKey, &user, userCacheExpiration); err != nil {
			log.Printf("Failed to cache user by ID: %v", err)
		}
	}()

	return &user, nil
}

func GetUserByPhone(phone string) (*models.User, error) {
	cacheKey := GetUserCacheKeyByPhone(phone)
	cachedUser, err := cacheGetUser(cacheKey)
	if err == nil {
		return cachedUser, nil
	}
	if err != redis.Nil {
		log.Printf("Cache error for phone %s: %v", phone, err)
	}

	var user models.User
	result := DB.Where("phone = ?", phone).First(&user)
	if result.Error != nil {
		return nil, result.Error
	}

	go func() {
		if err := cacheSetUser(cacheKey, &user, userCacheExpiration); err != nil {
			log.Printf("Failed to cache user by phone: %v", err)
		}
	}()

	return &user, nil
}

func CreateUser(user *models.User) (*models.User, error) {
	if DB == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var existingUser models.User
	err := DB.Where("email = ? AND deleted_at IS NULL", user.Email).First(&existingUser).Error
	if err == nil || err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("user with email %s already exists", user.Email)
	}

	err = DB.Where("phone = ? AND deleted_at IS NULL", user.Phone).First(&existingUser).Error
	if err == nil || err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("user with phone %s already exists", user.Phone)
	}

	result := DB.Create(user)
	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "uni_users_email") {
			return nil, fmt.Errorf("user with email %s already exists", user.Email)
		}
		log.Printf("Error creating user: %T", result.Error)
		return nil, fmt.Errorf("failed to create user")
	}

	// Invalidate potential cache entries
	go func() {
		RedisClient.Del(RedisCtx,
			GetUserCacheKeyByEmail(user.Email),
			GetUserCacheKeyByPhone(user.Phone),
		)
	}()

	return user, nil
}

func UpdateUser(user *models.User) error {
	result := DB.Save(user)
	if result.Error == nil {
		InvalidateUserCache(user.ID)
	}
	return result.Error
}

func IncrementUserTokenVersion(userID uint) error {
	// First, fetch the user to get the email and phone values.
	var user models.User
	if err := DB.First(&user, userID).Error; err != nil {
		return err
	}

	// Invalidate all cache keys for the user
	RedisClient.Del(RedisCtx,
		getUserCacheKeyByID(userID),
		GetUserCacheKeyByEmail(user.Email),
		GetUserCacheKeyByPhone(user.Phone),
	)

	// Increment the token version and save to the database
	user.TokenVersion++
	return DB.Save(&user).Error
}
