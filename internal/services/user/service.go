package user

import (
	"fmt"

	"veridesk/internal/models"
	"veridesk/internal/repositories"
	"veridesk/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// RegistrationError carries itemized field failures from registration.
type RegistrationError struct {
	Fields map[string]string
}

func (e *RegistrationError) Error() string {
	return "registration validation failed"
}

type Service interface {
	Register(input *models.CreateUserInput) (*models.User, error)
	GetByID(userID uint) (*models.User, error)
}

type service struct{}

func NewService() Service {
	return &service{}
}

// Register creates an account. Self-service registration only creates
// merchants; reviewer accounts (support, bank, admin) are seeded
// separately.
func (s *service) Register(input *models.CreateUserInput) (*models.User, error) {
	v := validation.New()
	v.UserRegistration(input)
	if !v.Valid() {
		return nil, &RegistrationError{Fields: v.Errors}
	}

	role := input.Role
	if role == "" {
		role = "merchant"
	}
	if role != "merchant" {
		return nil, &RegistrationError{Fields: map[string]string{"role": "only merchant accounts can self-register"}}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Password:     string(hashedPassword),
		Role:         role,
		Status:       "active",
		TokenVersion: 1,
	}

	created, err := repositories.CreateUser(user)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) GetByID(userID uint) (*models.User, error) {
	return repositories.GetUserByID(userID)
}
