package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"travel_booking/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Registration is the sign-up form
type Registration struct {
	Name     string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email,max=255"`
	Password string `validate:"required,min=6,max=72"`
	Phone    string `validate:"omitempty,max=40"`
}

// NormalizeEmail trims and lower-cases an address before storage or lookup
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IdentityService owns accounts and credential checks.
type IdentityService struct {
	db       *gorm.DB
	validate *validator.Validate
	cost     int
}

// NewIdentityService creates the identity store
func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db, validate: validator.New(), cost: bcrypt.DefaultCost}
}

// Register creates a customer account.
func (s *IdentityService) Register(ctx context.Context, r Registration) (*domain.User, error) {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	if err := s.validate.Struct(r); err != nil {
		return nil, validationFrom(err)
	}

	db := s.db.WithContext(ctx)
	var taken int64
	if err := db.Model(&domain.User{}).Where("email = ?", r.Email).Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken > 0 {
		return nil, domain.ErrDuplicateEmail
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{Email: r.Email, PasswordHash: string(hash), Name: r.Name, Phone: r.Phone}
	if err := db.Create(&user).Error; err != nil {
		// Lost a race against another registration with the same address
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User registered")
	return &user, nil
}

// Authenticate verifies an e-mail/password pair. Unknown e-mail and wrong
// password fail identically.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &user, nil
}

// Lookup restores the principal behind a session
func (s *IdentityService) Lookup(ctx context.Context, id uint) (domain.Principal, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Principal{}, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
		return domain.Principal{}, fmt.Errorf("get user %d: %w", id, err)
	}
	return user.Principal(), nil
}

var validationMessages = map[string]string{
	"required": "campo obrigatório",
	"email":    "e-mail inválido",
	"min":      "muito curto",
	"max":      "muito longo",
}

// validationFrom converts the first validator failure into a domain error
func validationFrom(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.Invalid("", err.Error())
	}
	fe := verrs[0]
	msg, ok := validationMessages[fe.Tag()]
	if !ok {
		msg = "valor inválido"
	}
	return domain.Invalid(strings.ToLower(fe.Field()), msg)
}
