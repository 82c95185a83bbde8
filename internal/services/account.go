package services

import (
	"errors"
	"strings"

	"github.com/diewo77/invoicegen/internal/models"
	"github.com/diewo77/invoicegen/validation"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService handles signup and login.
type AccountService struct {
	DB *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService { return &AccountService{DB: db} }

// Signup validates the registration input, hashes the password and creates
// the user. A unique-constraint hit surfaces as ErrDuplicateEmail.
func (s *AccountService) Signup(name, email, password, confirm string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	v := validation.Violations{}
	validation.Required("name", name, v)
	if _, ok := v["name"]; !ok {
		validation.PersonName("name", name, v)
	}
	validation.Required("email", email, v)
	if _, ok := v["email"]; !ok {
		validation.Email("email", email, v)
	}
	validation.Required("password", password, v)
	if _, ok := v["password"]; !ok {
		validation.Password("password", password, v)
	}
	if confirm == "" {
		v["confirm_password"] = "required"
	} else if password != confirm {
		v["confirm_password"] = "mismatch"
	}
	if !v.Empty() {
		return models.User{}, invalid(v)
	}

	// Pre-check gives the common duplicate a clean path; the create below
	// still maps constraint violations for the race window.
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return models.User{}, err
	}
	if count > 0 {
		return models.User{}, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{Name: name, Email: email, Password: string(hash)}
	if err := s.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return user, nil
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AccountService) Login(email, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}
