package service

import (
	"reportdesk/models"
	"reportdesk/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService orchestrates account updates.
type UserService struct {
	users *repository.UserRepository
}

// NewUserService wires the service to its repository.
func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Save persists the user.
func (s *UserService) Save(user *models.User) error {
	return s.users.Save(user)
}

// FindOneByID returns the user or an error when no row exists.
func (s *UserService) FindOneByID(id uint) (*models.User, error) {
	return s.users.FindOneByID(id)
}

// FindOneByEmail returns the user with the given login email.
func (s *UserService) FindOneByEmail(email string) (*models.User, error) {
	return s.users.FindOneByEmail(email)
}

// UpgradePassword hashes the plaintext and stores it on the user.
func (s *UserService) UpgradePassword(user *models.User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.HashedPassword = hashed
	return s.users.Save(user)
}

// ChangeEmail updates the user's login email.
func (s *UserService) ChangeEmail(user *models.User, email string) error {
	user.Email = email
	return s.users.Save(user)
}
