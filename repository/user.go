package repository

import (
	"reportdesk/models"

	"gorm.io/gorm"
)

// UserRepository persists and looks up user accounts.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a repository bound to db.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Save inserts or updates the user.
func (r *UserRepository) Save(user *models.User) error {
	return r.db.Save(user).Error
}

// FindOneByEmail returns the user with the given login email.
func (r *UserRepository) FindOneByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOneByID returns the user or gorm.ErrRecordNotFound.
func (r *UserRepository) FindOneByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
