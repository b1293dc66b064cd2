package main

import (
	"fmt"
	"log"
	"os"

	"reportdesk/config"
	"reportdesk/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: go run ./cmd/create_user <email> <password> [admin]")
		os.Exit(2)
	}
	email := os.Args[1]
	password := os.Args[2]
	roles := []string{models.RoleUser}
	if len(os.Args) > 3 && os.Args[3] == "admin" {
		roles = append(roles, models.RoleAdmin)
	}

	conf, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	var db *gorm.DB
	switch conf.Database.Driver {
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(conf.Database.DSN), &gorm.Config{})
	default:
		db, err = gorm.Open(postgres.Open(conf.Database.DSN), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		fmt.Printf("user %s already exists (id=%d)\n", email, existing.ID)
		os.Exit(0)
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}
	user := models.User{Email: email, HashedPassword: hpw, Roles: roles}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created user %s id=%d roles=%v\n", email, user.ID, roles)
}
