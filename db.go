package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"reportdesk/config"
	"reportdesk/models"
	"reportdesk/repository"
	"reportdesk/service"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

var (
	reportService   *service.ReportService
	categoryService *service.CategoryService
	userService     *service.UserService
)

func initDB(conf *config.Config) error {
	var err error
	db, err = openDatabase(conf.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if conf.Database.AutoMigrate {
		if err := autoMigrate(db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func openDatabase(dbc config.Database) (*gorm.DB, error) {
	switch dbc.Driver {
	case "sqlite":
		dsn := dbc.DSN
		if dsn == "" {
			dsn = "reportdesk.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "postgres", "":
		if dbc.DSN == "" {
			return nil, fmt.Errorf("DB_DSN is not set; the postgres driver requires a DSN")
		}
		return gorm.Open(postgres.Open(dbc.DSN), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unknown db driver %q", dbc.Driver)
	}
}

func autoMigrate(db *gorm.DB) error {
	// Users first so category/report FKs can be applied safely.
	return db.AutoMigrate(&models.User{}, &models.Category{}, &models.Report{})
}

func initServices() {
	reportRepo := repository.NewReportRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	categoryService = service.NewCategoryService(categoryRepo, reportRepo)
	reportService = service.NewReportService(reportRepo, categoryService)
	userService = service.NewUserService(userRepo)
}

// seedDB loads demo fixtures: an admin, a regular user, a set of
// categories and 40 randomized reports. Idempotent on the users.
func seedDB() error {
	admin, err := ensureUser("admin@example.com", "admin123", []string{models.RoleUser, models.RoleAdmin})
	if err != nil {
		return err
	}
	if _, err := ensureUser("user@example.com", "user1234", []string{models.RoleUser}); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // already seeded
	}

	names := []string{"Backend", "Frontend", "Infrastructure", "Documentation", "Other"}
	categories := make([]models.Category, 0, len(names))
	for _, name := range names {
		c := models.Category{Name: name, AuthorID: admin.ID}
		if err := db.Create(&c).Error; err != nil {
			return err
		}
		categories = append(categories, c)
	}

	types := models.ReportTypes()
	for i := 0; i < 40; i++ {
		created := time.Now().AddDate(0, 0, -1-rand.Intn(100))
		report := models.Report{
			Title:       fmt.Sprintf("Sample report #%d", i+1),
			Description: "Seeded demo report.",
			Type:        types[rand.Intn(len(types))],
			Resolved:    rand.Intn(2) == 0,
			CategoryID:  categories[rand.Intn(len(categories))].ID,
			AuthorID:    admin.ID,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
		if err := db.Create(&report).Error; err != nil {
			return err
		}
	}
	log.Println("seeded demo categories and reports")
	return nil
}

func ensureUser(email, password string, roles []string) (*models.User, error) {
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return &existing, nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{Email: email, HashedPassword: hashed, Roles: roles}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	log.Printf("seeded user %s", email)
	return &user, nil
}
