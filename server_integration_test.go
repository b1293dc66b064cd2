package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"reportdesk/models"
)

func setupTestServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	jwtTTL = time.Hour

	var err error
	db, err = gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := autoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	initServices()

	r := gin.New()
	r.LoadHTMLGlob("templates/*.html")
	setupRoutes(r)
	return methodOverride(r)
}

// performRequest plays one request against the handler, optionally with a
// session cookie and an urlencoded form body.
func performRequest(h http.Handler, method, path string, form url.Values, session string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req, _ = http.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}
	if session != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: session})
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createTestUser(t *testing.T, email, password string, roles []string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := models.User{Email: email, HashedPassword: hashed, Roles: roles}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func sessionFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := issueSessionToken(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func createTestCategory(t *testing.T, author *models.User, name string) *models.Category {
	t.Helper()
	category := models.Category{Name: name, AuthorID: author.ID}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category: %v", err)
	}
	return &category
}

func createTestReport(t *testing.T, author *models.User, category *models.Category, title string) *models.Report {
	t.Helper()
	report := models.Report{
		Title:      title,
		Type:       models.TypeUnknown,
		Resolved:   false,
		CategoryID: category.ID,
		AuthorID:   author.ID,
	}
	if err := db.Create(&report).Error; err != nil {
		t.Fatalf("create report: %v", err)
	}
	return &report
}

func TestReportIndexRoute(t *testing.T) {
	h := setupTestServer(t)

	resp := performRequest(h, http.MethodGet, "/reports", nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("index status=%d", resp.Code)
	}
}

func TestReportShowRoute(t *testing.T) {
	h := setupTestServer(t)
	admin := createTestUser(t, "admin@example.com", "admin123", []string{models.RoleUser, models.RoleAdmin})
	category := createTestCategory(t, admin, "CATEGORY")
	report := createTestReport(t, admin, category, "TITLE")

	resp := performRequest(h, http.MethodGet, fmt.Sprintf("/reports/%d", report.ID), nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("show status=%d body=%s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "TITLE") {
		t.Fatalf("show body missing title: %s", resp.Body.String())
	}

	if resp := performRequest(h, http.MethodGet, "/reports/999", nil, ""); resp.Code != http.StatusNotFound {
		t.Fatalf("missing report status=%d", resp.Code)
	}
	if resp := performRequest(h, http.MethodGet, "/reports/0abc", nil, ""); resp.Code != http.StatusNotFound {
		t.Fatalf("malformed id status=%d", resp.Code)
	}
}

func TestReportCreateByAdmin(t *testing.T) {
	h := setupTestServer(t)
	admin := createTestUser(t, "admin@example.com", "admin123", []string{models.RoleUser, models.RoleAdmin})
	category := createTestCategory(t, admin, "CATEGORY")
	session := sessionFor(t, admin)

	form := url.Values{
		"title":       {"1111TITLE"},
		"description": {"1111TITLE"},
		"type":        {string(models.TypeFeatureRequest)},
		"category":    {fmt.Sprint(category.ID)},
		"resolved":    {"true"},
	}
	resp := performRequest(h, http.MethodPost, "/reports/create", form, session)
	if resp.Code != http.StatusFound {
		t.Fatalf("create status=%d body=%s", resp.Code, resp.Body.String())
	}
	if loc := resp.Header().Get("Location"); loc != "/reports" {
		t.Fatalf("create redirect location=%q", loc)
	}

	var report models.Report
	if err := db.First(&report, "title = ?", "1111TITLE").Error; err != nil {
		t.Fatalf("stored report not found: %v", err)
	}
	if report.Description != "1111TITLE" || report.Type != models.TypeFeatureRequest || !report.Resolved {
		t.Fatalf("stored report mismatch: %+v", report)
	}
	if report.AuthorID != admin.ID {
		t.Fatalf("author = %d, want %d", report.AuthorID, admin.ID)
	}
}

func TestReportCreateDeniedForNonAdmin(t *testing.T) {
	h := setupTestServer(t)
	admin := createTestUser(t, "admin@example.com", "admin123", []string{models.RoleUser, models.RoleAdmin})
	regular := createTestUser(t, "user@example.com", "user1234", []string{models.RoleUser})
	category := createTestCategory(t, admin, "CATEGORY")
	session := sessionFor(t, regular)

	// Even the GET never reaches the form.
	resp := performRequest(h, http.MethodGet, "/reports/create", nil, session)
	if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/reports" {
		t.Fatalf("denial GET status=%d location=%q", resp.Code, resp.Header().Get("Location"))
	}
	if !strings.Contains(resp.Header().Get("Set-Cookie"), flashCookie+"=") {
		t.Fatalf("denial carries no flash cookie: %v", resp.Header())
	}

	form := url.Values{
		"title":    {"SHOULD NOT EXIST"},
		"type":     {string(models.TypeBug)},
		"category": {fmt.Sprint(category.ID)},
	}
	resp = performRequest(h, http.MethodPost, "/reports/create", form, session)
	if resp.Code != http.StatusFound {
		t.Fatalf("denial POST status=%d", resp.Code)
	}
	var count int64
	db.Model(&models.Report{}).Count(&count)
	if count != 0 {
		t.Fatalf("report was created despite denial, count=%d", count)
	}
}

func TestReportCreateValidationFailure(t *testing.T) {
	h := setupTestServer(t)
	admin := createTestUser(t, "admin@example.com", "admin123", []string{models.RoleUser, models.RoleAdmin})
	category := createTestCategory(t, admin, "CATEGORY")
	session := sessionFor(t, admin)

	form := url.Values{
		"title":    {"abc"}, // below the 5-char minimum
		"type":     {string(models.TypeBug)},
		"category": {fmt.Sprint(category.ID)},
	}
	resp := performRequest(h, http.MethodPost, "/reports/create", form, session)
	if resp.Code != http.StatusOK {
		t.Fatalf("validation failure status=%d, want 200 re-render", resp.Code)
	}
	var count int64
	db.Model(&models.Report{}).Count(&count)
	if count != 0 {
		t.Fatalf("invalid report persisted, count=%d", count)
	}
}

func TestReportEditRoute(t *testing.T) {
	h := setupTestServer(t)
	admin := createTestUser(t, "admin@example.com", "admin123", []string{models.RoleUser, models.RoleAdmin})
	category := createTestCategory(t, admin, "CATEGORY")
	report := createTestReport(t, admin, category, "OLD TITLE")
	session := sessionFor(t, admin)

	form := url.Values{
		"_method":  {"PUT"},
		"title":    {"NEW TITLE"},
		"type":     {string(models.TypeImprovement)},
		"category": {fmt.Sprint(category.ID)},
	}
	resp := performRequest(h, http.MethodPost, fmt.Sprintf("/reports/%d/edit", report.ID), form, session)
	if resp.Code != http.StatusFound {
		t.Fatalf("edit status=%d body=%s", resp.Code, resp.Body.String())
	}

	var updated models.Report
	if err := db.First(&updated, report.ID).Error; err != nil {
		t.Fatalf("reload report: %v", err)
	}
	if updated.Title != "NEW TITLE" || updated.Type != models.TypeImprovement {
		t.Fatalf("edit not applied: %+v", updated)
	}
	if updated.AuthorID != admin.ID {
		t.Fatalf("author changed on edit: %d", updated.AuthorID)
	}
}

func TestReportDeleteRoleGate(t *testing.T) {
	h := setupTestServer(t)
	admin := createTestUser(t, "admin@example.com", "admin123", []string{models.RoleUser, models.RoleAdmin})
	regular := createTestUser(t, "user@example.com", "user1234", []string{models.RoleUser})
	category := createTestCategory(t, admin, "CATEGORY")
	report := createTestReport(t, admin, category, "TITLE")

	// The delete gate is declarative: denial is a hard 403, not a redirect.
	resp := performRequest(h, http.MethodGet, fmt.Sprintf("/reports/%d/delete", report.ID), nil, sessionFor(t, regular))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("non-admin delete status=%d, want 403", resp.Code)
	}

	form := url.Values{"_method": {"DELETE"}}
	resp = performRequest(h, http.MethodPost, fmt.Sprintf("/reports/%d/delete", report.ID), form, sessionFor(t, admin))
	if resp.Code != http.StatusFound {
		t.Fatalf("admin delete status=%d", resp.Code)
	}
	var count int64
	db.Model(&models.Report{}).Count(&count)
	if count != 0 {
		t.Fatalf("report still present after delete")
	}
}

func TestCategoryDeleteGuardEndToEnd(t *testing.T) {
	h := setupTestServer(t)
	admin := createTestUser(t, "admin@example.com", "admin123", []string{models.RoleUser, models.RoleAdmin})
	category := createTestCategory(t, admin, "CATEGORY")
	report := createTestReport(t, admin, category, "TITLE")
	session := sessionFor(t, admin)

	form := url.Values{"_method": {"DELETE"}}
	path := fmt.Sprintf("/category/%d/delete", category.ID)

	resp := performRequest(h, http.MethodPost, path, form, session)
	if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/category" {
		t.Fatalf("guarded delete status=%d location=%q", resp.Code, resp.Header().Get("Location"))
	}
	var count int64
	db.Model(&models.Category{}).Count(&count)
	if count != 1 {
		t.Fatalf("referenced category was deleted")
	}

	if err := db.Delete(&models.Report{}, report.ID).Error; err != nil {
		t.Fatalf("remove report: %v", err)
	}
	resp = performRequest(h, http.MethodPost, path, form, session)
	if resp.Code != http.StatusFound {
		t.Fatalf("delete status=%d", resp.Code)
	}
	db.Model(&models.Category{}).Count(&count)
	if count != 0 {
		t.Fatalf("empty category not deleted")
	}
}

func TestLoginFlow(t *testing.T) {
	h := setupTestServer(t)
	user := createTestUser(t, "test@example.com", "user1234", []string{models.RoleUser})

	form := url.Values{"email": {"test@example.com"}, "password": {"user1234"}}
	resp := performRequest(h, http.MethodPost, "/login", form, "")
	if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/reports" {
		t.Fatalf("login status=%d location=%q", resp.Code, resp.Header().Get("Location"))
	}
	if !strings.Contains(resp.Header().Get("Set-Cookie"), sessionCookie+"=") {
		t.Fatalf("login set no session cookie")
	}

	bad := url.Values{"email": {"test@example.com"}, "password": {"wrong"}}
	resp = performRequest(h, http.MethodPost, "/login", bad, "")
	if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/login" {
		t.Fatalf("failed login status=%d location=%q", resp.Code, resp.Header().Get("Location"))
	}

	// An authenticated visit to the form bounces to the report index.
	resp = performRequest(h, http.MethodGet, "/login", nil, sessionFor(t, user))
	if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/reports" {
		t.Fatalf("authenticated login form status=%d location=%q", resp.Code, resp.Header().Get("Location"))
	}
}

func TestLogoutClearsSession(t *testing.T) {
	h := setupTestServer(t)
	user := createTestUser(t, "test@example.com", "user1234", []string{models.RoleUser})

	resp := performRequest(h, http.MethodGet, "/logout", nil, sessionFor(t, user))
	if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/login" {
		t.Fatalf("logout status=%d location=%q", resp.Code, resp.Header().Get("Location"))
	}
	if !strings.Contains(resp.Header().Get("Set-Cookie"), sessionCookie+"=;") {
		t.Fatalf("logout did not clear session cookie: %v", resp.Header().Values("Set-Cookie"))
	}
}

func TestUpgradePasswordRendersInsteadOfRedirecting(t *testing.T) {
	h := setupTestServer(t)
	user := createTestUser(t, "test@example.com", "user1234", []string{models.RoleUser})
	session := sessionFor(t, user)

	form := url.Values{
		"_method":         {"PUT"},
		"password":        {"fresh-secret"},
		"repeat_password": {"fresh-secret"},
	}
	resp := performRequest(h, http.MethodPost, fmt.Sprintf("/%d/upgrade-password", user.ID), form, session)
	// The success path re-renders the form with a 200, it does not redirect.
	if resp.Code != http.StatusOK {
		t.Fatalf("upgrade password status=%d, want 200", resp.Code)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword(stored.HashedPassword, []byte("fresh-secret")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}
}

func TestUpgradePasswordValidation(t *testing.T) {
	h := setupTestServer(t)
	user := createTestUser(t, "test@example.com", "user1234", []string{models.RoleUser})
	session := sessionFor(t, user)

	form := url.Values{
		"_method":         {"PUT"},
		"password":        {"short"},
		"repeat_password": {"short"},
	}
	resp := performRequest(h, http.MethodPost, fmt.Sprintf("/%d/upgrade-password", user.ID), form, session)
	if resp.Code != http.StatusOK {
		t.Fatalf("validation failure status=%d", resp.Code)
	}
	var stored models.User
	db.First(&stored, user.ID)
	if bcrypt.CompareHashAndPassword(stored.HashedPassword, []byte("user1234")) != nil {
		t.Fatalf("password changed despite validation failure")
	}
}

func TestProfileUpdate(t *testing.T) {
	h := setupTestServer(t)
	user := createTestUser(t, "test@example.com", "user1234", []string{models.RoleUser})
	other := createTestUser(t, "other@example.com", "user1234", []string{models.RoleUser})
	session := sessionFor(t, user)

	form := url.Values{"_method": {"PUT"}, "email": {"renamed@example.com"}}
	resp := performRequest(h, http.MethodPost, fmt.Sprintf("/%d/profile", user.ID), form, session)
	if resp.Code != http.StatusFound || resp.Header().Get("Location") != "/reports" {
		t.Fatalf("profile update status=%d location=%q", resp.Code, resp.Header().Get("Location"))
	}
	var stored models.User
	db.First(&stored, user.ID)
	if stored.Email != "renamed@example.com" {
		t.Fatalf("email not updated: %s", stored.Email)
	}

	// A regular user cannot touch someone else's profile.
	resp = performRequest(h, http.MethodGet, fmt.Sprintf("/%d/profile", other.ID), nil, session)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("foreign profile status=%d, want 403", resp.Code)
	}
}

// Full flow from the original acceptance scenario: admin user, category
// "CATEGORY", report "TITLE" of type UNKNOWN, then fetch it by id.
func TestFullFlow(t *testing.T) {
	h := setupTestServer(t)
	admin := createTestUser(t, "testuser@example.com", "admin123", []string{models.RoleUser, models.RoleAdmin})
	category := createTestCategory(t, admin, "CATEGORY")
	session := sessionFor(t, admin)

	form := url.Values{
		"title":    {"TITLE"},
		"type":     {string(models.TypeUnknown)},
		"category": {fmt.Sprint(category.ID)},
	}
	resp := performRequest(h, http.MethodPost, "/reports/create", form, session)
	if resp.Code != http.StatusFound {
		t.Fatalf("create status=%d body=%s", resp.Code, resp.Body.String())
	}

	var report models.Report
	if err := db.First(&report, "title = ?", "TITLE").Error; err != nil {
		t.Fatalf("report not stored: %v", err)
	}
	if report.Resolved {
		t.Fatalf("resolved should default to false")
	}

	resp = performRequest(h, http.MethodGet, fmt.Sprintf("/reports/%d", report.ID), nil, "")
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "TITLE") {
		t.Fatalf("show status=%d body=%s", resp.Code, resp.Body.String())
	}
}
