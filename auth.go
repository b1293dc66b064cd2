package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"reportdesk/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	jwtSecret []byte        // loaded from config (env JWT_SECRET, dev fallback)
	jwtTTL    time.Duration // session token lifetime
)

const sessionCookie = "session"

// Authenticate checks email+password against the stored bcrypt hash.
func Authenticate(email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	user, err := userService.FindOneByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

// issueSessionToken signs a short HS256 token identifying the user.
func issueSessionToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   fmt.Sprint(user.ID),
		"email": user.Email,
		"exp":   time.Now().Add(jwtTTL).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// parseSessionToken validates the token and returns the user id.
func parseSessionToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	var id uint
	if _, err := fmt.Sscanf(sub, "%d", &id); err != nil || id == 0 {
		return 0, fmt.Errorf("invalid subject")
	}
	return id, nil
}

// sessionMiddleware resolves the authenticated user from the session
// cookie and stashes it in the request context. It also intercepts
// /logout so the route handler itself never runs any logic: the cookie
// is cleared here and the client is sent back to the login form.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
			if id, err := parseSessionToken(cookie); err == nil {
				if user, err := userService.FindOneByID(id); err == nil {
					c.Set("user", user)
				}
			}
		}
		if c.Request.URL.Path == "/logout" {
			clearSessionCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUser returns the authenticated user, or nil for guests.
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get("user"); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// requireRole hard-enforces a role on the route: the denial is an
// authorization failure response, not a redirect.
func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !user.HasRole(role) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(sessionCookie, token, int(jwtTTL.Seconds()), "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}
