package main

import (
	"errors"
	"net/http"

	"reportdesk/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Cookies used to replay the last failed login attempt on the form.
const (
	lastEmailCookie = "last_email"
	authErrorCookie = "auth_error"
)

func loginFormHandler(c *gin.Context) {
	if currentUser(c) != nil {
		redirect(c, "/reports")
		return
	}
	lastEmail, _ := c.Cookie(lastEmailCookie)
	authError, err := c.Cookie(authErrorCookie)
	if err == nil && authError != "" {
		c.SetCookie(authErrorCookie, "", -1, "/", "", false, true)
	}
	render(c, http.StatusOK, "login.html", gin.H{
		"lastEmail": lastEmail,
		"authError": authError,
	})
}

func loginSubmitHandler(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := Authenticate(email, password)
	if err != nil {
		c.SetCookie(lastEmailCookie, email, 300, "/", "", false, true)
		c.SetCookie(authErrorCookie, "Invalid credentials.", 300, "/", "", false, true)
		redirect(c, "/login")
		return
	}

	token, err := issueSessionToken(user)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to establish session")
		return
	}
	setSessionCookie(c, token)
	c.SetCookie(lastEmailCookie, "", -1, "/", "", false, true)
	redirect(c, "/reports")
}

// logoutHandler is intentionally blank. The route only exists so it is
// registered; sessionMiddleware intercepts the path, clears the session
// cookie and redirects before this ever runs.
func logoutHandler(c *gin.Context) {}

func upgradePasswordHandler(c *gin.Context) {
	target, ok := resolveAccount(c)
	if !ok {
		return
	}

	if c.Request.Method == http.MethodPut {
		var form upgradePasswordForm
		if err := c.ShouldBind(&form); err != nil {
			render(c, http.StatusOK, "upgrade_password.html", gin.H{"account": target, "errors": formErrors(err)})
			return
		}
		if err := userService.UpgradePassword(target, form.Password); err != nil {
			c.String(http.StatusInternalServerError, "save failed")
			return
		}
		// Success deliberately falls through to a 200 re-render of the
		// same form instead of redirecting.
		addFlash(c, "success", "Updated successfully.")
	}

	render(c, http.StatusOK, "upgrade_password.html", gin.H{"account": target})
}

func profileHandler(c *gin.Context) {
	target, ok := resolveAccount(c)
	if !ok {
		return
	}

	if c.Request.Method == http.MethodPut {
		var form profileForm
		if err := c.ShouldBind(&form); err != nil {
			render(c, http.StatusOK, "profile_edit.html", gin.H{"account": target, "form": form, "errors": formErrors(err)})
			return
		}
		if err := userService.ChangeEmail(target, form.Email); err != nil {
			c.String(http.StatusInternalServerError, "save failed")
			return
		}
		addFlash(c, "success", "Updated successfully.")
		redirect(c, "/reports")
		return
	}

	render(c, http.StatusOK, "profile_edit.html", gin.H{"account": target, "form": profileForm{Email: target.Email}})
}

// resolveAccount loads the account named by :id and enforces that the
// caller is that user or an admin. The denial is a hard 403.
func resolveAccount(c *gin.Context) (*models.User, bool) {
	id, ok := pathID(c)
	if !ok {
		notFound(c)
		return nil, false
	}
	target, err := userService.FindOneByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
		} else {
			c.String(http.StatusInternalServerError, "query failed")
		}
		return nil, false
	}
	user := currentUser(c)
	if user == nil || (user.ID != target.ID && !user.IsAdminRole()) {
		c.AbortWithStatus(http.StatusForbidden)
		return nil, false
	}
	return target, true
}
