package main

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"

	"reportdesk/models"

	"github.com/gin-gonic/gin"
)

var idRE = regexp.MustCompile(`^[1-9]\d*$`)

func setupRoutes(r *gin.Engine) {
	r.Use(sessionMiddleware())

	r.GET("/reports", reportIndexHandler)
	r.GET("/reports/:id", reportShowHandler)
	r.GET("/reports/create", reportCreateHandler)
	r.POST("/reports/create", reportCreateHandler)
	r.GET("/reports/:id/edit", reportEditHandler)
	r.PUT("/reports/:id/edit", reportEditHandler)
	// Deletion is gated by the route-level role check: a denial here is a
	// 403, unlike the in-handler checks on create/edit which redirect.
	r.GET("/reports/:id/delete", requireRole(models.RoleAdmin), reportDeleteHandler)
	r.DELETE("/reports/:id/delete", requireRole(models.RoleAdmin), reportDeleteHandler)

	r.GET("/category", categoryIndexHandler)
	r.GET("/category/:id", categoryShowHandler)
	r.GET("/category/create", categoryCreateHandler)
	r.POST("/category/create", categoryCreateHandler)
	r.GET("/category/:id/edit", categoryEditHandler)
	r.PUT("/category/:id/edit", categoryEditHandler)
	r.GET("/category/:id/delete", requireRole(models.RoleAdmin), categoryDeleteHandler)
	r.DELETE("/category/:id/delete", requireRole(models.RoleAdmin), categoryDeleteHandler)

	r.GET("/login", loginFormHandler)
	r.POST("/login", loginSubmitHandler)
	r.GET("/logout", logoutHandler)
	r.GET("/:id/upgrade-password", upgradePasswordHandler)
	r.PUT("/:id/upgrade-password", upgradePasswordHandler)
	r.GET("/:id/profile", profileHandler)
	r.PUT("/:id/profile", profileHandler)
}

// methodOverride lets HTML forms submit PUT and DELETE through a hidden
// _method field. It must wrap the engine: the router matches on the
// rewritten method.
func methodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodPost {
			switch req.PostFormValue("_method") {
			case http.MethodPut:
				req.Method = http.MethodPut
			case http.MethodDelete:
				req.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, req)
	})
}

// pathID parses the :id segment, accepting only positive integers.
func pathID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	if !idRE.MatchString(raw) {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// queryInt reads an integer query parameter. A missing parameter yields
// the default; a malformed one yields zero.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func notFound(c *gin.Context) {
	c.String(http.StatusNotFound, "404 page not found")
	c.Abort()
}

// flash is a one-shot notice carried across a redirect in a cookie.
type flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

const flashCookie = "flash"

// addFlash queues a notice for this request. It reaches the user either
// through the cookie on a redirect or directly on a re-render.
func addFlash(c *gin.Context, level, message string) {
	pending := pendingFlashes(c)
	pending = append(pending, flash{Level: level, Message: message})
	c.Set("flash_pending", pending)
}

func pendingFlashes(c *gin.Context) []flash {
	if v, ok := c.Get("flash_pending"); ok {
		if pending, ok := v.([]flash); ok {
			return pending
		}
	}
	return nil
}

// redirect flushes queued notices into the flash cookie and issues a 302.
func redirect(c *gin.Context, location string) {
	flashes := append(readFlashes(c), pendingFlashes(c)...)
	if len(flashes) > 0 {
		data, _ := json.Marshal(flashes)
		c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(data), 300, "/", "", false, true)
	}
	c.Redirect(http.StatusFound, location)
}

func readFlashes(c *gin.Context) []flash {
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie == "" {
		return nil
	}
	data, err := base64.RawURLEncoding.DecodeString(cookie)
	if err != nil {
		return nil
	}
	var flashes []flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}

// takeFlashes drains cookie and queued notices so each renders exactly once.
func takeFlashes(c *gin.Context) []flash {
	flashes := readFlashes(c)
	if flashes != nil {
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	flashes = append(flashes, pendingFlashes(c)...)
	c.Set("flash_pending", []flash(nil))
	return flashes
}

// render wraps c.HTML, attaching the drained flashes and current user.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = takeFlashes(c)
	data["user"] = currentUser(c)
	c.HTML(status, name, data)
}
