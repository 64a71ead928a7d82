package handlers

import (
	"net/http"

	"blogium/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'.
// The map passed in may come from the page cache and be shared by
// concurrent requests, so it is copied before any per-request value
// is written into it.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	data := make(gin.H, len(obj)+2)
	for k, v := range obj {
		data[k] = v
	}

	if user := middleware.Viewer(c); user != nil {
		data["CurrentUser"] = user
	}
	data["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, data)
}

// NotFound renders the shared 404 page. Visibility denials go through
// here too: a hidden post or category is indistinguishable from a
// missing one.
func NotFound(c *gin.Context) {
	Render(c, http.StatusNotFound, "error.html", gin.H{
		"Title":   "Page not found",
		"Message": "The page you were looking for does not exist.",
	})
}
