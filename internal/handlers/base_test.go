package handlers

import (
	"html/template"
	"net/http/httptest"
	"sync"
	"testing"

	"blogium/internal/middleware"
	"blogium/internal/models"

	"github.com/gin-gonic/gin"
)

func newRenderContext(t *testing.T, path string, viewer *models.User) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(httptest.NewRecorder())
	engine.SetHTMLTemplate(template.Must(template.New("page.html").Parse("ok")))
	c.Request = httptest.NewRequest("GET", path, nil)
	if viewer != nil {
		c.Set(middleware.CurrentUserKey, viewer)
	}
	return c
}

func TestRenderDoesNotMutateSharedMap(t *testing.T) {
	shared := gin.H{"Title": "Home"}

	Render(newRenderContext(t, "/", &models.User{Username: "ana"}), 200, "page.html", shared)
	Render(newRenderContext(t, "/", nil), 200, "page.html", shared)

	if len(shared) != 1 {
		t.Fatalf("shared map has %d keys, want 1: %v", len(shared), shared)
	}
	if _, ok := shared["CurrentUser"]; ok {
		t.Fatal("CurrentUser leaked into shared map")
	}
	if _, ok := shared["CurrentPath"]; ok {
		t.Fatal("CurrentPath leaked into shared map")
	}
}

// Cached pages hand the same map to every request that hits them, so
// Render must be safe to call concurrently on one instance.
func TestRenderConcurrentOnSharedMap(t *testing.T) {
	shared := gin.H{"Title": "Home", "Posts": []models.Post{}}
	viewer := &models.User{Username: "ana"}

	var wg sync.WaitGroup
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func(authed bool) {
			defer wg.Done()
			var u *models.User
			if authed {
				u = viewer
			}
			Render(newRenderContext(t, "/", u), 200, "page.html", shared)
		}(i%2 == 0)
	}
	wg.Wait()

	if len(shared) != 2 {
		t.Fatalf("shared map has %d keys, want 2: %v", len(shared), shared)
	}
}
