package main

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"blogium/internal/db"
	"blogium/internal/handlers"
	"blogium/internal/middleware"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("blogium_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")
	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./web/uploads"
	}
	r.Static("/uploads", uploadDir)

	// Middleware
	r.Use(middleware.LoadUser())

	// Handlers
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler()
	categoryHandler := handlers.NewCategoryHandler()
	profileHandler := handlers.NewProfileHandler()
	commentHandler := handlers.NewCommentHandler()
	pagesHandler := handlers.NewPagesHandler()

	// Public Routes
	r.GET("/", postHandler.Home)
	r.GET("/posts/:id", postHandler.Detail)
	r.GET("/category/:slug", categoryHandler.Listing)
	r.GET("/profile/:username", profileHandler.Show)
	r.GET("/pages/about", pagesHandler.About)
	r.GET("/pages/rules", pagesHandler.Rules)

	r.GET("/auth/registration", authHandler.ShowRegister)
	r.POST("/auth/registration", authHandler.Register)
	r.GET("/auth/login", authHandler.ShowLogin)
	r.POST("/auth/login", authHandler.Login)
	r.GET("/auth/logout", authHandler.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/posts/create", postHandler.ShowCreate)
		authorized.POST("/posts/create", postHandler.Create)
		authorized.GET("/posts/:id/edit", postHandler.ShowEdit)
		authorized.POST("/posts/:id/edit", postHandler.Update)
		authorized.GET("/posts/:id/delete", postHandler.ShowDelete)
		authorized.POST("/posts/:id/delete", postHandler.Delete)

		authorized.POST("/posts/:id/comment", commentHandler.Create)
		authorized.GET("/posts/:id/edit_comment/:cid", commentHandler.ShowEdit)
		authorized.POST("/posts/:id/edit_comment/:cid", commentHandler.Update)
		authorized.GET("/posts/:id/delete_comment/:cid", commentHandler.ShowDelete)
		authorized.POST("/posts/:id/delete_comment/:cid", commentHandler.Delete)

		authorized.GET("/profile_edit", profileHandler.ShowEdit)
		authorized.POST("/profile_edit", profileHandler.Update)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("blogium server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"formatDateTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
		"inputDateTime": func(t time.Time) string {
			return t.Format("2006-01-02T15:04")
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"deref": func(p *uint) uint {
			if p == nil {
				return 0
			}
			return *p
		},
	}

	// Manual registration to ensure keys match handler expectation
	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/registration.html", funcMap, assemble(templatesDir+"/views/auth/registration.html")...)

	// Blog
	r.AddFromFilesFuncs("blog/index.html", funcMap, assemble(templatesDir+"/views/blog/index.html")...)
	r.AddFromFilesFuncs("blog/detail.html", funcMap, assemble(templatesDir+"/views/blog/detail.html")...)
	r.AddFromFilesFuncs("blog/category.html", funcMap, assemble(templatesDir+"/views/blog/category.html")...)
	r.AddFromFilesFuncs("blog/profile.html", funcMap, assemble(templatesDir+"/views/blog/profile.html")...)
	r.AddFromFilesFuncs("blog/form.html", funcMap, assemble(templatesDir+"/views/blog/form.html")...)
	r.AddFromFilesFuncs("blog/delete.html", funcMap, assemble(templatesDir+"/views/blog/delete.html")...)
	r.AddFromFilesFuncs("blog/comment.html", funcMap, assemble(templatesDir+"/views/blog/comment.html")...)
	r.AddFromFilesFuncs("blog/user.html", funcMap, assemble(templatesDir+"/views/blog/user.html")...)

	// Pages
	r.AddFromFilesFuncs("pages/about.html", funcMap, assemble(templatesDir+"/views/pages/about.html")...)
	r.AddFromFilesFuncs("pages/rules.html", funcMap, assemble(templatesDir+"/views/pages/rules.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
