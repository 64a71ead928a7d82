package handlers

import (
	"net/http"
	"strings"

	"blogium/internal/db"
	"blogium/internal/models"
	"blogium/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/registration.html", gin.H{"Title": "Registration"})
}

func (h *AuthHandler) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	confirm := c.PostForm("password_confirm")

	renderError := func(message string) {
		Render(c, http.StatusBadRequest, "auth/registration.html", gin.H{
			"Title":    "Registration",
			"Error":    message,
			"Username": username,
			"Email":    email,
		})
	}

	if username == "" {
		renderError("Username is required")
		return
	}
	if !strings.Contains(email, "@") {
		renderError("Enter a valid email address")
		return
	}
	if len(password) < 6 {
		renderError("Password must be at least 6 characters")
		return
	}
	if password != confirm {
		renderError("Passwords do not match")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		renderError("Registration failed, try again")
		return
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		renderError("Username or email is already taken")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Title": "Login"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Title": "Login",
			"Error": "Wrong username or password",
		})
		return
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Title": "Login",
			"Error": "Wrong username or password",
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
