package handlers

import (
	"net/http"
	"strings"

	"blogium/internal/db"
	"blogium/internal/middleware"
	"blogium/internal/models"
	"blogium/internal/policy"
	"blogium/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct{}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// Show lists a user's posts. Owners reviewing their own profile see
// everything, drafts and scheduled posts included; everyone else sees
// only the live subsequence. This is the one listing where self-view
// and others'-view diverge.
func (h *ProfileHandler) Show(c *gin.Context) {
	username := c.Param("username")
	viewer := middleware.Viewer(c)

	var owner models.User
	if err := db.DB.Where("username = ?", username).First(&owner).Error; err != nil {
		NotFound(c)
		return
	}

	var all []models.Post
	db.DB.Preload("Author").Preload("Category").Preload("Location").
		Where("author_id = ?", owner.ID).
		Find(&all)

	visible := policy.ProfileListing(owner, viewer, all, policy.Today())

	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	pagination := utils.NewPagination(page, int64(len(visible)))
	posts := utils.Slice(visible, pagination)

	self := viewer != nil && viewer.ID == owner.ID
	h.render(c, owner, posts, pagination, self)
}

func (h *ProfileHandler) render(c *gin.Context, owner models.User, posts []models.Post, pagination utils.Pagination, self bool) {
	fillCommentCounts(posts)
	Render(c, http.StatusOK, "blog/profile.html", gin.H{
		"Title":      owner.Username,
		"Profile":    owner,
		"Posts":      posts,
		"Pagination": pagination,
		"IsSelf":     self,
	})
}

func (h *ProfileHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	Render(c, http.StatusOK, "blog/user.html", gin.H{
		"Title":   "Edit profile",
		"Profile": user,
	})
}

// Update edits the viewer's own profile. The editable fields are a
// static allowlist: username, email, first and last name.
func (h *ProfileHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)

	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	firstName := strings.TrimSpace(c.PostForm("first_name"))
	lastName := strings.TrimSpace(c.PostForm("last_name"))

	renderError := func(message string) {
		Render(c, http.StatusBadRequest, "blog/user.html", gin.H{
			"Title":   "Edit profile",
			"Profile": user,
			"Error":   message,
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

	updates := map[string]interface{}{
		"username":   username,
		"email":      email,
		"first_name": firstName,
		"last_name":  lastName,
	}
	if err := db.DB.Model(user).Updates(updates).Error; err != nil {
		renderError("Username or email is already taken")
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+username)
}
