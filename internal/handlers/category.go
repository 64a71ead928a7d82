package handlers

import (
	"net/http"

	"blogium/internal/db"
	"blogium/internal/models"
	"blogium/internal/policy"
	"blogium/internal/utils"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// Listing shows the live posts of one category, ten per page. An
// unpublished category answers 404 for everyone; authors get no
// override on listing pages, even for their own posts inside it.
func (h *CategoryHandler) Listing(c *gin.Context) {
	slug := c.Param("slug")

	var category models.Category
	if err := db.DB.Where("slug = ?", slug).First(&category).Error; err != nil {
		NotFound(c)
		return
	}

	if !policy.CanViewCategoryListing(category) {
		NotFound(c)
		return
	}

	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	today := policy.Today()

	var total int64
	db.DB.Model(&models.Post{}).
		Scopes(policy.LiveScope(today)).
		Where("posts.category_id = ?", category.ID).
		Count(&total)
	pagination := utils.NewPagination(page, total)

	var posts []models.Post
	db.DB.Preload("Author").Preload("Category").Preload("Location").
		Scopes(policy.LiveScope(today), policy.NewestFirst).
		Where("posts.category_id = ?", category.ID).
		Limit(utils.PerPage).
		Offset(pagination.Offset()).
		Find(&posts)

	fillCommentCounts(posts)

	Render(c, http.StatusOK, "blog/category.html", gin.H{
		"Title":      category.Title,
		"Category":   category,
		"Posts":      posts,
		"Pagination": pagination,
	})
}
