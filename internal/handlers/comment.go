package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"blogium/internal/db"
	"blogium/internal/middleware"
	"blogium/internal/models"
	"blogium/internal/policy"
	"blogium/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

func detailURL(postID uint) string {
	return fmt.Sprintf("/posts/%d", postID)
}

// Create adds a comment to a post and returns to its detail page. An
// empty body is silently dropped, the browser just lands back on the
// post.
func (h *CommentHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		NotFound(c)
		return
	}

	text := strings.TrimSpace(c.PostForm("text"))
	if text != "" {
		comment := models.Comment{
			Text:     text,
			AuthorID: user.ID,
			PostID:   post.ID,
		}
		db.DB.Create(&comment)
	}

	c.Redirect(http.StatusFound, detailURL(post.ID))
}

func (h *CommentHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("id"))
	id := utils.StringToUint(c.Param("cid"))

	var comment models.Comment
	if err := db.DB.Preload("Post").First(&comment, id).Error; err != nil {
		NotFound(c)
		return
	}

	// Non-owners are sent back to the parent post, never shown an error
	if !policy.CanMutate(comment.AuthorID, user) {
		c.Redirect(http.StatusFound, detailURL(postID))
		return
	}

	Render(c, http.StatusOK, "blog/comment.html", gin.H{
		"Title":   "Edit comment",
		"Comment": comment,
	})
}

// Update changes a comment's text. Text is the only editable field.
func (h *CommentHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("id"))
	id := utils.StringToUint(c.Param("cid"))

	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		NotFound(c)
		return
	}

	if !policy.CanMutate(comment.AuthorID, user) {
		c.Redirect(http.StatusFound, detailURL(postID))
		return
	}

	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		Render(c, http.StatusBadRequest, "blog/comment.html", gin.H{
			"Title":   "Edit comment",
			"Comment": comment,
			"Error":   "Comment text is required",
		})
		return
	}

	comment.Text = text
	db.DB.Save(&comment)

	c.Redirect(http.StatusFound, detailURL(comment.PostID))
}

func (h *CommentHandler) ShowDelete(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("id"))
	id := utils.StringToUint(c.Param("cid"))

	var comment models.Comment
	if err := db.DB.Preload("Author").First(&comment, id).Error; err != nil {
		NotFound(c)
		return
	}

	if !policy.CanMutate(comment.AuthorID, user) {
		c.Redirect(http.StatusFound, detailURL(postID))
		return
	}

	Render(c, http.StatusOK, "blog/comment.html", gin.H{
		"Title":    "Delete comment",
		"Comment":  comment,
		"Deleting": true,
	})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	postID := utils.StringToUint(c.Param("id"))
	id := utils.StringToUint(c.Param("cid"))

	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		NotFound(c)
		return
	}

	if !policy.CanMutate(comment.AuthorID, user) {
		c.Redirect(http.StatusFound, detailURL(postID))
		return
	}

	db.DB.Unscoped().Delete(&comment)

	c.Redirect(http.StatusFound, detailURL(comment.PostID))
}
