package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"blogium/internal/db"
	"blogium/internal/middleware"
	"blogium/internal/models"
	"blogium/internal/policy"
	"blogium/internal/services"
	"blogium/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	images *services.ImageStore
}

func NewPostHandler() *PostHandler {
	return &PostHandler{
		images: services.NewImageStore(),
	}
}

// fillCommentCounts batch-loads comment counts for a page of posts
func fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type CountResult struct {
		PostID uint
		Count  int
	}
	var results []CountResult
	db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}

func (h *PostHandler) Home(c *gin.Context) {
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	today := policy.Today()

	cacheKey := fmt.Sprintf("home:page:%d", page)
	if cachedData := utils.GetCache().Get(cacheKey); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			Render(c, http.StatusOK, "blog/index.html", hData)
			return
		}
	}

	var total int64
	db.DB.Model(&models.Post{}).Scopes(policy.LiveScope(today)).Count(&total)
	pagination := utils.NewPagination(page, total)

	var posts []models.Post
	db.DB.Preload("Author").Preload("Category").Preload("Location").
		Scopes(policy.LiveScope(today), policy.NewestFirst).
		Limit(utils.PerPage).
		Offset(pagination.Offset()).
		Find(&posts)

	fillCommentCounts(posts)

	renderData := gin.H{
		"Title":      "Latest posts",
		"Posts":      posts,
		"Pagination": pagination,
	}

	utils.GetCache().Set(cacheKey, renderData, 1*time.Minute)

	Render(c, http.StatusOK, "blog/index.html", renderData)
}

// CommentView pairs a comment with its rendered body for the detail page
type CommentView struct {
	models.Comment
	TextHTML template.HTML
}

func (h *PostHandler) Detail(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	viewer := middleware.Viewer(c)

	var post models.Post
	if err := db.DB.Preload("Author").Preload("Category").Preload("Location").
		First(&post, id).Error; err != nil {
		NotFound(c)
		return
	}

	// Hidden posts answer 404, not 403: existence is not revealed
	if !policy.CanViewPost(post, viewer, policy.Today()) {
		NotFound(c)
		return
	}

	var comments []models.Comment
	db.DB.Preload("Author").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Find(&comments)

	commentViews := make([]CommentView, len(comments))
	for i, com := range comments {
		commentViews[i] = CommentView{
			Comment:  com,
			TextHTML: utils.RenderMarkdown(com.Text),
		}
	}

	Render(c, http.StatusOK, "blog/detail.html", gin.H{
		"Title":    post.Title,
		"Post":     post,
		"PostText": utils.RenderMarkdown(post.Text),
		"Comments": commentViews,
	})
}

// postForm carries the static field allowlist for post create/edit.
// Anything not listed here cannot be set through the form, whatever
// columns the model grows later.
type postForm struct {
	Title       string
	Text        string
	PubDate     time.Time
	CategoryID  uint
	LocationID  *uint
	IsPublished bool
}

func parsePostForm(c *gin.Context) (postForm, string) {
	form := postForm{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Text:        strings.TrimSpace(c.PostForm("text")),
		IsPublished: c.PostForm("is_published") != "",
	}

	if form.Title == "" {
		return form, "Title is required"
	}
	if form.Text == "" {
		return form, "Text is required"
	}

	form.PubDate = time.Now()
	if raw := c.PostForm("pub_date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02T15:04", raw, time.Local)
		if err != nil {
			parsed, err = time.ParseInLocation("2006-01-02", raw, time.Local)
		}
		if err != nil {
			return form, "Publication date is invalid"
		}
		form.PubDate = parsed
	}

	form.CategoryID = utils.StringToUint(c.PostForm("category_id"))
	var category models.Category
	if err := db.DB.First(&category, form.CategoryID).Error; err != nil {
		return form, "Choose a category"
	}

	if locID := utils.StringToUint(c.PostForm("location_id")); locID != 0 {
		form.LocationID = &locID
	}

	return form, ""
}

func (h *PostHandler) formContext(title string, post *models.Post, errMsg string) gin.H {
	var categories []models.Category
	db.DB.Order("id ASC").Find(&categories)
	var locations []models.Location
	db.DB.Where("is_published = ?", true).Order("id ASC").Find(&locations)

	data := gin.H{
		"Title":      title,
		"Categories": categories,
		"Locations":  locations,
	}
	if post != nil {
		data["Post"] = post
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}
	return data
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "blog/form.html", h.formContext("New post", nil, ""))
}

func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)

	form, errMsg := parsePostForm(c)
	if errMsg != "" {
		Render(c, http.StatusBadRequest, "blog/form.html", h.formContext("New post", nil, errMsg))
		return
	}

	image, err := h.saveImage(c)
	if err != nil {
		Render(c, http.StatusBadRequest, "blog/form.html", h.formContext("New post", nil, err.Error()))
		return
	}

	post := models.Post{
		Title:       form.Title,
		Text:        form.Text,
		Image:       image,
		AuthorID:    user.ID,
		CategoryID:  form.CategoryID,
		LocationID:  form.LocationID,
		PubDate:     form.PubDate,
		IsPublished: form.IsPublished,
	}

	if err := db.DB.Create(&post).Error; err != nil {
		Render(c, http.StatusInternalServerError, "blog/form.html", h.formContext("New post", nil, "Could not save the post"))
		return
	}

	utils.GetCache().DeletePrefix("home:page:")

	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		NotFound(c)
		return
	}

	// Non-owners are sent back to the post, not shown an error
	if !policy.CanMutate(post.AuthorID, user) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	Render(c, http.StatusOK, "blog/form.html", h.formContext("Edit post", &post, ""))
}

func (h *PostHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		NotFound(c)
		return
	}

	if !policy.CanMutate(post.AuthorID, user) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	form, errMsg := parsePostForm(c)
	if errMsg != "" {
		Render(c, http.StatusBadRequest, "blog/form.html", h.formContext("Edit post", &post, errMsg))
		return
	}

	image, err := h.saveImage(c)
	if err != nil {
		Render(c, http.StatusBadRequest, "blog/form.html", h.formContext("Edit post", &post, err.Error()))
		return
	}
	if image != "" {
		h.images.Remove(post.Image)
		post.Image = image
	}

	post.Title = form.Title
	post.Text = form.Text
	post.PubDate = form.PubDate
	post.CategoryID = form.CategoryID
	post.LocationID = form.LocationID
	post.IsPublished = form.IsPublished

	if err := db.DB.Save(&post).Error; err != nil {
		Render(c, http.StatusInternalServerError, "blog/form.html", h.formContext("Edit post", &post, "Could not save the post"))
		return
	}

	utils.GetCache().DeletePrefix("home:page:")

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}

func (h *PostHandler) ShowDelete(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.Preload("Category").First(&post, id).Error; err != nil {
		NotFound(c)
		return
	}

	if !policy.CanMutate(post.AuthorID, user) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	Render(c, http.StatusOK, "blog/delete.html", gin.H{
		"Title": "Delete post",
		"Post":  post,
	})
}

func (h *PostHandler) Delete(c *gin.Context) {
	user := c.MustGet(middleware.CurrentUserKey).(*models.User)
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		NotFound(c)
		return
	}

	if !policy.CanMutate(post.AuthorID, user) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	// Hard delete, comments cascade via FK
	db.DB.Unscoped().Delete(&post)
	h.images.Remove(post.Image)

	utils.GetCache().DeletePrefix("home:page:")

	c.Redirect(http.StatusFound, "/")
}

// saveImage stores an optional image upload, returning "" when the
// form carried no file.
func (h *PostHandler) saveImage(c *gin.Context) (string, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", fmt.Errorf("could not read the uploaded image")
	}
	defer file.Close()

	return h.images.Save(file, header)
}
