package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

func (h *PagesHandler) About(c *gin.Context) {
	Render(c, http.StatusOK, "pages/about.html", gin.H{"Title": "About"})
}

func (h *PagesHandler) Rules(c *gin.Context) {
	Render(c, http.StatusOK, "pages/rules.html", gin.H{"Title": "Rules"})
}
