package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/domain"
	"portfolio/internal/logging"
	"portfolio/internal/markdown"
	"portfolio/internal/service"
)

// PostHandler handles blog post endpoints.
type PostHandler struct {
	posts service.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts service.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// List handles GET /api/v1/posts
// @Summary List published posts
// @Tags posts
// @Produce json
// @Param tag query string false "Only posts with this tag"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit (max 100)" default(10)
// @Param lang query string false "Locale (es or en)" default(es)
// @Success 200 {object} Response{data=[]domain.LocalizedPost,meta=PagMeta}
// @Router /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	locale, ok := parseLocale(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)
	if c.Query("limit") == "" {
		limit = 10
	}

	posts, total, err := h.posts.ListPublished(c.Request.Context(), c.Query("tag"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	out := make([]*domain.LocalizedPost, len(posts))
	for i := range posts {
		out[i] = posts[i].Localize(locale)
	}
	c.Header("Cache-Control", cacheContent)
	RespondPaginated(c, out, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetBySlug handles GET /api/v1/posts/:slug
// @Summary Get a published post
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Param lang query string false "Locale (es or en)" default(es)
// @Success 200 {object} Response{data=domain.LocalizedPost}
// @Failure 404 {object} ErrorResponseBody
// @Router /posts/{slug} [get]
func (h *PostHandler) GetBySlug(c *gin.Context) {
	locale, ok := parseLocale(c)
	if !ok {
		return
	}
	p, err := h.posts.GetBySlug(c.Request.Context(), c.Param("slug"), false)
	if err != nil {
		HandleError(c, err)
		return
	}
	lp := p.Localize(locale)
	html, err := markdown.Render(lp.Content)
	if err != nil {
		logging.FromContext(c.Request.Context()).Warn("could not render post content",
			logging.FieldSlug, p.Slug, logging.FieldError, err)
	}
	lp.ContentHTML = html
	c.Header("Cache-Control", cacheContent)
	RespondOK(c, lp)
}

// AdminList handles GET /api/v1/admin/posts
// @Summary List all posts
// @Tags admin-posts
// @Produce json
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Post,meta=PagMeta}
// @Security BearerAuth
// @Router /admin/posts [get]
func (h *PostHandler) AdminList(c *gin.Context) {
	offset, limit := parsePagination(c)
	posts, total, err := h.posts.ListAll(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, posts, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// AdminGet handles GET /api/v1/admin/posts/:id
// @Summary Get a post, drafts included
// @Tags admin-posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} Response{data=domain.Post}
// @Security BearerAuth
// @Router /admin/posts/{id} [get]
func (h *PostHandler) AdminGet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.posts.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// Create handles POST /api/v1/admin/posts
// @Summary Create a post
// @Tags admin-posts
// @Accept json
// @Produce json
// @Param body body service.CreatePostInput true "Post"
// @Success 201 {object} Response{data=domain.Post}
// @Failure 400 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /admin/posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var input service.CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	p, err := h.posts.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, p)
}

// Update handles PUT /api/v1/admin/posts/:id
// @Summary Update a post
// @Tags admin-posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param body body service.UpdatePostInput true "Fields to change"
// @Success 200 {object} Response{data=domain.Post}
// @Security BearerAuth
// @Router /admin/posts/{id} [put]
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var input service.UpdatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	p, err := h.posts.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// Delete handles DELETE /api/v1/admin/posts/:id
// @Summary Delete a post
// @Tags admin-posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} Response{data=MessageResponse}
// @Security BearerAuth
// @Router /admin/posts/{id} [delete]
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.posts.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "post deleted"})
}

// Retranslate handles POST /api/v1/admin/posts/:id/translate
// @Summary Refresh the English fields of a post
// @Tags admin-posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} Response{data=domain.Post}
// @Security BearerAuth
// @Router /admin/posts/{id}/translate [post]
func (h *PostHandler) Retranslate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	p, err := h.posts.Retranslate(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}
