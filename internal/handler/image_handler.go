package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/internal/service"
)

// maxUploadMemory bounds the multipart form held in memory; larger parts spill to disk.
const maxUploadMemory = 32 << 20

// ImageHandler handles image upload endpoints.
type ImageHandler struct {
	images service.ImageService
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(images service.ImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

// Upload handles POST /api/v1/admin/images
// @Summary Upload images
// @Description Upload one or more images (jpg, png, webp, gif) into a project folder
// @Tags admin-images
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Images to upload"
// @Param folder formData string false "Project slug the images belong to"
// @Success 201 {object} Response{data=[]service.UploadedImage}
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /admin/images [post]
func (h *ImageHandler) Upload(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "multipart form with files is required")
		return
	}
	form := c.Request.MultipartForm
	headers := form.File["files"]
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "files field is required")
		return
	}
	folder := c.PostForm("folder")

	uploaded := make([]*service.UploadedImage, 0, len(headers))
	for i, header := range headers {
		img, err := h.uploadOne(c, folder, i, header)
		if err != nil {
			HandleError(c, err)
			return
		}
		uploaded = append(uploaded, img)
	}
	RespondCreated(c, uploaded)
}

func (h *ImageHandler) uploadOne(c *gin.Context, folder string, index int, header *multipart.FileHeader) (*service.UploadedImage, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return h.images.Upload(c.Request.Context(), service.ImageUploadInput{
		Folder:   folder,
		Index:    index,
		FileName: header.Filename,
		Size:     header.Size,
		Body:     file,
	})
}

// Delete handles DELETE /api/v1/admin/images
// @Summary Delete an image
// @Description Delete a stored image by its public URL. URLs outside the bucket are ignored.
// @Tags admin-images
// @Accept json
// @Produce json
// @Param body body DeleteImageRequest false "Image URL"
// @Param url query string false "Image URL"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} ErrorResponseBody
// @Security BearerAuth
// @Router /admin/images [delete]
func (h *ImageHandler) Delete(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		var req DeleteImageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "url is required")
			return
		}
		url = req.URL
	}
	if err := h.images.DeleteByURL(c.Request.Context(), url); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "image deleted"})
}
