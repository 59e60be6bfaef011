package api

import (
	"net/http"

	resdto "slotbook/internal/handler/dto/response"
	"slotbook/internal/handler/httperr"
	"slotbook/internal/pkg/config"
	"slotbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	cmds     commands.UploadCommands
	maxBytes int64
}

func NewUploadHandler(cmds commands.UploadCommands, cfg config.Config) *UploadHandler {
	return &UploadHandler{cmds: cmds, maxBytes: cfg.Upload.MaxBytes}
}

// @Summary Upload business logo
// @Description Stores the image and sets it as the branding logo
// @Tags uploads
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param logo formData file true "JPG, PNG, GIF or WEBP"
// @Success 200 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 413 {object} httperr.Response
// @Router /uploads/logo [post]
func (h *UploadHandler) Logo(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		return
	}
	upload, closeFn, ok := readUpload(c, "logo", h.maxBytes, logoTypes)
	if !ok {
		return
	}
	defer closeFn()

	view, err := h.cmds.UploadLogo(c.Request.Context(), principal.UserID, upload)
	if err != nil {
		httperr.Respond(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, resdto.UserResponse{Message: "Logo uploaded successfully", User: view})
}
