package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"slotbook/internal/handler/httperr"
	"slotbook/internal/handler/middleware"
	"slotbook/internal/pkg/errs"
	"slotbook/internal/usecase"
	"slotbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
)

var (
	errMissingPrincipal = errs.New("authenticated principal missing from context")
	errFileRequired     = errs.New("file is required")
	errFileTooLarge     = errs.New("file exceeds the upload limit")
	errFileType         = errs.New("file type is not allowed")
)

// Accepted upload types keyed by sniffed content type, with the extensions that may carry them.
var (
	proofTypes = map[string][]string{
		"image/jpeg":      {".jpg", ".jpeg"},
		"image/png":       {".png"},
		"application/pdf": {".pdf"},
	}
	logoTypes = map[string][]string{
		"image/jpeg": {".jpg", ".jpeg"},
		"image/png":  {".png"},
		"image/gif":  {".gif"},
		"image/webp": {".webp"},
	}
)

func currentPrincipal(c *gin.Context) (*usecase.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingPrincipal, "Unauthorized", nil)
		return nil, false
	}
	return p, true
}

func pathID(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, errs.Field(name, err), "Invalid "+label+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// bindStrict decodes JSON rejecting unknown keys, then runs the binding validator.
func bindStrict(c *gin.Context, dst any) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		httperr.BadRequest(c, err, "Invalid request format")
		return false
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		httperr.BadRequest(c, err, "Validation failed")
		return false
	}
	return true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, err, "Validation failed")
		return false
	}
	return true
}

// readUpload pulls one multipart file, enforcing the size limit and sniffing the real content type.
func readUpload(c *gin.Context, field string, maxBytes int64, allowed map[string][]string) (commands.Upload, func(), bool) {
	header, err := c.FormFile(field)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errs.As(err, &maxErr) {
			httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, errFileTooLarge, "File too large", nil)
			return commands.Upload{}, nil, false
		}
		httperr.BadRequest(c, errs.Field(field, errFileRequired), "File is required")
		return commands.Upload{}, nil, false
	}
	if maxBytes > 0 && header.Size > maxBytes {
		httperr.AbortWithError(c, http.StatusRequestEntityTooLarge, errFileTooLarge, "File too large", nil)
		return commands.Upload{}, nil, false
	}

	f, err := header.Open()
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to read upload", nil)
		return commands.Upload{}, nil, false
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		_ = f.Close()
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to read upload", nil)
		return commands.Upload{}, nil, false
	}
	head = head[:n]

	contentType := http.DetectContentType(head)
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	exts, ok := allowed[contentType]
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !ok || !slices.Contains(exts, ext) {
		_ = f.Close()
		httperr.BadRequest(c, errs.Field(field, errFileType), "File type is not allowed")
		return commands.Upload{}, nil, false
	}

	upload := commands.Upload{
		Filename:    filepath.Base(header.Filename),
		ContentType: contentType,
		Size:        header.Size,
		Body:        io.MultiReader(bytes.NewReader(head), f),
	}
	return upload, func() { _ = f.Close() }, true
}
