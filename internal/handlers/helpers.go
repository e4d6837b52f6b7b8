package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/campusvibes/backend/internal/middleware"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// getUserIDFromContext returns the authenticated user's id, or the zero
// ObjectID for unauthenticated requests.
func getUserIDFromContext(c echo.Context) primitive.ObjectID {
	return middleware.GetUserID(c)
}

func parseObjectID(c echo.Context, param string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+param)
	}
	return id, nil
}

// Accepted upload MIME prefixes and types, matching the registration and post
// upload rules.
var allowedUploadTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

func uploadAllowed(contentType string) bool {
	if allowedUploadTypes[contentType] {
		return true
	}
	return len(contentType) > 6 && (contentType[:6] == "image/" || contentType[:6] == "video/")
}

// saveUpload stores a multipart file under the upload directory and returns
// its public path. A missing file is not an error; the caller decides whether
// the field was required.
func saveUpload(c echo.Context, field, uploadDir string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	return storeFile(fileHeader, uploadDir)
}

func storeFile(fileHeader *multipart.FileHeader, uploadDir string) (string, error) {
	if !uploadAllowed(fileHeader.Header.Get("Content-Type")) {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Only images, videos and documents are allowed")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d%s", time.Now().UnixNano(), filepath.Ext(fileHeader.Filename))
	dst, err := os.Create(filepath.Join(uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// paginationMeta is the shared pagination envelope.
func paginationMeta(page, limit int64, total int64) echo.Map {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return echo.Map{
		"currentPage": page,
		"totalPages":  totalPages,
		"totalItems":  total,
	}
}
