package handlers

import (
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestUploadAllowed(t *testing.T) {
	assert.True(t, uploadAllowed("image/png"))
	assert.True(t, uploadAllowed("video/mp4"))
	assert.True(t, uploadAllowed("application/pdf"))
	assert.True(t, uploadAllowed("application/msword"))
	assert.False(t, uploadAllowed("application/x-sh"))
	assert.False(t, uploadAllowed("text/html"))
	assert.False(t, uploadAllowed(""))
}

func TestPaginationMeta(t *testing.T) {
	meta := paginationMeta(2, 10, 35)
	assert.Equal(t, echo.Map{
		"currentPage": int64(2),
		"totalPages":  int64(4),
		"totalItems":  int64(35),
	}, meta)

	meta = paginationMeta(1, 10, 30)
	assert.Equal(t, int64(3), meta["totalPages"])

	meta = paginationMeta(1, 10, 0)
	assert.Equal(t, int64(0), meta["totalPages"])
}
