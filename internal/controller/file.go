package controller

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/SeakMengs/AutoRFP/internal/extractor"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-gonic/gin"
)

var (
	ErrFileRequired = errors.New("file is required")
	ErrFileTooLarge = errors.New("file exceeds the maximum upload size")
)

// readUpload buffers a multipart file, refusing anything over the configured limit.
func (b *baseController) readUpload(fileHeader *multipart.FileHeader) ([]byte, string, error) {
	maxBytes := b.app.Config.Upload.MaxBytes
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		return nil, "", ErrFileTooLarge
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	defer src.Close()

	reader := io.Reader(src)
	if maxBytes > 0 {
		reader = io.LimitReader(src, maxBytes+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, "", ErrFileTooLarge
	}

	mimeType := extractor.DetectMimeType(fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	return data, mimeType, nil
}

// respondUploadError answers 413 for oversized files and 400 for everything else.
func (b *baseController) respondUploadError(ctx *gin.Context, field string, err error) {
	b.app.Logger.Error(err)
	if errors.Is(err, ErrFileTooLarge) {
		util.ResponseFailed(ctx, http.StatusRequestEntityTooLarge, "File too large", util.GenerateErrorMessages(err, field), gin.H{
			"maxBytes": b.app.Config.Upload.MaxBytes,
		})
		return
	}
	util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid file", util.GenerateErrorMessages(err, field), nil)
}

// streamFile copies a stored object to the response as an attachment.
func (b *baseController) streamFile(ctx *gin.Context, file model.File) {
	object, err := file.Open(ctx, b.app.S3)
	if err != nil {
		b.respondError(ctx, "Error getting file", err)
		return
	}
	defer object.Close()

	info, err := object.Stat()
	if err != nil {
		b.respondError(ctx, "Error retrieving file info", err)
		return
	}

	contentType := file.MimeType
	if contentType == "" {
		contentType = info.ContentType
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.ToBaseFilename()))
	ctx.Header("Content-Type", contentType)
	ctx.Header("Content-Length", strconv.FormatInt(info.Size, 10))
	ctx.Status(http.StatusOK)
	if _, err := io.Copy(ctx.Writer, object); err != nil {
		b.app.Logger.Warnw("Failed to stream file", "objectKey", file.ObjectKey, "error", err)
	}
}
