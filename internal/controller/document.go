package controller

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"github.com/gin-gonic/gin"
)

type DocumentController struct {
	*baseController
}

const maxDocumentsPerUpload = 10

var ErrInvalidDocumentType = errors.New("invalid document type")

func (dc DocumentController) documentType(raw string) (constant.DocumentType, error) {
	if raw == "" {
		return constant.DocumentTypeOther, nil
	}
	t := constant.DocumentType(raw)
	if !t.Valid() {
		return "", ErrInvalidDocumentType
	}
	return t, nil
}

func (dc DocumentController) ListDocuments(ctx *gin.Context) {
	user, ok := dc.mustAuthUser(ctx)
	if !ok {
		return
	}

	profile, err := dc.getProfile(ctx, user.ID)
	if err != nil {
		dc.respondError(ctx, "Profile not found", err)
		return
	}

	var docType constant.DocumentType
	if raw := ctx.Query("type"); raw != "" {
		docType, err = dc.documentType(raw)
		if err != nil {
			dc.badRequest(ctx, err, "type")
			return
		}
	}

	documents, err := dc.app.Repository.Document.ListByProfile(ctx, nil, profile.ID, docType)
	if err != nil {
		dc.respondError(ctx, "Failed to list documents", err)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"documents": documents,
	})
}

func (dc DocumentController) store(ctx *gin.Context, profile *model.CompanyProfile, docType constant.DocumentType, fileName string, data []byte, mimeType string) (*model.Document, error) {
	file, err := dc.app.Files.Put(ctx, util.GetDocumentDirectoryPath(profile.ID), fileName, mimeType, data)
	if err != nil {
		return nil, err
	}

	document := &model.Document{
		Type:      docType,
		File:      file,
		ProfileID: profile.ID,
	}
	if err := dc.app.Repository.Document.Create(ctx, nil, document); err != nil {
		if rmErr := dc.app.Files.Remove(ctx, file); rmErr != nil {
			dc.app.Logger.Warnw("Failed to remove orphaned document object", "objectKey", file.ObjectKey, "error", rmErr)
		}
		return nil, err
	}

	return document, nil
}

func (dc DocumentController) UploadDocument(ctx *gin.Context) {
	user, ok := dc.mustAuthUser(ctx)
	if !ok {
		return
	}

	docType, err := dc.documentType(ctx.PostForm("type"))
	if err != nil {
		dc.badRequest(ctx, err, "type")
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		dc.badRequest(ctx, ErrFileRequired, "file")
		return
	}

	data, mimeType, err := dc.readUpload(fileHeader)
	if err != nil {
		dc.respondUploadError(ctx, "file", err)
		return
	}

	profile, err := dc.getProfile(ctx, user.ID)
	if err != nil {
		dc.respondError(ctx, "Profile not found", err)
		return
	}

	document, err := dc.store(ctx, profile, docType, fileHeader.Filename, data, mimeType)
	if err != nil {
		dc.respondError(ctx, "Failed to upload document", err)
		return
	}

	util.ResponseSuccessWithStatus(ctx, http.StatusCreated, gin.H{
		"document": document,
	})
}

// UploadMultipleDocuments stores every file under "files". A file that fails is reported and
// the rest are still stored.
func (dc DocumentController) UploadMultipleDocuments(ctx *gin.Context) {
	user, ok := dc.mustAuthUser(ctx)
	if !ok {
		return
	}

	docType, err := dc.documentType(ctx.PostForm("type"))
	if err != nil {
		dc.badRequest(ctx, err, "type")
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		dc.badRequest(ctx, ErrFileRequired, "files")
		return
	}
	headers := form.File["files"]
	if len(headers) > maxDocumentsPerUpload {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Too many files", util.GenerateErrorMessages(errors.New("at most 10 files can be uploaded at once"), "files"), nil)
		return
	}

	profile, err := dc.getProfile(ctx, user.ID)
	if err != nil {
		dc.respondError(ctx, "Profile not found", err)
		return
	}

	type failure struct {
		FileName string `json:"fileName"`
		Error    string `json:"error"`
	}
	documents := make([]*model.Document, 0, len(headers))
	failures := []failure{}

	for _, fh := range headers {
		data, mimeType, err := dc.readUpload(fh)
		if err == nil {
			var document *model.Document
			document, err = dc.store(ctx, profile, docType, fh.Filename, data, mimeType)
			if err == nil {
				documents = append(documents, document)
				continue
			}
		}
		dc.app.Logger.Warnw("Failed to upload document", "fileName", fh.Filename, "error", err)
		failures = append(failures, failure{FileName: fh.Filename, Error: err.Error()})
	}

	code := http.StatusCreated
	if len(documents) == 0 {
		code = http.StatusUnprocessableEntity
		util.ResponseFailed(ctx, code, "No document was uploaded", nil, gin.H{
			"documents": documents,
			"failed":    failures,
		})
		return
	}

	util.ResponseSuccessWithStatus(ctx, code, gin.H{
		"documents": documents,
		"failed":    failures,
	})
}

func (dc DocumentController) ownedDocument(ctx *gin.Context) (*model.Document, bool) {
	user, ok := dc.mustAuthUser(ctx)
	if !ok {
		return nil, false
	}

	profile, err := dc.getProfile(ctx, user.ID)
	if err != nil {
		dc.respondError(ctx, "Profile not found", err)
		return nil, false
	}

	document, err := dc.app.Repository.Document.GetForProfile(ctx, nil, profile.ID, ctx.Param("id"))
	if err != nil {
		dc.respondError(ctx, "Document not found", notFoundAs(err, ErrDocumentNotFound))
		return nil, false
	}

	return document, true
}

func (dc DocumentController) GetDocument(ctx *gin.Context) {
	document, ok := dc.ownedDocument(ctx)
	if !ok {
		return
	}

	url, err := document.File.ToPresignedUrl(ctx, dc.app.S3)
	if err != nil {
		dc.app.Logger.Warnw("Failed to presign document", "documentId", document.ID, "error", err)
	}

	util.ResponseSuccess(ctx, gin.H{
		"document": document,
		"url":      url,
	})
}

func (dc DocumentController) DownloadDocument(ctx *gin.Context) {
	document, ok := dc.ownedDocument(ctx)
	if !ok {
		return
	}

	dc.streamFile(ctx, document.File)
}

// DeleteDocument removes the stored object before the row.
func (dc DocumentController) DeleteDocument(ctx *gin.Context) {
	document, ok := dc.ownedDocument(ctx)
	if !ok {
		return
	}

	if err := dc.app.Files.Remove(ctx, document.File); err != nil {
		dc.respondError(ctx, "Failed to delete document file", err)
		return
	}

	if err := dc.app.Repository.Document.Delete(ctx, nil, document.ID); err != nil {
		dc.respondError(ctx, "Failed to delete document", err)
		return
	}

	util.ResponseSuccess(ctx, nil)
}
