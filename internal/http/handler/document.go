package handler

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"medidocs/internal/auth"
	"medidocs/internal/http/middleware"
	"medidocs/internal/service"
)

// actorFromCtx returns the acting identity or writes a 401.
func actorFromCtx(c *fiber.Ctx) (auth.Actor, error) {
	actor, ok := middleware.ActorFromCtx(c)
	if !ok {
		return auth.Actor{}, writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	}
	return actor, nil
}

func documentID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid id format")
	}
	return id, nil
}

// UploadDocument accepts multipart/form-data with a "file" field plus the
// document metadata fields.
//
//	@Summary      Upload a document
//	@Tags         documents
//	@Accept       multipart/form-data
//	@Produce      json
//	@Param        file formData file true "document content"
//	@Success      201 {object} model.Document
//	@Router       /api/documents [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromCtx(c)
		if err != nil {
			return err
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Upload(c.UserContext(), actor, service.UploadInput{
			Title:        c.FormValue("title"),
			Description:  c.FormValue("description"),
			CategoryID:   c.FormValue("category_id"),
			DoctorName:   c.FormValue("doctor_name"),
			HospitalName: c.FormValue("hospital_name"),
			DocumentDate: c.FormValue("document_date"),
			FileName:     fh.Filename,
			ContentType:  ct,
			Size:         fh.Size,
			Content:      f,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListDocuments returns the calling actor's own documents.
//
//	@Summary      List my documents
//	@Tags         documents
//	@Produce      json
//	@Success      200 {array} model.Document
//	@Router       /api/documents [get]
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromCtx(c)
		if err != nil {
			return err
		}
		docs, err := svc.ListMine(c.UserContext(), actor)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(docs)
	}
}

// GetDocument returns a single document's metadata.
//
//	@Summary      Get a document
//	@Tags         documents
//	@Produce      json
//	@Param        id path string true "document id"
//	@Success      200 {object} model.Document
//	@Router       /api/documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromCtx(c)
		if err != nil {
			return err
		}
		id, err := documentID(c)
		if err != nil {
			return err
		}
		doc, err := svc.Get(c.UserContext(), actor, id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument streams the stored content. The attachment filename is
// the document title with the stored extension.
//
//	@Summary      Download a document's content
//	@Tags         documents
//	@Produce      octet-stream
//	@Param        id path string true "document id"
//	@Success      200 {file} file
//	@Router       /api/documents/{id}/download [get]
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromCtx(c)
		if err != nil {
			return err
		}
		id, err := documentID(c)
		if err != nil {
			return err
		}
		rc, doc, err := svc.Download(c.UserContext(), actor, id)
		if err != nil {
			return writeServiceError(c, err)
		}

		name := attachmentName(doc.Title, doc.FileName)
		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))

		// A recorded size that does not fit in int means chunked transfer
		// instead of a truncated Content-Length.
		size := -1
		if doc.FileSize > 0 && doc.FileSize <= math.MaxInt {
			size = int(doc.FileSize)
		}
		return c.SendStream(rc, size)
	}
}

// UpdateDocument applies metadata changes from a JSON body.
//
//	@Summary      Update document metadata
//	@Tags         documents
//	@Accept       json
//	@Produce      json
//	@Param        id path string true "document id"
//	@Success      200 {object} model.Document
//	@Router       /api/documents/{id} [put]
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	type updateRequest struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		CategoryID   string `json:"category_id"`
		DoctorName   string `json:"doctor_name"`
		HospitalName string `json:"hospital_name"`
		DocumentDate string `json:"document_date"`
	}

	return func(c *fiber.Ctx) error {
		actor, err := actorFromCtx(c)
		if err != nil {
			return err
		}
		id, err := documentID(c)
		if err != nil {
			return err
		}

		var req updateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		}

		doc, err := svc.Update(c.UserContext(), actor, id, service.UpdateInput{
			Title:        req.Title,
			Description:  req.Description,
			CategoryID:   req.CategoryID,
			DoctorName:   req.DoctorName,
			HospitalName: req.HospitalName,
			DocumentDate: req.DocumentDate,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document and its stored content.
//
//	@Summary      Delete a document
//	@Tags         documents
//	@Param        id path string true "document id"
//	@Success      204
//	@Router       /api/documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := actorFromCtx(c)
		if err != nil {
			return err
		}
		id, err := documentID(c)
		if err != nil {
			return err
		}
		if err := svc.Delete(c.UserContext(), actor, id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// attachmentName builds the download filename from the title and the
// stored key's extension, stripping characters that would break the
// Content-Disposition header.
func attachmentName(title, storedKey string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '\r', '\n', '/':
			return '_'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		name = "document"
	}
	return name + filepath.Ext(storedKey)
}
