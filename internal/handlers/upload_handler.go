package handlers

import (
	"encoding/base64"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"resumepro/resume-analyzer/internal/models"
	"resumepro/resume-analyzer/internal/services"
)

// UploadHandler stores a resume file and hands it back as a text-safe
// payload for the analyze request. PDFs additionally get server-side text
// extraction so clients can fall back to the pasted-text path.
type UploadHandler struct {
	storageService services.StorageService
	pdfParser      services.PDFParserService
	maxFileSize    int64
}

func NewUploadHandler(
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
		pdfParser:      pdfParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleUpload handles POST /upload
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No resume file uploaded. Send the file in the 'resume' form field.",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	mimeType := file.Header.Get("Content-Type")
	if !services.IsSupportedResumeMime(mimeType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": msgUnsupportedFile,
		})
	}

	filename, filePath, err := h.storageService.SaveResume(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save resume file: %v", err),
		})
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		h.storageService.DeleteFile(filename)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read stored resume file",
		})
	}

	resp := models.UploadResponse{
		Name:     file.Filename,
		MimeType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(data),
		StoredAs: filename,
	}

	if mimeType == "application/pdf" {
		text, err := h.pdfParser.ExtractText(filePath)
		if err != nil {
			log.Printf("⚠️  Failed to extract text from %s: %v", filename, err)
		} else {
			resp.Text = text
		}
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}
