package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	apierrors "meeting-transcriber/internal/api/errors"
	"meeting-transcriber/internal/api/middleware"
	"meeting-transcriber/internal/app/model"
	"meeting-transcriber/web"
)

// UploadField is the multipart form field holding the uploaded file.
const UploadField = "audio"

const statusCompleted = "Procesamiento completado"

// Processor runs one uploaded file through the pipeline.
type Processor interface {
	Process(ctx context.Context, path string) (*model.TranscriptResult, error)
}

// Page is the data rendered by the index template.
type Page struct {
	Title      string
	Sections   []string
	Status     string
	Failed     bool
	CostLines  []string
	Transcript interface{}
	IsHTML     bool
	RequestID  string
}

// TranscribeHandler serves the upload form and processes uploads.
type TranscribeHandler struct {
	processor Processor
	uploadDir string
	logger    *zap.Logger
}

func NewTranscribeHandler(processor Processor, uploadDir string, logger *zap.Logger) *TranscribeHandler {
	return &TranscribeHandler{
		processor: processor,
		uploadDir: uploadDir,
		logger:    logger.Named("http"),
	}
}

// Index renders the empty upload form.
func (h *TranscribeHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, web.IndexTemplate, Page{RequestID: middleware.GetRequestID(c)})
}

// Transcribe stores the upload under its own name in a private directory,
// processes it and always deletes that directory afterwards. Output files are
// therefore named after the user's file.
func (h *TranscribeHandler) Transcribe(c *gin.Context) {
	header, err := c.FormFile(UploadField)
	if err != nil {
		h.renderError(c, uploadError(err))
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.renderError(c, apierrors.NewInternalError(err.Error()))
		return
	}
	requestDir, err := os.MkdirTemp(h.uploadDir, "upload-*")
	if err != nil {
		h.renderError(c, apierrors.NewInternalError(err.Error()))
		return
	}
	defer func() {
		if err := os.RemoveAll(requestDir); err != nil {
			h.logger.Warn("Could not delete upload", zap.String("path", requestDir), zap.Error(err))
		}
	}()

	uploadPath := filepath.Join(requestDir, filepath.Base(header.Filename))
	if err := c.SaveUploadedFile(header, uploadPath); err != nil {
		h.renderError(c, apierrors.NewInternalError(err.Error()))
		return
	}

	h.logger.Info("Processing upload",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size))

	result, err := h.processor.Process(c.Request.Context(), uploadPath)
	if err != nil {
		h.renderError(c, apierrors.FromError(err))
		return
	}

	page := Page{
		Title:     result.Title,
		Sections:  result.Sections,
		Status:    statusCompleted,
		CostLines: result.Usage.Lines(),
		IsHTML:    result.IsHTML(),
		RequestID: middleware.GetRequestID(c),
	}
	if result.IsHTML() {
		page.Transcript = template.HTML(result.Text)
	} else {
		page.Transcript = result.Text
	}
	c.HTML(http.StatusOK, web.IndexTemplate, page)
}

// uploadError tells an absent form field apart from a body that could not be read.
func uploadError(err error) *apierrors.APIError {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return apierrors.NewPayloadTooLargeError("el archivo supera el tamaño máximo permitido")
	case errors.Is(err, http.ErrMissingFile):
		return apierrors.NewBadRequestError("no se recibió ningún archivo en el campo \"" + UploadField + "\"")
	default:
		return apierrors.NewUploadFailedError("no se pudo leer el archivo subido: " + err.Error())
	}
}

func (h *TranscribeHandler) renderError(c *gin.Context, apiErr *apierrors.APIError) {
	apiErr.RequestID = middleware.GetRequestID(c)
	_ = c.Error(apiErr)
	c.HTML(apiErr.HTTPStatus(), web.IndexTemplate, Page{
		Status:    "Error: " + apiErr.Message,
		Failed:    true,
		RequestID: apiErr.RequestID,
	})
}
