package image_http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	image_port "noders-content-service/internal/domain/ports/input/image"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/infrastructure/inbound/http/middleware"
	"noders-content-service/internal/infrastructure/inbound/http/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UploadImageHandler struct {
	imageService image_port.Service
	validate     *validator.Validate
	maxBytes     int64
	log          ports.Logger
}

func NewUploadImageHandler(imageService image_port.Service, validate *validator.Validate, maxBytes int64, log ports.Logger) *UploadImageHandler {
	return &UploadImageHandler{imageService: imageService, validate: validate, maxBytes: maxBytes, log: log}
}

type UploadImageRequest struct {
	Usage   string `validate:"omitempty,oneof=post_block avatar project"`
	AltText string `validate:"omitempty,max=300"`
}

// Handle accepts multipart form fields file, usage and alt_text and answers
// with the stored image record.
func (h *UploadImageHandler) Handle(c echo.Context) error {
	req := UploadImageRequest{
		Usage:   c.FormValue("usage"),
		AltText: c.FormValue("alt_text"),
	}
	if err := h.validate.Struct(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.log.Debug("Upload without file", slog.String("error", err.Error()))
		return response.Fail(c, http.StatusBadRequest, "file is required")
	}
	if h.maxBytes > 0 && fileHeader.Size > h.maxBytes {
		return response.Error(c, h.log, custom_errors.ErrImageTooLarge)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, h.log, err)
	}
	defer file.Close()

	limit := h.maxBytes
	if limit <= 0 {
		limit = fileHeader.Size
	}
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return response.Error(c, h.log, err)
	}

	var ownerID string
	if principal := middleware.PrincipalFrom(c); principal != nil {
		ownerID = principal.UserID
	}
	image, err := h.imageService.Upload(c.Request().Context(), &model.UploadImageDTO{
		OwnerID:  ownerID,
		Filename: fileHeader.Filename,
		Data:     data,
		Usage:    model.ImageUsage(req.Usage),
		AltText:  req.AltText,
	})
	if err != nil {
		if errors.Is(err, custom_errors.ErrImageStoreFailed) {
			return response.Fail(c, http.StatusBadGateway, err.Error())
		}
		return response.Error(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, image)
}
