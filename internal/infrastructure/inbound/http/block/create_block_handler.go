package block_http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	block_port "noders-content-service/internal/domain/ports/input/block"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/infrastructure/inbound/http/middleware"
	"noders-content-service/internal/infrastructure/inbound/http/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CreateBlockHandler struct {
	blockService block_port.Service
	validate     *validator.Validate
	log          ports.Logger
}

func NewCreateBlockHandler(blockService block_port.Service, validate *validator.Validate, log ports.Logger) *CreateBlockHandler {
	return &CreateBlockHandler{blockService: blockService, validate: validate, log: log}
}

type CreateBlockRequest struct {
	PostID     string          `json:"-" validate:"required"`
	Type       string          `json:"type" validate:"required,oneof=text quote image youtube"`
	Content    json.RawMessage `json:"content" validate:"required"`
	OrderIndex *int            `json:"order_index" validate:"required,gte=0,lt=15"`
}

func (h *CreateBlockHandler) Handle(c echo.Context) error {
	var req CreateBlockRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		h.log.Debug("Malformed create block body", slog.String("error", err.Error()))
		return response.Fail(c, http.StatusBadRequest, custom_errors.ErrInvalidInput.Error())
	}
	req.PostID = c.Param("postId")

	if err := h.validate.Struct(&req); err != nil {
		h.log.Debug("Create block validation failed", slog.String("post_id", req.PostID), slog.String("error", err.Error()))
		return response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
	}

	blockType := model.BlockType(req.Type)
	content, err := model.DecodeContent(blockType, req.Content)
	if err != nil {
		return response.Fail(c, http.StatusBadRequest, custom_errors.ErrInvalidInput.Error())
	}

	created, err := h.blockService.CreateBlock(c.Request().Context(), middleware.PrincipalFrom(c), &model.CreateBlockDTO{
		PostID:     req.PostID,
		Type:       blockType,
		Content:    content,
		OrderIndex: *req.OrderIndex,
	})
	if err != nil {
		return response.Error(c, h.log, err)
	}
	return response.OK(c, http.StatusCreated, response.Envelope{Block: created})
}
