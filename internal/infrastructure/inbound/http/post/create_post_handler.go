package post_http

import (
	"net/http"

	"noders-content-service/internal/custom_errors"
	model "noders-content-service/internal/domain/models"
	post_port "noders-content-service/internal/domain/ports/input/post"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/infrastructure/inbound/http/middleware"
	"noders-content-service/internal/infrastructure/inbound/http/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CreatePostHandler struct {
	postService post_port.Service
	validate    *validator.Validate
	log         ports.Logger
}

func NewCreatePostHandler(postService post_port.Service, validate *validator.Validate, log ports.Logger) *CreatePostHandler {
	return &CreatePostHandler{postService: postService, validate: validate, log: log}
}

type CreatePostRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

func (h *CreatePostHandler) Handle(c echo.Context) error {
	var req CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, custom_errors.ErrInvalidInput.Error())
	}
	if err := h.validate.Struct(&req); err != nil {
		return response.Fail(c, http.StatusBadRequest, "invalid request: "+err.Error())
	}

	post, err := h.postService.CreatePost(c.Request().Context(), middleware.PrincipalFrom(c), &model.CreatePostDTO{Title: req.Title})
	if err != nil {
		return response.Error(c, h.log, err)
	}
	return response.OK(c, http.StatusCreated, response.Envelope{Post: post})
}
