package post_http

import (
	"net/http"

	post_port "noders-content-service/internal/domain/ports/input/post"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/infrastructure/inbound/http/response"

	"github.com/labstack/echo/v4"
)

type GetPostHandler struct {
	postService post_port.Service
	log         ports.Logger
}

func NewGetPostHandler(postService post_port.Service, log ports.Logger) *GetPostHandler {
	return &GetPostHandler{postService: postService, log: log}
}

func (h *GetPostHandler) Handle(c echo.Context) error {
	detailed, err := h.postService.GetPost(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return response.Error(c, h.log, err)
	}
	return response.OK(c, http.StatusOK, response.Envelope{Post: detailed.Post, Blocks: detailed.Blocks})
}
