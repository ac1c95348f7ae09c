package block_http

import (
	"net/http"

	block_port "noders-content-service/internal/domain/ports/input/block"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/infrastructure/inbound/http/middleware"
	"noders-content-service/internal/infrastructure/inbound/http/response"

	"github.com/labstack/echo/v4"
)

type DeleteBlockHandler struct {
	blockService block_port.Service
	log          ports.Logger
}

func NewDeleteBlockHandler(blockService block_port.Service, log ports.Logger) *DeleteBlockHandler {
	return &DeleteBlockHandler{blockService: blockService, log: log}
}

func (h *DeleteBlockHandler) Handle(c echo.Context) error {
	err := h.blockService.DeleteBlock(c.Request().Context(), middleware.PrincipalFrom(c), c.Param("postId"), c.Param("blockId"))
	if err != nil {
		return response.Error(c, h.log, err)
	}
	return response.OK(c, http.StatusOK, response.Envelope{})
}
