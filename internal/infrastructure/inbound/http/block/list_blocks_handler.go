package block_http

import (
	"net/http"

	block_port "noders-content-service/internal/domain/ports/input/block"
	ports "noders-content-service/internal/domain/ports/output"
	"noders-content-service/internal/infrastructure/inbound/http/response"

	"github.com/labstack/echo/v4"
)

type ListBlocksHandler struct {
	blockService block_port.Service
	log          ports.Logger
}

func NewListBlocksHandler(blockService block_port.Service, log ports.Logger) *ListBlocksHandler {
	return &ListBlocksHandler{blockService: blockService, log: log}
}

func (h *ListBlocksHandler) Handle(c echo.Context) error {
	blocks, err := h.blockService.ListBlocks(c.Request().Context(), c.Param("postId"))
	if err != nil {
		return response.Error(c, h.log, err)
	}
	return response.OK(c, http.StatusOK, response.Envelope{Blocks: blocks})
}
