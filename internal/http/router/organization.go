package router

import (
	"basegraph.app/accounts/internal/http/handler"
	"github.com/gin-gonic/gin"
)

func OrganizationRouter(rg *gin.RouterGroup, h *handler.OrganizationHandler) {
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
}
