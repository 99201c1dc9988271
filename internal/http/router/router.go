package router

import (
	"time"

	"basegraph.app/accounts/internal/http/handler"
	"basegraph.app/accounts/internal/service"
	"github.com/gin-gonic/gin"
)

type RouterConfig struct {
	// Now is the clock used to derive billing status. Defaults to time.Now.
	Now func() time.Time
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	orgHandler := handler.NewOrganizationHandler(services.Organizations(), cfg.Now)
	OrganizationRouter(router.Group("/organization"), orgHandler)

	userHandler := handler.NewUserHandler(services.Users())
	UserRouter(router.Group("/user"), userHandler)
}
