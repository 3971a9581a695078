package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/cmms-platform/cmms-service/api"
	"github.com/cmms-platform/cmms-service/internal/auth"
	"github.com/cmms-platform/cmms-service/internal/handler"
	"github.com/cmms-platform/cmms-service/internal/model"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Assets       *handler.AssetHandler
	WorkOrders   *handler.WorkOrderHandler
	Parts        *handler.PartHandler
	Locations    *handler.LocationHandler
	Users        *handler.UserHandler
	PMSchedules  *handler.PMScheduleHandler
	Portals      *handler.PortalHandler
	Submissions  *handler.SubmissionHandler
	PublicPortal *handler.PublicPortalHandler
	Uploads      *handler.UploadHandler
	TableConfig  *handler.TableConfigHandler
	Imports      *handler.ImportHandler
}

func New(h Handlers, jwtSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", handler.Health)
	r.GET("/ready", handler.Ready)

	r.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/openapi.json")))

	// Публичный контур: формы порталов и отслеживание заявок по коду.
	pub := r.Group("/p")
	{
		pub.GET("/:slug", h.PublicPortal.GetForm)
		pub.POST("/:slug", h.PublicPortal.Submit)
		pub.GET("/track/:code", h.PublicPortal.Status)
	}

	r.POST("/api/v1/auth/login", h.Auth.Login)

	v1 := r.Group("/api/v1", auth.Middleware(jwtSecret))
	{
		assets := v1.Group("/assets")
		{
			assets.POST("", h.Assets.Create)
			assets.GET("", h.Assets.List)
			assets.GET("/:id", h.Assets.Get)
			assets.PATCH("/:id", h.Assets.Update)
			assets.PUT("/:id", h.Assets.Update)
			assets.DELETE("/:id", auth.RequireRole(model.RoleAdmin, model.RoleManager), h.Assets.Delete)
		}

		wos := v1.Group("/work-orders")
		{
			wos.POST("", h.WorkOrders.Create)
			wos.GET("", h.WorkOrders.List)
			wos.GET("/:id", h.WorkOrders.Get)
			wos.PATCH("/:id", h.WorkOrders.Update)
			wos.PUT("/:id", h.WorkOrders.Update)
			wos.DELETE("/:id", auth.RequireRole(model.RoleAdmin, model.RoleManager), h.WorkOrders.Delete)
		}

		parts := v1.Group("/parts")
		{
			parts.POST("", h.Parts.Create)
			parts.GET("", h.Parts.List)
			parts.GET("/low-stock", h.Parts.LowStock)
			parts.GET("/:id", h.Parts.Get)
			parts.PATCH("/:id", h.Parts.Update)
			parts.PUT("/:id", h.Parts.Update)
			parts.POST("/:id/adjust-stock", h.Parts.AdjustStock)
			parts.DELETE("/:id", auth.RequireRole(model.RoleAdmin, model.RoleManager), h.Parts.Delete)
		}

		locations := v1.Group("/locations")
		{
			locations.POST("", h.Locations.Create)
			locations.GET("", h.Locations.List)
			locations.GET("/:id", h.Locations.Get)
			locations.PATCH("/:id", h.Locations.Update)
			locations.PUT("/:id", h.Locations.Update)
			locations.DELETE("/:id", auth.RequireRole(model.RoleAdmin, model.RoleManager), h.Locations.Delete)
		}

		users := v1.Group("/users", auth.RequireRole(model.RoleAdmin))
		{
			users.POST("", h.Users.Create)
			users.GET("", h.Users.List)
			users.GET("/:id", h.Users.Get)
			users.PATCH("/:id", h.Users.Update)
			users.PUT("/:id", h.Users.Update)
			users.DELETE("/:id", h.Users.Deactivate)
		}

		pms := v1.Group("/pm-schedules")
		{
			pms.POST("", h.PMSchedules.Create)
			pms.GET("", h.PMSchedules.List)
			pms.GET("/calendar", h.PMSchedules.Calendar)
			pms.GET("/:id", h.PMSchedules.Get)
			pms.PATCH("/:id", h.PMSchedules.Update)
			pms.PUT("/:id", h.PMSchedules.Update)
			pms.POST("/:id/done", h.PMSchedules.MarkDone)
			pms.DELETE("/:id", auth.RequireRole(model.RoleAdmin, model.RoleManager), h.PMSchedules.Delete)
		}

		portals := v1.Group("/portals", auth.RequireRole(model.RoleAdmin, model.RoleManager))
		{
			portals.POST("", h.Portals.Create)
			portals.GET("", h.Portals.List)
			portals.GET("/:id", h.Portals.Get)
			portals.PATCH("/:id", h.Portals.Update)
			portals.PUT("/:id", h.Portals.Update)
			portals.DELETE("/:id", h.Portals.Deactivate)
			portals.GET("/:id/qr", h.Portals.QRInfo)
		}

		subs := v1.Group("/portal-submissions")
		{
			subs.GET("", h.Submissions.List)
			subs.GET("/:id", h.Submissions.Get)
			subs.PATCH("/:id/status", auth.RequireRole(model.RoleAdmin, model.RoleManager), h.Submissions.UpdateStatus)
			subs.POST("/:id/work-order", auth.RequireRole(model.RoleAdmin, model.RoleManager), h.Submissions.CreateWorkOrder)
			subs.POST("/:id/communications", auth.RequireRole(model.RoleAdmin, model.RoleManager), h.Submissions.AddCommunication)
		}

		upload := v1.Group("/upload")
		{
			upload.POST("/blob", h.Uploads.Upload)
			upload.DELETE("/blob", h.Uploads.Delete)
			upload.GET("/blob", h.Uploads.List)
		}

		tc := v1.Group("/table-config")
		{
			tc.GET("", h.TableConfig.Entities)
			tc.GET("/:entity", h.TableConfig.Get)
		}

		imports := v1.Group("/import", auth.RequireRole(model.RoleAdmin, model.RoleManager))
		{
			imports.POST("/assets", h.Imports.Assets)
			imports.POST("/parts", h.Imports.Parts)
		}
	}

	return r
}
