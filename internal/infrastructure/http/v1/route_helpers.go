// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"stockyard/internal/core/security"
	"stockyard/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// Permission is the prefix checked by the access policies, e.g.
// "catalog:warehouse" expands to "catalog:warehouse:read" and so on.
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, permission string) {
	group.GET("", requirePermission(permission+":read"), handler.List)
	group.POST("", requirePermission(permission+":create"), handler.Create)
	group.GET("/:id", requirePermission(permission+":read"), handler.Get)
	group.PUT("/:id", requirePermission(permission+":update"), handler.Update)
	group.DELETE("/:id", requirePermission(permission+":delete"), handler.Delete)
	group.POST("/:id/deletion-mark", requirePermission(permission+":delete"), handler.SetDeletionMark)
}

// requirePermission builds the standard admin-or-permission guard.
func requirePermission(permission string) gin.HandlerFunc {
	return middleware.RequireAccess(security.RequirePermission(permission))
}

// requireRole builds the standard admin-or-role guard.
func requireRole(roles ...string) gin.HandlerFunc {
	return middleware.RequireAccess(security.RequireRole(roles...))
}
