// Package ginadapter mounts the log viewer on an existing gin application.
// Routes, bodies and status codes match the chi router.
package ginadapter

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-log-viewer/internal/auth"
	"go-log-viewer/internal/handler"
	"go-log-viewer/internal/middleware"
	"go-log-viewer/internal/model"
	"go-log-viewer/internal/service"
	"go-log-viewer/internal/ui"
)

type Options struct {
	Authenticator *auth.Authenticator
	Page          *ui.Page
	DefaultLines  int
}

type routes struct {
	service      *service.LogService
	page         *ui.Page
	defaultLines int
}

// Register adds the viewer page and the four API routes to router. Callers
// choose the mount point by passing a group.
func Register(router gin.IRouter, svc *service.LogService, opts Options) {
	rt := &routes{service: svc, page: opts.Page, defaultLines: opts.DefaultLines}

	group := router.Group("", basicAuth(opts.Authenticator))
	if rt.page != nil {
		group.GET("/", rt.index)
	}
	group.GET("/api/files", rt.files)
	group.GET("/api/content", rt.content)
	group.POST("/api/clear", rt.clear)
	group.DELETE("/api/file", rt.delete)
}

func basicAuth(authenticator *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := authenticator.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			c.Header("WWW-Authenticate", auth.Challenge())
			c.String(http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		actor.IP = c.ClientIP()
		c.Request = c.Request.WithContext(middleware.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

func (rt *routes) index(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := rt.page.Render(c.Writer); err != nil {
		slog.ErrorContext(c.Request.Context(), "render viewer page failed", "error", err)
		c.String(http.StatusInternalServerError, "Unable to render log viewer")
	}
}

func (rt *routes) files(c *gin.Context) {
	files, err := rt.service.ListFiles(c.Request.Context())
	if err != nil {
		c.JSON(handler.ErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, model.FilesResponse{Files: files})
}

func (rt *routes) content(c *gin.Context) {
	query := handler.ParseContentQuery(c.Request.URL.Query(), rt.defaultLines)
	c.JSON(http.StatusOK, rt.service.Read(c.Request.Context(), query))
}

func (rt *routes) clear(c *gin.Context) {
	file := c.Query("file")
	actor, _ := middleware.ActorFromContext(c.Request.Context())

	if err := rt.service.Clear(c.Request.Context(), file, actor); err != nil {
		c.JSON(handler.ErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, handler.MutationSuccess(file, "cleared"))
}

func (rt *routes) delete(c *gin.Context) {
	file := c.Query("file")
	actor, _ := middleware.ActorFromContext(c.Request.Context())

	if err := rt.service.Delete(c.Request.Context(), file, actor); err != nil {
		c.JSON(handler.ErrorResponse(err))
		return
	}

	c.JSON(http.StatusOK, handler.MutationSuccess(file, "deleted"))
}
