package http

import (
	"skillink/internal/adapter/http/handlers"
	"skillink/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Health     *handlers.HealthHandler
	Posts      *handlers.PostHandler
	Edit       *handlers.EditHandler
	Applicants *handlers.ApplicantHandler
	Projects   *handlers.ProjectHandler
	Phases     *handlers.PhaseHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers, jwtSecret string) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware(), middleware.AuthMiddleware(jwtSecret))
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		api.GET("/categories", h.Posts.ListCategories)
		api.GET("/posts", h.Posts.ListPosts)
		api.POST("/posts", h.Posts.CreatePost)
		api.GET("/posts/:id", h.Posts.GetPost)
		api.PUT("/posts/:id", h.Posts.UpdatePost)
		api.DELETE("/posts/:id", h.Posts.DeletePost)

		api.POST("/posts/:id/edit", h.Edit.StartEdit)
		api.GET("/edit", h.Edit.CurrentEdit)
		api.DELETE("/edit", h.Edit.ClearEdit)
		api.POST("/edit/discard", h.Edit.DiscardEdit)

		api.POST("/posts/:id/applicants", h.Applicants.Apply)
		api.DELETE("/posts/:id/applicants/:applicantId", h.Applicants.Withdraw)

		api.GET("/projects", h.Projects.ListProjects)
		api.POST("/projects", h.Projects.CreateProject)
		api.GET("/projects/:id", h.Projects.GetProject)
		api.POST("/projects/:id/lock", h.Projects.LockPhases)
		api.DELETE("/projects/:id/lock", h.Projects.UnlockPhases)

		api.POST("/phases", h.Phases.CreatePhase)
		api.PATCH("/phases/:id", h.Phases.UpdatePhase)
		api.DELETE("/phases/:id", h.Phases.DeletePhase)
		api.POST("/phases/:id/todos", h.Phases.AddTodo)
		api.PATCH("/todos/:id", h.Phases.EditTodo)
		api.POST("/todos/:id/toggle", h.Phases.ToggleTodo)
		api.DELETE("/todos/:id", h.Phases.DeleteTodo)
	}
}
