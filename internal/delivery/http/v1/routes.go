package v1

import (
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine serving the todo API.
func NewRouter(h Handler) *gin.Engine {
	router := gin.New()
	// Lets request cancellation reach the store through c.
	router.ContextWithFallback = true
	router.HandleMethodNotAllowed = true

	router.Use(h.HandleRequestLogger)
	router.Use(gin.CustomRecovery(h.HandleRecovery))

	router.NoRoute(h.HandleNoRoute)
	router.NoMethod(h.HandleNoMethod)

	router.GET("/healthz", h.HandleHealth)

	router.GET(todosPath, h.HandleListTodos)
	router.POST(todosPath, h.HandleCreateTodo)
	router.PUT(todosPath, h.HandleSetTodoDone)
	router.DELETE(todosPath, h.HandleDeleteTodo)

	router.GET(todoPath, h.HandleGetTodo)

	return router
}
