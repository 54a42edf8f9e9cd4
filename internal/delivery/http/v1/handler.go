package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-crud/internal/services"
)

type Handler interface {
	HandleListTodos(c *gin.Context)
	HandleCreateTodo(c *gin.Context)
	HandleSetTodoDone(c *gin.Context)
	HandleDeleteTodo(c *gin.Context)
	HandleGetTodo(c *gin.Context)

	HandleHealth(c *gin.Context)
	HandleNoRoute(c *gin.Context)
	HandleNoMethod(c *gin.Context)

	HandleRequestLogger(c *gin.Context)
	HandleRecovery(c *gin.Context, recovered any)
}

type handlerImpl struct {
	logger zerolog.Logger
	todos  services.TodoService
}

func New(
	logger zerolog.Logger,
	todoService services.TodoService,
) Handler {
	return &handlerImpl{
		logger: logger,
		todos:  todoService,
	}
}
