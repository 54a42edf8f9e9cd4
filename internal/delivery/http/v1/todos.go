package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/adanyl0v/go-todo-crud/internal/models"
	"github.com/adanyl0v/go-todo-crud/internal/services"
)

const (
	todosPath   = "/todos"
	todoPath    = "/todo/:todoId"
	todoIDParam = "todoId"
)

type todoResponse struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Done    bool   `json:"done"`
}

func newTodoResponse(todo *models.Todo) todoResponse {
	return todoResponse{
		ID:      todo.ID,
		Title:   todo.Title,
		Content: todo.Content,
		Done:    todo.Done,
	}
}

type listTodosResponse struct {
	Todos []todoResponse `json:"todos"`
}

type getTodoResponse struct {
	Todo todoResponse `json:"todo"`
}

// rawTodoID holds an id sent either as a JSON number or as a string.
type rawTodoID string

func (id *rawTodoID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		err := json.Unmarshal(data, &s)
		if err != nil {
			return err
		}
		*id = rawTodoID(s)
		return nil
	}
	*id = rawTodoID(data)
	return nil
}

type createTodoRequest struct {
	Title   *string `json:"title" form:"title" binding:"required"`
	Content *string `json:"content" form:"content" binding:"required"`
}

type setTodoDoneRequest struct {
	ID   rawTodoID `json:"id" form:"id" binding:"required"`
	Done *bool     `json:"done" form:"done" binding:"required"`
}

type deleteTodoRequest struct {
	ID rawTodoID `json:"id" form:"id" binding:"required"`
}

// bindBody decodes url-encoded and multipart forms as forms and any
// other body as JSON, whatever the method. net/http only parses form
// bodies of POST, PUT and PATCH requests.
func bindBody(c *gin.Context, obj any) error {
	switch c.ContentType() {
	case binding.MIMEPOSTForm:
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return fmt.Errorf("failed to read body: %w", err)
		}
		form, err := url.ParseQuery(string(body))
		if err != nil {
			return fmt.Errorf("failed to parse form: %w", err)
		}
		err = binding.MapFormWithTag(obj, form, "form")
		if err != nil {
			return err
		}
		return binding.Validator.ValidateStruct(obj)
	case binding.MIMEMultipartPOSTForm:
		return c.ShouldBindWith(obj, binding.FormMultipart)
	default:
		return c.ShouldBindWith(obj, binding.JSON)
	}
}

func (h *handlerImpl) HandleListTodos(c *gin.Context) {
	todos, err := h.todos.ListTodos(c)
	if err != nil {
		abort(c, newServiceError(err))
		return
	}

	response := listTodosResponse{
		Todos: make([]todoResponse, len(todos)),
	}
	for i, todo := range todos {
		response.Todos[i] = newTodoResponse(todo)
	}

	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleCreateTodo(c *gin.Context) {
	var req createTodoRequest
	err := bindBody(c, &req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	_, err = h.todos.CreateTodo(c, services.CreateTodoParams{
		Title:   *req.Title,
		Content: *req.Content,
	})
	if err != nil {
		abort(c, newServiceError(err))
		return
	}

	c.Redirect(http.StatusFound, todosPath)
}

func (h *handlerImpl) HandleSetTodoDone(c *gin.Context) {
	var req setTodoDoneRequest
	err := bindBody(c, &req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	id, err := services.ParseTodoID(string(req.ID))
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to parse todo id")
		abort(c, newServiceError(err))
		return
	}

	_, err = h.todos.SetTodoDone(c, services.SetTodoDoneParams{
		ID:   id,
		Done: *req.Done,
	})
	if err != nil {
		abort(c, newServiceError(err))
		return
	}

	c.Redirect(http.StatusFound, todosPath)
}

func (h *handlerImpl) HandleDeleteTodo(c *gin.Context) {
	var req deleteTodoRequest
	err := bindBody(c, &req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	id, err := services.ParseTodoID(string(req.ID))
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to parse todo id")
		abort(c, newServiceError(err))
		return
	}

	err = h.todos.DeleteTodo(c, id)
	if err != nil {
		abort(c, newServiceError(err))
		return
	}

	c.Redirect(http.StatusFound, todosPath)
}

func (h *handlerImpl) HandleGetTodo(c *gin.Context) {
	id, err := services.ParseTodoID(c.Param(todoIDParam))
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to parse todo id")
		abort(c, newServiceError(err))
		return
	}

	todo, err := h.todos.GetTodo(c, id)
	if err != nil {
		abort(c, newServiceError(err))
		return
	}

	c.JSON(http.StatusOK, getTodoResponse{Todo: newTodoResponse(todo)})
}

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	err := h.todos.Ping(c)
	if err != nil {
		abort(c, newServiceError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlerImpl) HandleNoRoute(c *gin.Context) {
	abort(c, newStatusTextError(http.StatusNotFound))
}

func (h *handlerImpl) HandleNoMethod(c *gin.Context) {
	h.logger.Warn().
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("unsupported method")
	abort(c, newStatusTextError(http.StatusMethodNotAllowed))
}
