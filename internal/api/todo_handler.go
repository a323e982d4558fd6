package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dnwandana/todo-api/internal/api/middleware"
	"github.com/dnwandana/todo-api/internal/api/shared"
	"github.com/dnwandana/todo-api/internal/domain"
	"github.com/dnwandana/todo-api/internal/pagination"
	"github.com/dnwandana/todo-api/internal/store"
)

// MaxBulkDeleteIDs caps the number of identifiers accepted by the bulk
// delete endpoint.
const MaxBulkDeleteIDs = 50

// TodoHandler handles todo CRUD API requests. Every operation is scoped by
// the authenticated user's ID.
type TodoHandler struct {
	todoStore store.TodoStore
}

// NewTodoHandler creates a new TodoHandler with the given dependencies.
func NewTodoHandler(todoStore store.TodoStore) *TodoHandler {
	return &TodoHandler{
		todoStore: todoStore,
	}
}

// Create handles POST /todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return
	}

	var req TodoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	todo, err := domain.NewTodo(userID, req.Title, req.Description, req.IsCompleted)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.todoStore.Create(r.Context(), todo); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to create todo", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, "todo created", todo)
}

// List handles GET /todos with pagination, search and sort.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return
	}

	params, err := pagination.ParamsFromQuery(r.URL.Query())
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	page, err := pagination.Paginate(
		r.Context(),
		params,
		store.TodoSortableColumns,
		func(ctx context.Context, searchPattern string) (int64, error) {
			return h.todoStore.Count(ctx, userID, searchPattern)
		},
		func(ctx context.Context, opts pagination.ListOptions) ([]*domain.Todo, error) {
			return h.todoStore.List(ctx, userID, opts)
		},
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "todos retrieved", page)
}

// Get handles GET /todos/{id}.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid todo ID")
		return
	}

	todo, err := h.todoStore.GetByID(r.Context(), userID, id)
	if err != nil {
		h.respondStoreError(w, r, err, "Failed to get todo")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "todo retrieved", todo)
}

// Update handles PUT /todos/{id}.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid todo ID")
		return
	}

	var req TodoRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	todo, err := h.todoStore.GetByID(r.Context(), userID, id)
	if err != nil {
		h.respondStoreError(w, r, err, "Failed to update todo")
		return
	}

	todo.Title = req.Title
	todo.Description = req.Description
	todo.IsCompleted = req.IsCompleted

	if err := h.todoStore.Update(r.Context(), todo); err != nil {
		h.respondStoreError(w, r, err, "Failed to update todo")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "todo updated", todo)
}

// Delete handles DELETE /todos/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid todo ID")
		return
	}

	if err := h.todoStore.Delete(r.Context(), userID, id); err != nil {
		h.respondStoreError(w, r, err, "Failed to delete todo")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "todo deleted", nil)
}

// BulkDelete handles DELETE /todos?ids=a,b,c. The whole batch is rejected if
// any identifier is malformed; deletion itself is best effort, silently
// skipping ids the caller does not own.
func (h *TodoHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "No token provided")
		return
	}

	ids, err := parseBulkIDs(r.URL.Query().Get("ids"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := h.todoStore.DeleteMany(r.Context(), userID, ids)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			http.StatusInternalServerError, "Failed to delete todos", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, "todos deleted", BulkDeleteResponse{
		DeletedCount: deleted,
	})
}

// parseBulkIDs parses and validates the comma-separated ids parameter. Any
// malformed identifier rejects the whole batch; no partial validation pass.
func parseBulkIDs(raw string) ([]uuid.UUID, error) {
	if raw == "" {
		return nil, errors.New("ids is required")
	}

	parts := strings.Split(raw, ",")
	if len(parts) > MaxBulkDeleteIDs {
		return nil, errors.New("at most 50 ids may be deleted at once")
	}

	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.New("ids must be well-formed identifiers")
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (h *TodoHandler) respondStoreError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	if errors.Is(err, store.ErrTodoNotFound) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Todo not found")
		return
	}
	shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, fallback, err)
}
