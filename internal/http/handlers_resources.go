package httpx

import (
	"context"
	"net/http"
	"strconv"

	"github.com/simbrella/cms-console/internal/domain/forms"
	"github.com/simbrella/cms-console/internal/domain/model"
	"github.com/simbrella/cms-console/internal/service"
)

// ResourceService is the action surface a content resource exposes to the console.
// *service.ResourceService and the message and section services implement it.
type ResourceService[T any] interface {
	Spec() service.ResourceSpec
	List(ctx context.Context, params model.ListParams) service.Result[[]T]
	Get(ctx context.Context, id int64) service.Result[*T]
	Create(ctx context.Context, in forms.Input) service.Result[*T]
	Update(ctx context.Context, id int64, in forms.Input) service.Result[*T]
	Delete(ctx context.Context, id int64) service.Result[any]
	ForceDelete(ctx context.Context, id int64) service.Result[any]
	Restore(ctx context.Context, id int64) service.Result[*T]
}

// ResourceHandlers serves one content resource as JSON.
type ResourceHandlers[T any] struct {
	Svc ResourceService[T]
}

func (h *ResourceHandlers[T]) List(w http.ResponseWriter, r *http.Request) {
	params := model.ParseListParams(r.URL.Query())
	WriteResult(w, http.StatusOK, h.Svc.List(r.Context(), params))
}

func (h *ResourceHandlers[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusOK, h.Svc.Get(r.Context(), id))
}

func (h *ResourceHandlers[T]) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := bindInput(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusCreated, h.Svc.Create(r.Context(), in))
}

func (h *ResourceHandlers[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, ok := bindInput(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusOK, h.Svc.Update(r.Context(), id, in))
}

func (h *ResourceHandlers[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusOK, h.Svc.Delete(r.Context(), id))
}

func (h *ResourceHandlers[T]) ForceDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusOK, h.Svc.ForceDelete(r.Context(), id))
}

func (h *ResourceHandlers[T]) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusOK, h.Svc.Restore(r.Context(), id))
}

// listView and itemView name the cached console views a resource's reads populate.
// A listing's variant is its normalized list params, so unknown or reordered query
// keys share one entry.
func (h *ResourceHandlers[T]) listView(r *http.Request) (string, string) {
	return h.Svc.Spec().ViewPath, model.ParseListParams(r.URL.Query()).Query().Encode()
}

func (h *ResourceHandlers[T]) itemView(r *http.Request) (string, string) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		return "", ""
	}
	return h.Svc.Spec().ViewPath + "/" + strconv.FormatInt(id, 10), ""
}

// MessageHandlers adds the inbox transitions to the message resource.
type MessageHandlers struct {
	ResourceHandlers[model.Message]
	Messages *service.MessageService
}

// NewMessageHandlers wires handlers for svc.
func NewMessageHandlers(svc *service.MessageService) *MessageHandlers {
	return &MessageHandlers{ResourceHandlers: ResourceHandlers[model.Message]{Svc: svc}, Messages: svc}
}

func (h *MessageHandlers) Respond(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, ok := bindInput(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusOK, h.Messages.Respond(r.Context(), id, in))
}

func (h *MessageHandlers) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusOK, h.Messages.MarkAsRead(r.Context(), id))
}

func (h *MessageHandlers) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	WriteResult(w, http.StatusOK, h.Messages.Archive(r.Context(), id))
}

// Reorderer is implemented by section services whose items carry a display order.
type Reorderer interface {
	Reorder(ctx context.Context, ids []int64) service.Result[any]
}

type reorderRequest struct {
	OrderedIDs []int64 `json:"ordered_ids"`
}

// reorderHandler accepts {"ordered_ids": [...]}.
func reorderHandler(svc Reorderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		WriteResult(w, http.StatusOK, svc.Reorder(r.Context(), req.OrderedIDs))
	}
}

func bindInput(w http.ResponseWriter, r *http.Request) (forms.Input, bool) {
	in, err := readInput(r)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return forms.Input{}, false
	}
	return in, true
}
