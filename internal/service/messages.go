package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/simbrella/cms-console/internal/apiclient"
	"github.com/simbrella/cms-console/internal/domain/forms"
	"github.com/simbrella/cms-console/internal/domain/model"
)

// MessageService manages contact messages: the shared lifecycle actions plus
// the public send flow, replies and status transitions.
type MessageService struct {
	*ResourceService[model.Message]
}

// NewMessageService constructs the message service.
func NewMessageService(deps ActionDeps) *MessageService {
	return &MessageService{ResourceService: NewResourceService[model.Message](MessageSpec, deps)}
}

// Create sends a contact message from the public form. No session is required.
func (s *MessageService) Create(ctx context.Context, in forms.Input) Result[*model.Message] {
	var form forms.Message
	if err := s.act.bind(in, &form, "Invalid fields. Failed to send message."); err != nil {
		return invalid[*model.Message](ctx, s.act, "create", err, "Failed to send message")
	}
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   s.spec.CreatePath,
		Body:   apiclient.JSONBody{Value: form},
		NoAuth: true,
	}
	res := send[*model.Message](ctx, s.act, "create", req, "Message sent successfully", "Failed to send message")
	if res.Success {
		s.act.invalidate(ctx, s.spec.ViewPath)
	}
	return res
}

// Respond replies to message id, optionally emailing the sender.
func (s *MessageService) Respond(ctx context.Context, id int64, in forms.Input) Result[*model.Message] {
	fallback := fmt.Sprintf("Failed to respond to message with ID %d", id)
	var form forms.Respond
	if err := s.act.bind(in, &form, "Invalid fields. Failed to respond to message."); err != nil {
		return invalid[*model.Message](ctx, s.act, "respond", err, fallback)
	}
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   itemPath(s.spec.AdminPath, id) + "/respond",
		Body:   apiclient.JSONBody{Value: form},
	}
	return s.transition(ctx, id, "respond", req, "Response sent successfully", fallback)
}

// MarkAsRead moves message id to the read status.
func (s *MessageService) MarkAsRead(ctx context.Context, id int64) Result[*model.Message] {
	req := apiclient.Request{Method: http.MethodPatch, Path: itemPath(s.spec.AdminPath, id) + "/mark-as-read", Body: apiclient.JSONBody{Value: struct{}{}}}
	return s.transition(ctx, id, "mark_as_read", req, "Message marked as read",
		fmt.Sprintf("Failed to mark message with ID %d as read", id))
}

// Archive moves message id to the archived status.
func (s *MessageService) Archive(ctx context.Context, id int64) Result[*model.Message] {
	req := apiclient.Request{Method: http.MethodPatch, Path: itemPath(s.spec.AdminPath, id) + "/archive", Body: apiclient.JSONBody{Value: struct{}{}}}
	return s.transition(ctx, id, "archive", req, "Message archived successfully",
		fmt.Sprintf("Failed to archive message with ID %d", id))
}

func (s *MessageService) transition(ctx context.Context, id int64, action string, req apiclient.Request, successMsg, fallback string) Result[*model.Message] {
	res := send[*model.Message](ctx, s.act, action, req, successMsg, fallback)
	if res.Success {
		s.act.invalidate(ctx, s.spec.ViewPath, itemPath(s.spec.ViewPath, id))
	}
	return res
}
