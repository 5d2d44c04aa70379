package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/simbrella/cms-console/internal/apiclient"
	"github.com/simbrella/cms-console/internal/domain/forms"
	"github.com/simbrella/cms-console/internal/domain/model"
)

// ResourceSpec describes how one content resource maps onto the content API.
type ResourceSpec struct {
	// Name is the singular noun used in messages, e.g. "blog post".
	Name string
	// Plural is used in list failure messages, e.g. "blog posts".
	Plural string

	ListPath   string // GET, paginated
	GetPath    string // GET {GetPath}/{id}
	CreatePath string // POST
	AdminPath  string // update, delete, force-delete and restore live under {AdminPath}/{id}

	// CreateNoAuth sends create without a bearer token (public contact form).
	CreateNoAuth bool
	// JSONBodies sends create and update as JSON instead of multipart.
	JSONBodies bool
	// RestoreMethod defaults to POST.
	RestoreMethod string
	// ReadOnly rejects update without calling the API.
	ReadOnly bool

	// ViewPath is the console view listing this resource; detail views are {ViewPath}/{id}.
	ViewPath string

	// NewForm returns a pointer to a fresh form struct used to validate create and update input.
	NewForm func() any
}

// ResourceService runs the CRUD and lifecycle actions of one resource.
type ResourceService[T any] struct {
	spec ResourceSpec
	act  *actions
}

// NewResourceService constructs a ResourceService for spec.
func NewResourceService[T any](spec ResourceSpec, deps ActionDeps) *ResourceService[T] {
	if spec.NewForm == nil {
		panic("service: ResourceSpec.NewForm is required")
	}
	if spec.RestoreMethod == "" {
		spec.RestoreMethod = http.MethodPost
	}
	return &ResourceService[T]{spec: spec, act: newActions(resourceTag(spec.Name), deps)}
}

// Spec returns the resource's API mapping.
func (s *ResourceService[T]) Spec() ResourceSpec { return s.spec }

// List returns one page of the resource.
func (s *ResourceService[T]) List(ctx context.Context, params model.ListParams) Result[[]T] {
	req := apiclient.Request{
		Method: http.MethodGet,
		Path:   s.spec.ListPath,
		Query:  params.Normalize().Query(),
	}
	res := send[[]T](ctx, s.act, "list", req, "", "Failed to fetch "+s.spec.Plural)
	if res.Success && res.Data == nil {
		res.Data = []T{}
	}
	return res
}

// Get returns one item by id.
func (s *ResourceService[T]) Get(ctx context.Context, id int64) Result[*T] {
	req := apiclient.Request{Method: http.MethodGet, Path: itemPath(s.spec.GetPath, id)}
	return send[*T](ctx, s.act, "get", req, "", fmt.Sprintf("Failed to fetch %s with ID %d", s.spec.Name, id))
}

// Create validates in and creates a new item.
func (s *ResourceService[T]) Create(ctx context.Context, in forms.Input) Result[*T] {
	form := s.spec.NewForm()
	if err := s.act.bind(in, form, fmt.Sprintf("Invalid fields. Failed to create %s.", s.spec.Name)); err != nil {
		return invalid[*T](ctx, s.act, "create", err, "Failed to create "+s.spec.Name)
	}
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   s.spec.CreatePath,
		Body:   s.body(in, form),
		NoAuth: s.spec.CreateNoAuth,
	}
	res := send[*T](ctx, s.act, "create", req, capitalize(s.spec.Name)+" created successfully", "Failed to create "+s.spec.Name)
	if res.Success {
		s.act.invalidate(ctx, s.spec.ViewPath)
	}
	return res
}

// Update validates in and replaces item id.
//
// Multipart updates are tunnelled as POST {AdminPath}/{id}?_method=PUT because the API
// only parses multipart bodies on POST.
func (s *ResourceService[T]) Update(ctx context.Context, id int64, in forms.Input) Result[*T] {
	fallback := fmt.Sprintf("Failed to update %s with ID %d", s.spec.Name, id)
	if s.spec.ReadOnly {
		return Fail[*T](fallback)
	}
	form := s.spec.NewForm()
	if err := s.act.bind(in, form, fmt.Sprintf("Invalid fields. Failed to update %s.", s.spec.Name)); err != nil {
		return invalid[*T](ctx, s.act, "update", err, fallback)
	}
	req := apiclient.Request{Method: http.MethodPut, Path: itemPath(s.spec.AdminPath, id), Body: s.body(in, form)}
	if !s.spec.JSONBodies {
		req.Method = http.MethodPost
		req.Path += "?_method=PUT"
	}
	res := send[*T](ctx, s.act, "update", req, capitalize(s.spec.Name)+" updated successfully", fallback)
	if res.Success {
		s.act.invalidate(ctx, s.spec.ViewPath, itemPath(s.spec.ViewPath, id))
	}
	return res
}

// Delete soft-deletes item id; it stays restorable.
func (s *ResourceService[T]) Delete(ctx context.Context, id int64) Result[any] {
	req := apiclient.Request{Method: http.MethodDelete, Path: itemPath(s.spec.AdminPath, id)}
	res := acknowledge(ctx, s.act, "delete", req,
		capitalize(s.spec.Name)+" deleted successfully",
		fmt.Sprintf("Failed to delete %s with ID %d", s.spec.Name, id))
	if res.Success {
		s.act.invalidate(ctx, s.spec.ViewPath, itemPath(s.spec.ViewPath, id))
	}
	return res
}

// ForceDelete removes item id permanently.
func (s *ResourceService[T]) ForceDelete(ctx context.Context, id int64) Result[any] {
	req := apiclient.Request{Method: http.MethodDelete, Path: itemPath(s.spec.AdminPath, id) + "/force"}
	res := acknowledge(ctx, s.act, "force_delete", req,
		capitalize(s.spec.Name)+" permanently deleted successfully",
		fmt.Sprintf("Failed to permanently delete %s with ID %d", s.spec.Name, id))
	if res.Success {
		s.act.invalidate(ctx, s.spec.ViewPath, itemPath(s.spec.ViewPath, id))
	}
	return res
}

// Restore undoes a soft delete. Restoring a live item is left to the API; the
// result is passed through unchanged, so repeating a restore yields the same shape.
func (s *ResourceService[T]) Restore(ctx context.Context, id int64) Result[*T] {
	req := apiclient.Request{
		Method: s.spec.RestoreMethod,
		Path:   itemPath(s.spec.AdminPath, id) + "/restore",
		Body:   apiclient.JSONBody{Value: struct{}{}},
	}
	res := send[*T](ctx, s.act, "restore", req,
		capitalize(s.spec.Name)+" restored successfully",
		fmt.Sprintf("Failed to restore %s with ID %d", s.spec.Name, id))
	if res.Success {
		s.act.invalidate(ctx, s.spec.ViewPath, itemPath(s.spec.ViewPath, id))
	}
	return res
}

func (s *ResourceService[T]) body(in forms.Input, form any) apiclient.Body {
	if s.spec.JSONBodies {
		return apiclient.JSONBody{Value: form}
	}
	return apiclient.MultipartBody{Form: in}
}

func itemPath(base string, id int64) string {
	return fmt.Sprintf("%s/%d", strings.TrimRight(base, "/"), id)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func resourceTag(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
