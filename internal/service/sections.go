package service

import (
	"context"
	"net/http"

	"github.com/simbrella/cms-console/internal/apiclient"
	"github.com/simbrella/cms-console/internal/domain/forms"
	"github.com/simbrella/cms-console/internal/domain/model"
)

// OrderedSectionService manages a section type whose entries carry a display order.
type OrderedSectionService[T any] struct {
	*ResourceService[T]
	label string
}

// ServiceSectionService manages the services list.
type ServiceSectionService = OrderedSectionService[model.ServiceSection]

// ProductSectionService manages the products list.
type ProductSectionService = OrderedSectionService[model.ProductSection]

// NewServiceSectionService constructs the service section service.
func NewServiceSectionService(deps ActionDeps) *ServiceSectionService {
	return &ServiceSectionService{
		ResourceService: NewResourceService[model.ServiceSection](ServiceSectionSpec, deps),
		label:           "Service sections",
	}
}

// NewProductSectionService constructs the product section service.
func NewProductSectionService(deps ActionDeps) *ProductSectionService {
	return &ProductSectionService{
		ResourceService: NewResourceService[model.ProductSection](ProductSectionSpec, deps),
		label:           "Product sections",
	}
}

// Reorder sets the display order to the given ids, first to last.
func (s *OrderedSectionService[T]) Reorder(ctx context.Context, ids []int64) Result[any] {
	form := forms.Reorder{OrderedIDs: ids}
	if err := s.act.validate.Struct(&form, "Invalid fields. Failed to reorder "+s.spec.Plural+"."); err != nil {
		return invalid[any](ctx, s.act, "reorder", err, "Failed to reorder "+s.spec.Plural)
	}
	req := apiclient.Request{
		Method: http.MethodPost,
		Path:   s.spec.AdminPath + "/reorder",
		Body:   apiclient.JSONBody{Value: form},
	}
	res := acknowledge(ctx, s.act, "reorder", req, s.label+" reordered successfully", "Failed to reorder "+s.spec.Plural)
	if res.Success {
		paths := make([]string, 0, len(ids)+1)
		paths = append(paths, s.spec.ViewPath)
		for _, id := range ids {
			paths = append(paths, itemPath(s.spec.ViewPath, id))
		}
		s.act.invalidate(ctx, paths...)
	}
	return res
}
