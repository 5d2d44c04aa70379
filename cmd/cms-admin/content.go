package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simbrella/cms-console/internal/bootstrap"
	domainauth "github.com/simbrella/cms-console/internal/domain/auth"
	"github.com/simbrella/cms-console/internal/domain/model"
	"github.com/simbrella/cms-console/internal/service"
)

// resourceOps are the lifecycle actions of one resource with the item type erased.
type resourceOps struct {
	list        func(ctx context.Context, p model.ListParams) service.Result[any]
	get         func(ctx context.Context, id int64) service.Result[any]
	remove      func(ctx context.Context, id int64) service.Result[any]
	forceDelete func(ctx context.Context, id int64) service.Result[any]
	restore     func(ctx context.Context, id int64) service.Result[any]
}

func opsFor[T any](svc *service.ResourceService[T]) resourceOps {
	return resourceOps{
		list:        func(ctx context.Context, p model.ListParams) service.Result[any] { return erase(svc.List(ctx, p)) },
		get:         func(ctx context.Context, id int64) service.Result[any] { return erase(svc.Get(ctx, id)) },
		remove:      svc.Delete,
		forceDelete: svc.ForceDelete,
		restore:     func(ctx context.Context, id int64) service.Result[any] { return erase(svc.Restore(ctx, id)) },
	}
}

func erase[T any](r service.Result[T]) service.Result[any] {
	return service.Result[any]{
		Success:  r.Success,
		Data:     r.Data,
		Meta:     r.Meta,
		Error:    r.Error,
		Message:  r.Message,
		Redirect: r.Redirect,
	}
}

type resource struct {
	name    string
	aliases []string
	perms   domainauth.ResourcePermissions
	columns []string
	cells   map[string]func(any) string
	ops     func(s bootstrap.ServiceContainer) resourceOps
}

var resources = []resource{
	{
		name:    "blog-posts",
		aliases: []string{"blog", "posts"},
		perms:   domainauth.BlogPermissions,
		columns: []string{"id", "title", "status", "views", "body"},
		cells:   map[string]func(any) string{"body": excerptCell},
		ops:     func(s bootstrap.ServiceContainer) resourceOps { return opsFor(s.BlogPosts) },
	},
	{
		name:    "careers",
		aliases: []string{"jobs"},
		perms:   domainauth.CareerPermissions,
		columns: []string{"id", "title", "department", "location", "status"},
		ops:     func(s bootstrap.ServiceContainer) resourceOps { return opsFor(s.Careers) },
	},
	{
		name:    "messages",
		aliases: []string{"contact"},
		perms:   domainauth.ContactPermissions,
		columns: []string{"id", "full_name", "email", "status", "message"},
		cells:   map[string]func(any) string{"message": excerptCell},
		ops:     func(s bootstrap.ServiceContainer) resourceOps { return opsFor(s.Messages.ResourceService) },
	},
	{
		name:    "hero-sections",
		perms:   domainauth.HomePagePermissions,
		columns: []string{"id", "title", "status"},
		ops:     func(s bootstrap.ServiceContainer) resourceOps { return opsFor(s.HeroSections) },
	},
	{
		name:    "about-sections",
		perms:   domainauth.HomePagePermissions,
		columns: []string{"id", "title", "status", "summary"},
		cells:   map[string]func(any) string{"summary": excerptCell},
		ops:     func(s bootstrap.ServiceContainer) resourceOps { return opsFor(s.AboutSections) },
	},
	{
		name:    "service-sections",
		perms:   domainauth.HomePagePermissions,
		columns: []string{"id", "order", "title", "status"},
		ops:     func(s bootstrap.ServiceContainer) resourceOps { return opsFor(s.ServiceSections.ResourceService) },
	},
	{
		name:    "product-sections",
		perms:   domainauth.HomePagePermissions,
		columns: []string{"id", "order", "title", "status"},
		ops:     func(s bootstrap.ServiceContainer) resourceOps { return opsFor(s.ProductSections.ResourceService) },
	},
}

func lookupResource(name string) (resource, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, r := range resources {
		if r.name == name {
			return r, nil
		}
		for _, a := range r.aliases {
			if a == name {
				return r, nil
			}
		}
	}
	return resource{}, fmt.Errorf("unknown resource %q (want one of %s)", name, strings.Join(resourceNames(), ", "))
}

func resourceNames() []string {
	names := make([]string, 0, len(resources))
	for _, r := range resources {
		names = append(names, r.name)
	}
	sort.Strings(names)
	return names
}

func completeResources(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return resourceNames(), cobra.ShellCompDirectiveNoFileComp
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// listPage is what list prints in json and yaml: the items plus paging.
type listPage struct {
	Data []any           `json:"data"`
	Meta *model.PageMeta `json:"meta,omitempty"`
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var p model.ListParams
	var order string
	cmd := &cobra.Command{
		Use:               "list <resource>",
		Short:             "List a content resource",
		Long:              "List a content resource. Resources: " + strings.Join(resourceNames(), ", ") + ".",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeResources,
		RunE: runWith(opts, func(cmd *cobra.Command, a *app, args []string) error {
			res, err := lookupResource(args[0])
			if err != nil {
				return err
			}
			if err := requirePermission(cmd.Context(), a, res.perms.View); err != nil {
				return err
			}
			p.OrderDirection = model.SortDirection(order)

			out := res.ops(a.svcs).list(cmd.Context(), p)
			if !out.Success {
				return failure(out.Message, out.Error)
			}
			items, err := plainList(out.Data)
			if err != nil {
				return err
			}
			if a.printer.format == outputTable && a.printer.query == "" {
				if err := a.printer.withColumns(res.columns, res.cells).print(a.out, items); err != nil {
					return err
				}
				if out.Meta != nil {
					_, err := fmt.Fprintf(a.out, "page %d of %d (%d total)\n", out.Meta.CurrentPage, out.Meta.LastPage, out.Meta.Total)
					return err
				}
				return nil
			}
			return a.printer.print(a.out, listPage{Data: items, Meta: out.Meta})
		}),
	}

	f := cmd.Flags()
	f.IntVar(&p.Page, "page", model.DefaultPage, "page number")
	f.IntVar(&p.PerPage, "per-page", model.DefaultPerPage, "items per page")
	f.StringVar(&p.Search, "search", "", "free-text search")
	f.StringVar(&p.Status, "status", "", "status filter")
	f.StringVar(&p.OrderBy, "order-by", "", "sort field")
	f.StringVar(&order, "order", "", "sort direction: asc or desc")
	f.BoolVar(&p.TrashedOnly, "trashed", false, "list only soft-deleted items")
	f.StringVar(&p.StartDate, "from", "", "created on or after (YYYY-MM-DD)")
	f.StringVar(&p.EndDate, "to", "", "created on or before (YYYY-MM-DD)")
	f.StringVar(&p.Department, "department", "", "careers: department filter")
	f.BoolVar(&p.ActiveOnly, "active", false, "careers: only open positions")
	return cmd
}

func plainList(data any) ([]any, error) {
	v, err := plain(data)
	if err != nil {
		return nil, err
	}
	items, _ := v.([]any)
	if items == nil {
		items = []any{}
	}
	return items, nil
}

func newGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "get <resource> <id>",
		Short:             "Show one item of a content resource",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeResources,
		RunE: runWith(opts, func(cmd *cobra.Command, a *app, args []string) error {
			res, id, err := resourceAndID(args)
			if err != nil {
				return err
			}
			if err := requirePermission(cmd.Context(), a, res.perms.View); err != nil {
				return err
			}
			out := res.ops(a.svcs).get(cmd.Context(), id)
			if !out.Success {
				return failure(out.Message, out.Error)
			}
			return a.printer.print(a.out, out.Data)
		}),
	}
}

// lifecycleCmd builds delete, restore and force-delete, which share their shape.
func lifecycleCmd(opts *rootOptions, use, short string, action func(resourceOps) func(context.Context, int64) service.Result[any]) *cobra.Command {
	return &cobra.Command{
		Use:               use + " <resource> <id>",
		Short:             short,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeResources,
		RunE: runWith(opts, func(cmd *cobra.Command, a *app, args []string) error {
			res, id, err := resourceAndID(args)
			if err != nil {
				return err
			}
			if err := requirePermission(cmd.Context(), a, res.perms.Delete); err != nil {
				return err
			}
			out := action(res.ops(a.svcs))(cmd.Context(), id)
			if !out.Success {
				return failure(out.Message, out.Error)
			}
			_, err = fmt.Fprintln(a.out, out.Message)
			return err
		}),
	}
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return lifecycleCmd(opts, "delete", "Move an item to the trash",
		func(o resourceOps) func(context.Context, int64) service.Result[any] { return o.remove })
}

func newRestoreCmd(opts *rootOptions) *cobra.Command {
	return lifecycleCmd(opts, "restore", "Restore a trashed item",
		func(o resourceOps) func(context.Context, int64) service.Result[any] { return o.restore })
}

func newForceDeleteCmd(opts *rootOptions) *cobra.Command {
	return lifecycleCmd(opts, "force-delete", "Permanently delete an item",
		func(o resourceOps) func(context.Context, int64) service.Result[any] { return o.forceDelete })
}

func resourceAndID(args []string) (resource, int64, error) {
	res, err := lookupResource(args[0])
	if err != nil {
		return resource{}, 0, err
	}
	id, err := parseID(args[1])
	if err != nil {
		return resource{}, 0, err
	}
	return res, id, nil
}

func newDashboardCmd(opts *rootOptions) *cobra.Command {
	var (
		period string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show dashboard statistics, visitors, top posts and recent activity",
		Args:  cobra.NoArgs,
		RunE: runWith(opts, func(cmd *cobra.Command, a *app, _ []string) error {
			if err := requirePermission(cmd.Context(), a, ""); err != nil {
				return err
			}
			overview := a.svcs.Dashboard.Overview(cmd.Context(), period, limit)
			if a.printer.format == outputTable && a.printer.query == "" {
				return printOverview(a, overview)
			}
			return a.printer.print(a.out, overview)
		}),
	}
	cmd.Flags().StringVar(&period, "period", "weekly", "visitor statistics period")
	cmd.Flags().IntVar(&limit, "limit", model.DefaultDashboardLimit, "rows in the top posts and activity lists")
	return cmd
}

func printOverview(a *app, o model.DashboardOverview) error {
	sections := []struct {
		title string
		value any
		cols  []string
		cells map[string]func(any) string
	}{
		{title: "Statistics", value: o.Data},
		{title: "Visitors", value: o.Visitors},
		{title: "Top blog posts", value: o.TopBlogs, cols: []string{"id", "title", "views"}},
		{title: "Recent activity", value: o.RecentActivity},
	}
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(a.out)
		}
		fmt.Fprintf(a.out, "== %s ==\n", s.title)
		if err := a.printer.withColumns(s.cols, s.cells).print(a.out, s.value); err != nil {
			return err
		}
	}
	return nil
}
