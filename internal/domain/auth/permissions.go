package auth

// Permission names the content API assigns. Console routes are gated on these.
const (
	PermBlogView   = "blog_view"
	PermBlogCreate = "blog_create"
	PermBlogUpdate = "blog_update"
	PermBlogDelete = "blog_delete"

	PermCareerView   = "career_view"
	PermCareerCreate = "career_create"
	PermCareerUpdate = "career_update"
	PermCareerDelete = "career_delete"

	PermContactView   = "contact_view"
	PermContactUpdate = "contact_update"
	PermContactDelete = "contact_delete"

	PermHomePageView = "home_page_view"
	PermHomePageEdit = "home_page_edit"
)

// ResourcePermissions names the permission required for each kind of action on a resource.
type ResourcePermissions struct {
	View   string
	Create string
	Update string
	Delete string
}

var (
	BlogPermissions     = ResourcePermissions{View: PermBlogView, Create: PermBlogCreate, Update: PermBlogUpdate, Delete: PermBlogDelete}
	CareerPermissions   = ResourcePermissions{View: PermCareerView, Create: PermCareerCreate, Update: PermCareerUpdate, Delete: PermCareerDelete}
	ContactPermissions  = ResourcePermissions{View: PermContactView, Create: PermContactUpdate, Update: PermContactUpdate, Delete: PermContactDelete}
	HomePagePermissions = ResourcePermissions{View: PermHomePageView, Create: PermHomePageEdit, Update: PermHomePageEdit, Delete: PermHomePageEdit}
)
