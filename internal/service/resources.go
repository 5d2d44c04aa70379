package service

import (
	"net/http"

	"github.com/simbrella/cms-console/internal/domain/forms"
	"github.com/simbrella/cms-console/internal/domain/model"
)

// Resource specs for the managed content types.
var (
	BlogPostSpec = ResourceSpec{
		Name:       "blog post",
		Plural:     "blog posts",
		ListPath:   "/public/blog-posts",
		GetPath:    "/admin/blog-posts",
		CreatePath: "/blog-posts",
		AdminPath:  "/admin/blog-posts",
		ViewPath:   "/blog-management",
		NewForm:    func() any { return &forms.BlogPost{} },
	}

	CareerSpec = ResourceSpec{
		Name:       "career",
		Plural:     "careers",
		ListPath:   "/public/careers",
		GetPath:    "/public/careers",
		CreatePath: "/admin/careers",
		AdminPath:  "/admin/careers",
		ViewPath:   "/admin/careers",
		NewForm:    func() any { return &forms.Career{} },
	}

	// Messages arrive through the public contact form and are never edited.
	MessageSpec = ResourceSpec{
		Name:          "message",
		Plural:        "messages",
		ListPath:      "/admin/messages",
		GetPath:       "/admin/messages",
		CreatePath:    "/public/messages",
		AdminPath:     "/admin/messages",
		CreateNoAuth:  true,
		JSONBodies:    true,
		RestoreMethod: http.MethodPatch,
		ReadOnly:      true,
		ViewPath:      "/admin/messages",
		NewForm:       func() any { return &forms.Message{} },
	}

	HeroSectionSpec    = sectionSpec("hero", func() any { return &forms.HeroSection{} })
	AboutSectionSpec   = sectionSpec("about", func() any { return &forms.AboutSection{} })
	ServiceSectionSpec = sectionSpec("service", func() any { return &forms.ServiceSection{} })
	ProductSectionSpec = sectionSpec("product", func() any { return &forms.ProductSection{} })
)

func sectionSpec(kind string, newForm func() any) ResourceSpec {
	return ResourceSpec{
		Name:       kind + " section",
		Plural:     kind + " sections",
		ListPath:   "/public/" + kind + "-sections",
		GetPath:    "/public/" + kind + "-sections",
		CreatePath: "/admin/" + kind + "-sections",
		AdminPath:  "/admin/" + kind + "-sections",
		ViewPath:   "/admin/" + kind + "-sections",
		NewForm:    newForm,
	}
}

// BlogPostService manages blog posts.
type BlogPostService = ResourceService[model.BlogPost]

// CareerService manages job openings.
type CareerService = ResourceService[model.Career]

// HeroSectionService manages homepage banners.
type HeroSectionService = ResourceService[model.HeroSection]

// AboutSectionService manages "about us" sections.
type AboutSectionService = ResourceService[model.AboutSection]

// NewBlogPostService constructs the blog post service.
func NewBlogPostService(deps ActionDeps) *BlogPostService {
	return NewResourceService[model.BlogPost](BlogPostSpec, deps)
}

// NewCareerService constructs the careers service.
func NewCareerService(deps ActionDeps) *CareerService {
	return NewResourceService[model.Career](CareerSpec, deps)
}

// NewHeroSectionService constructs the hero section service.
func NewHeroSectionService(deps ActionDeps) *HeroSectionService {
	return NewResourceService[model.HeroSection](HeroSectionSpec, deps)
}

// NewAboutSectionService constructs the about section service.
func NewAboutSectionService(deps ActionDeps) *AboutSectionService {
	return NewResourceService[model.AboutSection](AboutSectionSpec, deps)
}
