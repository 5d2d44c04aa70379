//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"encoding/json"
	"time"
)

// Record carries the identity, ownership and soft-delete markers shared by every
// content entity. It is embedded so its fields flatten into the entity's JSON.
type Record struct {
	ID        int64      `json:"id"`
	UserID    *int64     `json:"user_id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Key returns the entity ID.
func (r Record) Key() int64 { return r.ID }

// Trashed reports whether the entity is soft-deleted.
func (r Record) Trashed() bool { return r.DeletedAt != nil }

// Entity is implemented by every content type through Record.
type Entity interface {
	Key() int64
	Trashed() bool
}

// Image is an attached gallery image.
type Image struct {
	ID        int64  `json:"id"`
	ImagePath string `json:"image_path,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Caption   string `json:"caption,omitempty"`
}

// BlogPost is an article on the marketing site.
type BlogPost struct {
	Record
	Title          string          `json:"title"`
	Subtitle       *string         `json:"subtitle,omitempty"`
	Body           string          `json:"body"`
	BannerImage    *string         `json:"banner_image,omitempty"`
	BannerImageURL *string         `json:"banner_image_url,omitempty"`
	Caption        *string         `json:"caption,omitempty"`
	Status         Status          `json:"status"`
	StatusLabel    *string         `json:"status_label,omitempty"`
	Images         []Image         `json:"images,omitempty"`
	ImagesCount    int             `json:"images_count"`
	Views          int             `json:"views"`
	User           json.RawMessage `json:"user,omitempty"`
}

// Career is a job opening.
type Career struct {
	Record
	Title            string          `json:"title"`
	Subtitle         *string         `json:"subtitle,omitempty"`
	Description      string          `json:"description"`
	Location         string          `json:"location"`
	Format           string          `json:"format"`
	Department       string          `json:"department"`
	EmploymentType   string          `json:"employment_type"`
	SalaryMin        *float64        `json:"salary_min,omitempty"`
	SalaryMax        *float64        `json:"salary_max,omitempty"`
	SalaryRange      *string         `json:"salary_range,omitempty"`
	Currency         string          `json:"currency,omitempty"`
	ApplicationEmail string          `json:"application_email,omitempty"`
	Requirements     json.RawMessage `json:"requirements,omitempty"`
	Benefits         json.RawMessage `json:"benefits,omitempty"`
	BannerImageURL   *string         `json:"banner_image_url,omitempty"`
	Status           Status          `json:"status"`
	StatusLabel      *string         `json:"status_label,omitempty"`
	PublishedAt      *time.Time      `json:"published_at,omitempty"`
	ExpiresAt        *time.Time      `json:"expires_at,omitempty"`
}

// Message is a contact-form submission.
type Message struct {
	Record
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	FullName      string     `json:"full_name,omitempty"`
	Email         string     `json:"email"`
	Message       string     `json:"message"`
	Response      *string    `json:"response,omitempty"`
	Status        Status     `json:"status"`
	StatusLabel   *string    `json:"status_label,omitempty"`
	RespondedByID *int64     `json:"responded_by_id,omitempty"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
}

// HeroSection is the homepage banner.
type HeroSection struct {
	Record
	Title       string  `json:"title"`
	Subtitle    *string `json:"subtitle,omitempty"`
	Status      Status  `json:"status"`
	StatusLabel *string `json:"status_label,omitempty"`
	Images      []Image `json:"images,omitempty"`
	ImagesCount int     `json:"images_count"`
}

// AboutSection is the homepage "about us" block. Its status is a numeric active flag.
type AboutSection struct {
	Record
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	ImagePath   *string `json:"image_path,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Status      Status  `json:"status"`
	StatusLabel *string `json:"status_label,omitempty"`
}

// ServiceSection is one entry of the homepage services list.
type ServiceSection struct {
	Record
	Title        string  `json:"title"`
	TitleShort   *string `json:"title_short,omitempty"`
	Summary      string  `json:"summary"`
	SummaryShort *string `json:"summary_short,omitempty"`
	Icon         string  `json:"icon,omitempty"`
	IconURL      *string `json:"icon_url,omitempty"`
	ImagePath    *string `json:"image_path,omitempty"`
	ImageURL     *string `json:"image_url,omitempty"`
	Order        *int    `json:"order,omitempty"`
	Status       Status  `json:"status"`
	StatusLabel  *string `json:"status_label,omitempty"`
}

// ProductSection is one entry of the homepage products list. Its status is a numeric active flag.
type ProductSection struct {
	Record
	Title       string  `json:"title"`
	Summary     string  `json:"summary"`
	ImagePath   *string `json:"image_path,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	Order       int     `json:"order"`
	Status      Status  `json:"status"`
	StatusLabel *string `json:"status_label,omitempty"`
}
