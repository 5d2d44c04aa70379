package forms

// BlogPost is the create/update form for blog posts. Files (banner_image, related_images)
// travel in Input.Files and are not decoded here.
type BlogPost struct {
	Title    string  `form:"title"    json:"title"              validate:"min=3"                                msg:"Title must be at least 3 characters"`
	Subtitle *string `form:"subtitle" json:"subtitle,omitempty"`
	Body     string  `form:"body"     json:"body"               validate:"min=10"                               msg:"Body must be at least 10 characters"`
	Caption  *string `form:"caption"  json:"caption,omitempty"`
	Status   string  `form:"status"   json:"status"             validate:"required,oneof=draft published archived"`
}

// Career is the create/update form for job openings.
type Career struct {
	Title            string   `form:"title"             json:"title"                     validate:"min=3"                                               msg:"Title must be at least 3 characters"`
	Subtitle         *string  `form:"subtitle"          json:"subtitle,omitempty"`
	Description      string   `form:"description"       json:"description"               validate:"min=10"                                              msg:"Description must be at least 10 characters"`
	Location         string   `form:"location"          json:"location"                  validate:"min=2"                                               msg:"Location must be at least 2 characters"`
	Format           string   `form:"format"            json:"format"                    validate:"min=2"                                               msg:"Format must be at least 2 characters"`
	Department       *string  `form:"department"        json:"department,omitempty"`
	EmploymentType   *string  `form:"employment_type"   json:"employment_type,omitempty" validate:"omitempty,oneof=full-time part-time contract"`
	SalaryMin        *float64 `form:"salary_min"        json:"salary_min,omitempty"      validate:"omitempty,gte=0"`
	SalaryMax        *float64 `form:"salary_max"        json:"salary_max,omitempty"      validate:"omitempty,gte=0"`
	Currency         *string  `form:"currency"          json:"currency,omitempty"`
	ApplicationEmail string   `form:"application_email" json:"application_email"         validate:"required,email"                                      msg:"Please enter a valid email address"`
	Requirements     *string  `form:"requirements"      json:"requirements,omitempty"`
	Benefits         *string  `form:"benefits"          json:"benefits,omitempty"`
	Status           *string  `form:"status"            json:"status,omitempty"          validate:"omitempty,oneof=draft published open closed archived"`
	PublishedAt      *string  `form:"published_at"      json:"published_at,omitempty"    validate:"omitempty,date"`
	ExpiresAt        *string  `form:"expires_at"        json:"expires_at,omitempty"      validate:"omitempty,date"`
}

// Message is the public contact form.
type Message struct {
	FirstName string `form:"first_name" json:"first_name" validate:"min=2"          msg:"First name must be at least 2 characters"`
	LastName  string `form:"last_name"  json:"last_name"  validate:"min=2"          msg:"Last name must be at least 2 characters"`
	Email     string `form:"email"      json:"email"      validate:"required,email" msg:"Please enter a valid email address"`
	Message   string `form:"message"    json:"message"    validate:"min=10"         msg:"Message must be at least 10 characters"`
}

// Respond answers a contact message.
type Respond struct {
	Response  string `form:"response"   json:"response"   validate:"min=10" msg:"Response must be at least 10 characters"`
	SendEmail bool   `form:"send_email" json:"send_email"`
}

// HeroSection is the homepage banner form. Images travel in Input.Files.
type HeroSection struct {
	Title    string  `form:"title"    json:"title"              validate:"min=3"                                 msg:"Title must be at least 3 characters"`
	Subtitle *string `form:"subtitle" json:"subtitle,omitempty"`
	Status   *string `form:"status"   json:"status,omitempty"   validate:"omitempty,oneof=draft published archived"`
}

// AboutSection is the "about us" form. The image travels in Input.Files.
type AboutSection struct {
	Title   string  `form:"title"   json:"title"            validate:"min=3"                                 msg:"Title must be at least 3 characters"`
	Summary string  `form:"summary" json:"summary"          validate:"min=10"                                msg:"Summary must be at least 10 characters"`
	Status  *string `form:"status"  json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
}

// ServiceSection is the services-list entry form. Icon and image travel in Input.Files.
type ServiceSection struct {
	Title        string  `form:"title"         json:"title"                   validate:"min=3"                                 msg:"Title must be at least 3 characters"`
	TitleShort   *string `form:"title_short"   json:"title_short,omitempty"`
	Summary      string  `form:"summary"       json:"summary"                 validate:"min=10"                                msg:"Summary must be at least 10 characters"`
	SummaryShort *string `form:"summary_short" json:"summary_short,omitempty"`
	Order        *int    `form:"order"         json:"order,omitempty"         validate:"omitempty,gte=0"`
	Status       *string `form:"status"        json:"status,omitempty"        validate:"omitempty,oneof=draft published archived"`
}

// ProductSection is the products-list entry form. The image travels in Input.Files.
type ProductSection struct {
	Title   string  `form:"title"   json:"title"            validate:"min=3"                                 msg:"Title must be at least 3 characters"`
	Summary string  `form:"summary" json:"summary"          validate:"min=10"                                msg:"Summary must be at least 10 characters"`
	Order   *int    `form:"order"   json:"order,omitempty"  validate:"omitempty,gte=0"`
	Status  *string `form:"status"  json:"status,omitempty" validate:"omitempty,oneof=draft published archived"`
}

// Reorder sets the display order of service or product sections.
type Reorder struct {
	OrderedIDs []int64 `form:"ordered_ids" json:"ordered_ids" validate:"required,min=1,dive,gt=0" msg:"Provide at least one section ID"`
}
