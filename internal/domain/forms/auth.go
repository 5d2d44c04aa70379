package forms

// Login is the credential-exchange form.
type Login struct {
	Email    string `form:"email"    json:"email"    validate:"required,email" msg:"Please enter a valid email address"`
	Password string `form:"password" json:"password" validate:"min=8"          msg:"Password must be at least 8 characters"`
	Remember bool   `form:"remember" json:"remember"`
}

// Register creates an admin account.
type Register struct {
	FirstName            string   `form:"first_name"            json:"first_name"            validate:"min=2"                 msg:"First name must be at least 2 characters"`
	LastName             string   `form:"last_name"             json:"last_name"             validate:"min=2"                 msg:"Last name must be at least 2 characters"`
	Email                string   `form:"email"                 json:"email"                 validate:"required,email"        msg:"Please enter a valid email address"`
	Password             string   `form:"password"              json:"password"              validate:"min=8"                 msg:"Password must be at least 8 characters"`
	PasswordConfirmation string   `form:"password_confirmation" json:"password_confirmation" validate:"eqfield=Password"      msg:"Passwords do not match"`
	Roles                []string `form:"roles"                 json:"roles,omitempty"`
	Permissions          []string `form:"permissions"           json:"permissions,omitempty"`
}

// ForgotPassword requests a reset OTP.
type ForgotPassword struct {
	Email string `form:"email" json:"email" validate:"required,email" msg:"Please enter a valid email address"`
}

// ResetPassword sets a new password using an OTP.
type ResetPassword struct {
	Email                string `form:"email"                 json:"email"                 validate:"required,email"   msg:"Please enter a valid email address"`
	OTP                  string `form:"otp"                   json:"otp"                   validate:"otp"              msg:"OTP must be 6 digits"`
	Password             string `form:"password"              json:"password"              validate:"min=8"            msg:"Password must be at least 8 characters"`
	PasswordConfirmation string `form:"password_confirmation" json:"password_confirmation" validate:"eqfield=Password" msg:"Passwords do not match"`
}

// VerifyEmail confirms an address with an OTP.
type VerifyEmail struct {
	OTP string `form:"otp" json:"otp" validate:"otp" msg:"OTP must be 6 digits"`
}

// ChangePassword rotates the signed-in user's password.
type ChangePassword struct {
	CurrentPassword      string `form:"current_password"      json:"current_password"      validate:"min=8"            msg:"Password must be at least 8 characters"`
	Password             string `form:"password"              json:"password"              validate:"min=8"            msg:"Password must be at least 8 characters"`
	PasswordConfirmation string `form:"password_confirmation" json:"password_confirmation" validate:"eqfield=Password" msg:"Passwords do not match"`
}

// Profile updates the signed-in user's profile.
type Profile struct {
	FirstName  string  `form:"first_name"  json:"first_name"  validate:"min=2"          msg:"First name must be at least 2 characters"`
	LastName   string  `form:"last_name"   json:"last_name"   validate:"min=2"          msg:"Last name must be at least 2 characters"`
	Email      string  `form:"email"       json:"email"       validate:"required,email" msg:"Please enter a valid email address"`
	Phone      *string `form:"phone"       json:"phone,omitempty"`
	Bio        *string `form:"bio"         json:"bio,omitempty"`
	Country    *string `form:"country"     json:"country,omitempty"`
	State      *string `form:"state"       json:"state,omitempty"`
	PostalCode *string `form:"postal_code" json:"postal_code,omitempty"`
}
