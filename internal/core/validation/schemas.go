package validation

// ProductForm is the validated shape of a product payload. Description and
// image are optional; image must be a well-formed URL when present.
type ProductForm struct {
	Name        string  `json:"name" validate:"required"`
	Slug        string  `json:"slug" validate:"required,slug"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description" validate:"omitempty"`
	Image       string  `json:"image" validate:"omitempty,url"`
}

// LoginForm is the validated shape of a login request.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RegistrationForm is the validated shape of a registration request. The
// password/confirmation equality check is attached to the confirmation field.
type RegistrationForm struct {
	DisplayName     string `json:"display_name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// ValidateProduct reports all schema violations in f, or nil when valid.
func ValidateProduct(f ProductForm) FieldErrors { return check(f) }

// ValidateLogin reports all schema violations in f, or nil when valid.
func ValidateLogin(f LoginForm) FieldErrors { return check(f) }

// ValidateRegistration reports all schema violations in f, or nil when valid.
func ValidateRegistration(f RegistrationForm) FieldErrors { return check(f) }
