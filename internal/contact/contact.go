// Package contact validates contact form submissions and turns the outcome
// into the toast the page shows.
package contact

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Toast variants
const (
	VariantDefault     = ""
	VariantDestructive = "destructive"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Submission is one contact form post
type Submission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,contactemail"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

// Toast is a transient notification
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

// Result is returned for every submission
type Result struct {
	ID       string `json:"id"`
	Toast    Toast  `json:"toast"`
	Reset    bool   `json:"reset"` // clear the form
	Accepted bool   `json:"-"`
}

var (
	missingToast = Toast{
		Title:       "Missing Information",
		Description: "Please fill in all required fields.",
		Variant:     VariantDestructive,
	}
	invalidEmailToast = Toast{
		Title:       "Invalid Email",
		Description: "Please enter a valid email address.",
		Variant:     VariantDestructive,
	}
	sentToast = Toast{
		Title:       "Message Sent!",
		Description: "Thank you for contacting us. We'll get back to you soon.",
	}
)

// Validator checks submissions. It is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the contact email rule registered
func NewValidator() *Validator {
	v := validator.New()
	// Registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return emailRe.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Check validates s. Missing required fields are reported before a bad
// email address, and only a valid submission resets the form.
func (v *Validator) Check(s Submission) Result {
	res := Result{ID: uuid.NewString()}

	err := v.validate.Struct(s)
	if err == nil {
		res.Toast = sentToast
		res.Reset = true
		res.Accepted = true
		return res
	}

	res.Toast = missingToast
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && !hasTag(verrs, "required") && hasTag(verrs, "contactemail") {
		res.Toast = invalidEmailToast
	}
	return res
}

func hasTag(verrs validator.ValidationErrors, tag string) bool {
	for _, fe := range verrs {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}
