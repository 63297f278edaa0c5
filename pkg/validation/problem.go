package validation

import (
	"fmt"
	"net/http"
)

// ProblemTypeValidation identifies parameter validation failures.
const ProblemTypeValidation = "https://reqparam.dev/problems/request-validation"

// ProblemDetails is the RFC 9457 view of a ValidationError.
type ProblemDetails struct {
	// Type identifies the problem type
	Type string `json:"type"`

	// Title is a short summary
	Title string `json:"title"`

	// Status is the HTTP status code
	Status int `json:"status"`

	// Detail provides additional context
	Detail string `json:"detail,omitempty"`

	// Errors lists all validation errors
	Errors []ValidationErrorDetail `json:"errors"`
}

// NewProblemDetails creates a ProblemDetails from a ValidationError.
// A zero status becomes 422 Unprocessable Entity.
func NewProblemDetails(err *ValidationError, status int) *ProblemDetails {
	if status == 0 {
		status = http.StatusUnprocessableEntity
	}

	var details []ValidationErrorDetail
	if err != nil {
		details = err.Errors
	}
	if details == nil {
		details = []ValidationErrorDetail{}
	}

	detail := ""
	if len(details) == 1 {
		detail = details[0].Msg
	} else if len(details) > 1 {
		detail = fmt.Sprintf("%d validation errors", len(details))
	}

	return &ProblemDetails{
		Type:   ProblemTypeValidation,
		Title:  "Request Validation Failed",
		Status: status,
		Detail: detail,
		Errors: details,
	}
}

// Error implements the error interface
func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("%s: %s", p.Title, p.Detail)
}
