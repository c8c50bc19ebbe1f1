package domain

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationMessages maps validator tags to user-facing messages
var ValidationMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email address",
	"max":      "exceeds maximum length",
	"min":      "is below minimum length",
	"gt":       "must be greater than zero",
	"gte":      "must be greater than or equal to the minimum value",
	"oneof":    "must be one of the allowed values",
	"url":      "must be a valid URL",
	"len":      "has the wrong length",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "failed validation: " + tag
}
