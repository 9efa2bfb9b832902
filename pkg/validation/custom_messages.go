package validation

// CustomMessage returns message overrides for a json field, keyed by tag.
func CustomMessage(field string) map[string]string {
	var customValidationMessages = map[string]map[string]string{
		"email": {
			"required": "email is required",
			"email":    "email must be a valid email address",
		},
		"password": {
			"required": "password is required",
		},
		"role": {
			"required": "role is required",
			"oneof":    "role must be either admin or user",
		},
		"title": {
			"required": "title is required",
			"max":      "title must be at most 32 characters",
		},
		"text": {
			"required": "text is required",
		},
		"page_size": {
			"min": "page_size must be between 1 and 100",
			"max": "page_size must be between 1 and 100",
		},
		"direction": {
			"oneof": "direction must be either forward or backward",
		},
	}
	return customValidationMessages[field]
}
