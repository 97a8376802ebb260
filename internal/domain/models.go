package domain

// Domain contains core models shared across packages.

// Submission is the three-field payload sent to an intake target.
type Submission struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	URL   string `json:"url"`
}

// Payload renders the submission as the generic mapping the HTTP client
// serializes.
func (s Submission) Payload() map[string]any {
	return map[string]any{
		"name":  s.Name,
		"email": s.Email,
		"url":   s.URL,
	}
}
