package public

import "github.com/e11even-central/api/internal/provider"

// Handler serves the staff-facing API.
type Handler struct {
	*provider.Container
}

// New creates the staff handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
