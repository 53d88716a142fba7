package admin

import "github.com/e11even-central/api/internal/provider"

// Handler serves the management console API.
type Handler struct {
	*provider.Container
}

// New creates the console handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
