package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`

	// Sources is the number of registered offer sources
	Sources int `json:"sources"`
}

// Health writes a health check response.
func Health(c echo.Context, sources int) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status:  "ok",
		Sources: sources,
	})
}

// OK writes data as a 200 JSON body.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}
