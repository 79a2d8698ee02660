// Package v1 exposes the REST surface of the directory: restaurant
// listing and detail, direct creation, schedule writes and CSV import.
// Handlers stay thin; all schedule semantics live in the service layer.
package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"

	"github.com/dinedex/dinedex/internal/profile"
	"github.com/dinedex/dinedex/server/middleware"
	"github.com/dinedex/dinedex/server/service/hours"
	"github.com/dinedex/dinedex/server/service/importer"
	"github.com/dinedex/dinedex/store"
)

type APIV1Service struct {
	Profile      *profile.Profile
	Store        *store.Store
	HoursService *hours.Service
	Importer     *importer.Importer

	// importSemaphore serializes imports; the schedule pipeline assumes a
	// single writer, enforced here at the edge.
	importSemaphore *semaphore.Weighted
	importLimiter   *middleware.RateLimiter
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store) *APIV1Service {
	return &APIV1Service{
		Profile:         profile,
		Store:           store,
		HoursService:    hours.NewService(store),
		Importer:        importer.New(store),
		importSemaphore: semaphore.NewWeighted(1),
		importLimiter:   middleware.NewRateLimiter(10*time.Second, 3),
	}
}

// RegisterRoutes mounts the v1 endpoints on the given group.
func (s *APIV1Service) RegisterRoutes(g *echo.Group) {
	g.GET("/restaurants", s.listRestaurants)
	g.GET("/restaurants/:uid", s.getRestaurant)
	g.POST("/restaurants", s.createRestaurant)
	g.DELETE("/restaurants/:uid", s.deleteRestaurant)
	g.POST("/restaurants/:uid/hours", s.addBusinessHours)
	g.POST("/restaurants/import", s.importRestaurants)
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Row     *int   `json:"row,omitempty"`
}

// respondError maps the domain error taxonomy onto HTTP statuses: caller
// input and domain-rule failures are 4xx, everything else is a 500.
func respondError(c echo.Context, err error) error {
	response := errorResponse{Message: err.Error()}
	status := http.StatusInternalServerError

	var rowErr *importer.RowError
	if errors.As(err, &rowErr) {
		row := rowErr.Row
		response.Row = &row
		status = http.StatusBadRequest
	}

	var validationErr *hours.ValidationError
	var formatErr *hours.FormatError
	var rangeErr *hours.RangeError
	switch {
	case errors.As(err, &validationErr):
		response.Field = validationErr.Field
		status = http.StatusBadRequest
	case errors.As(err, &formatErr), errors.As(err, &rangeErr):
		status = http.StatusBadRequest
	case errors.Is(err, importer.ErrUnsupportedFormat), errors.Is(err, importer.ErrEmptyPayload):
		status = http.StatusBadRequest
	}

	return c.JSON(status, response)
}

// nowOpenFilter captures the current instant as an (ISO day, second of
// day) pair for the open/closed listing filter.
func nowOpenFilter(open bool) *store.OpenAtFilter {
	now := time.Now()
	day := int32(now.Weekday())
	if day == 0 {
		day = 7 // time.Sunday is 0, the schedule encodes Sunday as 7
	}
	return &store.OpenAtFilter{
		Day:    day,
		Second: int32(now.Hour()*3600 + now.Minute()*60 + now.Second()),
		Open:   open,
	}
}
