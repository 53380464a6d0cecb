package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stayviet/stayviet/internal/domain"
	"github.com/stayviet/stayviet/internal/service"
)

// Handlers bundles the HTTP handlers over the service layer.
type Handlers struct {
	properties service.PropertyService
	bookings   service.BookingService
	reviews    service.ReviewService
	users      service.UserService
}

func New(
	properties service.PropertyService,
	bookings service.BookingService,
	reviews service.ReviewService,
	users service.UserService,
) *Handlers {
	return &Handlers{
		properties: properties,
		bookings:   bookings,
		reviews:    reviews,
		users:      users,
	}
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Invalid("invalid request body")
	}
	return nil
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("invalid %s", name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
