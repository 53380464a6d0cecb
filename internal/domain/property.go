package domain

import "time"

type PropertyCategory string

const (
	CategoryEntireApartment PropertyCategory = "entire_apartment"
	CategoryPrivateRoom     PropertyCategory = "private_room"
	CategoryEntireVilla     PropertyCategory = "entire_villa"
	CategoryEntireHouse     PropertyCategory = "entire_house"
)

func ParsePropertyCategory(s string) (PropertyCategory, bool) {
	switch PropertyCategory(s) {
	case CategoryEntireApartment, CategoryPrivateRoom, CategoryEntireVilla, CategoryEntireHouse:
		return PropertyCategory(s), true
	default:
		return "", false
	}
}

type Location struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Host is the embedded host summary shown on a listing. Purely descriptive.
type Host struct {
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar"`
	Joined      time.Time `json:"joined"`
	Reviews     int       `json:"reviews"`
	IsSuperhost bool      `json:"isSuperhost"`
}

// ReviewScores holds the per-category rating means, recomputed by the
// rating aggregator on every review mutation.
type ReviewScores struct {
	Cleanliness   float64 `json:"cleanliness"`
	Accuracy      float64 `json:"accuracy"`
	Communication float64 `json:"communication"`
	Location      float64 `json:"location"`
	CheckIn       float64 `json:"checkIn"`
	Value         float64 `json:"value"`
}

type Property struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       int64            `json:"price"` // nightly price in VND
	Category    PropertyCategory `json:"type"`
	Rating      float64          `json:"rating"`
	ReviewCount int              `json:"reviewCount"`
	Scores      ReviewScores     `json:"reviewScores"`
	Images      []string         `json:"images"`
	Location    Location         `json:"location"`
	Amenities   []string         `json:"amenities"`
	Host        Host             `json:"host"`
	MaxGuests   int              `json:"maxGuests"`
	Bedrooms    int              `json:"bedrooms"`
	Bathrooms   int              `json:"bathrooms"`
	Area        int              `json:"area"` // m2
	IsAvailable bool             `json:"isAvailable"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// PropertySummary is the card shape returned by the listing endpoint.
type PropertySummary struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Price       int64            `json:"price"`
	Category    PropertyCategory `json:"type"`
	Rating      float64          `json:"rating"`
	ReviewCount int              `json:"reviewCount"`
	Image       string           `json:"image"`
	City        string           `json:"location"`
	Description string           `json:"description"`
	Amenities   []string         `json:"amenities"`
	Host        Host             `json:"host"`
}

func (p *Property) Summary() PropertySummary {
	image := ""
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	return PropertySummary{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Category:    p.Category,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Image:       image,
		City:        p.Location.City,
		Description: p.Description,
		Amenities:   p.Amenities,
		Host:        p.Host,
	}
}
