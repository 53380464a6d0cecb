package domain

import "time"

// CategoryRatings holds the optional per-category sub-ratings of a review.
// A nil entry is excluded from that category's mean, not counted as zero.
type CategoryRatings struct {
	Cleanliness   *int `json:"cleanliness,omitempty"`
	Accuracy      *int `json:"accuracy,omitempty"`
	Communication *int `json:"communication,omitempty"`
	Location      *int `json:"location,omitempty"`
	CheckIn       *int `json:"checkIn,omitempty"`
	Value         *int `json:"value,omitempty"`
}

type Review struct {
	ID            int64           `json:"id"`
	PropertyID    int64           `json:"propertyId"`
	UserID        int64           `json:"userId"`
	BookingID     int64           `json:"bookingId"`
	Rating        int             `json:"rating"`
	Comment       string          `json:"comment"`
	Categories    CategoryRatings `json:"categories"`
	Images        []string        `json:"images,omitempty"`
	IsRecommended bool            `json:"isRecommended"`
	CreatedAt     time.Time       `json:"created_at"`
}

// RatingSummary is the aggregate written back onto the property.
type RatingSummary struct {
	Rating      float64
	ReviewCount int
	Scores      ReviewScores
}

const maxCommentLen = 1000

type CreateReviewRequest struct {
	PropertyID    int64    `json:"propertyId"`
	BookingID     int64    `json:"bookingId"`
	Rating        int      `json:"rating"`
	Comment       string   `json:"comment"`
	Cleanliness   *int     `json:"cleanliness,omitempty"`
	Accuracy      *int     `json:"accuracy,omitempty"`
	Communication *int     `json:"communication,omitempty"`
	Location      *int     `json:"location,omitempty"`
	CheckIn       *int     `json:"checkIn,omitempty"`
	Value         *int     `json:"value,omitempty"`
	Images        []string `json:"images,omitempty"`
	IsRecommended *bool    `json:"isRecommended,omitempty"`
}

func (r *CreateReviewRequest) Validate() error {
	if r.PropertyID <= 0 {
		return Invalid("propertyId is required")
	}
	if r.BookingID <= 0 {
		return Invalid("bookingId is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return Invalid("rating must be between 1 and 5")
	}
	if r.Comment == "" {
		return Invalid("comment is required")
	}
	if len(r.Comment) > maxCommentLen {
		return Invalid("comment must be at most %d characters", maxCommentLen)
	}
	for name, v := range map[string]*int{
		"cleanliness":   r.Cleanliness,
		"accuracy":      r.Accuracy,
		"communication": r.Communication,
		"location":      r.Location,
		"checkIn":       r.CheckIn,
		"value":         r.Value,
	} {
		if v != nil && (*v < 1 || *v > 5) {
			return Invalid("%s must be between 1 and 5", name)
		}
	}
	return nil
}

func (r *CreateReviewRequest) Categories() CategoryRatings {
	return CategoryRatings{
		Cleanliness:   r.Cleanliness,
		Accuracy:      r.Accuracy,
		Communication: r.Communication,
		Location:      r.Location,
		CheckIn:       r.CheckIn,
		Value:         r.Value,
	}
}

// Recommended defaults to true when the field is omitted, matching the
// browser client's review form.
func (r *CreateReviewRequest) Recommended() bool {
	if r.IsRecommended == nil {
		return true
	}
	return *r.IsRecommended
}
