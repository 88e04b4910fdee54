package entities

// DefaultRatingUser is recorded when a rating is submitted without a user.
const DefaultRatingUser = "Anonimo"

// Rating is a score given to a catalog item. It has no lifecycle of its own.
type Rating struct {
	Score    int `validate:"min=0,max=10"`
	Comment  string
	Keywords string
	UserID   string
}

// NewRating builds a validated rating.
func NewRating(score int, comment, keywords, userID string) (Rating, error) {
	r := Rating{
		Score:    score,
		Comment:  comment,
		Keywords: keywords,
		UserID:   userID,
	}
	if err := r.Validate(); err != nil {
		return Rating{}, err
	}
	return r, nil
}

// Validate checks that the score lies in [0, 10].
func (r Rating) Validate() error {
	return validateStruct(r)
}
