package movies

import (
	"strconv"
	"strings"
)

const resizedPosterSuffix = "._V0_UX600_.jpg"

type Movie struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	FullTitle string `json:"fullTitle"`
	Rating    string `json:"imDbRating"`
	ImageURL  string `json:"image"`
}

type MostPopular struct {
	Items        []Movie `json:"items"`
	ErrorMessage string  `json:"errorMessage"`
}

// RatingValue parses the API rating. Unrated movies come back as "" and
// count as 0.
func (m Movie) RatingValue() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(m.Rating), 64)
	if err != nil {
		return 0
	}
	return v
}

// ResizedImageURL points at the 600px wide variant of the poster. Locators
// without a size marker are returned as is.
func (m Movie) ResizedImageURL() string {
	base, _, found := strings.Cut(m.ImageURL, "._")
	if !found {
		return m.ImageURL
	}
	return base + resizedPosterSuffix
}
