package importer

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/dinedex/dinedex/server/service/hours"
	"github.com/dinedex/dinedex/store"
)

const maxFieldLength = 255

// ValidateRestaurant enforces the restaurant field rules shared by the
// import pipeline and the direct-create API: name and uid are required and
// capped at 255 characters, cuisine and location are optional with the
// same cap, price and rating must fall in [1, 5] when present.
func ValidateRestaurant(restaurant *store.Restaurant) error {
	if restaurant.Name == "" {
		return &hours.ValidationError{Field: "name", Message: "is required"}
	}
	if len(restaurant.Name) > maxFieldLength {
		return &hours.ValidationError{Field: "name", Message: "must not exceed 255 characters"}
	}
	if restaurant.UID == "" {
		return &hours.ValidationError{Field: "uid", Message: "is required"}
	}
	if len(restaurant.UID) > maxFieldLength {
		return &hours.ValidationError{Field: "uid", Message: "must not exceed 255 characters"}
	}
	if restaurant.Cuisine != nil && len(*restaurant.Cuisine) > maxFieldLength {
		return &hours.ValidationError{Field: "cuisine", Message: "must not exceed 255 characters"}
	}
	if restaurant.Location != nil && len(*restaurant.Location) > maxFieldLength {
		return &hours.ValidationError{Field: "location", Message: "must not exceed 255 characters"}
	}
	if restaurant.Price != nil && (*restaurant.Price < 1 || *restaurant.Price > 5) {
		return &hours.ValidationError{Field: "price", Message: "must be between 1 and 5"}
	}
	if restaurant.Rating != nil && (*restaurant.Rating < 1 || *restaurant.Rating > 5) {
		return &hours.ValidationError{Field: "rating", Message: "must be between 1 and 5"}
	}
	return nil
}

var (
	slugStripPattern     = regexp.MustCompile(`[^a-z0-9\s-]+`)
	slugSeparatorPattern = regexp.MustCompile(`[\s-]+`)

	// Decompose accented letters and drop the combining marks, so
	// "Café" folds to "Cafe" before the ASCII strip.
	slugFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify derives a URL-safe identifier from a display name: diacritics
// folded to their base letters, lowercase, punctuation dropped ("Joe's
// Diner" becomes "joes-diner"), whitespace and hyphen runs collapsed to
// single hyphens.
func Slugify(name string) string {
	if folded, _, err := transform.String(slugFolder, name); err == nil {
		name = folded
	}
	slug := slugStripPattern.ReplaceAllString(strings.ToLower(name), "")
	slug = slugSeparatorPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
