package suggest

import (
	"strings"
	"unicode/utf8"
)

// Service serves typeahead suggestions from a fixed corpus of popular city
// names. The corpus comes from configuration and never changes at runtime.
type Service struct {
	corpus []string
}

func NewService(corpus []string) *Service {
	return &Service{corpus: corpus}
}

// Filter returns corpus entries containing the query, case-insensitively.
// Queries shorter than two characters yield nothing, matching the minimum
// length a city name must have to be added at all.
func (s *Service) Filter(query string) []string {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < 2 {
		return nil
	}

	needle := strings.ToLower(query)
	var matches []string
	for _, name := range s.corpus {
		if strings.Contains(strings.ToLower(name), needle) {
			matches = append(matches, name)
		}
	}
	return matches
}
