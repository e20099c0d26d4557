package googlebooks

import (
	"fmt"
	"strings"

	"github.com/bookmuse/bookmuse-api/internal/domain/models"
)

// BuildQuery chains Google Books search operators from a filter set. The ISBN
// carries the highest priority, followed by title, author, publisher, the
// OR-joined subject group from topics, the genre subject and finally each
// free-text qualifier quoted verbatim. Terms are joined by single spaces; the
// caller is responsible for percent-encoding.
//
// Language, year, minRating and minPages need post-filtering or dedicated
// request parameters (e.g. langRestrict) and are deliberately not encoded
// here.
func BuildQuery(filter models.SearchFilter) string {
	var parts []string

	if filter.ISBN != "" {
		parts = append(parts, fmt.Sprintf("isbn:%s", filter.ISBN))
	}

	if filter.Title != "" {
		parts = append(parts, fmt.Sprintf("intitle:%q", filter.Title))
	}

	if filter.Author != "" {
		parts = append(parts, fmt.Sprintf("inauthor:%q", filter.Author))
	}

	if filter.Publisher != "" {
		parts = append(parts, fmt.Sprintf("inpublisher:%q", filter.Publisher))
	}

	// Topics combine with OR logic so mood and multi-subject queries widen
	// the result set instead of narrowing it. The group is appended even when
	// every topic filters out; the catalog tolerates the empty () term and
	// existing query strings depend on the shape staying stable.
	if len(filter.Topics) > 0 {
		var topicTerms []string
		for _, topic := range filter.Topics {
			if topic == "" {
				continue
			}
			topicTerms = append(topicTerms, fmt.Sprintf("subject:%q", topic))
		}
		parts = append(parts, "("+strings.Join(topicTerms, " OR ")+")")
	}

	if filter.Genre != "" {
		parts = append(parts, fmt.Sprintf("subject:%q", filter.Genre))
	}

	for _, term := range filter.Filters {
		if term == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%q", term))
	}

	return strings.Join(parts, " ")
}
