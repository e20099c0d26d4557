package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/bookmuse/bookmuse-api/internal/domain/models"
	"github.com/bookmuse/bookmuse-api/internal/domain/repository"
)

const extractionPromptTemplate = `You are an advanced AI assistant that extracts structured filters and relevant book titles from a user query for a book search.
Ensure no hallucinated data: extract only real, user-mentioned information or widely recognized book titles.

User Query:
"%s"

Extraction Steps:
1. Correct spelling mistakes in the query. This is a must and the first step.
2. Identify and normalize book-related attributes:
   - Topics/Genres (as an array, include inferred book names if applicable).
   - Publication Year (format: "after YYYY", "before YYYY", "in YYYY", or null).
   - Language (extract exact mention, e.g. "English", "Russian"; otherwise null).
   - Author (extract exact mention; otherwise null).
   - Minimum Rating (extract numeric rating; otherwise null).
   - Minimum Page Count (extract numeric count; otherwise null).
   - Publisher (extract exact mention; otherwise null).
   - ISBN (extract numeric ISBN even if written informally).
3. Generate a list of real, widely known books that match the query.
   - For common queries like "Science fiction books with high ratings", return at least 5 well-known book suggestions.
   - If the query mentions a title, author, or publisher, base the suggestions on those inputs. Limit the list to 10 book titles.
   - Ensure the books are well-known, critically acclaimed, or top-rated in their category.
   - Do not make up book titles. Only return real books.

JSON Output Format:
{
  "title": "Extracted book title or null if not mentioned",
  "author": "Extracted author name or null if not mentioned",
  "topics": ["topic1", "topic2", "Well-Known Book Name (if applicable)"],
  "genre": "Extracted genre or null if not mentioned",
  "language": "Extracted language or null if not mentioned",
  "year": "after YYYY" | "before YYYY" | "in YYYY" | null,
  "minRating": 4.0 | null,
  "minPages": 300 | null,
  "publisher": "Extracted publisher or null if not mentioned",
  "isbn": "Extracted ISBN or null if not mentioned",
  "filters": ["list of specific user filters like 'top-rated', 'bestsellers', 'classic', etc."],
  "bookTitles": ["Dune by Frank Herbert", "The Three-Body Problem by Liu Cixin"]
}

Return ONLY the JSON output without any extra text.`

// Extractor turns a free-text query into a structured search filter via the
// LLM. It never fails: any transport or parse problem collapses into the
// all-empty filter so the pipelines always receive a well-formed value.
type Extractor struct {
	router repository.LLMRouter
}

// NewExtractor creates a filter extractor backed by the given LLM router.
func NewExtractor(router repository.LLMRouter) *Extractor {
	return &Extractor{router: router}
}

// Extract sends the query to the LLM and parses the structured JSON reply.
func (e *Extractor) Extract(ctx context.Context, query string) models.SearchFilter {
	if e == nil || e.router == nil {
		return models.SearchFilter{}
	}

	client := e.router.RouteLLMTask(repository.TaskFilterExtraction)
	if client == nil {
		return models.SearchFilter{}
	}

	prompt := fmt.Sprintf(extractionPromptTemplate, query)

	resp, err := client.Generate(ctx, prompt)
	if err != nil {
		log.Printf("[Extractor] LLM call failed, falling back to empty filter: %v", err)
		return models.SearchFilter{}
	}

	// Models wrap JSON in markdown fences more often than not.
	resp = strings.TrimSpace(resp)
	resp = strings.TrimPrefix(resp, "```json")
	resp = strings.TrimPrefix(resp, "```")
	resp = strings.TrimSuffix(resp, "```")
	resp = strings.TrimSpace(resp)

	var filter models.SearchFilter
	if err := json.Unmarshal([]byte(resp), &filter); err != nil {
		log.Printf("[Extractor] Unparseable LLM response, falling back to empty filter: %v", err)
		return models.SearchFilter{}
	}

	return filter
}
