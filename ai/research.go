package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ericgreene/go-serp"
)

// SearchResult represents one web search result.
type SearchResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

// ResearchDecision is the LLM's call on whether web research would help.
type ResearchDecision struct {
	NeedsResearch bool     `json:"needs_research"`
	SearchQueries []string `json:"search_queries"`
	Reasoning     string   `json:"reasoning"`
}

// Researcher asks the LLM whether a topic needs web research and, if so,
// folds top search snippets into a findings block. All failures degrade to
// "no enrichment".
type Researcher struct {
	gen        Generator
	maxResults int
}

// NewResearcher returns a researcher, or nil when SERP_API_KEY is unset so
// callers can skip enrichment entirely.
func NewResearcher(gen Generator) *Researcher {
	if os.Getenv("SERP_API_KEY") == "" {
		log.Println("Warning: SERP_API_KEY not set, web research disabled")
		return nil
	}
	return &Researcher{gen: gen, maxResults: 5}
}

// Enrich returns a findings block for topic, or "" when research is not
// needed or unavailable.
func (r *Researcher) Enrich(ctx context.Context, topic string) string {
	decision, err := r.decideResearch(ctx, topic)
	if err != nil || !decision.NeedsResearch {
		return ""
	}

	var findings strings.Builder
	for _, query := range decision.SearchQueries {
		results, err := performWebSearch(query, r.maxResults)
		if err != nil {
			log.Printf("ai: web search failed for %q: %v", query, err)
			continue
		}
		for _, result := range results {
			findings.WriteString(fmt.Sprintf("- %s\n  %s\n", result.Title, result.Snippet))
		}
	}
	return findings.String()
}

func (r *Researcher) decideResearch(ctx context.Context, topic string) (*ResearchDecision, error) {
	prompt := fmt.Sprintf(`You are preparing to contribute to: %q

Decide if you need web research to contribute meaningfully.
Consider whether recent outside information would change your proposal.

Return a JSON object:
{
	"needs_research": boolean,
	"search_queries": ["query1", "query2"],
	"reasoning": "why or why not"
}`, topic)

	res := r.gen.Generate(ctx, prompt, 512, 0.3)
	if res.Status != StatusOK {
		return nil, fmt.Errorf("inference %s", res.Status)
	}

	var decision ResearchDecision
	if err := json.Unmarshal([]byte(res.Text), &decision); err != nil {
		return nil, err
	}
	return &decision, nil
}

func performWebSearch(query string, maxResults int) ([]SearchResult, error) {
	apiKey := os.Getenv("SERP_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SERP_API_KEY not set")
	}

	parameter := map[string]string{
		"q":   query,
		"key": apiKey,
		"num": strconv.Itoa(maxResults),
	}

	queryResponse := serp.NewGoogleSearch(parameter)
	results, err := queryResponse.GetJSON()
	if err != nil {
		return nil, err
	}

	var searchResults []SearchResult
	for _, result := range results.OrganicResults {
		searchResults = append(searchResults, SearchResult{
			Title:   result.Title,
			Snippet: result.Snippet,
			Link:    result.Link,
		})
	}
	return searchResults, nil
}
