package ai

import (
	"context"
	"encoding/json"
)

// InsightExtractor distills short insight strings from work output so
// standup reports carry something more useful than raw payloads.
type InsightExtractor struct {
	gen Generator
}

func NewInsightExtractor(gen Generator) *InsightExtractor {
	return &InsightExtractor{gen: gen}
}

// Extract returns up to three insight strings for the given work output.
// Any failure yields nil; insights are a nice-to-have, never a blocker.
func (x *InsightExtractor) Extract(ctx context.Context, output map[string]interface{}) []string {
	data, err := json.Marshal(output)
	if err != nil {
		return nil
	}

	prompt := "Extract up to 3 one-sentence insights from this work output. " +
		"Return a JSON array of strings only, no additional text.\n\n" + string(data)

	res := x.gen.Generate(ctx, prompt, 256, 0.3)
	if res.Status != StatusOK {
		return nil
	}

	var insights []string
	if err := json.Unmarshal([]byte(res.Text), &insights); err != nil {
		return nil
	}
	if len(insights) > 3 {
		insights = insights[:3]
	}
	return insights
}
