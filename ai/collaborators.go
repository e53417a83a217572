package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/mindforge/collective-mind/core"
)

// Identity is the slice of a mind's configuration the collaborators prompt
// with.
type Identity struct {
	Name           string
	Specialization string
	Mission        core.Mission
}

// DevelopmentWorker produces core-systems design proposals.
type DevelopmentWorker struct {
	gen Generator
	id  Identity
}

func NewDevelopmentWorker(gen Generator, id Identity) *DevelopmentWorker {
	return &DevelopmentWorker{gen: gen, id: id}
}

func (w *DevelopmentWorker) PerformPhaseWork(ctx context.Context) (map[string]interface{}, error) {
	prompt := fmt.Sprintf(
		"You are %s, a %s working toward: %s\n"+
			"Guiding principles: %s\n"+
			"Propose the next concrete core-systems contribution: a component, its "+
			"responsibilities, and how it integrates with what exists.\n"+
			"Be specific and implementation-ready.",
		w.id.Name, w.id.Specialization, w.id.Mission.Goal,
		strings.Join(w.id.Mission.Principles, ", "),
	)

	res := w.gen.Generate(ctx, prompt, 0, 0.7)
	if res.Status != StatusOK {
		return nil, fmt.Errorf("inference %s", res.Status)
	}
	return map[string]interface{}{
		"status": "proposed",
		"design": res.Text,
	}, nil
}

// DesignWorker produces user-experience proposals, optionally enriched with
// web research.
type DesignWorker struct {
	gen      Generator
	id       Identity
	research *Researcher // nil disables enrichment
}

func NewDesignWorker(gen Generator, id Identity, research *Researcher) *DesignWorker {
	return &DesignWorker{gen: gen, id: id, research: research}
}

func (w *DesignWorker) PerformPhaseWork(ctx context.Context) (map[string]interface{}, error) {
	prompt := fmt.Sprintf(
		"You are %s, a %s working toward: %s\n"+
			"Propose the next user-experience improvement: the user problem, the "+
			"interaction change, and why it serves the mission.",
		w.id.Name, w.id.Specialization, w.id.Mission.Goal,
	)

	if w.research != nil {
		if findings := w.research.Enrich(ctx, w.id.Mission.Goal); findings != "" {
			prompt += "\n\nRelevant research findings:\n" + findings
		}
	}

	res := w.gen.Generate(ctx, prompt, 0, 0.8)
	if res.Status != StatusOK {
		return nil, fmt.Errorf("inference %s", res.Status)
	}
	return map[string]interface{}{
		"status":   "proposed",
		"proposal": res.Text,
	}, nil
}

// OptimizationWorker produces polish-phase refinements.
type OptimizationWorker struct {
	gen Generator
	id  Identity
}

func NewOptimizationWorker(gen Generator, id Identity) *OptimizationWorker {
	return &OptimizationWorker{gen: gen, id: id}
}

func (w *OptimizationWorker) PerformPhaseWork(ctx context.Context) (map[string]interface{}, error) {
	prompt := fmt.Sprintf(
		"You are %s, a %s in the final polish phase of: %s\n"+
			"Success criterion: %s\n"+
			"Identify one optimization or refinement worth doing now, with its "+
			"expected effect.",
		w.id.Name, w.id.Specialization, w.id.Mission.Goal, w.id.Mission.SuccessCriteria,
	)

	res := w.gen.Generate(ctx, prompt, 0, 0.6)
	if res.Status != StatusOK {
		return nil, fmt.Errorf("inference %s", res.Status)
	}
	return map[string]interface{}{
		"status":       "proposed",
		"optimization": res.Text,
	}, nil
}

// Reviewer responds to review requests arriving on a review channel. The
// response is logged rather than replied, matching the collective's
// broadcast-only protocol.
type Reviewer struct {
	gen  Generator
	id   Identity
	kind string // "code" or "design"
}

func NewCodeReviewer(gen Generator, id Identity) *Reviewer {
	return &Reviewer{gen: gen, id: id, kind: "code"}
}

func NewDesignReviewer(gen Generator, id Identity) *Reviewer {
	return &Reviewer{gen: gen, id: id, kind: "design"}
}

func (r *Reviewer) Review(ctx context.Context, from string, payload interface{}) error {
	prompt := fmt.Sprintf(
		"You are %s, a %s. %s asked for a %s review.\n"+
			"Submission:\n%s\n"+
			"Give a short, direct review: what works, what must change.",
		r.id.Name, r.id.Specialization, from, r.kind,
		string(core.EncodeJSON(payload)),
	)

	res := r.gen.Generate(ctx, prompt, 512, 0.5)
	if res.Status != StatusOK {
		return fmt.Errorf("inference %s", res.Status)
	}
	log.Printf("%s reviewed %s submission from %s: %s", r.id.Name, r.kind, from, res.Text)
	return nil
}
