// ABOUTME: Oracle-driven place resolution with the disambiguation short-circuit
// ABOUTME: Ambiguous names end the turn with a numbered choice question
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/wayfarer/internal/models"
)

// resolvePlace asks the oracle which place the message refers to. A clean
// resolution is recorded in the workspace and pushed into destination memory.
// An ambiguous one ends the turn with a numbered question, stashing the
// alternatives so the next turn can resolve a bare "2". Smalltalk turns skip
// this stage entirely.
func (p *Pipeline) resolvePlace(ctx context.Context, s *models.TurnState) {
	if s.Intent == models.IntentSmalltalk {
		return
	}

	user := fmt.Sprintf("message: %s\nactive_destination: %s\ndestinations: %s\nReturn the structured fields.",
		s.UserMsg, s.Profile.ActiveDestination, strings.Join(s.Profile.Destinations, ", "))
	plan := p.oracle.ResolvePlace(ctx, placeResolverSystem, user)

	if !plan.Ambiguous && plan.ResolvedPlace != "" {
		s.Data.ResolvedPlace = plan.ResolvedPlace
		RememberPlace(&s.Profile, plan.ResolvedPlace)
		return
	}

	if plan.Ambiguous && len(plan.Alternatives) > 0 {
		shown := plan.Alternatives
		if len(shown) > 3 {
			shown = shown[:3]
		}
		lines := make([]string, len(shown))
		for i, name := range shown {
			lines[i] = fmt.Sprintf("%d) %s", i+1, name)
		}
		s.Final = "Did you mean:\n" + strings.Join(lines, "\n") + "\n\nReply with the number or the exact name."
		s.Data.PlaceCandidates = plan.Alternatives
	}
}
