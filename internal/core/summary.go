// ABOUTME: The summary-update stage, the last node on every branch
// ABOUTME: Rewrites the running digest from the previous one plus the exchange
package core

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/harper/wayfarer/internal/models"
)

// updateSummary rewrites the 3-5 line durable summary from the previous one
// and the latest exchange. Nothing changes when the turn produced no
// assistant output, or when the oracle is unreachable.
func (p *Pipeline) updateSummary(ctx context.Context, s *models.TurnState) {
	assistant := s.Reply()
	if assistant == "" {
		return
	}

	prev := s.Summary
	if prev == "" {
		prev = "(none)"
	}

	text, err := p.oracle.Complete(ctx, "You are a careful note-taker.",
		fmt.Sprintf(summaryTemplate, prev, s.UserMsg, assistant), 0.1)
	if err != nil {
		log.Printf("[Pipeline] summary update failed: %v", err)
		return
	}
	if t := strings.TrimSpace(text); t != "" {
		s.Summary = t
	}
}
