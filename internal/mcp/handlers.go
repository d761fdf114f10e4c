// ABOUTME: MCP tool handler implementations for the travel assistant
// ABOUTME: Each handler runs against the shared session store and pipeline
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/wayfarer/internal/core"
	"github.com/harper/wayfarer/internal/session"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	pipeline *core.Pipeline
	sessions *session.Store
}

// TravelChat handles the travel_chat tool
func (h *Handlers) TravelChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}

	sess := h.sessions.Get(request.GetString("session_id", ""))
	reply, err := sess.RunTurn(ctx, h.pipeline, message)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("turn failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"session_id": sess.ID,
		"reply":      reply,
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// ResetConversation handles the reset_conversation tool
func (h *Handlers) ResetConversation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	h.sessions.Reset(sessionID)

	responseJSON, err := json.Marshal(map[string]interface{}{
		"session_id": sessionID,
		"reset":      true,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// GetTripProfile handles the get_trip_profile tool
func (h *Handlers) GetTripProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	sess := h.sessions.Get(sessionID)
	profile := sess.Profile()

	response := map[string]interface{}{
		"session_id": sessionID,
		"profile":    profile,
		"summary":    sess.Summary(),
	}
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// SetPreferences handles the set_preferences tool
func (h *Handlers) SetPreferences(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	var webAllowed *bool
	var units *string

	args, ok := request.Params.Arguments.(map[string]any)
	if ok {
		if raw, exists := args["web_allowed"]; exists {
			if v, ok := raw.(bool); ok {
				webAllowed = &v
			}
		}
		if raw, exists := args["units"]; exists {
			if v, ok := raw.(string); ok {
				if v != "metric" && v != "imperial" {
					return mcp.NewToolResultError("units must be metric or imperial"), nil
				}
				units = &v
			}
		}
	}

	h.sessions.Get(sessionID).SetPreferences(webAllowed, units)

	responseJSON, err := json.Marshal(map[string]interface{}{
		"session_id": sessionID,
		"updated":    true,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
