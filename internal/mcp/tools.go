// ABOUTME: MCP tool definitions and registration for the travel assistant
// ABOUTME: Defines JSON schemas for the 4 conversation tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/wayfarer/internal/core"
	"github.com/harper/wayfarer/internal/session"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, pipeline *core.Pipeline, sessions *session.Store) *Handlers {
	handlers := &Handlers{
		pipeline: pipeline,
		sessions: sessions,
	}

	// 1. travel_chat - Run one conversation turn
	server.AddTool(mcp.Tool{
		Name:        "travel_chat",
		Description: "Send a message to the travel assistant and get its reply. Conversation context (destinations, dates, fetched weather) is kept per session.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "User message for this turn",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation session ID; omit to start a new session",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.TravelChat)

	// 2. reset_conversation - Clear a session's state
	server.AddTool(mcp.Tool{
		Name:        "reset_conversation",
		Description: "Clear a session's conversation history, profile, summary, and fact cache. Preference toggles are kept.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to reset",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.ResetConversation)

	// 3. get_trip_profile - Inspect the durable trip profile
	server.AddTool(mcp.Tool{
		Name:        "get_trip_profile",
		Description: "Get the session's durable trip profile: destinations discussed, active destination, dates, style, and the running summary.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to inspect",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.GetTripProfile)

	// 4. set_preferences - Toggle web search and units
	server.AddTool(mcp.Tool{
		Name:        "set_preferences",
		Description: "Set session preferences. Only provided fields change.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to configure",
				},
				"web_allowed": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether the assistant may run web searches",
				},
				"units": map[string]interface{}{
					"type":        "string",
					"description": "Temperature units: metric or imperial",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.SetPreferences)

	return handlers
}
