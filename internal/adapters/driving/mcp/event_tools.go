package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/services"
)

// CreateEventInput is the input schema for create_event.
type CreateEventInput struct {
	Name     string   `json:"name" jsonschema:"Titolo dell'evento (es. Cena di squadra)"`
	Date     string   `json:"date" jsonschema:"Data/ora testuale (es. 2025-03-10 20:00)"`
	Location string   `json:"location" jsonschema:"Citta' o indirizzo di riferimento"`
	Budget   *float64 `json:"budget,omitempty" jsonschema:"Budget totale previsto (opzionale)"`
	Notes    string   `json:"notes,omitempty" jsonschema:"Note aggiuntive"`
}

// AddParticipantInput is the input schema for add_participant.
type AddParticipantInput struct {
	EventID      string   `json:"event_id" jsonschema:"ID evento"`
	Name         string   `json:"name" jsonschema:"Nome partecipante"`
	Intolerances []string `json:"intolerances,omitempty" jsonschema:"Intolleranze/allergie (es. glutine, lattosio)"`
	Preferences  []string `json:"preferences,omitempty" jsonschema:"Preferenze cucina (es. vegetariano, giapponese)"`
	Weight       *float64 `json:"weight,omitempty" jsonschema:"Peso per split spese (default 1)"`
}

// UpdatePreferencesInput is the input schema for update_preferences.
// Omitted lists are left untouched; an empty list clears the field.
type UpdatePreferencesInput struct {
	EventID       string   `json:"event_id" jsonschema:"ID evento"`
	ParticipantID string   `json:"participant_id" jsonschema:"ID partecipante"`
	Intolerances  []string `json:"intolerances,omitempty" jsonschema:"Intolleranze/allergie"`
	Preferences   []string `json:"preferences,omitempty" jsonschema:"Preferenze cucina"`
	Weight        *float64 `json:"weight,omitempty" jsonschema:"Peso per split spese"`
}

// EventIDInput is the input schema for tools that take only an event id.
type EventIDInput struct {
	EventID string `json:"event_id" jsonschema:"ID evento"`
}

// SuggestRestaurantsInput is the input schema for suggest_restaurants.
type SuggestRestaurantsInput struct {
	EventID string `json:"event_id" jsonschema:"ID evento"`
	Limit   *int   `json:"limit,omitempty" jsonschema:"Numero massimo di suggerimenti (default da config)"`
}

// SplitBillInput is the input schema for split_bill.
type SplitBillInput struct {
	EventID     string  `json:"event_id" jsonschema:"ID evento"`
	TotalAmount float64 `json:"total_amount" jsonschema:"Importo totale da dividere"`
	Mode        string  `json:"mode,omitempty" jsonschema:"Modalita' di split: equal | weighted (default equal)"`
}

// registerEventTools registers the events tool handlers with the MCP server.
func (s *Server) registerEventTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_event",
		Description: "Crea un nuovo evento.",
	}, s.handleCreateEvent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_participant",
		Description: "Aggiunge un partecipante con preferenze.",
	}, s.handleAddParticipant)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_preferences",
		Description: "Aggiorna preferenze/intolleranze di un partecipante.",
	}, s.handleUpdatePreferences)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "event_summary",
		Description: "Riepilogo completo dell'evento e partecipanti.",
	}, s.handleEventSummary)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "suggest_restaurants",
		Description: "Suggerisce ristoranti compatibili con le preferenze/intolleranze.",
	}, s.handleSuggestRestaurants)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "split_bill",
		Description: "Divide il conto tra i partecipanti (equal o weighted).",
	}, s.handleSplitBill)
}

func (s *Server) handleCreateEvent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreateEventInput,
) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	event, err := s.ports.Events.CreateEvent(ctx, domain.NewEvent{
		Name:     input.Name,
		Date:     input.Date,
		Location: input.Location,
		Budget:   input.Budget,
		Notes:    input.Notes,
	})
	if err != nil {
		return s.reply("create_event", start, "", err)
	}
	return s.reply("create_event", start, services.FormatEventCreated(event), nil)
}

func (s *Server) handleAddParticipant(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddParticipantInput,
) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	participant, err := s.ports.Events.AddParticipant(ctx, input.EventID, domain.NewParticipant{
		Name:         input.Name,
		Intolerances: input.Intolerances,
		Preferences:  input.Preferences,
		Weight:       input.Weight,
	})
	if err != nil {
		return s.reply("add_participant", start, "", err)
	}
	return s.reply("add_participant", start, services.FormatParticipantAdded(input.EventID, participant), nil)
}

func (s *Server) handleUpdatePreferences(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdatePreferencesInput,
) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	participant, err := s.ports.Events.UpdatePreferences(ctx, input.EventID, input.ParticipantID,
		domain.ParticipantUpdate{
			Intolerances: input.Intolerances,
			Preferences:  input.Preferences,
			Weight:       input.Weight,
		})
	if err != nil {
		return s.reply("update_preferences", start, "", err)
	}
	return s.reply("update_preferences", start, services.FormatParticipantUpdated(input.EventID, participant), nil)
}

func (s *Server) handleEventSummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EventIDInput,
) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	summary, err := s.ports.Events.EventSummary(ctx, input.EventID)
	return s.reply("event_summary", start, summary, err)
}

func (s *Server) handleSuggestRestaurants(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestRestaurantsInput,
) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	limit := 0
	if input.Limit != nil {
		limit = *input.Limit
	}
	suggestions, err := s.ports.Events.SuggestRestaurants(ctx, input.EventID, limit)
	if err != nil {
		return s.reply("suggest_restaurants", start, "", err)
	}
	return s.reply("suggest_restaurants", start, services.FormatSuggestions(suggestions), nil)
}

func (s *Server) handleSplitBill(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SplitBillInput,
) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	mode := domain.SplitEqual
	if input.Mode != "" {
		mode = domain.SplitMode(input.Mode)
	}

	shares, err := s.ports.Events.SplitBill(ctx, input.EventID, input.TotalAmount, mode)
	if err != nil {
		return s.reply("split_bill", start, "", err)
	}
	event, err := s.ports.Events.GetEvent(ctx, input.EventID)
	if err != nil {
		return s.reply("split_bill", start, "", err)
	}
	return s.reply("split_bill", start, services.FormatShares(shares, event.Currency), nil)
}
