package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/convivio/internal/core/domain"
)

// Text rendering shared by the tool and command-line surfaces.

// FormatEventCreated renders the confirmation for a new event.
func FormatEventCreated(event *domain.Event) string {
	budget := "n.d."
	if event.Budget != nil && *event.Budget != 0 {
		budget = formatNumber(*event.Budget)
	}
	return fmt.Sprintf("Evento creato: %s (id=%s) a %s il %s. Budget: %s %s",
		event.Name, event.ID, event.Location, event.Date, budget, event.Currency)
}

// formatNumber renders a value in its shortest form, keeping one decimal
// on whole numbers (200 reads "200.0").
func formatNumber(v float64) string {
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(out, ".") {
		out += ".0"
	}
	return out
}

// FormatParticipantAdded renders the confirmation for a new participant.
func FormatParticipantAdded(eventID string, p *domain.Participant) string {
	return fmt.Sprintf("Aggiunto %s (id=%s) a evento %s.", p.Name, p.ID, eventID)
}

// FormatParticipantUpdated renders the confirmation for a participant update.
func FormatParticipantUpdated(eventID string, p *domain.Participant) string {
	return fmt.Sprintf("Aggiornato %s per evento %s.", p.Name, eventID)
}

// FormatSuggestions renders one suggestion per line.
func FormatSuggestions(suggestions []domain.RestaurantSuggestion) string {
	if len(suggestions) == 0 {
		return "Nessun suggerimento disponibile per questo evento."
	}
	lines := make([]string, len(suggestions))
	for i, s := range suggestions {
		lines[i] = fmt.Sprintf("%s (%s, %s) - supporta: %s - luogo: %s",
			s.Name, s.Cuisine, s.PriceLevel, joinOr(s.Supports, "n.d."), s.Location)
	}
	return strings.Join(lines, "\n")
}

// FormatShares renders one "Name: amount currency" line per share.
func FormatShares(shares []domain.Share, currency string) string {
	lines := make([]string, len(shares))
	for i, s := range shares {
		lines[i] = fmt.Sprintf("%s: %.2f %s", s.Name, s.Amount, currency)
	}
	return strings.Join(lines, "\n")
}

// FormatAlerts renders alerts separated by "---" lines.
func FormatAlerts(alerts []domain.Alert) string {
	if len(alerts) == 0 {
		return "Nessuna allerta attiva per questo stato."
	}
	parts := make([]string, len(alerts))
	for i, a := range alerts {
		parts[i] = strings.Join([]string{
			"Evento: " + a.Event,
			"Area: " + a.Area,
			"Severita': " + a.Severity,
			"Descrizione: " + a.Description,
			"Istruzioni: " + a.Instruction,
		}, "\n")
	}
	return strings.Join(parts, "\n---\n")
}

// FormatForecast renders the grid header followed by each period.
func FormatForecast(bundle *domain.ForecastBundle) string {
	var header []string
	if bundle.GridID != "" {
		header = append(header, "Ufficio: "+bundle.GridID)
	}
	if bundle.GridX != nil && bundle.GridY != nil {
		header = append(header, fmt.Sprintf("Grid point: %d,%d", *bundle.GridX, *bundle.GridY))
	}

	body := "Nessun periodo di forecast disponibile."
	if len(bundle.Periods) > 0 {
		periods := make([]string, len(bundle.Periods))
		for i, p := range bundle.Periods {
			periods[i] = strings.Join([]string{
				p.Name,
				"Temperatura: " + p.Temperature,
				"Vento: " + p.Wind,
				"Previsione: " + p.DetailedForecast,
			}, "\n")
		}
		body = strings.Join(periods, "\n---\n")
	}

	if len(header) == 0 {
		return body
	}
	return strings.Join(header, " | ") + "\n" + body
}

// FormatError flattens any failure into the user-facing "Errore: ..." text.
func FormatError(err error) string {
	return "Errore: " + domain.Message(err)
}
