package domain

import "strings"

// DefaultWeight is the bill-splitting weight given to new participants.
const DefaultWeight = 1.0

// Participant is a guest of a single event.
type Participant struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Intolerances []string `json:"intolerances"`
	Preferences  []string `json:"preferences"`
	Weight       float64  `json:"weight"`
}

// Event is a gathering among friends.
type Event struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Date         string        `json:"date"`
	Location     string        `json:"location"`
	Budget       *float64      `json:"budget,omitempty"`
	Currency     string        `json:"currency"`
	Notes        string        `json:"notes,omitempty"`
	Participants []Participant `json:"participants"`
}

// NewEvent holds the caller-supplied fields of an event.
type NewEvent struct {
	Name     string
	Date     string
	Location string
	Budget   *float64
	Notes    string
}

// NewParticipant holds the caller-supplied fields of a participant.
type NewParticipant struct {
	Name         string
	Intolerances []string
	Preferences  []string
	Weight       *float64
}

// ParticipantUpdate is a partial update of a participant.
// A nil slice leaves the field untouched; an empty slice clears it.
// A nil or non-positive Weight leaves the weight untouched.
type ParticipantUpdate struct {
	Intolerances []string
	Preferences  []string
	Weight       *float64
}

// Apply mutates p with the fields set in u.
func (p *Participant) Apply(u ParticipantUpdate) {
	if u.Intolerances != nil {
		p.Intolerances = NormalizeTags(u.Intolerances)
	}
	if u.Preferences != nil {
		p.Preferences = NormalizeTags(u.Preferences)
	}
	if u.Weight != nil && *u.Weight > 0 {
		p.Weight = *u.Weight
	}
}

// Clone returns a deep copy of p.
func (p Participant) Clone() Participant {
	p.Intolerances = append([]string(nil), p.Intolerances...)
	p.Preferences = append([]string(nil), p.Preferences...)
	return p
}

// Clone returns a deep copy of e including its participants.
func (e Event) Clone() Event {
	if e.Budget != nil {
		b := *e.Budget
		e.Budget = &b
	}
	participants := make([]Participant, len(e.Participants))
	for i := range e.Participants {
		participants[i] = e.Participants[i].Clone()
	}
	e.Participants = participants
	return e
}

// FindParticipant returns the participant with the given id, or nil.
func (e *Event) FindParticipant(id string) *Participant {
	for i := range e.Participants {
		if e.Participants[i].ID == id {
			return &e.Participants[i]
		}
	}
	return nil
}

// NormalizeTags trims tags and drops empty entries.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SplitMode selects how a bill is divided.
type SplitMode string

// Available split modes.
const (
	// SplitEqual divides the total evenly.
	SplitEqual SplitMode = "equal"

	// SplitWeighted divides the total proportionally to participant weights.
	SplitWeighted SplitMode = "weighted"
)

// IsValid returns true if the split mode is recognised.
func (m SplitMode) IsValid() bool {
	return m == SplitEqual || m == SplitWeighted
}

// Share is one participant's portion of a split bill.
type Share struct {
	ParticipantID string  `json:"participant_id"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
}
