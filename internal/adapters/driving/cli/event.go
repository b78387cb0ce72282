package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/convivio/internal/core/domain"
	"github.com/custodia-labs/convivio/internal/core/services"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage events among friends",
	Long: `Create events, manage participants and their dietary needs, suggest
restaurants and split the bill.

Events live in the store selected by events.db_url (EVENTS_DB_URL). The
default in-memory store forgets everything when the command exits, so
configure a SQLite file or a Postgres URL to keep events between runs.`,
}

var eventCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new event",
	Args:  cobra.NoArgs,
	RunE:  runEventCreate,
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events",
	Args:  cobra.NoArgs,
	RunE:  runEventList,
}

var eventAddParticipantCmd = &cobra.Command{
	Use:   "add-participant <event-id>",
	Short: "Add a participant to an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventAddParticipant,
}

var eventUpdateCmd = &cobra.Command{
	Use:   "update <event-id> <participant-id>",
	Short: "Update a participant's preferences",
	Long: `Update intolerances, preferences or weight of a participant.

Only the flags given are changed. Pass an empty value (--intolerances "")
to clear a list.`,
	Args: cobra.ExactArgs(2),
	RunE: runEventUpdate,
}

var eventSummaryCmd = &cobra.Command{
	Use:   "summary <event-id>",
	Short: "Show an event and its participants",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventSummary,
}

var eventSuggestCmd = &cobra.Command{
	Use:   "suggest <event-id>",
	Short: "Suggest restaurants for an event",
	Args:  cobra.ExactArgs(1),
	RunE:  runEventSuggest,
}

var eventSplitCmd = &cobra.Command{
	Use:   "split <event-id> <total-amount>",
	Short: "Split the bill among participants",
	Args:  cobra.ExactArgs(2),
	RunE:  runEventSplit,
}

func init() {
	eventCreateCmd.Flags().String("name", "", "Event title")
	eventCreateCmd.Flags().String("date", "", "Date and time as free text")
	eventCreateCmd.Flags().String("location", "", "City or address")
	eventCreateCmd.Flags().Float64("budget", 0, "Total expected budget")
	eventCreateCmd.Flags().String("notes", "", "Additional notes")
	_ = eventCreateCmd.MarkFlagRequired("name")
	_ = eventCreateCmd.MarkFlagRequired("date")
	_ = eventCreateCmd.MarkFlagRequired("location")

	eventAddParticipantCmd.Flags().String("name", "", "Participant name")
	eventAddParticipantCmd.Flags().StringSlice("intolerances", nil, "Intolerances or allergies (comma-separated)")
	eventAddParticipantCmd.Flags().StringSlice("preferences", nil, "Cuisine preferences (comma-separated)")
	eventAddParticipantCmd.Flags().Float64("weight", domain.DefaultWeight, "Weight for weighted bill splits")
	_ = eventAddParticipantCmd.MarkFlagRequired("name")

	eventUpdateCmd.Flags().StringSlice("intolerances", nil, "Replace intolerances (comma-separated)")
	eventUpdateCmd.Flags().StringSlice("preferences", nil, "Replace preferences (comma-separated)")
	eventUpdateCmd.Flags().Float64("weight", 0, "New weight (ignored unless positive)")

	eventSuggestCmd.Flags().IntP("limit", "n", 0, "Maximum number of suggestions (default from settings)")

	eventSplitCmd.Flags().StringP("mode", "m", string(domain.SplitEqual), "Split mode: equal or weighted")

	eventCmd.AddCommand(eventCreateCmd)
	eventCmd.AddCommand(eventListCmd)
	eventCmd.AddCommand(eventAddParticipantCmd)
	eventCmd.AddCommand(eventUpdateCmd)
	eventCmd.AddCommand(eventSummaryCmd)
	eventCmd.AddCommand(eventSuggestCmd)
	eventCmd.AddCommand(eventSplitCmd)
	rootCmd.AddCommand(eventCmd)
}

func requireEventService() error {
	if eventService == nil {
		return errors.New("event service not configured")
	}
	return nil
}

func runEventCreate(cmd *cobra.Command, _ []string) error {
	if err := requireEventService(); err != nil {
		return err
	}

	flags := cmd.Flags()
	input := domain.NewEvent{}
	input.Name, _ = flags.GetString("name")
	input.Date, _ = flags.GetString("date")
	input.Location, _ = flags.GetString("location")
	input.Notes, _ = flags.GetString("notes")
	if flags.Changed("budget") {
		budget, _ := flags.GetFloat64("budget")
		input.Budget = &budget
	}

	event, err := eventService.CreateEvent(cmd.Context(), input)
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}
	cmd.Println(services.FormatEventCreated(event))
	return nil
}

func runEventList(cmd *cobra.Command, _ []string) error {
	if err := requireEventService(); err != nil {
		return err
	}

	events, err := eventService.ListEvents(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}
	if len(events) == 0 {
		cmd.Println("No events.")
		return nil
	}
	for i := range events {
		e := &events[i]
		cmd.Printf("%s  %s  %s  %s  (%d participants)\n",
			e.ID, e.Date, e.Location, e.Name, len(e.Participants))
	}
	return nil
}

func runEventAddParticipant(cmd *cobra.Command, args []string) error {
	if err := requireEventService(); err != nil {
		return err
	}

	flags := cmd.Flags()
	input := domain.NewParticipant{}
	input.Name, _ = flags.GetString("name")
	input.Intolerances, _ = flags.GetStringSlice("intolerances")
	input.Preferences, _ = flags.GetStringSlice("preferences")
	if flags.Changed("weight") {
		weight, _ := flags.GetFloat64("weight")
		input.Weight = &weight
	}

	participant, err := eventService.AddParticipant(cmd.Context(), args[0], input)
	if err != nil {
		return fmt.Errorf("adding participant: %w", err)
	}
	cmd.Println(services.FormatParticipantAdded(args[0], participant))
	return nil
}

func runEventUpdate(cmd *cobra.Command, args []string) error {
	if err := requireEventService(); err != nil {
		return err
	}

	flags := cmd.Flags()
	var update domain.ParticipantUpdate
	if flags.Changed("intolerances") {
		update.Intolerances, _ = flags.GetStringSlice("intolerances")
		if update.Intolerances == nil {
			update.Intolerances = []string{}
		}
	}
	if flags.Changed("preferences") {
		update.Preferences, _ = flags.GetStringSlice("preferences")
		if update.Preferences == nil {
			update.Preferences = []string{}
		}
	}
	if flags.Changed("weight") {
		weight, _ := flags.GetFloat64("weight")
		update.Weight = &weight
	}

	participant, err := eventService.UpdatePreferences(cmd.Context(), args[0], args[1], update)
	if err != nil {
		return fmt.Errorf("updating participant: %w", err)
	}
	cmd.Println(services.FormatParticipantUpdated(args[0], participant))
	return nil
}

func runEventSummary(cmd *cobra.Command, args []string) error {
	if err := requireEventService(); err != nil {
		return err
	}

	summary, err := eventService.EventSummary(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading event: %w", err)
	}
	cmd.Println(summary)
	return nil
}

func runEventSuggest(cmd *cobra.Command, args []string) error {
	if err := requireEventService(); err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	suggestions, err := eventService.SuggestRestaurants(cmd.Context(), args[0], limit)
	if err != nil {
		return fmt.Errorf("suggesting restaurants: %w", err)
	}
	cmd.Println(services.FormatSuggestions(suggestions))
	return nil
}

func runEventSplit(cmd *cobra.Command, args []string) error {
	if err := requireEventService(); err != nil {
		return err
	}

	total, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q", args[1])
	}
	mode, _ := cmd.Flags().GetString("mode")

	shares, err := eventService.SplitBill(cmd.Context(), args[0], total, domain.SplitMode(mode))
	if err != nil {
		return fmt.Errorf("splitting bill: %w", err)
	}
	event, err := eventService.GetEvent(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading event: %w", err)
	}
	cmd.Println(services.FormatShares(shares, event.Currency))
	return nil
}
