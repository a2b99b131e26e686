package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/walletfy/walletfy/internal/cli"
	"github.com/walletfy/walletfy/internal/common"
	"github.com/walletfy/walletfy/internal/dates"
	"github.com/walletfy/walletfy/internal/model"
	"github.com/walletfy/walletfy/internal/search"
)

func eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage income and expense events",
	}

	cmd.AddCommand(eventsAddCmd())
	cmd.AddCommand(eventsListCmd())
	cmd.AddCommand(eventsDeleteCmd())
	cmd.AddCommand(eventsFindCmd())

	return cmd
}

func eventsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new event",
		Example: `  walletfy events add --nombre "Salario" --cantidad 3000 --tipo ingreso
  walletfy events add --nombre "Renta" --cantidad 800 --tipo egreso --fecha "01/09/2025"`,
		RunE: runEventsAdd,
	}

	cmd.Flags().String("nombre", "", "Event name (1-20 characters, required)")
	cmd.Flags().Float64("cantidad", 0, "Amount (positive, required)")
	cmd.Flags().String("tipo", "", "Event type: ingreso or egreso (required)")
	cmd.Flags().String("fecha", "hoy", "Event date (hoy, ayer, DD/MM/YYYY, ...)")
	cmd.Flags().String("descripcion", "", "Optional description (max 100 characters)")
	_ = cmd.MarkFlagRequired("nombre")
	_ = cmd.MarkFlagRequired("cantidad")
	_ = cmd.MarkFlagRequired("tipo")

	return cmd
}

func runEventsAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	nombre, _ := cmd.Flags().GetString("nombre")
	cantidad, _ := cmd.Flags().GetFloat64("cantidad")
	tipoRaw, _ := cmd.Flags().GetString("tipo")
	fechaRaw, _ := cmd.Flags().GetString("fecha")
	descripcion, _ := cmd.Flags().GetString("descripcion")

	tipo, ok := model.ParseEventType(tipoRaw)
	if !ok {
		return fmt.Errorf("invalid tipo %q: must be ingreso or egreso", tipoRaw)
	}

	parser := dates.NewParser(nil)
	fecha, ok := parser.Parse(fechaRaw)
	if !ok {
		return fmt.Errorf("could not parse date %q", fechaRaw)
	}

	event := model.Event{
		ID:          uuid.NewString(),
		Nombre:      nombre,
		Descripcion: descripcion,
		Cantidad:    cantidad,
		Fecha:       fecha,
		Tipo:        tipo,
	}
	if err := event.Validate(); err != nil {
		return err
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.AddEvent(ctx, event); err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Evento creado: %s", event.DisplayLine())))
	return nil
}

func eventsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		RunE:  runEventsList,
	}

	cmd.Flags().String("tipo", "", "Filter by type (ingreso, egreso)")
	cmd.Flags().IntP("month", "m", 0, "Filter by month (1-12)")
	cmd.Flags().IntP("year", "y", 0, "Filter by year")

	return cmd
}

func runEventsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	tipoRaw, _ := cmd.Flags().GetString("tipo")
	month, _ := cmd.Flags().GetInt("month")
	year, _ := cmd.Flags().GetInt("year")

	var tipo *model.EventType
	if tipoRaw != "" {
		parsed, ok := model.ParseEventType(tipoRaw)
		if !ok {
			return fmt.Errorf("invalid tipo %q: must be ingreso or egreso", tipoRaw)
		}
		tipo = &parsed
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	events, err := store.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	fmt.Println(cli.FormatTitle("Eventos"))
	shown := 0
	for _, event := range events {
		if tipo != nil && event.Tipo != *tipo {
			continue
		}
		if month != 0 && event.Fecha.Month() != time.Month(month) {
			continue
		}
		if year != 0 && event.Fecha.Year() != year {
			continue
		}
		fmt.Println(cli.EventLine(event))
		shown++
	}

	if shown == 0 {
		fmt.Println(cli.SubtleStyle.Render("No hay eventos registrados."))
	}
	return nil
}

func eventsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event by ID",
		Args:  cobra.ExactArgs(1),
		RunE:  runEventsDelete,
	}
}

func runEventsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	event, err := store.GetEventByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find event %s: %w", id, err)
	}

	if err := store.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Evento eliminado: %s", event.DisplayLine())))
	return nil
}

func eventsFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <texto>",
		Short: "Search events using a natural language query",
		Example: `  walletfy events find "el salario de septiembre 2023"
  walletfy events find "gastos de este mes"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runEventsFind,
	}
}

func runEventsFind(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := strings.Join(args, " ")

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	events, err := store.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	criteria := search.NewQueryParser(dates.SystemClock()).ParseDeleteQuery(query)
	common.LogDebug("parsed search criteria", common.Fields{
		"keywords":   criteria.Keywords,
		"has_amount": criteria.Amount != nil,
		"has_range":  criteria.DateRange != nil,
	})

	results := search.Events(events, criteria)
	if len(results) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No se encontraron eventos que coincidan."))
		return nil
	}

	fmt.Println(cli.FormatTitle(fmt.Sprintf("%d resultado(s)", len(results))))
	for i, result := range results {
		fmt.Printf("%d. %s  %s\n", i+1, cli.EventLine(result.Event),
			cli.SubtleStyle.Render(fmt.Sprintf("[%.0f pts: %s]", result.Score, strings.Join(result.MatchReasons, "; "))))
		fmt.Println(cli.SubtleStyle.Render("   id: " + result.Event.ID))
	}
	return nil
}
