package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/walletfy/walletfy/internal/balance"
	"github.com/walletfy/walletfy/internal/cli"
)

func balanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "View the month-by-month balance flow",
		RunE:  runBalance,
	}

	cmd.AddCommand(balanceInitCmd())

	return cmd
}

func runBalance(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	events, err := store.ListEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}
	initialBalance, err := store.GetInitialBalance(ctx)
	if err != nil {
		return fmt.Errorf("failed to read initial balance: %w", err)
	}

	fmt.Println(cli.FormatTitle("Flujo de balance"))
	fmt.Printf("Balance inicial: %s\n\n", cli.Currency(initialBalance))

	months := balance.CalculateFlow(events, initialBalance)
	if len(months) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No hay eventos registrados todavía."))
		return nil
	}

	for _, month := range months {
		fmt.Printf("%-20s %s %-12s %s %-12s  mes: %-12s  global: %s\n",
			month.MonthName,
			cli.IncomeStyle.Render("+"), cli.Currency(month.TotalIngresos),
			cli.ExpenseStyle.Render("-"), cli.Currency(month.TotalEgresos),
			cli.Balance(month.MonthlyBalance),
			cli.Balance(month.GlobalBalance),
		)
	}

	fmt.Printf("\nBalance global: %s\n", cli.Balance(balance.Current(events, initialBalance)))
	return nil
}

func balanceInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <amount>",
		Short: "Set the initial balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.SetInitialBalance(ctx, amount); err != nil {
				return fmt.Errorf("failed to set initial balance: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Balance inicial actualizado a " + cli.Currency(amount)))
			return nil
		},
	}
}
