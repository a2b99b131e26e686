package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/walletfy/walletfy/internal/cli"
	"github.com/walletfy/walletfy/internal/common"
	"github.com/walletfy/walletfy/internal/service"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export all events and settings to a JSON file",
		RunE:  runBackup,
	}

	cmd.Flags().StringP("output", "o", "walletfy-backup.json", "Output file path")

	return cmd
}

func runBackup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	output, _ := cmd.Flags().GetString("output")

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

	backup := service.Backup{
		Events:         events,
		InitialBalance: initialBalance,
	}

	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	if err := os.WriteFile(output, data, 0o600); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Backup guardado en %s (%d eventos)", output, len(events))))
	return nil
}

func restoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Import events and settings from a backup file",
		Long: `Restore events from a JSON backup. Events already present (same ID)
are skipped so the restore can be re-run safely.`,
		Args: cobra.ExactArgs(1),
		RunE: runRestore,
	}

	return cmd
}

func runRestore(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	var backup service.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return fmt.Errorf("failed to parse backup file: %w", err)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.SetInitialBalance(ctx, backup.InitialBalance); err != nil {
		return fmt.Errorf("failed to restore initial balance: %w", err)
	}

	bar := progressbar.NewOptions(len(backup.Events),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Restoring events...[reset]"),
	)

	restored := 0
	skipped := 0
	for _, event := range backup.Events {
		if err := event.Validate(); err != nil {
			return fmt.Errorf("backup contains invalid event %s: %w", event.ID, err)
		}
		switch err := store.AddEvent(ctx, event); {
		case err == nil:
			restored++
		case errors.Is(err, common.ErrDuplicateEntry):
			skipped++
		default:
			return fmt.Errorf("failed to restore event %s: %w", event.ID, err)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Println()

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Restauración completa: %d eventos nuevos, %d ya existían", restored, skipped)))
	return nil
}
