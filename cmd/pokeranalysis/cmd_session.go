package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/TeamCinco/Poker-Analysis/internal/persistence/file"
	"github.com/TeamCinco/Poker-Analysis/internal/session"
)

func newSessionCmd() *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Record and inspect play sessions",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new session",
		Long: `Records one play session. Profit/loss is derived as
cash_out - buy_in - fees. A zero buy-in continues with the previous
cash-out as the bankroll, recording no new deposit.`,
		RunE: runSessionAdd,
	}
	addCmd.Flags().Float64("buy-in", 0, "Buy-in amount (0 = continue previous bankroll)")
	addCmd.Flags().Float64("cash-out", 0, "Cash-out amount")
	addCmd.Flags().Float64("fees", 0, "Fees paid")
	addCmd.Flags().String("notes", "", "Free-form notes")
	addCmd.Flags().String("date", "", "Session date (RFC 3339, default now)")
	addCmd.MarkFlagRequired("cash-out")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions in chronological order",
		RunE:  runSessionList,
	}

	sessionCmd.AddCommand(addCmd)
	sessionCmd.AddCommand(listCmd)
	return sessionCmd
}

func runSessionAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	buyIn, _ := cmd.Flags().GetFloat64("buy-in")
	cashOut, _ := cmd.Flags().GetFloat64("cash-out")
	fees, _ := cmd.Flags().GetFloat64("fees")
	notes, _ := cmd.Flags().GetString("notes")
	dateStr, _ := cmd.Flags().GetString("date")

	date := time.Now().UTC()
	if dateStr != "" {
		date, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return fmt.Errorf("invalid --date (want RFC 3339): %w", err)
		}
	}

	repo, closeRepo, err := openSessions(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	// The file store knows how to carry a bankroll forward; other
	// backends record the session as given.
	var rec session.Record
	if store, ok := repo.(*file.Store); ok {
		rec, err = store.AddSession(cmd.Context(), date, buyIn, cashOut, fees, notes)
	} else {
		rec = session.NewRecord(date, buyIn, cashOut, fees, notes)
		err = repo.Insert(cmd.Context(), rec)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Session added: %+.2f\n", rec.ProfitLoss)
	return nil
}

func runSessionList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	repo, closeRepo, err := openSessions(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeRepo()

	records, err := repo.List(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(records)
}

// printJSON writes v to stdout as indented JSON for piping into other
// tools.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
