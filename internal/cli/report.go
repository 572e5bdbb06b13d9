// report.go implements the "mockround report" command for printing session reports.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mockround/mockround/internal/exchange"
	mlog "github.com/mockround/mockround/internal/log"
	"github.com/mockround/mockround/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [session-id]",
	Short: "Show the report for a session",
	Long: `Fetch and print the report for a session. Without an argument the most
recent session recorded in .mockround/log.jsonl is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

var (
	reportJSON bool
	reportSave bool
)

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Print the raw report as JSON")
	reportCmd.Flags().BoolVar(&reportSave, "save", false, "Also write the report to .mockround/reports/")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, dir, err := loadConfig()
	if err != nil {
		return err
	}

	events, err := mlog.NewLogger(dir)
	if err != nil {
		return err
	}

	var sessionID string
	if len(args) == 1 {
		sessionID = strings.TrimSpace(args[0])
	} else {
		sessionID, err = latestSession(events)
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.APITimeout())
	defer cancel()
	client := exchange.NewClient(cfg.API.BaseURL, nil, nil)
	rep, err := client.FetchReport(ctx, sessionID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if reportJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	// The event log is best-effort; a report for a session started
	// elsewhere has no local events.
	local, _ := events.ForSession(sessionID)
	summary := report.Build(rep, local)
	fmt.Fprint(out, report.FormatReport(summary))

	if reportSave {
		path, err := report.WriteReport(dir, summary)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved to %s\n", path)
	}
	return nil
}

// latestSession returns the last session ID recorded in the event log.
func latestSession(events *mlog.Logger) (string, error) {
	all, err := events.ReadAll()
	if err != nil {
		return "", err
	}
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].SessionID != "" {
			return all[i].SessionID, nil
		}
	}
	return "", fmt.Errorf("no sessions recorded yet; start one with: mockround")
}
