// history.go implements the "mockround history" command listing past sessions.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	mlog "github.com/mockround/mockround/internal/log"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past sessions",
	Long:  `Summarise the sessions recorded in .mockround/log.jsonl, newest first.`,
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of sessions to list")
}

// sessionSummary is one session folded from its events.
type sessionSummary struct {
	ID         string
	Kind       string
	Difficulty string
	Started    time.Time
	Answered   int
	Total      int
	Outcome    string
}

func runHistory(cmd *cobra.Command, args []string) error {
	_, dir, err := loadConfig()
	if err != nil {
		return err
	}
	events, err := mlog.NewLogger(dir)
	if err != nil {
		return err
	}
	all, err := events.ReadAll()
	if err != nil {
		return err
	}

	sessions := summarizeSessions(all)
	if len(sessions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded yet.")
		return nil
	}
	printHistory(cmd.OutOrStdout(), sessions, historyLimit)
	return nil
}

// summarizeSessions folds events into one summary per session, newest first.
// Events without a session ID are ignored.
func summarizeSessions(events []mlog.LogEvent) []sessionSummary {
	index := make(map[string]int)
	var out []sessionSummary

	for _, e := range events {
		if e.SessionID == "" {
			continue
		}
		i, ok := index[e.SessionID]
		if !ok {
			i = len(out)
			index[e.SessionID] = i
			out = append(out, sessionSummary{ID: e.SessionID, Started: e.Time, Outcome: "in progress"})
		}
		s := &out[i]
		if e.Kind != "" {
			s.Kind = e.Kind
		}
		if e.Difficulty != "" {
			s.Difficulty = e.Difficulty
		}
		if e.Total > 0 {
			s.Total = e.Total
		}

		switch e.Event {
		case mlog.EventAnswerSubmitted:
			s.Answered++
		case mlog.EventSessionCompleted:
			s.Outcome = "completed"
		case mlog.EventTimerExpired:
			s.Outcome = "time ran out"
		case mlog.EventSessionErrored:
			s.Outcome = "failed"
		case mlog.EventSessionTeardown:
			s.Outcome = "abandoned"
		}
	}

	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out
}

func printHistory(w io.Writer, sessions []sessionSummary, limit int) {
	if limit > 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	fmt.Fprintf(w, "%-36s  %-16s  %-9s  %-6s  %-7s  %s\n", "SESSION", "STARTED", "KIND", "LEVEL", "ANSWERS", "OUTCOME")
	for _, s := range sessions {
		fmt.Fprintf(w, "%-36s  %-16s  %-9s  %-6s  %-7s  %s\n",
			s.ID,
			s.Started.Local().Format("2006-01-02 15:04"),
			s.Kind,
			s.Difficulty,
			fmt.Sprintf("%d/%d", s.Answered, s.Total),
			s.Outcome,
		)
	}
}
