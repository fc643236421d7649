package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fluentwave/fluentwave/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recent lesson completions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return err
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		subs, err := st.ListCompletions(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("list completions: %w", err)
		}
		if len(subs) == 0 {
			fmt.Println("No lessons completed yet. Run `fluentwave learn` to get started.")
			return nil
		}

		fmt.Printf("%-24s  %-7s  %-6s  %s\n", "LESSON", "SCORE", "SYNCED", "WHEN")
		for _, sub := range subs {
			synced := "no"
			if sub.Submitted {
				synced = "yes"
			}
			when := sub.CreatedAt.Format("2006-01-02 15:04")
			fmt.Printf("%-24s  %2d/%-4d  %-6s  %s\n", sub.LessonID, sub.Score, sub.Total, synced, when)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("limit", 20, "Maximum number of completions to show")
}
