package main

import "github.com/spf13/cobra"

func newEntryCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "entry", Short: "query and manage time entries"}

	var profileID, entryID string

	cmd.AddCommand(
		entryProfileAction("today", "entries started today", "entry.today", &profileID),
		entryProfileAction("week", "entries started this ISO week", "entry.week", &profileID),
		entryProfileAction("month", "entries started this calendar month", "entry.month", &profileID),
		entryProfileAction("stats-today", "aggregate stats for today", "entry.stats_today", &profileID),
		entryProfileAction("stats-week", "aggregate stats for this week", "entry.stats_week", &profileID),
		entryProfileAction("stats-month", "aggregate stats for this month", "entry.stats_month", &profileID),
		entryProfileAction("today-all-profiles", "today's entries across every profile", "entry.today_all_profiles", nil),
		entryProfileAction("list", "list every entry in a profile", "entry.list", &profileID),
		&cobra.Command{
			Use:   "delete",
			Short: "delete an entry",
			RunE: func(cmd *cobra.Command, args []string) error {
				return invoke("entry.delete", map[string]string{"profile_id": profileID, "entry_id": entryID})
			},
		},
	)

	for _, sub := range cmd.Commands() {
		if sub.Use == "delete" {
			sub.Flags().StringVar(&profileID, "profile", "", "profile id")
			sub.Flags().StringVar(&entryID, "entry", "", "entry id")
			sub.MarkFlagRequired("profile")
			sub.MarkFlagRequired("entry")
		}
	}
	return cmd
}

// entryProfileAction builds a subcommand that takes a required --profile
// flag, or no flag at all when profileID is nil (the *_all_profiles variants).
func entryProfileAction(use, short, method string, profileID *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if profileID == nil {
				return invoke(method, nil)
			}
			return invoke(method, map[string]string{"profile_id": *profileID})
		},
	}
	if profileID != nil {
		cmd.Flags().StringVar(profileID, "profile", "", "profile id")
		cmd.MarkFlagRequired("profile")
	}
	return cmd
}
