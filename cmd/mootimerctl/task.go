package main

import "github.com/spf13/cobra"

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "task", Short: "manage tasks"}

	var profileID, taskID, title, query, toProfileID string

	create := &cobra.Command{
		Use:   "create",
		Short: "create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke("task.create", map[string]string{"profile_id": profileID, "title": title})
		},
	}
	create.Flags().StringVar(&profileID, "profile", "", "profile id")
	create.Flags().StringVar(&title, "title", "", "task title")
	create.MarkFlagRequired("profile")
	create.MarkFlagRequired("title")

	list := &cobra.Command{
		Use:   "list",
		Short: "list tasks in a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke("task.list", map[string]string{"profile_id": profileID})
		},
	}
	list.Flags().StringVar(&profileID, "profile", "", "profile id")
	list.MarkFlagRequired("profile")

	del := &cobra.Command{
		Use:   "delete",
		Short: "delete a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke("task.delete", map[string]string{"profile_id": profileID, "task_id": taskID})
		},
	}
	del.Flags().StringVar(&profileID, "profile", "", "profile id")
	del.Flags().StringVar(&taskID, "task", "", "task id")
	del.MarkFlagRequired("profile")
	del.MarkFlagRequired("task")

	search := &cobra.Command{
		Use:   "search",
		Short: "search tasks by title",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke("task.search", map[string]string{"profile_id": profileID, "query": query})
		},
	}
	search.Flags().StringVar(&profileID, "profile", "", "profile id")
	search.Flags().StringVar(&query, "query", "", "search text")
	search.MarkFlagRequired("profile")
	search.MarkFlagRequired("query")

	move := &cobra.Command{
		Use:   "move",
		Short: "move a task to a different profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke("task.move", map[string]string{
				"from_profile_id": profileID,
				"task_id":         taskID,
				"to_profile_id":   toProfileID,
			})
		},
	}
	move.Flags().StringVar(&profileID, "from", "", "source profile id")
	move.Flags().StringVar(&taskID, "task", "", "task id")
	move.Flags().StringVar(&toProfileID, "to", "", "destination profile id")
	move.MarkFlagRequired("from")
	move.MarkFlagRequired("task")
	move.MarkFlagRequired("to")

	cmd.AddCommand(create, list, del, search, move)
	return cmd
}
