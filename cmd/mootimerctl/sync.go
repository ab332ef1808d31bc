package main

import "github.com/spf13/cobra"

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "sync", Short: "manage the git-backed data directory sync"}

	var message, remoteURL string

	commit := &cobra.Command{
		Use:   "commit",
		Short: "force a manual commit of pending changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke("sync.commit", map[string]string{"message": message})
		},
	}
	commit.Flags().StringVar(&message, "message", "", "commit message")

	setRemote := &cobra.Command{
		Use:   "set-remote",
		Short: "set the sync remote URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke("sync.set_remote", map[string]string{"remote_url": remoteURL})
		},
	}
	setRemote.Flags().StringVar(&remoteURL, "url", "", "remote git URL")
	setRemote.MarkFlagRequired("url")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "initialize the data directory as a git repository",
			RunE: func(cmd *cobra.Command, args []string) error {
				return invoke("sync.init", nil)
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "show sync status",
			RunE: func(cmd *cobra.Command, args []string) error {
				return invoke("sync.status", nil)
			},
		},
		&cobra.Command{
			Use:   "run",
			Short: "pull from the configured remote, then push if auto_push is set (does not commit)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return invoke("sync.sync", nil)
			},
		},
		commit,
		setRemote,
	)
	return cmd
}
