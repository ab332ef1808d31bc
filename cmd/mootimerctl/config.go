package main

import "github.com/spf13/cobra"

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "inspect and update daemon configuration"}

	var profileID string
	setDefault := &cobra.Command{
		Use:   "set-default-profile",
		Short: "set the default profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke("config.set_default_profile", map[string]string{"profile_id": profileID})
		},
	}
	setDefault.Flags().StringVar(&profileID, "profile", "", "profile id")
	setDefault.MarkFlagRequired("profile")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "print the current config document",
			RunE: func(cmd *cobra.Command, args []string) error {
				return invoke("config.get", nil)
			},
		},
		setDefault,
		&cobra.Command{
			Use:   "reset",
			Short: "reset config to defaults",
			RunE: func(cmd *cobra.Command, args []string) error {
				return invoke("config.reset", nil)
			},
		},
	)
	return cmd
}
