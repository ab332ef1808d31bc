package main

import "github.com/spf13/cobra"

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "profile", Short: "manage profiles"}

	var id, name string
	create := &cobra.Command{
		Use:   "create",
		Short: "create a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke("profile.create", map[string]string{"id": id, "name": name})
		},
	}
	create.Flags().StringVar(&id, "id", "", "profile id")
	create.Flags().StringVar(&name, "name", "", "display name")
	create.MarkFlagRequired("id")
	create.MarkFlagRequired("name")

	get := &cobra.Command{
		Use:   "get",
		Short: "get a profile by id",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke("profile.get", map[string]string{"id": id})
		},
	}
	get.Flags().StringVar(&id, "id", "", "profile id")
	get.MarkFlagRequired("id")

	del := &cobra.Command{
		Use:   "delete",
		Short: "delete a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke("profile.delete", map[string]string{"id": id})
		},
	}
	del.Flags().StringVar(&id, "id", "", "profile id")
	del.MarkFlagRequired("id")

	list := &cobra.Command{
		Use:   "list",
		Short: "list every profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoke("profile.list", nil)
		},
	}

	cmd.AddCommand(create, get, del, list)
	return cmd
}
