package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/storefront/backend/internal/domain/identity"
)

func newUserCmd(svc func() *services) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	setRole := func(use, short string, role identity.Role) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <email>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				user, err := svc().users.SetRoleByEmail(cmd.Context(), args[0], role)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) role=%d\n",
					successStyle.Render("updated"), user.Email, user.ID, user.Role)
				return nil
			},
		}
	}

	count := &cobra.Command{
		Use:   "count",
		Short: "Print the number of registered accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := svc().users.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}

	cmd.AddCommand(
		setRole("promote", "Grant the admin role", identity.RoleAdmin),
		setRole("demote", "Revoke the admin role", identity.RoleCustomer),
		count,
	)
	return cmd
}
