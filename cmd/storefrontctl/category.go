package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	catalogapp "github.com/storefront/backend/internal/application/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

func newCategoryCmd(svc func() *services) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage catalog categories",
	}

	seed := &cobra.Command{
		Use:   "seed <name>...",
		Short: "Create categories, skipping names that already exist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range args {
				category, err := svc().categories.Create(cmd.Context(), catalogapp.CategoryRequest{Name: name})
				var domainErr *shared.DomainError
				switch {
				case errors.As(err, &domainErr) && domainErr.Code == shared.CodeAlreadyExists:
					fmt.Fprintf(out, "%s %s\n", mutedStyle.Render("exists "), name)
				case err != nil:
					return fmt.Errorf("seed %q: %w", name, err)
				default:
					fmt.Fprintf(out, "%s %s (%s)\n", successStyle.Render("created"), category.Name, category.Slug)
				}
			}
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			categories, err := svc().categories.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printHeader(out, fmt.Sprintf("%-36s  %-20s  %s", "ID", "SLUG", "NAME"))
			for _, c := range categories {
				fmt.Fprintf(out, "%-36s  %-20s  %s\n", c.ID, c.Slug, c.Name)
			}
			return nil
		},
	}

	cmd.AddCommand(seed, list)
	return cmd
}
