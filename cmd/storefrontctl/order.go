package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	tradeapp "github.com/storefront/backend/internal/application/trade"
)

func newOrdersCmd(svc func() *services) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Inspect and fulfil orders",
	}

	var page, pageSize int
	list := &cobra.Command{
		Use:   "list",
		Short: "List orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := svc().orders.AllOrders(cmd.Context(), page, pageSize)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printHeader(out, fmt.Sprintf("%-36s  %-12s  %10s  %s", "ID", "STATUS", "AMOUNT", "CREATED"))
			for _, o := range result.Items {
				fmt.Fprintf(out, "%-36s  %-12s  %10s  %s\n",
					o.ID, o.Status, o.Amount.StringFixed(2), o.CreatedAt.Format("2006-01-02 15:04"))
			}
			fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("page %d/%d, %d orders", result.Page, result.TotalPages, result.Total)))
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 1, "Page number")
	list.Flags().IntVar(&pageSize, "page-size", tradeapp.DefaultOrdersPageSize, "Orders per page")

	status := &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: `Change an order's status ("Not Process", Processing, Shipped, deliverd, cancel)`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return tradeapp.ErrOrderNotFound
			}
			order, err := svc().orders.UpdateStatus(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", successStyle.Render("updated"), order.ID, order.Status)
			return nil
		},
	}

	cmd.AddCommand(list, status)
	return cmd
}
