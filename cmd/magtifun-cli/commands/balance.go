package commands

import (
	"fmt"

	"github.com/ABGEO/magtifun.abgeo.dev/cmd/magtifun-cli/globals"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	balanceCmd.AddCommand(balanceHistoryCmd)
	rootCmd.AddCommand(balanceCmd)
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Prints the remaining SMS credits and money.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		identity, err := currentIdentity(ctx)
		if err != nil {
			return err
		}
		balance, err := g.Client.GetBalance(ctx, identity)
		if err != nil {
			return checkSession(ctx, identity, err)
		}

		if g.JSON {
			return writeJSON(cmd.OutOrStdout(), balance)
		}
		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Credit", "Amount"})
		t.AppendRow(table.Row{balance.Credit, balance.Amount})
		t.Render()
		return nil
	},
}

var balanceHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Prints balance top ups and charges.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		identity, err := currentIdentity(ctx)
		if err != nil {
			return err
		}
		history, err := g.Client.GetBalanceHistory(ctx, identity)
		if err != nil {
			return checkSession(ctx, identity, err)
		}

		if g.JSON {
			return writeJSON(cmd.OutOrStdout(), history)
		}
		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Date", "Message", "Amount"})
		for _, item := range history {
			sign := "+"
			if item.Charge {
				sign = "-"
			}
			t.AppendRow(table.Row{
				item.Date.Format(dateLayout),
				item.Message,
				fmt.Sprintf("%s%d", sign, item.Amount),
			})
		}
		t.Render()
		return nil
	},
}
