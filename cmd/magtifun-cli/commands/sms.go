package commands

import (
	"fmt"
	"strconv"

	"github.com/ABGEO/magtifun.abgeo.dev/cmd/magtifun-cli/globals"
	"github.com/ABGEO/magtifun.abgeo.dev/lib/scrapers/magtifun"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	smsCmd.AddCommand(smsSendCmd)
	smsCmd.AddCommand(smsHistoryCmd)
	smsCmd.AddCommand(smsDeleteCmd)
	rootCmd.AddCommand(smsCmd)
}

var smsCmd = &cobra.Command{
	Use:   "sms",
	Short: "Sends SMS and manages the message history.",
}

var smsSendCmd = &cobra.Command{
	Use:   "send <recipient> <message>",
	Short: "Sends a message, the site decides whether it went through.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		identity, err := currentIdentity(ctx)
		if err != nil {
			return err
		}
		result, err := g.Client.SendSms(ctx, identity, magtifun.SmsOnSend{
			Recipient: args[0],
			Message:   args[1],
		})
		if err != nil {
			return checkSession(ctx, identity, err)
		}

		if g.JSON {
			err = writeJSON(cmd.OutOrStdout(), result)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		}
		if err == nil && !result.Status {
			err = fmt.Errorf("message was not sent (%s)", result.Code)
		}
		return err
	},
}

var smsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Prints every sent message, newest first.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		identity, err := currentIdentity(ctx)
		if err != nil {
			return err
		}
		history, err := g.Client.GetSmsHistory(ctx, identity)
		if err != nil {
			return checkSession(ctx, identity, err)
		}

		if g.JSON {
			return writeJSON(cmd.OutOrStdout(), history)
		}
		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Id", "Date", "Recipient", "Delivered", "Text"})
		for _, item := range history {
			t.AppendRow(table.Row{
				item.Id,
				item.Date.Format(dateLayout),
				item.Recipient,
				item.Delivered,
				item.Text,
			})
		}
		t.Render()
		return nil
	},
}

var smsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Deletes a message from the history.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := globals.Get(ctx)

		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("message id %q is not a number", args[0])
		}
		identity, err := currentIdentity(ctx)
		if err != nil {
			return err
		}
		deleted, err := g.Client.DeleteSms(ctx, identity, id)
		if err != nil {
			return checkSession(ctx, identity, err)
		}

		if g.JSON {
			return writeJSON(cmd.OutOrStdout(), map[string]bool{"deleted": deleted})
		}
		if !deleted {
			return fmt.Errorf("the site did not delete message %d", id)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted message %d\n", id)
		return nil
	},
}
