package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAccountCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "account",
		Short: "Show the authenticated account",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			token, err := ctx.accessToken()
			if err != nil {
				return err
			}

			account, err := client.Account(cmd.Context(), token)
			if err != nil {
				return fmt.Errorf("fetch account: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:    %s\n", account.ID)
			fmt.Fprintf(out, "Email: %s\n", account.Email)
			if account.FullName != "" {
				fmt.Fprintf(out, "Name:  %s\n", account.FullName)
			}
			return nil
		},
	}
}

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show the caller's catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.ensureClient()
			if err != nil {
				return err
			}
			token, err := ctx.accessToken()
			if err != nil {
				return err
			}

			catalog, err := client.Catalog(cmd.Context(), token)
			if err != nil {
				return fmt.Errorf("fetch catalog: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:   %s\n", catalog.ID)
			if catalog.Payload.Name != "" {
				fmt.Fprintf(out, "Name: %s\n", catalog.Payload.Name)
			}
			return nil
		},
	}
}
