package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage this integration's project albums",
	}

	projectsCmd.AddCommand(newProjectsListCommand(ctx))
	projectsCmd.AddCommand(newProjectsCreateCommand(ctx))

	return projectsCmd
}

func newProjectsListCommand(ctx *commandContext) *cobra.Command {
	var catalogFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List project albums owned by this integration",
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := ctx.orchestrator()
			if err != nil {
				return err
			}
			token, err := ctx.accessToken()
			if err != nil {
				return err
			}
			catalogID, err := resolveCatalogID(cmd.Context(), ctx, token, catalogFlag)
			if err != nil {
				return err
			}

			projects, err := orch.Projects(cmd.Context(), token, catalogID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No project albums belong to this integration")
				return nil
			}

			if stdoutIsTerminal() {
				rows := make([][]string, 0, len(projects))
				for _, project := range projects {
					rows = append(rows, []string{
						project.ID,
						project.Payload.Name,
						subtypeLabel(project.Subtype),
						project.Payload.UserCreated,
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Album ID", "Name", "Subtype", "Created"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
				))
				return nil
			}

			for _, project := range projects {
				fmt.Fprintf(out, "%s\t%s\n", project.ID, project.Payload.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFlag, "catalog", "", "Catalog identifier (defaults to the caller's catalog)")
	return cmd
}

func newProjectsCreateCommand(ctx *commandContext) *cobra.Command {
	var catalogFlag string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project album",
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := ctx.orchestrator()
			if err != nil {
				return err
			}
			token, err := ctx.accessToken()
			if err != nil {
				return err
			}
			catalogID, err := resolveCatalogID(cmd.Context(), ctx, token, catalogFlag)
			if err != nil {
				return err
			}

			albumID, err := orch.CreateProject(cmd.Context(), token, catalogID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s\n", albumID)
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFlag, "catalog", "", "Catalog identifier (defaults to the caller's catalog)")
	return cmd
}

// resolveCatalogID uses the flag value when supplied and otherwise asks
// the service for the caller's catalog.
func resolveCatalogID(ctx context.Context, cmdCtx *commandContext, token, flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	client, err := cmdCtx.ensureClient()
	if err != nil {
		return "", err
	}
	catalog, err := client.Catalog(ctx, token)
	if err != nil {
		return "", fmt.Errorf("resolve catalog: %w", err)
	}
	if catalog == nil || catalog.ID == "" {
		return "", fmt.Errorf("service returned no catalog for this account")
	}
	return catalog.ID, nil
}
