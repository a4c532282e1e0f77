package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent uploads recorded locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store == nil {
				return fmt.Errorf("upload history is disabled in the configuration")
			}
			defer store.Close()

			records, err := store.Recent(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No uploads recorded")
				return nil
			}

			if stdoutIsTerminal() {
				rows := make([][]string, 0, len(records))
				for _, rec := range records {
					album := rec.AlbumID
					if album == "" {
						album = "-"
					}
					rows = append(rows, []string{
						strconv.FormatInt(rec.ID, 10),
						rec.AssetID,
						rec.FileName,
						formatBytes(rec.Bytes),
						album,
						rec.UploadedAt.Local().Format(time.DateTime),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Asset", "File", "Size", "Album", "Uploaded"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
				))
				return nil
			}

			for _, rec := range records {
				fmt.Fprintf(out, "%d\t%s\t%s\t%d\t%s\n",
					rec.ID, rec.AssetID, rec.FileName, rec.Bytes, rec.UploadedAt.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum number of records to show")
	return cmd
}
