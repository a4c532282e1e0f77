package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lrcloud/internal/history"
	"lrcloud/internal/ingest"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var catalogFlag string
	var importedByFlag string
	var attachFlag bool

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image as a new asset",
		Long: `Upload an image file as a new asset: a revision record is created
with the content fingerprint as a duplicate-detection precondition,
then the binary master is uploaded. With --attach the asset is added
to the integration's first project album.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orch, err := ctx.orchestrator()
			if err != nil {
				return err
			}
			token, err := ctx.accessToken()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read image file: %w", err)
			}

			catalogID, err := resolveCatalogID(cmd.Context(), ctx, token, catalogFlag)
			if err != nil {
				return err
			}

			importedBy := importedByFlag
			if importedBy == "" {
				client, err := ctx.ensureClient()
				if err != nil {
					return err
				}
				account, err := client.Account(cmd.Context(), token)
				if err != nil {
					return fmt.Errorf("resolve importing account: %w", err)
				}
				importedBy = account.Email
				if importedBy == "" {
					importedBy = account.ID
				}
			}

			store, err := ctx.openHistory()
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			out := cmd.OutOrStdout()
			fingerprint := ingest.Fingerprint(data)
			if store != nil {
				known, err := store.FindByFingerprint(cmd.Context(), fingerprint)
				if err != nil {
					return err
				}
				if known != nil {
					fmt.Fprintf(out, "Note: identical content was uploaded as asset %s on %s; the service will reject it as a duplicate\n",
						known.AssetID, known.UploadedAt.Format("2006-01-02 15:04"))
				}
			}

			req := ingest.UploadRequest{
				ImportedBy: importedBy,
				CatalogID:  catalogID,
				FileName:   filepath.Base(args[0]),
				Data:       data,
			}

			var assetID, albumID string
			if attachFlag {
				assetID, albumID, err = orch.UploadImageToFirstProject(cmd.Context(), token, req)
			} else {
				assetID, err = orch.UploadImage(cmd.Context(), token, req)
			}
			if err != nil {
				return err
			}

			if store != nil {
				if _, err := store.RecordUpload(cmd.Context(), history.Record{
					AssetID:     assetID,
					CatalogID:   catalogID,
					AlbumID:     albumID,
					FileName:    req.FileName,
					Fingerprint: fingerprint,
					Bytes:       int64(len(data)),
				}); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: record upload history: %v\n", err)
				}
			}

			fmt.Fprintf(out, "Uploaded %s (%s) as asset %s\n", req.FileName, formatBytes(int64(len(data))), assetID)
			if albumID != "" {
				fmt.Fprintf(out, "Attached to project %s\n", albumID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogFlag, "catalog", "", "Catalog identifier (defaults to the caller's catalog)")
	cmd.Flags().StringVar(&importedByFlag, "imported-by", "", "Importing actor recorded on the revision (defaults to the account email)")
	cmd.Flags().BoolVar(&attachFlag, "attach", false, "Attach the asset to the integration's first project album")
	return cmd
}
