// File: cmd/stowblob/blob_cmd.go
package main

import (
	"fmt"
	"stowblob/internal/flags"
	"stowblob/pkg/formatter"
	"stowblob/pkg/storage"
	"strings"

	"github.com/spf13/cobra"
)

type blobFlags struct {
	output string
	force  bool
}

func newListCmd(app *appContainer) *cobra.Command {
	cmdFlags := blobFlags{}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the blobs of the container",
		Long: `Lists every blob of the configured container. By default one name is printed per line.
Use --output table, json or yaml for a detailed listing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := formatter.ParseOutputFormat(cmdFlags.output)
			if err != nil {
				return err
			}

			blobService, err := app.newBlobService()
			if err != nil {
				return err
			}

			if format == formatter.OutputNames {
				return blobService.ListBlobs(cmd.Context(), func(blob storage.Blob) error {
					_, err := fmt.Fprintln(app.Out, blob.Name)
					return err
				})
			}

			var blobs []storage.Blob
			err = blobService.ListBlobs(cmd.Context(), func(blob storage.Blob) error {
				blobs = append(blobs, blob)
				return nil
			})
			if err != nil {
				return err
			}

			out, err := app.BlobFormatter.FormatBlobList(blobs, format)
			if err != nil {
				return err
			}
			fmt.Fprint(app.Out, out)
			return nil
		},
	}
	listCmd.Flags().StringVarP(&cmdFlags.output, flags.Output, flags.OutputShort, string(formatter.OutputNames), fmt.Sprintf("Output format (%s)", strings.Join(formatter.OutputFormats(), ", ")))

	return listCmd
}

func newUploadCmd(app *appContainer) *cobra.Command {
	cmdFlags := blobFlags{}

	uploadCmd := &cobra.Command{
		Use:   "upload <cible>",
		Short: "Upload a local file to the container",
		Long: `Uploads the local file to the configured container. The blob is named after the
file's base name. When general.overwrite is false and the blob exists, you are asked to confirm unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blobService, err := app.newBlobService()
			if err != nil {
				return err
			}

			blobName, err := blobService.Upload(cmd.Context(), args[0], cmdFlags.force)
			if err != nil {
				return fmt.Errorf("error uploading '%s': %w", args[0], err)
			}

			fmt.Fprintf(app.Out, "Uploaded '%s' as blob '%s'.\n", args[0], blobName)
			return nil
		},
	}
	uploadCmd.Flags().BoolVarP(&cmdFlags.force, flags.Force, flags.ForceShort, false, "Replace an existing blob without confirmation")

	return uploadCmd
}

func newDownloadCmd(app *appContainer) *cobra.Command {
	cmdFlags := blobFlags{}

	downloadCmd := &cobra.Command{
		Use:   "download <remote>",
		Short: "Download a blob into the restore directory",
		Long: `Downloads the named blob to <general.restoredir>/<remote>. When general.overwrite is false
and the local file exists, you are asked to confirm unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blobService, err := app.newBlobService()
			if err != nil {
				return err
			}

			destPath, err := blobService.Download(cmd.Context(), args[0], cmdFlags.force)
			if err != nil {
				return fmt.Errorf("error downloading '%s': %w", args[0], err)
			}

			fmt.Fprintf(app.Out, "Downloaded blob '%s' to '%s'.\n", args[0], destPath)
			return nil
		},
	}
	downloadCmd.Flags().BoolVarP(&cmdFlags.force, flags.Force, flags.ForceShort, false, "Replace an existing local file without confirmation")

	return downloadCmd
}
