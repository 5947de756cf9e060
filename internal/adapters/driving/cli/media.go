package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/curata/internal/core/ports/driving"
)

var mediaBind driving.BindRequest

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Upload and check post media",
	Long: `Upload assets to object storage and bind them to posts.

Assets are stored under folder/name_<unix-time>.ext. An upload is refused
when folder/name.ext already exists in the bucket.`,
}

var mediaAttachCmd = &cobra.Command{
	Use:   "attach [index] [file]",
	Short: "Upload a file and bind it to an unpublished post",
	Args:  cobra.ExactArgs(2),
	RunE:  runMediaAttach,
}

var mediaCheckCmd = &cobra.Command{
	Use:   "check [bucket] [key]",
	Short: "Check whether an object exists",
	Args:  cobra.ExactArgs(2),
	RunE:  runMediaCheck,
}

var mediaValidateCmd = &cobra.Command{
	Use:   "validate [index]",
	Short: "Check that a post's media is still in storage",
	Args:  cobra.ExactArgs(1),
	RunE:  runMediaValidate,
}

func init() {
	mediaAttachCmd.Flags().StringVarP(&mediaBind.Bucket, "bucket", "b", "", "destination bucket (default storage.bucket)")
	mediaAttachCmd.Flags().StringVarP(&mediaBind.Folder, "folder", "f", "", "destination folder (default storage.folder)")
	mediaValidateCmd.Flags().BoolVarP(&postPublished, "published", "p", false, "use the published collection")

	mediaCmd.AddCommand(mediaAttachCmd)
	mediaCmd.AddCommand(mediaCheckCmd)
	mediaCmd.AddCommand(mediaValidateCmd)
	rootCmd.AddCommand(mediaCmd)
}

func runMediaAttach(cmd *cobra.Command, args []string) error {
	if mediaService == nil {
		return errNotConfigured("media")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	req := mediaBind
	req.AssetPath = args[1]

	cmd.Printf("Uploading %s...\n", req.AssetPath)
	post, err := mediaService.Attach(cmd.Context(), index, req)
	if err != nil {
		return fmt.Errorf("failed to attach media: %w", err)
	}
	cmd.Printf("File uploaded successfully: %s\n", post.MediaLocator)
	return nil
}

func runMediaCheck(cmd *cobra.Command, args []string) error {
	if mediaService == nil {
		return errNotConfigured("media")
	}

	exists, err := mediaService.CheckExists(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to check object: %w", err)
	}
	if exists {
		cmd.Printf("Exists: s3://%s/%s\n", args[0], args[1])
	} else {
		cmd.Printf("Not found: s3://%s/%s\n", args[0], args[1])
	}
	return nil
}

func runMediaValidate(cmd *cobra.Command, args []string) error {
	if mediaService == nil {
		return errNotConfigured("media")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	v, err := mediaService.Validate(cmd.Context(), selectedKind(), index)
	if err != nil {
		return fmt.Errorf("failed to validate media: %w", err)
	}
	if v.Exists {
		cmd.Printf("OK: %s\n", v.Locator)
	} else {
		cmd.Printf("Missing: %s (bucket %s, key %s)\n", v.Locator, v.Bucket, v.Key)
	}
	return nil
}
