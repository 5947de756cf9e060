package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/curata/internal/core/domain"
)

var (
	postPublished bool
	postJSON      bool
	postReadyOff  bool
	postFields    postFlags
)

// postFlags are the editable post fields. Only flags the operator set are applied.
type postFlags struct {
	title       string
	description string
	postType    string
	caption     string
	tag         string
	ready       bool
}

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage unpublished and published posts",
	Long:  `List, edit, tag, publish or delete posts in the unpublished and published collections.`,
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	Args:  cobra.NoArgs,
	RunE:  runPostList,
}

var postShowCmd = &cobra.Command{
	Use:   "show [index]",
	Short: "Show one post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostShow,
}

var postAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Append a post to the unpublished collection",
	Args:  cobra.NoArgs,
	RunE:  runPostAdd,
}

var postEditCmd = &cobra.Command{
	Use:   "edit [index]",
	Short: "Change fields of an unpublished post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostEdit,
}

var postSaveCmd = &cobra.Command{
	Use:   "save [index]",
	Short: "Update the post at index, or append when index is past the end",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostSave,
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete [index]",
	Short: "Delete a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostDelete,
}

var postPublishCmd = &cobra.Command{
	Use:   "publish [title]",
	Short: "Move an unpublished post to published",
	Long: `Moves the first unpublished post with this exact title to the published
collection. When several posts share the title, the first one is moved and
a warning is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runPostPublish,
}

var postTagCmd = &cobra.Command{
	Use:   "tag [index] [tag]",
	Short: "Set the tag of a post",
	Long:  `Sets the tag of a post. An empty tag stores "Uncategorised".`,
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runPostTag,
}

var postReadyCmd = &cobra.Command{
	Use:   "ready [index]",
	Short: "Mark an unpublished post ready to publish",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostReady,
}

func init() {
	for _, c := range []*cobra.Command{postListCmd, postShowCmd, postDeleteCmd, postTagCmd} {
		c.Flags().BoolVarP(&postPublished, "published", "p", false, "use the published collection")
	}
	postListCmd.Flags().BoolVar(&postJSON, "json", false, "output posts as JSON")
	postShowCmd.Flags().BoolVar(&postJSON, "json", false, "output the post as JSON")

	for _, c := range []*cobra.Command{postAddCmd, postEditCmd, postSaveCmd} {
		c.Flags().StringVar(&postFields.title, "title", "", "post title")
		c.Flags().StringVar(&postFields.description, "description", "", "post body")
		c.Flags().StringVar(&postFields.postType, "type", "", "post type")
		c.Flags().StringVar(&postFields.caption, "caption", "", "post caption")
		c.Flags().StringVar(&postFields.tag, "tag", "", "post tag")
		c.Flags().BoolVar(&postFields.ready, "ready", false, "ready to publish")
	}
	postReadyCmd.Flags().BoolVar(&postReadyOff, "off", false, "clear the ready flag instead")

	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postShowCmd)
	postCmd.AddCommand(postAddCmd)
	postCmd.AddCommand(postEditCmd)
	postCmd.AddCommand(postSaveCmd)
	postCmd.AddCommand(postDeleteCmd)
	postCmd.AddCommand(postPublishCmd)
	postCmd.AddCommand(postTagCmd)
	postCmd.AddCommand(postReadyCmd)
	rootCmd.AddCommand(postCmd)
}

func selectedKind() domain.CollectionKind {
	if postPublished {
		return domain.CollectionPublished
	}
	return domain.CollectionUnpublished
}

func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: index must be a number, got %q", domain.ErrInvalidInput, arg)
	}
	return i, nil
}

func runPostList(cmd *cobra.Command, _ []string) error {
	if lifecycleService == nil {
		return errNotConfigured("lifecycle")
	}

	kind := selectedKind()
	posts, err := lifecycleService.List(cmd.Context(), kind)
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	if postJSON {
		return printJSON(cmd, posts)
	}
	if len(posts) == 0 {
		cmd.Printf("No %s posts.\n", kind)
		return nil
	}

	cmd.Printf("%s posts:\n\n", capitalise(kind.String()))
	for i := range posts {
		ready := " "
		if posts[i].ReadyToPublish {
			ready = "*"
		}
		media := ""
		if posts[i].HasMedia() {
			media = " [media]"
		}
		cmd.Printf("  %s[%d] %s (%s)%s\n", ready, i, posts[i].Title, posts[i].DisplayTag(), media)
	}
	cmd.Printf("\nTotal: %d posts\n", len(posts))
	return nil
}

func runPostShow(cmd *cobra.Command, args []string) error {
	if lifecycleService == nil {
		return errNotConfigured("lifecycle")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	post, err := lifecycleService.Get(cmd.Context(), selectedKind(), index)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	if postJSON {
		return printJSON(cmd, post)
	}
	printPost(cmd, index, post)
	return nil
}

func runPostAdd(cmd *cobra.Command, _ []string) error {
	if lifecycleService == nil {
		return errNotConfigured("lifecycle")
	}

	post := applyPostFlags(cmd, domain.Post{
		Title: domain.DefaultPostTitle,
		Type:  domain.DefaultPostType,
	})
	if err := lifecycleService.Create(cmd.Context(), post); err != nil {
		return fmt.Errorf("failed to add post: %w", err)
	}
	cmd.Printf("Added post: %s\n", post.Title)
	return nil
}

func runPostEdit(cmd *cobra.Command, args []string) error {
	if lifecycleService == nil {
		return errNotConfigured("lifecycle")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	current, err := lifecycleService.Get(cmd.Context(), domain.CollectionUnpublished, index)
	if err != nil {
		return fmt.Errorf("failed to get post: %w", err)
	}
	post := applyPostFlags(cmd, *current)
	if err := lifecycleService.Update(cmd.Context(), index, post); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	cmd.Printf("Updated post %d: %s\n", index, post.Title)
	return nil
}

func runPostSave(cmd *cobra.Command, args []string) error {
	if lifecycleService == nil {
		return errNotConfigured("lifecycle")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	base := domain.Post{Title: domain.DefaultPostTitle, Type: domain.DefaultPostType}
	if current, err := lifecycleService.Get(cmd.Context(), domain.CollectionUnpublished, index); err == nil {
		base = *current
	}
	post := applyPostFlags(cmd, base)

	outcome, err := lifecycleService.Save(cmd.Context(), index, post)
	if err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	cmd.Printf("Post %s: %s\n", outcome, post.Title)
	return nil
}

func runPostDelete(cmd *cobra.Command, args []string) error {
	if lifecycleService == nil {
		return errNotConfigured("lifecycle")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	kind := selectedKind()
	if err := lifecycleService.Delete(cmd.Context(), kind, index); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	cmd.Printf("Deleted %s post %d.\n", kind, index)
	return nil
}

func runPostPublish(cmd *cobra.Command, args []string) error {
	if lifecycleService == nil {
		return errNotConfigured("lifecycle")
	}

	result, err := lifecycleService.Publish(cmd.Context(), args[0])
	if result == nil && err != nil {
		return fmt.Errorf("failed to publish: %w", err)
	}
	if result.Ambiguous() {
		cmd.Printf("Warning: %d unpublished posts are titled %q; published the first (index %d).\n",
			result.Matches, args[0], result.Index)
	}
	if err != nil {
		return fmt.Errorf("published %q but saving failed: %w", args[0], err)
	}
	cmd.Printf("Published: %s\n", result.Post.Title)
	return nil
}

func runPostTag(cmd *cobra.Command, args []string) error {
	if lifecycleService == nil {
		return errNotConfigured("lifecycle")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	tag := ""
	if len(args) > 1 {
		tag = args[1]
	}

	if tagService != nil && tag != "" {
		exists, err := tagService.Exists(cmd.Context(), tag)
		if err == nil && !exists {
			cmd.Printf("Warning: tag %q is not in the registry.\n", tag)
		}
	}

	if err := lifecycleService.SetTag(cmd.Context(), selectedKind(), index, tag); err != nil {
		return fmt.Errorf("failed to set tag: %w", err)
	}
	cmd.Printf("Tagged post %d: %s\n", index, domain.NormaliseTag(tag))
	return nil
}

func runPostReady(cmd *cobra.Command, args []string) error {
	if lifecycleService == nil {
		return errNotConfigured("lifecycle")
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	ready := !postReadyOff
	if err := lifecycleService.SetReady(cmd.Context(), index, ready); err != nil {
		return fmt.Errorf("failed to set ready flag: %w", err)
	}
	if ready {
		cmd.Printf("Post %d marked ready to publish.\n", index)
	} else {
		cmd.Printf("Post %d no longer ready to publish.\n", index)
	}
	return nil
}

func applyPostFlags(cmd *cobra.Command, post domain.Post) domain.Post {
	flags := cmd.Flags()
	if flags.Changed("title") {
		post.Title = postFields.title
	}
	if flags.Changed("description") {
		post.Description = postFields.description
	}
	if flags.Changed("type") {
		post.Type = postFields.postType
	}
	if flags.Changed("caption") {
		post.Caption = postFields.caption
	}
	if flags.Changed("tag") {
		post.Tag = postFields.tag
	}
	if flags.Changed("ready") {
		post.ReadyToPublish = postFields.ready
	}
	return post
}

func printPost(cmd *cobra.Command, index int, post *domain.Post) {
	cmd.Printf("Post %d: %s\n\n", index, post.Title)
	cmd.Printf("  Type:     %s\n", post.Type)
	cmd.Printf("  Tag:      %s\n", post.DisplayTag())
	cmd.Printf("  Caption:  %s\n", post.Caption)
	cmd.Printf("  Ready:    %t\n", post.ReadyToPublish)
	if post.HasMedia() {
		cmd.Printf("  Media:    %s\n", post.MediaLocator)
		cmd.Printf("  Bucket:   %s\n", post.BucketRef)
		cmd.Printf("  Folder:   %s\n", post.FolderRef)
	}
	if post.Description != "" {
		cmd.Printf("\n%s\n", post.Description)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
