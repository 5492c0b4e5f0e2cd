package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var archiveUpload string

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage persisted archives",
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List persisted archives",
	RunE:  runArchiveList,
}

var archiveShowCmd = &cobra.Command{
	Use:   "show [archive-id]",
	Short: "Print the data section of an archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveShow,
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete [archive-id]",
	Short: "Delete an archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveDelete,
}

func init() {
	archiveListCmd.Flags().StringVarP(&archiveUpload, "upload", "u", "", "only list archives of this upload")
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveDeleteCmd)
	rootCmd.AddCommand(archiveCmd)
}

func runArchiveList(cmd *cobra.Command, _ []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}

	archives, err := archiveService.List(cmd.Context(), archiveUpload)
	if err != nil {
		return fmt.Errorf("failed to list archives: %w", err)
	}
	if len(archives) == 0 {
		cmd.Println("No archives found.")
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	for i := range archives {
		a := &archives[i]
		cmd.Printf("%s  %s/%s  %s\n", a.ID, a.Upload, a.FileName, st.Muted.Render(a.SectionType))
	}
	return nil
}

func runArchiveShow(cmd *cobra.Command, args []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}

	archive, err := archiveService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get archive: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, archive.Data, "", "  "); err != nil {
		return fmt.Errorf("archive %s holds invalid JSON: %w", archive.ID, err)
	}
	cmd.Println(buf.String())
	return nil
}

func runArchiveDelete(cmd *cobra.Command, args []string) error {
	if archiveService == nil {
		return errors.New("archive service not configured")
	}

	if err := archiveService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete archive: %w", err)
	}
	cmd.Printf("Deleted archive %s\n", args[0])
	return nil
}
