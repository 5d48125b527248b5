package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients"
	"github.com/bobinette/fileshelf/download"
	"github.com/bobinette/fileshelf/upload"
)

var (
	allFiles  bool
	directory bool
	outDir    string
)

func init() {
	FilesListCommand.Flags().Int("folder", 0, "folder to list, the root when unset")
	FilesListCommand.Flags().BoolVar(&allFiles, "all", false, "list every file visible to you")
	FilesUploadCommand.Flags().Int("folder", 0, "destination folder, the root when unset")
	FilesUploadCommand.Flags().BoolVar(&directory, "dir", false, "upload a single directory and its content")
	FilesDownloadCommand.Flags().StringVar(&outDir, "out", "", "destination directory")
	FilesFavouritesCommand.Flags().Int("folder", 0, "navigate the favourites inside this folder")

	FilesCommand.AddCommand(&FilesListCommand)
	FilesCommand.AddCommand(&FilesUploadCommand)
	FilesCommand.AddCommand(&FilesDownloadCommand)
	FilesCommand.AddCommand(&FilesRenameCommand)
	FilesCommand.AddCommand(&FilesDeleteCommand)
	FilesCommand.AddCommand(&FilesRestoreCommand)
	FilesCommand.AddCommand(&FilesPurgeCommand)
	FilesCommand.AddCommand(&FilesFavouriteCommand)
	FilesCommand.AddCommand(&FilesTrashCommand)
	FilesCommand.AddCommand(&FilesFavouritesCommand)

	RootCmd.AddCommand(&FilesCommand)
}

var FilesCommand = cobra.Command{
	Use:   "files",
	Short: "List, upload and manage files",
	Long:  "List, upload and manage files",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var FilesListCommand = cobra.Command{
	Use:   "ls",
	Short: "List the files of a folder",
	Long:  "List the files of a folder, or of the root when no folder is given",
	Run: func(cmd *cobra.Command, args []string) {
		folderID := optionalID(cmd, "folder")

		var list []fileshelf.File
		var err error
		switch {
		case allFiles:
			list, err = fileHooks.List(cmd.Context(), nil)
		case folderID != nil:
			list, err = fileHooks.List(cmd.Context(), folderID)
		default:
			list, err = fileHooks.Root(cmd.Context())
		}
		if err != nil {
			logger.Fatal(err)
		}
		printFiles(cmd.OutOrStdout(), list, permissionSnapshot(cmd.Context()))
	},
}

var FilesUploadCommand = cobra.Command{
	Use:   "upload <path>...",
	Short: "Upload files, or a directory with --dir",
	Long:  "Upload files, or a directory with --dir. Directories keep their hierarchy.",
	Run: func(cmd *cobra.Command, args []string) {
		mode := upload.Files
		if directory {
			mode = upload.Directory
		}

		uploaded, err := uploader.Submit(cmd.Context(), upload.Plan{
			Mode:     mode,
			FolderID: optionalID(cmd, "folder"),
			Paths:    args,
		})
		if err != nil {
			logger.Fatal(err)
		}
		cmd.Printf("%d file(s) uploaded\n", len(uploaded))
		printFiles(cmd.OutOrStdout(), uploaded, nil)
	},
}

var FilesDownloadCommand = cobra.Command{
	Use:   "download <id>",
	Short: "Download a file",
	Long:  "Download a file. Existing files are never overwritten.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		payload, err := fileHooks.Download(cmd.Context(), intArg(args, 0, "id"))
		if err != nil {
			logger.Fatal(err)
		}
		save(cmd, payload)
	},
}

var FilesRenameCommand = cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a file",
	Long:  "Rename a file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := fileHooks.Rename(cmd.Context(), intArg(args, 0, "id"), args[1]); err != nil {
			logger.Fatal(err)
		}
		cmd.Println("File renamed")
	},
}

var FilesDeleteCommand = cobra.Command{
	Use:   "rm <id>",
	Short: "Move a file to the trash",
	Long:  "Move a file to the trash",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := intArg(args, 0, "id")
		if !confirm(cmd, "Move file %d to the trash?", id) {
			return
		}
		if err := fileHooks.Delete(cmd.Context(), id); err != nil {
			logger.Fatal(err)
		}
		cmd.Println("File moved to trash")
	},
}

var FilesRestoreCommand = cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a file from the trash",
	Long:  "Restore a file from the trash",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := fileHooks.Restore(cmd.Context(), intArg(args, 0, "id")); err != nil {
			logger.Fatal(err)
		}
		cmd.Println("File restored")
	},
}

var FilesPurgeCommand = cobra.Command{
	Use:   "purge <id>",
	Short: "Delete a trashed file for good",
	Long:  "Delete a trashed file for good",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := intArg(args, 0, "id")
		if !confirm(cmd, "Permanently delete file %d? This cannot be undone.", id) {
			return
		}
		if err := fileHooks.PermanentDelete(cmd.Context(), id); err != nil {
			logger.Fatal(err)
		}
		cmd.Println("File permanently deleted")
	},
}

var FilesFavouriteCommand = cobra.Command{
	Use:   "fav <id>",
	Short: "Toggle the favourite flag of a file",
	Long:  "Toggle the favourite flag of a file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fav, err := fileHooks.ToggleFavourite(cmd.Context(), intArg(args, 0, "id"))
		if err != nil {
			logger.Fatal(err)
		}
		if fav {
			cmd.Println("Added to favourites")
		} else {
			cmd.Println("Removed from favourites")
		}
	},
}

var FilesTrashCommand = cobra.Command{
	Use:   "trash",
	Short: "List the trashed files",
	Long:  "List the trashed files",
	Run: func(cmd *cobra.Command, args []string) {
		list, err := fileHooks.Trash(cmd.Context())
		if err != nil {
			logger.Fatal(err)
		}
		printFiles(cmd.OutOrStdout(), list, nil)
	},
}

var FilesFavouritesCommand = cobra.Command{
	Use:   "favourites",
	Short: "List the favourite files",
	Long:  "List the favourite files, or navigate them inside a folder",
	Run: func(cmd *cobra.Command, args []string) {
		var list []fileshelf.File
		var err error
		if folderID := optionalID(cmd, "folder"); folderID != nil {
			list, err = fileHooks.FavouritesNavigation(cmd.Context(), folderID)
		} else {
			list, err = fileHooks.Favourites(cmd.Context())
		}
		if err != nil {
			logger.Fatal(err)
		}
		printFiles(cmd.OutOrStdout(), list, permissionSnapshot(cmd.Context()))
	},
}

func save(cmd *cobra.Command, payload clients.Payload) {
	dir := outDir
	if dir == "" {
		dir = cfg.Download.Dir
	}
	path, size, err := download.Save(payload, dir)
	if err != nil {
		logger.Fatal(err)
	}
	cmd.Printf("Saved %s (%s)\n", path, humanize.Bytes(uint64(size)))
}
