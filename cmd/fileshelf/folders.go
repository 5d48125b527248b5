package main

import (
	"github.com/spf13/cobra"

	"github.com/bobinette/fileshelf"
)

func init() {
	FoldersListCommand.Flags().Int("parent", 0, "parent folder, the root when unset")
	FoldersCreateCommand.Flags().Int("parent", 0, "parent folder, the root when unset")
	FoldersDownloadCommand.Flags().StringVar(&outDir, "out", "", "destination directory")
	FoldersFavouritesCommand.Flags().Int("parent", 0, "navigate the favourites inside this folder")

	FoldersCommand.AddCommand(&FoldersListCommand)
	FoldersCommand.AddCommand(&FoldersTreeCommand)
	FoldersCommand.AddCommand(&FoldersCreateCommand)
	FoldersCommand.AddCommand(&FoldersRenameCommand)
	FoldersCommand.AddCommand(&FoldersDeleteCommand)
	FoldersCommand.AddCommand(&FoldersRestoreCommand)
	FoldersCommand.AddCommand(&FoldersPurgeCommand)
	FoldersCommand.AddCommand(&FoldersFavouriteCommand)
	FoldersCommand.AddCommand(&FoldersDownloadCommand)
	FoldersCommand.AddCommand(&FoldersTrashCommand)
	FoldersCommand.AddCommand(&FoldersFavouritesCommand)

	RootCmd.AddCommand(&FoldersCommand)
}

var FoldersCommand = cobra.Command{
	Use:   "folders",
	Short: "Browse and manage folders",
	Long:  "Browse and manage folders",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var FoldersListCommand = cobra.Command{
	Use:   "ls",
	Short: "List the sub-folders of a folder",
	Long:  "List the sub-folders of a folder, or the root folders when no parent is given",
	Run: func(cmd *cobra.Command, args []string) {
		var list []fileshelf.Folder
		var err error
		if parentID := optionalID(cmd, "parent"); parentID != nil {
			list, err = folderHooks.List(cmd.Context(), parentID)
		} else {
			list, err = folderHooks.Root(cmd.Context())
		}
		if err != nil {
			logger.Fatal(err)
		}
		printFolders(cmd.OutOrStdout(), list)
	},
}

var FoldersTreeCommand = cobra.Command{
	Use:   "tree",
	Short: "Print the whole folder hierarchy",
	Long:  "Print the whole folder hierarchy",
	Run: func(cmd *cobra.Command, args []string) {
		tree, err := folderHooks.Tree(cmd.Context())
		if err != nil {
			logger.Fatal(err)
		}
		printTree(cmd.OutOrStdout(), tree, 0)
	},
}

var FoldersCreateCommand = cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a folder",
	Long:  "Create a folder",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		folder, err := folderHooks.Create(cmd.Context(), args[0], optionalID(cmd, "parent"))
		if err != nil {
			logger.Fatal(err)
		}
		cmd.Printf("Folder %s created with id %d\n", folder.Name, folder.ID)
	},
}

var FoldersRenameCommand = cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a folder",
	Long:  "Rename a folder",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := folderHooks.Rename(cmd.Context(), intArg(args, 0, "id"), args[1]); err != nil {
			logger.Fatal(err)
		}
		cmd.Println("Folder renamed")
	},
}

var FoldersDeleteCommand = cobra.Command{
	Use:   "rm <id>",
	Short: "Move a folder to the trash",
	Long:  "Move a folder to the trash",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := intArg(args, 0, "id")
		if !confirm(cmd, "Move folder %d and its content to the trash?", id) {
			return
		}
		if err := folderHooks.Delete(cmd.Context(), id); err != nil {
			logger.Fatal(err)
		}
		cmd.Println("Folder moved to trash")
	},
}

var FoldersRestoreCommand = cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a folder from the trash",
	Long:  "Restore a folder from the trash",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := folderHooks.Restore(cmd.Context(), intArg(args, 0, "id")); err != nil {
			logger.Fatal(err)
		}
		cmd.Println("Folder restored")
	},
}

var FoldersPurgeCommand = cobra.Command{
	Use:   "purge <id>",
	Short: "Delete a trashed folder for good",
	Long:  "Delete a trashed folder for good",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := intArg(args, 0, "id")
		if !confirm(cmd, "Permanently delete folder %d and everything in it? This cannot be undone.", id) {
			return
		}
		if err := folderHooks.PermanentDelete(cmd.Context(), id); err != nil {
			logger.Fatal(err)
		}
		cmd.Println("Folder permanently deleted")
	},
}

var FoldersFavouriteCommand = cobra.Command{
	Use:   "fav <id>",
	Short: "Toggle the favourite flag of a folder",
	Long:  "Toggle the favourite flag of a folder",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fav, err := folderHooks.ToggleFavourite(cmd.Context(), intArg(args, 0, "id"))
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

var FoldersDownloadCommand = cobra.Command{
	Use:   "download <id>",
	Short: "Download a folder as a zip archive",
	Long:  "Download a folder as a zip archive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		payload, err := folderHooks.Download(cmd.Context(), intArg(args, 0, "id"))
		if err != nil {
			logger.Fatal(err)
		}
		save(cmd, payload)
	},
}

var FoldersTrashCommand = cobra.Command{
	Use:   "trash",
	Short: "List the trashed folders",
	Long:  "List the trashed folders",
	Run: func(cmd *cobra.Command, args []string) {
		list, err := folderHooks.Trash(cmd.Context())
		if err != nil {
			logger.Fatal(err)
		}
		printFolders(cmd.OutOrStdout(), list)
	},
}

var FoldersFavouritesCommand = cobra.Command{
	Use:   "favourites",
	Short: "List the favourite folders",
	Long:  "List the favourite folders, or navigate them inside a folder",
	Run: func(cmd *cobra.Command, args []string) {
		var list []fileshelf.Folder
		var err error
		if parentID := optionalID(cmd, "parent"); parentID != nil {
			list, err = folderHooks.FavouritesNavigation(cmd.Context(), parentID)
		} else {
			list, err = folderHooks.Favourites(cmd.Context())
		}
		if err != nil {
			logger.Fatal(err)
		}
		printFolders(cmd.OutOrStdout(), list)
	},
}
