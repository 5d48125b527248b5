package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/bobinette/fileshelf"
)

var (
	shareWith    int
	shareLevel   string
	shareExpires time.Duration
)

func init() {
	for _, cmd := range []*cobra.Command{&SharesCreateCommand, &SharesUpdateCommand} {
		cmd.Flags().IntVar(&shareWith, "with", 0, "user the resource is shared with, anyone with the link when unset")
		cmd.Flags().StringVar(&shareLevel, "level", "read", "permission level")
		cmd.Flags().DurationVar(&shareExpires, "expires", 0, "lifetime of the share, e.g. 72h")
	}
	SharesDownloadCommand.Flags().StringVar(&outDir, "out", "", "destination directory")

	SharesCommand.AddCommand(&SharesCreateCommand)
	SharesCommand.AddCommand(&SharesWithMeCommand)
	SharesCommand.AddCommand(&SharesByMeCommand)
	SharesCommand.AddCommand(&SharesShowCommand)
	SharesCommand.AddCommand(&SharesUpdateCommand)
	SharesCommand.AddCommand(&SharesDeleteCommand)
	SharesCommand.AddCommand(&SharesDownloadCommand)

	RootCmd.AddCommand(&SharesCommand)
}

func expiry() *time.Time {
	if shareExpires <= 0 {
		return nil
	}
	t := time.Now().Add(shareExpires).UTC()
	return &t
}

var SharesCommand = cobra.Command{
	Use:   "shares",
	Short: "Share files and folders with links",
	Long:  "Share files and folders with links",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var SharesCreateCommand = cobra.Command{
	Use:   "create <file|folder> <id>",
	Short: "Create a share link",
	Long:  "Create a share link",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		r := resourceArgs(args)
		req := fileshelf.ShareRequest{
			ResourceID:      r.ID,
			ResourceType:    r.Type,
			PermissionLevel: shareLevel,
			ExpiresAt:       expiry(),
		}
		if cmd.Flags().Changed("with") {
			req.SharedWith = &shareWith
		}

		created, err := sharedHooks.Create(cmd.Context(), req)
		if err != nil {
			logger.Fatal(err)
		}
		cmd.Printf("Share %d created, token %s\n", created.ID, created.ShareToken)
	},
}

var SharesWithMeCommand = cobra.Command{
	Use:   "with-me",
	Short: "List what is shared with you",
	Long:  "List what is shared with you",
	Run: func(cmd *cobra.Command, args []string) {
		list, err := sharedHooks.WithMe(cmd.Context())
		if err != nil {
			logger.Fatal(err)
		}
		printShares(cmd.OutOrStdout(), list)
	},
}

var SharesByMeCommand = cobra.Command{
	Use:   "by-me",
	Short: "List your shares",
	Long:  "List your shares",
	Run: func(cmd *cobra.Command, args []string) {
		list, err := sharedHooks.ByMe(cmd.Context())
		if err != nil {
			logger.Fatal(err)
		}
		printShares(cmd.OutOrStdout(), list)
	},
}

var SharesShowCommand = cobra.Command{
	Use:   "show <token>",
	Short: "Resolve a share token",
	Long:  "Resolve a share token. No session is needed.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		share, err := sharedHooks.ByToken(cmd.Context(), args[0])
		if err != nil {
			logger.Fatal(err)
		}
		printShares(cmd.OutOrStdout(), []fileshelf.SharedResource{share})
	},
}

var SharesUpdateCommand = cobra.Command{
	Use:   "update <id>",
	Short: "Change the recipient, level or expiry of a share",
	Long:  "Change the recipient, level or expiry of a share",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var patch fileshelf.SharePatch
		if cmd.Flags().Changed("with") {
			patch.SharedWith = &shareWith
		}
		if cmd.Flags().Changed("level") {
			patch.PermissionLevel = &shareLevel
		}
		if cmd.Flags().Changed("expires") {
			patch.ExpiresAt = expiry()
		}

		id := intArg(args, 0, "id")
		if err := sharedHooks.Update(cmd.Context(), id, patch); err != nil {
			logger.Fatal(err)
		}
		cmd.Printf("Share %d updated\n", id)
	},
}

var SharesDeleteCommand = cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a share",
	Long:  "Delete a share. Its link stops working right away.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := intArg(args, 0, "id")
		if !confirm(cmd, "Delete share %d?", id) {
			return
		}
		if err := sharedHooks.Delete(cmd.Context(), id); err != nil {
			logger.Fatal(err)
		}
		cmd.Println("Share deleted")
	},
}

var SharesDownloadCommand = cobra.Command{
	Use:   "download <token>",
	Short: "Download a shared file",
	Long:  "Download a shared file. No session is needed.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		payload, err := sharedHooks.Download(cmd.Context(), args[0])
		if err != nil {
			logger.Fatal(err)
		}
		save(cmd, payload)
	},
}
