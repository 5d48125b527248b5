package main

import (
	"github.com/spf13/cobra"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/navigation"
)

var (
	grantUser     int
	grantRead     bool
	grantDownload bool
)

func init() {
	PermsAssignCommand.Flags().IntVar(&grantUser, "user", 0, "user receiving the permission")
	PermsAssignCommand.Flags().BoolVar(&grantRead, "read", true, "grant read access")
	PermsAssignCommand.Flags().BoolVar(&grantDownload, "download", false, "grant download access")
	PermsAssignCommand.MarkFlagRequired("user")

	PermsCommand.AddCommand(&PermsAssignCommand)
	PermsCommand.AddCommand(&PermsListCommand)
	PermsCommand.AddCommand(&PermsMineCommand)
	PermsCommand.AddCommand(&PermsRemoveCommand)

	RootCmd.AddCommand(&PermsCommand)
}

var PermsCommand = cobra.Command{
	Use:   "perms",
	Short: "Grant and revoke access to files and folders",
	Long:  "Grant and revoke access to files and folders",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var PermsAssignCommand = cobra.Command{
	Use:   "assign <file|folder> <id>",
	Short: "Grant a user access to a resource",
	Long:  "Grant a user access to a resource. Folder grants apply to their direct content.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		r := resourceArgs(args)
		res, err := permissionHooks.Assign(cmd.Context(), fileshelf.Grant{
			UserID:       grantUser,
			ResourceID:   r.ID,
			ResourceType: r.Type,
			Capabilities: fileshelf.Capabilities{
				CanRead:     grantRead,
				CanDownload: grantDownload,
			},
		})
		if err != nil {
			logger.Fatal(err)
		}
		cmd.Printf("%s (permission %d)\n", res.Message, res.ID)
	},
}

var PermsListCommand = cobra.Command{
	Use:   "list <file|folder> <id>",
	Short: "List the permissions granted on a resource",
	Long:  "List the permissions granted on a resource",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		unsubscribe := bus.Subscribe(func(ev navigation.Event) {
			req, ok := ev.(navigation.PermissionRequested)
			if !ok {
				return
			}
			perms, err := permissionHooks.ForResource(cmd.Context(), req.Resource)
			if err != nil {
				logger.Fatal(err)
			}
			printPermissions(cmd.OutOrStdout(), perms)
		})
		defer unsubscribe()

		navigator.RequestPermissions(resourceArgs(args))
	},
}

var PermsMineCommand = cobra.Command{
	Use:   "mine",
	Short: "List the permissions granted to you",
	Long:  "List the permissions granted to you",
	Run: func(cmd *cobra.Command, args []string) {
		perms, err := permissionHooks.Mine(cmd.Context())
		if err != nil {
			logger.Fatal(err)
		}
		printPermissions(cmd.OutOrStdout(), perms)
	},
}

var PermsRemoveCommand = cobra.Command{
	Use:   "rm <permission id> [<file|folder> <id>]",
	Short: "Revoke a permission",
	Long:  "Revoke a permission. The resource, when given, scopes the cache invalidation.",
	Args:  cobra.RangeArgs(1, 3),
	Run: func(cmd *cobra.Command, args []string) {
		id := intArg(args, 0, "permission id")

		var r fileshelf.Resource
		if len(args) > 1 {
			r = resourceArgs(args[1:])
		}
		if !confirm(cmd, "Revoke permission %d?", id) {
			return
		}
		if err := permissionHooks.Remove(cmd.Context(), id, r); err != nil {
			logger.Fatal(err)
		}
		cmd.Println("Permission removed")
	},
}
