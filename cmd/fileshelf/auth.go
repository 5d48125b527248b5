package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/clients/auth"
)

var (
	password string
	role     string
	username string
)

func init() {
	LoginCommand.Flags().StringVar(&password, "password", "", "password, defaults to $FILESHELF_PASSWORD")

	UsersCreateCommand.Flags().StringVar(&password, "password", "", "password of the new user")
	UsersCreateCommand.Flags().StringVar(&role, "role", string(fileshelf.RoleUser), "role: user or super_admin")
	UsersEditCommand.Flags().StringVar(&username, "username", "", "new username")
	UsersEditCommand.Flags().StringVar(&password, "password", "", "new password")
	UsersEditCommand.Flags().StringVar(&role, "role", "", "new role")

	UsersCommand.AddCommand(&UsersListCommand)
	UsersCommand.AddCommand(&UsersCreateCommand)
	UsersCommand.AddCommand(&UsersEditCommand)
	UsersCommand.AddCommand(&UsersDeleteCommand)

	RootCmd.AddCommand(&LoginCommand)
	RootCmd.AddCommand(&LogoutCommand)
	RootCmd.AddCommand(&WhoamiCommand)
	RootCmd.AddCommand(&UsersCommand)
}

var LoginCommand = cobra.Command{
	Use:   "login <username>",
	Short: "Log in and keep the session for the next commands",
	Long:  "Log in and keep the session for the next commands",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pwd := password
		if pwd == "" {
			pwd = os.Getenv("FILESHELF_PASSWORD")
		}
		if pwd == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			pwd = strings.TrimSpace(line)
		}

		user, err := userHooks.Login(cmd.Context(), args[0], pwd)
		if err != nil {
			logger.Fatal(err)
		}
		cmd.Printf("Logged in as %s (%s)\n", user.Username, user.Role)
	},
}

var LogoutCommand = cobra.Command{
	Use:   "logout",
	Short: "Forget the current session",
	Long:  "Forget the current session",
	Run: func(cmd *cobra.Command, args []string) {
		if err := userHooks.Logout(); err != nil {
			logger.Fatal(err)
		}
		cmd.Println("Logged out")
	},
}

var WhoamiCommand = cobra.Command{
	Use:   "whoami",
	Short: "Print the user of the current session",
	Long:  "Print the user of the current session",
	Run: func(cmd *cobra.Command, args []string) {
		user, err := userHooks.Me()
		if err != nil {
			logger.Fatal(err)
		}
		cmd.Printf("%s (id %d, %s)\n", user.Username, user.ID, user.Role)
	},
}

var UsersCommand = cobra.Command{
	Use:   "users",
	Short: "Manage the users, super admins only",
	Long:  "Manage the users, super admins only",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var UsersListCommand = cobra.Command{
	Use:   "list",
	Short: "List all the users",
	Long:  "List all the users",
	Run: func(cmd *cobra.Command, args []string) {
		users, err := userHooks.List(cmd.Context())
		if err != nil {
			logger.Fatal(err)
		}
		printUsers(cmd.OutOrStdout(), users)
	},
}

var UsersCreateCommand = cobra.Command{
	Use:   "create <username>",
	Short: "Register a new user",
	Long:  "Register a new user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		user, err := userHooks.Register(cmd.Context(), auth.Registration{
			Username: args[0],
			Password: password,
			Role:     fileshelf.Role(role),
		})
		if err != nil {
			logger.Fatal(err)
		}
		cmd.Printf("User %s created with id %d\n", user.Username, user.ID)
	},
}

var UsersEditCommand = cobra.Command{
	Use:   "edit <id>",
	Short: "Update the username, password or role of a user",
	Long:  "Update the username, password or role of a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := intArg(args, 0, "id")

		var patch fileshelf.UserPatch
		if cmd.Flags().Changed("username") {
			patch.Username = &username
		}
		if cmd.Flags().Changed("password") {
			patch.Password = &password
		}
		if cmd.Flags().Changed("role") {
			r := fileshelf.Role(role)
			patch.Role = &r
		}

		if err := userHooks.Update(cmd.Context(), id, patch); err != nil {
			logger.Fatal(err)
		}
		cmd.Printf("User %d updated\n", id)
	},
}

var UsersDeleteCommand = cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Long:  "Delete a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := intArg(args, 0, "id")
		if !confirm(cmd, "Delete user %d?", id) {
			return
		}
		if err := userHooks.Delete(cmd.Context(), id); err != nil {
			logger.Fatal(err)
		}
		cmd.Printf("User %d deleted\n", id)
	},
}
