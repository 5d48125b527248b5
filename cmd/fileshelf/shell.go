package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/errors"
	"github.com/bobinette/fileshelf/hooks"
	"github.com/bobinette/fileshelf/navigation"
	"github.com/bobinette/fileshelf/search"
)

const shellHelp = `Commands:
  ls                    list the current folder
  cd <id>               enter a folder
  back                  go back to the root of the view
  home                  show all files of the view
  view <name>           switch to dashboard, favourites, trash or users
  find [text]           filter the listing by name, no text clears the filter
  fav <file|folder> <id>
                        toggle a favourite
  perms <file|folder> <id>
                        show the permissions of a resource
  exit                  leave the shell`

func init() {
	RootCmd.AddCommand(&ShellCommand)
}

var ShellCommand = cobra.Command{
	Use:   "shell",
	Short: "Browse your files interactively",
	Long:  "Browse your files interactively",
	Run: func(cmd *cobra.Command, args []string) {
		sh := &shell{ctx: cmd.Context(), out: cmd.OutOrStdout()}
		defer bus.Subscribe(sh.handle)()

		if err := sh.run(cmd.InOrStdin()); err != nil {
			logger.Fatal(err)
		}
	},
}

type shell struct {
	ctx    context.Context
	out    io.Writer
	filter string
}

func (sh *shell) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(sh.out, "%s:%s> ", navigator.View(), navigator.Current())
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			return nil
		}
		if err := sh.exec(fields[0], fields[1:]); err != nil {
			fmt.Fprintln(sh.out, hooks.Describe(err))
		}
	}
}

func (sh *shell) exec(name string, args []string) error {
	switch name {
	case "help":
		fmt.Fprintln(sh.out, shellHelp)
	case "ls":
		return sh.list()
	case "cd":
		if len(args) != 1 {
			return usage("usage: cd <id>")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return usage(fmt.Sprintf("invalid folder id %q", args[0]))
		}
		navigator.Select(id)
	case "back":
		navigator.Back()
	case "home":
		navigator.AllFiles()
	case "view":
		if len(args) != 1 {
			return usage("usage: view <name>")
		}
		v, err := navigation.ParseView(args[0])
		if err != nil {
			return err
		}
		navigator.SwitchView(v)
	case "find":
		sh.filter = strings.Join(args, " ")
		return sh.list()
	case "fav":
		r, err := parseResource(args)
		if err != nil {
			return err
		}
		if r.Type == fileshelf.ResourceFolder {
			_, err = folderHooks.ToggleFavourite(sh.ctx, r.ID)
		} else {
			_, err = fileHooks.ToggleFavourite(sh.ctx, r.ID)
		}
		return err
	case "perms":
		r, err := parseResource(args)
		if err != nil {
			return err
		}
		navigator.RequestPermissions(r)
	default:
		return usage(fmt.Sprintf("unknown command %q, try help", name))
	}
	return nil
}

func usage(msg string) error {
	return errors.New(msg, errors.BadRequest())
}

func parseResource(args []string) (fileshelf.Resource, error) {
	if len(args) != 2 {
		return fileshelf.Resource{}, usage("expected <file|folder> <id>")
	}
	t, err := fileshelf.ParseResourceType(args[0])
	if err != nil {
		return fileshelf.Resource{}, err
	}
	id, err := strconv.Atoi(args[1])
	if err != nil {
		return fileshelf.Resource{}, usage(fmt.Sprintf("invalid id %q", args[1]))
	}
	return fileshelf.Resource{Type: t, ID: id}, nil
}

// handle reacts to the navigation events: a new location clears the filter
// and lists its content.
func (sh *shell) handle(ev navigation.Event) {
	switch ev := ev.(type) {
	case navigation.FolderSelected, navigation.ViewChanged:
		sh.filter = ""
		if err := sh.list(); err != nil {
			fmt.Fprintln(sh.out, hooks.Describe(err))
		}
	case navigation.PermissionRequested:
		perms, err := permissionHooks.ForResource(sh.ctx, ev.Resource)
		if err != nil {
			fmt.Fprintln(sh.out, hooks.Describe(err))
			return
		}
		printPermissions(sh.out, perms)
	case navigation.SessionEnded:
		fmt.Fprintln(sh.out, "Session ended, log in again.")
	}
}

func (sh *shell) list() error {
	folderID := navigator.Current().FolderID

	var folders []fileshelf.Folder
	var files []fileshelf.File
	var err error
	switch navigator.View() {
	case navigation.Users:
		users, err := userHooks.List(sh.ctx)
		if err != nil {
			return err
		}
		printUsers(sh.out, search.Filter(users, sh.filter, func(u fileshelf.User) string { return u.Username }))
		return nil
	case navigation.Trash:
		if folders, err = folderHooks.Trash(sh.ctx); err == nil {
			files, err = fileHooks.Trash(sh.ctx)
		}
	case navigation.Favourites:
		if folderID == nil {
			if folders, err = folderHooks.Favourites(sh.ctx); err == nil {
				files, err = fileHooks.Favourites(sh.ctx)
			}
		} else if folders, err = folderHooks.FavouritesNavigation(sh.ctx, folderID); err == nil {
			files, err = fileHooks.FavouritesNavigation(sh.ctx, folderID)
		}
	default:
		if folderID == nil {
			if folders, err = folderHooks.Root(sh.ctx); err == nil {
				files, err = fileHooks.Root(sh.ctx)
			}
		} else if folders, err = folderHooks.List(sh.ctx, folderID); err == nil {
			files, err = fileHooks.List(sh.ctx, folderID)
		}
	}
	if err != nil {
		return err
	}

	printFolders(sh.out, search.FilterFolders(folders, sh.filter))
	printFiles(sh.out, search.FilterFiles(files, sh.filter), permissionSnapshot(sh.ctx))
	return nil
}
