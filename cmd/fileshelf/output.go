package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/access"
)

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func star(fav bool) string {
	if fav {
		return "*"
	}
	return ""
}

func when(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.Time(t)
}

func parent(id *int) string {
	if id == nil {
		return "root"
	}
	return strconv.Itoa(*id)
}

// printFiles lists files. The download column is resolved locally from the
// permissions of the current user, when known.
func printFiles(w io.Writer, list []fileshelf.File, perms access.Snapshot) {
	user, _ := sess.User()

	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tTYPE\tFOLDER\tFAV\tDOWNLOAD\tCREATED")
	for _, f := range list {
		dl := "no"
		if access.CanDownload(user, f, perms) {
			dl = "yes"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			f.ID, f.Name, humanize.Bytes(uint64(f.Size)), f.MimeType, parent(f.FolderID), star(f.IsFavourite), dl, when(f.CreatedAt))
	}
	tw.Flush()
}

func printFolders(w io.Writer, list []fileshelf.Folder) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tNAME\tPARENT\tFAV\tCREATED")
	for _, f := range list {
		fmt.Fprintf(tw, "%d\t%s/\t%s\t%s\t%s\n", f.ID, f.Name, parent(f.ParentID), star(f.IsFavourite), when(f.CreatedAt))
	}
	tw.Flush()
}

func printTree(w io.Writer, list []fileshelf.Folder, depth int) {
	for _, f := range list {
		fmt.Fprintf(w, "%s%s/ (%d) %s\n", strings.Repeat("  ", depth), f.Name, f.ID, star(f.IsFavourite))
		printTree(w, f.Children, depth+1)
	}
}

func printUsers(w io.Writer, list []fileshelf.User) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tUSERNAME\tROLE")
	for _, u := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", u.ID, u.Username, u.Role)
	}
	tw.Flush()
}

func printPermissions(w io.Writer, list []fileshelf.Permission) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tUSER\tRESOURCE\tREAD\tDOWNLOAD")
	for _, p := range list {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%t\t%t\n", p.ID, p.UserID, p.Resource(), p.CanRead, p.CanDownload)
	}
	tw.Flush()
}

func printShares(w io.Writer, list []fileshelf.SharedResource) {
	tw := table(w)
	fmt.Fprintln(tw, "ID\tRESOURCE\tBY\tWITH\tLEVEL\tEXPIRES\tTOKEN")
	for _, s := range list {
		with, expires := "anyone", "never"
		if s.SharedWith != nil {
			with = strconv.Itoa(*s.SharedWith)
		}
		if s.ExpiresAt != nil {
			expires = humanize.Time(*s.ExpiresAt)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n", s.ID, s.Resource(), s.SharedBy, with, s.PermissionLevel, expires, s.ShareToken)
	}
	tw.Flush()
}

func intArg(args []string, i int, name string) int {
	if len(args) <= i {
		logger.Fatalf("missing argument: %s", name)
	}
	v, err := strconv.Atoi(args[i])
	if err != nil {
		logger.Fatalf("%s should be an integer, got %q", name, args[i])
	}
	return v
}

// optionalID reads an int flag, nil when the flag was not set.
func optionalID(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		logger.Fatal(err)
	}
	return &v
}

func resourceArgs(args []string) fileshelf.Resource {
	if len(args) < 2 {
		logger.Fatal("expected a resource: <file|folder> <id>")
	}
	t, err := fileshelf.ParseResourceType(args[0])
	if err != nil {
		logger.Fatal(err)
	}
	return fileshelf.Resource{Type: t, ID: intArg(args, 1, "id")}
}

// confirm asks a yes/no question on the command input, unless --yes is set.
func confirm(cmd *cobra.Command, format string, args ...interface{}) bool {
	if yes {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), format+" [y/N] ", args...)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
	return false
}

// permissionSnapshot returns the permission rows of the current user. A
// failure only hides the download column, it does not abort the command.
func permissionSnapshot(ctx context.Context) access.Snapshot {
	perms, err := permissionHooks.Mine(ctx)
	if err != nil {
		logger.Debugf("could not load permissions: %v", err)
		return nil
	}
	return access.Snapshot(perms)
}
