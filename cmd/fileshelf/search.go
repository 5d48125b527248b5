package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/search"
)

var searchType string

func init() {
	SearchCommand.Flags().Int("folder", 0, "only search the direct content of this folder")
	SearchCommand.Flags().StringVar(&searchType, "type", "", "restrict to file or folder")

	RootCmd.AddCommand(&SearchCommand)
}

var SearchCommand = cobra.Command{
	Use:   "search <query>",
	Short: "Find files and folders by name",
	Long:  "Find files and folders whose name contains the query, ignoring case",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		q := search.Query{Text: args[0]}
		if folderID := optionalID(cmd, "folder"); folderID != nil {
			q.InFolder = true
			q.Folder = folderID
		}
		if searchType != "" {
			t, err := fileshelf.ParseResourceType(searchType)
			if err != nil {
				logger.Fatal(err)
			}
			q.Type = t
		}

		index, err := search.NewIndex()
		if err != nil {
			logger.Fatal(err)
		}
		defer index.Close()

		tree, err := folderHooks.Tree(cmd.Context())
		if err != nil {
			logger.Fatal(err)
		}
		all, err := fileHooks.List(cmd.Context(), nil)
		if err != nil {
			logger.Fatal(err)
		}
		if err := index.AddFolders(tree); err != nil {
			logger.Fatal(err)
		}
		if err := index.AddFiles(all); err != nil {
			logger.Fatal(err)
		}

		entries, err := index.Search(q)
		if err != nil {
			logger.Fatal(err)
		}

		tw := table(cmd.OutOrStdout())
		fmt.Fprintln(tw, "TYPE\tID\tNAME\tPARENT")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", e.Resource.Type, e.Resource.ID, e.Name, parent(e.Parent))
		}
		tw.Flush()
	},
}
