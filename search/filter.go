package search

import (
	"strings"

	"github.com/bobinette/fileshelf"
)

func matches(name, lowered string) bool {
	return strings.Contains(strings.ToLower(name), lowered)
}

// Filter keeps the items whose name contains q, ignoring case. The order
// of items is kept. An empty q keeps everything.
func Filter[T any](items []T, q string, name func(T) string) []T {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return items
	}

	res := make([]T, 0, len(items))
	for _, item := range items {
		if matches(name(item), q) {
			res = append(res, item)
		}
	}
	return res
}

func FilterFiles(files []fileshelf.File, q string) []fileshelf.File {
	return Filter(files, q, func(f fileshelf.File) string { return f.Name })
}

func FilterFolders(folders []fileshelf.Folder, q string) []fileshelf.Folder {
	return Filter(folders, q, func(f fileshelf.Folder) string { return f.Name })
}
