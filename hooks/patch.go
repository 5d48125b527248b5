package hooks

import (
	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/query"
)

// Cached collections are shared with the callers that read them, so every
// patch builds new slices instead of editing them in place.

// snapshot remembers the values patched by an optimistic update.
type snapshot struct {
	cache *query.Cache
	keys  []query.Key
	old   []interface{}
}

func (s *snapshot) keep(key query.Key, old interface{}) {
	s.keys = append(s.keys, key)
	s.old = append(s.old, old)
}

func (s *snapshot) restore() {
	for i, key := range s.keys {
		s.cache.Replace(key, s.old[i])
	}
}

func withoutFile(files []fileshelf.File, id int) ([]fileshelf.File, bool) {
	res := make([]fileshelf.File, 0, len(files))
	found := false
	for _, f := range files {
		if f.ID == id {
			found = true
			continue
		}
		res = append(res, f)
	}
	return res, found
}

// removeFile drops file id from every cached file listing.
func removeFile(cache *query.Cache, id int) func() {
	s := &snapshot{cache: cache}
	query.PatchAll(cache, nil, func(key query.Key, files []fileshelf.File) []fileshelf.File {
		res, found := withoutFile(files, id)
		if !found {
			return files
		}
		s.keep(key, files)
		return res
	})
	return s.restore
}

func updateFiles(cache *query.Cache, id int, fn func(*fileshelf.File)) {
	query.PatchAll(cache, nil, func(_ query.Key, files []fileshelf.File) []fileshelf.File {
		idx := -1
		for i, f := range files {
			if f.ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return files
		}
		res := make([]fileshelf.File, len(files))
		copy(res, files)
		fn(&res[idx])
		return res
	})
}

func flipFileFavourite(cache *query.Cache, id int) func() {
	flip := func(f *fileshelf.File) { f.IsFavourite = !f.IsFavourite }
	updateFiles(cache, id, flip)
	return func() { updateFiles(cache, id, flip) }
}

func setFileFavourite(cache *query.Cache, id int, v bool) {
	updateFiles(cache, id, func(f *fileshelf.File) { f.IsFavourite = v })
}

// mapFolders applies fn to folder id wherever it appears in folders,
// children included. It returns folders itself when id is absent.
func mapFolders(folders []fileshelf.Folder, id int, fn func(*fileshelf.Folder)) ([]fileshelf.Folder, bool) {
	var res []fileshelf.Folder
	changed := false
	for i, f := range folders {
		next := f
		hit := false
		if f.ID == id {
			fn(&next)
			hit = true
		}
		if children, ok := mapFolders(f.Children, id, fn); ok {
			next.Children = children
			hit = true
		}
		if !hit {
			continue
		}
		if !changed {
			res = make([]fileshelf.Folder, len(folders))
			copy(res, folders)
			changed = true
		}
		res[i] = next
	}
	if !changed {
		return folders, false
	}
	return res, true
}

// filterFolders drops folder id, children included.
func filterFolders(folders []fileshelf.Folder, id int) ([]fileshelf.Folder, bool) {
	res := make([]fileshelf.Folder, 0, len(folders))
	changed := false
	for _, f := range folders {
		if f.ID == id {
			changed = true
			continue
		}
		if children, ok := filterFolders(f.Children, id); ok {
			f.Children = children
			changed = true
		}
		res = append(res, f)
	}
	if !changed {
		return folders, false
	}
	return res, true
}

func removeFolder(cache *query.Cache, id int) func() {
	s := &snapshot{cache: cache}
	query.PatchAll(cache, nil, func(key query.Key, folders []fileshelf.Folder) []fileshelf.Folder {
		res, changed := filterFolders(folders, id)
		if !changed {
			return folders
		}
		s.keep(key, folders)
		return res
	})
	return s.restore
}

func updateFolders(cache *query.Cache, id int, fn func(*fileshelf.Folder)) {
	query.PatchAll(cache, nil, func(_ query.Key, folders []fileshelf.Folder) []fileshelf.Folder {
		res, _ := mapFolders(folders, id, fn)
		return res
	})
	query.PatchAll(cache, FolderKey(id), func(_ query.Key, f fileshelf.Folder) fileshelf.Folder {
		fn(&f)
		return f
	})
}

func flipFolderFavourite(cache *query.Cache, id int) func() {
	flip := func(f *fileshelf.Folder) { f.IsFavourite = !f.IsFavourite }
	updateFolders(cache, id, flip)
	return func() { updateFolders(cache, id, flip) }
}

func setFolderFavourite(cache *query.Cache, id int, v bool) {
	updateFolders(cache, id, func(f *fileshelf.Folder) { f.IsFavourite = v })
}
