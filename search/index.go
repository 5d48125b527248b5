// Package search finds files and folders by name in what the client has
// already fetched.
package search

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search/query"

	"github.com/bobinette/fileshelf"
	"github.com/bobinette/fileshelf/errors"
)

const rootTerm = "root"

// Entry is an indexed file or folder.
type Entry struct {
	Resource fileshelf.Resource
	Name     string
	Parent   *int
}

// Index is an in-memory bleve index over entry names. Names are indexed
// lowercased with the keyword analyzer so that a wildcard query matches
// any substring.
type Index struct {
	index bleve.Index

	mu      sync.RWMutex
	entries map[string]Entry
}

func NewIndex() (*Index, error) {
	index, err := bleve.NewMemOnly(indexMapping())
	if err != nil {
		return nil, errors.New("could not create search index", errors.WithCause(err))
	}
	return &Index{index: index, entries: make(map[string]Entry)}, nil
}

func indexMapping() mapping.IndexMapping {
	field := bleve.NewTextFieldMapping()
	field.Analyzer = keyword.Name

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("name", field)
	doc.AddFieldMappingsAt("type", field)
	doc.AddFieldMappingsAt("parent", field)

	m := bleve.NewIndexMapping()
	m.DefaultAnalyzer = keyword.Name
	m.DefaultMapping = doc
	return m
}

func (idx *Index) Close() error {
	return idx.index.Close()
}

// AddFiles indexes files, replacing previous versions.
func (idx *Index) AddFiles(files []fileshelf.File) error {
	entries := make([]Entry, len(files))
	for i, f := range files {
		entries[i] = Entry{Resource: f.Resource(), Name: f.Name, Parent: f.FolderID}
	}
	return idx.add(entries)
}

// AddFolders indexes folders and, for tree listings, their children.
func (idx *Index) AddFolders(folders []fileshelf.Folder) error {
	var entries []Entry
	var walk func([]fileshelf.Folder)
	walk = func(folders []fileshelf.Folder) {
		for _, f := range folders {
			entries = append(entries, Entry{Resource: f.Resource(), Name: f.Name, Parent: f.ParentID})
			walk(f.Children)
		}
	}
	walk(folders)
	return idx.add(entries)
}

func (idx *Index) add(entries []Entry) error {
	batch := idx.index.NewBatch()
	for _, e := range entries {
		err := batch.Index(e.Resource.String(), map[string]interface{}{
			"name":   strings.ToLower(e.Name),
			"type":   e.Resource.Type.String(),
			"parent": parentTerm(e.Parent),
		})
		if err != nil {
			return errors.New("could not index "+e.Resource.String(), errors.WithCause(err))
		}
	}
	if err := idx.index.Batch(batch); err != nil {
		return errors.New("could not index entries", errors.WithCause(err))
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, e := range entries {
		idx.entries[e.Resource.String()] = e
	}
	return nil
}

// Remove drops r from the index. Removing an unknown resource is not an
// error.
func (idx *Index) Remove(r fileshelf.Resource) error {
	if err := idx.index.Delete(r.String()); err != nil {
		return errors.New("could not remove "+r.String(), errors.WithCause(err))
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	delete(idx.entries, r.String())
	return nil
}

func parentTerm(parent *int) string {
	if parent == nil {
		return rootTerm
	}
	return strconv.Itoa(*parent)
}

// Query describes a search. InFolder restricts the results to the direct
// children of Folder, nil being the root.
type Query struct {
	Text     string
	InFolder bool
	Folder   *int
	Type     fileshelf.ResourceType
}

// Search returns the entries whose name contains q.Text, ignoring case.
// Folders come first, then entries are sorted by name.
func (idx *Index) Search(q Query) ([]Entry, error) {
	count, err := idx.index.DocCount()
	if err != nil {
		return nil, errors.New("could not count indexed entries", errors.WithCause(err))
	}
	if count == 0 {
		return nil, nil
	}

	text := strings.ToLower(strings.TrimSpace(q.Text))
	qs := []query.Query{query.NewMatchAllQuery()}
	if text != "" {
		wq := query.NewWildcardQuery("*" + text + "*")
		wq.SetField("name")
		qs = append(qs, wq)
	}
	if q.InFolder {
		qs = append(qs, termQuery(parentTerm(q.Folder), "parent"))
	}
	if q.Type.Valid() {
		qs = append(qs, termQuery(q.Type.String(), "type"))
	}

	req := bleve.NewSearchRequest(query.NewConjunctionQuery(qs))
	req.Size = int(count)
	res, err := idx.index.Search(req)
	if err != nil {
		return nil, errors.New("search failed", errors.WithCause(err))
	}

	idx.mu.RLock()
	entries := make([]Entry, 0, len(res.Hits))
	for _, hit := range res.Hits {
		e, ok := idx.entries[hit.ID]
		// Wildcards in the text are interpreted by bleve, the final check
		// keeps the match a plain substring.
		if ok && matches(e.Name, text) {
			entries = append(entries, e)
		}
	}
	idx.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Resource.Type != b.Resource.Type {
			return a.Resource.Type == fileshelf.ResourceFolder
		}
		if an, bn := strings.ToLower(a.Name), strings.ToLower(b.Name); an != bn {
			return an < bn
		}
		return a.Resource.ID < b.Resource.ID
	})
	return entries, nil
}

func termQuery(term, field string) query.Query {
	q := query.NewTermQuery(term)
	q.SetField(field)
	return q
}
