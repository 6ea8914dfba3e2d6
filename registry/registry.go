// Package registry tracks completed downloads in a persistent local store so
// that finished clips can be listed and skipped on later runs.
package registry

import (
	"sort"
	"time"

	"github.com/metafates/gache"
	"github.com/virta-dl/virta/filesystem"
	"github.com/virta-dl/virta/media"
	"github.com/virta-dl/virta/where"
)

// cacher provides the disk-backed store of download records.
var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.Registry(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Record is one completed download.
type Record struct {
	Webpage    string `json:"webpage"`
	Title      string `json:"title"`
	OutputFile string `json:"output_file"`
	SavedAt    string `json:"saved_at"`
}

func (r *Record) String() string {
	if r.Title != "" {
		return r.Title + " -> " + r.OutputFile
	}
	return r.Webpage + " -> " + r.OutputFile
}

// Get returns the complete collection of download records, keyed by webpage.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// Add registers a completed download. Re-downloading the same clip replaces
// the earlier record.
func Add(clip *media.Clip, outputFile string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	saved[clip.Webpage] = &Record{
		Webpage:    clip.Webpage,
		Title:      clip.Title,
		OutputFile: outputFile,
		SavedAt:    time.Now().Format(time.RFC3339),
	}

	return cacher.Set(saved)
}

// Contains reports whether a clip's webpage has a download record.
func Contains(webpage string) (bool, error) {
	saved, err := Get()
	if err != nil {
		return false, err
	}

	_, ok := saved[webpage]
	return ok, nil
}

// List returns all records sorted by save time, newest first.
func List() ([]*Record, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(saved))
	for _, r := range saved {
		records = append(records, r)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].SavedAt > records[j].SavedAt
	})

	return records, nil
}
