package browser

import "storage-manager/core/api"

// Kind tags an Entry.
type Kind string

const (
	KindBucket Kind = api.TypeBucket
	KindFolder Kind = api.TypeFolder
	KindFile   Kind = api.TypeFile
)

// Entry is one listed bucket, folder or file.
type Entry struct {
	Name string
	Kind Kind
	// Path is relative to the bucket root. Empty for buckets.
	Path string
	// Size is known for files only.
	Size *int64
}

func bucketEntries(buckets []api.Bucket) []Entry {
	entries := make([]Entry, 0, len(buckets))
	for _, b := range buckets {
		entries = append(entries, Entry{Name: b.Name, Kind: KindBucket})
	}
	return entries
}

// folderEntries converts a listing of state's folder. Paths are prefixed with the folder.
func folderEntries(state State, items []api.Item) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		kind := KindFile
		if it.Type == api.TypeFolder {
			kind = KindFolder
		}
		entries = append(entries, Entry{
			Name: it.Name,
			Kind: kind,
			Path: state.Join(it.Name),
			Size: it.Size,
		})
	}
	return entries
}
