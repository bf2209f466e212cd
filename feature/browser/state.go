package browser

import "strings"

// State is the navigation position: a bucket and a folder inside it.
// Folder is slash-separated and empty at the bucket root. It is only
// meaningful while Bucket is set.
type State struct {
	Bucket string
	Folder string
}

// InBucket reports whether a bucket is selected.
func (s State) InBucket() bool {
	return s.Bucket != ""
}

// Path renders the position as "/", "/<bucket>" or "/<bucket>/<folder>".
func (s State) Path() string {
	if !s.InBucket() {
		return "/"
	}
	if s.Folder == "" {
		return "/" + s.Bucket
	}
	return "/" + s.Bucket + "/" + s.Folder
}

// Join returns name prefixed with the current folder.
func (s State) Join(name string) string {
	if s.Folder == "" {
		return name
	}
	return s.Folder + "/" + name
}

func (s State) enterBucket(name string) State {
	return State{Bucket: name}
}

func (s State) enterFolder(name string) State {
	s.Folder = s.Join(strings.Trim(name, "/"))
	return s
}

// parent drops the last folder segment.
func (s State) parent() State {
	if i := strings.LastIndex(s.Folder, "/"); i >= 0 {
		s.Folder = s.Folder[:i]
	} else {
		s.Folder = ""
	}
	return s
}
