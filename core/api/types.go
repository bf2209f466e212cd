package api

import (
	"encoding/json"
	"time"

	"storage-manager/core/utils"
)

// Entry types reported by the listing endpoint.
const (
	TypeBucket = "bucket"
	TypeFolder = "folder"
	TypeFile   = "file"
)

// Bucket is one element of the list_buckets response.
type Bucket struct {
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// BucketList is the list_buckets response body.
type BucketList struct {
	Buckets []Bucket `json:"buckets"`
}

// Item is one element of a folder listing. Path is relative to the listed folder.
type Item struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
	Size *int64 `json:"size,omitempty"`
}

// MoveRequest is the JSON body of move_file and copy_file. A Path ending
// in "/" names a folder.
type MoveRequest struct {
	Path    string `json:"path"`
	NewPath string `json:"new_path"`
}

// Result is the body returned by every mutating endpoint.
type Result struct {
	Message     string       `json:"message,omitempty"`
	Path        string       `json:"path,omitempty"`
	Warning     string       `json:"warning,omitempty"`
	Error       string       `json:"error,omitempty"`
	Detail      *ErrorDetail `json:"detail,omitempty"`
	DownloadURL string       `json:"download_url,omitempty"`

	// Raw is the undecoded response body.
	Raw string `json:"-"`
}

// Display returns the text a user should see for this response.
func (r *Result) Display() string {
	if r == nil {
		return ""
	}
	switch {
	case r.Message != "":
		return r.Message
	case r.Detail != nil && r.Detail.Message != "":
		return r.Detail.Message
	case r.Error != "":
		return r.Error
	}
	return r.Raw
}

// ErrorDetail is the structured "detail" field of bucket errors.
// It also accepts a plain string for compatibility with simpler servers.
type ErrorDetail struct {
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

// UnmarshalJSON decodes either a string or an object.
func (d *ErrorDetail) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		d.Message = s
		return nil
	}

	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	if v, ok := fields["message"]; ok && v != nil {
		d.Message = utils.ToString(v)
	}
	if v, ok := fields["error"]; ok && v != nil {
		d.Error = utils.ToString(v)
	}
	// Storage providers disagree on casing and on string vs number codes.
	for _, k := range []string{"status_code", "statusCode"} {
		if v, ok := fields[k]; ok && v != nil {
			d.StatusCode = utils.ToInt(v)
			break
		}
	}
	return nil
}
