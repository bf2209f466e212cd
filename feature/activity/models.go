package activity

import "time"

// Event describes one successful mutation of the object store.
type Event struct {
	Operation string
	Bucket    string
	Path      string
	Target    string
	RayID     string
}

// Entry is a persisted Event.
type Entry struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Operation string    `gorm:"column:operation;size:32;index" json:"operation"`
	Bucket    string    `gorm:"column:bucket;size:255;index" json:"bucket"`
	Path      string    `gorm:"column:path;size:1024" json:"path,omitempty"`
	Target    string    `gorm:"column:target;size:1024" json:"target,omitempty"`
	RayID     string    `gorm:"column:ray_id;size:64" json:"ray_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name.
func (Entry) TableName() string {
	return "storage_activity"
}
