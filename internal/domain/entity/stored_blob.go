package entity

import "time"

// StoredBlob is a versioned JSON document persisted by the postgres BlobStore.
type StoredBlob struct {
	Key       string    `gorm:"type:varchar(255);primaryKey" json:"key"`
	Value     []byte    `gorm:"type:bytea;not null" json:"value"`
	Version   int64     `gorm:"not null" json:"version"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (StoredBlob) TableName() string {
	return "stored_blobs"
}
