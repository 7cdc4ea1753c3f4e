package po

// Video 视频记录持久化对象
type Video struct {
	BaseModel
	ID               string  `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	OriginalFilename string  `gorm:"column:original_filename;type:varchar(255)" json:"original_filename"`
	StorageKey       string  `gorm:"column:storage_key;type:varchar(512)" json:"storage_key"`
	StorageURL       string  `gorm:"column:storage_url;type:varchar(1024)" json:"storage_url"`
	ThumbnailURL     string  `gorm:"column:thumbnail_url;type:varchar(1024)" json:"thumbnail_url"`
	Duration         float64 `gorm:"column:duration;type:double" json:"duration"`
	Status           string  `gorm:"column:status;type:varchar(20);index" json:"status"` // uploaded, trimmed, bgm_added, subtitled, failed
}

// TableName 指定表名
func (Video) TableName() string {
	return "videos"
}
