package po

// BgmTrack 背景音乐曲目持久化对象
type BgmTrack struct {
	BaseModel
	ID         string  `gorm:"column:id;type:varchar(36);primaryKey" json:"id"`
	Title      string  `gorm:"column:title;type:varchar(255)" json:"title"`
	StorageKey string  `gorm:"column:storage_key;type:varchar(512)" json:"storage_key"`
	StorageURL string  `gorm:"column:storage_url;type:varchar(1024)" json:"storage_url"`
	SourceURL  string  `gorm:"column:source_url;type:varchar(1024)" json:"source_url"`
	Duration   float64 `gorm:"column:duration;type:double" json:"duration"`
}

// TableName 指定表名
func (BgmTrack) TableName() string {
	return "bgm_tracks"
}
