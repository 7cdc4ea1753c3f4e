package vo

// VideoStatus 视频处理状态
//
// The status always names the last stage whose artifact was durably
// stored; "failed" is terminal and distinguishable from a stage that
// was never attempted.
type VideoStatus string

const (
	// StatusUploaded 已上传
	StatusUploaded VideoStatus = "uploaded"
	// StatusTrimmed 已剪辑
	StatusTrimmed VideoStatus = "trimmed"
	// StatusBgmAdded 已合成背景音乐
	StatusBgmAdded VideoStatus = "bgm_added"
	// StatusSubtitled 已叠加字幕
	StatusSubtitled VideoStatus = "subtitled"
	// StatusFailed 处理失败（终态）
	StatusFailed VideoStatus = "failed"
)

// IsValid 检查状态是否有效
func (s VideoStatus) IsValid() bool {
	switch s {
	case StatusUploaded, StatusTrimmed, StatusBgmAdded, StatusSubtitled, StatusFailed:
		return true
	default:
		return false
	}
}

// String 返回状态字符串
func (s VideoStatus) String() string {
	return string(s)
}

// IsFinalStatus 检查是否为最终状态
func (s VideoStatus) IsFinalStatus() bool {
	return s == StatusFailed
}

// CanTransitionTo 检查是否可以转换到目标状态
func (s VideoStatus) CanTransitionTo(target VideoStatus) bool {
	if !s.IsValid() || !target.IsValid() {
		return false
	}
	if s == StatusFailed {
		return false
	}
	// uploaded is the ingest state and never re-entered; any editing
	// stage may be re-run in any order until a failure occurs.
	switch target {
	case StatusTrimmed, StatusBgmAdded, StatusSubtitled, StatusFailed:
		return true
	default:
		return false
	}
}
