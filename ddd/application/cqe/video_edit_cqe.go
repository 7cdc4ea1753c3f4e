package cqe

import (
	"video-edit-service/ddd/domain/service"
	"video-edit-service/ddd/domain/vo"
	"video-edit-service/pkg/errno"
)

// TrimReq 剪辑请求
type TrimReq struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	// Mode overrides the configured trim mode: "reencode" or "copy".
	Mode string `json:"mode,omitempty"`
}

func (req *TrimReq) Validate() error {
	spec := req.ToSpec()
	if spec.Mode == "" {
		// The configured default applies later; any mode passes here.
		spec.Mode = vo.TrimModeReencode
	}
	return spec.Validate()
}

// ToSpec 转换为领域剪辑规格
func (req *TrimReq) ToSpec() vo.TrimSpec {
	return vo.TrimSpec{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Mode:      vo.TrimMode(req.Mode),
	}
}

// BgmMixReq 背景音乐混音请求
type BgmMixReq struct {
	BgmID string `json:"bgm_id" binding:"required"`
	// Zero gains select the configured defaults.
	PrimaryGain float64 `json:"primary_gain"`
	BgmGain     float64 `json:"bgm_gain"`
}

func (req *BgmMixReq) Validate() error {
	if req.BgmID == "" {
		return errno.ErrMissingParam.Wrapf("bgm_id is required")
	}
	return nil
}

// ToSelection 转换为领域混音选择
func (req *BgmMixReq) ToSelection(defaultPrimary, defaultBgm float64) service.BgmSelection {
	primary, bgm := req.PrimaryGain, req.BgmGain
	if primary == 0 {
		primary = defaultPrimary
	}
	if bgm == 0 {
		bgm = defaultBgm
	}
	return service.BgmSelection{
		TrackID: req.BgmID,
		Spec:    vo.MixSpec{PrimaryGain: primary, BgmGain: bgm},
	}
}

// CueStyleReq 字幕样式参数；零值字段回退到默认样式
type CueStyleReq struct {
	FontName   string  `json:"font_name,omitempty"`
	FontSize   int     `json:"font_size,omitempty"`
	FontColor  string  `json:"font_color,omitempty"`
	X          string  `json:"x,omitempty"`
	Y          string  `json:"y,omitempty"`
	BoxColor   string  `json:"box_color,omitempty"`
	BoxOpacity float64 `json:"box_opacity,omitempty"`
}

func (req *CueStyleReq) toStyle() vo.CueStyle {
	return vo.CueStyle{
		FontName:   req.FontName,
		FontSize:   req.FontSize,
		FontColor:  req.FontColor,
		X:          req.X,
		Y:          req.Y,
		BoxColor:   req.BoxColor,
		BoxOpacity: req.BoxOpacity,
	}
}

// SubtitleCueReq 单条字幕请求
type SubtitleCueReq struct {
	Text      string       `json:"text" binding:"required"`
	StartTime float64      `json:"start_time"`
	EndTime   float64      `json:"end_time"`
	Style     *CueStyleReq `json:"style,omitempty"`
}

// SubtitleReq 字幕叠加请求
type SubtitleReq struct {
	Cues    []SubtitleCueReq `json:"cues" binding:"required"`
	Default *CueStyleReq     `json:"default_style,omitempty"`
}

func (req *SubtitleReq) Validate() error {
	if len(req.Cues) == 0 {
		return errno.ErrMissingParam.Wrapf("cues are required")
	}
	track := req.ToTrack()
	return track.Validate()
}

// ToTrack 转换为领域字幕轨
func (req *SubtitleReq) ToTrack() vo.SubtitleTrack {
	track := vo.SubtitleTrack{
		Cues: make([]vo.SubtitleCue, 0, len(req.Cues)),
	}
	if req.Default != nil {
		track.Default = req.Default.toStyle()
	}
	for _, cue := range req.Cues {
		c := vo.SubtitleCue{
			Text:      cue.Text,
			StartTime: cue.StartTime,
			EndTime:   cue.EndTime,
		}
		if cue.Style != nil {
			c.Style = cue.Style.toStyle()
		}
		track.Cues = append(track.Cues, c)
	}
	return track
}

// ProcessReq 组合处理请求
type ProcessReq struct {
	Trim      *TrimReq     `json:"trim,omitempty"`
	Bgm       *BgmMixReq   `json:"bgm,omitempty"`
	Subtitles *SubtitleReq `json:"subtitles,omitempty"`
}

func (req *ProcessReq) Validate() error {
	if req.Trim == nil && req.Bgm == nil && req.Subtitles == nil {
		return errno.ErrMissingParam.Wrapf("at least one of trim, bgm, subtitles is required")
	}
	if req.Trim != nil {
		if err := req.Trim.Validate(); err != nil {
			return err
		}
	}
	if req.Bgm != nil {
		if err := req.Bgm.Validate(); err != nil {
			return err
		}
	}
	if req.Subtitles != nil {
		if err := req.Subtitles.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FetchBgmReq 远程音频拉取请求
type FetchBgmReq struct {
	SourceURL string `json:"source_url" binding:"required"`
	Title     string `json:"title,omitempty"`
}

func (req *FetchBgmReq) Validate() error {
	if req.SourceURL == "" {
		return errno.ErrMissingParam.Wrapf("source_url is required")
	}
	return nil
}
