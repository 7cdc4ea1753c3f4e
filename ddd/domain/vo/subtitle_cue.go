package vo

import (
	"fmt"
	"strings"

	"video-edit-service/pkg/errno"
)

// CueStyle 单条字幕样式；零值字段回落到轨道默认样式
type CueStyle struct {
	FontName   string
	FontSize   int
	FontColor  string
	X          string
	Y          string
	BoxColor   string
	BoxOpacity float64
}

// SubtitleCue 单条定时字幕
type SubtitleCue struct {
	Text      string
	StartTime float64
	EndTime   float64
	Style     CueStyle

	// FontFile is the resolved local font path; it must be set before
	// the filter expression is built.
	FontFile string
}

// Validate 校验字幕时间窗口
func (c *SubtitleCue) Validate() error {
	if strings.TrimSpace(c.Text) == "" {
		return errno.ErrInvalidCue.Wrapf("empty text")
	}
	if c.StartTime < 0 {
		return errno.ErrInvalidCue.Wrapf("start_time=%v must be >= 0", c.StartTime)
	}
	if c.EndTime <= c.StartTime {
		return errno.ErrInvalidCue.Wrapf("end_time=%v must be > start_time=%v", c.EndTime, c.StartTime)
	}
	return nil
}

// SubtitleTrack 有序字幕轨道；窗口可重叠，重叠时按给定顺序渲染
type SubtitleTrack struct {
	Cues    []SubtitleCue
	Default CueStyle
}

// Validate 校验整条轨道
func (t *SubtitleTrack) Validate() error {
	if len(t.Cues) == 0 {
		return errno.ErrInvalidCue.Wrapf("no cues supplied")
	}
	for i := range t.Cues {
		if err := t.Cues[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// FilterExpr 获取整条轨道的drawtext滤镜链
//
// One drawtext directive per cue, chained in the cues' given order.
// Every cue is gated by a half-open [start, end) time predicate, and
// every untrusted string passes through escapeFilterText exactly here,
// never at call sites.
func (t *SubtitleTrack) FilterExpr() (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	directives := make([]string, 0, len(t.Cues))
	for i := range t.Cues {
		cue := &t.Cues[i]
		if cue.FontFile == "" {
			return "", errno.ErrFontNotResolved.Wrapf("cue %d font %q has no local file", i, cue.fontName(t.Default))
		}
		directives = append(directives, cue.directive(t.Default))
	}
	return strings.Join(directives, ","), nil
}

func (c *SubtitleCue) fontName(def CueStyle) string {
	if c.Style.FontName != "" {
		return c.Style.FontName
	}
	return def.FontName
}

func (c *SubtitleCue) directive(def CueStyle) string {
	size := c.Style.FontSize
	if size <= 0 {
		size = def.FontSize
	}
	color := c.Style.FontColor
	if color == "" {
		color = def.FontColor
	}
	x := c.Style.X
	if x == "" {
		x = def.X
	}
	y := c.Style.Y
	if y == "" {
		y = def.Y
	}

	var b strings.Builder
	fmt.Fprintf(&b, "drawtext=fontfile='%s'", escapeFilterText(c.FontFile))
	fmt.Fprintf(&b, ":text='%s'", escapeFilterText(c.Text))
	fmt.Fprintf(&b, ":fontsize=%d:fontcolor=%s", size, color)
	fmt.Fprintf(&b, ":x='%s':y='%s'", escapeFilterText(x), escapeFilterText(y))

	boxColor := c.Style.BoxColor
	boxOpacity := c.Style.BoxOpacity
	if boxColor == "" {
		boxColor = def.BoxColor
		boxOpacity = def.BoxOpacity
	}
	if boxColor != "" {
		if boxOpacity <= 0 || boxOpacity > 1 {
			boxOpacity = 0.5
		}
		fmt.Fprintf(&b, ":box=1:boxcolor=%s@%.2f:boxborderw=8", boxColor, boxOpacity)
	}

	// gte*lt keeps the window half-open so back-to-back cues never
	// overlap on the shared boundary frame. The predicate is quoted, so
	// its commas are literal to the filter parser.
	fmt.Fprintf(&b, ":enable='gte(t,%.3f)*lt(t,%.3f)'", c.StartTime, c.EndTime)
	return b.String()
}

// escapeFilterText neutralises ffmpeg filter metacharacters in
// untrusted text. Unescaped quotes, colons or commas would terminate
// the drawtext argument early and let caption text inject filter
// directives. Backslashes pass through two interpretation levels, the
// filter-graph parser and drawtext's own expansion, so each literal
// one needs four on the wire.
func escapeFilterText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	s = strings.ReplaceAll(s, `:`, `\:`)
	s = strings.ReplaceAll(s, `,`, `\,`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return s
}
