package gateway

import "context"

// FetchedAudio 远程音频拉取结果
type FetchedAudio struct {
	LocalPath string
	Title     string
	Duration  float64

	// Cleanup removes the fetched file and any staging directory that
	// backs it. Safe to call more than once; never nil.
	Cleanup func()
}

// AudioFetcher 远程音频拉取网关
//
// Callers must not assume the returned filename follows any
// input-derived naming scheme.
type AudioFetcher interface {
	Fetch(ctx context.Context, sourceURL string) (*FetchedAudio, error)
}
