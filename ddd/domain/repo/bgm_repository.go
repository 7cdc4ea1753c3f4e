package repo

import (
	"context"

	"video-edit-service/ddd/domain/entity"
)

// BgmRepository 背景音乐曲目仓储
type BgmRepository interface {
	// Insert 插入新曲目
	Insert(ctx context.Context, track *entity.BgmTrack) error

	// FindByID 根据ID查询；不存在时返回 errno.ErrBgmNotFound
	FindByID(ctx context.Context, id string) (*entity.BgmTrack, error)

	// FetchAll 按创建时间倒序返回全部曲目
	FetchAll(ctx context.Context) ([]*entity.BgmTrack, error)
}
