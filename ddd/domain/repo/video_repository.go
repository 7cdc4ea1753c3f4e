package repo

import (
	"context"

	"video-edit-service/ddd/domain/entity"
)

// VideoRepository 视频记录仓储
type VideoRepository interface {
	// Insert 插入新记录
	Insert(ctx context.Context, video *entity.Video) error

	// FindByID 根据ID查询；记录不存在时返回 errno.ErrVideoNotFound
	FindByID(ctx context.Context, id string) (*entity.Video, error)

	// FetchAll 按创建时间倒序返回全部记录
	FetchAll(ctx context.Context) ([]*entity.Video, error)

	// UpdateStatus writes status, storage key/URL and duration in one
	// statement; the orchestrator calls it only after the artifact is
	// durably stored.
	UpdateStatus(ctx context.Context, video *entity.Video) error
}
