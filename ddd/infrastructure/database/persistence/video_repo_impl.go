package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"video-edit-service/ddd/domain/entity"
	"video-edit-service/ddd/domain/repo"
	"video-edit-service/ddd/infrastructure/database/convertor"
	"video-edit-service/ddd/infrastructure/database/dao"
	"video-edit-service/pkg/errno"
)

// videoRepositoryImpl 视频记录仓储实现
type videoRepositoryImpl struct {
	videoDao  *dao.VideoDao
	convertor *convertor.VideoConvertor
}

// NewVideoRepository 创建视频仓储实现
func NewVideoRepository(db *gorm.DB) repo.VideoRepository {
	return &videoRepositoryImpl{
		videoDao:  dao.NewVideoDao(db),
		convertor: convertor.NewVideoConvertor(),
	}
}

// Insert 插入新记录
func (r *videoRepositoryImpl) Insert(ctx context.Context, video *entity.Video) error {
	if err := r.videoDao.Create(ctx, r.convertor.ToPO(video)); err != nil {
		return errno.ErrDatabase.Wrapf("insert video: %v", err)
	}
	return nil
}

// FindByID 根据ID查询
func (r *videoRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Video, error) {
	videoPo, err := r.videoDao.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.ErrVideoNotFound.Wrapf("id=%s", id)
		}
		return nil, errno.ErrDatabase.Wrapf("find video: %v", err)
	}
	return r.convertor.ToEntity(videoPo), nil
}

// FetchAll 按创建时间倒序返回全部记录
func (r *videoRepositoryImpl) FetchAll(ctx context.Context) ([]*entity.Video, error) {
	pos, err := r.videoDao.FetchAll(ctx)
	if err != nil {
		return nil, errno.ErrDatabase.Wrapf("fetch videos: %v", err)
	}
	return r.convertor.ToEntityList(pos), nil
}

// UpdateStatus 单语句更新状态与制品字段
func (r *videoRepositoryImpl) UpdateStatus(ctx context.Context, video *entity.Video) error {
	if err := r.videoDao.UpdateStatus(ctx, r.convertor.ToPO(video)); err != nil {
		return errno.ErrDatabase.Wrapf("update video status: %v", err)
	}
	return nil
}
