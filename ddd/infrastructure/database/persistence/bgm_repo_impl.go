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

// bgmRepositoryImpl 背景音乐曲目仓储实现
type bgmRepositoryImpl struct {
	trackDao  *dao.BgmTrackDao
	convertor *convertor.BgmTrackConvertor
}

// NewBgmRepository 创建曲目仓储实现
func NewBgmRepository(db *gorm.DB) repo.BgmRepository {
	return &bgmRepositoryImpl{
		trackDao:  dao.NewBgmTrackDao(db),
		convertor: convertor.NewBgmTrackConvertor(),
	}
}

// Insert 插入新曲目
func (r *bgmRepositoryImpl) Insert(ctx context.Context, track *entity.BgmTrack) error {
	if err := r.trackDao.Create(ctx, r.convertor.ToPO(track)); err != nil {
		return errno.ErrDatabase.Wrapf("insert bgm track: %v", err)
	}
	return nil
}

// FindByID 根据ID查询
func (r *bgmRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.BgmTrack, error) {
	trackPo, err := r.trackDao.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errno.ErrBgmNotFound.Wrapf("id=%s", id)
		}
		return nil, errno.ErrDatabase.Wrapf("find bgm track: %v", err)
	}
	return r.convertor.ToEntity(trackPo), nil
}

// FetchAll 按创建时间倒序返回全部曲目
func (r *bgmRepositoryImpl) FetchAll(ctx context.Context) ([]*entity.BgmTrack, error) {
	pos, err := r.trackDao.FetchAll(ctx)
	if err != nil {
		return nil, errno.ErrDatabase.Wrapf("fetch bgm tracks: %v", err)
	}
	return r.convertor.ToEntityList(pos), nil
}
