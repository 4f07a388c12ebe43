package image

import (
	"context"
	"snapbox/internal/core/domain"
)

// StorageInfo reports the bytes used by stored images and what is left of the quota
func (s *imageService) StorageInfo(ctx context.Context) (domain.StorageInfo, error) {
	used, err := s.uow.ImageRepo().SumSize(ctx)
	if err != nil {
		return domain.StorageInfo{}, err
	}

	available := s.uploadCfg.StorageQuota - used
	if available < 0 {
		available = 0
	}
	return domain.StorageInfo{Used: used, Available: available}, nil
}
