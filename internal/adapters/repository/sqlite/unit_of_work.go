package sqlite

import (
	"context"
	"snapbox/internal/core/port"

	"gorm.io/gorm"
)

type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a unit of work running its callbacks in a gorm transaction
func NewUnitOfWork(db *gorm.DB) port.UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) ImageRepo() port.ImageRepository {
	return NewGormImageRepository(u.db)
}

func (u *gormUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormUnitOfWork{db: tx})
	})
}
