package port

import "context"

// UnitOfWork runs repository calls inside one transaction.
// Repositories obtained from the uow passed to fn share that transaction; fn returning an
// error rolls everything back.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(uow UnitOfWork) error) error
	ImageRepo() ImageRepository
}
