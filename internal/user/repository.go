package user

import "context"

// Repository persists user records. FindByEmail and FindByPhone exist for
// uniqueness checks and report absence through the boolean rather than an
// error. Implementations must enforce email and phone uniqueness at the
// storage layer so concurrent writers cannot slip past the service's
// read-then-write check.
type Repository interface {
	Create(ctx context.Context, u User) (User, error)
	FindByID(ctx context.Context, id int) (User, error)
	FindByEmail(ctx context.Context, email string) (User, bool, error)
	FindByPhone(ctx context.Context, phoneNumber string) (User, bool, error)
	ExistsByID(ctx context.Context, id int) (bool, error)
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, page, size int) ([]User, error)
}
