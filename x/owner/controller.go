package owner

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/orm"
	"github.com/iov-one/paylock/x"
)

// Controller gives access to the owner state.
type Controller interface {
	// CurrentOwner returns the owner address. Nil is returned when no
	// owner was ever set.
	CurrentOwner(db paylock.ReadOnlyKVStore) (paylock.Address, error)

	// RequireOwner returns ErrUnauthorized unless the current owner has
	// signed the transaction. The owner address is returned on success.
	RequireOwner(ctx paylock.Context, db paylock.ReadOnlyKVStore, auth x.Authenticator) (paylock.Address, error)

	// SetOwner replaces the owner.
	SetOwner(db paylock.KVStore, owner paylock.Address) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on given bucket.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

func (c BaseController) CurrentOwner(db paylock.ReadOnlyKVStore) (paylock.Address, error) {
	var s State
	switch err := c.bucket.One(db, stateKey, &s); {
	case err == nil:
		return s.Owner, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "load owner")
	}
}

func (c BaseController) RequireOwner(ctx paylock.Context, db paylock.ReadOnlyKVStore, auth x.Authenticator) (paylock.Address, error) {
	owner, err := c.CurrentOwner(db)
	if err != nil {
		return nil, err
	}
	if len(owner) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no owner")
	}
	if !auth.HasAddress(ctx, owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "owner signature required")
	}
	return owner, nil
}

func (c BaseController) SetOwner(db paylock.KVStore, owner paylock.Address) error {
	s := State{
		Metadata: &paylock.Metadata{Schema: 1},
		Owner:    owner,
	}
	if _, err := c.bucket.Put(db, stateKey, &s); err != nil {
		return errors.Wrap(err, "save owner")
	}
	return nil
}
