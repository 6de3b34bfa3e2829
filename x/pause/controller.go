package pause

import (
	"github.com/iov-one/paylock"
	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/orm"
)

// Controller reads and flips the pause switch.
type Controller interface {
	// IsPaused returns true if the switch is engaged. A switch that was
	// never set is released.
	IsPaused(db paylock.ReadOnlyKVStore) (bool, error)

	// Guard returns ErrPaused if the switch is engaged.
	Guard(db paylock.ReadOnlyKVStore) error

	// SetPaused changes the switch position. Setting the current position
	// again fails with ErrState.
	SetPaused(db paylock.KVStore, paused bool) error
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

func (c BaseController) IsPaused(db paylock.ReadOnlyKVStore) (bool, error) {
	var s State
	switch err := c.bucket.One(db, stateKey, &s); {
	case err == nil:
		return s.Paused, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, errors.Wrap(err, "load pause state")
	}
}

func (c BaseController) Guard(db paylock.ReadOnlyKVStore) error {
	paused, err := c.IsPaused(db)
	if err != nil {
		return err
	}
	if paused {
		return errors.Wrap(errors.ErrPaused, "operation not allowed")
	}
	return nil
}

func (c BaseController) SetPaused(db paylock.KVStore, paused bool) error {
	current, err := c.IsPaused(db)
	if err != nil {
		return err
	}
	if current == paused {
		if paused {
			return errors.Wrap(errors.ErrState, "already paused")
		}
		return errors.Wrap(errors.ErrState, "not paused")
	}
	s := State{Metadata: &paylock.Metadata{Schema: 1}, Paused: paused}
	if _, err := c.bucket.Put(db, stateKey, &s); err != nil {
		return errors.Wrap(err, "save pause state")
	}
	return nil
}
