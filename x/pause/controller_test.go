package pause

import (
	"testing"

	"github.com/iov-one/paylock/errors"
	"github.com/iov-one/paylock/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestController(t *testing.T) {
	Convey("Given a fresh store", t, func() {
		db := store.MemStore()
		ctrl := NewController(NewBucket())

		Convey("the switch is released", func() {
			paused, err := ctrl.IsPaused(db)
			So(err, ShouldBeNil)
			So(paused, ShouldBeFalse)
			So(ctrl.Guard(db), ShouldBeNil)
		})

		Convey("unpausing fails", func() {
			err := ctrl.SetPaused(db, false)
			So(errors.ErrState.Is(err), ShouldBeTrue)
		})

		Convey("when paused", func() {
			So(ctrl.SetPaused(db, true), ShouldBeNil)

			Convey("the guard rejects", func() {
				So(errors.ErrPaused.Is(ctrl.Guard(db)), ShouldBeTrue)
			})

			Convey("pausing again fails", func() {
				So(errors.ErrState.Is(ctrl.SetPaused(db, true)), ShouldBeTrue)
			})

			Convey("it can be released", func() {
				So(ctrl.SetPaused(db, false), ShouldBeNil)
				So(ctrl.Guard(db), ShouldBeNil)
			})
		})
	})
}
