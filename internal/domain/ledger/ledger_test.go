package ledger_test

import (
	"context"
	"testing"

	ledger "github.com/evento-hq/evento/internal/domain/ledger"
	"github.com/evento-hq/evento/internal/domain/model"
	"github.com/evento-hq/evento/internal/domain/notify"
	"github.com/evento-hq/evento/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func freeEvent() model.Event {
	return model.Event{
		ID:       4,
		Title:    "Community Meetup 2026",
		Date:     "2026-04-05",
		Location: "Community Hall",
		Category: "Social",
		Price:    0,
		IsPaid:   false,
	}
}

func paidEvent() model.Event {
	return model.Event{
		ID:       1,
		Title:    "Tech Innovators Conference",
		Date:     "2026-03-15",
		Location: "Silicon Valley Convention Center",
		Category: "Technology",
		Price:    999,
		IsPaid:   true,
	}
}

func TestLedger(t *testing.T) {
	Convey("Given a new ledger", t, func() {
		ctx := context.Background()
		feed := notify.New()
		l := ledger.New(feed)

		Convey("When registering for a free event", func() {
			reg, pending, err := l.RegisterIntent(ctx, freeEvent())

			Convey("Then it should record the registration immediately", func() {
				So(err, ShouldBeNil)
				So(pending, ShouldBeFalse)
				So(reg.RegistrationID, ShouldEqual, "EVT-000001")
				So(reg.Payment.Method, ShouldEqual, model.MethodFree)
				So(reg.Payment.Amount, ShouldEqual, 0)
				So(reg.RegisteredAt.IsZero(), ShouldBeFalse)
				So(l.Count(ctx), ShouldEqual, 1)
			})

			Convey("Then it should announce the registration", func() {
				entries := feed.List(ctx)
				So(entries, ShouldNotBeEmpty)
				So(entries[0].Text, ShouldEqual, "Successfully registered for Community Meetup 2026!")
			})

			Convey("And registering again for the same event", func() {
				_, _, err := l.RegisterIntent(ctx, freeEvent())

				Convey("Then it should fail without mutating the ledger", func() {
					So(err, ShouldWrap, ledger.ErrAlreadyRegistered)
					So(l.Count(ctx), ShouldEqual, 1)
					So(feed.Len(ctx), ShouldEqual, 1)
				})
			})
		})

		Convey("When registering for a paid event", func() {
			reg, pending, err := l.RegisterIntent(ctx, paidEvent())

			Convey("Then it should defer to the payment path", func() {
				So(err, ShouldBeNil)
				So(pending, ShouldBeTrue)
				So(reg, ShouldResemble, model.Registration{})
				So(l.Count(ctx), ShouldEqual, 0)
				So(feed.Len(ctx), ShouldEqual, 0)
			})

			Convey("And finalizing after a confirmed payment", func() {
				rec := model.PaymentRecord{Method: "card", Amount: 999, TransactionID: "TXN-abc"}
				final, err := l.Finalize(ctx, paidEvent(), rec)

				Convey("Then it should record the registration with the payment", func() {
					So(err, ShouldBeNil)
					So(final.RegistrationID, ShouldEqual, "EVT-000001")
					So(final.Payment, ShouldResemble, rec)
					So(l.Count(ctx), ShouldEqual, 1)
					So(l.Revenue(ctx), ShouldEqual, 999)
				})

				Convey("Then it should announce the confirmation", func() {
					entries := feed.List(ctx)
					So(entries[0].Text, ShouldEqual, "Payment confirmed! Successfully registered for Tech Innovators Conference!")
				})

				Convey("And a second finalize for the same event", func() {
					_, err := l.Finalize(ctx, paidEvent(), rec)

					Convey("Then it should fail with the duplicate error", func() {
						So(err, ShouldWrap, ledger.ErrAlreadyRegistered)
						So(l.Count(ctx), ShouldEqual, 1)
					})
				})
			})
		})

		Convey("When registering for several events", func() {
			_, _, err1 := l.RegisterIntent(ctx, freeEvent())
			other := freeEvent()
			other.ID = 6
			other.Title = "Startup Pitch Night"
			_, _, err2 := l.RegisterIntent(ctx, other)

			Convey("Then the ledger keeps insertion order", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				regs := l.List(ctx)
				So(regs, ShouldHaveLength, 2)
				So(regs[0].Event.ID, ShouldEqual, 4)
				So(regs[1].Event.ID, ShouldEqual, 6)
				So(regs[0].RegistrationID, ShouldEqual, "EVT-000001")
				So(regs[1].RegistrationID, ShouldEqual, "EVT-000002")
			})

			Convey("Then lookups and aggregates reflect both", func() {
				reg, ok := l.Get(ctx, 6)
				So(ok, ShouldBeTrue)
				So(reg.Event.Title, ShouldEqual, "Startup Pitch Night")
				So(l.CountForEvent(ctx, 4), ShouldEqual, 1)
				So(l.CountForEvent(ctx, 99), ShouldEqual, 0)
				So(l.Revenue(ctx), ShouldEqual, 0)
			})
		})

		Convey("When the registered event is later removed from the catalog", func() {
			reg, _, err := l.RegisterIntent(ctx, freeEvent())
			So(err, ShouldBeNil)

			Convey("Then the ledger keeps its own event snapshot", func() {
				got, ok := l.Get(ctx, 4)
				So(ok, ShouldBeTrue)
				So(got.Event.Title, ShouldEqual, reg.Event.Title)
				So(got.Event.Location, ShouldEqual, "Community Hall")
			})
		})
	})
}
