package notify_test

import (
	"context"
	"fmt"
	"testing"

	notify "github.com/evento-hq/evento/internal/domain/notify"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLog(t *testing.T) {
	Convey("Given a new notification log", t, func() {
		ctx := context.Background()

		Convey("When pushing a single notification", func() {
			l := notify.New()
			n := l.Push(ctx, "Welcome to Evento! Explore trending events now.")

			Convey("Then it should be retained with a fresh timestamp label", func() {
				So(n.ID, ShouldEqual, 1)
				So(n.Time, ShouldEqual, "Just now")
				So(l.Len(ctx), ShouldEqual, 1)
				So(l.List(ctx)[0].Text, ShouldEqual, "Welcome to Evento! Explore trending events now.")
			})
		})

		Convey("When pushing more notifications than the cap", func() {
			l := notify.New()
			for i := 1; i <= 7; i++ {
				l.Push(ctx, fmt.Sprintf("message %d", i))
			}

			Convey("Then only the five most recent survive, newest first", func() {
				entries := l.List(ctx)
				So(entries, ShouldHaveLength, 5)
				So(entries[0].Text, ShouldEqual, "message 7")
				So(entries[4].Text, ShouldEqual, "message 3")
			})

			Convey("Then ids keep increasing across evictions", func() {
				n := l.Push(ctx, "message 8")
				So(n.ID, ShouldEqual, 8)
			})
		})

		Convey("When identical texts are pushed twice", func() {
			l := notify.New()
			l.Push(ctx, "IC Card downloaded successfully!")
			l.Push(ctx, "IC Card downloaded successfully!")

			Convey("Then both entries are retained", func() {
				So(l.Len(ctx), ShouldEqual, 2)
			})
		})

		Convey("When a custom cap is configured", func() {
			l := notify.New(notify.WithCap(2))
			l.Push(ctx, "a")
			l.Push(ctx, "b")
			l.Push(ctx, "c")

			Convey("Then the custom bound applies", func() {
				entries := l.List(ctx)
				So(entries, ShouldHaveLength, 2)
				So(entries[0].Text, ShouldEqual, "c")
				So(entries[1].Text, ShouldEqual, "b")
			})
		})
	})
}
