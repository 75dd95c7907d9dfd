package app_test

import (
	"context"
	"testing"
	"time"

	app "github.com/evento-hq/evento/internal/app"
	"github.com/evento-hq/evento/internal/domain/catalog"
	"github.com/evento-hq/evento/internal/domain/ledger"
	"github.com/evento-hq/evento/internal/domain/model"
	"github.com/evento-hq/evento/internal/payment"
	"github.com/evento-hq/evento/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const testDelay = 10 * time.Millisecond

func startService(t *testing.T) *app.Service {
	t.Helper()
	svc := app.New(
		app.WithPaymentDelays(testDelay, testDelay),
		app.WithArtifactDir(t.TempDir()),
		app.WithRenderWorkerCount(1),
	)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func waitUntil(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestService(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startService(t)
		Reset(svc.Stop)

		Convey("When listing the catalog", func() {
			events := svc.ListEvents(ctx)

			Convey("Then the stock seed is served", func() {
				So(events, ShouldHaveLength, 6)
				So(events[3].Title, ShouldEqual, "Community Meetup 2026")
			})
		})

		Convey("When registering for the free event", func() {
			reg, pending, err := svc.RegisterIntent(ctx, 4)

			Convey("Then the registration is immediate", func() {
				So(err, ShouldBeNil)
				So(pending, ShouldBeFalse)
				So(reg.Payment.Method, ShouldEqual, model.MethodFree)
				So(svc.ListRegistrations(ctx), ShouldHaveLength, 1)
			})

			Convey("Then the feed announces it on top of the welcome entry", func() {
				notes := svc.Notifications(ctx)
				So(notes[0].Text, ShouldEqual, "Successfully registered for Community Meetup 2026!")
			})
		})

		Convey("When registering for a paid event", func() {
			_, pending, err := svc.RegisterIntent(ctx, 1)
			So(err, ShouldBeNil)
			So(pending, ShouldBeTrue)

			Convey("And completing the payment session", func() {
				sess, err := svc.StartPayment(ctx, 1, "card")
				So(err, ShouldBeNil)
				So(sess.Amount, ShouldEqual, 1499)

				Convey("Then the registration finalizes asynchronously", func() {
					So(waitUntil(func() bool { return len(svc.ListRegistrations(ctx)) == 1 }), ShouldBeTrue)
					regs := svc.ListRegistrations(ctx)
					So(regs[0].Payment.Method, ShouldEqual, "card")
					So(regs[0].Payment.Amount, ShouldEqual, 1499)
					So(regs[0].Payment.TransactionID, ShouldStartWith, "TXN-")
				})
			})

			Convey("And cancelling the payment session", func() {
				sess, err := svc.StartPayment(ctx, 1, "upi")
				So(err, ShouldBeNil)
				So(svc.CancelPayment(ctx, sess.ID), ShouldBeNil)

				Convey("Then no registration ever appears", func() {
					time.Sleep(10 * testDelay)
					So(svc.ListRegistrations(ctx), ShouldBeEmpty)
				})
			})

			Convey("And starting a payment for an already registered event", func() {
				sess, err := svc.StartPayment(ctx, 1, "card")
				So(err, ShouldBeNil)
				So(waitUntil(func() bool { return len(svc.ListRegistrations(ctx)) == 1 }), ShouldBeTrue)
				_ = sess

				_, err = svc.StartPayment(ctx, 1, "card")
				Convey("Then the duplicate is refused up front", func() {
					So(err, ShouldWrap, ledger.ErrAlreadyRegistered)
				})
			})
		})

		Convey("When creating and cancelling events", func() {
			e, err := svc.CreateEvent(ctx, model.CreateEventRequest{
				Title:       "AI Workshop",
				Date:        "September 1, 2026",
				Location:    "Berlin, Germany",
				Category:    "Technology",
				IsPaid:      true,
				Price:       299,
				Description: "Hands-on workshop on applied machine learning.",
			})
			So(err, ShouldBeNil)

			Convey("Then the catalog and the feed reflect the creation", func() {
				So(svc.ListEvents(ctx), ShouldHaveLength, 7)
				So(svc.Notifications(ctx)[0].Text, ShouldEqual, "New Event Created: AI Workshop")
			})

			Convey("And deleting it afterwards", func() {
				So(svc.DeleteEvent(ctx, e.ID), ShouldBeNil)

				Convey("Then the cancellation is announced", func() {
					So(svc.ListEvents(ctx), ShouldHaveLength, 6)
					So(svc.Notifications(ctx)[0].Text, ShouldEqual, "Event Cancelled: AI Workshop")
				})
			})

			Convey("And deleting an unknown event", func() {
				So(svc.DeleteEvent(ctx, 999), ShouldWrap, catalog.ErrNotFound)
			})
		})

		Convey("When a registration survives its event being cancelled", func() {
			reg, _, err := svc.RegisterIntent(ctx, 4)
			So(err, ShouldBeNil)
			So(svc.DeleteEvent(ctx, 4), ShouldBeNil)

			Convey("Then the ledger still serves the snapshot", func() {
				regs := svc.ListRegistrations(ctx)
				So(regs, ShouldHaveLength, 1)
				So(regs[0].RegistrationID, ShouldEqual, reg.RegistrationID)
				So(regs[0].Event.Title, ShouldEqual, "Community Meetup 2026")
			})
		})

		Convey("When joining a team", func() {
			team, err := svc.JoinTeam(ctx, 4, "Rockets", "")

			Convey("Then the default actor applies and the feed announces it", func() {
				So(err, ShouldBeNil)
				So(team.Members, ShouldResemble, []string{"Rockets", "You"})
				So(svc.Notifications(ctx)[0].Text, ShouldEqual, `Joined team "Rockets" for event.`)
			})
		})

		Convey("When walking the credential flow end to end", func() {
			_, _, err := svc.RegisterIntent(ctx, 4)
			So(err, ShouldBeNil)

			status, err := svc.RequestCard(ctx, 4)
			So(err, ShouldBeNil)
			So(string(status), ShouldEqual, "collecting")

			err = svc.SubmitProfile(ctx, 4, model.Profile{
				Name:  "Asha Rao",
				Email: "asha@example.com",
				Phone: "+91 98765 43210",
				Role:  model.RoleAttendee,
			})
			So(err, ShouldBeNil)

			Convey("Then the resumed card render completes and is announced", func() {
				So(waitUntil(func() bool {
					for _, n := range svc.Notifications(ctx) {
						if n.Text == "IC Card downloaded successfully!" {
							return true
						}
					}
					return false
				}), ShouldBeTrue)
			})

			Convey("And requesting the confirmation document", func() {
				So(svc.RequestConfirmation(ctx, 4), ShouldBeNil)

				Convey("Then its completion is announced", func() {
					So(waitUntil(func() bool {
						for _, n := range svc.Notifications(ctx) {
							if n.Text == "PDF confirmation downloaded successfully!" {
								return true
							}
						}
						return false
					}), ShouldBeTrue)
				})
			})
		})

		Convey("When asking the assistant", func() {
			So(svc.Ask(ctx, "how do I register"), ShouldContainSubstring, "Register")
		})

		Convey("When reading the stats aggregate", func() {
			_, _, err := svc.RegisterIntent(ctx, 4)
			So(err, ShouldBeNil)
			stats := svc.GetStats()

			Convey("Then catalog and ledger figures line up", func() {
				So(stats["totalEvents"], ShouldEqual, 6)
				So(stats["freeEvents"], ShouldEqual, 1)
				So(stats["totalRegistrations"], ShouldEqual, 1)
				So(stats["totalRevenue"], ShouldEqual, 0)
				rows, ok := stats["events"].([]app.EventStats)
				So(ok, ShouldBeTrue)
				So(rows, ShouldHaveLength, 6)
				So(rows[3].Registrations, ShouldEqual, 1)
			})
		})

		Convey("When submitting a payment with an unsupported method", func() {
			_, err := svc.StartPayment(ctx, 1, "cheque")
			So(err, ShouldWrap, payment.ErrUnknownMethod)
		})
	})
}
