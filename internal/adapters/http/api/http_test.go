package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	api "github.com/evento-hq/evento/internal/adapters/http/api"
	app "github.com/evento-hq/evento/internal/app"
	"github.com/evento-hq/evento/internal/domain/model"
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

func newTestServer(t *testing.T) (*httptest.Server, *app.Service) {
	t.Helper()
	svc := app.New(
		app.WithPaymentDelays(testDelay, testDelay),
		app.WithArtifactDir(t.TempDir()),
	)
	So(svc.Start(context.Background()), ShouldBeNil)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return httptest.NewServer(mux), svc
}

func doJSON(method, url string, body any) (*http.Response, map[string]any) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	So(err, ShouldBeNil)
	resp, err := http.DefaultClient.Do(req)
	So(err, ShouldBeNil)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func waitUntilTrue(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestAPI(t *testing.T) {
	Convey("Given a running API server", t, func() {
		srv, svc := newTestServer(t)
		Reset(func() {
			srv.Close()
			svc.Stop()
		})

		Convey("When fetching the catalog", func() {
			resp, err := http.Get(srv.URL + "/events")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			var events []model.Event
			So(json.NewDecoder(resp.Body).Decode(&events), ShouldBeNil)

			Convey("Then all stock events are listed", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(events, ShouldHaveLength, 6)
				So(events[0].Title, ShouldEqual, "Global Tech Summit 2026")
			})
		})

		Convey("When creating an event", func() {
			resp, body := doJSON(http.MethodPost, srv.URL+"/events", map[string]any{
				"title":       "AI Workshop",
				"date":        "September 1, 2026",
				"location":    "Berlin, Germany",
				"category":    "Technology",
				"is_paid":     true,
				"price":       299,
				"description": "Hands-on workshop on applied machine learning.",
			})

			Convey("Then it is created with the next id", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				So(body["id"], ShouldEqual, 7)
				So(body["title"], ShouldEqual, "AI Workshop")
			})
		})

		Convey("When creating an event with missing fields", func() {
			resp, body := doJSON(http.MethodPost, srv.URL+"/events", map[string]any{"title": ""})

			Convey("Then the request is rejected", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(body["code"], ShouldEqual, "bad_request")
			})
		})

		Convey("When registering for the free event", func() {
			resp, body := doJSON(http.MethodPost, srv.URL+"/events/4/register", nil)

			Convey("Then the registration is returned immediately", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)
				So(body["status"], ShouldEqual, "registered")
			})

			Convey("And registering again", func() {
				resp, body := doJSON(http.MethodPost, srv.URL+"/events/4/register", nil)

				Convey("Then the duplicate is refused", func() {
					So(resp.StatusCode, ShouldEqual, http.StatusConflict)
					So(body["code"], ShouldEqual, "already_registered")
				})
			})
		})

		Convey("When registering for a paid event", func() {
			resp, body := doJSON(http.MethodPost, srv.URL+"/events/1/register", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
			So(body["status"], ShouldEqual, "payment_required")

			Convey("And driving the payment to completion", func() {
				resp, body := doJSON(http.MethodPost, srv.URL+"/payments", map[string]any{
					"event_id": 1,
					"method":   "card",
				})
				So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
				So(body["state"], ShouldEqual, "Processing")
				So(body["amount"], ShouldEqual, 1499)

				Convey("Then the registration eventually appears", func() {
					ok := waitUntilTrue(func() bool {
						resp, err := http.Get(srv.URL + "/registrations")
						if err != nil {
							return false
						}
						defer resp.Body.Close()
						var regs []model.Registration
						if err := json.NewDecoder(resp.Body).Decode(&regs); err != nil {
							return false
						}
						return len(regs) == 1
					})
					So(ok, ShouldBeTrue)
				})
			})

			Convey("And cancelling the payment", func() {
				_, body := doJSON(http.MethodPost, srv.URL+"/payments", map[string]any{
					"event_id": 1,
					"method":   "upi",
				})
				sessionID, _ := body["session_id"].(string)
				So(sessionID, ShouldNotBeEmpty)

				resp, cancelBody := doJSON(http.MethodPost, srv.URL+"/payments/"+sessionID+"/cancel", nil)

				Convey("Then the session is abandoned", func() {
					So(resp.StatusCode, ShouldEqual, http.StatusOK)
					So(cancelBody["state"], ShouldEqual, "Idle")

					statusResp, _ := doJSON(http.MethodGet, srv.URL+"/payments/"+sessionID, nil)
					So(statusResp.StatusCode, ShouldEqual, http.StatusNotFound)
				})
			})

			Convey("And submitting an unsupported method", func() {
				resp, body := doJSON(http.MethodPost, srv.URL+"/payments", map[string]any{
					"event_id": 1,
					"method":   "cheque",
				})
				So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
				So(body["code"], ShouldEqual, "bad_request")
			})
		})

		Convey("When joining a team", func() {
			resp, body := doJSON(http.MethodPost, srv.URL+"/events/4/team", map[string]any{"name": "Rockets"})

			Convey("Then the team comes back with the default actor", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body["name"], ShouldEqual, "Rockets")
				members, _ := body["members"].([]any)
				So(members, ShouldResemble, []any{"Rockets", "You"})
			})
		})

		Convey("When walking the credential flow over HTTP", func() {
			resp, _ := doJSON(http.MethodPost, srv.URL+"/events/4/register", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusCreated)

			resp, body := doJSON(http.MethodPost, srv.URL+"/events/4/card", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
			So(body["status"], ShouldEqual, "collecting")

			resp, _ = doJSON(http.MethodPost, srv.URL+"/events/4/profile", map[string]any{
				"name":  "Asha Rao",
				"email": "asha@example.com",
				"phone": "+91 98765 43210",
				"role":  "Attendee",
			})
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			Convey("And asking for the confirmation document", func() {
				resp, body := doJSON(http.MethodPost, srv.URL+"/events/4/confirmation", nil)
				So(resp.StatusCode, ShouldEqual, http.StatusAccepted)
				So(body["status"], ShouldEqual, "queued")
			})

			Convey("And requesting a card without a registration elsewhere", func() {
				resp, body := doJSON(http.MethodPost, srv.URL+"/events/5/card", nil)
				So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
				So(body["code"], ShouldEqual, "not_found")
			})
		})

		Convey("When reading notifications", func() {
			resp, err := http.Get(srv.URL + "/notifications")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			var notes []model.Notification
			So(json.NewDecoder(resp.Body).Decode(&notes), ShouldBeNil)

			Convey("Then the welcome entry is present", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(notes, ShouldNotBeEmpty)
				So(notes[0].Text, ShouldContainSubstring, "Welcome to Evento")
			})
		})

		Convey("When asking the assistant", func() {
			resp, body := doJSON(http.MethodPost, srv.URL+"/assistant", map[string]any{"question": "how do I register"})

			Convey("Then a canned answer comes back", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body["answer"], ShouldContainSubstring, "Register")
			})
		})

		Convey("When reading the stats endpoint", func() {
			resp, body := doJSON(http.MethodGet, srv.URL+"/stats", nil)

			Convey("Then the aggregates are served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(body["totalEvents"], ShouldEqual, 6)
			})
		})

		Convey("When deleting an event", func() {
			resp, _ := doJSON(http.MethodDelete, srv.URL+"/events/2", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			Convey("Then it disappears from the catalog", func() {
				listResp, err := http.Get(srv.URL + "/events")
				So(err, ShouldBeNil)
				defer listResp.Body.Close()
				var events []model.Event
				So(json.NewDecoder(listResp.Body).Decode(&events), ShouldBeNil)
				So(events, ShouldHaveLength, 5)
			})
		})

		Convey("When hitting an endpoint with the wrong method", func() {
			resp, body := doJSON(http.MethodPut, srv.URL+"/events", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusMethodNotAllowed)
			So(body["code"], ShouldEqual, "method_not_allowed")
		})

		Convey("When using a non-numeric event id", func() {
			resp, body := doJSON(http.MethodPost, srv.URL+"/events/abc/register", nil)
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
			So(body["code"], ShouldEqual, "bad_request")
		})

		Convey("When scraping the health endpoint", func() {
			resp, err := http.Get(srv.URL + "/healthz")
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then the metrics registry is served", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
			})
		})
	})
}
