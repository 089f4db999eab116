package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/udlz/scouting/internal/adapters/http/api"
	service "github.com/udlz/scouting/internal/app"
	"github.com/udlz/scouting/internal/domain/record"
)

func newMux(t *testing.T) (*http.ServeMux, *service.Service) {
	t.Helper()
	svc := service.New(
		service.WithDataDir(t.TempDir()),
		service.WithExportDir(t.TempDir()),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(context.Background(), mux)
	return mux, svc
}

func do(mux *http.ServeMux, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux, _ := newMux(t)

		Convey("Then the health endpoint serves metrics", func() {
			w := do(mux, "GET", "/healthz", "", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And the stats endpoint serves JSON", func() {
			w := do(mux, "GET", "/stats", "", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "tableRows")
		})

		Convey("And the dashboard endpoint is accessible", func() {
			w := do(mux, "GET", "/dashboard", "", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And unknown routes fall through to 404", func() {
			w := do(mux, "GET", "/unknown", "", nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestTablesEndpoints(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux, _ := newMux(t)

		Convey("When reading a known table", func() {
			w := do(mux, "GET", "/tables/Scout", "", nil)

			Convey("Then an empty table view comes back", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				var view struct {
					Table   string          `json:"table"`
					Columns []string        `json:"columns"`
					Rows    []record.Record `json:"rows"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &view), ShouldBeNil)
				So(view.Table, ShouldEqual, "Scout")
				So(view.Columns, ShouldContain, record.FieldScout)
			})
		})

		Convey("When reading an unknown table", func() {
			w := do(mux, "GET", "/tables/Fixture", "", nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When an admin replaces a table", func() {
			w := do(mux, "PUT", "/tables/Position",
				`{"rows":[{"Position":"Winger"},{"Position":"Striker"}]}`, nil)

			Convey("Then the rows persist", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				r := do(mux, "GET", "/tables/Position", "", nil)
				So(r.Body.String(), ShouldContainSubstring, "Winger")
			})
		})

		Convey("When a scout tries to replace a table", func() {
			w := do(mux, "PUT", "/tables/Position", `{"rows":[]}`,
				map[string]string{"X-Role": "scout", "X-Scout": "Ana"})

			Convey("Then the edit is forbidden", func() {
				So(w.Code, ShouldEqual, http.StatusForbidden)
			})
		})

		Convey("When appending a record as admin", func() {
			w := do(mux, "POST", "/tables/Scout/records", `{"Scout":"Ana"}`, nil)
			So(w.Code, ShouldEqual, http.StatusCreated)
		})

		Convey("When a scout appends to a reference table", func() {
			w := do(mux, "POST", "/tables/Scout/records", `{"Scout":"Eve"}`,
				map[string]string{"X-Role": "scout", "X-Scout": "Eve"})
			So(w.Code, ShouldEqual, http.StatusForbidden)
		})

		Convey("When a scout appends to the report table", func() {
			w := do(mux, "POST", "/tables/Report/records",
				`{"Player":"Iker","Scout":"Eve"}`,
				map[string]string{"X-Role": "scout", "X-Scout": "Eve"})
			So(w.Code, ShouldEqual, http.StatusCreated)
		})

		Convey("When the body is not JSON", func() {
			w := do(mux, "PUT", "/tables/Scout", `{broken`, nil)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestReportsEndpoints(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux, svc := newMux(t)
		ctx := context.Background()

		Convey("When posting a valid report", func() {
			w := do(mux, "POST", "/reports",
				`{"Player":"Iker","Scout":"Ana","Speed":4}`, nil)

			Convey("Then it lands in the report table", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				So(len(svc.LoadTable(ctx, record.TableReport).Rows), ShouldEqual, 1)
			})
		})

		Convey("When posting a report without a player", func() {
			w := do(mux, "POST", "/reports", `{"Scout":"Ana"}`, nil)

			Convey("Then the report is rejected and not persisted", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				So(svc.LoadTable(ctx, record.TableReport).Rows, ShouldBeEmpty)
			})
		})

		Convey("When a scout posts under another scout's name", func() {
			w := do(mux, "POST", "/reports",
				`{"Player":"Iker","Scout":"Somebody Else"}`,
				map[string]string{"X-Role": "scout", "X-Scout": "Luis"})

			Convey("Then the report is assigned to the caller", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				rows := svc.LoadTable(ctx, record.TableReport).Rows
				So(rows[0].Text(record.FieldScout), ShouldEqual, "Luis")
			})
		})

		Convey("When posting an unregistered-player report", func() {
			w := do(mux, "POST", "/reports/unregistered",
				`{"Player":"New Talent","Scout":"Ana","Club":"Sur CF"}`, nil)

			Convey("Then a player record is synthesized", func() {
				So(w.Code, ShouldEqual, http.StatusCreated)
				players := svc.LoadTable(ctx, record.TablePlayer).Rows
				So(len(players), ShouldEqual, 1)
				So(players[0].Text(record.FieldClub), ShouldEqual, "Sur CF")
			})
		})
	})
}

func TestAnalyticsEndpoints(t *testing.T) {
	Convey("Given a server with some reports", t, func() {
		mux, svc := newMux(t)
		ctx := context.Background()
		So(svc.SaveTable(ctx, record.TableReport, []record.Record{
			{record.FieldPlayer: "A", record.FieldScout: "Ana", "Speed": 4.0, "Stamina": 4.0, "Heading": 4.0},
			{record.FieldPlayer: "B", record.FieldScout: "Luis", "Speed": 2.0, "Stamina": 2.0, "Heading": 2.0},
		}), ShouldBeNil)

		Convey("When fetching a known player profile", func() {
			w := do(mux, "GET", "/players/A", "", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"reportCount":1`)
		})

		Convey("When fetching an unknown player", func() {
			w := do(mux, "GET", "/players/Ghost", "", nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When comparing two players", func() {
			w := do(mux, "GET", "/compare?players=A,B", "", nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"radar"`)
		})

		Convey("When comparing a single player", func() {
			w := do(mux, "GET", "/compare?players=A", "", nil)
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When exporting a report out of range", func() {
			w := do(mux, "POST", "/exports/report", `{"index":99}`, nil)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When exporting the first report", func() {
			w := do(mux, "POST", "/exports/report", `{"index":0}`, nil)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/pdf")
		})
	})
}
