package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	service "github.com/udlz/scouting/internal/app"
	"github.com/udlz/scouting/internal/domain/record"
)

func startService(t *testing.T) *service.Service {
	t.Helper()
	svc := service.New(
		service.WithDataDir(t.TempDir()),
		service.WithExportDir(t.TempDir()),
	)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatalf("start service: %v", err)
	}
	return svc
}

func TestCreateReport(t *testing.T) {
	ctx := context.Background()

	Convey("Given a running service", t, func() {
		svc := startService(t)

		Convey("When an admin files a complete report", func() {
			err := svc.CreateReport(ctx, record.Record{
				record.FieldPlayer: "Iker",
				record.FieldScout:  "Ana",
				"Speed":            4.0,
			}, "admin", "")

			Convey("Then the report persists", func() {
				So(err, ShouldBeNil)
				view := svc.LoadTable(ctx, record.TableReport)
				So(len(view.Rows), ShouldEqual, 1)
				So(view.Rows[0].Text(record.FieldScout), ShouldEqual, "Ana")
			})
		})

		Convey("When a scout files a report under another name", func() {
			err := svc.CreateReport(ctx, record.Record{
				record.FieldPlayer: "Iker",
				record.FieldScout:  "Somebody Else",
			}, "scout", "Luis")

			Convey("Then the report is assigned to the caller", func() {
				So(err, ShouldBeNil)
				view := svc.LoadTable(ctx, record.TableReport)
				So(view.Rows[0].Text(record.FieldScout), ShouldEqual, "Luis")
			})
		})

		Convey("When the player name is blank", func() {
			err := svc.CreateReport(ctx, record.Record{
				record.FieldPlayer: "   ",
				record.FieldScout:  "Ana",
			}, "admin", "")

			Convey("Then validation fails and nothing persists", func() {
				So(errors.Is(err, service.ErrValidation), ShouldBeTrue)
				So(svc.LoadTable(ctx, record.TableReport).Rows, ShouldBeEmpty)
			})
		})

		Convey("When the scout name is blank", func() {
			err := svc.CreateReport(ctx, record.Record{
				record.FieldPlayer: "Iker",
			}, "admin", "")

			So(errors.Is(err, service.ErrValidation), ShouldBeTrue)
		})
	})
}

func TestCreateUnregisteredReport(t *testing.T) {
	ctx := context.Background()

	Convey("Given a running service with one known player", t, func() {
		svc := startService(t)
		So(svc.AppendRecord(ctx, record.TablePlayer, record.Record{
			record.FieldPlayer: "Known One",
		}), ShouldBeNil)

		Convey("When reporting on an unknown player", func() {
			err := svc.CreateUnregisteredReport(ctx, record.Record{
				record.FieldPlayer:    "New Talent",
				record.FieldScout:     "Ana",
				record.FieldBirthDate: "01-01-2005",
				record.FieldClub:      "Sur CF",
			}, "admin", "")

			Convey("Then the report and a synthesized player persist", func() {
				So(err, ShouldBeNil)
				players := svc.LoadTable(ctx, record.TablePlayer).Rows
				So(len(players), ShouldEqual, 2)
				So(players[1].Text(record.FieldPlayer), ShouldEqual, "New Talent")
				So(players[1].Text(record.FieldClub), ShouldEqual, "Sur CF")
			})
		})

		Convey("When reporting on an already registered player", func() {
			err := svc.CreateUnregisteredReport(ctx, record.Record{
				record.FieldPlayer: "Known One",
				record.FieldScout:  "Ana",
			}, "admin", "")

			Convey("Then no duplicate player row appears", func() {
				So(err, ShouldBeNil)
				So(len(svc.LoadTable(ctx, record.TablePlayer).Rows), ShouldEqual, 1)
			})
		})
	})
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()

	Convey("Given reports from two scouts", t, func() {
		svc := startService(t)
		reports := []record.Record{
			{record.FieldPlayer: "A", record.FieldScout: "Ana", record.FieldPosition: "Winger",
				record.FieldAction: record.ActionSign, "Speed": 5.0},
			{record.FieldPlayer: "B", record.FieldScout: "Ana", record.FieldPosition: "Striker",
				record.FieldAction: record.ActionDiscard, "Speed": 1.0},
			{record.FieldPlayer: "A", record.FieldScout: "Luis", record.FieldPosition: "Winger",
				record.FieldAction: record.ActionSign, "Speed": 3.0},
		}
		So(svc.SaveTable(ctx, record.TableReport, reports), ShouldBeNil)

		view := svc.Dashboard(ctx)

		Convey("Then the totals count reports, scouts, and players", func() {
			So(view.TotalReports, ShouldEqual, 3)
			So(view.ActiveScouts, ShouldEqual, 2)
			So(view.PlayersEvaluated, ShouldEqual, 2)
		})

		Convey("And only players above the mean of means stand out", func() {
			So(len(view.Standouts), ShouldEqual, 1)
			So(view.Standouts[0].Player, ShouldEqual, "A")
		})

		Convey("And the categorical charts are populated", func() {
			So(view.ReportsByScout.Kind, ShouldEqual, "pie")
			So(view.ReportsByPosition.Kind, ShouldEqual, "bar")
			So(view.ReportsByAction.Kind, ShouldEqual, "bar")
			So(view.ReportsByAction.Series[0].Data[0].Label, ShouldEqual, record.ActionSign)
		})
	})
}

func TestPlayerProfile(t *testing.T) {
	ctx := context.Background()

	Convey("Given a player with two reports", t, func() {
		svc := startService(t)
		So(svc.SaveTable(ctx, record.TableReport, []record.Record{
			{record.FieldPlayer: "Iker", record.FieldClub: "Norte FC", record.FieldPosition: "Striker",
				"Speed": 2.0, "Stamina": 2.0},
			{record.FieldPlayer: "Iker", "Speed": 4.0, "Finishing": 5.0},
		}), ShouldBeNil)

		Convey("When building the profile", func() {
			profile, err := svc.PlayerProfile(ctx, "Iker")

			Convey("Then older reports fill the demographic gaps", func() {
				So(err, ShouldBeNil)
				So(profile.Club, ShouldEqual, "Norte FC")
				So(profile.Position, ShouldEqual, "Striker")
				So(profile.ReportCount, ShouldEqual, 2)
			})

			Convey("And the mean spans all the player's reports", func() {
				// Speed (2+4)/2=3, Stamina 2, Finishing 5 -> 10/3
				So(profile.Mean, ShouldAlmostEqual, 10.0/3.0)
				So(profile.Stars, ShouldEqual, 3)
			})
		})

		Convey("When the player is unknown", func() {
			_, err := svc.PlayerProfile(ctx, "Ghost")
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestCompare(t *testing.T) {
	ctx := context.Background()

	Convey("Given reports for two players", t, func() {
		svc := startService(t)
		So(svc.SaveTable(ctx, record.TableReport, []record.Record{
			{record.FieldPlayer: "A", "Speed": 4.0, "Stamina": 4.0, "Heading": 4.0},
			{record.FieldPlayer: "B", "Speed": 2.0, "Stamina": 2.0, "Heading": 2.0},
		}), ShouldBeNil)

		Convey("When comparing both players", func() {
			view, err := svc.Compare(ctx, []string{"A", "B"}, "")

			Convey("Then each player gets a mean card", func() {
				So(err, ShouldBeNil)
				So(len(view.Players), ShouldEqual, 2)
				So(view.Players[0].Mean, ShouldEqual, 4.0)
				So(view.Players[1].Mean, ShouldEqual, 2.0)
			})

			Convey("And the radar holds one series per player", func() {
				So(view.Radar.Placeholder, ShouldBeFalse)
				So(len(view.Radar.Series), ShouldEqual, 2)
			})
		})

		Convey("When fewer than two players are named", func() {
			_, err := svc.Compare(ctx, []string{"A"}, "")
			So(errors.Is(err, service.ErrTooFewPlayers), ShouldBeTrue)
		})
	})
}

func TestGetStats(t *testing.T) {
	ctx := context.Background()

	Convey("Given a running service", t, func() {
		svc := startService(t)

		Convey("Then the snapshot reflects the lifecycle flag", func() {
			So(svc.GetStats(ctx)["started"], ShouldBeTrue)
			svc.Stop()
			So(svc.GetStats(ctx)["started"], ShouldBeFalse)
		})

		Convey("When readers race the lifecycle", func() {
			var wg sync.WaitGroup
			for i := 0; i < 4; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = svc.GetStats(ctx)
				}()
			}
			svc.Stop()
			wg.Wait()

			Convey("Then a restart still reports cleanly", func() {
				So(svc.Start(ctx), ShouldBeNil)
				So(svc.GetStats(ctx)["started"], ShouldBeTrue)
			})
		})
	})
}

func TestExportReport(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service with no reports", t, func() {
		svc := startService(t)

		Convey("Then exporting any index fails with not found", func() {
			_, err := svc.ExportReport(ctx, 0)
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
		})
	})
}
