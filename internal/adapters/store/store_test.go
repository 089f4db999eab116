package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/udlz/scouting/internal/adapters/store"
	"github.com/udlz/scouting/internal/domain/record"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()

	Convey("Given a data directory with no table files", t, func() {
		dir := t.TempDir()
		s := store.New(dir)

		Convey("When loading a table for the first time", func() {
			view := s.Load(ctx, record.TableScout)

			Convey("Then the table is empty", func() {
				So(view.Rows, ShouldBeEmpty)
			})

			Convey("And an empty table file is created", func() {
				data, err := os.ReadFile(filepath.Join(dir, "Scout.json"))
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "[]")
			})

			Convey("And the columns follow the default schema", func() {
				So(view.Columns, ShouldResemble, []string{record.FieldScout, record.FieldJoinDate})
			})
		})
	})

	Convey("Given a corrupt table file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "Player.json")
		So(os.WriteFile(path, []byte("{not json"), 0o600), ShouldBeNil)
		s := store.New(dir)

		Convey("Then loading recovers silently with an empty table", func() {
			view := s.Load(ctx, record.TablePlayer)
			So(view.Rows, ShouldBeEmpty)
		})
	})
}

func TestSaveAndAppend(t *testing.T) {
	ctx := context.Background()

	Convey("Given a store", t, func() {
		dir := t.TempDir()
		s := store.New(dir)

		Convey("When saving rows with blank fields", func() {
			rows := []record.Record{
				{record.FieldPlayer: "Iker", record.FieldClub: "  ", record.FieldBirthDate: nil},
				{record.FieldPlayer: "Xavi", record.FieldClub: "Norte FC"},
			}
			So(s.Save(ctx, record.TablePlayer, rows), ShouldBeNil)

			Convey("Then a reload returns the rows without the blanks", func() {
				view := s.Load(ctx, record.TablePlayer)
				So(len(view.Rows), ShouldEqual, 2)
				So(view.Rows[0].Text(record.FieldPlayer), ShouldEqual, "Iker")
				_, hasClub := view.Rows[0][record.FieldClub]
				So(hasClub, ShouldBeFalse)
				So(view.Rows[1].Text(record.FieldClub), ShouldEqual, "Norte FC")
			})
		})

		Convey("When saving replaces an existing table", func() {
			So(s.Save(ctx, record.TablePosition, []record.Record{
				{record.FieldPosition: "Winger"},
				{record.FieldPosition: "Striker"},
			}), ShouldBeNil)
			So(s.Save(ctx, record.TablePosition, []record.Record{
				{record.FieldPosition: "Goalkeeper"},
			}), ShouldBeNil)

			Convey("Then only the new rows remain", func() {
				view := s.Load(ctx, record.TablePosition)
				So(len(view.Rows), ShouldEqual, 1)
				So(view.Rows[0].Text(record.FieldPosition), ShouldEqual, "Goalkeeper")
			})
		})

		Convey("When appending records one by one", func() {
			So(s.Append(ctx, record.TableScout, record.Record{record.FieldScout: "Ana"}), ShouldBeNil)
			So(s.Append(ctx, record.TableScout, record.Record{record.FieldScout: "Luis"}), ShouldBeNil)

			Convey("Then the rows accumulate in order", func() {
				view := s.Load(ctx, record.TableScout)
				So(len(view.Rows), ShouldEqual, 2)
				So(view.Rows[0].Text(record.FieldScout), ShouldEqual, "Ana")
				So(view.Rows[1].Text(record.FieldScout), ShouldEqual, "Luis")
			})
		})

		Convey("When rows carry fields outside the default schema", func() {
			So(s.Save(ctx, record.TableScout, []record.Record{
				{record.FieldScout: "Ana", "Region": "North"},
			}), ShouldBeNil)

			Convey("Then extra columns append after the schema columns", func() {
				view := s.Load(ctx, record.TableScout)
				So(view.Columns, ShouldResemble, []string{record.FieldScout, record.FieldJoinDate, "Region"})
			})
		})

		Convey("When one row carries several extra fields", func() {
			So(s.Save(ctx, record.TableScout, []record.Record{
				{record.FieldScout: "Ana", "Region": "North", "Badge": "UEFA B", "Languages": "es,en"},
				{record.FieldScout: "Luis", "Agency": "Libre"},
			}), ShouldBeNil)

			Convey("Then extras stay in row order, sorted within each row", func() {
				for i := 0; i < 5; i++ {
					view := s.Load(ctx, record.TableScout)
					So(view.Columns, ShouldResemble, []string{
						record.FieldScout, record.FieldJoinDate,
						"Badge", "Languages", "Region", "Agency",
					})
				}
			})
		})
	})
}
