package service

import (
	"context"
	"fmt"

	"github.com/udlz/scouting/internal/adapters/chart"
	"github.com/udlz/scouting/internal/domain/record"
	"github.com/udlz/scouting/internal/domain/stats"
	"github.com/udlz/scouting/pkg/logger"
)

// DashboardView aggregates the whole report table into headline totals,
// categorical charts and the standout ranking.
type DashboardView struct {
	TotalReports      int                `json:"totalReports"`
	ActiveScouts      int                `json:"activeScouts"`
	PlayersEvaluated  int                `json:"playersEvaluated"`
	ReportsByScout    *chart.Spec        `json:"reportsByScout"`
	ReportsByPosition *chart.Spec        `json:"reportsByPosition"`
	ReportsByAction   *chart.Spec        `json:"reportsByAction"`
	Standouts         []stats.PlayerMean `json:"standouts"`
}

// ProfileView is the analytical profile of one player. The identity card
// and the radar come from the latest report; older reports only fill
// demographic gaps.
type ProfileView struct {
	Player        string      `json:"player"`
	BirthDate     string      `json:"birthDate,omitempty"`
	Club          string      `json:"club,omitempty"`
	Position      string      `json:"position,omitempty"`
	PreferredFoot string      `json:"preferredFoot,omitempty"`
	ReportCount   int         `json:"reportCount"`
	Mean          float64     `json:"mean"`
	Stars         int         `json:"stars"`
	Radar         *chart.Spec `json:"radar"`
}

// CompareView places two or more players side by side.
type CompareView struct {
	Players []stats.PlayerMean `json:"players"`
	Radar   *chart.Spec        `json:"radar"`
}

// Dashboard computes the full dashboard from the current report table.
func (s *Service) Dashboard(ctx context.Context) *DashboardView {
	reports := s.store.Load(ctx, record.TableReport).Rows

	view := &DashboardView{
		TotalReports:      len(reports),
		ActiveScouts:      len(stats.CountBy(reports, record.FieldScout)),
		PlayersEvaluated:  len(stats.Players(reports)),
		ReportsByScout:    chart.Pie("Reports by Scout", stats.CountBy(reports, record.FieldScout)),
		ReportsByPosition: chart.Bar("Reports by Position", stats.CountBy(reports, record.FieldPosition), nil),
		ReportsByAction:   chart.Bar("Recommended Action", stats.CountBy(reports, record.FieldAction), chart.ActionColors()),
		Standouts:         stats.TopStandouts(reports, record.RatedAttributes, s.topStandouts),
	}
	return view
}

// PlayerProfile builds the profile view for one player. ErrNotFound when
// the player has no report.
func (s *Service) PlayerProfile(ctx context.Context, name string) (*ProfileView, error) {
	reports := s.store.Load(ctx, record.TableReport).Rows

	var own []record.Record
	for _, r := range reports {
		if r.Text(record.FieldPlayer) == name {
			own = append(own, r)
		}
	}
	if len(own) == 0 {
		return nil, fmt.Errorf("%w: no reports for player %q", ErrNotFound, name)
	}

	latest := own[len(own)-1]
	means := stats.PlayerMeans(reports, name, record.RatedAttributes)
	mean, _ := stats.OverallMean(means)

	values := make(map[string]float64)
	for _, f := range record.RatedAttributes {
		if v, ok := latest.Rated(f); ok {
			values[f] = v
		}
	}

	return &ProfileView{
		Player:        name,
		BirthDate:     profileField(own, record.FieldBirthDate),
		Club:          profileField(own, record.FieldClub),
		Position:      stats.PlayerPosition(reports, name),
		PreferredFoot: profileField(own, record.FieldPreferredFoot),
		ReportCount:   len(own),
		Mean:          mean,
		Stars:         stats.Stars(mean),
		Radar:         chart.Radar(name, chart.Vector{Name: name, Values: values}),
	}, nil
}

// profileField returns the most recent non-blank value of a demographic
// field across the player's reports.
func profileField(own []record.Record, field string) string {
	for i := len(own) - 1; i >= 0; i-- {
		if v := own[i].Text(field); v != "" {
			return v
		}
	}
	return ""
}

// Compare builds mean cards and a multi-series radar for two or more
// players. A non-empty position restricts the source reports to that
// position before averaging.
func (s *Service) Compare(ctx context.Context, players []string, position string) (*CompareView, error) {
	if len(players) < 2 {
		return nil, ErrTooFewPlayers
	}

	reports := s.store.Load(ctx, record.TableReport).Rows
	if position != "" {
		var filtered []record.Record
		for _, r := range reports {
			if r.Text(record.FieldPosition) == position {
				filtered = append(filtered, r)
			}
		}
		reports = filtered
	}

	view := &CompareView{}
	var vectors []chart.Vector
	for _, name := range players {
		mv := stats.PlayerMeans(reports, name, record.RatedAttributes)
		if m, ok := stats.OverallMean(mv); ok {
			view.Players = append(view.Players, stats.PlayerMean{Player: name, Mean: m, Stars: stats.Stars(m)})
		} else {
			view.Players = append(view.Players, stats.PlayerMean{Player: name})
		}
		vectors = append(vectors, chart.Vector{Name: name, Values: mv})
	}
	view.Radar = chart.Radar("Player Comparison", vectors...)
	return view, nil
}

// ExportReport renders the report at the given index of the report table
// to a PDF and returns the written file path.
func (s *Service) ExportReport(ctx context.Context, index int) (string, error) {
	reports := s.store.Load(ctx, record.TableReport).Rows
	if index < 0 || index >= len(reports) {
		return "", fmt.Errorf("%w: report index %d", ErrNotFound, index)
	}

	path, err := s.renderer.Generate(ctx, reports[index], reports)
	if err != nil {
		return "", err
	}
	s.logger.Info(ctx, "report exported", logger.String("path", path), logger.Int("index", index))
	return path, nil
}

// GetStats reports service health details for the stats endpoint. The
// lock keeps the started flag consistent with Start and Stop.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[string]interface{}{
		"started":       s.started,
		"dataDir":       s.dataDir,
		"exportDir":     s.exportDir,
		"topStandouts":  s.topStandouts,
		"documentTitle": s.documentTitle,
	}
	rows := make(map[string]int, len(record.Tables()))
	for _, t := range record.Tables() {
		rows[string(t)] = len(s.store.Load(ctx, t).Rows)
	}
	out["tableRows"] = rows
	return out
}
