// Package report assembles one scouting report into a paginated A4 PDF:
// branded header, player identity block, attribute and statistic tables,
// a two-panel radar comparison row, and free-text observations.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/udlz/scouting/internal/adapters/chart"
	"github.com/udlz/scouting/internal/domain/record"
	"github.com/udlz/scouting/internal/domain/stats"
	"github.com/udlz/scouting/pkg/logger"
	"github.com/udlz/scouting/pkg/metrics"
)

// Renderer produces PDF exports of scouting reports.
type Renderer struct {
	title         string
	exportDir     string
	crestPath     string
	watermarkPath string
	fontPath      string
	log           logger.Logger
}

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithTitle sets the document header title.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.title = title
		}
	}
}

// WithExportDir sets where generated PDFs are written.
func WithExportDir(dir string) Option {
	return func(r *Renderer) {
		if dir != "" {
			r.exportDir = dir
		}
	}
}

// WithBranding sets the crest and watermark image paths. Missing assets
// are skipped at generation time.
func WithBranding(crest, watermark string) Option {
	return func(r *Renderer) {
		r.crestPath = crest
		r.watermarkPath = watermark
	}
}

// WithFontPath sets the Unicode TTF used for text. When the file is
// absent the renderer falls back to a core font whose restricted glyph
// set may degrade non-ASCII text, star glyphs included.
func WithFontPath(path string) Option {
	return func(r *Renderer) {
		r.fontPath = path
	}
}

// WithLogger sets a custom logger for the renderer.
func WithLogger(l logger.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRenderer creates a Renderer with defaults.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		title:     "Scouting Department",
		exportDir: ".",
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		r.log = logger.Get()
	}
	return r
}

// doc bundles the in-flight PDF with its resolved font family.
type doc struct {
	pdf    *fpdf.Fpdf
	family string
}

// setFont switches size on the resolved family, regular style.
func (d *doc) setFont(size float64) {
	d.pdf.SetFont(d.family, "", size)
}

// ensureSpace starts a new page when fewer than need millimetres remain
// above the bottom margin. Every block placement goes through this check.
func (d *doc) ensureSpace(need float64) {
	_, pageH := d.pdf.GetPageSize()
	_, _, _, bottom := d.pdf.GetMargins()
	if d.pdf.GetY()+need > pageH-bottom {
		d.pdf.AddPage()
	}
}

// Generate renders one report record to a PDF file and returns its path.
// allReports feeds the comparison radars; a failure while building those
// is absorbed and the document completes without that section.
func (r *Renderer) Generate(ctx context.Context, rep record.Record, allReports []record.Record) (string, error) {
	start := time.Now()

	player := rep.Text(record.FieldPlayer)
	if player == "" {
		player = "unknown"
	}
	reportDate := rep.Text(record.FieldReportDate)
	if reportDate == "" {
		reportDate = time.Now().Format("02-01-2006")
	}
	fileName := fmt.Sprintf("Informe_%s_%s.pdf",
		strings.ReplaceAll(player, " ", "_"), reportDate)
	outPath := filepath.Join(r.exportDir, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, pageBreakMargin)
	pdf.AddPage()

	d := &doc{pdf: pdf, family: "Arial"}
	if r.fontPath != "" {
		if _, err := os.Stat(r.fontPath); err == nil {
			pdf.AddUTF8Font("DejaVu", "", r.fontPath)
			d.family = "DejaVu"
		} else {
			r.log.Warn(ctx, "unicode font missing, using core font fallback",
				logger.String("font", r.fontPath))
		}
	}

	r.drawHeader(d, rep)
	r.drawIdentityBlock(d, rep)
	r.drawAttributeTable(d, rep)
	r.drawPercentageTable(d, rep)

	if err := r.drawRadarRow(d, rep, allReports, player); err != nil {
		// Chart failures never break the export.
		r.log.Warn(ctx, "radar section skipped", logger.Error(err))
	}

	r.drawObservations(d, rep)

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		metrics.RecordPDFExportError()
		return "", fmt.Errorf("%w: %w", ErrGenerate, err)
	}
	metrics.RecordPDFExport(float64(time.Since(start).Milliseconds()))
	r.log.Info(ctx, "report exported",
		logger.String("player", player), logger.String("file", outPath))
	return outPath, nil
}

func (r *Renderer) drawHeader(d *doc, rep record.Record) {
	pdf := d.pdf
	pageW, pageH := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usableW := pageW - left - right

	// Watermark and crest are optional branding; a missing asset is
	// skipped, never fatal.
	if exists(r.watermarkPath) {
		const wmW, wmH = 160, 240
		pdf.ImageOptions(r.watermarkPath, (pageW-wmW)/2, (pageH-wmH)/1.3, wmW, wmH,
			false, fpdf.ImageOptions{}, 0, "")
	}
	if exists(r.crestPath) {
		pdf.ImageOptions(r.crestPath, left, 2.5, 25, 35,
			false, fpdf.ImageOptions{}, 0, "")
	}

	pdf.SetXY(left, 5)
	d.setFont(20)
	pdf.CellFormat(usableW, 10, r.title, "", 1, "C", false, 0, "")

	pdf.SetY(pdf.GetY() + 5)
	d.setFont(13)
	sub := fmt.Sprintf("Date: %s    -    Scout: %s",
		rep.Text(record.FieldReportDate), rep.Text(record.FieldScout))
	pdf.CellFormat(usableW, 7, sub, "", 1, "C", false, 0, "")
	pdf.Ln(12)

	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.8)
	y := pdf.GetY()
	pdf.Line(left, y, left+usableW, y)
	pdf.Ln(6)
}

func (r *Renderer) drawIdentityBlock(d *doc, rep record.Record) {
	pdf := d.pdf
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usableW := pageW - left - right

	d.setFont(12)
	lines := []struct{ label, field string }{
		{"Player", record.FieldPlayer},
		{"Birth date", record.FieldBirthDate},
		{"Club", record.FieldClub},
		{"Position", record.FieldPosition},
		{"Preferred foot", record.FieldPreferredFoot},
	}
	for _, l := range lines {
		d.ensureSpace(lineHeightMM)
		pdf.CellFormat(usableW, lineHeightMM,
			fmt.Sprintf("%s: %s", l.label, rep.Text(l.field)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
}

// starGlyphs renders a 0-5 rating as filled and hollow stars. The hollow
// glyph needs the Unicode font; the core-font fallback degrades here.
func starGlyphs(n int) string {
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func (r *Renderer) drawAttributeTable(d *doc, rep record.Record) {
	r.drawValueTable(d, rep, "Rated attributes", "Value (0-5)", record.RatedAttributes,
		func(v float64) string { return starGlyphs(stats.Stars(v)) })
}

func (r *Renderer) drawPercentageTable(d *doc, rep record.Record) {
	r.drawValueTable(d, rep, "Match statistics", "Value", record.PercentageStats,
		func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) + "%" })
}

// drawValueTable writes a shaded two-column header and one row per field
// holding a rated (non-zero) value. Unrated fields are omitted entirely.
func (r *Renderer) drawValueTable(d *doc, rep record.Record, header, valueHeader string, fields []string, format func(float64) string) {
	pdf := d.pdf
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usableW := pageW - left - right
	nameCol := usableW * 0.75
	valCol := usableW * 0.25

	d.setFont(12)
	d.ensureSpace(rowHeightMM)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(nameCol, rowHeightMM, header, "", 0, "L", true, 0, "")
	pdf.CellFormat(valCol, rowHeightMM, valueHeader, "", 1, "C", true, 0, "")

	for _, field := range fields {
		v, ok := rep.Rated(field)
		if !ok {
			continue
		}
		d.ensureSpace(rowHeightMM)
		pdf.CellFormat(nameCol, rowHeightMM, field, "", 0, "L", false, 0, "")
		pdf.CellFormat(valCol, rowHeightMM, format(v), "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)
}

// drawRadarRow builds the two comparison radars (report vs player mean,
// player mean vs position mean), renders them to temporary PNGs, and
// places them side by side. Temp files live only for this call.
func (r *Renderer) drawRadarRow(d *doc, rep record.Record, allReports []record.Record, player string) error {
	current := make(map[string]float64)
	for _, attr := range record.RatedAttributes {
		if v, ok := rep.Rated(attr); ok {
			current[attr] = v
		}
	}
	playerMean := stats.PlayerMeans(allReports, player, record.RatedAttributes)
	position := stats.PlayerPosition(allReports, player)
	positionMean := stats.PositionMeans(allReports, position, record.RatedAttributes)

	if len(current) == 0 || len(playerMean) == 0 || len(positionMean) == 0 {
		return nil
	}

	leftSpec := chart.Radar(fmt.Sprintf("%s - Report vs Mean", player),
		chart.Vector{Name: "Report", Values: current},
		chart.Vector{Name: "Mean", Values: playerMean},
	)
	rightTitle := position
	if rightTitle == "" {
		rightTitle = "Position"
	}
	rightSpec := chart.Radar(fmt.Sprintf("%s - Mean vs %s", player, rightTitle),
		chart.Vector{Name: player, Values: playerMean},
		chart.Vector{Name: rightTitle, Values: positionMean},
	)

	tmpDir := os.TempDir()
	leftPath := filepath.Join(tmpDir, fmt.Sprintf("radar_%s.png", uuid.NewString()))
	rightPath := filepath.Join(tmpDir, fmt.Sprintf("radar_%s.png", uuid.NewString()))
	defer func() {
		// Best-effort cleanup; failures are swallowed.
		_ = os.Remove(leftPath)
		_ = os.Remove(rightPath)
	}()

	if err := chart.RenderPNG(leftSpec, leftPath, r.fontPath); err != nil {
		return err
	}
	if err := chart.RenderPNG(rightSpec, rightPath, r.fontPath); err != nil {
		return err
	}
	return r.insertTwoImagesRow(d, leftPath, rightPath, radarWidthMM, radarGapMM, radarPadBottom)
}

// insertTwoImagesRow places two images on one row at the same top Y. The
// row height is the taller of the two; if the requested width would
// overflow the usable page width both images shrink proportionally.
func (r *Renderer) insertTwoImagesRow(d *doc, leftPath, rightPath string, wantW, gap, padBottom float64) error {
	pdf := d.pdf
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()

	w := fitTwoAcross(pageW, left, right, gap, wantW)

	lw, lh, err := pngDimensions(leftPath)
	if err != nil {
		return err
	}
	rw, rh, err := pngDimensions(rightPath)
	if err != nil {
		return err
	}
	rowH := scaledHeight(lw, lh, w)
	if h := scaledHeight(rw, rh, w); h > rowH {
		rowH = h
	}

	d.ensureSpace(rowH)
	y0 := pdf.GetY()
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.ImageOptions(leftPath, left, y0, w, 0, false, opts, 0, "")
	pdf.ImageOptions(rightPath, left+w+gap, y0, w, 0, false, opts, 0, "")
	pdf.SetY(y0 + rowH + padBottom)

	if pdf.Err() {
		return pdf.Error()
	}
	return nil
}

func (r *Renderer) drawObservations(d *doc, rep record.Record) {
	obs := rep.Text(record.FieldObservations)
	if obs == "" {
		return
	}
	pdf := d.pdf
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usableW := pageW - left - right
	nameCol := usableW * 0.75
	valCol := usableW * 0.25

	d.setFont(12)
	d.ensureSpace(rowHeightMM + 2 + lineHeightMM)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(nameCol, rowHeightMM, "Observations", "", 0, "L", true, 0, "")
	pdf.CellFormat(valCol, rowHeightMM, "", "", 1, "C", true, 0, "")
	pdf.Ln(2)

	y := pdf.GetY()
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(left, y, usableW, 40, "F")
	pdf.SetXY(left, y)
	pdf.MultiCell(usableW, lineHeightMM, obs, "", "L", false)
	pdf.Ln(10)
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
