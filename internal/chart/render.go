// Package chart renders scatter datasets into a self-contained HTML page.
package chart

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"chartview/internal/logger"
)

//go:embed assets
var assetFiles embed.FS

// ErrEmptyDataset is returned for datasets that cannot span an axis range.
var ErrEmptyDataset = errors.New("dataset needs at least two points")

const (
	DefaultWidth  = 960
	DefaultHeight = 600
)

// palette is a qualitative colour cycle, one colour per group.
var palette = []string{
	"636efa", "ef553b", "00cc96", "ab63fa", "ffa15a",
	"19d3f3", "ff6692", "b6e880", "ff97ff", "fecb52",
}

type Renderer struct {
	width, height int
	page          *template.Template
	logger        logger.Logger
	now           func() time.Time
}

func NewRenderer(log logger.Logger) (*Renderer, error) {
	page, err := template.ParseFS(assetFiles, "assets/chart.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart template: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Renderer{
		width:  DefaultWidth,
		height: DefaultHeight,
		page:   page,
		logger: log,
		now:    time.Now,
	}, nil
}

// SetSize changes the SVG canvas size used for subsequent renders.
func (r *Renderer) SetSize(width, height int) {
	if width > 0 {
		r.width = width
	}
	if height > 0 {
		r.height = height
	}
}

// SVG draws the dataset as a scatter plot, one series per group.
func (r *Renderer) SVG(ds Dataset, w io.Writer) error {
	if len(ds.Points) < 2 {
		return ErrEmptyDataset
	}

	groups := ds.Groups()
	series := make([]gochart.Series, 0, len(groups))
	for i, g := range groups {
		var xs, ys []float64
		for _, p := range ds.Points {
			if p.Group == g {
				xs = append(xs, p.X)
				ys = append(ys, p.Y)
			}
		}
		name := g
		if name == "" {
			name = ds.YLabel
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(drawing.ColorFromHex(palette[i%len(palette)])),
		})
	}

	ch := gochart.Chart{
		Title:      ds.Title,
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      gochart.XAxis{Name: ds.XLabel},
		YAxis:      gochart.YAxis{Name: ds.YLabel},
		Series:     series,
	}
	if len(groups) > 1 {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}

	return ch.Render(gochart.SVG, w)
}

// Render writes the full HTML page for ds.
func (r *Renderer) Render(ds Dataset, w io.Writer) error {
	var svg bytes.Buffer
	if err := r.SVG(ds, &svg); err != nil {
		return fmt.Errorf("render %q: %w", ds.Name, err)
	}

	groupLabel := ds.GroupLabel
	if groupLabel == "" {
		groupLabel = "series"
	}

	return r.page.Execute(w, map[string]interface{}{
		"Title":      ds.Title,
		"Points":     len(ds.Points),
		"GroupLabel": groupLabel,
		"Generated":  r.now().Format("2006-01-02 15:04:05"),
		"SVG":        template.HTML(svg.String()),
	})
}

// RenderFile renders ds to path. The page is written to a temporary file in the
// same directory and renamed into place so the file server never reads a
// half-written artifact.
func (r *Renderer) RenderFile(ds Dataset, path string) error {
	var page bytes.Buffer
	if err := r.Render(ds, &page); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".chart-*.html")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(page.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod artifact: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("move artifact into place: %w", err)
	}

	r.logger.Info("ChartRenderer", "chart written", map[string]interface{}{
		"dataset": ds.Name,
		"path":    path,
		"bytes":   page.Len(),
	})
	return nil
}

// pointStyle renders points only, no connecting line. StrokeColor is what the
// legend draws its swatch with, so it must match the dots.
func pointStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		StrokeColor: col,
		DotWidth:    4,
		DotColor:    col,
	}
}
