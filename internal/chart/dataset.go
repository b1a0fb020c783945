package chart

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
)

//go:embed data/*.csv
var dataFiles embed.FS

type Point struct {
	X, Y  float64
	Group string
}

// Dataset is one scatter chart worth of points.
type Dataset struct {
	Name   string
	Title  string
	XLabel string
	YLabel string
	// GroupLabel names the column that colours the points.
	GroupLabel string
	Points     []Point
}

// Groups returns the distinct group names in first-seen order.
func (d Dataset) Groups() []string {
	seen := make(map[string]bool)
	var groups []string
	for _, p := range d.Points {
		if !seen[p.Group] {
			seen[p.Group] = true
			groups = append(groups, p.Group)
		}
	}
	return groups
}

type builtin struct {
	file     string
	title    string
	xCol     string
	yCol     string
	groupCol string
}

var builtins = map[string]builtin{
	"iris": {
		file:     "data/iris.csv",
		title:    "Interactive Iris Chart",
		xCol:     "sepal_width",
		yCol:     "sepal_length",
		groupCol: "species",
	},
	"tips": {
		file:     "data/tips.csv",
		title:    "Tips by Total Bill",
		xCol:     "total_bill",
		yCol:     "tip",
		groupCol: "day",
	},
}

// Builtins lists the embedded dataset names.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadBuiltin parses one of the embedded datasets.
func LoadBuiltin(name string) (Dataset, error) {
	b, ok := builtins[name]
	if !ok {
		return Dataset{}, fmt.Errorf("unknown dataset %q", name)
	}

	f, err := dataFiles.Open(b.file)
	if err != nil {
		return Dataset{}, fmt.Errorf("open dataset %q: %w", name, err)
	}
	defer f.Close()

	ds, err := ReadCSV(f, b.xCol, b.yCol, b.groupCol)
	if err != nil {
		return Dataset{}, fmt.Errorf("dataset %q: %w", name, err)
	}
	ds.Name = name
	ds.Title = b.title
	return ds, nil
}

// ReadCSV reads a headed CSV and picks the x, y and group columns by name.
// An empty groupCol puts every point in a single unnamed group.
func ReadCSV(r io.Reader, xCol, yCol, groupCol string) (Dataset, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return Dataset{}, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}
	xi, ok := index[xCol]
	if !ok {
		return Dataset{}, fmt.Errorf("missing column %q", xCol)
	}
	yi, ok := index[yCol]
	if !ok {
		return Dataset{}, fmt.Errorf("missing column %q", yCol)
	}
	gi := -1
	if groupCol != "" {
		if gi, ok = index[groupCol]; !ok {
			return Dataset{}, fmt.Errorf("missing column %q", groupCol)
		}
	}

	ds := Dataset{XLabel: xCol, YLabel: yCol, GroupLabel: groupCol}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("line %d: %w", line, err)
		}

		x, err := strconv.ParseFloat(rec[xi], 64)
		if err != nil {
			return Dataset{}, fmt.Errorf("line %d: %s: %w", line, xCol, err)
		}
		y, err := strconv.ParseFloat(rec[yi], 64)
		if err != nil {
			return Dataset{}, fmt.Errorf("line %d: %s: %w", line, yCol, err)
		}
		p := Point{X: x, Y: y}
		if gi >= 0 {
			p.Group = rec[gi]
		}
		ds.Points = append(ds.Points, p)
	}

	return ds, nil
}
