// Package chart renders a rollstat.Frame as three stacked time-series panels:
// price with its moving average, rolling volatility, and rolling Sharpe
// ratio. Rows where a statistic is NaN are drawn as gaps in the line.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/quantfold/rollstat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	priceColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	meanColor  = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	volColor   = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	shrpColor  = color.RGBA{R: 148, G: 103, B: 189, A: 255}
	zeroColor  = color.RGBA{A: 255}
)

// Render draws the frame and writes it as a PNG to path. The window size only
// appears in the panel titles.
func Render(f *rollstat.Frame, window int, symbol string, path string) error {
	if f.Len() == 0 {
		return fmt.Errorf("chart: empty frame")
	}

	pricePanel := newPanel(fmt.Sprintf("%s Price Stream + Moving Average", symbol))
	if err := addSeries(pricePanel, "Price", priceColor, f.Time, f.Price); err != nil {
		return err
	}
	if err := addSeries(pricePanel, fmt.Sprintf("%d-Period MA", window), meanColor, f.Time, f.Mean); err != nil {
		return err
	}

	volPanel := newPanel("Rolling Volatility")
	if err := addSeries(volPanel, "Volatility", volColor, f.Time, f.Volatility); err != nil {
		return err
	}

	sharpePanel := newPanel("Rolling Sharpe Ratio")
	if err := addSeries(sharpePanel, "Sharpe", shrpColor, f.Time, f.Sharpe); err != nil {
		return err
	}
	if err := addZeroLine(sharpePanel, f.Time); err != nil {
		return err
	}

	img := vgimg.New(12*vg.Inch, 10*vg.Inch)
	dc := draw.New(img)
	panels := [][]*plot.Plot{{pricePanel}, {volPanel}, {sharpePanel}}
	tiles := draw.Tiles{Rows: 3, Cols: 1, PadY: vg.Millimeter * 2}
	canvases := plot.Align(panels, tiles, dc)
	for i := range panels {
		panels[i][0].Draw(canvases[i][0])
	}

	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("chart: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	return nil
}

func newPanel(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

// addSeries adds one line per contiguous run of finite values, so NaN rows
// show up as breaks in the line, matching how chart libraries gap missing
// data.
func addSeries(p *plot.Plot, name string, c color.Color, times []time.Time, ys []float64) error {
	first := true
	for _, seg := range segments(times, ys) {
		line, err := plotter.NewLine(seg)
		if err != nil {
			return fmt.Errorf("chart: %w", err)
		}
		line.Color = c
		line.Width = vg.Points(1)
		p.Add(line)
		if first {
			p.Legend.Add(name, line)
			first = false
		}
	}
	return nil
}

// segments splits a series into runs of consecutive finite values.
func segments(times []time.Time, ys []float64) []plotter.XYs {
	var segs []plotter.XYs
	var cur plotter.XYs
	for i, y := range ys {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			if len(cur) > 0 {
				segs = append(segs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: float64(times[i].Unix()), Y: y})
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

func addZeroLine(p *plot.Plot, times []time.Time) error {
	if len(times) == 0 {
		return nil
	}
	pts := plotter.XYs{
		{X: float64(times[0].Unix()), Y: 0},
		{X: float64(times[len(times)-1].Unix()), Y: 0},
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	line.Color = zeroColor
	line.Width = vg.Points(0.5)
	p.Add(line)
	return nil
}
