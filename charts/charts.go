package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/tempio/commander-tracker/models"
)

var palette = []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE", "#3BA272", "#FC8452", "#9A60B4", "#EA7CCC"}

const (
	chartWidth  = "900px"
	chartHeight = "460px"
)

// RenderDashboard writes the full dashboard page (players, pairs,
// commanders, pods, activity, pairing bubbles) as a standalone HTML
// document.
func RenderDashboard(w io.Writer, payload *models.DashboardPayload) error {
	title := "Game night dashboard"
	if payload.Weighted {
		title = fmt.Sprintf("Bracket-weighted dashboard (alpha %.2f)", payload.Alpha)
	}

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(
		playerBar(payload.TopPlayers, payload.Weighted),
		commanderBar(payload.TopCommanders),
		podBar(payload.PodSizes),
		activityLine(payload.Activity),
		bubbleScatter("Player / commander pairings", payload.Bubbles),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render dashboard page: %w", err)
	}
	return nil
}

// RenderPlayerDashboard writes the per-player drill-down page.
func RenderPlayerDashboard(w io.Writer, payload *models.PlayerDashboardPayload) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("%s — player dashboard", payload.Player)
	page.AddCharts(
		trendLine(fmt.Sprintf("%s cumulative weighted win-rate", payload.Player), payload.Trend),
		playerPodBar(payload.Pods),
		pairBar(payload.Commanders),
		bubbleScatter("Commander pairings", payload.Bubbles),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render player page: %w", err)
	}
	return nil
}

func baseOptions(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
			Theme:  "light",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithColorsOpts(opts.Colors{palette[0], palette[1], palette[2]}),
	}
}

func playerBar(rows []models.PlayerRow, weighted bool) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOptions("Top players")...)

	labels := make([]string, len(rows))
	plain := make([]opts.BarData, len(rows))
	weightedData := make([]opts.BarData, len(rows))
	for i, r := range rows {
		labels[i] = r.Player
		plain[i] = opts.BarData{Value: round1(r.Winrate)}
		weightedData[i] = opts.BarData{Value: round1(r.WeightedWinrate)}
	}

	bar.SetXAxis(labels).AddSeries("Win rate %", plain)
	if weighted {
		bar.AddSeries("Weighted win rate %", weightedData)
	}
	return bar
}

func pairBar(rows []models.PairRow) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOptions("Top commanders (weighted)")...)

	labels := make([]string, len(rows))
	data := make([]opts.BarData, len(rows))
	for i, r := range rows {
		labels[i] = r.Commander
		data[i] = opts.BarData{Value: round1(r.WeightedWinrate)}
	}
	bar.SetXAxis(labels).AddSeries("Weighted win rate %", data)
	return bar
}

func commanderBar(rows []models.CommanderRow) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOptions("Top commanders")...)

	labels := make([]string, len(rows))
	data := make([]opts.BarData, len(rows))
	for i, r := range rows {
		labels[i] = r.Commander
		data[i] = opts.BarData{Value: round1(r.Winrate)}
	}
	bar.SetXAxis(labels).AddSeries("Win rate %", data)
	return bar
}

// podBar plots pod-size seat win-rate against the 100/N expectation so
// the bars are readable at a glance.
func podBar(rows []models.PodSizeRow) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOptions("Win rate by pod size")...)

	labels := make([]string, len(rows))
	actual := make([]opts.BarData, len(rows))
	baseline := make([]opts.BarData, len(rows))
	for i, r := range rows {
		labels[i] = fmt.Sprintf("%d players", r.PodSize)
		actual[i] = opts.BarData{Value: round1(r.Winrate)}
		baseline[i] = opts.BarData{Value: round1(r.Baseline)}
	}
	bar.SetXAxis(labels).
		AddSeries("Seat win rate %", actual).
		AddSeries("Even-odds baseline %", baseline)
	return bar
}

func playerPodBar(rows []models.PlayerPodRow) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(baseOptions("Win rate by pod size")...)

	labels := make([]string, len(rows))
	actual := make([]opts.BarData, len(rows))
	baseline := make([]opts.BarData, len(rows))
	for i, r := range rows {
		labels[i] = fmt.Sprintf("%d players", r.PodSize)
		actual[i] = opts.BarData{Value: round1(r.Winrate)}
		baseline[i] = opts.BarData{Value: round1(r.Baseline)}
	}
	bar.SetXAxis(labels).
		AddSeries("Win rate %", actual).
		AddSeries("Even-odds baseline %", baseline)
	return bar
}

func activityLine(points []models.TrendPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(baseOptions("Games per month")...)

	labels := make([]string, len(points))
	data := make([]opts.LineData, len(points))
	for i, p := range points {
		labels[i] = p.Label
		data[i] = opts.LineData{Value: p.Value}
	}
	line.SetXAxis(labels).
		AddSeries("Games", data).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func trendLine(title string, points []models.TrendPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(baseOptions(title)...)

	labels := make([]string, len(points))
	data := make([]opts.LineData, len(points))
	for i, p := range points {
		labels[i] = p.Label
		data[i] = opts.LineData{Value: round1(p.Value)}
	}
	line.SetXAxis(labels).
		AddSeries("Win rate %", data).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

func bubbleScatter(title string, bubbles []models.BubbleRow) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(baseOptions(title)...)
	scatter.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: "Games", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Win rate %", Type: "value"}),
	)

	data := make([]opts.ScatterData, len(bubbles))
	for i, b := range bubbles {
		data[i] = opts.ScatterData{
			Name:       fmt.Sprintf("%s / %s", b.Player, b.Commander),
			Value:      []interface{}{b.Games, round1(b.Winrate)},
			SymbolSize: b.Radius,
		}
	}
	scatter.AddSeries("Pairings", data)
	return scatter
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
