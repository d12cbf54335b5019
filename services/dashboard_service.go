package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/tempio/commander-tracker/models"
	"github.com/tempio/commander-tracker/stats"
)

// DashboardParams carries the query-string knobs of the dashboard
// endpoints. Zero values mean "use defaults"; everything is clamped
// before it reaches the engine.
type DashboardParams struct {
	MinPlayerGames    int
	MinPairGames      int
	MinCommanderGames int
	TopPlayers        int
	TopPairs          int
	TopCommanders     int
	// Alpha nil means "use the configured default". An explicit 0
	// disables weighting and is preserved.
	Alpha *float64
}

type DashboardService interface {
	Classic(ctx context.Context, params DashboardParams) (*models.DashboardPayload, error)
	Bracket(ctx context.Context, params DashboardParams) (*models.DashboardPayload, error)
	Player(ctx context.Context, player string, params DashboardParams) (*models.PlayerDashboardPayload, error)
}

type dashboardService struct {
	statsService StatsService
	defaultAlpha float64
	logger       *slog.Logger
}

func NewDashboardService(statsService StatsService, defaultAlpha float64, logger *slog.Logger) DashboardService {
	return &dashboardService{
		statsService: statsService,
		defaultAlpha: defaultAlpha,
		logger:       logger,
	}
}

const (
	defaultTopN     = 10
	defaultMinGames = 2
)

func (p DashboardParams) normalized(defaultAlpha float64) DashboardParams {
	if p.TopPlayers == 0 {
		p.TopPlayers = defaultTopN
	}
	if p.TopPairs == 0 {
		p.TopPairs = defaultTopN
	}
	if p.TopCommanders == 0 {
		p.TopCommanders = defaultTopN
	}
	if p.MinPlayerGames == 0 {
		p.MinPlayerGames = defaultMinGames
	}
	if p.MinPairGames == 0 {
		p.MinPairGames = defaultMinGames
	}
	if p.MinCommanderGames == 0 {
		p.MinCommanderGames = defaultMinGames
	}
	alpha := defaultAlpha
	if p.Alpha != nil {
		alpha = *p.Alpha
	}
	alpha = stats.ClampAlpha(alpha)
	p.Alpha = &alpha
	return p
}

// alphaValue reads the resolved alpha; normalized must run first.
func (p DashboardParams) alphaValue() float64 {
	if p.Alpha == nil {
		return 0
	}
	return *p.Alpha
}

// Classic is the unweighted dashboard: alpha 0, plain win-rates order
// the tables.
func (s *dashboardService) Classic(ctx context.Context, params DashboardParams) (*models.DashboardPayload, error) {
	params = params.normalized(s.defaultAlpha)
	zero := 0.0
	params.Alpha = &zero
	return s.build(ctx, params, false)
}

// Bracket is the weighted dashboard: wins against stronger tables
// count more, per the configured alpha.
func (s *dashboardService) Bracket(ctx context.Context, params DashboardParams) (*models.DashboardPayload, error) {
	params = params.normalized(s.defaultAlpha)
	return s.build(ctx, params, true)
}

func (s *dashboardService) build(ctx context.Context, params DashboardParams, weighted bool) (*models.DashboardPayload, error) {
	result, snap, err := s.statsService.Compute(ctx, params.alphaValue())
	if err != nil {
		return nil, err
	}

	payload := &models.DashboardPayload{
		GeneratedUTC: time.Now().UTC().Format(time.RFC3339),
		Weighted:     weighted,
		Alpha:        params.alphaValue(),
		Counts:       result.Counts,
		TopPlayers: stats.TopPlayers(result.Players, stats.View{
			MinGames: params.MinPlayerGames, TopN: params.TopPlayers, Weighted: weighted,
		}),
		TopPairs: stats.TopPairs(result.Pairs, stats.View{
			MinGames: params.MinPairGames, TopN: params.TopPairs, Weighted: weighted,
		}),
		TopCommanders: stats.TopCommanders(result.Commanders, stats.View{
			MinGames: params.MinCommanderGames, TopN: params.TopCommanders,
		}),
		PodSizes: result.PodSizes,
		Brackets: result.Brackets,
		Activity: monthlyActivity(snap.Games),
		Bubbles:  pairBubbles(result.Pairs, params.MinPairGames),
	}
	return payload, nil
}

func (s *dashboardService) Player(ctx context.Context, player string, params DashboardParams) (*models.PlayerDashboardPayload, error) {
	if player == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrPlayerRequired)
	}
	params = params.normalized(s.defaultAlpha)

	result, snap, err := s.statsService.Compute(ctx, params.alphaValue())
	if err != nil {
		return nil, err
	}

	var summary *models.PlayerRow
	for i := range result.Players {
		if result.Players[i].Player == player {
			summary = &result.Players[i]
			break
		}
	}
	if summary == nil {
		return nil, ErrPlayerNotFound
	}

	pods := make([]models.PlayerPodRow, 0)
	for _, r := range result.PlayerPods {
		if r.Player == player {
			pods = append(pods, r)
		}
	}
	pairs := make([]models.PairRow, 0)
	for _, r := range result.Pairs {
		if r.Player == player {
			pairs = append(pairs, r)
		}
	}
	triples := make([]models.TripleRow, 0)
	for _, r := range result.Triples {
		if r.Player == player {
			triples = append(triples, r)
		}
	}

	return &models.PlayerDashboardPayload{
		Player:       player,
		GeneratedUTC: time.Now().UTC().Format(time.RFC3339),
		Alpha:        params.alphaValue(),
		Summary:      summary,
		Trend:        stats.PlayerTrend(snap.Games, snap.Entries, player, true, params.alphaValue()),
		Pods:         pods,
		Commanders: stats.TopPairs(pairs, stats.View{
			MinGames: 1, TopN: params.TopCommanders, Weighted: true,
		}),
		Triples: triples,
		Bubbles: pairBubbles(pairs, 1),
	}, nil
}

// monthlyActivity counts games per calendar month, oldest first.
func monthlyActivity(games []models.Game) []models.TrendPoint {
	counts := make(map[string]int)
	for _, g := range games {
		counts[g.PlayedAt.UTC().Format("2006-01")]++
	}
	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	points := make([]models.TrendPoint, 0, len(labels))
	for _, label := range labels {
		points = append(points, models.TrendPoint{Label: label, Value: float64(counts[label])})
	}
	return points
}

func pairBubbles(pairs []models.PairRow, minGames int) []models.BubbleRow {
	if minGames < 1 {
		minGames = 1
	}
	bubbles := make([]models.BubbleRow, 0, len(pairs))
	for _, p := range pairs {
		if p.Games < minGames {
			continue
		}
		bubbles = append(bubbles, models.BubbleRow{
			Player:    p.Player,
			Commander: p.Commander,
			Games:     p.Games,
			Wins:      p.Wins,
			Winrate:   p.Winrate,
			Radius:    stats.BubbleRadius(p.Games),
		})
	}
	return bubbles
}
