//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"citypulse/backend/internal/repository"
)

// Label colors shared by both chart styles.
var (
	chartColorPositive = drawing.ColorFromHex("28a745")
	chartColorNegative = drawing.ColorFromHex("dc3545")
	chartColorNeutral  = drawing.ColorFromHex("6c757d")
)

// ChartService renders the sentiment distribution as PNG images for the
// dashboard.
type ChartService interface {
	DistributionBar(ctx context.Context) ([]byte, error)
	DistributionPie(ctx context.Context) ([]byte, error)
}

type chartService struct {
	comments repository.CommentRepository
}

func NewChartService(comments repository.CommentRepository) ChartService {
	return &chartService{comments: comments}
}

func (s *chartService) DistributionBar(ctx context.Context) ([]byte, error) {
	values, err := s.distribution(ctx)
	if err != nil {
		return nil, err
	}

	graph := chart.BarChart{
		Title:    "Sentiment Distribution",
		Width:    600,
		Height:   400,
		BarWidth: 80,
		Bars:     values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *chartService) DistributionPie(ctx context.Context) ([]byte, error) {
	values, err := s.distribution(ctx)
	if err != nil {
		return nil, err
	}

	graph := chart.PieChart{
		Title:  "Sentiment Distribution",
		Width:  500,
		Height: 500,
		Values: values,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

// distribution loads the label counts and maps them onto chart values.
func (s *chartService) distribution(ctx context.Context) ([]chart.Value, error) {
	counts, err := s.comments.CountByLabel(ctx)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	if counts.Total == 0 {
		return nil, fmt.Errorf("%w: no comments to chart", ErrNotFound)
	}

	return []chart.Value{
		{Label: "Positive", Value: float64(counts.Positive), Style: chart.Style{FillColor: chartColorPositive, StrokeColor: chartColorPositive}},
		{Label: "Negative", Value: float64(counts.Negative), Style: chart.Style{FillColor: chartColorNegative, StrokeColor: chartColorNegative}},
		{Label: "Neutral", Value: float64(counts.Neutral), Style: chart.Style{FillColor: chartColorNeutral, StrokeColor: chartColorNeutral}},
	}, nil
}
