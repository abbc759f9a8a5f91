package services

import (
	"context"
	"errors"
	"fmt"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"electrolyzer-analyzer/internal/analysis"
	"electrolyzer-analyzer/internal/logger"
	"electrolyzer-analyzer/internal/models"
)

// ErrNoDatasets is returned when analysis is requested before any file has
// been loaded.
var ErrNoDatasets = errors.New("no datasets loaded")

// PolarizationReport bundles everything the view needs to present detected
// polarization tests and derive curves from them.
type PolarizationReport struct {
	Classes analysis.ColumnClasses
	Samples []analysis.Sample
	Tests   []analysis.PolarizationTest
}

// AnalysisService runs the combined-frame and polarization analysis over
// the session's loaded datasets.
type AnalysisService struct {
	session    *models.SessionRepository
	detector   *analysis.Detector
	activeArea float64
	logger     logger.Logger
}

// NewAnalysisService creates an analysis service with the configured step
// threshold and electrode active area.
func NewAnalysisService(session *models.SessionRepository, stepThreshold, activeArea float64, log logger.Logger) *AnalysisService {
	if activeArea <= 0 {
		activeArea = analysis.DefaultActiveArea
	}
	return &AnalysisService{
		session:    session,
		detector:   analysis.NewDetector(stepThreshold),
		activeArea: activeArea,
		logger:     log,
	}
}

// CombineLoaded merges all loaded datasets into one frame and classifies
// its columns.
func (s *AnalysisService) CombineLoaded(ctx context.Context) (*dataframe.DataFrame, analysis.ColumnClasses, error) {
	datasets := s.session.Datasets()
	if len(datasets) == 0 {
		return nil, analysis.ColumnClasses{}, ErrNoDatasets
	}

	df, err := analysis.Combine(ctx, datasets)
	if err != nil {
		return nil, analysis.ColumnClasses{}, fmt.Errorf("failed to combine datasets: %w", err)
	}

	var columns []string
	for _, series := range df.Series {
		columns = append(columns, series.Name())
	}
	classes := analysis.ClassifyColumns(columns)

	s.logger.Info("AnalysisService", "datasets combined", map[string]interface{}{
		"datasets": len(datasets),
		"rows":     df.NRows(),
		"columns":  len(columns),
	})

	return df, classes, nil
}

// DetectPolarization combines the loaded datasets and scans them for
// polarization tests.
func (s *AnalysisService) DetectPolarization(ctx context.Context) (*PolarizationReport, error) {
	df, classes, err := s.CombineLoaded(ctx)
	if err != nil {
		return nil, err
	}

	samples, err := analysis.ExtractSamples(df, classes)
	if err != nil {
		return nil, err
	}

	tests := s.detector.Detect(samples)

	s.logger.Info("AnalysisService", "polarization detection finished", map[string]interface{}{
		"samples": len(samples),
		"tests":   len(tests),
	})

	return &PolarizationReport{Classes: classes, Samples: samples, Tests: tests}, nil
}

// Curve averages one detected test into a polarization curve for the given
// voltage tag, using the configured active area.
func (s *AnalysisService) Curve(report *PolarizationReport, testIndex int, tag string) ([]analysis.CurvePoint, error) {
	if report == nil || testIndex < 0 || testIndex >= len(report.Tests) {
		return nil, fmt.Errorf("no such polarization test: %d", testIndex)
	}
	return analysis.AverageCurve(report.Samples, report.Tests[testIndex], tag, s.activeArea), nil
}

// ActiveArea returns the configured electrode active area in cm².
func (s *AnalysisService) ActiveArea() float64 {
	return s.activeArea
}
