package analysis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	dataframe "github.com/rocketlaunchr/dataframe-go"
)

// Detection defaults.
const (
	DefaultStepThreshold = 0.5
	DefaultActiveArea    = 25.0
)

// timestampLayouts are tried in order when parsing time values. InfluxDB
// exports use RFC 3339; the rest cover hand-edited files.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Sample is one fully-parsed row of the combined frame: a timestamp, the
// current reading, and every voltage tag reading.
type Sample struct {
	Time     time.Time
	Current  float64
	Voltages map[string]float64
}

// RampDirection is the direction of a polarization test's current ramp.
type RampDirection int

const (
	RampUp   RampDirection = 1
	RampDown RampDirection = -1
)

// String returns the display name of the direction.
func (d RampDirection) String() string {
	if d == RampDown {
		return "Ramp Down"
	}
	return "Ramp Up"
}

// PolarizationTest is one detected current-ramp sequence. StartIndex and
// EndIndex are inclusive positions into the sample slice it was detected on.
type PolarizationTest struct {
	Direction  RampDirection
	StartIndex int
	EndIndex   int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	StepCount  int
}

// CurvePoint is one averaged point of a polarization curve.
type CurvePoint struct {
	CurrentDensity float64
	Voltage        float64
}

// ExtractSamples pulls parseable rows out of the combined frame. Rows whose
// timestamp, current, or any voltage value fails to parse are excluded from
// detection.
func ExtractSamples(df *dataframe.DataFrame, classes ColumnClasses) ([]Sample, error) {
	if len(classes.Current) == 0 {
		return nil, fmt.Errorf("no current column found")
	}
	if len(classes.Timestamp) == 0 {
		return nil, fmt.Errorf("no timestamp column found")
	}
	if len(classes.Voltage) == 0 {
		return nil, fmt.Errorf("no voltage columns found")
	}

	currentIdx, err := df.NameToColumn(classes.Current[0])
	if err != nil {
		return nil, fmt.Errorf("current column lookup: %w", err)
	}
	timeIdx, err := df.NameToColumn(classes.Timestamp[0])
	if err != nil {
		return nil, fmt.Errorf("timestamp column lookup: %w", err)
	}
	voltageIdx := make(map[string]int, len(classes.Voltage))
	for _, tag := range classes.Voltage {
		idx, err := df.NameToColumn(tag)
		if err != nil {
			return nil, fmt.Errorf("voltage column lookup: %w", err)
		}
		voltageIdx[tag] = idx
	}

	n := df.NRows()
	samples := make([]Sample, 0, n)

rows:
	for i := 0; i < n; i++ {
		ts, ok := parseTimestamp(stringValue(df.Series[timeIdx].Value(i)))
		if !ok {
			continue
		}
		current, err := strconv.ParseFloat(strings.TrimSpace(stringValue(df.Series[currentIdx].Value(i))), 64)
		if err != nil {
			continue
		}

		voltages := make(map[string]float64, len(voltageIdx))
		for tag, idx := range voltageIdx {
			v, err := strconv.ParseFloat(strings.TrimSpace(stringValue(df.Series[idx].Value(i))), 64)
			if err != nil {
				continue rows
			}
			voltages[tag] = v
		}

		samples = append(samples, Sample{Time: ts, Current: current, Voltages: voltages})
	}

	return samples, nil
}

// Detector finds polarization tests in a sample sequence.
type Detector struct {
	// StepThreshold is the minimum current delta (A) counted as a ramp step.
	StepThreshold float64
}

// NewDetector creates a detector; a non-positive threshold falls back to
// DefaultStepThreshold.
func NewDetector(stepThreshold float64) *Detector {
	if stepThreshold <= 0 {
		stepThreshold = DefaultStepThreshold
	}
	return &Detector{StepThreshold: stepThreshold}
}

// Detect scans the current signal for step sequences. Consecutive steps in
// the same direction form one test; a step in the opposite direction closes
// the running test and starts a new one. Sub-threshold movement extends the
// running test without counting as a step. Tests are returned ordered by
// start time.
func (d *Detector) Detect(samples []Sample) []PolarizationTest {
	var tests []PolarizationTest
	if len(samples) < 2 {
		return tests
	}

	finalize := func(startIdx, endIdx int, dir RampDirection, steps int) {
		if endIdx <= startIdx || steps == 0 {
			return
		}
		start := samples[startIdx].Time
		end := samples[endIdx].Time
		tests = append(tests, PolarizationTest{
			Direction:  dir,
			StartIndex: startIdx,
			EndIndex:   endIdx,
			StartTime:  start,
			EndTime:    end,
			Duration:   end.Sub(start),
			StepCount:  steps,
		})
	}

	var (
		seqDir   RampDirection
		seqStart int
		lastIdx  int
		steps    int
	)

	for i := 1; i < len(samples); i++ {
		delta := samples[i].Current - samples[i-1].Current

		var stepDir RampDirection
		switch {
		case delta >= d.StepThreshold:
			stepDir = RampUp
		case delta <= -d.StepThreshold:
			stepDir = RampDown
		}

		if seqDir == 0 {
			if stepDir != 0 {
				seqDir = stepDir
				seqStart = i - 1
				lastIdx = i
				steps = 1
			}
			continue
		}

		switch stepDir {
		case 0:
			lastIdx = i
		case seqDir:
			steps++
			lastIdx = i
		default:
			finalize(seqStart, lastIdx, seqDir, steps)
			seqDir = stepDir
			seqStart = i - 1
			lastIdx = i
			steps = 1
		}
	}

	if seqDir != 0 {
		finalize(seqStart, lastIdx, seqDir, steps)
	}

	sort.SliceStable(tests, func(i, j int) bool {
		return tests[i].StartTime.Before(tests[j].StartTime)
	})

	return tests
}

// AverageCurve reduces one test to a polarization curve for a single voltage
// tag: samples are grouped by current (rounded to 6 decimals), current and
// voltage averaged per group, and current divided by the active area (cm²)
// to yield current density. Points come back ordered by ascending current.
func AverageCurve(samples []Sample, test PolarizationTest, tag string, activeArea float64) []CurvePoint {
	if activeArea <= 0 {
		activeArea = DefaultActiveArea
	}

	type bin struct {
		currentSum float64
		voltageSum float64
		count      int
	}
	bins := make(map[float64]*bin)

	for i := test.StartIndex; i <= test.EndIndex && i < len(samples); i++ {
		voltage, ok := samples[i].Voltages[tag]
		if !ok {
			continue
		}
		key := math.Round(samples[i].Current*1e6) / 1e6
		b := bins[key]
		if b == nil {
			b = &bin{}
			bins[key] = b
		}
		b.currentSum += samples[i].Current
		b.voltageSum += voltage
		b.count++
	}

	points := make([]CurvePoint, 0, len(bins))
	for _, b := range bins {
		meanCurrent := b.currentSum / float64(b.count)
		points = append(points, CurvePoint{
			CurrentDensity: meanCurrent / activeArea,
			Voltage:        b.voltageSum / float64(b.count),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].CurrentDensity < points[j].CurrentDensity
	})

	return points
}

// parseTimestamp tries the known export layouts in order.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// stringValue unwraps a string series cell; nil cells become "".
func stringValue(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
