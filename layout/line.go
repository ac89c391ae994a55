package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/structura/model"
)

// LineConfig holds configuration for line detection
type LineConfig struct {
	// LineHeightTolerance is the Y-distance tolerance for grouping fragments
	// into lines, as a fraction of fragment font size (default: 0.5)
	LineHeightTolerance float64

	// SpaceGapRatio is the horizontal gap, as a fraction of fragment font
	// size, above which a space is inserted between fragments (default: 0.1)
	SpaceGapRatio float64

	// MinLineWidth is the minimum width for a valid line (default: 0)
	MinLineWidth float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		LineHeightTolerance: 0.5,
		SpaceGapRatio:       0.1,
		MinLineWidth:        0,
	}
}

// LineDetector groups positioned text fragments into lines
type LineDetector struct {
	config LineConfig
}

// NewLineDetector creates a new line detector with default configuration
func NewLineDetector() *LineDetector {
	return &LineDetector{
		config: DefaultLineConfig(),
	}
}

// NewLineDetectorWithConfig creates a line detector with custom configuration
func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{
		config: config,
	}
}

// DetectLines analyzes text fragments and assembles them into lines in
// reading order: pages ascending, then top to bottom, then left to right.
// Blank lines are dropped.
func (d *LineDetector) DetectLines(fragments []model.TextFragment) []model.Line {
	if len(fragments) == 0 {
		return nil
	}

	// Step 1: Partition fragments by page
	pages := make(map[int][]model.TextFragment)
	for _, frag := range fragments {
		pages[frag.Page] = append(pages[frag.Page], frag)
	}

	pageNumbers := make([]int, 0, len(pages))
	for page := range pages {
		pageNumbers = append(pageNumbers, page)
	}
	sort.Ints(pageNumbers)

	// Step 2: Group each page's fragments into lines and build Line values
	var lines []model.Line
	for _, page := range pageNumbers {
		groups := d.groupIntoLines(pages[page])
		for _, group := range groups {
			line := d.buildLine(group)
			if strings.TrimSpace(line.Text) == "" {
				continue
			}
			if lineWidth(group) < d.config.MinLineWidth {
				continue
			}
			lines = append(lines, line)
		}
	}

	return lines
}

// groupIntoLines groups fragments into horizontal lines based on Y position
func (d *LineDetector) groupIntoLines(fragments []model.TextFragment) [][]model.TextFragment {
	if len(fragments) == 0 {
		return nil
	}

	tolerance := d.lineTolerance(fragments)

	// Sort by Y descending (top of page first); same-Y fragments keep
	// stream order until the per-line X sort below
	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		yDiff := sorted[i].Y - sorted[j].Y
		if absFloat64(yDiff) > tolerance {
			return yDiff > 0
		}
		return false
	})

	var groups [][]model.TextFragment
	var current []model.TextFragment

	for _, frag := range sorted {
		if len(current) == 0 {
			current = append(current, frag)
			continue
		}

		// Compare against the running average Y of the current line
		if absFloat64(frag.Y-averageY(current)) <= tolerance {
			current = append(current, frag)
		} else {
			sortByX(current)
			groups = append(groups, current)
			current = []model.TextFragment{frag}
		}
	}

	if len(current) > 0 {
		sortByX(current)
		groups = append(groups, current)
	}

	return groups
}

// lineTolerance derives the Y tolerance for line grouping from the average
// fragment font size. PDFs with compressed coordinate systems would need a
// gap-based adaptive tolerance; font-size-based tolerance covers the common
// case.
func (d *LineDetector) lineTolerance(fragments []model.TextFragment) float64 {
	if len(fragments) == 0 {
		return 2.0
	}

	total := 0.0
	for _, f := range fragments {
		total += f.FontSize
	}
	avgSize := total / float64(len(fragments))

	tolerance := avgSize * d.config.LineHeightTolerance
	if tolerance < 2.0 {
		tolerance = 2.0
	}
	return tolerance
}

// buildLine assembles a Line value from a group of fragments sorted left to
// right. The line's Y is the lowest fragment baseline, its height the
// largest font size, and its font name the one covering the most text.
func (d *LineDetector) buildLine(fragments []model.TextFragment) model.Line {
	line := model.Line{
		X:    fragments[0].X,
		Y:    fragments[0].Y,
		Page: fragments[0].Page,
	}

	totalFontSize := 0.0
	for _, f := range fragments {
		if f.Y < line.Y {
			line.Y = f.Y
		}
		if f.FontSize > line.Height {
			line.Height = f.FontSize
		}
		if f.X < line.X {
			line.X = f.X
		}
		totalFontSize += f.FontSize
	}
	line.FontSize = totalFontSize / float64(len(fragments))

	line.Text = d.assembleLineText(fragments)
	line.FontName = dominantFontName(fragments)
	line.Segments = d.buildSegments(fragments)

	return line
}

// assembleLineText assembles text from fragments with appropriate spacing
func (d *LineDetector) assembleLineText(fragments []model.TextFragment) string {
	var sb strings.Builder
	for i, frag := range fragments {
		if i > 0 {
			prev := fragments[i-1]
			gap := frag.X - (prev.X + prev.Width)
			if gap > frag.FontSize*d.config.SpaceGapRatio {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(frag.Text)
	}
	return sb.String()
}

// buildSegments groups contiguous same-font fragments into font segments,
// preserving each segment's horizontal extent for inline-code detection.
func (d *LineDetector) buildSegments(fragments []model.TextFragment) []model.FontSegment {
	var segments []model.FontSegment
	var run []model.TextFragment

	flush := func() {
		if len(run) == 0 {
			return
		}
		last := run[len(run)-1]
		segments = append(segments, model.FontSegment{
			Text:     d.assembleLineText(run),
			FontName: run[0].FontName,
			Start:    run[0].X,
			End:      last.X + last.Width,
		})
		run = nil
	}

	for _, frag := range fragments {
		if len(run) > 0 && frag.FontName != run[0].FontName {
			flush()
		}
		run = append(run, frag)
	}
	flush()

	return segments
}

// sortByX orders fragments left to right, keeping stream order for
// overlapping fragments.
func sortByX(fragments []model.TextFragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		tolerance := fragments[i].FontSize * 0.1
		if absFloat64(fragments[i].X-fragments[j].X) < tolerance {
			return false
		}
		return fragments[i].X < fragments[j].X
	})
}

// averageY returns the average Y coordinate of a fragment group
func averageY(fragments []model.TextFragment) float64 {
	if len(fragments) == 0 {
		return 0
	}
	total := 0.0
	for _, f := range fragments {
		total += f.Y
	}
	return total / float64(len(fragments))
}

// lineWidth returns the horizontal extent of a fragment group
func lineWidth(fragments []model.TextFragment) float64 {
	if len(fragments) == 0 {
		return 0
	}
	left := fragments[0].X
	right := fragments[0].X + fragments[0].Width
	for _, f := range fragments[1:] {
		if f.X < left {
			left = f.X
		}
		if f.X+f.Width > right {
			right = f.X + f.Width
		}
	}
	return right - left
}

// dominantFontName returns the font name covering the most text in the
// group. Ties go to the font seen first.
func dominantFontName(fragments []model.TextFragment) string {
	counts := make(map[string]int)
	order := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if _, seen := counts[f.FontName]; !seen {
			order = append(order, f.FontName)
		}
		counts[f.FontName] += len(f.Text)
	}

	best := ""
	bestCount := -1
	for _, name := range order {
		if counts[name] > bestCount {
			best = name
			bestCount = counts[name]
		}
	}
	return best
}

// absFloat64 returns the absolute value of a float64
func absFloat64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
