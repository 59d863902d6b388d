package autorfp

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/extractor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCodePNG(t *testing.T) {
	png, err := QRCodePNG("https://autorfp.app/lead/abc123", 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestQRCodeSVG(t *testing.T) {
	svg, err := QRCodeSVG("https://autorfp.app/lead/abc123")
	require.NoError(t, err)
	assert.Contains(t, svg, "<svg")
}

func TestBuildTimelineIsContiguous(t *testing.T) {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	timeline := BuildTimeline([]Phase{
		{Name: "Discovery", DurationWeeks: 2},
		{Name: "Build", DurationWeeks: 6},
		{Name: "Handover"},
	}, start)

	require.Len(t, timeline.Phases, 3)
	assert.Equal(t, start, timeline.Phases[0].Start)
	for i := 1; i < len(timeline.Phases); i++ {
		assert.Equal(t, timeline.Phases[i-1].End, timeline.Phases[i].Start)
	}
	assert.Equal(t, 1, timeline.Phases[2].DurationWeeks)
	assert.Equal(t, 9, timeline.TotalWeeks)
	assert.Equal(t, start.AddDate(0, 0, 63), timeline.End)
}

func TestPhasesFromContent(t *testing.T) {
	content := map[string]any{
		"phases": []any{
			map[string]any{"name": "Discovery", "duration": "2 weeks"},
			map[string]any{"phase": "Build", "durationWeeks": float64(6)},
			map[string]any{"title": "Support", "duration": "3 Months"},
			"Handover",
		},
	}

	phases := PhasesFromContent(content)
	assert.Equal(t, []Phase{
		{Name: "Discovery", DurationWeeks: 2},
		{Name: "Build", DurationWeeks: 6},
		{Name: "Support", DurationWeeks: 12},
		{Name: "Handover", DurationWeeks: 1},
	}, phases)

	assert.Empty(t, PhasesFromContent("no phases here"))
}

func TestScoreProfileIsMonotonic(t *testing.T) {
	empty := ScoreProfile(ProfileFacts{})
	assert.Equal(t, 0, empty.Score)
	assert.Len(t, empty.Missing, 7)

	facts := ProfileFacts{}
	previous := empty.Score
	steps := []func(*ProfileFacts){
		func(f *ProfileFacts) { f.Website = "https://acme.io" },
		func(f *ProfileFacts) { f.Services = 3 },
		func(f *ProfileFacts) { f.Description = strings.Repeat("We build networks. ", 5) },
		func(f *ProfileFacts) { f.Documents = 2 },
		func(f *ProfileFacts) { f.Certifications = 1 },
		func(f *ProfileFacts) { f.TeamMembers = 4 },
		func(f *ProfileFacts) { f.Playbooks = 1 },
	}
	for _, step := range steps {
		step(&facts)
		score := ScoreProfile(facts).Score
		assert.Greater(t, score, previous)
		previous = score
	}

	full := ScoreProfile(facts)
	assert.Equal(t, 100, full.Score)
	assert.Empty(t, full.Missing)
}

func TestHumanizeKeyAndFlatten(t *testing.T) {
	assert.Equal(t, "Technical Approach", HumanizeKey("technicalApproach"))
	assert.Equal(t, "Risk mitigation", HumanizeKey("risk_mitigation"))

	text := FlattenValue(map[string]any{
		"overview": "Fibre first",
		"phases":   []any{"Design", "Build"},
		"cost":     float64(12000),
	})
	assert.Equal(t, "Cost: 12000\nOverview: Fibre first\nPhases:\n  - Design\n  - Build", text)
}

func TestWriteDocxIsReadable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDocx(&buf, ExportDocument{
		Title: "Fibre Upgrade Proposal",
		Sections: []ExportSection{
			{Title: "Executive Summary", Body: "Acme & Partners will deliver.\nOn time."},
		},
	})
	require.NoError(t, err)

	text, err := extractor.Extract(buf.Bytes(), extractor.MimeDOCX)
	require.NoError(t, err)
	assert.Contains(t, text, "Fibre Upgrade Proposal")
	assert.Contains(t, text, "Acme & Partners will deliver.")
	assert.Contains(t, text, "On time.")
}

func TestPDFExportRequiresFont(t *testing.T) {
	err := NewPDFExporter("", "").Export(ExportDocument{Title: "x"}, filepath.Join(t.TempDir(), "out.pdf"))
	assert.ErrorIs(t, err, ErrFontRequired)
}

func TestPDFExport(t *testing.T) {
	fontPath := os.Getenv("EXPORT_FONT_PATH")
	if fontPath == "" {
		t.Skip("EXPORT_FONT_PATH not set")
	}

	out := filepath.Join(t.TempDir(), "proposal.pdf")
	err := NewPDFExporter(fontPath, "").Export(ExportDocument{
		Title: "Fibre Upgrade Proposal",
		Sections: []ExportSection{
			{Title: "Executive Summary", Body: strings.Repeat("Acme will deliver a resilient network. ", 200)},
		},
	}, out)
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
