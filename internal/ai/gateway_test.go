package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type stubGenerator struct {
	reply      string
	err        error
	lastPrompt string
	lastJSON   bool
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string, wantJSON bool) (string, error) {
	s.lastPrompt = prompt
	s.lastJSON = wantJSON
	return s.reply, s.err
}

const validProposal = `{
	"executiveSummary": "We will deliver.",
	"technicalApproach": {"overview": "Agile"},
	"projectTimeline": {"phases": [{"name": "Discovery", "durationWeeks": 2}]},
	"teamStructure": {"roles": []},
	"pricing": {"model": "fixed", "total": "$100k"},
	"riskMitigation": []
}`

func TestStructuredContentFencesRoundTrip(t *testing.T) {
	plain := `{"title": "City Portal", "requirements": [{"id": "R1"}], "budget": 12}`

	tests := []string{
		plain,
		"```json\n" + plain + "\n```",
		"```JSON" + plain + "```",
		"```\n" + plain + "\n```\n",
	}

	want, err := ParseStructured(plain)
	require.NoError(t, err)

	for _, reply := range tests {
		gen := &stubGenerator{reply: reply}
		got, err := NewGeminiGateway(gen, 0, nil).GenerateStructuredContent(context.Background(), "prompt")
		require.NoError(t, err, reply)
		assert.Equal(t, want, got, reply)
		assert.True(t, gen.lastJSON)
		assert.True(t, strings.HasSuffix(gen.lastPrompt, jsonOnlyInstruction))
	}
}

func TestStructuredContentKeepsFencesInsideValues(t *testing.T) {
	sample := "```go\nfunc main() {}\n```"
	body := `{"technicalApproach": {"sample": "` + strings.ReplaceAll(sample, "\n", `\n`) + `"}}`

	for _, reply := range []string{body, "```json\n" + body + "\n```"} {
		got, err := ParseStructured(reply)
		require.NoError(t, err, reply)
		approach, ok := got["technicalApproach"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, sample, approach["sample"])
	}
}

func TestStructuredContentMalformed(t *testing.T) {
	for _, reply := range []string{"", "Sure! Here it is", `{"a": 1`, `[1, 2]`, `{"a": 1} {"b": 2}`, "null"} {
		_, err := NewGeminiGateway(&stubGenerator{reply: reply}, 0, nil).GenerateStructuredContent(context.Background(), "p")
		assert.ErrorIs(t, err, ErrMalformedAIResponse, reply)
	}
}

func TestUpstreamErrorIsWrapped(t *testing.T) {
	gw := NewGeminiGateway(&stubGenerator{err: errors.New("quota exceeded")}, 0, nil)

	_, err := gw.GenerateContent(context.Background(), "p")
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = gw.ParseRFPDocument(context.Background(), "text")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestGenerateProposalContentValidatesKeys(t *testing.T) {
	gen := &stubGenerator{reply: validProposal}
	gw := NewGeminiGateway(gen, 0, nil)

	in := ProposalInput{
		Profile: model.CompanyProfile{
			CompanyName: "Acme Consulting",
			Services:    datatypes.NewJSONSlice([]string{"Cloud", "Data"}),
		},
		RFP: model.RFPUpload{
			Title:         "City Portal",
			ExtractedText: "The city requires a new citizen portal.",
			Requirements:  datatypes.JSON(`[{"id":"R1"}]`),
		},
		Documents: []model.Document{{Type: constant.DocumentTypeCaseStudy, File: model.File{FileName: "case.pdf"}}},
		Template:  constant.ProposalTemplateTechnical,
		Playbook:  &model.IndustryPlaybook{Name: "GovTech", Industry: "Government", KPIs: []string{"uptime"}},
	}

	content, err := gw.GenerateProposalContent(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "We will deliver.", content["executiveSummary"])

	for _, want := range []string{"Acme Consulting", "Cloud, Data", "case.pdf", "GovTech", "uptime", "City Portal", "citizen portal", "engineering focused"} {
		assert.Contains(t, gen.lastPrompt, want)
	}

	gen.reply = `{"executiveSummary": "x", "pricing": {}}`
	_, err = gw.GenerateProposalContent(context.Background(), in)
	assert.ErrorIs(t, err, ErrMalformedAIResponse)
}

func TestValidateProposalContent(t *testing.T) {
	content, err := ParseStructured(validProposal)
	require.NoError(t, err)
	assert.NoError(t, ValidateProposalContent(content))

	content["executiveSummary"] = map[string]any{"text": "nested"}
	assert.ErrorIs(t, ValidateProposalContent(content), ErrMalformedAIResponse)

	delete(content, "riskMitigation")
	assert.ErrorIs(t, ValidateProposalContent(content), ErrMalformedAIResponse)
}

func TestScoreFrom(t *testing.T) {
	tests := []struct {
		name    string
		in      map[string]any
		want    int
		wantErr bool
	}{
		{"number", map[string]any{"overallScore": 82.4}, 82, false},
		{"string", map[string]any{"overallScore": "91"}, 91, false},
		{"clamped", map[string]any{"overallScore": 130.0}, 100, false},
		{"missing", map[string]any{}, 0, true},
		{"wrong type", map[string]any{"overallScore": []any{}}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreFrom(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedAIResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectParsedRFP(t *testing.T) {
	parsed, err := ParseStructured(`{"title": "Bridge Repair", "clientName": "County", "budget": 250000, "requirements": [{"id": "R1"}], "timeline": null}`)
	require.NoError(t, err)

	p, err := ProjectParsedRFP(parsed)
	require.NoError(t, err)
	assert.Equal(t, "Bridge Repair", p.Title)
	assert.Equal(t, "County", p.ClientName)
	assert.Equal(t, "250000", p.Budget)
	assert.JSONEq(t, `[{"id": "R1"}]`, string(p.Requirements))
	assert.Nil(t, p.Timeline)
	assert.Nil(t, p.EvaluationCriteria)
}

func TestRefineAndScorecardRequireKeys(t *testing.T) {
	gw := NewGeminiGateway(&stubGenerator{reply: `{"section": "pricing"}`}, 0, nil)
	_, err := gw.RefineProposalSection(context.Background(), RefineInput{Section: "pricing", Current: map[string]any{}})
	assert.ErrorIs(t, err, ErrMalformedAIResponse)

	gw = NewGeminiGateway(&stubGenerator{reply: `{"overallScore": 77, "strengths": []}`}, 0, nil)
	out, err := gw.GenerateScorecard(context.Background(), ScorecardInput{Proposal: map[string]any{"executiveSummary": "x"}})
	require.NoError(t, err)
	assert.Equal(t, 77.0, out["overallScore"])
}
