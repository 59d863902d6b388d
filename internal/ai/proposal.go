package ai

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
)

// Top level keys every generated proposal must carry.
var RequiredProposalKeys = []string{
	"executiveSummary",
	"technicalApproach",
	"projectTimeline",
	"teamStructure",
	"pricing",
	"riskMitigation",
}

// ProposalSections is the order sections are rendered in exports.
var ProposalSections = []struct {
	Key   string
	Title string
}{
	{"executiveSummary", "Executive Summary"},
	{"technicalApproach", "Technical Approach"},
	{"projectTimeline", "Project Timeline"},
	{"teamStructure", "Team Structure"},
	{"pricing", "Pricing"},
	{"riskMitigation", "Risk Mitigation"},
}

// ValidateProposalContent checks the required keys are present and executiveSummary is a
// non-empty string.
func ValidateProposalContent(content map[string]any) error {
	for _, key := range RequiredProposalKeys {
		v, ok := content[key]
		if !ok || v == nil {
			return fmt.Errorf("%w: missing %q", ErrMalformedAIResponse, key)
		}
	}

	summary, ok := content["executiveSummary"].(string)
	if !ok || summary == "" {
		return fmt.Errorf("%w: executiveSummary must be a non-empty string", ErrMalformedAIResponse)
	}

	return nil
}

type ProposalInput struct {
	Profile   model.CompanyProfile
	RFP       model.RFPUpload
	Documents []model.Document
	Template  constant.ProposalTemplate
	Playbook  *model.IndustryPlaybook
}

type RefineInput struct {
	ProposalTitle string
	Section       string
	Current       any
	Instructions  string
}

type ScorecardInput struct {
	RFP      model.RFPUpload
	Proposal map[string]any
}

// ScoreFrom reads overallScore from a scorecard response and clamps it into 0..100.
func ScoreFrom(scorecard map[string]any) (int, error) {
	raw, ok := scorecard["overallScore"]
	if !ok {
		return 0, fmt.Errorf("%w: missing %q", ErrMalformedAIResponse, "overallScore")
	}

	var score float64
	switch v := raw.(type) {
	case float64:
		score = v
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: overallScore: %v", ErrMalformedAIResponse, err)
		}
		score = f
	default:
		return 0, fmt.Errorf("%w: overallScore has type %T", ErrMalformedAIResponse, raw)
	}

	return model.ClampScore(int(score + 0.5)), nil
}

// ParsedRFP is the typed projection of the RFP parser output that is stored on the upload.
type ParsedRFP struct {
	Title              string
	ClientName         string
	Industry           string
	Budget             string
	Requirements       json.RawMessage
	EvaluationCriteria json.RawMessage
	Timeline           json.RawMessage
}

func ProjectParsedRFP(parsed map[string]any) (ParsedRFP, error) {
	out := ParsedRFP{
		Title:      stringField(parsed, "title"),
		ClientName: stringField(parsed, "clientName"),
		Industry:   stringField(parsed, "industry"),
		Budget:     stringField(parsed, "budget"),
	}

	var err error
	if out.Requirements, err = rawField(parsed, "requirements"); err != nil {
		return out, err
	}
	if out.EvaluationCriteria, err = rawField(parsed, "evaluationCriteria"); err != nil {
		return out, err
	}
	if out.Timeline, err = rawField(parsed, "timeline"); err != nil {
		return out, err
	}

	return out, nil
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func rawField(m map[string]any, key string) (json.RawMessage, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedAIResponse, key, err)
	}
	return b, nil
}
