package ai

import (
	"bytes"
	"encoding/json"
	"strings"
	"text/template"
)

var promptFuncs = template.FuncMap{
	"json": func(v any) string {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return "null"
		}
		return string(b)
	},
	"join": strings.Join,
	"raw": func(b []byte) string {
		if len(b) == 0 {
			return "not specified"
		}
		return string(b)
	},
}

var parseRFPPrompt = template.Must(template.New("parse_rfp").Funcs(promptFuncs).Parse(`You are an expert proposal manager. Analyse the following Request for Proposal and extract its key information.

Return a JSON object with exactly these keys:
- "title": the RFP title (string)
- "clientName": the issuing organisation (string)
- "industry": the client's industry (string)
- "requirements": array of objects {"id": string, "description": string, "mandatory": boolean}
- "evaluationCriteria": array of objects {"name": string, "weight": number, "description": string}
- "timeline": object with "submissionDeadline", "projectStart", "projectEnd" (ISO dates or null) and "milestones" (array of strings)
- "budget": budget information as a string, or "" when not stated

RFP TEXT:
"""
{{.Text}}
"""`))

var proposalPrompt = template.Must(template.New("proposal").Funcs(promptFuncs).Parse(`You are writing a winning response to a Request for Proposal on behalf of {{.Profile.CompanyName}}.

COMPANY PROFILE
Name: {{.Profile.CompanyName}}
Industry: {{.Profile.Industry}}
Description: {{.Profile.Description}}
Website: {{.Profile.Website}}
Years in business: {{.Profile.YearsInBusiness}}
Employees: {{.Profile.EmployeeCount}}
Services: {{join .Profile.Services ", "}}
Certifications: {{join .Profile.Certifications ", "}}
{{- if .Documents}}

SUPPORTING DOCUMENTS
{{- range .Documents}}
- {{.File.FileName}} ({{.Type}})
{{- end}}
{{- end}}
{{- with .Playbook}}

INDUSTRY PLAYBOOK: {{.Name}} ({{.Industry}})
Glossary: {{join .GlossaryTerms ", "}}
KPIs to reference: {{join .KPIs ", "}}
Compliance: {{join .ComplianceProfiles ", "}}
{{- if .PromptTemplate}}
Guidance: {{.PromptTemplate}}
{{- end}}
{{- end}}

RFP
Title: {{.RFP.Title}}
Client: {{.RFP.ClientName}}
Budget: {{.RFP.Budget}}
Requirements: {{raw .RFP.Requirements}}
Evaluation criteria: {{raw .RFP.EvaluationCriteria}}
Timeline: {{raw .RFP.Timeline}}

RFP TEXT:
"""
{{.RFP.ExtractedText}}
"""

STYLE
{{.Style}}

Return a JSON object with these top level keys:
- "executiveSummary": string
- "technicalApproach": object {"overview": string, "methodology": string, "deliverables": array of strings}
- "projectTimeline": object {"phases": array of {"name": string, "durationWeeks": number, "deliverables": array of strings}}
- "teamStructure": object {"roles": array of {"title": string, "responsibilities": string, "count": number}}
- "pricing": object {"model": string, "total": string, "breakdown": array of {"item": string, "cost": string}}
- "riskMitigation": array of {"risk": string, "impact": string, "mitigation": string}`))

var refinePrompt = template.Must(template.New("refine").Funcs(promptFuncs).Parse(`You are improving one section of the proposal "{{.ProposalTitle}}".

SECTION: {{.Section}}
CURRENT CONTENT:
{{json .Current}}

INSTRUCTIONS:
{{if .Instructions}}{{.Instructions}}{{else}}Make the section clearer, more persuasive and more specific.{{end}}

Return a JSON object {"section": "{{.Section}}", "content": <the improved section, same shape as the current content>, "changes": array of strings describing what changed}.`))

var scorecardPrompt = template.Must(template.New("scorecard").Funcs(promptFuncs).Parse(`You are an RFP evaluator. Score the proposal below against the RFP's evaluation criteria.

RFP: {{.RFP.Title}} ({{.RFP.ClientName}})
Requirements: {{raw .RFP.Requirements}}
Evaluation criteria: {{raw .RFP.EvaluationCriteria}}

PROPOSAL:
{{json .Proposal}}

Return a JSON object:
- "overallScore": number from 0 to 100
- "criteria": array of {"name": string, "score": number, "maxScore": number, "comment": string}
- "strengths": array of strings
- "weaknesses": array of strings
- "recommendations": array of strings`))

var templateStyles = map[string]string{
	"standard":  "Balanced and professional. Cover every requirement clearly.",
	"technical": "Detailed and engineering focused. Emphasise architecture, methodology and technical risk.",
	"executive": "Concise and outcome focused. Lead with business value, ROI and strategic fit.",
	"creative":  "Distinctive and engaging. Use vivid language and a strong narrative while staying accurate.",
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildProposalPrompt(in ProposalInput) (string, error) {
	style, ok := templateStyles[string(in.Template)]
	if !ok {
		style = templateStyles["standard"]
	}

	return render(proposalPrompt, struct {
		ProposalInput
		Style string
	}{in, style})
}
