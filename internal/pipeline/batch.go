package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"gorm.io/gorm"
)

type DuplicatePolicy string

const (
	// DuplicateOverwrite replaces an earlier upload with the same file name
	DuplicateOverwrite DuplicatePolicy = "overwrite"
	DuplicateSkip      DuplicatePolicy = "skip"
)

func (d DuplicatePolicy) Valid() bool {
	return d == DuplicateOverwrite || d == DuplicateSkip
}

// BatchItem is either a new upload or a reference to an RFP that was already uploaded.
type BatchItem struct {
	RFPID  string
	Upload UploadInput
	Title  string
}

func (bi BatchItem) label() string {
	if bi.RFPID != "" {
		return bi.RFPID
	}
	return bi.Upload.name()
}

type BatchResult struct {
	Index      int             `json:"index"`
	Name       string          `json:"name"`
	Success    bool            `json:"success"`
	Skipped    bool            `json:"skipped"`
	Error      string          `json:"error,omitempty"`
	RFPID      string          `json:"rfpId,omitempty"`
	ProposalID string          `json:"proposalId,omitempty"`
	Proposal   *model.Proposal `json:"proposal,omitempty"`
}

type BatchSummary struct {
	Total        int           `json:"total"`
	SuccessCount int           `json:"successCount"`
	ErrorCount   int           `json:"errorCount"`
	SkippedCount int           `json:"skippedCount"`
	Results      []BatchResult `json:"results"`
}

type BatchInput struct {
	Items     []BatchItem
	Template  constant.ProposalTemplate
	Duplicate DuplicatePolicy
}

// GenerateBatch runs the items one after another. An item failure is recorded and the next
// item still runs.
func (p *Pipeline) GenerateBatch(ctx context.Context, userID string, in BatchInput) (BatchSummary, error) {
	profile, err := p.profileFor(ctx, userID)
	if err != nil {
		return BatchSummary{}, err
	}

	policy := in.Duplicate
	if policy == "" {
		policy = DuplicateOverwrite
	}

	summary := BatchSummary{
		Total:   len(in.Items),
		Results: make([]BatchResult, 0, len(in.Items)),
	}

	for i, item := range in.Items {
		p.logger.Infof("Processing batch item %d of %d for user %s", i+1, len(in.Items), userID)

		result := BatchResult{Index: i, Name: item.label()}
		proposal, skipped, err := p.batchItem(ctx, userID, profile, item, in.Template, policy)
		switch {
		case err != nil:
			p.logger.Warnf("Batch item %d (%s) failed: %v", i+1, result.Name, err)
			result.Error = err.Error()
			summary.ErrorCount++
		case skipped:
			result.Skipped = true
			summary.SkippedCount++
		default:
			result.Success = true
			result.Proposal = proposal
			result.ProposalID = proposal.ID
			if proposal.RFPUploadID != nil {
				result.RFPID = *proposal.RFPUploadID
			}
			summary.SuccessCount++
		}
		summary.Results = append(summary.Results, result)
	}

	return summary, nil
}

func (p *Pipeline) batchItem(ctx context.Context, userID string, profile *model.CompanyProfile, item BatchItem, template constant.ProposalTemplate, policy DuplicatePolicy) (*model.Proposal, bool, error) {
	rfpID := item.RFPID
	if rfpID == "" {
		var existing *model.RFPUpload
		if item.Upload.FileName != "" {
			found, err := p.store.FindRFPByFileName(ctx, profile.ID, item.Upload.name())
			switch {
			case err == nil:
				existing = found
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return nil, false, err
			}
		}

		if existing != nil && policy == DuplicateSkip {
			return nil, true, nil
		}

		rfp, err := p.ingest(ctx, profile, item.Upload, existing)
		if err != nil {
			return nil, false, err
		}
		if !rfp.IsParsed() {
			return nil, false, fmt.Errorf("%w: %s", ErrRFPNotParsed, rfp.ParseError)
		}
		rfpID = rfp.ID
	}

	proposal, err := p.generate(ctx, userID, profile, GenerateInput{
		RFPID:    rfpID,
		Template: template,
		Title:    item.Title,
	})
	if err != nil {
		return nil, false, err
	}
	return proposal, false, nil
}
