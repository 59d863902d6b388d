package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SeakMengs/AutoRFP/internal/ai"
	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/extractor"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/SeakMengs/AutoRFP/internal/util"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound  = errors.New("company profile not found")
	ErrRFPNotFound      = errors.New("rfp not found")
	ErrRFPNotParsed     = errors.New("rfp has not been parsed yet")
	ErrInsufficientText = errors.New("not enough text could be extracted from the document")
	ErrEmptyUpload      = errors.New("either a file or pasted text is required")
	ErrInvalidTemplate  = errors.New("invalid proposal template")
)

// Store is the persistence the pipeline needs. Lookups that find nothing return
// gorm.ErrRecordNotFound.
type Store interface {
	GetProfileByUserID(ctx context.Context, userID string) (*model.CompanyProfile, error)
	ListDocuments(ctx context.Context, profileID string) ([]model.Document, error)
	GetRFP(ctx context.Context, profileID, rfpID string) (*model.RFPUpload, error)
	FindRFPByFileName(ctx context.Context, profileID, fileName string) (*model.RFPUpload, error)
	CreateRFP(ctx context.Context, rfp *model.RFPUpload) error
	SaveRFP(ctx context.Context, rfp *model.RFPUpload) error
	CreateProposal(ctx context.Context, proposal *model.Proposal) error
}

// FileStore keeps the original upload bytes.
type FileStore interface {
	Put(ctx context.Context, directory, fileName, contentType string, data []byte) (model.File, error)
	Remove(ctx context.Context, file model.File) error
}

type Pipeline struct {
	store     Store
	files     FileStore
	gateway   ai.Gateway
	extractor extractor.Extractor
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func New(store Store, files FileStore, gateway ai.Gateway, ext extractor.Extractor, logger *zap.SugaredLogger) *Pipeline {
	// For unit test
	if logger == nil {
		logger = util.NewLogger()
	}

	return &Pipeline{
		store:     store,
		files:     files,
		gateway:   gateway,
		extractor: ext,
		logger:    logger,
		now:       time.Now,
	}
}

type UploadInput struct {
	FileName string
	MimeType string
	Data     []byte
	// Text is used instead of Data for pasted RFPs
	Text string
}

func (in UploadInput) name() string {
	if in.FileName != "" {
		return util.SafeFileName(in.FileName)
	}
	return "pasted-rfp.txt"
}

func (p *Pipeline) profileFor(ctx context.Context, userID string) (*model.CompanyProfile, error) {
	profile, err := p.store.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// IngestRFP extracts, stores and parses an RFP. A parse failure is recorded on the upload and
// does not fail the ingest.
func (p *Pipeline) IngestRFP(ctx context.Context, userID string, in UploadInput) (*model.RFPUpload, error) {
	profile, err := p.profileFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return p.ingest(ctx, profile, in, nil)
}

// ingest replaces the row of existing when it is set, which is how a duplicate upload
// overwrites. The old object is removed only after the new one is stored and saved.
func (p *Pipeline) ingest(ctx context.Context, profile *model.CompanyProfile, in UploadInput, existing *model.RFPUpload) (*model.RFPUpload, error) {
	doc, mimeType, err := p.extract(in)
	if err != nil {
		return nil, err
	}

	if len([]rune(strings.TrimSpace(doc.Text))) < constant.MinRFPTextLength {
		return nil, ErrInsufficientText
	}

	// existing stays untouched until the replacement row is saved
	rfp := &model.RFPUpload{}
	if existing != nil {
		rfp.BaseModel = existing.BaseModel
	}

	rfp.ProfileID = profile.ID
	rfp.ExtractedText = extractor.Truncate(doc.Text, constant.MaxExtractedTextLength)
	rfp.PageCount = doc.PageCount
	rfp.File = model.File{
		FileName: in.name(),
		MimeType: mimeType,
		Size:     int64(len(in.Data)),
	}

	if len(in.Data) > 0 && p.files != nil {
		stored, err := p.files.Put(ctx, util.GetRFPDirectoryPath(profile.ID), in.name(), mimeType, in.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to store rfp file: %w", err)
		}
		rfp.File = stored
	}

	if existing != nil {
		err = p.store.SaveRFP(ctx, rfp)
	} else {
		err = p.store.CreateRFP(ctx, rfp)
	}
	if err != nil {
		p.removeObject(ctx, rfp.File)
		return nil, err
	}

	if existing != nil && existing.File.ObjectKey != rfp.File.ObjectKey {
		p.removeObject(ctx, existing.File)
	}

	if err := p.parse(ctx, rfp); err != nil {
		return nil, err
	}

	return rfp, nil
}

func (p *Pipeline) extract(in UploadInput) (extractor.Document, string, error) {
	if len(in.Data) == 0 {
		if strings.TrimSpace(in.Text) == "" {
			return extractor.Document{}, "", ErrEmptyUpload
		}
		return extractor.Document{Text: in.Text, PageCount: 1}, extractor.MimeText, nil
	}

	mimeType := extractor.DetectMimeType(in.FileName, in.MimeType)
	doc, err := p.extractor.ExtractDocument(in.Data, mimeType)
	if err != nil {
		return extractor.Document{}, "", err
	}
	return doc, mimeType, nil
}

func (p *Pipeline) removeObject(ctx context.Context, file model.File) {
	if p.files == nil || !file.HasObject() {
		return
	}
	if err := p.files.Remove(ctx, file); err != nil {
		p.logger.Warnf("Failed to remove stored object %s: %v", file.ObjectKey, err)
	}
}

// parse runs the AI parser and persists either the parsed fields or the parse error. Only a
// persistence failure is returned.
func (p *Pipeline) parse(ctx context.Context, rfp *model.RFPUpload) error {
	parsed, err := p.gateway.ParseRFPDocument(ctx, rfp.ExtractedText)
	if err == nil {
		var projected ai.ParsedRFP
		projected, err = ai.ProjectParsedRFP(parsed)
		if err == nil {
			now := p.now()
			rfp.Title = projected.Title
			rfp.ClientName = projected.ClientName
			rfp.Industry = projected.Industry
			rfp.Budget = projected.Budget
			rfp.Requirements = datatypes.JSON(projected.Requirements)
			rfp.EvaluationCriteria = datatypes.JSON(projected.EvaluationCriteria)
			rfp.Timeline = datatypes.JSON(projected.Timeline)
			rfp.ParsedAt = &now
			rfp.ParseError = ""
		}
	}
	if err != nil {
		p.logger.Warnf("Failed to parse rfp %s: %v", rfp.ID, err)
		rfp.ParseError = err.Error()
	}

	return p.store.SaveRFP(ctx, rfp)
}

// ReparseRFP runs the parser again on an upload owned by userID.
func (p *Pipeline) ReparseRFP(ctx context.Context, userID, rfpID string) (*model.RFPUpload, error) {
	profile, err := p.profileFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	rfp, err := p.store.GetRFP(ctx, profile.ID, rfpID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRFPNotFound
		}
		return nil, err
	}

	if err := p.parse(ctx, rfp); err != nil {
		return nil, err
	}
	return rfp, nil
}

type GenerateInput struct {
	RFPID    string
	Template constant.ProposalTemplate
	// Title overrides the title taken from the RFP
	Title string
}

// Generate creates a draft proposal for a parsed RFP. The AI call and the insert are not
// in one transaction: if the insert fails the generated content is lost.
func (p *Pipeline) Generate(ctx context.Context, userID string, in GenerateInput) (*model.Proposal, error) {
	profile, err := p.profileFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return p.generate(ctx, userID, profile, in)
}

func (p *Pipeline) generate(ctx context.Context, userID string, profile *model.CompanyProfile, in GenerateInput) (*model.Proposal, error) {
	template := in.Template
	if template == "" {
		template = constant.ProposalTemplateStandard
	}
	if !template.Valid() {
		return nil, ErrInvalidTemplate
	}

	rfp, err := p.store.GetRFP(ctx, profile.ID, in.RFPID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRFPNotFound
		}
		return nil, err
	}
	if !rfp.IsParsed() {
		return nil, ErrRFPNotParsed
	}

	documents, err := p.store.ListDocuments(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	content, err := p.gateway.GenerateProposalContent(ctx, ai.ProposalInput{
		Profile:   *profile,
		RFP:       *rfp,
		Documents: documents,
		Template:  template,
		Playbook:  profile.MatchPlaybook(rfp.Industry),
	})
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ai.ErrMalformedAIResponse, err)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = rfp.DisplayName()
	}

	rfpID := rfp.ID
	proposal := &model.Proposal{
		Title:       title,
		Status:      constant.ProposalStatusDraft,
		Content:     datatypes.JSON(raw),
		Score:       0,
		Template:    template,
		UserID:      userID,
		RFPUploadID: &rfpID,
	}

	if err := p.store.CreateProposal(ctx, proposal); err != nil {
		p.logger.Errorw("Proposal content generated but not saved", "rfpId", rfp.ID, "userId", userID, "error", err)
		return nil, err
	}

	return proposal, nil
}
