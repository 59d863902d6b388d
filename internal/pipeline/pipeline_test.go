package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/SeakMengs/AutoRFP/internal/ai"
	"github.com/SeakMengs/AutoRFP/internal/constant"
	"github.com/SeakMengs/AutoRFP/internal/extractor"
	"github.com/SeakMengs/AutoRFP/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const rfpBody = "Request for Proposal: the City of Springfield is seeking a vendor to upgrade the municipal fibre network, " +
	"including design, installation and three years of support. Proposals are due in thirty days."

type memStore struct {
	mu        sync.Mutex
	profiles  map[string]*model.CompanyProfile
	documents []model.Document
	rfps      map[string]*model.RFPUpload
	proposals []*model.Proposal
	failSave  bool
}

func newMemStore() *memStore {
	return &memStore{
		profiles: map[string]*model.CompanyProfile{},
		rfps:     map[string]*model.RFPUpload{},
	}
}

func (m *memStore) addProfile(userID string) *model.CompanyProfile {
	profile := &model.CompanyProfile{CompanyName: "Acme Networks", Industry: "Telecom", UserID: userID}
	profile.ID = uuid.NewString()
	m.profiles[userID] = profile
	return profile
}

func (m *memStore) GetProfileByUserID(ctx context.Context, userID string) (*model.CompanyProfile, error) {
	profile, ok := m.profiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (m *memStore) ListDocuments(ctx context.Context, profileID string) ([]model.Document, error) {
	return m.documents, nil
}

func (m *memStore) GetRFP(ctx context.Context, profileID, rfpID string) (*model.RFPUpload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rfp, ok := m.rfps[rfpID]
	if !ok || rfp.ProfileID != profileID {
		return nil, gorm.ErrRecordNotFound
	}
	return rfp, nil
}

func (m *memStore) FindRFPByFileName(ctx context.Context, profileID, fileName string) (*model.RFPUpload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rfp := range m.rfps {
		if rfp.ProfileID == profileID && rfp.File.FileName == fileName {
			return rfp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memStore) CreateRFP(ctx context.Context, rfp *model.RFPUpload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rfp.ID = uuid.NewString()
	m.rfps[rfp.ID] = rfp
	return nil
}

func (m *memStore) SaveRFP(ctx context.Context, rfp *model.RFPUpload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rfps[rfp.ID] = rfp
	return nil
}

func (m *memStore) CreateProposal(ctx context.Context, proposal *model.Proposal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave {
		return errors.New("connection reset")
	}
	proposal.ID = uuid.NewString()
	m.proposals = append(m.proposals, proposal)
	return nil
}

type fakeGateway struct {
	ai.Gateway
	proposalCalls int
	failProposal  map[int]bool
	failParse     bool
}

func (f *fakeGateway) ParseRFPDocument(ctx context.Context, text string) (map[string]any, error) {
	if f.failParse {
		return nil, ai.ErrMalformedAIResponse
	}
	return map[string]any{
		"title":        "Municipal Fibre Upgrade",
		"clientName":   "City of Springfield",
		"industry":     "Government",
		"requirements": []any{"fibre design", "installation"},
	}, nil
}

func (f *fakeGateway) GenerateProposalContent(ctx context.Context, in ai.ProposalInput) (map[string]any, error) {
	f.proposalCalls++
	if f.failProposal[f.proposalCalls] {
		return nil, ai.ErrUpstream
	}
	content := map[string]any{}
	for _, key := range ai.RequiredProposalKeys {
		content[key] = map[string]any{"summary": key}
	}
	content["executiveSummary"] = "Acme Networks will deliver " + in.RFP.Title
	return content, nil
}

type rawExtractor struct{}

func (rawExtractor) ExtractDocument(data []byte, mimeType string) (extractor.Document, error) {
	return extractor.Document{Text: string(data), PageCount: 1}, nil
}

func newTestPipeline(store *memStore, gateway *fakeGateway) *Pipeline {
	return New(store, nil, gateway, rawExtractor{}, nil)
}

func pdfUpload(name, body string) UploadInput {
	return UploadInput{FileName: name, MimeType: extractor.MimePDF, Data: []byte(body)}
}

func TestUploadParseGenerate(t *testing.T) {
	store := newMemStore()
	store.addProfile("user-1")
	p := newTestPipeline(store, &fakeGateway{})
	ctx := context.Background()

	rfp, err := p.IngestRFP(ctx, "user-1", pdfUpload("proposal.pdf", rfpBody))
	require.NoError(t, err)
	assert.True(t, rfp.IsParsed())
	assert.Equal(t, "Municipal Fibre Upgrade", rfp.Title)
	assert.Equal(t, "proposal.pdf", rfp.File.FileName)
	assert.Empty(t, rfp.ParseError)

	proposal, err := p.Generate(ctx, "user-1", GenerateInput{RFPID: rfp.ID})
	require.NoError(t, err)
	assert.Equal(t, constant.ProposalStatusDraft, proposal.Status)
	assert.Equal(t, 0, proposal.Score)
	assert.Equal(t, constant.ProposalTemplateStandard, proposal.Template)
	assert.Equal(t, "Municipal Fibre Upgrade", proposal.Title)
	require.NotNil(t, proposal.RFPUploadID)
	assert.Equal(t, rfp.ID, *proposal.RFPUploadID)

	var content map[string]any
	require.NoError(t, json.Unmarshal(proposal.Content, &content))
	assert.NotEmpty(t, content["executiveSummary"])

	require.Len(t, store.proposals, 1)
	assert.Equal(t, proposal.ID, store.proposals[0].ID)
}

func TestIngestKeepsUploadWhenParseFails(t *testing.T) {
	store := newMemStore()
	store.addProfile("user-1")
	p := newTestPipeline(store, &fakeGateway{failParse: true})
	ctx := context.Background()

	rfp, err := p.IngestRFP(ctx, "user-1", pdfUpload("rfp.pdf", rfpBody))
	require.NoError(t, err)
	assert.False(t, rfp.IsParsed())
	assert.NotEmpty(t, rfp.ParseError)
	assert.Len(t, store.rfps, 1)

	_, err = p.Generate(ctx, "user-1", GenerateInput{RFPID: rfp.ID})
	assert.ErrorIs(t, err, ErrRFPNotParsed)
}

func TestIngestRejectsShortText(t *testing.T) {
	store := newMemStore()
	store.addProfile("user-1")
	p := newTestPipeline(store, &fakeGateway{})

	_, err := p.IngestRFP(context.Background(), "user-1", pdfUpload("tiny.pdf", "too short"))
	assert.ErrorIs(t, err, ErrInsufficientText)
	assert.Empty(t, store.rfps)
}

func TestIngestPastedTextAndTruncation(t *testing.T) {
	store := newMemStore()
	store.addProfile("user-1")
	p := newTestPipeline(store, &fakeGateway{})

	long := strings.Repeat("a", constant.MaxExtractedTextLength+500)
	rfp, err := p.IngestRFP(context.Background(), "user-1", UploadInput{Text: long})
	require.NoError(t, err)
	assert.Equal(t, constant.MaxExtractedTextLength, len([]rune(rfp.ExtractedText)))
	assert.Equal(t, extractor.MimeText, rfp.File.MimeType)

	_, err = p.IngestRFP(context.Background(), "user-1", UploadInput{})
	assert.ErrorIs(t, err, ErrEmptyUpload)
}

func TestGenerateRequiresProfileAndOwnedRFP(t *testing.T) {
	store := newMemStore()
	store.addProfile("owner")
	store.addProfile("other")
	p := newTestPipeline(store, &fakeGateway{})
	ctx := context.Background()

	_, err := p.Generate(ctx, "nobody", GenerateInput{RFPID: "x"})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	rfp, err := p.IngestRFP(ctx, "owner", pdfUpload("rfp.pdf", rfpBody))
	require.NoError(t, err)

	_, err = p.Generate(ctx, "other", GenerateInput{RFPID: rfp.ID})
	assert.ErrorIs(t, err, ErrRFPNotFound)

	_, err = p.Generate(ctx, "owner", GenerateInput{RFPID: rfp.ID, Template: "poetic"})
	assert.ErrorIs(t, err, ErrInvalidTemplate)
}

func TestGenerateSaveFailureReturnsError(t *testing.T) {
	store := newMemStore()
	store.addProfile("user-1")
	p := newTestPipeline(store, &fakeGateway{})
	ctx := context.Background()

	rfp, err := p.IngestRFP(ctx, "user-1", pdfUpload("rfp.pdf", rfpBody))
	require.NoError(t, err)

	store.failSave = true
	_, err = p.Generate(ctx, "user-1", GenerateInput{RFPID: rfp.ID})
	assert.Error(t, err)
	assert.Empty(t, store.proposals)
}

func TestGenerateBatchContinuesAfterFailure(t *testing.T) {
	store := newMemStore()
	store.addProfile("user-1")
	gateway := &fakeGateway{failProposal: map[int]bool{2: true}}
	p := newTestPipeline(store, gateway)

	summary, err := p.GenerateBatch(context.Background(), "user-1", BatchInput{
		Items: []BatchItem{
			{Upload: pdfUpload("one.pdf", rfpBody)},
			{Upload: pdfUpload("two.pdf", rfpBody)},
			{Upload: pdfUpload("three.pdf", rfpBody)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.SuccessCount)
	assert.Equal(t, 1, summary.ErrorCount)
	require.Len(t, summary.Results, 3)
	assert.True(t, summary.Results[0].Success)
	assert.False(t, summary.Results[1].Success)
	assert.NotEmpty(t, summary.Results[1].Error)
	assert.True(t, summary.Results[2].Success)
	assert.Len(t, store.proposals, 2)
}

func TestGenerateBatchDuplicatePolicies(t *testing.T) {
	store := newMemStore()
	store.addProfile("user-1")
	p := newTestPipeline(store, &fakeGateway{})
	ctx := context.Background()

	first, err := p.IngestRFP(ctx, "user-1", pdfUpload("same.pdf", rfpBody))
	require.NoError(t, err)

	summary, err := p.GenerateBatch(ctx, "user-1", BatchInput{
		Items:     []BatchItem{{Upload: pdfUpload("same.pdf", rfpBody)}},
		Duplicate: DuplicateSkip,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SkippedCount)
	assert.True(t, summary.Results[0].Skipped)
	assert.Empty(t, store.proposals)

	summary, err = p.GenerateBatch(ctx, "user-1", BatchInput{
		Items:     []BatchItem{{Upload: pdfUpload("same.pdf", rfpBody+" Amended.")}},
		Duplicate: DuplicateOverwrite,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, first.ID, summary.Results[0].RFPID)
	assert.Len(t, store.rfps, 1)
	assert.Contains(t, store.rfps[first.ID].ExtractedText, "Amended.")
}

func TestGenerateBatchWithoutProfile(t *testing.T) {
	p := newTestPipeline(newMemStore(), &fakeGateway{})

	_, err := p.GenerateBatch(context.Background(), "ghost", BatchInput{Items: []BatchItem{{RFPID: "x"}}})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

type memFiles struct {
	puts    int
	failPut bool
	removed []string
}

func (f *memFiles) Put(ctx context.Context, directory, fileName, contentType string, data []byte) (model.File, error) {
	if f.failPut {
		return model.File{}, errors.New("bucket unavailable")
	}
	f.puts++
	return model.File{
		FileName:   fileName,
		ObjectKey:  fmt.Sprintf("%s/%d-%s", directory, f.puts, fileName),
		BucketName: "autorfp",
		Size:       int64(len(data)),
		MimeType:   contentType,
	}, nil
}

func (f *memFiles) Remove(ctx context.Context, file model.File) error {
	f.removed = append(f.removed, file.ObjectKey)
	return nil
}

func TestOverwriteKeepsOldObjectWhenStoreFails(t *testing.T) {
	store := newMemStore()
	store.addProfile("user-1")
	files := &memFiles{}
	p := New(store, files, &fakeGateway{}, rawExtractor{}, nil)
	ctx := context.Background()

	first, err := p.IngestRFP(ctx, "user-1", pdfUpload("same.pdf", rfpBody))
	require.NoError(t, err)
	oldKey := first.File.ObjectKey
	require.NotEmpty(t, oldKey)

	files.failPut = true
	summary, err := p.GenerateBatch(ctx, "user-1", BatchInput{
		Items:     []BatchItem{{Upload: pdfUpload("same.pdf", rfpBody+" Amended.")}},
		Duplicate: DuplicateOverwrite,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ErrorCount)
	assert.Empty(t, files.removed)
	assert.Equal(t, oldKey, store.rfps[first.ID].File.ObjectKey)
	assert.NotContains(t, store.rfps[first.ID].ExtractedText, "Amended.")
}

func TestOverwriteRemovesOldObjectAfterSave(t *testing.T) {
	store := newMemStore()
	store.addProfile("user-1")
	files := &memFiles{}
	p := New(store, files, &fakeGateway{}, rawExtractor{}, nil)
	ctx := context.Background()

	first, err := p.IngestRFP(ctx, "user-1", pdfUpload("same.pdf", rfpBody))
	require.NoError(t, err)
	oldKey := first.File.ObjectKey

	summary, err := p.GenerateBatch(ctx, "user-1", BatchInput{
		Items:     []BatchItem{{Upload: pdfUpload("same.pdf", rfpBody+" Amended.")}},
		Duplicate: DuplicateOverwrite,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.SuccessCount)
	assert.Equal(t, []string{oldKey}, files.removed)

	saved := store.rfps[first.ID]
	assert.NotEqual(t, oldKey, saved.File.ObjectKey)
	assert.Equal(t, first.CreatedAt, saved.CreatedAt)
}
