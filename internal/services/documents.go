package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/diewo77/glasspro/internal/models"
	"github.com/google/uuid"
)

// DateLayout is the display format used for document dates.
const DateLayout = "2 Jan 2006"

// Draft is the input for a new document.
type Draft struct {
	ClientName       string
	ClientEmail      string
	Date             string
	Type             models.DocumentType
	Items            []models.LineItem
	AssignedWorkerID string
}

// DocumentFilter narrows List results. Zero values match everything.
type DocumentFilter struct {
	Type   models.DocumentType
	Client string
}

func (f DocumentFilter) match(d *models.Document) bool {
	if f.Type != "" && d.Type != f.Type {
		return false
	}
	if f.Client != "" && !strings.Contains(strings.ToLower(d.ClientName), strings.ToLower(f.Client)) {
		return false
	}
	return true
}

// DocumentRepository keeps documents most-recent-first.
// It is not safe for concurrent use; Shop serializes access.
type DocumentRepository struct {
	docs     []models.Document
	counters Counters
	now      func() time.Time
	newID    func() string
}

// NewDocumentRepository wraps docs and seeds the counters from their numbers.
func NewDocumentRepository(docs []models.Document, counters Counters) *DocumentRepository {
	if counters == nil {
		counters = Counters{}
	}
	r := &DocumentRepository{docs: docs, counters: counters, now: time.Now, newID: uuid.NewString}
	for i := range docs {
		if n, err := models.ParseDocumentNumber(docs[i].Number); err == nil {
			counters.Observe(n)
		}
	}
	return r
}

// List returns copies of the documents matching f.
func (r *DocumentRepository) List(f DocumentFilter) []models.Document {
	out := make([]models.Document, 0, len(r.docs))
	for i := range r.docs {
		if f.match(&r.docs[i]) {
			out = append(out, r.docs[i].Clone())
		}
	}
	return out
}

func (r *DocumentRepository) index(id string) int {
	for i := range r.docs {
		if r.docs[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns a copy of the document with id.
func (r *DocumentRepository) Get(id string) (models.Document, error) {
	i := r.index(id)
	if i < 0 {
		return models.Document{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	return r.docs[i].Clone(), nil
}

// Create numbers and stores a new document at the head of the list.
func (r *DocumentRepository) Create(d Draft) (models.Document, error) {
	if len(d.Items) == 0 {
		return models.Document{}, ErrEmptyDocument
	}
	if d.Type == "" {
		d.Type = models.DocumentTypeInvoice
	}
	if !d.Type.Valid() {
		return models.Document{}, fmt.Errorf("%w: %q", ErrInvalidType, d.Type)
	}
	now := r.now()
	if d.Date == "" {
		d.Date = now.Format(DateLayout)
	}
	doc := models.Document{
		ID:               r.newID(),
		Number:           r.counters.Next(d.Type, now.Year()).String(),
		ClientName:       d.ClientName,
		ClientEmail:      d.ClientEmail,
		Date:             d.Date,
		Items:            append([]models.LineItem(nil), d.Items...),
		Status:           d.Type.InitialStatus(),
		AssignedWorkerID: d.AssignedWorkerID,
		Type:             d.Type,
	}
	doc.Recalculate()
	r.docs = append([]models.Document{doc}, r.docs...)
	return doc.Clone(), nil
}

// Update replaces the stored document with the same id and recomputes its amount.
func (r *DocumentRepository) Update(doc models.Document) (models.Document, error) {
	i := r.index(doc.ID)
	if i < 0 {
		return models.Document{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, doc.ID)
	}
	if len(doc.Items) == 0 {
		return models.Document{}, ErrEmptyDocument
	}
	if !doc.Status.Valid() {
		return models.Document{}, fmt.Errorf("%w: %q", ErrInvalidStatus, doc.Status)
	}
	if !doc.Type.Valid() {
		return models.Document{}, fmt.Errorf("%w: %q", ErrInvalidType, doc.Type)
	}
	doc = doc.Clone()
	doc.Recalculate()
	r.docs[i] = doc
	return doc.Clone(), nil
}

// SetStatus overwrites a document's status.
func (r *DocumentRepository) SetStatus(id string, status models.DocumentStatus) (models.Document, error) {
	if !status.Valid() {
		return models.Document{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	i := r.index(id)
	if i < 0 {
		return models.Document{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	r.docs[i].Status = status
	return r.docs[i].Clone(), nil
}

// ConvertQuotationToInvoice turns a quotation into an unpaid invoice,
// keeping the year and sequence of its number.
func (r *DocumentRepository) ConvertQuotationToInvoice(id string) (models.Document, error) {
	i := r.index(id)
	if i < 0 {
		return models.Document{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	doc := &r.docs[i]
	if doc.Type != models.DocumentTypeQuotation {
		return models.Document{}, fmt.Errorf("%w: %s", ErrNotQuotation, doc.Number)
	}
	n, err := models.ParseDocumentNumber(doc.Number)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %v", ErrMalformedNumber, err)
	}
	n.Prefix = models.DocumentTypeInvoice.Prefix()
	doc.Number = n.String()
	doc.Type = models.DocumentTypeInvoice
	doc.Status = models.DocumentStatusUnpaid
	return doc.Clone(), nil
}

// assign sets the assigned worker without touching the roster.
func (r *DocumentRepository) assign(id, workerID string) (models.Document, error) {
	i := r.index(id)
	if i < 0 {
		return models.Document{}, fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}
	r.docs[i].AssignedWorkerID = workerID
	return r.docs[i].Clone(), nil
}

// Snapshot returns the full collection for persistence.
func (r *DocumentRepository) Snapshot() []models.Document {
	return r.List(DocumentFilter{})
}

// Counters returns a copy of the numbering state for persistence.
func (r *DocumentRepository) Counters() Counters {
	out := make(Counters, len(r.counters))
	for y, n := range r.counters {
		out[y] = n
	}
	return out
}
