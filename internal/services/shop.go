// Package services holds the workshop's business logic: the document builder,
// the document repository, worker assignment, reporting and the Shop controller
// that owns application state and mirrors it to the key-value store.
package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"sync"
	"time"

	"github.com/diewo77/glasspro/internal/config"
	"github.com/diewo77/glasspro/internal/models"
	"github.com/diewo77/glasspro/internal/store"
	"github.com/diewo77/glasspro/validation"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Store keys. Each collection is written as one JSON array.
const (
	KeyAuth      = "glasspro_auth"
	KeyInventory = "glass_inventory"
	KeyDocuments = "glass_invoices"
	KeyServices  = "glass_services"
	KeyWorkers   = "glass_workers"
	KeySettings  = "glass_settings"
	KeyCounters  = "glass_counters"
)

// Catalog sources accepted by Selection.
const (
	SourceInventory = "inventory"
	SourceService   = "service"
)

// Options configures a Shop.
type Options struct {
	Store       store.Store
	Logger      logrus.FieldLogger
	Username    string
	Password    string
	HashCost    int // bcrypt cost, zero means bcrypt.DefaultCost
	PhoneRegion string
	Now         func() time.Time
}

// Shop is the application state controller. Every operation takes the lock,
// mutates memory and then writes the touched collections back to the store.
// Write failures are logged and never undo the in-memory change.
type Shop struct {
	mu           sync.Mutex
	store        store.Store
	log          logrus.FieldLogger
	username     string
	passwordHash []byte
	phoneRegion  string
	newID        func() string

	authenticated bool
	inventory     []models.InventoryItem
	services      []models.Service
	settings      models.Settings
	roster        *Roster
	docs          *DocumentRepository
	coord         *Coordinator
}

// NewShop loads every collection from opts.Store, falling back to the seed
// data for keys that were never written.
func NewShop(ctx context.Context, opts Options) (*Shop, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("services: nil store")
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	s := &Shop{
		store:        opts.Store,
		log:          opts.Logger,
		username:     opts.Username,
		passwordHash: hash,
		phoneRegion:  opts.PhoneRegion,
		newID:        uuid.NewString,
		inventory:    SeedInventory(),
		services:     SeedServices(),
		settings:     DefaultSettings(),
	}
	workers := SeedWorkers()
	docs := SeedDocuments()
	counters := Counters{}

	loads := []struct {
		key string
		dst any
	}{
		{KeyAuth, &s.authenticated},
		{KeyInventory, &s.inventory},
		{KeyServices, &s.services},
		{KeySettings, &s.settings},
		{KeyWorkers, &workers},
		{KeyDocuments, &docs},
		{KeyCounters, &counters},
	}
	for _, l := range loads {
		found, err := store.Load(ctx, opts.Store, l.key, l.dst)
		if err != nil {
			return nil, err
		}
		opts.Logger.WithFields(logrus.Fields{"key": l.key, "found": found}).Debug("state loaded")
	}
	for i := range docs {
		if docs[i].Type == "" {
			docs[i].Type = models.DocumentTypeInvoice
		}
	}

	s.roster = NewRoster(workers)
	s.docs = NewDocumentRepository(docs, counters)
	if opts.Now != nil {
		s.docs.now = opts.Now
	}
	s.coord = NewCoordinator(s.docs, s.roster)
	return s, nil
}

func (s *Shop) persist(ctx context.Context, key string, v any) {
	if err := store.Save(ctx, s.store, key, v); err != nil {
		config.LogError(s.log, "services", "persist", key, err)
	}
}

func (s *Shop) persistDocuments(ctx context.Context) {
	s.persist(ctx, KeyDocuments, s.docs.Snapshot())
}

// Ping probes the backing store.
func (s *Shop) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Login checks the shop credential and raises the persisted auth flag.
func (s *Shop) Login(ctx context.Context, username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = true
	s.persist(ctx, KeyAuth, true)
	return nil
}

// Logout clears the auth flag, which invalidates every issued session.
func (s *Shop) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
	s.persist(ctx, KeyAuth, false)
}

// IsAuthenticated reports whether a session is currently open.
func (s *Shop) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Username is the configured shop login.
func (s *Shop) Username() string { return s.username }

// --- inventory ---

// Inventory lists stock items whose name or SKU contains query.
func (s *Shop) Inventory(query string) []models.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.InventoryItem, 0, len(s.inventory))
	for i := range s.inventory {
		if query == "" || s.inventory[i].Matches(query) {
			out = append(out, s.inventory[i])
		}
	}
	return out
}

func (s *Shop) inventoryIndex(id string) int {
	for i := range s.inventory {
		if s.inventory[i].ID == id {
			return i
		}
	}
	return -1
}

// InventoryItem returns the stock item with id.
func (s *Shop) InventoryItem(id string) (models.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.inventoryIndex(id)
	if i < 0 {
		return models.InventoryItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	return s.inventory[i], nil
}

// AddInventoryItem validates item, assigns it an id and appends it.
func (s *Shop) AddInventoryItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error) {
	if v := validateStruct(item); v != nil {
		return models.InventoryItem{}, v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.newID()
	s.inventory = append(s.inventory, item)
	s.persist(ctx, KeyInventory, s.inventory)
	return item, nil
}

// UpdateInventoryItem replaces the item with the same id.
// Documents already referencing the item keep their captured prices.
func (s *Shop) UpdateInventoryItem(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error) {
	if v := validateStruct(item); v != nil {
		return models.InventoryItem{}, v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.inventoryIndex(item.ID)
	if i < 0 {
		return models.InventoryItem{}, fmt.Errorf("%w: %s", ErrItemNotFound, item.ID)
	}
	s.inventory[i] = item
	s.persist(ctx, KeyInventory, s.inventory)
	return item, nil
}

// DeleteInventoryItem removes the item with id.
func (s *Shop) DeleteInventoryItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.inventoryIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotFound, id)
	}
	s.inventory = append(s.inventory[:i], s.inventory[i+1:]...)
	s.persist(ctx, KeyInventory, s.inventory)
	return nil
}

// --- services ---

// Services lists the service menu.
func (s *Shop) Services() []models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Service{}, s.services...)
}

func (s *Shop) serviceIndex(id string) int {
	for i := range s.services {
		if s.services[i].ID == id {
			return i
		}
	}
	return -1
}

// AddService appends a new service.
func (s *Shop) AddService(ctx context.Context, svc models.Service) (models.Service, error) {
	if v := validateStruct(svc); v != nil {
		return models.Service{}, v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	svc.ID = s.newID()
	s.services = append(s.services, svc)
	s.persist(ctx, KeyServices, s.services)
	return svc, nil
}

// DeleteService removes the service with id.
func (s *Shop) DeleteService(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.serviceIndex(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrServiceNotFound, id)
	}
	s.services = append(s.services[:i], s.services[i+1:]...)
	s.persist(ctx, KeyServices, s.services)
	return nil
}

// --- workers ---

// Workers lists the crew.
func (s *Shop) Workers() []models.Worker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.List()
}

// Worker returns the crew member with id.
func (s *Shop) Worker(id string) (models.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.Get(id)
}

// AddWorker registers a new, available worker.
func (s *Shop) AddWorker(ctx context.Context, w models.Worker) (models.Worker, error) {
	if v := validateStruct(w); v != nil {
		return models.Worker{}, v
	}
	w.Phone = NormalizePhone(w.Phone, s.phoneRegion)
	w.Status = models.WorkerAvailable
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = s.newID()
	s.roster.add(w)
	s.persist(ctx, KeyWorkers, s.roster.List())
	return w, nil
}

// UpdateWorker replaces the worker with the same id. An empty status keeps the current one.
func (s *Shop) UpdateWorker(ctx context.Context, w models.Worker) (models.Worker, error) {
	v := validateStruct(w)
	if w.Status != "" && !w.Status.Valid() {
		if v == nil {
			v = validation.Violations{}
		}
		v["status"] = "invalid_choice"
	}
	if v != nil {
		return models.Worker{}, v
	}
	w.Phone = NormalizePhone(w.Phone, s.phoneRegion)
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.roster.Get(w.ID)
	if err != nil {
		return models.Worker{}, err
	}
	if w.Status == "" {
		w.Status = current.Status
	}
	if err := s.roster.replace(w); err != nil {
		return models.Worker{}, err
	}
	s.persist(ctx, KeyWorkers, s.roster.List())
	return w, nil
}

// DeleteWorker removes the worker. Assigned documents keep the stale id.
func (s *Shop) DeleteWorker(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.roster.remove(id); err != nil {
		return err
	}
	s.persist(ctx, KeyWorkers, s.roster.List())
	return nil
}

// WorkerJobs lists the unpaid documents assigned to the worker.
func (s *Shop) WorkerJobs(id string) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.roster.Get(id); err != nil {
		return nil, err
	}
	return ActiveJobs(s.docs.Snapshot(), id), nil
}

// --- documents ---

// Selection picks a catalog entry into a document, with optional overrides.
type Selection struct {
	Source      string   `json:"source"`
	ID          string   `json:"id"`
	Description *string  `json:"description,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	UnitPrice   *float64 `json:"unitPrice,omitempty"`
	Width       *float64 `json:"width,omitempty"`
	Height      *float64 `json:"height,omitempty"`
}

func (s *Shop) catalogEntry(source, id string) (models.CatalogEntry, error) {
	switch source {
	case SourceInventory:
		i := s.inventoryIndex(id)
		if i < 0 {
			return models.CatalogEntry{}, fmt.Errorf("%w: %s", ErrItemNotFound, id)
		}
		return s.inventory[i].Entry(), nil
	case SourceService:
		i := s.serviceIndex(id)
		if i < 0 {
			return models.CatalogEntry{}, fmt.Errorf("%w: %s", ErrServiceNotFound, id)
		}
		return s.services[i].Entry(), nil
	}
	return models.CatalogEntry{}, fmt.Errorf("%w: %q", ErrUnknownSource, source)
}

// AddSelections resolves each selection and appends it to b.
// Overrides apply after the catalog defaults, dimensions last.
func (s *Shop) AddSelections(b *Builder, sels []Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addSelections(b, sels)
}

// addSelections expects s.mu to be held.
func (s *Shop) addSelections(b *Builder, sels []Selection) error {
	for _, sel := range sels {
		entry, err := s.catalogEntry(sel.Source, sel.ID)
		if err != nil {
			return err
		}
		if err := applySelection(b, b.AddCatalogSelection(entry), sel); err != nil {
			return err
		}
	}
	return nil
}

func applySelection(b *Builder, i int, sel Selection) error {
	if sel.Description != nil {
		if err := b.SetDescription(i, *sel.Description); err != nil {
			return err
		}
	}
	if sel.UnitPrice != nil {
		if err := b.SetUnitPrice(i, *sel.UnitPrice); err != nil {
			return err
		}
	}
	if sel.Quantity != nil {
		if err := b.SetQuantity(i, *sel.Quantity); err != nil {
			return err
		}
	}
	if sel.Width != nil {
		if err := b.SetWidth(i, *sel.Width); err != nil {
			return err
		}
	}
	if sel.Height != nil {
		if err := b.SetHeight(i, *sel.Height); err != nil {
			return err
		}
	}
	return nil
}

// Catalog hands selection lookups to EditItems callbacks, which already run under the shop lock.
type Catalog struct {
	shop *Shop
}

// AddSelections resolves sels against the catalog and appends them to b.
func (c Catalog) AddSelections(b *Builder, sels []Selection) error {
	return c.shop.addSelections(b, sels)
}

// Documents lists documents most-recent-first.
func (s *Shop) Documents(f DocumentFilter) []models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs.List(f)
}

// Document returns the document with id.
func (s *Shop) Document(id string) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs.Get(id)
}

// CreateDocument numbers and stores a new invoice or quotation.
func (s *Shop) CreateDocument(ctx context.Context, d Draft) (models.Document, error) {
	v := validation.Violations{}
	validation.Required("clientName", d.ClientName, v)
	if !v.Empty() {
		return models.Document{}, v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.docs.Create(d)
	if err != nil {
		return models.Document{}, err
	}
	s.persistDocuments(ctx)
	s.persist(ctx, KeyCounters, s.docs.Counters())
	return doc, nil
}

// UpdateDocument replaces a stored document. Number and type are kept
// from the stored record; conversion is the only way to change them.
func (s *Shop) UpdateDocument(ctx context.Context, doc models.Document) (models.Document, error) {
	v := validation.Violations{}
	validation.Required("clientName", doc.ClientName, v)
	if !v.Empty() {
		return models.Document{}, v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current, err := s.docs.Get(doc.ID)
	if err != nil {
		return models.Document{}, err
	}
	doc.Number, doc.Type = current.Number, current.Type
	if doc.Status == "" {
		doc.Status = current.Status
	}
	updated, err := s.docs.Update(doc)
	if err != nil {
		return models.Document{}, err
	}
	s.persistDocuments(ctx)
	return updated, nil
}

// EditItems runs edit over a builder holding the document's items and
// stores the result. The shop stays locked for the whole edit, so edit
// must not call back into locking Shop methods; use cat for catalog lookups.
// Removing every item is rejected.
func (s *Shop) EditItems(ctx context.Context, id string, edit func(b *Builder, cat Catalog) error) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.docs.Get(id)
	if err != nil {
		return models.Document{}, err
	}
	b := NewBuilder(doc.Items)
	if err := edit(b, Catalog{shop: s}); err != nil {
		return models.Document{}, err
	}
	if b.Len() == 0 {
		return models.Document{}, ErrEmptyDocument
	}
	doc.Items = b.Items()
	updated, err := s.docs.Update(doc)
	if err != nil {
		return models.Document{}, err
	}
	s.persistDocuments(ctx)
	return updated, nil
}

// SetDocumentStatus overwrites a document's status.
func (s *Shop) SetDocumentStatus(ctx context.Context, id string, status models.DocumentStatus) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.docs.SetStatus(id, status)
	if err != nil {
		return models.Document{}, err
	}
	s.persistDocuments(ctx)
	return doc, nil
}

// ConvertQuotation turns a quotation into an unpaid invoice.
func (s *Shop) ConvertQuotation(ctx context.Context, id string) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.docs.ConvertQuotationToInvoice(id)
	if err != nil {
		return models.Document{}, err
	}
	s.persistDocuments(ctx)
	return doc, nil
}

// AssignWorker links a worker to a document and marks the worker On Duty.
func (s *Shop) AssignWorker(ctx context.Context, documentID, workerID string) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.coord.Assign(documentID, workerID)
	if err != nil {
		return models.Document{}, err
	}
	s.persistDocuments(ctx)
	if workerID != "" {
		s.persist(ctx, KeyWorkers, s.roster.List())
	}
	return doc, nil
}

// --- reporting & settings ---

// Summary computes the dashboard report from current state.
func (s *Shop) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summarize(s.docs.Snapshot(), s.inventory)
}

// Settings returns the shop identity.
func (s *Shop) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings replaces the shop identity.
func (s *Shop) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	if v := validateStruct(settings); v != nil {
		return models.Settings{}, v
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.persist(ctx, KeySettings, s.settings)
	return settings, nil
}

// validateStruct returns nil when x passes its validate tags.
func validateStruct(x any) validation.Violations {
	v := validation.Violations{}
	validation.Struct(x, v)
	if v.Empty() {
		return nil
	}
	return v
}
