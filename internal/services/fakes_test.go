package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/integration-ia/ceus-crm-backend/internal/models"
	"github.com/integration-ia/ceus-crm-backend/internal/repositories"
)

/* ───────────── in-memory store ───────────── */

// fakeStore is an in-memory TxRunner. WithTx just runs fn over the same
// repositories; transactional rollback is not simulated, tests assert
// on the error paths instead.
type fakeStore struct {
	repos *repositories.Repos
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		repos: &repositories.Repos{
			Clients:    newFakeClientRepo(),
			Properties: newFakePropertyRepo(),
			Photos:     newFakePhotoRepo(),
			Videos:     newFakeVideoRepo(),
			Notes:      newFakeNoteRepo(),
			Domains:    newFakeDomainRepo(),
			Agents:     newFakeAgentRepo(),
		},
	}
}

func (s *fakeStore) Repos() *repositories.Repos { return s.repos }

func (s *fakeStore) WithTx(ctx context.Context, fn func(r *repositories.Repos) error) error {
	return fn(s.repos)
}

func (s *fakeStore) clients() *fakeClientRepo      { return s.repos.Clients.(*fakeClientRepo) }
func (s *fakeStore) properties() *fakePropertyRepo { return s.repos.Properties.(*fakePropertyRepo) }
func (s *fakeStore) photos() *fakePhotoRepo        { return s.repos.Photos.(*fakePhotoRepo) }
func (s *fakeStore) videos() *fakeVideoRepo        { return s.repos.Videos.(*fakeVideoRepo) }

/* ───────────── clients ───────────── */

type fakeClientRepo struct {
	rows map[uuid.UUID]*models.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{rows: map[uuid.UUID]*models.Client{}}
}

func (f *fakeClientRepo) Create(ctx context.Context, c *models.Client) error {
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	c, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClientRepo) ListByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*models.Client, error) {
	var out []*models.Client
	for _, c := range f.rows {
		if c.OrganizationID == orgID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClientRepo) Update(ctx context.Context, c *models.Client) error {
	stored, ok := f.rows[c.ID]
	if !ok {
		return fmt.Errorf("client %s not found", c.ID)
	}
	stored.FirstName = c.FirstName
	stored.LastName = c.LastName
	stored.Type = c.Type
	stored.ReceivesEmail = c.ReceivesEmail
	return nil
}

func (f *fakeClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeClientRepo) FindByContact(ctx context.Context, orgID uuid.UUID, numbers, emails []string, excludeID *uuid.UUID) ([]*models.Client, error) {
	nums := map[string]bool{}
	for _, n := range numbers {
		if n != "" {
			nums[n] = true
		}
	}
	addrs := map[string]bool{}
	for _, e := range emails {
		if e != "" {
			addrs[e] = true
		}
	}

	var out []*models.Client
	for _, c := range f.rows {
		if c.OrganizationID != orgID {
			continue
		}
		if excludeID != nil && c.ID == *excludeID {
			continue
		}
		match := false
		for _, ph := range c.Phones {
			if nums[ph.Number] {
				match = true
			}
		}
		for _, e := range c.Emails {
			if addrs[e.Address] {
				match = true
			}
		}
		if match {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClientRepo) UpsertPhone(ctx context.Context, p *models.ClientPhone) error {
	c, ok := f.rows[p.ClientID]
	if !ok {
		return fmt.Errorf("client %s not found", p.ClientID)
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	for i := range c.Phones {
		if c.Phones[i].Type == p.Type {
			c.Phones[i].Number = p.Number
			c.Phones[i].WhatsApp = p.WhatsApp
			return nil
		}
	}
	c.Phones = append(c.Phones, *p)
	return nil
}

func (f *fakeClientRepo) DeletePhone(ctx context.Context, clientID uuid.UUID, phoneType models.PhoneType) error {
	c, ok := f.rows[clientID]
	if !ok {
		return nil
	}
	kept := c.Phones[:0]
	for _, ph := range c.Phones {
		if ph.Type != phoneType {
			kept = append(kept, ph)
		}
	}
	c.Phones = kept
	return nil
}

func (f *fakeClientRepo) AddEmail(ctx context.Context, e *models.ClientEmail) error {
	c, ok := f.rows[e.ClientID]
	if !ok {
		return fmt.Errorf("client %s not found", e.ClientID)
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	c.Emails = append(c.Emails, *e)
	return nil
}

func (f *fakeClientRepo) DeleteEmail(ctx context.Context, id uuid.UUID) error {
	for _, c := range f.rows {
		kept := c.Emails[:0]
		for _, e := range c.Emails {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		c.Emails = kept
	}
	return nil
}

/* ───────────── properties ───────────── */

type fakePropertyRepo struct {
	rows map[uuid.UUID]*models.Property
	seq  int
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{rows: map[uuid.UUID]*models.Property{}}
}

func (f *fakePropertyRepo) Create(ctx context.Context, p *models.Property) error {
	f.seq++
	p.SequenceCode = fmt.Sprintf("PROP-%06d", f.seq)
	p.CreatedAt = time.Now()
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	p, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePropertyRepo) GetBySlug(ctx context.Context, slug string) (*models.Property, error) {
	for _, p := range f.rows {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePropertyRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	p, _ := f.GetBySlug(ctx, slug)
	return p != nil, nil
}

func (f *fakePropertyRepo) ListByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range f.rows {
		if p.OrganizationID == orgID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) ListByAgentID(ctx context.Context, agentID uuid.UUID) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range f.rows {
		if p.AgentID == agentID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) Update(ctx context.Context, p *models.Property) error {
	if _, ok := f.rows[p.ID]; !ok {
		return fmt.Errorf("property %s not found", p.ID)
	}
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePropertyRepo) ReassignAgent(ctx context.Context, fromAgentID, toAgentID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range f.rows {
		if p.AgentID == fromAgentID {
			p.AgentID = toAgentID
			n++
		}
	}
	return n, nil
}

func (f *fakePropertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

/* ───────────── photos ───────────── */

type fakePhotoRepo struct {
	rows map[uuid.UUID]*models.PropertyPhoto
}

func newFakePhotoRepo() *fakePhotoRepo {
	return &fakePhotoRepo{rows: map[uuid.UUID]*models.PropertyPhoto{}}
}

func (f *fakePhotoRepo) Create(ctx context.Context, ph *models.PropertyPhoto) error {
	ph.UploadedAt = time.Now()
	cp := *ph
	f.rows[ph.ID] = &cp
	return nil
}

func (f *fakePhotoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyPhoto, error) {
	ph, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *ph
	return &cp, nil
}

func (f *fakePhotoRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.PropertyPhoto, error) {
	var out []*models.PropertyPhoto
	for _, ph := range f.rows {
		if ph.PropertyID == propID {
			out = append(out, ph)
		}
	}
	return out, nil
}

func (f *fakePhotoRepo) UpdateFlags(ctx context.Context, id uuid.UUID, isCover bool) error {
	ph, ok := f.rows[id]
	if !ok {
		return fmt.Errorf("photo %s not found", id)
	}
	ph.IsCover = isCover
	return nil
}

func (f *fakePhotoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

func (f *fakePhotoRepo) DeleteByPropertyID(ctx context.Context, propID uuid.UUID) error {
	for id, ph := range f.rows {
		if ph.PropertyID == propID {
			delete(f.rows, id)
		}
	}
	return nil
}

/* ───────────── videos ───────────── */

type fakeVideoRepo struct {
	rows map[uuid.UUID]*models.PropertyVideo
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{rows: map[uuid.UUID]*models.PropertyVideo{}}
}

func (f *fakeVideoRepo) Create(ctx context.Context, v *models.PropertyVideo) error {
	cp := *v
	f.rows[v.ID] = &cp
	return nil
}

func (f *fakeVideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyVideo, error) {
	v, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVideoRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.PropertyVideo, error) {
	var out []*models.PropertyVideo
	for _, v := range f.rows {
		if v.PropertyID == propID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVideoRepo) Update(ctx context.Context, v *models.PropertyVideo) error {
	if _, ok := f.rows[v.ID]; !ok {
		return fmt.Errorf("video %s not found", v.ID)
	}
	cp := *v
	f.rows[v.ID] = &cp
	return nil
}

func (f *fakeVideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeVideoRepo) DeleteByPropertyID(ctx context.Context, propID uuid.UUID) error {
	for id, v := range f.rows {
		if v.PropertyID == propID {
			delete(f.rows, id)
		}
	}
	return nil
}

/* ───────────── notes ───────────── */

type fakeNoteRepo struct {
	rows map[uuid.UUID]*models.Note
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{rows: map[uuid.UUID]*models.Note{}}
}

func (f *fakeNoteRepo) Create(ctx context.Context, n *models.Note) error {
	n.CreatedAt = time.Now()
	cp := *n
	f.rows[n.ID] = &cp
	return nil
}

func (f *fakeNoteRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	n, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (f *fakeNoteRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Note, error) {
	var out []*models.Note
	for _, n := range f.rows {
		if n.PropertyID != nil && *n.PropertyID == propID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) ListByClientID(ctx context.Context, clientID uuid.UUID) ([]*models.Note, error) {
	var out []*models.Note
	for _, n := range f.rows {
		if n.ClientID != nil && *n.ClientID == clientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNoteRepo) Update(ctx context.Context, n *models.Note) error {
	stored, ok := f.rows[n.ID]
	if !ok {
		return fmt.Errorf("note %s not found", n.ID)
	}
	stored.Body = n.Body
	return nil
}

func (f *fakeNoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

/* ───────────── domains ───────────── */

type fakeDomainRepo struct {
	rows map[uuid.UUID]*models.CustomDomain
}

func newFakeDomainRepo() *fakeDomainRepo {
	return &fakeDomainRepo{rows: map[uuid.UUID]*models.CustomDomain{}}
}

func (f *fakeDomainRepo) Create(ctx context.Context, d *models.CustomDomain) error {
	d.CreatedAt = time.Now()
	cp := *d
	f.rows[d.ID] = &cp
	return nil
}

func (f *fakeDomainRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CustomDomain, error) {
	d, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDomainRepo) GetByDomain(ctx context.Context, domain string) (*models.CustomDomain, error) {
	for _, d := range f.rows {
		if d.Domain == domain {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeDomainRepo) ListByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*models.CustomDomain, error) {
	var out []*models.CustomDomain
	for _, d := range f.rows {
		if d.OrganizationID == orgID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDomainRepo) ListNonActive(ctx context.Context) ([]*models.CustomDomain, error) {
	var out []*models.CustomDomain
	for _, d := range f.rows {
		if d.Status != models.DomainStatusActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDomainRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.DomainStatus) error {
	d, ok := f.rows[id]
	if !ok {
		return fmt.Errorf("domain %s not found", id)
	}
	now := time.Now()
	d.Status = status
	d.LastCheckedAt = &now
	return nil
}

func (f *fakeDomainRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

/* ───────────── agents ───────────── */

type fakeAgentRepo struct {
	rows map[uuid.UUID]*models.Agent
}

func newFakeAgentRepo() *fakeAgentRepo {
	return &fakeAgentRepo{rows: map[uuid.UUID]*models.Agent{}}
}

func (f *fakeAgentRepo) Create(ctx context.Context, a *models.Agent) error {
	a.CreatedAt = time.Now()
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeAgentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	a, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAgentRepo) ListByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*models.Agent, error) {
	var out []*models.Agent
	for _, a := range f.rows {
		if a.OrganizationID == orgID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAgentRepo) Update(ctx context.Context, a *models.Agent) error {
	if _, ok := f.rows[a.ID]; !ok {
		return fmt.Errorf("agent %s not found", a.ID)
	}
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeAgentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.rows, id)
	return nil
}

/* ───────────── object storage ───────────── */

// fakeStorage simulates the object store: objects lists keys that
// "exist"; failExists forces ObjectExists errors to exercise the retry
// path.
type fakeStorage struct {
	objects      map[string]bool
	failExists   bool
	existsCalls  int
	deletedKeys  []string
	generatedFor []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]bool{}}
}

func (f *fakeStorage) GenerateUploadURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	f.generatedFor = append(f.generatedFor, key)
	return "https://storage.test/" + key, nil
}

func (f *fakeStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	f.existsCalls++
	if f.failExists {
		return false, fmt.Errorf("storage unavailable")
	}
	return f.objects[key], nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, key string) error {
	f.deletedKeys = append(f.deletedKeys, key)
	delete(f.objects, key)
	return nil
}

/* ───────────── notifier ───────────── */

type fakeNotifier struct {
	sent []uuid.UUID
	err  error
}

func (f *fakeNotifier) NotifyNewListing(ctx context.Context, p *models.Property) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, p.ID)
	return nil
}
