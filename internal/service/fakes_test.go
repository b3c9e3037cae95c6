package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"agrimarket/internal/errs"
	"agrimarket/internal/model"
	"agrimarket/internal/repository"
)

var (
	_ repository.UserRepository         = (*fakeUsers)(nil)
	_ repository.ProfileRepository      = (*fakeProfiles)(nil)
	_ repository.RefreshTokenRepository = (*fakeRefreshes)(nil)
	_ repository.AuditRepository        = (*fakeAudit)(nil)
	_ repository.TransactionManager     = fakeTx{}
	_ repository.ItemRepository         = (*fakeItems)(nil)
	_ repository.OrderRepository        = (*fakeOrders)(nil)
	_ repository.AlertRepository        = (*fakeAlerts)(nil)
	_ repository.StatisticsRepository   = (*fakeStats)(nil)
)

type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }

type fakeUsers struct {
	mu     sync.Mutex
	nextID uint
	byName map[string]*model.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byName: map[string]*model.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byName[u.Username]; ok {
		return errs.ErrDuplicateUsername
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	cp := *u
	f.byName[u.Username] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uint) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byName {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, name string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byName[name]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) Update(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.byName[u.Username] = &cp
	return nil
}

func (f *fakeUsers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byName)
}

type fakeProfiles struct {
	mu     sync.Mutex
	nextID uint
	byUser map[uint]*model.Profile
}

func newFakeProfiles() *fakeProfiles { return &fakeProfiles{byUser: map[uint]*model.Profile{}} }

func (f *fakeProfiles) Create(_ context.Context, p *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.byUser[p.UserID] = &cp
	return nil
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID uint) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byUser[userID]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) Update(_ context.Context, p *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.byUser[p.UserID] = &cp
	return nil
}

type fakeRefreshes struct {
	mu     sync.Mutex
	nextID uint
	rows   map[string]*model.RefreshToken
}

func newFakeRefreshes() *fakeRefreshes { return &fakeRefreshes{rows: map[string]*model.RefreshToken{}} }

func (f *fakeRefreshes) Create(_ context.Context, t *model.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	t.ID = f.nextID
	cp := *t
	f.rows[t.TokenHash] = &cp
	return nil
}

func (f *fakeRefreshes) FindByHash(_ context.Context, hash string) (*model.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[hash]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRefreshes) Revoke(_ context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, t := range f.rows {
		if t.ID == id && t.RevokedAt == nil {
			t.RevokedAt = &now
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRefreshes) active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.rows {
		if t.RevokedAt == nil {
			n++
		}
	}
	return n
}

// gatedRefreshes holds every FindByHash caller until n of them arrived, so
// concurrent redemptions all read the token before any revokes it.
type gatedRefreshes struct {
	*fakeRefreshes
	arrived sync.WaitGroup
}

func newGatedRefreshes(inner *fakeRefreshes, n int) *gatedRefreshes {
	g := &gatedRefreshes{fakeRefreshes: inner}
	g.arrived.Add(n)
	return g
}

func (g *gatedRefreshes) FindByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	t, err := g.fakeRefreshes.FindByHash(ctx, hash)
	g.arrived.Done()
	g.arrived.Wait()
	return t, err
}

func (f *fakeRefreshes) RevokeAllForUser(_ context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, t := range f.rows {
		if t.UserID == userID {
			t.RevokedAt = &now
		}
	}
	return nil
}

type fakeAudit struct {
	mu   sync.Mutex
	rows []model.AuditLog
}

func (f *fakeAudit) Log(_ context.Context, e *model.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = uint(len(f.rows) + 1)
	f.rows = append(f.rows, *e)
	return nil
}

func (f *fakeAudit) List(_ context.Context, filter repository.AuditFilter, offset, limit int) ([]model.AuditLog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.AuditLog
	for i := len(f.rows) - 1; i >= 0; i-- {
		r := f.rows[i]
		if filter.Action != "" && r.Action != filter.Action {
			continue
		}
		out = append(out, r)
	}
	total := int64(len(out))
	if offset >= len(out) {
		return []model.AuditLog{}, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeAudit) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r.Action)
	}
	return out
}

type fakeItems struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]model.InventoryItem
}

func newFakeItems() *fakeItems { return &fakeItems{rows: map[uint]model.InventoryItem{}} }

func (f *fakeItems) Create(_ context.Context, it *model.InventoryItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	it.ID = f.nextID
	f.rows[it.ID] = *it
	return nil
}

func (f *fakeItems) Update(_ context.Context, it *model.InventoryItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[it.ID] = *it
	return nil
}

func (f *fakeItems) Delete(_ context.Context, retailerID, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.rows[id]
	if !ok || it.RetailerID != retailerID {
		return errs.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeItems) FindByID(_ context.Context, retailerID, id uint) (*model.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.rows[id]
	if !ok || it.RetailerID != retailerID {
		return nil, errs.ErrNotFound
	}
	return &it, nil
}

func (f *fakeItems) FindByIDForUpdate(ctx context.Context, retailerID, id uint) (*model.InventoryItem, error) {
	return f.FindByID(ctx, retailerID, id)
}

func (f *fakeItems) ListByRetailer(_ context.Context, retailerID uint) ([]model.InventoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.InventoryItem{}
	for _, it := range f.rows {
		if it.RetailerID == retailerID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeOrders struct {
	mu     sync.Mutex
	nextID uint
	rows   map[uint]model.RetailerOrder
}

func newFakeOrders() *fakeOrders { return &fakeOrders{rows: map[uint]model.RetailerOrder{}} }

func (f *fakeOrders) Create(_ context.Context, o *model.RetailerOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	o.ID = f.nextID
	f.rows[o.ID] = *o
	return nil
}

func (f *fakeOrders) Update(_ context.Context, o *model.RetailerOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[o.ID] = *o
	return nil
}

func (f *fakeOrders) Delete(_ context.Context, retailerID, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.rows[id]
	if !ok || o.RetailerID != retailerID {
		return errs.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeOrders) FindByID(_ context.Context, retailerID, id uint) (*model.RetailerOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.rows[id]
	if !ok || o.RetailerID != retailerID {
		return nil, errs.ErrNotFound
	}
	return &o, nil
}

func (f *fakeOrders) List(_ context.Context, retailerID uint, page, limit int) ([]model.RetailerOrder, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.RetailerOrder{}
	for _, o := range f.rows {
		if o.RetailerID == retailerID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := int64(len(out))
	offset := (page - 1) * limit
	if offset >= len(out) {
		return []model.RetailerOrder{}, total, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

type fakeAlerts struct {
	mu   sync.Mutex
	rows []model.Alert
}

func (f *fakeAlerts) Create(_ context.Context, a *model.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = uint(len(f.rows) + 1)
	a.CreatedAt = time.Now()
	f.rows = append(f.rows, *a)
	return nil
}

func (f *fakeAlerts) ListByUser(_ context.Context, userID uint, unseenOnly bool, limit int) ([]model.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Alert{}
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		a := f.rows[i]
		if a.UserID != userID || (unseenOnly && a.Seen) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAlerts) MarkSeen(_ context.Context, userID, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id && f.rows[i].UserID == userID {
			f.rows[i].Seen = true
			return nil
		}
	}
	return errs.ErrNotFound
}

type fakeStats struct {
	demand     []model.ItemDemand
	gotLimit   int
	gotRetail  uint
	start, end time.Time
}

func (f *fakeStats) GetItemDemand(_ context.Context, retailerID uint, start, end time.Time, limit int) ([]model.ItemDemand, error) {
	f.gotRetail, f.start, f.end, f.gotLimit = retailerID, start, end, limit
	return f.demand, nil
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	queues []string
	events []any
}

func (p *recordingPublisher) Publish(_ context.Context, q string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queues = append(p.queues, q)
	p.events = append(p.events, v)
	return nil
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.queues...)
}

type notification struct {
	userID uint
	event  string
	data   any
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (n *recordingNotifier) Notify(userID uint, event string, data any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notification{userID, event, data})
}
