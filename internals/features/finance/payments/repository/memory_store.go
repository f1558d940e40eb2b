// file: internals/features/finance/payments/repository/memory_store.go
package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"schoolku_backend/internals/constants"
	feeModel "schoolku_backend/internals/features/finance/fee_structures/model"
	model "schoolku_backend/internals/features/finance/payments/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
)

type claimKey struct {
	studentID uuid.UUID
	month     string
}

// MemoryLedgerStore keeps everything in maps. Used by tests and local runs
// without Postgres; the claim map enforces the same (student, month)
// uniqueness as the DB index.
type MemoryLedgerStore struct {
	mutex sync.RWMutex

	students map[uuid.UUID]*studentModel.StudentModel
	fees     map[constants.ClassLevel]*feeModel.FeeStructureModel
	online   map[uuid.UUID]*model.OnlinePaymentModel
	offline  map[uuid.UUID]*model.OfflinePaymentModel
	claims   map[claimKey]model.PaymentMonthClaimModel
	events   map[uuid.UUID]*model.GatewayEventModel

	locksMu sync.Mutex
	locks   map[uuid.UUID]*sync.Mutex
}

func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		students: map[uuid.UUID]*studentModel.StudentModel{},
		fees:     map[constants.ClassLevel]*feeModel.FeeStructureModel{},
		online:   map[uuid.UUID]*model.OnlinePaymentModel{},
		offline:  map[uuid.UUID]*model.OfflinePaymentModel{},
		claims:   map[claimKey]model.PaymentMonthClaimModel{},
		events:   map[uuid.UUID]*model.GatewayEventModel{},
		locks:    map[uuid.UUID]*sync.Mutex{},
	}
}

var _ LedgerStore = (*MemoryLedgerStore)(nil)

/* ===================== seeding ===================== */

func (s *MemoryLedgerStore) PutStudent(st studentModel.StudentModel) *studentModel.StudentModel {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if st.StudentID == uuid.Nil {
		st.StudentID = uuid.New()
	}
	now := time.Now()
	if st.StudentCreatedAt.IsZero() {
		st.StudentCreatedAt = now
	}
	st.StudentUpdatedAt = now
	s.students[st.StudentID] = &st
	cp := st
	return &cp
}

func (s *MemoryLedgerStore) PutFeeStructure(fs feeModel.FeeStructureModel) *feeModel.FeeStructureModel {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if fs.FeeStructureID == uuid.Nil {
		fs.FeeStructureID = uuid.New()
	}
	s.fees[fs.FeeStructureClassLevel] = &fs
	cp := fs
	return &cp
}

// GatewayEvents returns logged events ordered by receive time.
func (s *MemoryLedgerStore) GatewayEvents() []model.GatewayEventModel {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]model.GatewayEventModel, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, *ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GatewayEventReceivedAt.Before(out[j].GatewayEventReceivedAt) })
	return out
}

/* ===================== students & fee structures ===================== */

func (s *MemoryLedgerStore) GetStudent(_ context.Context, id uuid.UUID) (*studentModel.StudentModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	st, ok := s.students[id]
	if !ok {
		return nil, ErrStudentNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *MemoryLedgerStore) ListStudents(_ context.Context, f StudentFilter) ([]studentModel.StudentModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]studentModel.StudentModel, 0, len(s.students))
	for _, st := range s.students {
		if f.ClassLevel != constants.ClassLevelUnassigned && st.StudentClassLevel != f.ClassLevel {
			continue
		}
		if f.ActiveOnly && !st.StudentIsActive {
			continue
		}
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.StudentClassLevel != b.StudentClassLevel {
			return a.StudentClassLevel < b.StudentClassLevel
		}
		if a.StudentName != b.StudentName {
			return a.StudentName < b.StudentName
		}
		return a.StudentID.String() < b.StudentID.String()
	})
	return out, nil
}

func (s *MemoryLedgerStore) GetFeeStructureByLevel(_ context.Context, lvl constants.ClassLevel) (*feeModel.FeeStructureModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	fs, ok := s.fees[lvl]
	if !ok {
		return nil, ErrFeeStructureNotFound
	}
	cp := *fs
	return &cp, nil
}

func (s *MemoryLedgerStore) ListFeeStructures(_ context.Context) ([]feeModel.FeeStructureModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]feeModel.FeeStructureModel, 0, len(s.fees))
	for _, fs := range s.fees {
		out = append(out, *fs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FeeStructureClassLevel < out[j].FeeStructureClassLevel })
	return out, nil
}

/* ===================== ledger reads ===================== */

func (s *MemoryLedgerStore) ListSuccessfulOnlinePayments(_ context.Context, studentID uuid.UUID) ([]model.OnlinePaymentModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := []model.OnlinePaymentModel{}
	for _, p := range s.online {
		if p.OnlinePaymentStudentID == studentID && p.OnlinePaymentStatus == model.OnlinePaymentStatusSuccess {
			out = append(out, cloneOnline(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OnlinePaymentCreatedAt.Before(out[j].OnlinePaymentCreatedAt) })
	return out, nil
}

func (s *MemoryLedgerStore) ListOfflinePayments(_ context.Context, studentID uuid.UUID) ([]model.OfflinePaymentModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := []model.OfflinePaymentModel{}
	for _, p := range s.offline {
		if p.OfflinePaymentStudentID == studentID {
			out = append(out, cloneOffline(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OfflinePaymentPaidAt.Before(out[j].OfflinePaymentPaidAt) })
	return out, nil
}

func (s *MemoryLedgerStore) ListClaimedMonths(_ context.Context, studentID uuid.UUID, months []string) ([]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := []string{}
	for _, m := range months {
		if _, ok := s.claims[claimKey{studentID, m}]; ok {
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}

/* ===================== online ===================== */

func (s *MemoryLedgerStore) CreateOnlinePayment(_ context.Context, p *model.OnlinePaymentModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if p.OnlinePaymentID == uuid.Nil {
		p.OnlinePaymentID = uuid.New()
	}
	for _, existing := range s.online {
		if existing.OnlinePaymentOrderID == p.OnlinePaymentOrderID {
			return ErrDuplicateOrderID
		}
	}
	now := time.Now()
	if p.OnlinePaymentCreatedAt.IsZero() {
		p.OnlinePaymentCreatedAt = now
	}
	p.OnlinePaymentUpdatedAt = now
	cp := cloneOnline(p)
	s.online[p.OnlinePaymentID] = &cp
	return nil
}

func (s *MemoryLedgerStore) GetOnlinePaymentByOrderID(_ context.Context, orderID string) (*model.OnlinePaymentModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, p := range s.online {
		if p.OnlinePaymentOrderID == orderID {
			cp := cloneOnline(p)
			return &cp, nil
		}
	}
	return nil, ErrPaymentNotFound
}

func (s *MemoryLedgerStore) UpdateOnlinePayment(_ context.Context, p *model.OnlinePaymentModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.online[p.OnlinePaymentID]; !ok {
		return ErrPaymentNotFound
	}
	p.OnlinePaymentUpdatedAt = time.Now()
	cp := cloneOnline(p)
	s.online[p.OnlinePaymentID] = &cp
	return nil
}

func (s *MemoryLedgerStore) SetOnlinePaymentCheckout(_ context.Context, id uuid.UUID, token, redirectURL string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	p, ok := s.online[id]
	if !ok {
		return ErrPaymentNotFound
	}
	p.OnlinePaymentSnapToken = &token
	p.OnlinePaymentRedirectURL = &redirectURL
	p.OnlinePaymentUpdatedAt = time.Now()
	return nil
}

func (s *MemoryLedgerStore) ListOnlinePayments(_ context.Context, f OnlinePaymentFilter) ([]model.OnlinePaymentModel, int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	all := []model.OnlinePaymentModel{}
	for _, p := range s.online {
		if f.StudentID != nil && p.OnlinePaymentStudentID != *f.StudentID {
			continue
		}
		if f.Status != "" && p.OnlinePaymentStatus != f.Status {
			continue
		}
		all = append(all, cloneOnline(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OnlinePaymentCreatedAt.After(all[j].OnlinePaymentCreatedAt) })
	return page(all, f.Offset, f.Limit), int64(len(all)), nil
}

func (s *MemoryLedgerStore) ListStaleOnlineOrders(_ context.Context, createdBefore time.Time, limit int) ([]model.OnlinePaymentModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := []model.OnlinePaymentModel{}
	for _, p := range s.online {
		if p.OnlinePaymentStatus == model.OnlinePaymentStatusCreated && p.OnlinePaymentCreatedAt.Before(createdBefore) {
			out = append(out, cloneOnline(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OnlinePaymentCreatedAt.Before(out[j].OnlinePaymentCreatedAt) })
	return page(out, 0, limit), nil
}

/* ===================== offline ===================== */

func (s *MemoryLedgerStore) CreateOfflinePayment(_ context.Context, p *model.OfflinePaymentModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if p.OfflinePaymentID == uuid.Nil {
		p.OfflinePaymentID = uuid.New()
	}
	now := time.Now()
	if p.OfflinePaymentCreatedAt.IsZero() {
		p.OfflinePaymentCreatedAt = now
	}
	p.OfflinePaymentUpdatedAt = now
	cp := cloneOffline(p)
	s.offline[p.OfflinePaymentID] = &cp
	return nil
}

func (s *MemoryLedgerStore) GetOfflinePayment(_ context.Context, id uuid.UUID) (*model.OfflinePaymentModel, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	p, ok := s.offline[id]
	if !ok {
		return nil, ErrPaymentNotFound
	}
	cp := cloneOffline(p)
	return &cp, nil
}

func (s *MemoryLedgerStore) DeleteOfflinePayment(_ context.Context, id uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.offline[id]; !ok {
		return ErrPaymentNotFound
	}
	delete(s.offline, id)
	return nil
}

func (s *MemoryLedgerStore) ListOfflinePaymentsPage(_ context.Context, f OfflinePaymentFilter) ([]model.OfflinePaymentModel, int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	all := []model.OfflinePaymentModel{}
	for _, p := range s.offline {
		if f.StudentID != nil && p.OfflinePaymentStudentID != *f.StudentID {
			continue
		}
		all = append(all, cloneOffline(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OfflinePaymentPaidAt.After(all[j].OfflinePaymentPaidAt) })
	return page(all, f.Offset, f.Limit), int64(len(all)), nil
}

/* ===================== claims ===================== */

// InsertClaims is all-or-nothing, like a multi-row INSERT.
func (s *MemoryLedgerStore) InsertClaims(_ context.Context, claims []model.PaymentMonthClaimModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	seen := map[claimKey]struct{}{}
	for _, c := range claims {
		k := claimKey{c.PaymentMonthClaimStudentID, c.PaymentMonthClaimMonth}
		if _, ok := s.claims[k]; ok {
			return ErrMonthClaimed
		}
		if _, ok := seen[k]; ok {
			return ErrMonthClaimed
		}
		seen[k] = struct{}{}
	}
	now := time.Now()
	for _, c := range claims {
		if c.PaymentMonthClaimID == uuid.Nil {
			c.PaymentMonthClaimID = uuid.New()
		}
		c.PaymentMonthClaimCreatedAt = now
		s.claims[claimKey{c.PaymentMonthClaimStudentID, c.PaymentMonthClaimMonth}] = c
	}
	return nil
}

func (s *MemoryLedgerStore) ReleaseClaims(_ context.Context, paymentID uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	for k, c := range s.claims {
		if c.PaymentMonthClaimPaymentID == paymentID {
			delete(s.claims, k)
		}
	}
	return nil
}

func (s *MemoryLedgerStore) claimsOf(paymentID uuid.UUID) []model.PaymentMonthClaimModel {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := []model.PaymentMonthClaimModel{}
	for _, c := range s.claims {
		if c.PaymentMonthClaimPaymentID == paymentID {
			out = append(out, c)
		}
	}
	return out
}

/* ===================== gateway events ===================== */

func (s *MemoryLedgerStore) CreateGatewayEvent(_ context.Context, ev *model.GatewayEventModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if ev.GatewayEventID == uuid.Nil {
		ev.GatewayEventID = uuid.New()
	}
	cp := *ev
	s.events[ev.GatewayEventID] = &cp
	return nil
}

func (s *MemoryLedgerStore) UpdateGatewayEvent(_ context.Context, ev *model.GatewayEventModel) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	cp := *ev
	s.events[ev.GatewayEventID] = &cp
	return nil
}

/* ===================== locking ===================== */

func (s *MemoryLedgerStore) studentLock(id uuid.UUID) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// WithStudentLock serializes per student with a mutex and undoes the
// writes made through tx when fn fails.
func (s *MemoryLedgerStore) WithStudentLock(ctx context.Context, studentID uuid.UUID, fn func(tx LedgerStore) error) error {
	l := s.studentLock(studentID)
	l.Lock()
	defer l.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.GetStudent(ctx, studentID); err != nil {
		return err
	}

	tx := &memoryTx{MemoryLedgerStore: s}
	if err := fn(tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

// memoryTx records inverse operations for every write.
type memoryTx struct {
	*MemoryLedgerStore
	undo []func()
}

func (t *memoryTx) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
}

func (t *memoryTx) CreateOnlinePayment(ctx context.Context, p *model.OnlinePaymentModel) error {
	if err := t.MemoryLedgerStore.CreateOnlinePayment(ctx, p); err != nil {
		return err
	}
	id := p.OnlinePaymentID
	t.undo = append(t.undo, func() {
		t.mutex.Lock()
		delete(t.online, id)
		t.mutex.Unlock()
	})
	return nil
}

func (t *memoryTx) UpdateOnlinePayment(ctx context.Context, p *model.OnlinePaymentModel) error {
	t.mutex.RLock()
	prev, ok := t.online[p.OnlinePaymentID]
	var before model.OnlinePaymentModel
	if ok {
		before = cloneOnline(prev)
	}
	t.mutex.RUnlock()

	if err := t.MemoryLedgerStore.UpdateOnlinePayment(ctx, p); err != nil {
		return err
	}
	t.undo = append(t.undo, func() {
		t.mutex.Lock()
		t.online[before.OnlinePaymentID] = &before
		t.mutex.Unlock()
	})
	return nil
}

func (t *memoryTx) CreateOfflinePayment(ctx context.Context, p *model.OfflinePaymentModel) error {
	if err := t.MemoryLedgerStore.CreateOfflinePayment(ctx, p); err != nil {
		return err
	}
	id := p.OfflinePaymentID
	t.undo = append(t.undo, func() {
		t.mutex.Lock()
		delete(t.offline, id)
		t.mutex.Unlock()
	})
	return nil
}

func (t *memoryTx) DeleteOfflinePayment(ctx context.Context, id uuid.UUID) error {
	prev, err := t.MemoryLedgerStore.GetOfflinePayment(ctx, id)
	if err != nil {
		return err
	}
	if err := t.MemoryLedgerStore.DeleteOfflinePayment(ctx, id); err != nil {
		return err
	}
	t.undo = append(t.undo, func() {
		t.mutex.Lock()
		t.offline[id] = prev
		t.mutex.Unlock()
	})
	return nil
}

func (t *memoryTx) InsertClaims(ctx context.Context, claims []model.PaymentMonthClaimModel) error {
	if err := t.MemoryLedgerStore.InsertClaims(ctx, claims); err != nil {
		return err
	}
	keys := make([]claimKey, 0, len(claims))
	for _, c := range claims {
		keys = append(keys, claimKey{c.PaymentMonthClaimStudentID, c.PaymentMonthClaimMonth})
	}
	t.undo = append(t.undo, func() {
		t.mutex.Lock()
		for _, k := range keys {
			delete(t.claims, k)
		}
		t.mutex.Unlock()
	})
	return nil
}

func (t *memoryTx) ReleaseClaims(ctx context.Context, paymentID uuid.UUID) error {
	released := t.claimsOf(paymentID)
	if err := t.MemoryLedgerStore.ReleaseClaims(ctx, paymentID); err != nil {
		return err
	}
	t.undo = append(t.undo, func() {
		t.mutex.Lock()
		for _, c := range released {
			t.claims[claimKey{c.PaymentMonthClaimStudentID, c.PaymentMonthClaimMonth}] = c
		}
		t.mutex.Unlock()
	})
	return nil
}

// The student lock is already held.
func (t *memoryTx) WithStudentLock(_ context.Context, _ uuid.UUID, fn func(tx LedgerStore) error) error {
	return fn(t)
}

/* ===================== helpers ===================== */

func cloneOnline(p *model.OnlinePaymentModel) model.OnlinePaymentModel {
	cp := *p
	cp.OnlinePaymentMonths = append(pq.StringArray(nil), p.OnlinePaymentMonths...)
	return cp
}

func cloneOffline(p *model.OfflinePaymentModel) model.OfflinePaymentModel {
	cp := *p
	cp.OfflinePaymentMonths = append(pq.StringArray(nil), p.OfflinePaymentMonths...)
	return cp
}

func page[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
