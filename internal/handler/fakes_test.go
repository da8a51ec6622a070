package handler

import (
	"context"
	"sort"
	"time"

	"github.com/hackhub/hackhub-server/internal/model"
	"github.com/hackhub/hackhub-server/internal/queue"
	"github.com/hackhub/hackhub-server/internal/repository"
)

// memStore is an in-memory stand-in for the MySQL repositories. It
// mirrors their semantics closely enough to exercise every handler
// branch: idempotent user creation, duplicate-pair conflicts, capacity
// guards, cascade deletes and counter bookkeeping. memUsers and
// memCatalog are thin views over it because UserDirectory and
// HackathonCatalog both name their insert Create.
type memStore struct {
	users      map[string]model.User
	hackathons map[uint64]*model.Hackathon
	regs       map[uint64]*model.Registration
	nextID     uint64
	published  []queue.NotificationEvent
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[string]model.User),
		hackathons: make(map[uint64]*model.Hackathon),
		regs:       make(map[uint64]*model.Registration),
		nextID:     1,
	}
}

func (s *memStore) id() uint64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *memStore) publish(_ context.Context, ev queue.NotificationEvent) error {
	s.published = append(s.published, ev)
	return nil
}

func (s *memStore) addUser(uid, email, role string) {
	s.users[uid] = model.User{UID: uid, Email: email, Role: role, CreatedAt: time.Now().UTC()}
}

// GetByUID satisfies RoleChecker.
func (s *memStore) GetByUID(_ context.Context, uid string) (model.User, error) {
	u, ok := s.users[uid]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

// memUsers implements UserDirectory.
type memUsers struct{ *memStore }

func (m memUsers) Create(_ context.Context, uid, email, role string) (model.User, bool, error) {
	if u, ok := m.users[uid]; ok {
		return u, false, nil
	}
	m.addUser(uid, email, role)
	return m.users[uid], true, nil
}

// memCatalog implements HackathonCatalog.
type memCatalog struct{ *memStore }

func (m memCatalog) Create(_ context.Context, title, description, date string, imageURL *string, facultyID string, maxParticipants *uint32) (uint64, error) {
	id := m.id()
	m.hackathons[id] = &model.Hackathon{
		ID: id, Title: title, Description: description, Date: date,
		ImageURL: imageURL, FacultyID: facultyID, MaxParticipants: maxParticipants,
		Status: model.HackathonStatusUpcoming, CreatedAt: time.Now().UTC(),
	}
	return id, nil
}

func (m memCatalog) GetByID(_ context.Context, id uint64) (model.Hackathon, error) {
	h, ok := m.hackathons[id]
	if !ok {
		return model.Hackathon{}, repository.ErrNotFound
	}
	return *h, nil
}

func (m memCatalog) List(_ context.Context) ([]model.Hackathon, error) {
	out := make([]model.Hackathon, 0, len(m.hackathons))
	for _, h := range m.hackathons {
		out = append(out, *h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m memCatalog) ListByFaculty(ctx context.Context, facultyID string) ([]model.Hackathon, error) {
	all, _ := m.List(ctx)
	out := make([]model.Hackathon, 0)
	for _, h := range all {
		if h.FacultyID == facultyID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m memCatalog) Delete(_ context.Context, id uint64, requesterID string) error {
	h, ok := m.hackathons[id]
	if !ok {
		return repository.ErrNotFound
	}
	if h.FacultyID != requesterID {
		return repository.ErrForbidden
	}
	for rid, reg := range m.regs {
		if reg.HackathonID == id {
			delete(m.regs, rid)
		}
	}
	delete(m.hackathons, id)
	return nil
}

// ----- RegistrationLedger -----

// Register mirrors RegistrationRepo.Register's check order: existence,
// then duplicate pair, then capacity. A registered student on a full
// hackathon must see ErrConflict, not ErrCapacityFull.
func (s *memStore) Register(_ context.Context, hackathonID uint64, studentID, name, email, phone string) (uint64, error) {
	h, ok := s.hackathons[hackathonID]
	if !ok {
		return 0, repository.ErrNotFound
	}
	for _, reg := range s.regs {
		if reg.HackathonID == hackathonID && reg.StudentID == studentID {
			return 0, repository.ErrConflict
		}
	}
	if h.MaxParticipants != nil && h.CurrentParticipants >= *h.MaxParticipants {
		return 0, repository.ErrCapacityFull
	}
	id := s.id()
	s.regs[id] = &model.Registration{
		ID: id, HackathonID: hackathonID, StudentID: studentID,
		Name: name, Email: email, Phone: phone, RegisteredAt: time.Now().UTC(),
	}
	h.CurrentParticipants++
	return id, nil
}

func (s *memStore) UnregisterByID(_ context.Context, id uint64, studentID string) error {
	reg, ok := s.regs[id]
	if !ok {
		return repository.ErrNotFound
	}
	if reg.StudentID != studentID {
		return repository.ErrForbidden
	}
	s.release(reg.HackathonID)
	delete(s.regs, id)
	return nil
}

func (s *memStore) UnregisterByPair(_ context.Context, hackathonID uint64, studentID string) error {
	for id, reg := range s.regs {
		if reg.HackathonID == hackathonID && reg.StudentID == studentID {
			s.release(hackathonID)
			delete(s.regs, id)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *memStore) release(hackathonID uint64) {
	if h, ok := s.hackathons[hackathonID]; ok && h.CurrentParticipants > 0 {
		h.CurrentParticipants--
	}
}

func (s *memStore) ListByStudent(_ context.Context, studentID string) ([]model.Registration, error) {
	out := make([]model.Registration, 0)
	for _, reg := range s.regs {
		if reg.StudentID == studentID {
			out = append(out, *reg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *memStore) ListByHackathon(_ context.Context, hackathonID uint64) ([]model.Registration, error) {
	out := make([]model.Registration, 0)
	for _, reg := range s.regs {
		if reg.HackathonID == hackathonID {
			out = append(out, *reg)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
