// Package testfixtures provides in-memory stand-ins for the storage layer and
// the transaction manager. They return the same sentinel errors as the
// Postgres repositories so services and use cases can be tested without a database.
package testfixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
	reservationRepo "github.com/m04kA/SMC-LabReservation/internal/infra/storage/reservation"
	roomRepo "github.com/m04kA/SMC-LabReservation/internal/infra/storage/room"
	userRepo "github.com/m04kA/SMC-LabReservation/internal/infra/storage/user"
)

// Store holds rooms, reservations and users in memory
type Store struct {
	mu sync.Mutex

	rooms        map[int64]domain.Room
	reservations map[int64]domain.Reservation
	users        map[int64]domain.User

	nextRoomID        int64
	nextReservationID int64
	nextUserID        int64

	// Err, when set, is returned by every repository call
	Err error

	Now func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		rooms:        make(map[int64]domain.Room),
		reservations: make(map[int64]domain.Reservation),
		users:        make(map[int64]domain.User),
		Now:          time.Now,
	}
}

// AddRoom inserts an active room and returns its id
func (s *Store) AddRoom(name string) int64 {
	room, _ := s.Rooms().Upsert(context.Background(), &domain.Room{Name: name, Capacity: 40, IsActive: true})
	return room.ID
}

// Rooms returns the room repository view
func (s *Store) Rooms() *RoomStore { return &RoomStore{s} }

// Reservations returns the reservation repository view
func (s *Store) Reservations() *ReservationStore { return &ReservationStore{s} }

// Users returns the user repository view
func (s *Store) Users() *UserStore { return &UserStore{s} }

// Reservation returns a copy of the stored record
func (s *Store) Reservation(id int64) (domain.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reservations[id]
	return r, ok
}

type snapshot struct {
	rooms        map[int64]domain.Room
	reservations map[int64]domain.Reservation
	users        map[int64]domain.User
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		rooms:        make(map[int64]domain.Room, len(s.rooms)),
		reservations: make(map[int64]domain.Reservation, len(s.reservations)),
		users:        make(map[int64]domain.User, len(s.users)),
	}
	for k, v := range s.rooms {
		snap.rooms[k] = v
	}
	for k, v := range s.reservations {
		snap.reservations[k] = v
	}
	for k, v := range s.users {
		snap.users[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = snap.rooms
	s.reservations = snap.reservations
	s.users = snap.users
}

// RoomStore mirrors internal/infra/storage/room.Repository
type RoomStore struct{ s *Store }

func (r *RoomStore) ListActive(context.Context) ([]*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	rooms := make([]*domain.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		if room.IsActive {
			room := room
			rooms = append(rooms, &room)
		}
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })
	return rooms, nil
}

func (r *RoomStore) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	room, ok := r.s.rooms[id]
	if !ok {
		return nil, roomRepo.ErrRoomNotFound
	}
	return &room, nil
}

func (r *RoomStore) Upsert(_ context.Context, room *domain.Room) (*domain.Room, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	for id, existing := range r.s.rooms {
		if existing.Name == room.Name {
			room.ID = id
			r.s.rooms[id] = *room
			return room, nil
		}
	}

	r.s.nextRoomID++
	room.ID = r.s.nextRoomID
	r.s.rooms[room.ID] = *room
	return room, nil
}

// ReservationStore mirrors internal/infra/storage/reservation.Repository
type ReservationStore struct{ s *Store }

func (r *ReservationStore) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	r.s.nextReservationID++
	res.ID = r.s.nextReservationID
	res.Date = domain.DateOnly(res.Date)
	res.CreatedAt = r.s.Now()
	res.UpdatedAt = res.CreatedAt
	r.s.reservations[res.ID] = *res

	out := *res
	return &out, nil
}

func (r *ReservationStore) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	res, ok := r.s.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r.s.withRoomName(res), nil
}

func (r *ReservationStore) List(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	result := make([]*domain.Reservation, 0)
	for _, res := range r.s.reservations {
		if filter.RoomID != nil && res.RoomID != *filter.RoomID {
			continue
		}
		if filter.RequesterID != nil && res.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.Date != nil && !domain.SameDate(res.Date, *filter.Date) {
			continue
		}
		switch {
		case filter.Status != nil:
			if res.Status != *filter.Status {
				continue
			}
		case filter.ActiveOnly:
			if !res.IsActive() {
				continue
			}
		case filter.DecidedOnly:
			if !res.IsTerminal() {
				continue
			}
		}
		result = append(result, r.s.withRoomName(res))
	}

	if filter.DecidedOnly {
		sort.Slice(result, func(i, j int) bool {
			a, b := result[i], result[j]
			if a.DecidedAt != nil && b.DecidedAt != nil && !a.DecidedAt.Equal(*b.DecidedAt) {
				return a.DecidedAt.After(*b.DecidedAt)
			}
			return a.ID > b.ID
		})
	} else {
		sortBySlot(result)
	}
	return result, nil
}

func (r *ReservationStore) ListByRoomAndDate(
	_ context.Context,
	roomID int64,
	date time.Time,
	statuses []domain.ReservationStatus,
) ([]*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}

	result := make([]*domain.Reservation, 0)
	for _, res := range r.s.reservations {
		if res.RoomID != roomID || !domain.SameDate(res.Date, date) {
			continue
		}
		if len(statuses) > 0 && !containsStatus(statuses, res.Status) {
			continue
		}
		result = append(result, r.s.withRoomName(res))
	}
	sortBySlot(result)
	return result, nil
}

// LockRoomDate is a no-op; TxManager serializes transactions instead
func (r *ReservationStore) LockRoomDate(context.Context, int64, time.Time) error {
	return r.s.Err
}

func (r *ReservationStore) UpdateDecision(_ context.Context, id int64, decision domain.DecisionRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}

	res, ok := r.s.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	if res.Status != domain.StatusPending {
		return reservationRepo.ErrNotPending
	}

	decidedBy := decision.DecidedBy
	decidedAt := decision.DecidedAt
	res.Status = decision.Status
	res.DecidedBy = &decidedBy
	res.DecisionNotes = decision.Notes
	res.DecidedAt = &decidedAt
	res.UpdatedAt = r.s.Now()
	r.s.reservations[id] = res
	return nil
}

func (r *ReservationStore) DeletePending(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}

	res, ok := r.s.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	if res.Status != domain.StatusPending {
		return reservationRepo.ErrNotPending
	}
	delete(r.s.reservations, id)
	return nil
}

// UserStore mirrors internal/infra/storage/user.Repository
type UserStore struct{ s *Store }

func (u *UserStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if u.s.Err != nil {
		return nil, u.s.Err
	}

	for _, existing := range u.s.users {
		if existing.Username == user.Username {
			return nil, userRepo.ErrUserExists
		}
	}

	u.s.nextUserID++
	user.ID = u.s.nextUserID
	user.CreatedAt = u.s.Now()
	u.s.users[user.ID] = *user

	out := *user
	return &out, nil
}

func (u *UserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if u.s.Err != nil {
		return nil, u.s.Err
	}

	for _, user := range u.s.users {
		if user.Username == username {
			return &user, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (u *UserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if u.s.Err != nil {
		return nil, u.s.Err
	}

	user, ok := u.s.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return &user, nil
}

func (u *UserStore) List(_ context.Context) ([]*domain.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if u.s.Err != nil {
		return nil, u.s.Err
	}

	users := make([]*domain.User, 0, len(u.s.users))
	for _, user := range u.s.users {
		user := user
		users = append(users, &user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

// withRoomName must be called with mu held
func (s *Store) withRoomName(res domain.Reservation) *domain.Reservation {
	res.RoomName = s.rooms[res.RoomID].Name
	return &res
}

func sortBySlot(list []*domain.Reservation) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime.IsBefore(b.StartTime)
		}
		return a.ID < b.ID
	})
}

func containsStatus(statuses []domain.ReservationStatus, status domain.ReservationStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
