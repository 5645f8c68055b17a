package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"medibook/models"

	patientRepo "medibook/database/repository/patient"
	slotRepo "medibook/database/repository/slot"
)

// In-memory repository doubles honoring the same contracts as the Mongo
// implementations, including the conditional slot transition.

type memSlotRepo struct {
	mu       sync.Mutex
	slots    map[string]*models.AvailableSlot
	failList error
}

func newMemSlotRepo(slots ...models.AvailableSlot) *memSlotRepo {
	m := &memSlotRepo{slots: make(map[string]*models.AvailableSlot)}
	for i := range slots {
		s := slots[i]
		m.slots[s.ID] = &s
	}
	return m
}

func (m *memSlotRepo) CreateMany(ctx context.Context, doctorID string, slots []models.AvailableSlot) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(slots))
	for i := range slots {
		s := slots[i]
		s.DoctorID = doctorID
		m.slots[s.ID] = &s
		ids = append(ids, s.ID)
	}
	return ids, nil
}

func (m *memSlotRepo) GetByID(ctx context.Context, slotID string) (*models.AvailableSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[slotID]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *memSlotRepo) ListOpen(ctx context.Context, doctorID, fromDate string) ([]models.AvailableSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failList != nil {
		return nil, m.failList
	}
	out := []models.AvailableSlot{}
	for _, s := range m.slots {
		if s.DoctorID == doctorID && !s.Booked && !s.Expired && s.Date >= fromDate {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Start < out[j].Start
	})
	return out, nil
}

// MarkBooked mirrors the Mongo conditional update: check and transition under
// one lock, so concurrent callers see exactly one winner.
func (m *memSlotRepo) MarkBooked(ctx context.Context, slotID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[slotID]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if s.Booked || s.Expired {
		return slotRepo.ErrAlreadyBooked
	}
	s.Booked = true
	now := time.Now()
	s.BookedAt = &now
	return nil
}

func (m *memSlotRepo) Reopen(ctx context.Context, slotID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.slots[slotID]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	s.Booked = false
	s.BookedAt = nil
	return nil
}

func (m *memSlotRepo) CloseExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var closed int64
	for _, s := range m.slots {
		if !s.Booked && !s.Expired && !s.StartTime().After(now) {
			s.Expired = true
			closed++
		}
	}
	return closed, nil
}

type memAppointmentRepo struct {
	mu           sync.Mutex
	appointments []models.Appointment
	failCreate   error
}

func (m *memAppointmentRepo) Create(ctx context.Context, appointment *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate != nil {
		return m.failCreate
	}
	m.appointments = append(m.appointments, *appointment)
	return nil
}

func (m *memAppointmentRepo) GetByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return m.filter(func(a models.Appointment) bool { return a.PatientID == patientID }), nil
}

func (m *memAppointmentRepo) GetByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return m.filter(func(a models.Appointment) bool { return a.DoctorID == doctorID }), nil
}

func (m *memAppointmentRepo) GetByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	return m.filter(func(a models.Appointment) bool { return a.DoctorID == doctorID && a.Date == date }), nil
}

func (m *memAppointmentRepo) filter(keep func(models.Appointment) bool) []models.Appointment {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Appointment{}
	for _, a := range m.appointments {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

func (m *memAppointmentRepo) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.appointments)), nil
}

func (m *memAppointmentRepo) CountUpcoming(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, a := range m.appointments {
		if !a.StartTime().Before(now) {
			count++
		}
	}
	return count, nil
}

func (m *memAppointmentRepo) TopDoctorsByUpcoming(ctx context.Context, now time.Time, limit int64) ([]models.DoctorLoad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]int64{}
	for _, a := range m.appointments {
		if !a.StartTime().Before(now) {
			counts[a.DoctorID]++
		}
	}
	loads := []models.DoctorLoad{}
	for id, n := range counts {
		loads = append(loads, models.DoctorLoad{DoctorID: id, Upcoming: n})
	}
	sort.Slice(loads, func(i, j int) bool { return loads[i].Upcoming > loads[j].Upcoming })
	if int64(len(loads)) > limit {
		loads = loads[:limit]
	}
	return loads, nil
}

type memPatientRepo struct {
	mu       sync.Mutex
	patients map[string]models.Patient
}

func newMemPatientRepo(patients ...models.Patient) *memPatientRepo {
	m := &memPatientRepo{patients: make(map[string]models.Patient)}
	for _, p := range patients {
		m.patients[p.ID] = p
	}
	return m
}

func (m *memPatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patients[patient.ID] = *patient
	return nil
}

func (m *memPatientRepo) GetByID(ctx context.Context, patientID string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[patientID]
	if !ok {
		return nil, patientRepo.ErrPatientNotFound
	}
	return &p, nil
}

func (m *memPatientRepo) GetByDoctor(ctx context.Context, doctorID string) ([]models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Patient{}
	for _, p := range m.patients {
		if p.DoctorID == doctorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPatientRepo) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.patients)), nil
}
