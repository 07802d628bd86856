package db

import (
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"frontdesk-go/models"
)

// RosterWriter is the write side of the roster used by bulk loaders such as
// the sample seed and the workbook import. RosterStore implements it; the front
// desk supplies one that also publishes events.
type RosterWriter interface {
	CreateProvider(name, speciality string) int
	CreateRecipient(name string) int
	Enroll(id int, label string) models.EnrollStatus
}

var _ RosterWriter = (*RosterStore)(nil)

// RosterStore holds the students and teachers of the school in memory.
//
// Records live for the lifetime of the store and are kept in insertion order.
// IDs come from two independent counters and are never reused. The store is
// meant to be driven from a single goroutine and does no locking of its own;
// callers that fan in from several goroutines must serialise access.
type RosterStore struct {
	recipients []*models.Recipient
	providers  []*models.Provider

	// ID -> position in the slices above
	recipientIndex map[int]int
	providerIndex  map[int]int

	nextRecipientID int
	nextProviderID  int

	log zerolog.Logger
}

// NewRosterStore creates an empty RosterStore
func NewRosterStore(logger zerolog.Logger) *RosterStore {
	return &RosterStore{
		recipientIndex:  make(map[int]int),
		providerIndex:   make(map[int]int),
		nextRecipientID: 1,
		nextProviderID:  1,
		log:             logger.With().Str("component", "roster").Logger(),
	}
}

// --- Teacher Operations ---

// CreateProvider adds a teacher and returns the assigned ID
func (s *RosterStore) CreateProvider(name, speciality string) int {
	p := &models.Provider{
		ID:         s.nextProviderID,
		Name:       name,
		Speciality: speciality,
	}
	s.nextProviderID++

	s.providerIndex[p.ID] = len(s.providers)
	s.providers = append(s.providers, p)

	s.log.Debug().Int("teacherId", p.ID).Str("name", name).Str("speciality", speciality).Msg("teacher added")
	return p.ID
}

// FindProviderByID returns the teacher with the given ID
func (s *RosterStore) FindProviderByID(id int) (models.Provider, bool) {
	pos, ok := s.providerIndex[id]
	if !ok {
		return models.Provider{}, false
	}
	return *s.providers[pos], true
}

// ListProviders returns every teacher in insertion order
func (s *RosterStore) ListProviders() []models.Provider {
	out := make([]models.Provider, 0, len(s.providers))
	for _, p := range s.providers {
		out = append(out, *p)
	}
	return out
}

// SearchProviders returns teachers whose name or speciality contains term,
// ignoring case
func (s *RosterStore) SearchProviders(term string) []models.Provider {
	needle := lower(term)
	out := []models.Provider{}
	for _, p := range s.providers {
		if strings.Contains(lower(p.Name), needle) || strings.Contains(lower(p.Speciality), needle) {
			out = append(out, *p)
		}
	}
	return out
}

// ProviderCount returns the number of teachers
func (s *RosterStore) ProviderCount() int {
	return len(s.providers)
}

// --- Student Operations ---

// CreateRecipient adds a student with no enrollments and returns the assigned ID
func (s *RosterStore) CreateRecipient(name string) int {
	r := &models.Recipient{
		ID:         s.nextRecipientID,
		Name:       name,
		EnrolledIn: []string{},
	}
	s.nextRecipientID++

	s.recipientIndex[r.ID] = len(s.recipients)
	s.recipients = append(s.recipients, r)

	s.log.Debug().Int("studentId", r.ID).Str("name", name).Msg("student added")
	return r.ID
}

// FindRecipientByID returns a copy of the student with the given ID
func (s *RosterStore) FindRecipientByID(id int) (models.Recipient, bool) {
	pos, ok := s.recipientIndex[id]
	if !ok {
		return models.Recipient{}, false
	}
	return cloneRecipient(s.recipients[pos]), true
}

// ListRecipients returns every student in insertion order
func (s *RosterStore) ListRecipients() []models.Recipient {
	out := make([]models.Recipient, 0, len(s.recipients))
	for _, r := range s.recipients {
		out = append(out, cloneRecipient(r))
	}
	return out
}

// SearchRecipients returns students whose name contains term, ignoring case
func (s *RosterStore) SearchRecipients(term string) []models.Recipient {
	needle := lower(term)
	out := []models.Recipient{}
	for _, r := range s.recipients {
		if strings.Contains(lower(r.Name), needle) {
			out = append(out, cloneRecipient(r))
		}
	}
	return out
}

// RecipientCount returns the number of students
func (s *RosterStore) RecipientCount() int {
	return len(s.recipients)
}

// --- Enrollment ---

// Enroll appends label to the student's instruments unless it is already
// there. Labels compare case-sensitively and are not checked against any
// teacher's speciality.
func (s *RosterStore) Enroll(id int, label string) models.EnrollStatus {
	pos, ok := s.recipientIndex[id]
	if !ok {
		s.log.Debug().Int("studentId", id).Str("instrument", label).Msg("enroll: student not found")
		return models.EnrollStatusNotFound
	}

	r := s.recipients[pos]
	for _, existing := range r.EnrolledIn {
		if existing == label {
			return models.EnrollStatusAlreadyEnrolled
		}
	}
	r.EnrolledIn = append(r.EnrolledIn, label)

	s.log.Debug().Int("studentId", id).Str("instrument", label).Msg("student enrolled")
	return models.EnrollStatusEnrolled
}

// --- Utility ---

func cloneRecipient(r *models.Recipient) models.Recipient {
	out := *r
	out.EnrolledIn = append([]string(nil), r.EnrolledIn...)
	if out.EnrolledIn == nil {
		out.EnrolledIn = []string{}
	}
	return out
}

// lower lower-cases s for case-insensitive matching. Lowering, unlike full case
// folding, never expands a rune ("ß" stays "ß"). A Caser keeps state, so a
// fresh one is built per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
