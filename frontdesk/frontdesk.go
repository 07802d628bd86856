// Package frontdesk implements the reception workflows on top of the roster:
// registering and enrolling students, adding teachers and looking people up.
// The interactive menu and the HTTP API both go through a Desk.
package frontdesk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"frontdesk-go/db"
	"frontdesk-go/models"
	"frontdesk-go/seed"
)

var (
	// ErrInvalidID is returned when a student ID is not a whole number
	ErrInvalidID = errors.New("invalid ID format")
	// ErrEmptyTerm is returned when a lookup is asked for with a blank term
	ErrEmptyTerm = errors.New("empty search term")
)

// LookupResult holds the matches of a search across students and teachers
type LookupResult struct {
	Term     string             `json:"term"`
	Students []models.Recipient `json:"students"`
	Teachers []models.Provider  `json:"teachers"`
}

// Desk wraps a RosterStore with the front desk workflows. Like the store it
// is not safe for concurrent use.
type Desk struct {
	store    *db.RosterStore
	notifier Notifier
	log      zerolog.Logger
	now      func() time.Time

	publishTimeout time.Duration
}

// DefaultPublishTimeout bounds each event publish
const DefaultPublishTimeout = 2 * time.Second

// New creates a Desk. A nil notifier disables event publishing.
func New(store *db.RosterStore, notifier Notifier, logger zerolog.Logger) *Desk {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Desk{
		store:    store,
		notifier: notifier,
		log:      logger.With().Str("component", "frontdesk").Logger(),
		now:      time.Now,

		publishTimeout: DefaultPublishTimeout,
	}
}

// --- Students ---

// Register creates a student and enrolls them in instrument
func (d *Desk) Register(ctx context.Context, name, instrument string) (int, models.EnrollStatus) {
	id := d.addStudent(ctx, name)
	status := d.Enrol(ctx, id, instrument)
	return id, status
}

func (d *Desk) addStudent(ctx context.Context, name string) int {
	id := d.store.CreateRecipient(name)
	d.log.Info().Int("studentId", id).Str("name", name).Msg("student registered")
	d.publish(ctx, Event{Type: EventStudentRegistered, StudentID: id, Name: name})
	return id
}

// Enrol enrolls an existing student in instrument
func (d *Desk) Enrol(ctx context.Context, id int, instrument string) models.EnrollStatus {
	status := d.store.Enroll(id, instrument)

	switch status {
	case models.EnrollStatusEnrolled:
		r, _ := d.store.FindRecipientByID(id)
		d.log.Info().Int("studentId", id).Str("name", r.Name).Str("instrument", instrument).Msg("student enrolled")
		d.publish(ctx, Event{
			Type:       EventStudentEnrolled,
			StudentID:  id,
			Name:       r.Name,
			Instrument: instrument,
		})
	case models.EnrollStatusAlreadyEnrolled:
		d.log.Info().Int("studentId", id).Str("instrument", instrument).Msg("student already enrolled")
	case models.EnrollStatusNotFound:
		d.log.Warn().Int("studentId", id).Str("instrument", instrument).Msg("student not found")
	}
	return status
}

// Student returns the student with the given ID
func (d *Desk) Student(id int) (models.Recipient, bool) {
	return d.store.FindRecipientByID(id)
}

// Students lists every student in registration order
func (d *Desk) Students() []models.Recipient {
	return d.store.ListRecipients()
}

// --- Teachers ---

// AddTeacher creates a teacher and returns the assigned ID
func (d *Desk) AddTeacher(ctx context.Context, name, speciality string) int {
	id := d.store.CreateProvider(name, speciality)
	d.log.Info().Int("teacherId", id).Str("name", name).Str("speciality", speciality).Msg("teacher added")
	d.publish(ctx, Event{Type: EventTeacherAdded, TeacherID: id, Name: name, Instrument: speciality})
	return id
}

// Teacher returns the teacher with the given ID
func (d *Desk) Teacher(id int) (models.Provider, bool) {
	return d.store.FindProviderByID(id)
}

// Teachers lists every teacher in the order they were added
func (d *Desk) Teachers() []models.Provider {
	return d.store.ListProviders()
}

// --- Lookup ---

// Lookup searches students by name and teachers by name or speciality
func (d *Desk) Lookup(term string) (LookupResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return LookupResult{}, ErrEmptyTerm
	}
	return LookupResult{
		Term:     term,
		Students: d.store.SearchRecipients(term),
		Teachers: d.store.SearchProviders(term),
	}, nil
}

// --- Admin ---

// GenerateSampleData adds the built-in demonstration roster. Every record it
// creates is published like one entered at the desk.
func (d *Desk) GenerateSampleData(ctx context.Context) {
	seed.Sample(d.writer(ctx), d.log)
}

// ApplySeedFile loads a YAML seed file into the roster
func (d *Desk) ApplySeedFile(ctx context.Context, path string) error {
	f, err := seed.LoadFile(path)
	if err != nil {
		return err
	}
	teachers, students := seed.Apply(d.writer(ctx), f)
	d.log.Info().Str("path", path).Int("teachers", teachers).Int("students", students).Msg("seed file applied")
	return nil
}

// ImportStudents registers students from an xlsx workbook
func (d *Desk) ImportStudents(ctx context.Context, r io.Reader) (int, error) {
	return db.ImportRecipientsFromExcel(d.writer(ctx), r, d.log)
}

// ExportRoster writes the roster as an xlsx workbook
func (d *Desk) ExportRoster(w io.Writer) error {
	return db.ExportRosterToExcel(d.store, w)
}

// --- Utility ---

// ParseID converts user input into a student or teacher ID
func ParseID(text string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, text)
	}
	return id, nil
}

// FormatStudent renders a student as a single list line
func FormatStudent(r models.Recipient) string {
	instruments := "None"
	if len(r.EnrolledIn) > 0 {
		instruments = strings.Join(r.EnrolledIn, ", ")
	}
	return fmt.Sprintf("ID: %d, Name: %s, Instruments: %s", r.ID, r.Name, instruments)
}

// FormatTeacher renders a teacher as a single list line
func FormatTeacher(p models.Provider) string {
	return fmt.Sprintf("ID: %d, Name: %s, Speciality: %s", p.ID, p.Name, p.Speciality)
}

func (d *Desk) publish(ctx context.Context, ev Event) {
	ev.At = d.now().UTC()
	if d.publishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.publishTimeout)
		defer cancel()
	}
	if err := d.notifier.Publish(ctx, ev); err != nil {
		d.log.Warn().Err(err).Str("event", string(ev.Type)).Msg("failed to publish event")
	}
}

// writer hands bulk loaders a db.RosterWriter that goes through the desk
func (d *Desk) writer(ctx context.Context) db.RosterWriter {
	return deskWriter{ctx: ctx, d: d}
}

type deskWriter struct {
	ctx context.Context
	d   *Desk
}

func (w deskWriter) CreateProvider(name, speciality string) int {
	return w.d.AddTeacher(w.ctx, name, speciality)
}

func (w deskWriter) CreateRecipient(name string) int {
	return w.d.addStudent(w.ctx, name)
}

func (w deskWriter) Enroll(id int, label string) models.EnrollStatus {
	return w.d.Enrol(w.ctx, id, label)
}
