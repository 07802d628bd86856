package db

import (
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"frontdesk-go/models"
)

func newTestStore() *RosterStore {
	return NewRosterStore(zerolog.Nop())
}

func TestCreateRecipient_SequentialIDs(t *testing.T) {
	s := newTestStore()
	for want := 1; want <= 5; want++ {
		if got := s.CreateRecipient("student"); got != want {
			t.Fatalf("CreateRecipient #%d = %d, want %d", want, got, want)
		}
	}
}

func TestCreateProvider_IndependentCounter(t *testing.T) {
	s := newTestStore()
	s.CreateRecipient("a")
	s.CreateRecipient("b")
	s.CreateRecipient("c")

	for want := 1; want <= 3; want++ {
		if got := s.CreateProvider("teacher", "Piano"); got != want {
			t.Fatalf("CreateProvider #%d = %d, want %d", want, got, want)
		}
	}
	if got := s.CreateRecipient("d"); got != 4 {
		t.Fatalf("CreateRecipient after providers = %d, want 4", got)
	}
}

func TestCreate_AcceptsEmptyText(t *testing.T) {
	s := newTestStore()
	rid := s.CreateRecipient("")
	pid := s.CreateProvider("", "")

	r, ok := s.FindRecipientByID(rid)
	if !ok || r.Name != "" || len(r.EnrolledIn) != 0 {
		t.Fatalf("FindRecipientByID(%d) = %+v, %v", rid, r, ok)
	}
	p, ok := s.FindProviderByID(pid)
	if !ok || p.Name != "" || p.Speciality != "" {
		t.Fatalf("FindProviderByID(%d) = %+v, %v", pid, p, ok)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	s := newTestStore()
	if _, ok := s.FindRecipientByID(1); ok {
		t.Error("expected not found on empty store")
	}
	s.CreateRecipient("Alice")
	for _, id := range []int{0, -1, 2, 99} {
		if r, ok := s.FindRecipientByID(id); ok {
			t.Errorf("FindRecipientByID(%d) = %+v, want not found", id, r)
		}
		if p, ok := s.FindProviderByID(id); ok {
			t.Errorf("FindProviderByID(%d) = %+v, want not found", id, p)
		}
	}
}

func TestEnroll_TwiceIsIdempotent(t *testing.T) {
	s := newTestStore()
	id := s.CreateRecipient("Alice")

	if got := s.Enroll(id, "Piano"); got != models.EnrollStatusEnrolled {
		t.Fatalf("first Enroll = %v, want enrolled", got)
	}
	if got := s.Enroll(id, "Piano"); got != models.EnrollStatusAlreadyEnrolled {
		t.Fatalf("second Enroll = %v, want already_enrolled", got)
	}

	r, _ := s.FindRecipientByID(id)
	if !reflect.DeepEqual(r.EnrolledIn, []string{"Piano"}) {
		t.Errorf("EnrolledIn = %v, want [Piano]", r.EnrolledIn)
	}
}

func TestEnroll_CaseSensitiveLabels(t *testing.T) {
	s := newTestStore()
	id := s.CreateRecipient("Alice")
	s.Enroll(id, "Piano")

	if got := s.Enroll(id, "piano"); got != models.EnrollStatusEnrolled {
		t.Fatalf("Enroll(piano) = %v, want enrolled", got)
	}
	r, _ := s.FindRecipientByID(id)
	if !reflect.DeepEqual(r.EnrolledIn, []string{"Piano", "piano"}) {
		t.Errorf("EnrolledIn = %v", r.EnrolledIn)
	}
}

func TestEnroll_UnknownStudent(t *testing.T) {
	s := newTestStore()
	if got := s.Enroll(99, "Drums"); got != models.EnrollStatusNotFound {
		t.Fatalf("Enroll(99) = %v, want not_found", got)
	}
	if n := s.RecipientCount(); n != 0 {
		t.Errorf("RecipientCount = %d, want 0", n)
	}
	if _, ok := s.FindRecipientByID(99); ok {
		t.Error("Enroll must not create a record")
	}
}

func TestEnroll_LabelWithoutTeacher(t *testing.T) {
	s := newTestStore()
	s.CreateProvider("Dr. Keys", "Piano")
	id := s.CreateRecipient("Charlie Brown")

	if got := s.Enroll(id, "Drums"); got != models.EnrollStatusEnrolled {
		t.Fatalf("Enroll(Drums) = %v, want enrolled", got)
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	s := newTestStore()
	s.CreateRecipient("Alice Johnson")
	s.CreateRecipient("Bob Smith")
	s.CreateProvider("Alice Keys", "Piano")

	lower := s.SearchRecipients("alice")
	upper := s.SearchRecipients("ALICE")
	if !reflect.DeepEqual(lower, upper) || len(lower) != 1 {
		t.Errorf("SearchRecipients alice=%v ALICE=%v", lower, upper)
	}

	lowerP := s.SearchProviders("alice")
	upperP := s.SearchProviders("ALICE")
	if !reflect.DeepEqual(lowerP, upperP) || len(lowerP) != 1 {
		t.Errorf("SearchProviders alice=%v ALICE=%v", lowerP, upperP)
	}
}

func TestSearchProviders_MatchesSpeciality(t *testing.T) {
	s := newTestStore()
	s.CreateProvider("Dr. Keys", "Piano")
	s.CreateProvider("Ms. Fret", "Guitar")

	got := s.SearchProviders("piano")
	if len(got) != 1 || got[0].Name != "Dr. Keys" {
		t.Errorf("SearchProviders(piano) = %v", got)
	}
}

func TestSearchProviders_NameOrSpeciality(t *testing.T) {
	s := newTestStore()
	s.CreateProvider("Mr. Bow", "Violin")
	s.CreateProvider("Ms. Viola", "Cello")
	s.CreateProvider("Dr. Keys", "Piano")

	got := s.SearchProviders("vio")
	if len(got) != 2 || got[0].Name != "Mr. Bow" || got[1].Name != "Ms. Viola" {
		t.Errorf("SearchProviders(vio) = %v", got)
	}
}

func TestSearch_NoMatchesReturnsEmpty(t *testing.T) {
	s := newTestStore()
	s.CreateRecipient("Alice")
	s.CreateProvider("Dr. Keys", "Piano")

	if got := s.SearchRecipients("zzz"); got == nil || len(got) != 0 {
		t.Errorf("SearchRecipients = %#v, want empty non-nil", got)
	}
	if got := s.SearchProviders("zzz"); got == nil || len(got) != 0 {
		t.Errorf("SearchProviders = %#v, want empty non-nil", got)
	}
}

func TestSearchRecipients_InsertionOrder(t *testing.T) {
	s := newTestStore()
	names := []string{"Zed Smith", "Amy Smith", "Bob Jones", "Kim Smith"}
	for _, n := range names {
		s.CreateRecipient(n)
	}

	got := s.SearchRecipients("smith")
	var gotNames []string
	for _, r := range got {
		gotNames = append(gotNames, r.Name)
	}
	want := []string{"Zed Smith", "Amy Smith", "Kim Smith"}
	if !reflect.DeepEqual(gotNames, want) {
		t.Errorf("SearchRecipients order = %v, want %v", gotNames, want)
	}
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	s := newTestStore()
	id := s.CreateRecipient("Alice")
	s.Enroll(id, "Piano")

	r, _ := s.FindRecipientByID(id)
	r.EnrolledIn[0] = "Tuba"
	r.EnrolledIn = append(r.EnrolledIn, "Drums")

	list := s.ListRecipients()
	list[0].Name = "Mallory"

	again, _ := s.FindRecipientByID(id)
	if again.Name != "Alice" || !reflect.DeepEqual(again.EnrolledIn, []string{"Piano"}) {
		t.Errorf("store mutated through returned copy: %+v", again)
	}
}

func TestScenario_FrontDeskSession(t *testing.T) {
	s := newTestStore()
	if id := s.CreateProvider("Dr. Keys", "Piano"); id != 1 {
		t.Fatalf("Dr. Keys id = %d", id)
	}
	if id := s.CreateProvider("Ms. Fret", "Guitar"); id != 2 {
		t.Fatalf("Ms. Fret id = %d", id)
	}
	alice := s.CreateRecipient("Alice Johnson")
	if alice != 1 {
		t.Fatalf("Alice id = %d", alice)
	}
	s.Enroll(alice, "Piano")
	s.Enroll(alice, "Violin")

	r, ok := s.FindRecipientByID(alice)
	if !ok || !reflect.DeepEqual(r.EnrolledIn, []string{"Piano", "Violin"}) {
		t.Fatalf("Alice = %+v, %v", r, ok)
	}

	students := s.SearchRecipients("john")
	if len(students) != 1 || students[0].ID != alice {
		t.Errorf("SearchRecipients(john) = %v", students)
	}

	teachers := s.SearchProviders("guitar")
	if len(teachers) != 1 || teachers[0].Name != "Ms. Fret" || teachers[0].ID != 2 {
		t.Errorf("SearchProviders(guitar) = %v", teachers)
	}
}

func TestListProviders_InsertionOrder(t *testing.T) {
	s := newTestStore()
	if got := s.ListProviders(); len(got) != 0 {
		t.Fatalf("ListProviders on empty store = %v", got)
	}
	s.CreateProvider("Dr. Keys", "Piano")
	s.CreateProvider("Ms. Fret", "Guitar")

	want := []models.Provider{
		{ID: 1, Name: "Dr. Keys", Speciality: "Piano"},
		{ID: 2, Name: "Ms. Fret", Speciality: "Guitar"},
	}
	if got := s.ListProviders(); !reflect.DeepEqual(got, want) {
		t.Errorf("ListProviders = %v, want %v", got, want)
	}
	if n := s.ProviderCount(); n != 2 {
		t.Errorf("ProviderCount = %d", n)
	}
}

func TestSearch_LowerCaseMatchingDoesNotExpandRunes(t *testing.T) {
	s := newTestStore()
	s.CreateRecipient("Jan Straße")
	s.CreateRecipient("ÉLODIE Martin")
	s.CreateProvider("Dr. Keys", "Piano")

	if got := s.SearchRecipients("ss"); len(got) != 0 {
		t.Errorf("SearchRecipients(ss) = %v, want no match for Straße", got)
	}
	if got := s.SearchRecipients("straße"); len(got) != 1 || got[0].Name != "Jan Straße" {
		t.Errorf("SearchRecipients(straße) = %v", got)
	}
	if got := s.SearchRecipients("élodie"); len(got) != 1 || got[0].Name != "ÉLODIE Martin" {
		t.Errorf("SearchRecipients(élodie) = %v", got)
	}
	if got := s.SearchProviders("ss"); len(got) != 0 {
		t.Errorf("SearchProviders(ss) = %v", got)
	}
}

func TestRosterStoreImplementsRosterWriter(t *testing.T) {
	var w RosterWriter = newTestStore()
	id := w.CreateRecipient("Alice")
	if got := w.Enroll(id, "Piano"); got != models.EnrollStatusEnrolled {
		t.Errorf("Enroll via RosterWriter = %v", got)
	}
}
