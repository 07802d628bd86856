package menu

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"frontdesk-go/db"
	"frontdesk-go/frontdesk"
)

func runScript(t *testing.T, desk *frontdesk.Desk, lines ...string) string {
	t.Helper()
	if desk == nil {
		desk = frontdesk.New(db.NewRosterStore(zerolog.Nop()), nil, zerolog.Nop())
	}
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	if err := Run(context.Background(), desk, in, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out.String()
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, w := range wants {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q\n--- output ---\n%s", w, out)
		}
	}
}

func TestRun_RegisterAndList(t *testing.T) {
	out := runScript(t, nil,
		"1", "Alice Johnson", "Piano",
		"2", "1", "Violin",
		"2", "1", "Violin",
		"4",
		"q",
	)
	assertContains(t, out,
		"Student 'Alice Johnson' added successfully. ID: 1",
		"Enrolled student 1 (Alice Johnson) in 'Piano'",
		"Enrolled student 1 (Alice Johnson) in 'Violin'",
		"Student 1 already enrolled in 'Violin'",
		"ID: 1, Name: Alice Johnson, Instruments: Piano, Violin",
		"Exiting program. Goodbye!",
	)
}

func TestRun_EnrolErrors(t *testing.T) {
	out := runScript(t, nil,
		"2", "abc",
		"2", "99", "Drums",
		"q",
	)
	assertContains(t, out,
		"Error: Invalid ID format. Please enter a number",
		"Error: Student ID 99 not found",
	)
}

func TestRun_SearchAfterSampleData(t *testing.T) {
	out := runScript(t, nil,
		"7",
		"3", "guitar",
		"3", "",
		"Q",
	)
	assertContains(t, out,
		"Sample data generated successfully",
		"--- Search Results for 'guitar' ---",
		"No matching students found",
		"Teachers (1 found):",
		"ID: 2, Name: Ms. Fret, Speciality: Guitar",
		"Error: Please enter a search term",
	)
}

func TestRun_TeachersAndEmptyLists(t *testing.T) {
	out := runScript(t, nil,
		"4",
		"5",
		"6", "Ms. Reed", "Clarinet",
		"5",
		"x",
		"q",
	)
	assertContains(t, out,
		"No students in the system",
		"No teachers in the system",
		"Teacher 'Ms. Reed' (Clarinet) added successfully. ID: 1",
		"ID: 1, Name: Ms. Reed, Speciality: Clarinet",
		"Invalid choice. Please try again",
	)
}

func TestRun_EOFEndsCleanly(t *testing.T) {
	desk := frontdesk.New(db.NewRosterStore(zerolog.Nop()), nil, zerolog.Nop())
	var out bytes.Buffer
	// Input ends in the middle of a registration.
	if err := Run(context.Background(), desk, strings.NewReader("1\nAlice"), &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n := len(desk.Students()); n != 0 {
		t.Errorf("students = %d, want 0", n)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	desk := frontdesk.New(db.NewRosterStore(zerolog.Nop()), nil, zerolog.Nop())
	if err := Run(ctx, desk, strings.NewReader("q\n"), &bytes.Buffer{}); err == nil {
		t.Fatal("expected context error")
	}
}
