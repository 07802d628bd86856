// Package menu runs the line-based front desk menu
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"frontdesk-go/frontdesk"
	"frontdesk-go/models"
)

type theme struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Ok      lipgloss.Style
	Error   lipgloss.Style
}

func defaultTheme() theme {
	return theme{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		Heading: lipgloss.NewStyle().Bold(true),
		Ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

type session struct {
	ctx   context.Context
	desk  *frontdesk.Desk
	in    *bufio.Scanner
	out   io.Writer
	theme theme
}

// Run shows the menu until the user quits, input ends or ctx is cancelled
func Run(ctx context.Context, desk *frontdesk.Desk, in io.Reader, out io.Writer) error {
	s := &session{
		ctx:   ctx,
		desk:  desk,
		in:    bufio.NewScanner(in),
		out:   out,
		theme: defaultTheme(),
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.showMenu()
		choice, err := s.prompt("\nEnter your choice: ")
		if err != nil {
			return s.endOfInput(err)
		}

		switch strings.ToLower(choice) {
		case "1":
			err = s.registerStudent()
		case "2":
			err = s.enrolStudent()
		case "3":
			err = s.search()
		case "4":
			s.listStudents()
		case "5":
			s.listTeachers()
		case "6":
			err = s.addTeacher()
		case "7":
			s.println("\nGenerating sample data...")
			s.desk.GenerateSampleData(s.ctx)
			s.println(s.theme.Ok.Render("Sample data generated successfully"))
		case "q":
			s.println("\nExiting program. Goodbye!")
			return nil
		default:
			s.println("Invalid choice. Please try again")
		}
		if err != nil {
			return s.endOfInput(err)
		}
	}
}

func (s *session) showMenu() {
	s.println("\n" + s.theme.Title.Render("===== Music School Front Desk ====="))
	s.println("1. Register New Student")
	s.println("2. Enroll Existing Student")
	s.println("3. Search Student or Teacher")
	s.println("4. List All Students")
	s.println("5. List All Teachers")
	s.println("6. Add New Teacher")
	s.println("7. Generate Sample Data")
	s.println("q. Quit")
}

func (s *session) registerStudent() error {
	name, err := s.prompt("Enter student name: ")
	if err != nil {
		return err
	}
	instrument, err := s.prompt("Enter instrument to enroll in: ")
	if err != nil {
		return err
	}

	id, status := s.desk.Register(s.ctx, name, instrument)
	s.println(s.theme.Ok.Render(fmt.Sprintf("Student '%s' added successfully. ID: %d", name, id)))
	s.reportEnrol(id, name, instrument, status)
	return nil
}

func (s *session) enrolStudent() error {
	idText, err := s.prompt("Enter student ID: ")
	if err != nil {
		return err
	}
	id, err := frontdesk.ParseID(idText)
	if err != nil {
		s.println(s.theme.Error.Render("Error: Invalid ID format. Please enter a number"))
		return nil
	}
	instrument, err := s.prompt("Enter instrument to enroll in: ")
	if err != nil {
		return err
	}

	status := s.desk.Enrol(s.ctx, id, instrument)
	name := ""
	if r, ok := s.desk.Student(id); ok {
		name = r.Name
	}
	s.reportEnrol(id, name, instrument, status)
	return nil
}

func (s *session) reportEnrol(id int, name, instrument string, status models.EnrollStatus) {
	switch status {
	case models.EnrollStatusEnrolled:
		s.println(s.theme.Ok.Render(fmt.Sprintf("Enrolled student %d (%s) in '%s'", id, name, instrument)))
	case models.EnrollStatusAlreadyEnrolled:
		s.println(fmt.Sprintf("Student %d already enrolled in '%s'", id, instrument))
	case models.EnrollStatusNotFound:
		s.println(s.theme.Error.Render(fmt.Sprintf("Error: Student ID %d not found", id)))
	}
}

func (s *session) search() error {
	term, err := s.prompt("Enter search term (name or speciality): ")
	if err != nil {
		return err
	}

	res, err := s.desk.Lookup(term)
	if err != nil {
		if errors.Is(err, frontdesk.ErrEmptyTerm) {
			s.println(s.theme.Error.Render("Error: Please enter a search term"))
			return nil
		}
		return err
	}

	s.println("\n" + s.theme.Heading.Render(fmt.Sprintf("--- Search Results for '%s' ---", res.Term)))
	if len(res.Students) > 0 {
		s.println(fmt.Sprintf("\nStudents (%d found):", len(res.Students)))
		for _, r := range res.Students {
			s.println("  " + frontdesk.FormatStudent(r))
		}
	} else {
		s.println("\nNo matching students found")
	}

	if len(res.Teachers) > 0 {
		s.println(fmt.Sprintf("\nTeachers (%d found):", len(res.Teachers)))
		for _, p := range res.Teachers {
			s.println("  " + frontdesk.FormatTeacher(p))
		}
	} else {
		s.println("\nNo matching teachers found")
	}
	return nil
}

func (s *session) listStudents() {
	s.println("\n" + s.theme.Heading.Render("--- Student List ---"))
	students := s.desk.Students()
	if len(students) == 0 {
		s.println("No students in the system")
		return
	}
	for _, r := range students {
		s.println("  " + frontdesk.FormatStudent(r))
	}
}

func (s *session) listTeachers() {
	s.println("\n" + s.theme.Heading.Render("--- Teacher List ---"))
	teachers := s.desk.Teachers()
	if len(teachers) == 0 {
		s.println("No teachers in the system")
		return
	}
	for _, p := range teachers {
		s.println("  " + frontdesk.FormatTeacher(p))
	}
}

func (s *session) addTeacher() error {
	name, err := s.prompt("Enter teacher name: ")
	if err != nil {
		return err
	}
	speciality, err := s.prompt("Enter teacher speciality: ")
	if err != nil {
		return err
	}

	id := s.desk.AddTeacher(s.ctx, name, speciality)
	s.println(s.theme.Ok.Render(fmt.Sprintf("Teacher '%s' (%s) added successfully. ID: %d", name, speciality, id)))
	return nil
}

// prompt writes label and returns the next trimmed input line, or io.EOF
// when input is exhausted.
func (s *session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *session) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		s.println("")
		return nil
	}
	return err
}

func (s *session) println(line string) {
	fmt.Fprintln(s.out, line)
}
