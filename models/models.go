package models

// Recipient represents a student receiving lessons
type Recipient struct {
	ID         int      `json:"id"`         // Sequential student ID, starts at 1
	Name       string   `json:"name"`       // Student name
	EnrolledIn []string `json:"enrolledIn"` // Instruments in enrollment order, no duplicates
}

// Provider represents a teacher giving lessons
type Provider struct {
	ID         int    `json:"id"`         // Sequential teacher ID, independent of student IDs
	Name       string `json:"name"`       // Teacher name
	Speciality string `json:"speciality"` // Instrument taught, fixed at creation
}

// EnrollStatus reports the outcome of an enrollment request
type EnrollStatus int

const (
	EnrollStatusNotFound        EnrollStatus = iota // No student with the given ID
	EnrollStatusEnrolled                            // Label appended
	EnrollStatusAlreadyEnrolled                     // Label was already present, nothing changed
)

// String returns the status as used in logs and API responses
func (s EnrollStatus) String() string {
	switch s {
	case EnrollStatusEnrolled:
		return "enrolled"
	case EnrollStatusAlreadyEnrolled:
		return "already_enrolled"
	case EnrollStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// MarshalText lets EnrollStatus appear as its string form in JSON
func (s EnrollStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
