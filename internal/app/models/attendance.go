package models

// AttendanceRecord defines one row of the 'attendance_records' table,
// keyed by (date, admission_number). The date is stored as the canonical
// date string the caller submitted; at most one record exists per key,
// enforced by the primary key and upsert-on-conflict writes.
type AttendanceRecord struct {
	Date            string `json:"date" db:"date"`
	AdmissionNumber string `json:"admissionNumber" db:"admission_number"`
	Attendance      bool   `json:"attendance" db:"attendance"`
	Messcut         bool   `json:"messcut" db:"messcut"`
	Selected        bool   `json:"selected" db:"selected"`
}
