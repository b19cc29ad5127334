package dto

// AttendanceEntry is one per-student entry inside a bulk attendance save.
type AttendanceEntry struct {
	AdmissionNumber FlexString `json:"admissionNumber"`
	Attendance      bool       `json:"attendance"`
	Messcut         bool       `json:"messcut"`
	Selected        bool       `json:"selected"`
}

// SaveAttendanceRequest is the payload for the bulk attendance save.
type SaveAttendanceRequest struct {
	Date    string            `json:"date"`
	Records []AttendanceEntry `json:"records"`
}

// AttendanceRow is one row of the per-date attendance report: every user
// appears exactly once, enriched with that date's record when one exists.
type AttendanceRow struct {
	SlNo            int    `json:"slno"`
	AdmissionNumber string `json:"admissionNumber"`
	Name            string `json:"name"`
	Semester        string `json:"semester"`
	RoomNo          string `json:"roomNo"`
	Messcut         bool   `json:"messcut"`
	Attendance      bool   `json:"attendance"`
	Selected        bool   `json:"selected"`
}

// AbsenteeRow is one row of the per-date absentee report.
type AbsenteeRow struct {
	SlNo     int    `json:"slno"`
	Semester string `json:"semester"`
	RoomNo   string `json:"roomNo"`
	Name     string `json:"name"`
}
