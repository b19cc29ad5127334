package dto

// CreateMesscutRequest is the payload for filing a new messcut request.
type CreateMesscutRequest struct {
	AdmissionNo FlexString `json:"admissionNo"`
	Name        string     `json:"name"`
	LeavingDate string     `json:"leavingDate"`
	JoiningDate string     `json:"joiningDate"`
}

// UpdateMesscutStatusRequest transitions a request to ACCEPT or REJECT.
type UpdateMesscutStatusRequest struct {
	Status string `json:"status"`
}

// MesscutSummary is one per-student group of the messcut report.
type MesscutSummary struct {
	Name            string `json:"name"`
	AdmissionNumber string `json:"admissionNumber"`
	Branch          string `json:"branch"`
	Sem             string `json:"sem"`
	Count           int    `json:"count"`
	LastDate        string `json:"lastDate"`
}
