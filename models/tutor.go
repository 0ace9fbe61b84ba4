package models

type TutorRequest struct {
	SessionID string `json:"session_id"`
	Subject   string `json:"subject"`
	Model     string `json:"model,omitempty"`
	Message   string `json:"message"`
}

type TutorResponse struct {
	Reply    string           `json:"reply"`
	Phase    string           `json:"phase"`
	FollowUp bool             `json:"follow_up"`
	Options  []FollowUpOption `json:"options"`
	Insights *ContextInsights `json:"insights,omitempty"`
}

type CleanupRequest struct {
	DaysToKeep int `json:"days_to_keep"`
}

type CleanupResponse struct {
	RemovedEntries  int `json:"removed_entries"`
	RemovedSessions int `json:"removed_sessions"`
}
