// internal/workers/submission/send-notification/models.go
package sendnotification

type Input struct {
	NotificationType string                 `json:"notificationType"`
	ContactEmail     string                 `json:"contactEmail"`
	ContactPhone     string                 `json:"contactPhone"`
	ApplicationID    string                 `json:"applicationId"`
	Metadata         map[string]interface{} `json:"metadata"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"`
	Channels       []string `json:"channels"`
	SentAt         string   `json:"sentAt"`
}

const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
	StatusSkipped  = "skipped"
)

type template struct {
	Subject string
	Body    string
	SMS     string
}

// templates keys every notification the submission flow can emit. Bodies use
// {{applicationId}} and metadata placeholders.
var templates = map[string]template{
	"application_submitted": {
		Subject: "Your funding application was received",
		Body:    "Thanks for applying. Your application {{applicationId}} is in review. We will reach out with next steps and the document checklist.",
		SMS:     "Boreal Financial: application {{applicationId}} received. Watch your email for the document checklist.",
	},
	"application_duplicate": {
		Subject: "We already have your application",
		Body:    "We found an application on file for these contact details ({{applicationId}}). No new application was created; reply to this email to amend it.",
		SMS:     "Boreal Financial: your earlier application {{applicationId}} is still active.",
	},
	"documents_reminder": {
		Subject: "Documents needed to continue your application",
		Body:    "Application {{applicationId}} is waiting on required documents. Upload them from your secure link to keep things moving.",
		SMS:     "Boreal Financial: application {{applicationId}} needs documents to proceed.",
	},
}
