package model

import "time"

// Category is the business category assigned to a fetched message.
type Category string

const (
	CategoryBilling      Category = "Billing / Payment"
	CategoryOrder        Category = "Order / Purchase"
	CategorySupport      Category = "Support Request"
	CategoryLead         Category = "Client Lead"
	CategoryOther        Category = "Other"
	CategoryUnclassified Category = "Unclassified"
)

// Categories lists the closed category set in display order.
// CategoryUnclassified is the pre-classification placeholder and is
// deliberately not part of this list.
var Categories = []Category{
	CategoryBilling,
	CategoryOrder,
	CategorySupport,
	CategoryLead,
	CategoryOther,
}

// Message is one fetched mail item, held in memory for the current
// session only. A new fetch replaces the whole message set.
type Message struct {
	// ID is the server-assigned identifier (IMAP UID), formatted as a
	// decimal string. Stable across repeated fetches within a session.
	ID string

	// Subject, Sender and Date are decoded display strings; any of
	// them may be empty.
	Subject string
	Sender  string
	Date    string

	// Body is the best-effort plaintext content, or "" when the
	// message has no text/plain part.
	Body string

	// Category starts as CategoryUnclassified until the classifier
	// runs. Urgent is never true while the message is unclassified.
	Category Category
	Urgent   bool

	// Attachments holds the saved file paths, in part order.
	Attachments []string

	// Replied is set exactly once a reply has been sent successfully.
	Replied bool
}

// LogMode tags how a reply was triggered.
type LogMode string

const (
	LogModeManual LogMode = "manual"
	LogModeAuto   LogMode = "auto"
)

// LogRecord is one persisted row of the reply log.
type LogRecord struct {
	Timestamp   time.Time
	From        string
	Subject     string
	Category    Category
	Urgent      bool
	Attachments int
	Mode        LogMode
}

// LogTimeFormat is the timestamp layout used in the reply log.
const LogTimeFormat = "2006-01-02 15:04:05"
