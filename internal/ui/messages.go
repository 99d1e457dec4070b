package ui

// Messages for inter-component communication

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// RemindersSentMsg reports the startup due-date reminder
type RemindersSentMsg struct {
	Count int
	Err   error
}
