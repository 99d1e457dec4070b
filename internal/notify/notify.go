// Package notify sends desktop reminders through notify-send.
package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/dori/kanri/internal/model"
)

// Urgency maps to the notify-send urgency levels
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyCritical:
		return "critical"
	default:
		return "normal"
	}
}

const (
	reminderTimeout = 15 * time.Second
	reminderIcon    = "emblem-important-symbolic"
)

// Notification is one desktop popup
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string
}

// args builds the notify-send command line
func (n Notification) args() []string {
	args := []string{"-a", "kanri", "-u", n.Urgency.String()}
	if n.Timeout > 0 {
		args = append(args, "-t", strconv.FormatInt(n.Timeout.Milliseconds(), 10))
	}
	if n.Icon != "" {
		args = append(args, "-i", n.Icon)
	}
	args = append(args, n.Title)
	if n.Body != "" {
		args = append(args, n.Body)
	}
	return args
}

// Notifier sends notifications. It starts disabled when notify-send is not
// installed.
type Notifier struct {
	enabled bool
	run     func(name string, args ...string) error
}

func NewNotifier() *Notifier {
	_, err := exec.LookPath("notify-send")
	return &Notifier{
		enabled: err == nil,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Send shows a notification. A disabled notifier does nothing.
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}
	if err := n.run("notify-send", notification.args()...); err != nil {
		return fmt.Errorf("notify-send: %w", err)
	}
	return nil
}

// SendDueReminder reminds about one card due in dueIn, or overdue when
// dueIn is not positive
func (n *Notifier) SendDueReminder(cardTitle string, dueIn time.Duration) error {
	reminder := Notification{
		Title:   cardTitle,
		Body:    "Card due soon",
		Urgency: UrgencyNormal,
		Timeout: reminderTimeout,
		Icon:    reminderIcon,
	}
	switch {
	case dueIn <= 0:
		reminder.Body = "Card is now overdue!"
		reminder.Urgency = UrgencyCritical
	case dueIn < time.Hour:
		reminder.Body = "Card due in less than an hour"
	}
	return n.Send(reminder)
}

// SendCardReminders sends one summary for the cards that need attention.
// A single card gets its own reminder.
func (n *Notifier) SendCardReminders(cards []model.DueCard, now time.Time) error {
	switch len(cards) {
	case 0:
		return nil
	case 1:
		c := cards[0]
		return n.SendDueReminder(c.ProjectTitle+": "+c.Title, c.DueDate.Sub(now))
	}

	overdue := 0
	for _, c := range cards {
		if c.IsOverdue(now) {
			overdue++
		}
	}
	urgency := UrgencyNormal
	if overdue > 0 {
		urgency = UrgencyCritical
	}
	return n.Send(Notification{
		Title:   fmt.Sprintf("%d cards need attention", len(cards)),
		Body:    fmt.Sprintf("%d overdue, %d due soon", overdue, len(cards)-overdue),
		Urgency: urgency,
		Timeout: reminderTimeout,
		Icon:    reminderIcon,
	})
}
