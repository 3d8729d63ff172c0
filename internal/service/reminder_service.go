package service

import (
	"context"
	"fmt"
	"time"

	"antigravity-pm/internal/logging"
	"antigravity-pm/internal/model"
	"antigravity-pm/internal/repository"
)

// EmailSender delivers a single HTML email.
type EmailSender interface {
	Send(to, subject, htmlBody string) error
}

// ReminderService runs the periodic deadline and calendar sweeps. Each pass
// isolates per-record failures: one bad task or event is logged and skipped,
// never aborting the rest of the sweep.
type ReminderService struct {
	taskRepo     *repository.TaskRepository
	calendarRepo *repository.CalendarRepository
	userRepo     *repository.UserRepository
	notifier     *NotifierService
	mailer       EmailSender
	baseURL      string
}

func NewReminderService(
	taskRepo *repository.TaskRepository,
	calendarRepo *repository.CalendarRepository,
	userRepo *repository.UserRepository,
	notifier *NotifierService,
	mailer EmailSender,
	baseURL string,
) *ReminderService {
	return &ReminderService{
		taskRepo:     taskRepo,
		calendarRepo: calendarRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		mailer:       mailer,
		baseURL:      baseURL,
	}
}

// RunDeadlinePass scans open tasks with a deadline and fires the approaching
// notification or the overdue email, each at most once per task.
func (s *ReminderService) RunDeadlinePass(ctx context.Context, now time.Time) {
	tasks, err := s.taskRepo.ListOpenWithDeadline(ctx)
	if err != nil {
		logging.Logger.Errorf("deadline pass: fetch tasks: %v", err)
		return
	}

	for i := range tasks {
		if err := s.checkTaskDeadline(ctx, &tasks[i], now); err != nil {
			logging.Logger.Errorf("deadline pass: task %s: %v", tasks[i].ID, err)
		}
	}
}

func (s *ReminderService) checkTaskDeadline(ctx context.Context, task *model.Task, now time.Time) error {
	if task.Deadline == nil {
		return nil
	}

	deadline, err := parseTimestamp(*task.Deadline)
	if err != nil {
		return fmt.Errorf("parse deadline %q: %w", *task.Deadline, err)
	}
	hoursRemaining := deadline.Sub(now).Hours()

	// Exactly zero hours remaining matches neither rule; the overdue branch
	// picks such a task up one pass later.
	switch {
	case hoursRemaining > 0 && hoursRemaining <= 12 && !task.ReminderSent:
		if task.AssignedTo == nil {
			return nil
		}
		s.notifier.Notify(ctx, []string{*task.AssignedTo},
			"Deadline Approaching",
			fmt.Sprintf("Task '%s' is due in less than 12 hours.", task.Title),
			projectLink(task.ProjectID))
		if err := s.taskRepo.MarkReminderSent(ctx, task.ID); err != nil {
			return err
		}
		task.ReminderSent = true
		logging.Logger.Infof("sent 12h warning for task %s", task.ID)

	case hoursRemaining < 0 && !task.OverdueNotified:
		if task.AssignedTo == nil {
			return nil
		}
		assignee, err := s.userRepo.FindByID(ctx, *task.AssignedTo)
		if err != nil {
			return fmt.Errorf("find assignee: %w", err)
		}
		if assignee.Email == "" {
			return nil
		}

		subject := fmt.Sprintf("OVERDUE: Task '%s' Deadline Crossed", task.Title)
		body := s.overdueEmailBody(assignee.FullName, task.Title, *task.Deadline, task.ProjectID)

		// The flag is only set after a successful send, so a failed delivery
		// is retried on the next pass.
		if err := s.mailer.Send(assignee.Email, subject, body); err != nil {
			return err
		}
		if err := s.taskRepo.MarkOverdueNotified(ctx, task.ID); err != nil {
			return err
		}
		task.OverdueNotified = true
		logging.Logger.Infof("sent overdue email for task %s", task.ID)
	}

	return nil
}

func (s *ReminderService) overdueEmailBody(fullName, title, deadline string, projectID *string) string {
	return fmt.Sprintf(`<h3>Task Overdue Alert</h3>
<p>Hello %s,</p>
<p>The deadline for the task <strong>%s</strong> has passed.</p>
<p><strong>Deadline:</strong> %s</p>
<p>Please update the status or contact your manager.</p>
<br>
<a href="%s%s">View Task</a>`, fullName, title, deadline, s.baseURL, projectLink(projectID))
}

// RunCalendarPass scans events starting within the next 48 hours and fires
// pending reminders whose window is open.
func (s *ReminderService) RunCalendarPass(ctx context.Context, now time.Time) {
	events, err := s.calendarRepo.ListStartingBetween(ctx, now, now.Add(48*time.Hour))
	if err != nil {
		logging.Logger.Errorf("calendar pass: fetch events: %v", err)
		return
	}

	for i := range events {
		if err := s.checkEventReminders(ctx, &events[i], now); err != nil {
			logging.Logger.Errorf("calendar pass: event %s: %v", events[i].ID, err)
		}
	}
}

func (s *ReminderService) checkEventReminders(ctx context.Context, event *model.CalendarEvent, now time.Time) error {
	if len(event.Reminders) == 0 {
		return nil
	}

	start, err := parseTimestamp(event.StartTime)
	if err != nil {
		return fmt.Errorf("parse start_time %q: %w", event.StartTime, err)
	}
	hoursLeft := start.Sub(now).Hours()

	// At most one kind fires per event per pass. The windows are disjoint
	// (0-3h vs 20-28h), so a well-formed event never has both open at once.
	var fired, message string
	switch {
	case event.HasReminder(model.ReminderSameDay) && hoursLeft > 0 && hoursLeft <= 3:
		fired = model.ReminderSameDay
		message = fmt.Sprintf("Event '%s' starts in %d hours.", event.Title, int(hoursLeft))
	case event.HasReminder(model.ReminderOneDayBefore) && hoursLeft > 20 && hoursLeft <= 28:
		fired = model.ReminderOneDayBefore
		message = fmt.Sprintf("Event '%s' is tomorrow.", event.Title)
	default:
		return nil
	}

	audience := s.resolveEventAudience(ctx, event.UserID)
	s.notifier.Notify(ctx, audience, "Reminder: "+event.Title, message, "/calendar")
	logging.Logger.Infof("sent %s reminder for event %s to %d users", fired, event.ID, len(audience))

	event.RemoveReminder(fired)
	return s.calendarRepo.SaveReminders(ctx, event)
}

// resolveEventAudience looks up the creator's role and expands the audience.
// Any failure falls back to notifying only the creator, so a role-lookup
// problem never drops a reminder entirely.
func (s *ReminderService) resolveEventAudience(ctx context.Context, creatorID string) []string {
	creator, err := s.userRepo.FindByID(ctx, creatorID)
	if err != nil {
		logging.Logger.Warnf("audience: find creator %s: %v", creatorID, err)
		return []string{creatorID}
	}

	audience, err := s.notifier.ResolveAudience(ctx, creator.ID, creator.Role)
	if err != nil {
		logging.Logger.Warnf("audience: resolve for %s: %v", creatorID, err)
		return []string{creatorID}
	}
	return audience
}

func projectLink(projectID *string) string {
	if projectID == nil {
		return ""
	}
	return "/projects/" + *projectID
}

// parseTimestamp reads the ISO-8601 strings the store delivers. Values
// without zone information are taken as UTC, which is how deadlines and
// start times are stored throughout the system.
func parseTimestamp(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp format")
}
