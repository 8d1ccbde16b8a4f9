package notify

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"program_reminder_bot/internal/domain/reminder"
	domainTelegram "program_reminder_bot/internal/domain/telegram"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// TelegramCapability implements the notification capability over a Telegram
// chat: each recurring alert is a weekly cron entry that sends the payload to
// the subscriber chat. Permission maps onto chat reachability, which is the
// Telegram analogue of the user's notification opt-in: the chat is reachable
// only while the user has started the bot and not blocked it.
type TelegramCapability struct {
	client domainTelegram.Client
	chatID int64
	logger *logrus.Entry

	cronEngine *cron.Cron
	mu         sync.Mutex
	entries    map[string]cron.EntryID
}

func NewTelegramCapability(client domainTelegram.Client, chatID int64, logger *logrus.Entry) *TelegramCapability {
	return &TelegramCapability{
		client:     client,
		chatID:     chatID,
		logger:     logger,
		cronEngine: cron.New(cron.WithLocation(time.Local)), // Alerts fire in the server's local time
		entries:    make(map[string]cron.EntryID),
	}
}

// Start begins firing scheduled alerts.
func (c *TelegramCapability) Start() {
	c.cronEngine.Start()
}

// Stop halts the cron engine and waits for a running alert delivery to finish.
func (c *TelegramCapability) Stop() {
	ctx := c.cronEngine.Stop()
	<-ctx.Done()
}

// PermissionStatus probes the chat. Reachable means granted; unreachable
// reads as unknown so the gate proceeds to an explicit request.
func (c *TelegramCapability) PermissionStatus(_ context.Context) (reminder.PermissionState, error) {
	if err := c.client.ChatReachable(c.chatID); err != nil {
		c.logger.WithError(err).Debug("Subscriber chat not reachable on status probe.")
		return reminder.PermissionUnknown, nil
	}
	return reminder.PermissionGranted, nil
}

// RequestPermission re-probes the chat and treats a still-unreachable chat as
// a denial: the user has not started the bot, or has blocked it.
func (c *TelegramCapability) RequestPermission(_ context.Context) (reminder.PermissionState, error) {
	if err := c.client.ChatReachable(c.chatID); err != nil {
		c.logger.WithError(err).WithField("chat_id", c.chatID).Info("Permission request denied: subscriber chat unreachable.")
		return reminder.PermissionDenied, nil
	}
	return reminder.PermissionGranted, nil
}

// ScheduleWeekly registers one recurring alert. Scheduling an id that already
// exists replaces its entry.
func (c *TelegramCapability) ScheduleWeekly(_ context.Context, id string, weekday, hour, minute int, payload reminder.Payload) error {
	if weekday < 1 || weekday > 7 {
		return fmt.Errorf("weekday %d outside 1..7", weekday)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid alert time %02d:%02d", hour, minute)
	}

	spec := weeklySpec(weekday, hour, minute)
	c.mu.Lock()
	defer c.mu.Unlock()

	entryID, err := c.cronEngine.AddFunc(spec, func() {
		c.deliver(payload)
	})
	if err != nil {
		return fmt.Errorf("could not add weekly cron entry %q: %w", spec, err)
	}

	if old, exists := c.entries[id]; exists {
		c.cronEngine.Remove(old)
	}
	c.entries[id] = entryID
	c.logger.WithFields(logrus.Fields{
		"alert_id":  id,
		"cron_spec": spec,
	}).Info("Weekly alert scheduled.")
	return nil
}

// Cancel removes a scheduled alert. Unknown ids are ignored.
func (c *TelegramCapability) Cancel(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entryID, exists := c.entries[id]
	if !exists {
		return nil
	}
	c.cronEngine.Remove(entryID)
	delete(c.entries, id)
	c.logger.WithField("alert_id", id).Info("Weekly alert cancelled.")
	return nil
}

// ListScheduled returns every registered alert id, sorted for determinism.
func (c *TelegramCapability) ListScheduled(_ context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]string, 0, len(c.entries))
	for id := range c.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (c *TelegramCapability) deliver(payload reminder.Payload) {
	text := fmt.Sprintf("⏰ %s", payload.Body)
	if err := c.client.SendMessage(c.chatID, text, nil); err != nil {
		c.logger.WithError(err).WithField("program_id", payload.ProgramID).Error("Failed to deliver reminder alert.")
		return
	}
	c.logger.WithField("program_id", payload.ProgramID).Info("Reminder alert delivered.")
}

// weeklySpec builds a five-field cron spec firing once a week. The capability
// weekday convention is 1..7 with Sunday=1; cron wants 0..6 with Sunday=0.
func weeklySpec(weekday, hour, minute int) string {
	return fmt.Sprintf("%d %d * * %d", minute, hour, weekday-1)
}
