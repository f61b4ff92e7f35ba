package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"

	"serenity/config"
	"serenity/models"
)

const TypeAppointmentReminder = "appointment:reminder"

// ReminderPayload is the task body for a scheduled appointment reminder.
type ReminderPayload struct {
	BookingID     string    `json:"bookingId"`
	UserID        string    `json:"userId"`
	ServiceTitle  string    `json:"serviceTitle"`
	AppointmentAt time.Time `json:"appointmentAt"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// ReminderScheduler enqueues appointment reminders, timed a configurable
// lead before the appointment.
type ReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
}

// NewReminderScheduler creates the asynq producer side.
func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{
		client: asynq.NewClient(redisOpts()),
		lead:   time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
	}
}

// Schedule queues one reminder for the booking. Reminders that would
// already be due fire immediately.
func (s *ReminderScheduler) Schedule(ctx context.Context, booking models.Booking) error {
	payload, err := json.Marshal(ReminderPayload{
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		ServiceTitle:  booking.Service.Title,
		AppointmentAt: booking.AppointmentDateTime,
	})
	if err != nil {
		return fmt.Errorf("marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeAppointmentReminder, payload)
	fireAt := booking.AppointmentDateTime.Add(-s.lead)
	if fireAt.Before(time.Now()) {
		_, err = s.client.EnqueueContext(ctx, task)
	} else {
		_, err = s.client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt))
	}
	return err
}

// InitReminderWorker runs the async worker in background, pushing
// reminders over FCM to the user's topic.
func InitReminderWorker(fcm *messaging.Client) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAppointmentReminder, handleReminderTask(fcm))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		if err := srv.Run(mux); err != nil {
			log.Printf("[ReminderWorker] worker stopped: %v", err)
		}
	}()
}

func handleReminderTask(fcm *messaging.Client) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderWorker] invalid payload: %v", err)
			return err
		}

		msg := &messaging.Message{
			Topic: "user." + p.UserID,
			Notification: &messaging.Notification{
				Title: "Upcoming appointment",
				Body: fmt.Sprintf("%s at %s", p.ServiceTitle,
					p.AppointmentAt.Local().Format("3:04 PM, Jan 2")),
			},
			Data: map[string]string{
				"bookingId":     p.BookingID,
				"appointmentAt": p.AppointmentAt.Format(time.RFC3339),
			},
		}

		if _, err := fcm.Send(ctx, msg); err != nil {
			log.Printf("[ReminderWorker] failed to send reminder for booking %s: %v", p.BookingID, err)
			return err
		}
		return nil
	}
}
