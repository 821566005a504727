package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"resource-hub-backend/internal/model"
)

// Sender defines the interface for sending a web push notification.
type Sender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the real Sender backed by the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Decision describes a decided environment request to notify about.
type Decision struct {
	RequestID       string
	UserID          int64
	EnvironmentName string
	Status          model.RequestStatus
}

// WorkerPool fans decided requests out to the requester's push
// subscriptions. Deliveries are fire-and-forget: a push failure never
// affects the request transition that triggered it.
type WorkerPool struct {
	size    int
	jobs    chan Decision
	db      *gorm.DB
	webpush *webpush.Options
	sender  Sender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Decision, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Notification worker %d started", id)
	for {
		select {
		case d := <-wp.jobs:
			wp.notifyDecision(ctx, d)
		case <-ctx.Done():
			log.Printf("Notification worker %d shutting down", id)
			return
		}
	}
}

// Dispatch sends a decision to the worker pool.
func (wp *WorkerPool) Dispatch(d Decision) {
	wp.jobs <- d
}

// notifyDecision fetches the requester's subscriptions and pushes the
// outcome to each of them.
func (wp *WorkerPool) notifyDecision(ctx context.Context, d Decision) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Where("actor_id = ?", d.UserID).
		Find(&subscriptions).Error
	if err != nil {
		log.Printf("Error fetching subscriptions for actor %d: %v", d.UserID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	message := fmt.Sprintf("Your request for %s was %s.", d.EnvironmentName, d.Status)
	log.Printf("Sending %d notifications for request %s", len(subscriptions), d.RequestID)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, []byte(message))
	}
}

// sendNotification sends a single web push notification and prunes the
// subscription when the push service reports it gone.
func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.db.WithContext(ctx).Delete(&sub).Error; err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
