package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/models"
)

// Event is a domain event emitted after a successful mutation: one
// notification row per recipient plus a redis publish for live consumers.
// Delivery channels (email/SMS/push) subscribe downstream; the emitter
// never waits on them.
type Event struct {
	UserIDs []uint
	Type    string
	Title   string
	Content string

	RelatedObjectID   *uint
	RelatedObjectType string
}

type Dispatcher struct {
	db    *gorm.DB
	redis *redis.Client
	queue chan Event
}

func NewDispatcher(db *gorm.DB, redisClient *redis.Client) *Dispatcher {
	d := &Dispatcher{
		db:    db,
		redis: redisClient,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.deliver(ev); err != nil {
			log.Println("notify error:", err)
		}
	}
}

func (d *Dispatcher) deliver(ev Event) error {
	for _, userID := range ev.UserIDs {
		n := models.Notification{
			UserID:            userID,
			Type:              ev.Type,
			Title:             ev.Title,
			Content:           ev.Content,
			RelatedObjectID:   ev.RelatedObjectID,
			RelatedObjectType: ev.RelatedObjectType,
		}

		if err := d.db.Create(&n).Error; err != nil {
			return err
		}

		if d.redis != nil {
			if payload, err := json.Marshal(n); err == nil {
				channel := fmt.Sprintf("notifications:%d", userID)
				d.redis.Publish(context.Background(), channel, payload)
			}
		}
	}
	return nil
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// same policy as the audit queue: never block a request on fan-out
		log.Println("notify queue full, dropping event")
	}
}
