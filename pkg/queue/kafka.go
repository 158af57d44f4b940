package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type EventType string

// Engagement events published after successful mutations. Publishing is
// best-effort: downstream consumers (analytics, notifications) live outside
// this service.
const (
	EventPostCreated  EventType = "post.created"
	EventPostDeleted  EventType = "post.deleted"
	EventReplyCreated EventType = "reply.created"
	EventReplyDeleted EventType = "reply.deleted"
	EventLikeToggled  EventType = "like.toggled"
	EventUserFollowed EventType = "user.followed"
)

type Event struct {
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

type PostEventData struct {
	PostID int64  `json:"post_id"`
	UserID string `json:"user_id"`
}

type LikeEventData struct {
	UserID  string `json:"user_id"`
	PostID  *int64 `json:"post_id,omitempty"`
	ReplyID *int64 `json:"reply_id,omitempty"`
	Liked   bool   `json:"liked"`
}

type FollowEventData struct {
	UserID     string `json:"user_id"`
	FollowerID string `json:"follower_id"`
	Followed   bool   `json:"followed"`
}

type KafkaProducer struct {
	writer *kafka.Writer
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaProducer{writer: writer}
}

func (p *KafkaProducer) Publish(ctx context.Context, key string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
