package gamification

import "github.com/studyloop/backend/internal/models"

// NotificationQueue holds the celebratory notifications produced by one
// trigger, in FIFO order. Each trigger owns its own queue; the
// presentation layer drains it one entry at a time so an XP toast, a
// level-up modal, and badge unlocks never overlap.
type NotificationQueue struct {
	items []models.Notification
}

func (q *NotificationQueue) Enqueue(n models.Notification) {
	q.items = append(q.items, n)
}

// Dequeue removes and returns the oldest notification. The second
// return value is false when the queue is empty.
func (q *NotificationQueue) Dequeue() (models.Notification, bool) {
	if len(q.items) == 0 {
		return models.Notification{}, false
	}
	n := q.items[0]
	q.items = q.items[1:]
	return n, true
}

// Peek returns the oldest notification without removing it.
func (q *NotificationQueue) Peek() (models.Notification, bool) {
	if len(q.items) == 0 {
		return models.Notification{}, false
	}
	return q.items[0], true
}

func (q *NotificationQueue) Len() int {
	return len(q.items)
}

// Items returns the queued notifications in FIFO order for
// serialization. Never nil.
func (q *NotificationQueue) Items() []models.Notification {
	out := make([]models.Notification, len(q.items))
	copy(out, q.items)
	return out
}
