package gamification

import (
	"testing"

	"github.com/studyloop/backend/internal/models"
)

func TestNotificationQueueFIFO(t *testing.T) {
	var q NotificationQueue

	q.Enqueue(models.Notification{Kind: models.NotificationXPAwarded, XPAmount: 50})
	q.Enqueue(models.Notification{Kind: models.NotificationLevelUp, OldLevel: 1, NewLevel: 2})
	q.Enqueue(models.Notification{Kind: models.NotificationBadgeEarned, BadgeID: "abc"})

	if q.Len() != 3 {
		t.Fatalf("Len = %d, want 3", q.Len())
	}

	wantKinds := []string{
		models.NotificationXPAwarded,
		models.NotificationLevelUp,
		models.NotificationBadgeEarned,
	}
	for i, want := range wantKinds {
		n, ok := q.Dequeue()
		if !ok {
			t.Fatalf("Dequeue %d: queue empty", i)
		}
		if n.Kind != want {
			t.Errorf("Dequeue %d: kind = %q, want %q", i, n.Kind, want)
		}
	}

	if _, ok := q.Dequeue(); ok {
		t.Error("Dequeue on drained queue reported ok")
	}
}

func TestNotificationQueuePeek(t *testing.T) {
	var q NotificationQueue

	if _, ok := q.Peek(); ok {
		t.Error("Peek on empty queue reported ok")
	}

	q.Enqueue(models.Notification{Kind: models.NotificationXPAwarded, XPAmount: 10})

	n, ok := q.Peek()
	if !ok || n.XPAmount != 10 {
		t.Fatalf("Peek = (%+v, %v), want the queued notification", n, ok)
	}
	if q.Len() != 1 {
		t.Errorf("Peek consumed the element, Len = %d", q.Len())
	}
}

func TestNotificationQueueItems(t *testing.T) {
	var q NotificationQueue

	items := q.Items()
	if items == nil {
		t.Fatal("Items on empty queue returned nil, want empty slice")
	}

	q.Enqueue(models.Notification{Kind: models.NotificationXPAwarded, XPAmount: 10})
	items = q.Items()
	if len(items) != 1 {
		t.Fatalf("Items length = %d, want 1", len(items))
	}

	// Items is a copy; mutating it must not touch the queue
	items[0].XPAmount = 999
	n, _ := q.Peek()
	if n.XPAmount != 10 {
		t.Errorf("mutating Items copy changed queued element: %d", n.XPAmount)
	}
}
