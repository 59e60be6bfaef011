package commands

import (
	"context"
	"io"

	"slotbook/internal/domain/notification"
)

// Upload is a file received from a client, already checked for size and type by the handler.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// FileStore persists uploaded files and returns a reference clients can fetch.
type FileStore interface {
	Save(ctx context.Context, folder string, file Upload) (string, error)
}

// NotificationSender renders and delivers one outbox job.
type NotificationSender interface {
	Send(ctx context.Context, job *notification.Job) error
}
