package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/LexovateAyacucho/qhoar-web/internal/config"
	"github.com/LexovateAyacucho/qhoar-web/internal/infrastructure/notify"
	"github.com/LexovateAyacucho/qhoar-web/internal/infrastructure/storage"
	"github.com/LexovateAyacucho/qhoar-web/pkg/logger"
)

const (
	storageDriverS3     = "s3"
	storageDriverLocal  = "local"
	storageDriverMemory = "memory"

	mailDriverSES = "ses"
	mailDriverLog = "log"
)

var (
	newS3Store     = storage.NewS3Store
	newSESMailer   = notify.NewSESMailer
	newSNSNotifier = notify.NewSNSNotifier
)

// newObjectStore picks the storage backend named by cfg.Driver
var newObjectStore = func(ctx context.Context, cfg config.StorageConfig) (storage.ObjectStore, error) {
	var store storage.ObjectStore
	switch cfg.Driver {
	case storageDriverS3:
		s3Store, err := newS3Store(ctx, cfg.Region, cfg.Endpoint, cfg.PublicBaseURL)
		if err != nil {
			return nil, err
		}
		store = s3Store
	case storageDriverLocal, "":
		store = storage.NewLocalStore(cfg.LocalDir, cfg.PublicBaseURL)
	case storageDriverMemory:
		store = storage.NewMemoryStore(cfg.PublicBaseURL)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
	logger.Info(ctx, "Object storage ready", zap.String("driver", cfg.Driver))
	return storage.WithTimeout(store, cfg.Timeout), nil
}

var newMailer = func(ctx context.Context, cfg config.MailConfig) (notify.ConfirmationSender, error) {
	switch cfg.Driver {
	case mailDriverSES:
		mailer, err := newSESMailer(ctx, cfg.Region, cfg.FromEmail)
		if err != nil {
			return nil, err
		}
		return notify.MailerWithTimeout(mailer, cfg.Timeout), nil
	case mailDriverLog, "":
		return notify.LogMailer{}, nil
	}
	return nil, fmt.Errorf("unknown mail driver %q", cfg.Driver)
}

// newNotifier publishes to SNS when a topic is configured
var newNotifier = func(ctx context.Context, cfg config.NotifyConfig, timeout time.Duration) (notify.ApprovalPublisher, error) {
	if cfg.ApprovalTopicARN == "" {
		return notify.NoopNotifier{}, nil
	}
	notifier, err := newSNSNotifier(ctx, cfg.Region, cfg.ApprovalTopicARN)
	if err != nil {
		return nil, err
	}
	return notify.NotifierWithTimeout(notifier, timeout), nil
}
