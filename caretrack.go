// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package caretrack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/caretrack/config"
	"github.com/poiesic/caretrack/contacts"
	"github.com/poiesic/caretrack/core"
	"github.com/poiesic/caretrack/media"
	"github.com/poiesic/caretrack/notify"
	"github.com/poiesic/caretrack/storage"
	"github.com/poiesic/caretrack/storage/badger"
	"github.com/poiesic/caretrack/storage/redis"
)

// Journal ties a store, the contact repository, notifications and media
// intake together.
type Journal struct {
	store  storage.KeyValueStore
	repo   *contacts.Repository
	center *notify.Center
	intake *media.Intake
	logger *slog.Logger
}

// Option configures a Journal.
type Option func(*journalOptions)

type journalOptions struct {
	logger     *slog.Logger
	notifyHook func(notify.Notification)
	store      storage.KeyValueStore
	clock      func() time.Time
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *journalOptions) {
		o.logger = logger
	}
}

// WithNotifyHook registers a function called for every notification,
// e.g. to print it.
func WithNotifyHook(fn func(notify.Notification)) Option {
	return func(o *journalOptions) {
		o.notifyHook = fn
	}
}

// WithStore uses the given store instead of the one described by the
// configuration. The journal takes ownership and closes it.
func WithStore(store storage.KeyValueStore) Option {
	return func(o *journalOptions) {
		o.store = store
	}
}

// WithClock sets the time source used to stamp messages.
func WithClock(clock func() time.Time) Option {
	return func(o *journalOptions) {
		o.clock = clock
	}
}

// Open builds the configured store, brings its schema up to date and
// loads the repository.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Journal, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	options := &journalOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	store := options.store
	if store == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		var err error
		store, err = openStore(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	if _, err := storage.Migrate(ctx, store, options.logger); err != nil {
		store.Close()
		return nil, err
	}

	centerOpts := []notify.Option{notify.WithLogger(options.logger)}
	if cfg.NotifyTTL > 0 {
		centerOpts = append(centerOpts, notify.WithTTL(cfg.NotifyTTL))
	}
	if options.notifyHook != nil {
		centerOpts = append(centerOpts, notify.WithHook(options.notifyHook))
	}
	center := notify.NewCenter(centerOpts...)

	repoOpts := []contacts.Option{
		contacts.WithLogger(options.logger),
		contacts.WithNotifier(center),
	}
	if options.clock != nil {
		repoOpts = append(repoOpts, contacts.WithClock(options.clock))
	}
	repo, err := contacts.Open(ctx, store, repoOpts...)
	if err != nil {
		store.Close()
		return nil, err
	}

	intake, err := media.NewIntake(
		media.WithPoolSize(cfg.Media.PoolSize),
		media.WithMaxSize(cfg.Media.MaxSize),
		media.WithLogger(options.logger),
	)
	if err != nil {
		repo.Close()
		store.Close()
		return nil, err
	}

	return &Journal{
		store:  store,
		repo:   repo,
		center: center,
		intake: intake,
		logger: options.logger,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.KeyValueStore, error) {
	switch cfg.Backend {
	case config.BackendBadger:
		return badger.OpenBackend(cfg.Badger.Dir, cfg.Badger.InMemory)
	case config.BackendRedis:
		return redis.Open(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.Backend)
}

// Close waits for pending media, then closes the repository and the store.
func (j *Journal) Close() error {
	j.intake.Release()
	j.repo.Close()
	j.center.Clear()

	if err := j.store.Close(); err != nil {
		j.logger.Error("error closing store", "err", err)
		return err
	}
	return nil
}

// Contacts returns the contact repository.
func (j *Journal) Contacts() *contacts.Repository {
	return j.repo
}

// Notifications returns the notification center.
func (j *Journal) Notifications() *notify.Center {
	return j.center
}

// Intake returns the media intake.
func (j *Journal) Intake() *media.Intake {
	return j.intake
}

// SendMediaFile reads a file and records it as a media message for the
// contact. An empty kind is inferred from the file and an empty activity
// means general. It returns once the
// message has been recorded or the file rejected. If ctx ends first the
// read still completes in the background and its message is still
// recorded.
func (j *Journal) SendMediaFile(ctx context.Context, contactID, path string, kind core.MediaKind, activity core.ActivityType) (core.Message, error) {
	if kind != "" {
		if err := core.ValidateMediaKind(kind); err != nil {
			return core.Message{}, err
		}
	}
	if activity == "" {
		activity = core.ActivityGeneral
	}
	if err := core.ValidateActivityType(activity); err != nil {
		return core.Message{}, err
	}

	type outcome struct {
		msg core.Message
		err error
	}
	done := make(chan outcome, 1)

	err := j.intake.Submit(path, kind, func(result media.Result, err error) {
		if err != nil {
			done <- outcome{err: err}
			return
		}
		msg := j.repo.AddMediaAttachment(contactID, result.Kind, result.DataURI, result.Name, activity)
		done <- outcome{msg: msg}
	})
	if err != nil {
		return core.Message{}, err
	}

	select {
	case out := <-done:
		return out.msg, out.err
	case <-ctx.Done():
		return core.Message{}, errors.Join(ctx.Err(), fmt.Errorf("media %s still pending", path))
	}
}

// SetAvatarFile reads an image file and stores it as the contact's avatar.
func (j *Journal) SetAvatarFile(contactID, path string) (bool, error) {
	result, err := j.intake.Encode(path, core.MediaImage)
	if err != nil {
		return false, err
	}
	return j.repo.UpdateAvatar(contactID, result.DataURI), nil
}
