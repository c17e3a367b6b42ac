package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/events"
	"github.com/franciscosanchezn/gin-pizza-restaurants/internal/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.InfoLevel)
}

const publishTimeout = 5 * time.Second

// translateError maps storage errors onto the domain sentinels in models.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrUniquenessViolation),
		errors.Is(err, models.ErrReference),
		errors.Is(err, models.ErrNotFound):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", models.ErrUniquenessViolation, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", models.ErrReference, err)
	default:
		return err
	}
}

// ensureUniqueName fails with ErrUniquenessViolation when another row of model already uses name.
func ensureUniqueName(tx *gorm.DB, model interface{}, name string, excludeID uint) error {
	var count int64
	q := tx.Model(model).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: name %q is already taken", models.ErrUniquenessViolation, name)
	}
	return nil
}

// ensureExists fails with ErrReference when no row of model has the given id.
func ensureExists(tx *gorm.DB, model interface{}, id uint, kind string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %s %d does not exist", models.ErrReference, kind, id)
	}
	return nil
}

// publish sends an event after a committed write. Failures are logged only.
func publish(p events.Publisher, event events.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.Publish(ctx, event); err != nil {
		log.WithError(err).WithField("event_type", event.Type).Warn("Failed to publish event")
	}
}

func publisherOrNop(p events.Publisher) events.Publisher {
	if p == nil {
		return events.NopPublisher{}
	}
	return p
}
