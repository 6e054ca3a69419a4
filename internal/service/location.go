package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/smirnov-dev/presence_sync/internal/models"
	"github.com/smirnov-dev/presence_sync/pkg/geo"
)

// checkGeofenceGap проверяет, что центр не ближе минимального зазора к
// центру любой другой локации или события. Проверка только на момент
// создания/обновления, задним числом существующие зоны не чинятся.
func (s *boardService) checkGeofenceGap(lat, lon float64, excludeLocationID int64) error {
	for _, other := range s.locations.List() {
		if other.ID == excludeLocationID {
			continue
		}
		if geo.Distance(lat, lon, other.Latitude, other.Longitude) < s.cfg.MinGeofenceGap {
			return fmt.Errorf("service: location %q is too close: %w", other.Name, ErrGeofenceOverlap)
		}
	}
	for _, e := range s.events.List() {
		if geo.Distance(lat, lon, e.Latitude, e.Longitude) < s.cfg.MinGeofenceGap {
			return fmt.Errorf("service: event %q is too close: %w", e.Name, ErrGeofenceOverlap)
		}
	}
	return nil
}

// CreateLocation проверяет инварианты и создает локацию
func (s *boardService) CreateLocation(ctx context.Context, l models.Location) (models.Location, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "location",
		"method":  "CreateLocation",
		"name":    l.Name,
	})
	log.Info("Attempting to create a new location")

	if s.locations.NameExists(l.Name, 0) {
		log.Warn("Location name already in use")
		return models.Location{}, fmt.Errorf("service: location %q: %w", l.Name, ErrDuplicateName)
	}
	if err := s.checkGeofenceGap(l.Latitude, l.Longitude, 0); err != nil {
		log.Warn("Location geofence overlaps an existing one")
		return models.Location{}, err
	}

	if l.Status == "" {
		l.Status = models.LocationStatusActive
	}
	created := s.locations.Create(ctx, l)
	log.WithField("location_id", created.ID).Info("Location created successfully")
	return created, nil
}

// UpdateLocation накладывает разреженный патч на локацию
func (s *boardService) UpdateLocation(ctx context.Context, id int64, p models.LocationPatch) (models.Location, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "location",
		"method":      "UpdateLocation",
		"location_id": id,
	})
	log.Info("Attempting to update location")

	existing, ok := s.locations.Get(id)
	if !ok {
		log.Warn("Attempted to update a non-existent location")
		return models.Location{}, fmt.Errorf("service: location %d not found for update: %w", id, ErrNotFound)
	}
	if p.Name != nil && s.locations.NameExists(*p.Name, id) {
		log.Warn("Location name already in use")
		return models.Location{}, fmt.Errorf("service: location %q: %w", *p.Name, ErrDuplicateName)
	}
	if p.Latitude != nil || p.Longitude != nil {
		merged := p.Apply(existing)
		if err := s.checkGeofenceGap(merged.Latitude, merged.Longitude, id); err != nil {
			log.Warn("Location geofence overlaps an existing one")
			return models.Location{}, err
		}
	}

	updated, ok := s.locations.Update(ctx, id, p)
	if !ok {
		return models.Location{}, fmt.Errorf("service: location %d not found for update: %w", id, ErrNotFound)
	}
	log.Info("Location updated successfully")
	return updated, nil
}

// DeleteLocation удаляет локацию
func (s *boardService) DeleteLocation(ctx context.Context, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "location",
		"method":      "DeleteLocation",
		"location_id": id,
	})
	if !s.locations.Delete(ctx, id) {
		log.Warn("Attempted to delete a non-existent location")
		return fmt.Errorf("service: location %d not found for delete: %w", id, ErrNotFound)
	}
	log.Info("Location deleted successfully")
	return nil
}

// DeleteLocations удаляет набор локаций
func (s *boardService) DeleteLocations(ctx context.Context, ids []int64) ([]int64, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "location",
		"method":  "DeleteLocations",
		"count":   len(ids),
	})
	deleted := s.locations.DeleteMany(ctx, ids)
	if len(deleted) == 0 {
		log.Warn("No locations matched bulk delete")
		return nil, fmt.Errorf("service: no locations found for delete: %w", ErrNotFound)
	}
	log.WithField("deleted", len(deleted)).Info("Locations deleted successfully")
	return deleted, nil
}

// GetLocation возвращает локацию по идентификатору
func (s *boardService) GetLocation(_ context.Context, id int64) (models.Location, error) {
	l, ok := s.locations.Get(id)
	if !ok {
		return models.Location{}, fmt.Errorf("service: location %d: %w", id, ErrNotFound)
	}
	return l, nil
}

// ListLocations возвращает все локации
func (s *boardService) ListLocations(_ context.Context) ([]models.Location, error) {
	return s.locations.List(), nil
}
