package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"eliterentals/internal/util"
	"eliterentals/pkg/domain"
)

// CreateProperty lists a new property as Available.
func (a *App) CreateProperty(p domain.Property) (domain.Property, error) {
	if strings.TrimSpace(p.Title) == "" {
		return domain.Property{}, fmt.Errorf("%w: title required", ErrValidation)
	}
	if strings.TrimSpace(p.ManagerID) == "" {
		return domain.Property{}, fmt.Errorf("%w: managerId required", ErrValidation)
	}
	p.ID = util.NewID()
	p.Status = domain.PropertyAvailable
	if p.ListingDate.IsZero() {
		p.ListingDate = time.Now().UTC()
	}
	if err := a.store.CreateProperty(p); err != nil {
		return domain.Property{}, fmt.Errorf("create property: %w", err)
	}
	return p, nil
}

// GetProperty returns a single property.
func (a *App) GetProperty(id string) (domain.Property, error) {
	p, ok, err := a.store.GetProperty(id)
	if err != nil {
		return domain.Property{}, fmt.Errorf("fetch property: %w", err)
	}
	if !ok {
		return domain.Property{}, ErrNotFound
	}
	return p, nil
}

// ListProperties returns all listings.
func (a *App) ListProperties() ([]domain.Property, error) {
	return a.store.ListProperties()
}

// UpdateProperty replaces the descriptive fields of a listing. The occupancy
// status is owned by the lease workflow and is preserved here.
func (a *App) UpdateProperty(id string, p domain.Property) (domain.Property, error) {
	existing, ok, err := a.store.GetProperty(id)
	if err != nil {
		return domain.Property{}, fmt.Errorf("fetch property: %w", err)
	}
	if !ok {
		return domain.Property{}, ErrNotFound
	}
	p.ID = existing.ID
	p.Status = existing.Status
	p.ListingDate = existing.ListingDate
	if p.ManagerID == "" {
		p.ManagerID = existing.ManagerID
	}
	if err := a.store.UpdateProperty(p); err != nil {
		return domain.Property{}, fmt.Errorf("update property: %w", err)
	}
	return p, nil
}

// SetPropertyStatus flips the occupancy status directly (admin override).
func (a *App) SetPropertyStatus(id string, status domain.PropertyStatus) error {
	if status != domain.PropertyAvailable && status != domain.PropertyOccupied {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	_, ok, err := a.store.GetProperty(id)
	if err != nil {
		return fmt.Errorf("fetch property: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return a.store.SetPropertyStatus(id, status)
}

// DeleteProperty removes a listing and its stored images.
func (a *App) DeleteProperty(ctx context.Context, id string) error {
	_, ok, err := a.store.GetProperty(id)
	if err != nil {
		return fmt.Errorf("fetch property: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	images, err := a.store.ListPropertyImages(id)
	if err != nil {
		return fmt.Errorf("list images: %w", err)
	}
	for _, img := range images {
		if err := a.objects.Delete(ctx, img.StorageKey); err != nil {
			return fmt.Errorf("delete image object: %w", err)
		}
	}
	return a.store.DeleteProperty(id)
}

// AddPropertyImage stores an uploaded image blob and records it.
func (a *App) AddPropertyImage(ctx context.Context, propertyID string, r io.Reader, size int64, contentType string) (domain.PropertyImage, error) {
	_, ok, err := a.store.GetProperty(propertyID)
	if err != nil {
		return domain.PropertyImage{}, fmt.Errorf("fetch property: %w", err)
	}
	if !ok {
		return domain.PropertyImage{}, ErrNotFound
	}
	img := domain.PropertyImage{
		ID:          util.NewID(),
		PropertyID:  propertyID,
		ContentType: contentType,
		CreatedAt:   time.Now().UTC(),
	}
	img.StorageKey = fmt.Sprintf("property-images/%s/%s", propertyID, img.ID)
	if err := a.objects.Put(ctx, img.StorageKey, r, size, contentType); err != nil {
		return domain.PropertyImage{}, fmt.Errorf("store image: %w", err)
	}
	if err := a.store.AddPropertyImage(img); err != nil {
		return domain.PropertyImage{}, fmt.Errorf("record image: %w", err)
	}
	return img, nil
}

// ListPropertyImages returns the image records for a property.
func (a *App) ListPropertyImages(propertyID string) ([]domain.PropertyImage, error) {
	return a.store.ListPropertyImages(propertyID)
}

// OpenPropertyImage streams an image blob. The caller must close the reader.
func (a *App) OpenPropertyImage(ctx context.Context, imageID string) (io.ReadCloser, string, error) {
	img, ok, err := a.store.GetPropertyImage(imageID)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}
	if !ok {
		return nil, "", ErrNotFound
	}
	rc, err := a.objects.Get(ctx, img.StorageKey)
	if err != nil {
		return nil, "", fmt.Errorf("open image object: %w", err)
	}
	return rc, img.ContentType, nil
}
