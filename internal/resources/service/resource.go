// Package service exposes the resource catalog to the booking flow. The
// catalog is read-only here: resources are created and deactivated by the
// migration tool, not through the API.
package service

import (
	"context"
	"errors"

	resourceserrors "resbook/internal/resources/errors"
	"resbook/internal/resources/repository"
	"resbook/pkg/config"
	apperrors "resbook/pkg/errors"
	"resbook/pkg/model"
)

type ResourceService interface {
	GetActiveResource(ctx context.Context, resourceID string) (*model.Resource, error)
}

type resourceService struct {
	cfg  *config.Config
	repo repository.ResourceRepository
}

func NewResourceService(cfg *config.Config, repo repository.ResourceRepository) ResourceService {
	return &resourceService{cfg: cfg, repo: repo}
}

// GetActiveResource returns the resource when it exists and is active.
// Unknown and deactivated ids both map to NotFound so the booking API
// does not leak which resources exist.
func (s *resourceService) GetActiveResource(ctx context.Context, resourceID string) (*model.Resource, error) {
	resource, err := s.repo.FindActiveByID(ctx, resourceID)
	if err != nil {
		switch {
		case errors.Is(err, resourceserrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid resource id")
		case errors.Is(err, resourceserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Resource", resourceID)
		default:
			return nil, apperrors.Internal("Failed to load resource", err)
		}
	}
	return resource, nil
}
