package service

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-desk/internal/repository"
	apperrors "github.com/spec-kit/complaint-desk/pkg/util/errorutil"
)

// translate maps repository errors onto the domain taxonomy.
func translate(err error, resource string, details map[string]any) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.NewNotFound(resource, details)
	case errors.Is(err, repository.ErrVersionConflict):
		d := map[string]any{"reason": "VERSION_CONFLICT"}
		for k, v := range details {
			d[k] = v
		}
		return apperrors.NewConflict(resource+" was modified concurrently", d)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict(resource+" already exists", details)
	case errors.Is(err, repository.ErrReferenced):
		return apperrors.NewConflict(resource+" is still referenced", details)
	}
	return apperrors.MapError(err)
}
