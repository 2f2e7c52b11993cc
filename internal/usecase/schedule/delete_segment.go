package schedule

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/booking-api/internal/audit"
	domainerr "github.com/BruksfildServices01/booking-api/internal/domain"
	domain "github.com/BruksfildServices01/booking-api/internal/domain/schedule"
	"github.com/BruksfildServices01/booking-api/internal/httperr"
	"github.com/BruksfildServices01/booking-api/internal/models"
)

type DeleteSegmentInput struct {
	SegmentID uint
	ActorID   *uint
}

type DeleteSegment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteSegment(repo domain.Repository, audit *audit.Dispatcher) *DeleteSegment {
	return &DeleteSegment{repo: repo, audit: audit}
}

func (uc *DeleteSegment) Execute(ctx context.Context, in DeleteSegmentInput) error {
	seg, err := uc.repo.DeleteSegment(ctx, in.SegmentID)
	if err != nil {
		if errors.Is(err, domainerr.ErrNotFound) {
			return httperr.NotFoundErr("available_hour_not_found", "Available hour not found.")
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ActorID,
		Action:   "segment_deleted",
		Entity:   "available_hour",
		EntityID: &in.SegmentID,
		Metadata: map[string]any{
			"service_id": seg.ServiceID,
			"date":       seg.Date.Format(models.DateLayout),
			"start_time": seg.StartTime.String(),
		},
	})
	return nil
}
