package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	charmLog "github.com/charmbracelet/log"

	"github.com/pace-rs/pace/internal/domain"
)

// IDGenerator returns unique identifiers for new entities.
type IDGenerator func() domain.Guid

// Clock returns the current time.
type Clock func() time.Time

// Service is the activity lifecycle engine. It loads state through the
// repository, validates the transition, computes derived fields and writes
// the result back; the repository guarantees each transition commits
// atomically.
type Service struct {
	repo   Repository
	idGen  IDGenerator
	clock  Clock
	logger *charmLog.Logger
}

// NewService constructs a lifecycle service. Nil idGen, clock and logger fall
// back to domain.NewGuid, time.Now and the default logger.
func NewService(repo Repository, idGen IDGenerator, clock Clock, logger *charmLog.Logger) *Service {
	if idGen == nil {
		idGen = domain.NewGuid
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = charmLog.Default()
	}
	return &Service{
		repo:   repo,
		idGen:  idGen,
		clock:  clock,
		logger: logger,
	}
}

// now returns the clock reading as a PaceDateTime in the local zone.
func (s *Service) now() domain.PaceDateTime {
	return domain.NewPaceDateTime(s.clock())
}

// Begin starts tracking a new activity. When another activity is active or
// held the call fails with ErrActivityAlreadyActive unless opts.Force is set,
// in which case the prior activity is ended at the new begin time. The
// implicit end is logged, never silent.
func (s *Service) Begin(ctx context.Context, opts BeginOptions) (domain.Activity, error) {
	begin := opts.BeginTime
	if begin.IsZero() {
		begin = s.now()
	}

	activity, err := domain.NewActivity(domain.ActivityInput{
		Guid:        s.idGen(),
		Description: opts.Description,
		Category:    opts.Category,
		Tags:        opts.Tags,
		Begin:       begin,
	})
	if err != nil {
		return domain.Activity{}, err
	}

	current, err := s.repo.CurrentActivity(ctx)
	switch {
	case err == nil:
		if !opts.Force {
			return domain.Activity{}, fmt.Errorf("activity %s: %w", current.Guid, ErrActivityAlreadyActive)
		}
		if err := current.Finish(begin); err != nil {
			return domain.Activity{}, err
		}
		s.logger.Warn("force begin: implicitly ending current activity",
			"guid", current.Guid, "description", current.Description, "end", begin.String())
		if err := s.repo.ReplaceCurrentActivity(ctx, current, activity); err != nil {
			return domain.Activity{}, err
		}
	case errors.Is(err, ErrNoCurrentActivity):
		if err := s.repo.CreateActivity(ctx, activity); err != nil {
			return domain.Activity{}, err
		}
	default:
		return domain.Activity{}, err
	}

	s.logger.Info("began activity", "guid", activity.Guid, "description", activity.Description, "begin", begin.String())
	return activity, nil
}

// Hold pauses the current activity. Fails with domain.ErrNotActive when no
// activity is active.
func (s *Service) Hold(ctx context.Context, opts HoldOptions) (domain.Activity, error) {
	action, err := domain.ParseIntermissionAction(string(opts.Action))
	if err != nil {
		return domain.Activity{}, err
	}
	begin := opts.BeginTime
	if begin.IsZero() {
		begin = s.now()
	}

	current, err := s.repo.CurrentActivity(ctx)
	if err != nil {
		if errors.Is(err, ErrNoCurrentActivity) {
			return domain.Activity{}, domain.ErrNotActive
		}
		return domain.Activity{}, err
	}

	created, err := current.Hold(action, s.idGen(), begin, opts.Reason)
	if err != nil {
		return domain.Activity{}, err
	}
	if err := s.repo.UpdateActivity(ctx, current); err != nil {
		return domain.Activity{}, err
	}

	if created != nil {
		s.logger.Info("held activity", "guid", current.Guid, "intermission", created.Guid, "begin", begin.String())
	} else {
		s.logger.Info("held activity, extending open intermission", "guid", current.Guid)
	}
	return current, nil
}

// Resume reactivates the held activity, closing the open intermission. Fails
// with domain.ErrNotHeld when nothing is held.
func (s *Service) Resume(ctx context.Context, opts ResumeOptions) (domain.Activity, error) {
	end := opts.ResumeTime
	if end.IsZero() {
		end = s.now()
	}

	current, err := s.repo.CurrentActivity(ctx)
	if err != nil {
		if errors.Is(err, ErrNoCurrentActivity) {
			return domain.Activity{}, domain.ErrNotHeld
		}
		return domain.Activity{}, err
	}

	if err := current.Resume(end); err != nil {
		return domain.Activity{}, err
	}
	if err := s.repo.UpdateActivity(ctx, current); err != nil {
		return domain.Activity{}, err
	}

	s.logger.Info("resumed activity", "guid", current.Guid, "resume", end.String())
	return current, nil
}

// End finalizes the current activity, closing an open intermission at the
// same instant and storing the worked duration.
func (s *Service) End(ctx context.Context, opts EndOptions) (domain.Activity, error) {
	end := opts.EndTime
	if end.IsZero() {
		end = s.now()
	}

	current, err := s.repo.CurrentActivity(ctx)
	if err != nil {
		return domain.Activity{}, err
	}

	if err := current.Finish(end); err != nil {
		return domain.Activity{}, err
	}
	if err := s.repo.UpdateActivity(ctx, current); err != nil {
		return domain.Activity{}, err
	}

	s.logger.Info("ended activity", "guid", current.Guid, "end", end.String(), "worked", current.Duration.String())
	return current, nil
}

// Current returns the activity in active or held status.
func (s *Service) Current(ctx context.Context) (domain.Activity, error) {
	return s.repo.CurrentActivity(ctx)
}

// Activity returns a single activity by guid.
func (s *Service) Activity(ctx context.Context, guid domain.Guid) (domain.Activity, error) {
	return s.repo.GetActivity(ctx, guid)
}

// Activities returns the full history, oldest first.
func (s *Service) Activities(ctx context.Context) ([]domain.Activity, error) {
	return s.repo.ListActivities(ctx)
}

// Delete removes an activity and its dependent rows.
func (s *Service) Delete(ctx context.Context, guid domain.Guid) error {
	if err := s.repo.DeleteActivity(ctx, guid); err != nil {
		return err
	}
	s.logger.Info("deleted activity", "guid", guid)
	return nil
}

// Tags lists the known tag lookup entities.
func (s *Service) Tags(ctx context.Context) ([]domain.Tag, error) {
	return s.repo.ListTags(ctx)
}

// DeleteTag removes a tag lookup entity under the repository's configured
// delete policy.
func (s *Service) DeleteTag(ctx context.Context, guid domain.Guid) error {
	return s.repo.DeleteTag(ctx, guid)
}

// Categories lists the known category lookup entities.
func (s *Service) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}
