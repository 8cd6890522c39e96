package service

import (
	"context"
	"time"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/repository"
)

type sessionService struct {
	sessionRepo repository.SessionRepository
	groupRepo   repository.GroupRepository
	members     MembershipService
	now         func() time.Time
}

func NewSessionService(sessionRepo repository.SessionRepository, groupRepo repository.GroupRepository, members MembershipService) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		groupRepo:   groupRepo,
		members:     members,
		now:         time.Now,
	}
}

func (s *sessionService) Create(ctx context.Context, groupID, userID int32, in domain.SessionInput) (*domain.StudySession, error) {
	if _, err := s.members.RequireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}

	title, err := validateSessionTitle(in.Title)
	if err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		return nil, domain.NewValidationError("date is required")
	}
	description, err := validateOptional(in.Description, "description", domain.SessionDescriptionMaxLen)
	if err != nil {
		return nil, err
	}
	location, err := validateOptional(in.Location, "location", domain.SessionLocationMaxLen)
	if err != nil {
		return nil, err
	}
	link, err := validateLink(in.Link)
	if err != nil {
		return nil, err
	}

	session := &domain.StudySession{
		GroupID:     groupID,
		CreatedBy:   userID,
		Title:       title,
		Description: description,
		Date:        in.Date.UTC(),
		Link:        link,
		Location:    location,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return s.sessionRepo.GetByID(ctx, session.ID)
}

func (s *sessionService) List(ctx context.Context, groupID, userID int32, filter domain.SessionFilter) ([]domain.StudySession, error) {
	if _, err := s.members.RequireMember(ctx, groupID, userID); err != nil {
		return nil, err
	}
	switch filter {
	case domain.SessionFilterUpcoming, domain.SessionFilterPast:
	default:
		filter = domain.SessionFilterAll
	}
	return s.sessionRepo.ListByGroup(ctx, groupID, filter, s.now().UTC())
}

func (s *sessionService) Get(ctx context.Context, sessionID, userID int32) (*domain.StudySession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.members.RequireMember(ctx, session.GroupID, userID); err != nil {
		return nil, err
	}
	return session, nil
}

// editable returns the session when userID created it or owns its group.
func (s *sessionService) editable(ctx context.Context, sessionID, userID int32) (*domain.StudySession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.CreatedBy == userID {
		return session, nil
	}
	group, err := s.groupRepo.GetByID(ctx, session.GroupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != userID {
		return nil, domain.NewForbiddenError("only the session creator or the group owner can modify this session")
	}
	return session, nil
}

func (s *sessionService) Update(ctx context.Context, sessionID, userID int32, patch domain.SessionPatch) (*domain.StudySession, error) {
	session, err := s.editable(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		title, err := validateSessionTitle(*patch.Title)
		if err != nil {
			return nil, err
		}
		session.Title = title
	}
	if patch.Date != nil {
		if patch.Date.IsZero() {
			return nil, domain.NewValidationError("date is required")
		}
		session.Date = patch.Date.UTC()
	}
	if patch.Description != nil {
		if session.Description, err = validateOptional(patch.Description, "description", domain.SessionDescriptionMaxLen); err != nil {
			return nil, err
		}
	}
	if patch.Location != nil {
		if session.Location, err = validateOptional(patch.Location, "location", domain.SessionLocationMaxLen); err != nil {
			return nil, err
		}
	}
	if patch.Link != nil {
		if session.Link, err = validateLink(patch.Link); err != nil {
			return nil, err
		}
	}

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Delete(ctx context.Context, sessionID, userID int32) error {
	if _, err := s.editable(ctx, sessionID, userID); err != nil {
		return err
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}
