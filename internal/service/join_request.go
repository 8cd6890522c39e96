package service

import (
	"context"
	"errors"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/logger"
	"studybuddy-backend/internal/repository"
)

type joinRequestService struct {
	groupRepo repository.GroupRepository
	reqRepo   repository.JoinRequestRepository
	userRepo  repository.UserRepository
	members   MembershipService
	emailSvc  EmailService
}

func NewJoinRequestService(groupRepo repository.GroupRepository, reqRepo repository.JoinRequestRepository, userRepo repository.UserRepository, members MembershipService, emailSvc EmailService) JoinRequestService {
	return &joinRequestService{
		groupRepo: groupRepo,
		reqRepo:   reqRepo,
		userRepo:  userRepo,
		members:   members,
		emailSvc:  emailSvc,
	}
}

func (s *joinRequestService) CreateRequest(ctx context.Context, groupID, userID int32) (*domain.JoinRequest, error) {
	logger.EnterMethod("joinRequestService.CreateRequest", "groupID", groupID, "userID", userID)

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		logger.ExitMethodWithError("joinRequestService.CreateRequest", err, true)
		return nil, err
	}

	member, err := s.members.IsMember(ctx, groupID, userID)
	if err != nil {
		logger.ExitMethodWithError("joinRequestService.CreateRequest", err, false)
		return nil, err
	}
	if member {
		err := domain.NewConflictError("you are already a member of this group")
		logger.ExitMethodWithError("joinRequestService.CreateRequest", err, true)
		return nil, err
	}

	live, err := s.reqRepo.GetLive(ctx, groupID, userID)
	switch {
	case err == nil && live.Status == domain.JoinRequestStatusPending:
		err = domain.NewConflictError("you already have a pending request for this group")
	case err == nil:
		err = domain.NewConflictError("you are already a member of this group")
	case errors.Is(err, domain.ErrNotFound):
		err = nil
	}
	if err != nil {
		logger.ExitMethodWithError("joinRequestService.CreateRequest", err, errors.Is(err, domain.ErrConflict))
		return nil, err
	}

	// The partial unique index serializes concurrent creates for the pair.
	req := &domain.JoinRequest{GroupID: groupID, UserID: userID}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		logger.ExitMethodWithError("joinRequestService.CreateRequest", err, errors.Is(err, domain.ErrConflict))
		return nil, err
	}

	s.notifyOwner(ctx, group, userID)

	logger.ExitMethod("joinRequestService.CreateRequest", "requestID", req.ID)
	return req, nil
}

func (s *joinRequestService) notifyOwner(ctx context.Context, group *domain.StudyGroup, requesterID int32) {
	owner, err := s.userRepo.GetByID(ctx, group.OwnerID)
	if err != nil {
		logger.Warn("Failed to load group owner for notification", "groupID", group.ID, "error", err)
		return
	}
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		logger.Warn("Failed to load requester for notification", "userID", requesterID, "error", err)
		return
	}
	_ = s.emailSvc.SendJoinRequestNotification(ctx, owner.Email, owner.Name, requester.Name, group.Name)
}

func (s *joinRequestService) notifyRequester(ctx context.Context, group *domain.StudyGroup, req *domain.JoinRequest) {
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		logger.Warn("Failed to load requester for notification", "userID", req.UserID, "error", err)
		return
	}
	_ = s.emailSvc.SendJoinRequestDecision(ctx, user.Email, user.Name, group.Name, req.Status == domain.JoinRequestStatusAccepted)
}

// decidable loads a request and its group and checks that ownerID may
// decide it.
func (s *joinRequestService) decidable(ctx context.Context, requestID, ownerID int32) (*domain.JoinRequest, *domain.StudyGroup, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}
	group, err := s.groupRepo.GetByID(ctx, req.GroupID)
	if err != nil {
		return nil, nil, err
	}
	if group.OwnerID != ownerID {
		return nil, nil, domain.NewForbiddenError("only the group owner can process join requests")
	}
	if req.Status != domain.JoinRequestStatusPending {
		return nil, nil, domain.NewConflictError("request has already been processed")
	}
	return req, group, nil
}

func (s *joinRequestService) AcceptRequest(ctx context.Context, requestID, ownerID int32) (*domain.JoinRequest, error) {
	logger.EnterMethod("joinRequestService.AcceptRequest", "requestID", requestID, "ownerID", ownerID)

	req, group, err := s.decidable(ctx, requestID, ownerID)
	if err != nil {
		logger.ExitMethodWithError("joinRequestService.AcceptRequest", err, true)
		return nil, err
	}

	if err := s.reqRepo.Accept(ctx, req); err != nil {
		logger.ExitMethodWithError("joinRequestService.AcceptRequest", err, errors.Is(err, domain.ErrConflict))
		return nil, err
	}

	s.notifyRequester(ctx, group, req)

	logger.ExitMethod("joinRequestService.AcceptRequest", "groupID", req.GroupID, "userID", req.UserID)
	return req, nil
}

func (s *joinRequestService) RejectRequest(ctx context.Context, requestID, ownerID int32) (*domain.JoinRequest, error) {
	logger.EnterMethod("joinRequestService.RejectRequest", "requestID", requestID, "ownerID", ownerID)

	req, group, err := s.decidable(ctx, requestID, ownerID)
	if err != nil {
		logger.ExitMethodWithError("joinRequestService.RejectRequest", err, true)
		return nil, err
	}

	if err := s.reqRepo.Reject(ctx, req); err != nil {
		logger.ExitMethodWithError("joinRequestService.RejectRequest", err, errors.Is(err, domain.ErrConflict))
		return nil, err
	}

	s.notifyRequester(ctx, group, req)

	logger.ExitMethod("joinRequestService.RejectRequest")
	return req, nil
}

func (s *joinRequestService) CancelRequest(ctx context.Context, requestID, userID int32) error {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.UserID != userID {
		return domain.NewForbiddenError("you can only cancel your own requests")
	}
	if req.Status != domain.JoinRequestStatusPending {
		return domain.NewConflictError("cannot cancel a processed request")
	}
	return s.reqRepo.DeletePending(ctx, requestID)
}

func (s *joinRequestService) GetPendingRequests(ctx context.Context, groupID, requesterID int32) ([]domain.JoinRequest, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != requesterID {
		return nil, domain.NewForbiddenError("only the group owner can view join requests")
	}
	return s.reqRepo.ListPending(ctx, groupID)
}

func (s *joinRequestService) GetMyRequest(ctx context.Context, groupID, userID int32) (*domain.JoinRequest, error) {
	if _, err := s.groupRepo.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.reqRepo.GetLatest(ctx, groupID, userID)
}

func (s *joinRequestService) CountPending(ctx context.Context, groupID, requesterID int32) (int32, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return 0, err
	}
	if group.OwnerID != requesterID {
		return 0, domain.NewForbiddenError("only the group owner can view join requests")
	}
	return s.reqRepo.CountPending(ctx, groupID)
}

// CountPendingForOwner sums pending requests across every group ownerID owns.
func (s *joinRequestService) CountPendingForOwner(ctx context.Context, ownerID int32) (int32, error) {
	return s.reqRepo.CountPendingForOwner(ctx, ownerID)
}
