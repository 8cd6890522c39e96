package service

import (
	"context"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/logger"
	"studybuddy-backend/internal/repository"
)

type membershipService struct {
	groupRepo      repository.GroupRepository
	membershipRepo repository.MembershipRepository
}

func NewMembershipService(groupRepo repository.GroupRepository, membershipRepo repository.MembershipRepository) MembershipService {
	return &membershipService{
		groupRepo:      groupRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *membershipService) IsMember(ctx context.Context, groupID, userID int32) (bool, error) {
	return s.membershipRepo.Exists(ctx, groupID, userID)
}

func (s *membershipService) RequireMember(ctx context.Context, groupID, userID int32) (*domain.StudyGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	ok, err := s.membershipRepo.Exists(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewForbiddenError("you are not a member of this group")
	}
	return group, nil
}

func (s *membershipService) AddMember(ctx context.Context, groupID, userID int32) error {
	return s.membershipRepo.Add(ctx, &domain.Membership{GroupID: groupID, UserID: userID})
}

func (s *membershipService) RemoveMember(ctx context.Context, groupID, userID, requesterID int32) error {
	logger.EnterMethod("membershipService.RemoveMember", "groupID", groupID, "userID", userID, "requesterID", requesterID)

	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		logger.ExitMethodWithError("membershipService.RemoveMember", err, true)
		return err
	}

	switch {
	case userID == group.OwnerID:
		err = domain.NewForbiddenError("the group owner cannot be removed; delete the group instead")
	case requesterID != userID && requesterID != group.OwnerID:
		err = domain.NewForbiddenError("only the group owner can remove other members")
	}
	if err != nil {
		logger.ExitMethodWithError("membershipService.RemoveMember", err, true)
		return err
	}

	if err := s.membershipRepo.Remove(ctx, groupID, userID); err != nil {
		logger.ExitMethodWithError("membershipService.RemoveMember", err, false)
		return err
	}

	logger.ExitMethod("membershipService.RemoveMember")
	return nil
}

func (s *membershipService) ListMembers(ctx context.Context, groupID, requesterID int32) ([]domain.Member, error) {
	if _, err := s.RequireMember(ctx, groupID, requesterID); err != nil {
		return nil, err
	}
	return s.membershipRepo.ListByGroup(ctx, groupID)
}
