package service

import (
	"context"
	"errors"
	"strings"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/logger"
	"studybuddy-backend/internal/repository"
	"studybuddy-backend/internal/storage"
)

const searchLimit = 20

type groupService struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	members   MembershipService
	invites   InviteService
	store     storage.Storage
}

func NewGroupService(groupRepo repository.GroupRepository, userRepo repository.UserRepository, members MembershipService, invites InviteService, store storage.Storage) GroupService {
	return &groupService{
		groupRepo: groupRepo,
		userRepo:  userRepo,
		members:   members,
		invites:   invites,
		store:     store,
	}
}

func (s *groupService) CreateGroup(ctx context.Context, ownerID int32, name string, description *string) (*domain.StudyGroup, error) {
	name, err := validateGroupName(name)
	if err != nil {
		return nil, err
	}
	description, err = validateOptional(description, "description", domain.GroupDescriptionMaxLen)
	if err != nil {
		return nil, err
	}

	group := &domain.StudyGroup{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}
	for {
		code, err := s.invites.GenerateCode(ctx)
		if err != nil {
			return nil, err
		}
		group.InviteCode = code
		err = s.groupRepo.CreateWithOwner(ctx, group)
		if errors.Is(err, repository.ErrInviteCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	logger.Info("Group created", "groupID", group.ID, "ownerID", ownerID)
	return group, nil
}

func (s *groupService) ownedGroup(ctx context.Context, groupID, requesterID int32, action string) (*domain.StudyGroup, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != requesterID {
		return nil, domain.NewForbiddenError("only the group owner can " + action + " this group")
	}
	return group, nil
}

func (s *groupService) UpdateGroup(ctx context.Context, groupID, requesterID int32, patch domain.GroupPatch) (*domain.StudyGroup, error) {
	group, err := s.ownedGroup(ctx, groupID, requesterID, "update")
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name, err := validateGroupName(*patch.Name)
		if err != nil {
			return nil, err
		}
		group.Name = name
	}
	if patch.Description != nil {
		// An empty description clears the field.
		description, err := validateOptional(patch.Description, "description", domain.GroupDescriptionMaxLen)
		if err != nil {
			return nil, err
		}
		group.Description = description
	}

	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) DeleteGroup(ctx context.Context, groupID, requesterID int32) error {
	if _, err := s.ownedGroup(ctx, groupID, requesterID, "delete"); err != nil {
		return err
	}

	keys, err := s.groupRepo.Delete(ctx, groupID)
	if err != nil {
		return err
	}

	// Rows are gone at this point; leftover blobs are picked up by the
	// orphaned file sweep.
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			logger.Warn("Failed to delete stored file", "groupID", groupID, "key", key, "error", err)
		}
	}
	logger.Info("Group deleted", "groupID", groupID, "files", len(keys))
	return nil
}

func (s *groupService) GetGroup(ctx context.Context, groupID, userID int32) (*domain.GroupDetail, error) {
	group, err := s.members.RequireMember(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}

	owner, err := s.userRepo.GetByID(ctx, group.OwnerID)
	if err != nil {
		return nil, err
	}
	members, err := s.members.ListMembers(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	counts, err := s.groupRepo.GetCounts(ctx, groupID)
	if err != nil {
		return nil, err
	}
	// Pending requests are the owner's business.
	if userID != group.OwnerID {
		counts.PendingRequests = 0
	}

	return &domain.GroupDetail{
		Group:   *group,
		Owner:   domain.UserSummary{ID: owner.ID, Name: owner.Name, Email: owner.Email},
		Members: members,
		Counts:  *counts,
	}, nil
}

func (s *groupService) SearchGroups(ctx context.Context, query string) ([]domain.GroupSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.GroupSummary{}, nil
	}
	return s.groupRepo.Search(ctx, query, searchLimit)
}

func (s *groupService) ListMyGroups(ctx context.Context, userID int32) ([]domain.MyGroup, error) {
	return s.groupRepo.ListByMember(ctx, userID)
}
