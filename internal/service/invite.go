package service

import (
	"context"
	"crypto/rand"
	"errors"
	"io"
	"strings"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/logger"
	"studybuddy-backend/internal/repository"
)

const (
	// Uppercase letters and digits without the look-alikes I, O, 0 and 1.
	inviteAlphabet   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	inviteCodeLength = 6
)

type inviteService struct {
	groupRepo repository.GroupRepository
	members   MembershipService
	random    io.Reader
}

func NewInviteService(groupRepo repository.GroupRepository, members MembershipService) InviteService {
	return &inviteService{
		groupRepo: groupRepo,
		members:   members,
		random:    rand.Reader,
	}
}

// randomCode draws each character uniformly. The alphabet has 32 symbols so
// the low five bits of a random byte select one without bias.
func randomCode(r io.Reader) (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.Grow(inviteCodeLength)
	for _, b := range buf {
		sb.WriteByte(inviteAlphabet[int(b)%len(inviteAlphabet)])
	}
	return sb.String(), nil
}

// GenerateCode draws until it finds a code no group holds. Two concurrent
// callers can still draw the same unused code; the unique constraint on the
// insert catches that and the group service draws again.
func (s *inviteService) GenerateCode(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		code, err := randomCode(s.random)
		if err != nil {
			return "", err
		}
		exists, err := s.groupRepo.InviteCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		logger.Debug("Invite code collision, drawing again")
	}
}

func (s *inviteService) ResolveByCode(ctx context.Context, code string) (*domain.StudyGroup, error) {
	group, err := s.groupRepo.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return group, nil
}

func (s *inviteService) AdmitByCode(ctx context.Context, code string, userID int32) (int32, error) {
	logger.EnterMethod("inviteService.AdmitByCode", "userID", userID)

	if code == "" {
		err := domain.NewValidationError("invite code is required")
		logger.ExitMethodWithError("inviteService.AdmitByCode", err, true)
		return 0, err
	}

	group, err := s.ResolveByCode(ctx, code)
	if err != nil {
		logger.ExitMethodWithError("inviteService.AdmitByCode", err, false)
		return 0, err
	}
	if group == nil {
		err := domain.NewNotFoundError("invalid invite code")
		logger.ExitMethodWithError("inviteService.AdmitByCode", err, true)
		return 0, err
	}

	member, err := s.members.IsMember(ctx, group.ID, userID)
	if err != nil {
		logger.ExitMethodWithError("inviteService.AdmitByCode", err, false)
		return 0, err
	}
	if member {
		err := domain.NewConflictError("you are already a member of this group")
		logger.ExitMethodWithError("inviteService.AdmitByCode", err, true)
		return 0, err
	}

	// A concurrent admission of the same user surfaces here as a conflict.
	if err := s.members.AddMember(ctx, group.ID, userID); err != nil {
		logger.ExitMethodWithError("inviteService.AdmitByCode", err, errors.Is(err, domain.ErrConflict))
		return 0, err
	}

	logger.ExitMethod("inviteService.AdmitByCode", "groupID", group.ID)
	return group.ID, nil
}
