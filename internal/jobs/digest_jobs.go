package jobs

import (
	"context"

	"studybuddy-backend/internal/domain"
	"studybuddy-backend/internal/logger"
)

// SendPendingRequestDigests emails every group owner a summary of the join
// requests waiting on them.
func (jr *JobRunner) SendPendingRequestDigests() {
	jr.runWithRecovery("SendPendingRequestDigests", func() {
		sent, err := jr.sendPendingRequestDigests(context.Background())
		if err != nil {
			logger.Error("Failed to send pending request digests", "error", err)
			return
		}
		logger.Info("Pending request digests sent", "owners", sent)
	})
}

func (jr *JobRunner) sendPendingRequestDigests(ctx context.Context) (int, error) {
	log := logger.WithJob("pending-request-digest")

	digests, err := jr.repos.JoinRequests.ListPendingDigests(ctx)
	if err != nil {
		return 0, err
	}

	// Rows arrive ordered by owner; batch consecutive rows into one email.
	sent := 0
	for start := 0; start < len(digests); {
		end := start
		for end < len(digests) && digests[end].OwnerID == digests[start].OwnerID {
			end++
		}
		owner := digests[start]
		batch := append([]domain.PendingDigest(nil), digests[start:end]...)
		start = end

		if err := jr.services.Email.SendPendingDigest(ctx, owner.OwnerEmail, owner.OwnerName, batch); err != nil {
			log.Error("Failed to send pending request digest", "owner_id", owner.OwnerID, "error", err)
			continue
		}
		sent++
		log.Debug("Sent pending request digest", "owner_id", owner.OwnerID, "groups", len(batch))
	}
	return sent, nil
}
