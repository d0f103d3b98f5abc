// internal/discovery/interactions.go

package discovery

import (
	"context"
	"errors"

	"github.com/joinember/ember-backend/internal/common/logger"
	"github.com/joinember/ember-backend/internal/profile"
)

// RecordInteraction stores a swipe decision and resolves a match when it
// completes a mutual like. Exactly one interaction may exist per ordered
// (from, to) pair; repeats surface ErrAlreadyInteracted.
func (s *service) RecordInteraction(ctx context.Context, fromUserID, toUserID int64, interactionType InteractionType) (*InteractionResult, error) {
	if !interactionType.Valid() {
		return nil, ErrInvalidInteractionType
	}
	if fromUserID == toUserID {
		return nil, ErrCannotLikeSelf
	}

	allowed, err := s.limiter.Allow(ctx, fromUserID)
	if err != nil {
		logger.Log.WithError(err).Warn("swipe rate limiter unavailable, allowing")
	} else if !allowed {
		return nil, ErrTooManySwipes
	}

	requester, err := s.profiles.GetByUserID(ctx, fromUserID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, ErrRequiresBasicInfo
		}
		return nil, err
	}
	if !requester.HasBasicInfo() {
		return nil, ErrRequiresBasicInfo
	}
	if missing := profile.MissingSwipeFields(requester); len(missing) > 0 {
		return nil, &IncompleteProfileError{MissingFields: missing}
	}

	// Swiping counts as activity.
	if err := s.users.TouchLastActive(ctx, fromUserID); err != nil {
		logger.Log.WithError(err).WithField("user_id", fromUserID).Warn("failed to touch last active")
	}

	interaction := &Interaction{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Type:       interactionType,
	}
	if err := s.interactions.Create(ctx, interaction); err != nil {
		return nil, err
	}
	ObserveInteraction(string(interactionType))

	result := &InteractionResult{Interaction: interaction}

	if !interactionType.CountsTowardMatch() {
		return result, nil
	}

	reciprocal, err := s.interactions.Get(ctx, toUserID, fromUserID)
	if err != nil {
		if errors.Is(err, ErrInteractionNotFound) {
			return result, nil
		}
		return nil, err
	}

	if ClassifyPair(interaction, reciprocal) != PairMatched {
		return result, nil
	}

	user1, user2 := CanonicalPair(fromUserID, toUserID)
	match := &Match{User1ID: user1, User2ID: user2, IsActive: true}
	created, err := s.matches.Create(ctx, match)
	if err != nil {
		return nil, err
	}

	result.IsMatch = true
	result.Match = match

	if created {
		ObserveMatch()
		logger.Log.WithFields(map[string]interface{}{
			"match_id": match.ID,
			"user1_id": match.User1ID,
			"user2_id": match.User2ID,
		}).Info("new match created")

		if s.notifier != nil {
			s.notifier.NotifyMatch(match)
		}
	}

	return result, nil
}
