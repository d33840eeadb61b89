// Copyright (c) 2026 Bhugol. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session persists one wizard run server-side in Redis.

Drafts are TTL-bound: a run that sees no action within the draft TTL is
discarded, and completed runs are deleted immediately. Drafts are session
state, never registrations — nothing here survives past one wizard run.
*/
package session

import (
	stdctx "context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/bhugol/internal/platform/apperr"
	"github.com/taibuivan/bhugol/internal/platform/constants"
	"github.com/taibuivan/bhugol/internal/wizard"
)

// Store reads and writes wizard drafts with a sliding TTL.
type Store struct {
	client *redis.Client
}

// NewStore constructs a draft [Store] on the shared Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// key builds the Redis key for one draft.
func (store *Store) key(draftID string) string {
	return constants.RedisPrefixWizardDraft + draftID
}

// Save writes the draft and resets its TTL. Every applied action goes
// through Save, so the TTL slides with activity.
func (store *Store) Save(context stdctx.Context, draft wizard.Draft) error {
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("wizard session: failed to encode draft: %w", err)
	}

	if err := store.client.Set(context, store.key(draft.ID), payload, constants.WizardDraftTTL).Err(); err != nil {
		return fmt.Errorf("wizard session: failed to save draft: %w", err)
	}
	return nil
}

// Get loads a draft. An expired or unknown draft id yields NOT_FOUND; the
// client starts a new run.
func (store *Store) Get(context stdctx.Context, draftID string) (wizard.Draft, error) {
	payload, err := store.client.Get(context, store.key(draftID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return wizard.Draft{}, apperr.NotFound("Wizard draft")
	}
	if err != nil {
		return wizard.Draft{}, fmt.Errorf("wizard session: failed to load draft: %w", err)
	}

	var draft wizard.Draft
	if err := json.Unmarshal(payload, &draft); err != nil {
		return wizard.Draft{}, fmt.Errorf("wizard session: failed to decode draft: %w", err)
	}
	return draft, nil
}

// Delete removes a draft, typically right after a successful submission.
func (store *Store) Delete(context stdctx.Context, draftID string) error {
	if err := store.client.Del(context, store.key(draftID)).Err(); err != nil {
		return fmt.Errorf("wizard session: failed to delete draft: %w", err)
	}
	return nil
}
