// Package draft implements the order-draft assembly subsystem: the one-slot
// draft store, the per-section validators, and the assembler that merges
// wizard steps into a consistent, priced draft.
package draft

import (
	"context"
	"encoding/json"
	"time"

	"kargo-booking/internal/apperr"
	"kargo-booking/internal/domain"
)

// KV is the durable key-value collaborator backing the draft store.
// Get returns (nil, nil) when the key is absent.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// requiredSections are the top-level draft keys the empty template always
// carries. A persisted document missing any of them is treated as absent,
// not repaired. Sender and receiver stay optional until their steps run.
var requiredSections = [...]string{"items", "delivery", "locations", "pricing", "orderDetails"}

// Patch carries per-section replacements for a save. A nil section means
// "do not touch". OrderDetails is the one section merged key-by-key.
type Patch struct {
	Sender       *domain.SenderDetails
	Receiver     *domain.ReceiverDetails
	Items        *[]domain.ItemDetails
	Delivery     *domain.DeliveryDetails
	Locations    *domain.Locations
	Pricing      *domain.Pricing
	OrderDetails *domain.OrderDetails
}

// Store persists the single in-progress draft of each user under a fixed
// key. It does not retry failed KV calls; retries belong to the caller.
type Store struct {
	kv  KV
	now func() time.Time
}

// NewStore creates a draft Store over the given key-value collaborator.
func NewStore(kv KV) *Store {
	return &Store{
		kv:  kv,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func draftKey(userID string) string { return "draft:" + userID }

// EmptyDraft returns the fresh draft template: status draft, zeroed pricing,
// no items, locations with the country defaulted.
func EmptyDraft(now time.Time) domain.OrderDraft {
	return domain.OrderDraft{
		Items: []domain.ItemDetails{},
		Locations: domain.Locations{
			Pickup:   domain.Location{Country: domain.DefaultCountry},
			Delivery: domain.Location{Country: domain.DefaultCountry},
		},
		OrderDetails: domain.OrderDetails{
			Status:    domain.StatusDraft,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// Load returns the current draft, or nil when none exists or the persisted
// document fails the structural check.
func (s *Store) Load(ctx context.Context, userID string) (*domain.OrderDraft, error) {
	raw, err := s.kv.Get(ctx, draftKey(userID))
	if err != nil {
		return nil, &apperr.StorageError{Op: "get", Err: err}
	}
	if raw == nil {
		return nil, nil
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, nil
	}
	for _, key := range requiredSections {
		v, ok := sections[key]
		if !ok {
			return nil, nil
		}
		// A null items key still counts as present: an emptied item list
		// must not discard the sender, receiver and schedule around it.
		if string(v) == "null" && key != "items" {
			return nil, nil
		}
	}

	var d domain.OrderDraft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, nil
	}
	if d.Items == nil {
		d.Items = []domain.ItemDetails{}
	}
	return &d, nil
}

// Save merges the patch onto the current draft (or the empty template when
// none exists), stamps updatedAt and persists the result in one write.
func (s *Store) Save(ctx context.Context, userID string, p Patch) error {
	cur, err := s.Load(ctx, userID)
	if err != nil {
		return err
	}
	if cur == nil {
		d := EmptyDraft(s.now())
		cur = &d
	}

	applyPatch(cur, p)
	cur.OrderDetails.UpdatedAt = s.now()

	return s.write(ctx, userID, cur)
}

// Clear removes the draft entirely.
func (s *Store) Clear(ctx context.Context, userID string) error {
	if err := s.kv.Remove(ctx, draftKey(userID)); err != nil {
		return &apperr.StorageError{Op: "remove", Err: err}
	}
	return nil
}

// InitEmpty writes a fresh empty-draft template, discarding any prior draft.
func (s *Store) InitEmpty(ctx context.Context, userID string) error {
	d := EmptyDraft(s.now())
	return s.write(ctx, userID, &d)
}

func (s *Store) write(ctx context.Context, userID string, d *domain.OrderDraft) error {
	if d.Items == nil {
		d.Items = []domain.ItemDetails{}
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return &apperr.StorageError{Op: "encode", Err: err}
	}
	if err := s.kv.Set(ctx, draftKey(userID), raw); err != nil {
		return &apperr.StorageError{Op: "set", Err: err}
	}
	return nil
}

// applyPatch replaces whole sections, except orderDetails which merges
// key-by-key (zero values skipped).
func applyPatch(d *domain.OrderDraft, p Patch) {
	if p.Sender != nil {
		d.Sender = p.Sender
	}
	if p.Receiver != nil {
		d.Receiver = p.Receiver
	}
	if p.Items != nil {
		d.Items = *p.Items
	}
	if p.Delivery != nil {
		d.Delivery = *p.Delivery
	}
	if p.Locations != nil {
		d.Locations = *p.Locations
	}
	if p.Pricing != nil {
		d.Pricing = *p.Pricing
	}
	if p.OrderDetails != nil {
		if p.OrderDetails.Status != "" {
			d.OrderDetails.Status = p.OrderDetails.Status
		}
		if !p.OrderDetails.CreatedAt.IsZero() {
			d.OrderDetails.CreatedAt = p.OrderDetails.CreatedAt
		}
		if !p.OrderDetails.UpdatedAt.IsZero() {
			d.OrderDetails.UpdatedAt = p.OrderDetails.UpdatedAt
		}
	}
}
