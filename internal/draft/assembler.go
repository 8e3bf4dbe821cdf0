package draft

import (
	"context"
	"fmt"
	"time"

	"kargo-booking/internal/apperr"
	"kargo-booking/internal/domain"
	"kargo-booking/internal/logx"
	"kargo-booking/internal/pricing"
)

type counter interface {
	Inc()
}

// Assembler merges wizard-step updates into the current draft: validate
// first, then replace the section and recompute derived pricing in the same
// write. It assumes a single in-flight merge per user session; concurrent
// merges are last-writer-wins at section granularity and are not defended
// against.
type Assembler struct {
	store    *Store
	logger   logx.Logger
	rejected counter
	now      func() time.Time
}

// NewAssembler creates an Assembler over the given draft store. The rejected
// counter may be nil.
func NewAssembler(store *Store, logger logx.Logger, rejected counter) *Assembler {
	return &Assembler{
		store:    store,
		logger:   logger,
		rejected: rejected,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start discards any prior draft and writes a fresh empty template.
func (a *Assembler) Start(ctx context.Context, userID string) (*domain.OrderDraft, error) {
	if err := a.store.InitEmpty(ctx, userID); err != nil {
		return nil, err
	}
	d := EmptyDraft(a.now())
	return &d, nil
}

// Draft returns the current draft or apperr.ErrNotFound when none exists.
func (a *Assembler) Draft(ctx context.Context, userID string) (*domain.OrderDraft, error) {
	d, err := a.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.ErrNotFound
	}
	return d, nil
}

// Cancel removes the draft, returning the user to the "no order in
// progress" state.
func (a *Assembler) Cancel(ctx context.Context, userID string) error {
	return a.store.Clear(ctx, userID)
}

// Merge dispatches one section update: load, validate, replace the section,
// reprice if pricing inputs changed, persist. Validation failures reject the
// merge with no partial write.
func (a *Assembler) Merge(ctx context.Context, userID string, upd SectionUpdate) (*domain.OrderDraft, error) {
	cur, err := a.loadOrEmpty(ctx, userID)
	if err != nil {
		return nil, err
	}

	var patch Patch
	switch u := upd.(type) {
	case UpdateSender:
		if msgs := ValidateSender(&u.Sender); len(msgs) > 0 {
			return nil, a.reject(upd, msgs, nil)
		}
		snd := u.Sender
		patch.Sender = &snd
		locs := cur.Locations
		locs.Pickup = domain.Location{
			Address: snd.Address,
			State:   snd.State,
			Country: domain.DefaultCountry,
		}
		patch.Locations = &locs

	case UpdateReceiver:
		if msgs := ValidateReceiver(&u.Receiver); len(msgs) > 0 {
			return nil, a.reject(upd, msgs, nil)
		}
		rcv := u.Receiver
		patch.Receiver = &rcv
		locs := cur.Locations
		locs.Delivery = dropOffLocation(rcv)
		patch.Locations = &locs

	case UpdateItems:
		items := append([]domain.ItemDetails(nil), u.Items...)
		var msgs []string
		for i, it := range items {
			for _, m := range ValidateItemFields(it) {
				msgs = append(msgs, fmt.Sprintf("item %d: %s", i+1, m))
			}
		}
		capErr := CheckCapacity(items, cur.Delivery.Vehicle)
		if len(msgs) > 0 || capErr != nil {
			return nil, a.reject(upd, msgs, capErr)
		}
		patch.Items = &items
		a.reprice(cur, &patch)

	case UpdateDelivery:
		del := u.Delivery
		var msgs []string
		if !del.Vehicle.Valid() {
			msgs = append(msgs, "a valid vehicle must be selected")
		}
		msgs = append(msgs, ValidateSchedule(del.ScheduledPickup, a.now())...)
		var capErr *apperr.CapacityError
		if del.Vehicle.Valid() {
			capErr = CheckCapacity(cur.Items, del.Vehicle)
		}
		if len(msgs) > 0 || capErr != nil {
			return nil, a.reject(upd, msgs, capErr)
		}
		patch.Delivery = &del
		a.reprice(cur, &patch)

	default:
		return nil, fmt.Errorf("unknown section update %T", upd)
	}

	return a.save(ctx, userID, cur, patch, upd.section())
}

// AddItem appends one item after validating it against the current draft.
func (a *Assembler) AddItem(ctx context.Context, userID string, it domain.ItemDetails) (*domain.OrderDraft, error) {
	cur, err := a.loadOrEmpty(ctx, userID)
	if err != nil {
		return nil, err
	}
	projected := append(append([]domain.ItemDetails(nil), cur.Items...), it)
	return a.mergeItems(ctx, userID, cur, it, projected)
}

// ReplaceItem swaps the item at index, excluding the replaced item from the
// projected weight.
func (a *Assembler) ReplaceItem(ctx context.Context, userID string, index int, it domain.ItemDetails) (*domain.OrderDraft, error) {
	cur, err := a.loadOrEmpty(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(cur.Items) {
		return nil, apperr.ErrNotFound
	}
	projected := append([]domain.ItemDetails(nil), cur.Items...)
	projected[index] = it
	return a.mergeItems(ctx, userID, cur, it, projected)
}

// RemoveItem drops the item at index and reprices the rest.
func (a *Assembler) RemoveItem(ctx context.Context, userID string, index int) (*domain.OrderDraft, error) {
	cur, err := a.loadOrEmpty(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(cur.Items) {
		return nil, apperr.ErrNotFound
	}
	projected := append([]domain.ItemDetails(nil), cur.Items[:index]...)
	projected = append(projected, cur.Items[index+1:]...)

	var patch Patch
	patch.Items = &projected
	a.reprice(cur, &patch)
	return a.save(ctx, userID, cur, patch, "items")
}

func (a *Assembler) mergeItems(ctx context.Context, userID string, cur *domain.OrderDraft, it domain.ItemDetails, projected []domain.ItemDetails) (*domain.OrderDraft, error) {
	msgs := ValidateItemFields(it)
	capErr := CheckCapacity(projected, cur.Delivery.Vehicle)
	if len(msgs) > 0 || capErr != nil {
		return nil, a.reject(UpdateItems{}, msgs, capErr)
	}

	var patch Patch
	patch.Items = &projected
	a.reprice(cur, &patch)
	return a.save(ctx, userID, cur, patch, "items")
}

// reprice recomputes derived pricing from the post-merge items and delivery
// sections and folds both into the patch, so pricing and delivery.fee are
// never persisted out of sync with their inputs.
func (a *Assembler) reprice(cur *domain.OrderDraft, patch *Patch) {
	items := cur.Items
	if patch.Items != nil {
		items = *patch.Items
	}
	del := cur.Delivery
	if patch.Delivery != nil {
		del = *patch.Delivery
	}

	q := pricing.Quote(items, del.Insured)
	del.FeeMinor = q.DeliveryFee
	patch.Delivery = &del
	patch.Pricing = &q
}

func (a *Assembler) save(ctx context.Context, userID string, cur *domain.OrderDraft, patch Patch, section string) (*domain.OrderDraft, error) {
	if err := a.store.Save(ctx, userID, patch); err != nil {
		return nil, err
	}
	applyPatch(cur, patch)
	cur.OrderDetails.UpdatedAt = a.now()

	a.logger.Info("draft merged",
		logx.String("section", section),
		logx.Int("items", len(cur.Items)),
		logx.Int64("delivery_fee", cur.Pricing.DeliveryFee),
		logx.Int64("total", cur.Pricing.Total),
	)
	return cur, nil
}

func (a *Assembler) loadOrEmpty(ctx context.Context, userID string) (*domain.OrderDraft, error) {
	cur, err := a.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		d := EmptyDraft(a.now())
		cur = &d
	}
	return cur, nil
}

// reject counts the rejection and shapes the error: a pure capacity breach
// surfaces as CapacityError, anything else as a ValidationError carrying
// every collected message.
func (a *Assembler) reject(upd SectionUpdate, msgs []string, capErr *apperr.CapacityError) error {
	if a.rejected != nil {
		a.rejected.Inc()
	}
	a.logger.Warn("draft merge rejected",
		logx.String("section", upd.section()),
		logx.Int("errors", len(msgs)),
	)
	if capErr != nil {
		if len(msgs) == 0 {
			return capErr
		}
		msgs = append(msgs, capErr.Error())
	}
	return &apperr.ValidationError{Messages: msgs}
}

func dropOffLocation(r domain.ReceiverDetails) domain.Location {
	loc := domain.Location{
		State:   r.State,
		Country: domain.DefaultCountry,
	}
	if r.DeliveryMethod == domain.MethodPickup {
		loc.Address = r.PickupCenter
	} else {
		loc.Address = r.Address
	}
	return loc
}
