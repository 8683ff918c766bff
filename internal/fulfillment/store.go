package fulfillment

import (
	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/money"
)

// State is the persisted form of a Store.
type State struct {
	Branch *BranchDTO            `json:"branch,omitempty"`
	Option enums.FulfillmentType `json:"option,omitempty"`
}

// Selection is the effective fulfillment choice with fee and timing derived
// from the selected branch.
type Selection struct {
	BranchID      *uuid.UUID            `json:"branch_id,omitempty"`
	BranchName    string                `json:"branch_name,omitempty"`
	Option        enums.FulfillmentType `json:"option,omitempty"`
	DeliveryFee   money.Amount          `json:"delivery_fee_minor"`
	MinimumOrder  money.Amount          `json:"minimum_order_minor"`
	EstimatedTime string                `json:"estimated_time,omitempty"`
}

// Store holds one shopper's branch and pickup/delivery choice. Fee, minimum
// and estimated time are always read from the current branch.
type Store struct {
	branch *BranchDTO
	option enums.FulfillmentType
}

// NewStore rebuilds a store from its persisted state.
func NewStore(state State) *Store {
	s := &Store{option: state.Option}
	if state.Branch != nil {
		b := *state.Branch
		s.branch = &b
	}
	return s
}

// SetBranch replaces the selected branch.
func (s *Store) SetBranch(branch BranchDTO) {
	s.branch = &branch
}

// SetOption replaces the pickup/delivery choice.
func (s *Store) SetOption(option enums.FulfillmentType) error {
	if !option.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid fulfillment option").
			WithDetails(map[string]any{"option": option})
	}
	s.option = option
	return nil
}

// Branch returns the selected branch, if any.
func (s *Store) Branch() *BranchDTO {
	if s.branch == nil {
		return nil
	}
	b := *s.branch
	return &b
}

// Option returns the pickup/delivery choice, empty when unset.
func (s *Store) Option() enums.FulfillmentType {
	return s.option
}

// DeliveryFee is the branch fee for delivery and zero otherwise.
func (s *Store) DeliveryFee() money.Amount {
	if s.branch == nil || s.option != enums.FulfillmentDelivery {
		return money.Zero
	}
	return s.branch.DeliveryFee
}

// MinimumOrder is the branch minimum, zero without a branch.
func (s *Store) MinimumOrder() money.Amount {
	if s.branch == nil {
		return money.Zero
	}
	return s.branch.MinimumOrder
}

// EstimatedTime follows the active option.
func (s *Store) EstimatedTime() string {
	if s.branch == nil {
		return ""
	}
	switch s.option {
	case enums.FulfillmentDelivery:
		return s.branch.EstimatedDeliveryTime
	case enums.FulfillmentPickup:
		return s.branch.EstimatedPickupTime
	default:
		return ""
	}
}

// Complete reports whether both a branch and an option are chosen.
func (s *Store) Complete() bool {
	return s.branch != nil && s.option.IsValid()
}

// Selection returns the effective choice.
func (s *Store) Selection() Selection {
	sel := Selection{
		Option:        s.option,
		DeliveryFee:   s.DeliveryFee(),
		MinimumOrder:  s.MinimumOrder(),
		EstimatedTime: s.EstimatedTime(),
	}
	if s.branch != nil {
		id := s.branch.ID
		sel.BranchID = &id
		sel.BranchName = s.branch.Name
	}
	return sel
}

// State returns the persisted form.
func (s *Store) State() State {
	return State{Branch: s.Branch(), Option: s.option}
}

// Clear drops the branch and option.
func (s *Store) Clear() {
	s.branch = nil
	s.option = ""
}
