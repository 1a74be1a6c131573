package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/localmarket/backend/internal/domain/identity"
	"github.com/localmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Service manages shopper profiles and address books
type Service struct {
	shoppers  identity.ShopperRepository
	addresses identity.AddressRepository
	logger    *zap.Logger
}

// NewService creates a new identity Service
func NewService(shoppers identity.ShopperRepository, addresses identity.AddressRepository, logger *zap.Logger) *Service {
	return &Service{
		shoppers:  shoppers,
		addresses: addresses,
		logger:    logger,
	}
}

// GetProfile returns the shopper's profile. A user who never saved one
// gets an empty profile.
func (s *Service) GetProfile(ctx context.Context, shopperID uuid.UUID) (*ProfileResponse, error) {
	shopper, err := s.shoppers.FindByID(ctx, shopperID)
	if errors.Is(err, shared.ErrNotFound) {
		shopper, err = identity.NewShopper(shopperID, "", "")
	}
	if err != nil {
		return nil, err
	}
	resp := ToProfileResponse(shopper)
	return &resp, nil
}

// UpdateProfile creates or updates the shopper's profile
func (s *Service) UpdateProfile(ctx context.Context, shopperID uuid.UUID, req UpdateProfileRequest) (*ProfileResponse, error) {
	shopper, err := s.shoppers.FindByID(ctx, shopperID)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		shopper, err = identity.NewShopper(shopperID, req.DisplayName, req.ContactNumber)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if err := shopper.UpdateProfile(req.DisplayName, req.ContactNumber); err != nil {
			return nil, err
		}
	}

	if err := s.shoppers.Save(ctx, shopper); err != nil {
		return nil, err
	}
	s.logger.Info("shopper profile saved", zap.String("shopper_id", shopperID.String()))

	resp := ToProfileResponse(shopper)
	return &resp, nil
}

// AddAddress saves a new delivery address
func (s *Service) AddAddress(ctx context.Context, shopperID uuid.UUID, req AddAddressRequest) (*AddressResponse, error) {
	address, err := identity.NewAddress(shopperID, identity.AddressInput{
		Label:        req.Label,
		Street:       req.Street,
		Number:       req.Number,
		Complement:   req.Complement,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
	})
	if err != nil {
		return nil, err
	}
	if err := s.addresses.Save(ctx, address); err != nil {
		return nil, err
	}
	resp := ToAddressResponse(address)
	return &resp, nil
}

// ListAddresses returns the shopper's addresses, oldest first
func (s *Service) ListAddresses(ctx context.Context, shopperID uuid.UUID) ([]AddressResponse, error) {
	addresses, err := s.addresses.ListByShopper(ctx, shopperID)
	if err != nil {
		return nil, err
	}
	out := make([]AddressResponse, len(addresses))
	for i := range addresses {
		out[i] = ToAddressResponse(&addresses[i])
	}
	return out, nil
}

// DeleteAddress removes one of the shopper's addresses
func (s *Service) DeleteAddress(ctx context.Context, shopperID, addressID uuid.UUID) error {
	address, err := s.addresses.FindByID(ctx, addressID)
	if err != nil {
		return err
	}
	if address.ShopperID != shopperID {
		return shared.ErrNotFound
	}
	return s.addresses.Delete(ctx, addressID)
}
