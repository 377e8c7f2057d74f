package services

import (
	"context"
	"time"

	"github.com/savoraddis/cafe-backend/models"
	"github.com/savoraddis/cafe-backend/repository"
)

// CartService owns cart state. Every mutation synchronously persists the
// whole cart; reads rehydrate it, so the cart survives page reloads.
type CartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) *CartService {
	return &CartService{repo: repo}
}

// GetCart returns the session's cart, empty if none was stored.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := s.repo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &models.Cart{
			SessionID: sessionID,
			Lines:     []models.CartLine{},
			UpdatedAt: time.Now(),
		}
	}
	return cart, nil
}

// AddItem inserts a new line at quantity 1 or bumps an existing line by 1.
// Items from a second cafe are rejected and the cart is left unchanged.
func (s *CartService) AddItem(ctx context.Context, sessionID string, line models.CartLine) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if len(cart.Lines) > 0 && cart.CafeID() != line.CafeID {
		return nil, ErrCrossCafe
	}

	found := false
	for i, existing := range cart.Lines {
		if existing.ItemID == line.ItemID && existing.CafeID == line.CafeID {
			cart.Lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		line.Quantity = 1
		cart.Lines = append(cart.Lines, line)
	}

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ChangeQuantity applies a delta to a line's quantity. A result of zero or
// less removes the line.
func (s *CartService) ChangeQuantity(ctx context.Context, sessionID, itemID string, delta int) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, l := range cart.Lines {
		if l.ItemID == itemID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrLineNotFound
	}

	cart.Lines[idx].Quantity += delta
	if cart.Lines[idx].Quantity <= 0 {
		cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
	}

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveLine deletes the line unconditionally.
func (s *CartService) RemoveLine(ctx context.Context, sessionID, itemID string) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	newLines := make([]models.CartLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		if l.ItemID != itemID {
			newLines = append(newLines, l)
		}
	}
	cart.Lines = newLines

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart. Called after the pending order is recorded.
func (s *CartService) Clear(ctx context.Context, sessionID string) error {
	return s.repo.DeleteCart(ctx, sessionID)
}
