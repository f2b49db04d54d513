package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"tamaq_back_end/internal/models"
)

// Listener est notifié de façon synchrone après chaque mutation
// persistée du panier de userEmail. Aucun ordre d'appel garanti.
type Listener func(userEmail string, items []models.CartLineItem)

// Store maintient la liste des lignes du panier par utilisateur.
// Construit une fois au démarrage avec son Storage, passé par référence
// aux handlers — pas de singleton au niveau package.
type Store struct {
	storage Storage

	mu        sync.Mutex
	listeners map[int]Listener
	nextID    int
}

func NewStore(storage Storage) *Store {
	return &Store{
		storage:   storage,
		listeners: make(map[int]Listener),
	}
}

func cartKey(userEmail string) string {
	return "cart:" + userEmail
}

// Subscribe enregistre un listener et retourne son id de désinscription
func (s *Store) Subscribe(l Listener) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.listeners[s.nextID] = l
	return s.nextID
}

func (s *Store) Unsubscribe(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.listeners, id)
}

func (s *Store) notify(userEmail string, items []models.CartLineItem) {
	s.mu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.mu.Unlock()
	for _, l := range ls {
		l(userEmail, items)
	}
}

// Get retourne les lignes courantes du panier, sans effet de bord.
// Un panier jamais vu est simplement vide.
func (s *Store) Get(ctx context.Context, userEmail string) ([]models.CartLineItem, error) {
	data, err := s.storage.Get(ctx, cartKey(userEmail))
	if errors.Is(err, ErrNotFound) {
		return []models.CartLineItem{}, nil
	}
	if err != nil {
		return nil, err
	}
	var items []models.CartLineItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartLineItem{}
	}
	return items, nil
}

func (s *Store) persist(ctx context.Context, userEmail string, items []models.CartLineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	if err := s.storage.Set(ctx, cartKey(userEmail), string(data)); err != nil {
		return err
	}
	s.notify(userEmail, items)
	return nil
}

// Add incrémente la quantité de 1 si la ligne existe déjà, sinon
// ajoute une nouvelle ligne avec quantité 1. Le prix, le nom et
// l'image d'une ligne existante ne sont pas modifiés.
func (s *Store) Add(ctx context.Context, userEmail string, item models.CartLineItem) ([]models.CartLineItem, error) {
	items, err := s.Get(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].FoodID == item.FoodID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		item.Quantity = 1
		items = append(items, item)
	}

	if err := s.persist(ctx, userEmail, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity fixe la quantité d'une ligne. Une quantité <= 0
// équivaut à Remove.
func (s *Store) UpdateQuantity(ctx context.Context, userEmail, foodID string, quantity int) ([]models.CartLineItem, error) {
	if quantity <= 0 {
		return s.Remove(ctx, userEmail, foodID)
	}

	items, err := s.Get(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].FoodID == foodID {
			items[i].Quantity = quantity
			break
		}
	}
	if err := s.persist(ctx, userEmail, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Remove supprime la ligne si elle existe. Id absent : no-op, pas une erreur.
func (s *Store) Remove(ctx context.Context, userEmail, foodID string) ([]models.CartLineItem, error) {
	items, err := s.Get(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	kept := make([]models.CartLineItem, 0, len(items))
	for _, it := range items {
		if it.FoodID != foodID {
			kept = append(kept, it)
		}
	}
	if err := s.persist(ctx, userEmail, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// ItemCount — somme des quantités, pour le badge du panier
func (s *Store) ItemCount(ctx context.Context, userEmail string) (int, error) {
	items, err := s.Get(ctx, userEmail)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return count, nil
}

// Clear vide le panier. Appelé une fois, après un checkout réussi.
func (s *Store) Clear(ctx context.Context, userEmail string) error {
	if err := s.storage.Remove(ctx, cartKey(userEmail)); err != nil {
		return err
	}
	s.notify(userEmail, []models.CartLineItem{})
	return nil
}
