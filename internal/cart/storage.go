package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound — aucune valeur sous cette clé
var ErrNotFound = errors.New("cart: clé introuvable")

// Storage est l'abstraction clé/valeur derrière le panier de session.
// Injectée dans le Store, ce qui permet un double de test en mémoire.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// CartTTL — durée de vie du blob panier dans Redis (30 jours)
const CartTTL = 30 * 24 * time.Hour

// RedisStorage persiste le panier en JSON sous une clé fixe "cart:<user>"
// et publie sur le canal du même nom à chaque écriture, pour la
// synchronisation WebSocket.
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (s *RedisStorage) Get(ctx context.Context, key string) (string, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return data, nil
}

func (s *RedisStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, CartTTL).Err(); err != nil {
		return err
	}
	// notifie les connexions WebSocket abonnées à ce panier
	s.client.Publish(ctx, key, "updated")
	return nil
}

func (s *RedisStorage) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return err
	}
	s.client.Publish(ctx, key, "cleared")
	return nil
}

// MemoryStorage — double de test, même contrat que RedisStorage
type MemoryStorage struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (s *MemoryStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStorage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
