package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"os-system/internal/entities"
)

// ProfileCache guarda perfis resolvidos em Redis para poupar uma ida ao
// banco por requisição. Falhas de cache nunca sobem: quem chama trata miss
// e erro do mesmo jeito.
type ProfileCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*entities.Profile, bool)
	Set(ctx context.Context, p *entities.Profile)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

type profileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProfileCache(client *redis.Client, ttl time.Duration) ProfileCache {
	return &profileCache{client: client, ttl: ttl}
}

func profileKey(userID uuid.UUID) string {
	return fmt.Sprintf("profile:%s", userID)
}

func (c *profileCache) Get(ctx context.Context, userID uuid.UUID) (*entities.Profile, bool) {
	raw, err := c.client.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		// miss e indisponibilidade do redis são tratados igual
		return nil, false
	}
	var p entities.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (c *profileCache) Set(ctx context.Context, p *entities.Profile) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	c.client.Set(ctx, profileKey(p.UserID), raw, c.ttl)
}

func (c *profileCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	c.client.Del(ctx, profileKey(userID))
}
