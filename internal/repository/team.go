package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"github.com/ujdhesa/unisubs/pkg/xredis"
	"gorm.io/gorm"
)

type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	GetByID(ctx context.Context, id string) (*entity.Team, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.Team, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Team, error)
	UpdateByID(ctx context.Context, id string, team *entity.Team) error
	DeleteByID(ctx context.Context, id string) error
}

type teamRepository struct {
	redisClient xredis.Client
}

func NewTeamRepository(redisClient xredis.Client) *teamRepository {
	return &teamRepository{redisClient: redisClient}
}

func (r *teamRepository) cacheKey(id string) string {
	return fmt.Sprintf("teams:%s", id)
}

func (r *teamRepository) cacheTeams(ctx context.Context, teams ...entity.Team) {
	if r.redisClient == nil {
		return
	}

	kv := map[string]any{}
	for _, team := range teams {
		b, err := json.Marshal(team)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot marshal team for cache: %v", err)
			return
		}

		kv[r.cacheKey(team.ID)] = string(b)
	}

	if err := r.redisClient.MSet(ctx, kv); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot cache teams: %v", err)
	}
}

func (r *teamRepository) invalidateCache(ctx context.Context, id string) {
	if r.redisClient == nil {
		return
	}

	if err := r.redisClient.Del(ctx, r.cacheKey(id)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate team cache: %v", err)
	}
}

func (r *teamRepository) Create(ctx context.Context, team *entity.Team) error {
	return xcontext.DB(ctx).Create(team).Error
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*entity.Team, error) {
	teams, err := r.GetByIDs(ctx, []string{id})
	if err != nil {
		return nil, err
	}

	if len(teams) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return &teams[0], nil
}

func (r *teamRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Team, error) {
	var cached []entity.Team
	missing := ids

	if r.redisClient != nil {
		keys := make([]string, 0, len(ids))
		for _, id := range ids {
			keys = append(keys, r.cacheKey(id))
		}

		values, err := r.redisClient.MGet(ctx, keys...)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get teams from cache: %v", err)
		} else {
			missing = nil
			for i, value := range values {
				s, ok := value.(string)
				if !ok {
					missing = append(missing, ids[i])
					continue
				}

				var team entity.Team
				if err := json.Unmarshal([]byte(s), &team); err != nil {
					missing = append(missing, ids[i])
					continue
				}

				cached = append(cached, team)
			}
		}
	}

	if len(missing) == 0 {
		return cached, nil
	}

	var result []entity.Team
	if err := xcontext.DB(ctx).Find(&result, "id IN (?)", missing).Error; err != nil {
		return nil, err
	}

	r.cacheTeams(ctx, result...)
	return append(cached, result...), nil
}

func (r *teamRepository) GetBySlug(ctx context.Context, slug string) (*entity.Team, error) {
	var result entity.Team
	if err := xcontext.DB(ctx).Take(&result, "slug=?", slug).Error; err != nil {
		return nil, err
	}

	r.cacheTeams(ctx, result)
	return &result, nil
}

func (r *teamRepository) UpdateByID(ctx context.Context, id string, team *entity.Team) error {
	err := xcontext.DB(ctx).
		Model(&entity.Team{}).
		Where("id=?", id).
		Updates(team).Error
	if err != nil {
		return err
	}

	r.invalidateCache(ctx, id)
	return nil
}

func (r *teamRepository) DeleteByID(ctx context.Context, id string) error {
	err := xcontext.DB(ctx).Delete(&entity.Team{}, "id=?", id).Error
	if err != nil {
		return err
	}

	r.invalidateCache(ctx, id)
	return nil
}
