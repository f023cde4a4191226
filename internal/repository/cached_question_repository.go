package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lshigami/ExamPortal/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// cachedQuestionRepository is a read-through Redis cache in front of the
// question bank. Only question lists are cached; they do not change while
// attempts reference them. Cache failures fall back to the database.
type cachedQuestionRepository struct {
	QuestionRepository
	rdb   *redis.Client
	ttl   time.Duration
	group singleflight.Group
}

// NewCachedQuestionRepository wraps next with a Redis cache. A nil client
// returns next unchanged.
func NewCachedQuestionRepository(next QuestionRepository, rdb *redis.Client, ttl time.Duration) QuestionRepository {
	if rdb == nil {
		return next
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &cachedQuestionRepository{QuestionRepository: next, rdb: rdb, ttl: ttl}
}

func questionsCacheKey(examID uint) string {
	return fmt.Sprintf("exam:%d:questions", examID)
}

func (r *cachedQuestionRepository) FindByExam(ctx context.Context, examID uint) ([]model.Question, error) {
	key := questionsCacheKey(examID)

	raw, err := r.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var questions []model.Question
		if jsonErr := json.Unmarshal(raw, &questions); jsonErr == nil {
			return questions, nil
		}
		log.Warn().Str("key", key).Msg("Discarding undecodable question cache entry")
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("Question cache read failed, using database")
	}

	v, err, _ := r.group.Do(strconv.FormatUint(uint64(examID), 10), func() (interface{}, error) {
		questions, err := r.QuestionRepository.FindByExam(ctx, examID)
		if err != nil {
			return nil, err
		}
		if payload, err := json.Marshal(questions); err == nil {
			if err := r.rdb.Set(ctx, key, payload, r.ttl).Err(); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("Question cache write failed")
			}
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Question), nil
}

func (r *cachedQuestionRepository) Create(ctx context.Context, question *model.Question) error {
	if err := r.QuestionRepository.Create(ctx, question); err != nil {
		return err
	}
	if err := r.rdb.Del(ctx, questionsCacheKey(question.ExamID)).Err(); err != nil {
		log.Warn().Err(err).Uint("examID", question.ExamID).Msg("Question cache invalidation failed")
	}
	return nil
}
