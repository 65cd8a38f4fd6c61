package repository

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"flowerStore/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type SessionRepository interface {
	CreateSession(ctx context.Context, adminId int, username string) (sessionId string, err error)
	CheckSession(ctx context.Context, sessionId string) (bool, error)
	DeleteSession(ctx context.Context, sessionId string) (err error)
	GetAdminSessionInfo(ctx context.Context, sessionId string) (adminId int, username string, exists bool, err error)
}

type SessionRepo struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionRepository stores admin sessions as redis hashes. A zero ttl
// keeps a session until logout.
func NewSessionRepository(ctx context.Context, redis_conn *redis.Client, ttl time.Duration) (SessionRepository, error) {
	if redis_conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := redis_conn.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}
	return &SessionRepo{
		rdb: redis_conn,
		ttl: ttl,
	}, nil
}

func sessionKey(sessionId string) string {
	return "admin_session:" + sessionId
}

func (s *SessionRepo) CreateSession(ctx context.Context, adminId int, username string) (sessionId string, err error) {
	sessionId = uuid.NewString()
	key := sessionKey(sessionId)
	err = s.rdb.HSet(ctx, key, "adminId", adminId, "username", username).Err()
	if err != nil {
		log.Printf("CreateSession[1]: %v", err)
		err = models.ErrServerError
		return
	}
	if s.ttl > 0 {
		if e := s.rdb.Expire(ctx, key, s.ttl).Err(); e != nil {
			log.Printf("CreateSession[2]: %v", e)
		}
	}
	return
}

func (s *SessionRepo) DeleteSession(ctx context.Context, sessionId string) (err error) {
	err = s.rdb.Del(ctx, sessionKey(sessionId)).Err()
	if err != nil {
		log.Printf("DeleteSession: %v", err)
		err = models.ErrServerError
	}
	return
}

func (s *SessionRepo) GetAdminSessionInfo(ctx context.Context, sessionId string) (adminId int, username string, exists bool, err error) {
	val, e := s.rdb.HGetAll(ctx, sessionKey(sessionId)).Result()
	if e != nil {
		log.Printf("GetAdminSessionInfo: %v", e)
		err = models.ErrServerError
		return
	}
	if len(val) == 0 {
		return
	}
	adminId, _ = strconv.Atoi(val["adminId"])
	username = val["username"]
	exists = true
	return
}

func (s *SessionRepo) CheckSession(ctx context.Context, sessionId string) (bool, error) {
	exists, err := s.rdb.Exists(ctx, sessionKey(sessionId)).Result()
	if err != nil {
		log.Printf("CheckSession: %v", err)
		return false, models.ErrServerError
	}
	return exists > 0, nil
}
