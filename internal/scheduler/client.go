package scheduler

import (
	"crypto/tls"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"imobcrm_backend/platform/config"
)

// RedisOpt builds the asynq redis connection options from the configured
// redis URL.
func RedisOpt(cfg config.SchedulerConfig) (asynq.RedisClientOpt, error) {
	parsed, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("parse redis url: %w", err)
	}

	opt := asynq.RedisClientOpt{
		Addr:     parsed.Addr,
		Username: parsed.Username,
		Password: parsed.Password,
		DB:       parsed.DB,
	}
	if parsed.TLSConfig != nil {
		opt.TLSConfig = parsed.TLSConfig
		if cfg.GetRedisTLSInsecure() {
			opt.TLSConfig = &tls.Config{InsecureSkipVerify: true}
		}
	}
	return opt, nil
}
