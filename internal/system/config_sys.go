package system

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"rapid-pay-api/internal/constant"
	"rapid-pay-api/internal/dao"
	"rapid-pay-api/internal/dto"
	mainmodel "rapid-pay-api/internal/model/main"
	rediskey "rapid-pay-api/internal/types/redis-key"
)

// SettingsStore loads the gateway settings blob from sys_config, caching the
// raw value in the shared Redis config hash.
type SettingsStore struct {
	dao             *dao.SysConfigDao
	rdb             *redis.Client
	defaultCurrency string
	ttl             time.Duration
}

func NewSettingsStore(d *dao.SysConfigDao, rdb *redis.Client, defaultCurrency string, ttl time.Duration) *SettingsStore {
	return &SettingsStore{dao: d, rdb: rdb, defaultCurrency: defaultCurrency, ttl: ttl}
}

// Load returns a normalized snapshot. A missing row yields the install
// defaults; a Redis failure falls through to the database.
func (s *SettingsStore) Load(ctx context.Context) (dto.Settings, error) {
	if raw := s.cached(ctx); raw != "" {
		if st, err := s.decode(raw); err == nil {
			return st, nil
		}
	}

	row, err := s.dao.GetByKey(ctx, mainmodel.SettingsConfigKey)
	if err != nil {
		return dto.Settings{}, constant.Wrap(constant.CodeDatabaseError, err)
	}
	if row == nil {
		return dto.DefaultSettings(s.defaultCurrency), nil
	}
	st, err := s.decode(row.ConfigValue)
	if err != nil {
		log.Printf("[Settings] stored blob unreadable, using defaults: %v", err)
		return dto.DefaultSettings(s.defaultCurrency), nil
	}
	s.fill(ctx, row.ConfigValue)
	return st, nil
}

// Save validates, normalizes and persists st, then drops the cached copy.
func (s *SettingsStore) Save(ctx context.Context, st dto.Settings, by string) (dto.Settings, error) {
	if st.MinAmount.IsNegative() || st.MaxAmount.IsNegative() {
		return st, constant.NewFieldError(constant.CodeConfigInvalid, "amount")
	}
	if st.MinAmount.IsPositive() && st.MaxAmount.IsPositive() && st.MinAmount.GreaterThan(st.MaxAmount) {
		return st, constant.NewFieldError(constant.CodeConfigInvalid, "amount")
	}
	if st.Currency == "" {
		st.Currency = s.defaultCurrency
	}
	st.Normalize()

	b, err := json.Marshal(&st)
	if err != nil {
		return st, constant.Wrap(constant.CodeConfigUpdateFail, err)
	}
	if err := s.dao.Save(ctx, mainmodel.SettingsConfigKey, "Rapid Pay settings", string(b), by); err != nil {
		return st, constant.Wrap(constant.CodeConfigUpdateFail, err)
	}
	s.invalidate(ctx)
	return st, nil
}

// FromRequest maps the admin payload onto Settings.
func FromRequest(req dto.SaveSettingsReq) dto.Settings {
	st := dto.Settings{
		InstructionText:   req.InstructionText,
		AdminPhones:       make(map[constant.PaymentMethod]string, len(req.AdminPhones)),
		Currency:          req.Currency,
		MinAmount:         req.MinAmount,
		MaxAmount:         req.MaxAmount,
		AutoExpireEnabled: req.AutoExpireEnabled,
		AutoExpireHours:   req.AutoExpireHours,
	}
	for _, m := range req.EnabledMethods {
		st.EnabledMethods = append(st.EnabledMethods, constant.PaymentMethod(m))
	}
	for k, v := range req.AdminPhones {
		if constant.IsValidMethod(k) {
			st.AdminPhones[constant.PaymentMethod(k)] = v
		}
	}
	return st
}

func (s *SettingsStore) decode(raw string) (dto.Settings, error) {
	var st dto.Settings
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return st, fmt.Errorf("decode settings: %w", err)
	}
	if st.Currency == "" {
		st.Currency = s.defaultCurrency
	}
	st.Normalize()
	return st, nil
}

func (s *SettingsStore) cached(ctx context.Context) string {
	if s.rdb == nil {
		return ""
	}
	v, err := s.rdb.HGet(ctx, rediskey.SysConfigKey(), mainmodel.SettingsConfigKey).Result()
	if err != nil && err != redis.Nil {
		log.Printf("[Settings] redis read failed: %v", err)
	}
	return v
}

func (s *SettingsStore) fill(ctx context.Context, raw string) {
	if s.rdb == nil {
		return
	}
	key := rediskey.SysConfigKey()
	if err := s.rdb.HSet(ctx, key, mainmodel.SettingsConfigKey, raw).Err(); err != nil {
		log.Printf("[Settings] redis write failed: %v", err)
		return
	}
	if s.ttl > 0 {
		s.rdb.Expire(ctx, key, s.ttl)
	}
}

func (s *SettingsStore) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.HDel(ctx, rediskey.SysConfigKey(), mainmodel.SettingsConfigKey).Err(); err != nil {
		log.Printf("[Settings] redis invalidate failed: %v", err)
	}
}
