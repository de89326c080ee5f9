package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/nthumods/mods-backend/internal/config"
	"github.com/nthumods/mods-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

// TimetableRepository persists per-client timetables and preferences in Redis.
// A semester's courses are an ordered list so duplicates survive; colours
// live in a sibling hash keyed by course id.
type TimetableRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewTimetableRepository creates a new TimetableRepository. Keys are refreshed
// to expire after ttl on every write; zero disables expiry.
func NewTimetableRepository(rdb *redis.Client, ttl time.Duration) *TimetableRepository {
	return &TimetableRepository{rdb: rdb, ttl: ttl}
}

// List returns the ordered course ids stored for a client's semester.
func (r *TimetableRepository) List(ctx context.Context, clientID, semester string) ([]string, error) {
	return r.rdb.LRange(ctx, config.CacheKey.TimetableCoursesKey(clientID, semester), 0, -1).Result()
}

// Colors returns the course id to colour mapping for a client's semester.
func (r *TimetableRepository) Colors(ctx context.Context, clientID, semester string) (map[string]string, error) {
	return r.rdb.HGetAll(ctx, config.CacheKey.TimetableColorsKey(clientID, semester)).Result()
}

// Append adds rawID to the end of the list. An existing colour for the id is kept.
func (r *TimetableRepository) Append(ctx context.Context, clientID, semester, rawID, color string) error {
	coursesKey := config.CacheKey.TimetableCoursesKey(clientID, semester)
	colorsKey := config.CacheKey.TimetableColorsKey(clientID, semester)

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, coursesKey, rawID)
		pipe.HSetNX(ctx, colorsKey, rawID, color)
		r.touch(ctx, pipe, coursesKey, colorsKey)
		return nil
	})
	return err
}

// removeCourseScript drops the first occurrence of ARGV[1] from the list at
// KEYS[1] and, when no copy remains, its colour from the hash at KEYS[2].
// Returns 1 if an entry was removed.
var removeCourseScript = redis.NewScript(`
if redis.call('LREM', KEYS[1], 1, ARGV[1]) == 0 then
	return 0
end
for _, id in ipairs(redis.call('LRANGE', KEYS[1], 0, -1)) do
	if id == ARGV[1] then
		return 1
	end
end
redis.call('HDEL', KEYS[2], ARGV[1])
return 1
`)

// Remove deletes the first occurrence of rawID. It reports whether anything
// was removed. The colour is dropped once no occurrence remains.
func (r *TimetableRepository) Remove(ctx context.Context, clientID, semester, rawID string) (bool, error) {
	keys := []string{
		config.CacheKey.TimetableCoursesKey(clientID, semester),
		config.CacheKey.TimetableColorsKey(clientID, semester),
	}

	removed, err := removeCourseScript.Run(ctx, r.rdb, keys, rawID).Int()
	if err != nil {
		return false, err
	}
	return removed == 1, nil
}

// Replace overwrites the list and colours of a client's semester atomically.
func (r *TimetableRepository) Replace(ctx context.Context, clientID, semester string, ids []string, colors map[string]string) error {
	coursesKey := config.CacheKey.TimetableCoursesKey(clientID, semester)
	colorsKey := config.CacheKey.TimetableColorsKey(clientID, semester)

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, coursesKey, colorsKey)
		if len(ids) == 0 {
			return nil
		}
		values := make([]any, len(ids))
		for i, id := range ids {
			values[i] = id
		}
		pipe.RPush(ctx, coursesKey, values...)
		if len(colors) > 0 {
			pipe.HSet(ctx, colorsKey, colors)
		}
		r.touch(ctx, pipe, coursesKey, colorsKey)
		return nil
	})
	return err
}

// GetPreferences returns the stored preferences and whether any were found.
func (r *TimetableRepository) GetPreferences(ctx context.Context, clientID string) (model.Preferences, bool, error) {
	fields, err := r.rdb.HGetAll(ctx, config.CacheKey.PreferencesKey(clientID)).Result()
	if err != nil {
		return model.Preferences{}, false, err
	}
	if len(fields) == 0 {
		return model.Preferences{}, false, nil
	}

	prefs := model.Preferences{Theme: fields["theme"]}
	vertical, err := strconv.ParseBool(fields["vertical"])
	if err != nil {
		vertical = model.DefaultVertical
	}
	prefs.Vertical = vertical
	return prefs, true, nil
}

// SetPreferences stores prefs for a client.
func (r *TimetableRepository) SetPreferences(ctx context.Context, clientID string, prefs model.Preferences) error {
	key := config.CacheKey.PreferencesKey(clientID)

	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, "vertical", strconv.FormatBool(prefs.Vertical), "theme", prefs.Theme)
		r.touch(ctx, pipe, key)
		return nil
	})
	return err
}

func (r *TimetableRepository) touch(ctx context.Context, pipe redis.Pipeliner, keys ...string) {
	if r.ttl <= 0 {
		return
	}
	for _, k := range keys {
		pipe.Expire(ctx, k, r.ttl)
	}
}
