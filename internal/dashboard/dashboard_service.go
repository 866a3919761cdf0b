package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"leavesync/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	StatsCacheKey = "dashboard:stats"
	StatsCacheTTL = 30 * time.Second

	historyDays      = 7
	activityPerKind  = 5
	activityMaxItems = 8
)

type Service interface {
	Stats(ctx context.Context) (StatsResponse, error)
	Activity(ctx context.Context) ([]ActivityItem, error)
}

type Config struct {
	Location *time.Location
	Now      func() time.Time
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	cfg    Config
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, cfg Config, logger ...*zap.Logger) Service {
	l := zap.L().Named("dashboard.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("dashboard.service")
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &service{repo: repo, rdb: rdb, sf: &singleflight.Group{}, cfg: cfg, logger: l}
}

func (s *service) Stats(ctx context.Context) (StatsResponse, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, StatsCacheKey).Result()
		if err == nil {
			var resp StatsResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn("dashboard stats cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(StatsCacheKey, func() (any, error) {
		resp, err := s.computeStats(ctx)
		if err != nil {
			return nil, err
		}
		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, StatsCacheKey, string(data), StatsCacheTTL).Err(); err != nil {
					s.logger.Warn("dashboard stats cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("dashboard stats failed",
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
		return StatsResponse{}, err
	}
	return v.(StatsResponse), nil
}

func percentage(part, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

func (s *service) computeStats(ctx context.Context) (StatsResponse, error) {
	total, err := s.repo.CountEmployees(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	pending, err := s.repo.CountPendingLeaves(ctx)
	if err != nil {
		return StatsResponse{}, err
	}
	penalties, err := s.repo.CountActivePenalties(ctx)
	if err != nil {
		return StatsResponse{}, err
	}

	now := s.cfg.Now().In(s.cfg.Location)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, s.cfg.Location)

	history := make([]DayAttendance, 0, historyDays)
	var todayCount DayCount
	for i := historyDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		count, err := s.repo.AttendanceOn(ctx, day)
		if err != nil {
			return StatsResponse{}, fmt.Errorf("attendance on %s: %w", day.Format("2006-01-02"), err)
		}
		if i == 0 {
			todayCount = count
		}
		history = append(history, DayAttendance{
			Date:       day.Format("2006-01-02"),
			Day:        day.Format("Mon"),
			Percentage: percentage(count.Present, total),
		})
	}

	return StatsResponse{
		TotalEmployees:       total,
		PendingLeaves:        pending,
		AttendancePercentage: percentage(todayCount.Present, total),
		ActivePenalties:      penalties,
		Breakdown: Breakdown{
			Present: todayCount.Present,
			Late:    todayCount.Late,
			Absent:  max(total-todayCount.Present, 0),
			Total:   total,
		},
		History: history,
	}, nil
}

// Activity merges the latest leave submissions with the latest check-ins and check-outs.
func (s *service) Activity(ctx context.Context) ([]ActivityItem, error) {
	leaves, err := s.repo.LatestLeaves(ctx, activityPerKind)
	if err != nil {
		s.logger.Error("dashboard latest leaves failed", zap.Error(err))
		return nil, err
	}
	checkIns, err := s.repo.LatestCheckIns(ctx, activityPerKind)
	if err != nil {
		s.logger.Error("dashboard latest check-ins failed", zap.Error(err))
		return nil, err
	}

	items := make([]ActivityItem, 0, len(leaves)+len(checkIns))
	for _, l := range leaves {
		items = append(items, ActivityItem{
			User:      l.Name,
			Action:    fmt.Sprintf("applied for %s leave", l.LeaveType),
			Type:      ActivityLeave,
			Timestamp: l.CreatedAt,
		})
	}
	for _, a := range checkIns {
		item := ActivityItem{User: a.Name, Action: "checked in", Type: ActivityAttendance}
		switch {
		case a.CheckOut != nil:
			item.Action = "checked out"
			item.Timestamp = *a.CheckOut
		case a.CheckIn != nil:
			item.Timestamp = *a.CheckIn
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > activityMaxItems {
		items = items[:activityMaxItems]
	}
	return items, nil
}
