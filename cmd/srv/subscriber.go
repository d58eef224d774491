package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ujdhesa/unisubs/internal/entity"
	"github.com/ujdhesa/unisubs/internal/model"
	"github.com/ujdhesa/unisubs/pkg/kafka"
	"github.com/ujdhesa/unisubs/pkg/pubsub"
	"github.com/ujdhesa/unisubs/pkg/xcontext"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slices"
)

const notificationTopic = "notifications"

func (s *srv) startSubscriber(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedisClient()
	s.loadRepos()

	cfg := xcontext.Configs(s.ctx)
	s.subscriber = kafka.NewSubscriber(
		cfg.Env+"-notifications",
		[]string{cfg.Kafka.Addr},
		[]string{notificationTopic},
		s.handleNotification,
	)

	xcontext.Logger(s.ctx).Infof("Notification subscriber started")
	s.subscriber.Subscribe(s.ctx)
	<-s.ctx.Done()

	return nil
}

// handleNotification fans a workflow event out to the managers of its team.
// Delivery here is just a log line, the notification transport is owned by
// another service consuming the same topic.
func (s *srv) handleNotification(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var event struct {
		model.CollaborationCompleteEvent
		TaskID string `json:"task_id"`
		Type   string `json:"type"`
	}

	if err := json.Unmarshal(pack.Msg, &event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal notification event: %v", err)
		return
	}

	members, err := s.teamMemberRepo.GetListByTeamID(ctx, event.TeamID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get members of team %s: %v", event.TeamID, err)
		return
	}

	for _, member := range members {
		if !slices.Contains(entity.ManagerRoles, member.Role) {
			continue
		}

		if event.TaskID != "" {
			xcontext.Logger(ctx).Infof(
				"Notify %s: %s task of video %s (%s) completed at %s",
				member.UserID, event.Type, event.VideoID, event.LanguageCode, t.Format(time.RFC3339))
		} else {
			xcontext.Logger(ctx).Infof(
				"Notify %s: subtitles of video %s (%s) are complete at %s",
				member.UserID, event.VideoID, event.LanguageCode, t.Format(time.RFC3339))
		}
	}
}
