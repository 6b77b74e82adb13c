package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"networking-hub/internal/models"
	"networking-hub/internal/repositories"
)

// Event is the closed set of domain events the dispatcher reacts to.
type Event interface {
	event()
}

// FollowEvent fires when one user starts following another.
type FollowEvent struct {
	FollowerID   int64
	FollowerName string
	TargetID     int64
}

// PostCreatedEvent fires when a post is published. It fans out to the
// author's followers and to skill-matched profiles.
type PostCreatedEvent struct {
	AuthorID   int64
	AuthorName string
	PostID     uint
	Content    string
	SkillTags  []string
}

// ResponseEvent fires when a user responds to a post.
type ResponseEvent struct {
	ResponderID   int64
	ResponderName string
	PostID        uint
	PostOwnerID   int64
}

func (FollowEvent) event()      {}
func (PostCreatedEvent) event() {}
func (ResponseEvent) event()    {}

// Dispatcher computes recipient sets per event and hands delivery to
// the channel through a bounded worker pool. Delivery is best-effort
// and decoupled from the triggering request.
type Dispatcher struct {
	channel       Channel
	profiles      repositories.ProfileRepository
	follows       repositories.FollowRepository
	notifications repositories.NotificationRepository
	links         LinkBuilder
	logger        *zap.Logger

	events chan Event
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. Run must be called before events
// are dispatched.
func NewDispatcher(
	channel Channel,
	profileRepo repositories.ProfileRepository,
	followRepo repositories.FollowRepository,
	notifRepo repositories.NotificationRepository,
	links LinkBuilder,
	logger *zap.Logger,
) *Dispatcher {
	return &Dispatcher{
		channel:       channel,
		profiles:      profileRepo,
		follows:       followRepo,
		notifications: notifRepo,
		links:         links,
		logger:        logger,
		events:        make(chan Event, 256),
	}
}

// Run starts the worker pool and blocks until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context, workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case ev := <-d.events:
					d.process(ctx, ev)
				}
			}
		}()
	}
	<-ctx.Done()
	d.wg.Wait()
}

// Dispatch enqueues an event without blocking the request path. When
// the queue is full the event is dropped and logged; delivery is
// best-effort by contract.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.events <- ev:
	default:
		d.logger.Warn("event queue full, dropping event", zap.Any("event", ev))
	}
}

func (d *Dispatcher) process(ctx context.Context, ev Event) {
	switch e := ev.(type) {
	case FollowEvent:
		d.handleFollow(ctx, e)
	case PostCreatedEvent:
		d.notifyFollowers(ctx, e)
		d.notifySkillMatches(ctx, e)
	case ResponseEvent:
		d.handleResponse(ctx, e)
	}
}

// handleFollow notifies the followed user. The in-app notification row
// is written before the delivery attempt so the list stays correct even
// when the send fails. No cap applies.
func (d *Dispatcher) handleFollow(ctx context.Context, e FollowEvent) {
	msg := fmt.Sprintf("%s подписался на тебя", e.FollowerName)
	notif := &models.Notification{
		RecipientID: e.TargetID,
		Kind:        models.KindFollow,
		ActorID:     e.FollowerID,
		Message:     msg,
	}
	if err := d.notifications.CreateNotification(notif); err != nil {
		d.logger.Error("failed to persist follow notification",
			zap.Int64("recipient_id", e.TargetID),
			zap.Error(err),
		)
		return
	}

	button := &Button{Text: "👤 Открыть профиль", URL: d.links.ProfileLink(e.FollowerID)}
	if err := d.channel.Send(ctx, e.TargetID, "👤 "+msg, button); err != nil {
		d.logger.Warn("failed to deliver follow notification",
			zap.Int64("recipient_id", e.TargetID),
			zap.Error(err),
		)
	}
}

// notifyFollowers fans a new post out to every follower of its author.
// No cap, no persisted rows; per-recipient failures are logged and do
// not abort the remaining sends.
func (d *Dispatcher) notifyFollowers(ctx context.Context, e PostCreatedEvent) {
	followerIDs, err := d.follows.GetFollowerIDs(e.AuthorID)
	if err != nil {
		d.logger.Error("failed to load followers", zap.Int64("author_id", e.AuthorID), zap.Error(err))
		return
	}
	if len(followerIDs) == 0 {
		return
	}

	text := fmt.Sprintf("📝 <b>%s</b> опубликовал пост:\n\n%s", e.AuthorName, Preview(e.Content))
	button := &Button{Text: "📖 Открыть пост", URL: d.links.PostLink(e.PostID)}

	for _, followerID := range followerIDs {
		if err := d.channel.Send(ctx, followerID, text, button); err != nil {
			d.logger.Warn("failed to notify follower",
				zap.Int64("follower_id", followerID),
				zap.Uint("post_id", e.PostID),
				zap.Error(err),
			)
		}
	}
}

// notifySkillMatches notifies every profile whose skills intersect the
// post's tags, case-insensitively, excluding the author. Each recipient
// must first win a slot against the daily cap; a reserved slot is not
// released on send failure.
func (d *Dispatcher) notifySkillMatches(ctx context.Context, e PostCreatedEvent) {
	if len(e.SkillTags) == 0 {
		return
	}

	profiles, err := d.profiles.GetProfilesWithSkills()
	if err != nil {
		d.logger.Error("failed to load profiles for skill match", zap.Error(err))
		return
	}

	tags := make(map[string]bool, len(e.SkillTags))
	for _, t := range e.SkillTags {
		tags[strings.ToLower(t)] = true
	}

	shown := e.SkillTags
	if len(shown) > 3 {
		shown = shown[:3]
	}
	text := fmt.Sprintf("🎯 Новый пост по вашим навыкам (<b>%s</b>):\n\n%s",
		strings.Join(shown, ", "), Preview(e.Content))
	button := &Button{Text: "📖 Открыть пост", URL: d.links.PostLink(e.PostID)}
	today := time.Now().Format("2006-01-02")

	for _, profile := range profiles {
		if profile.UserID == e.AuthorID {
			continue
		}
		if !skillsIntersect(profile.Skills, tags) {
			continue
		}

		ok, err := d.notifications.ReserveDailySlot(profile.UserID, today, models.KindSkillMatch, models.SkillMatchDailyCap)
		if err != nil {
			d.logger.Error("failed to check daily cap",
				zap.Int64("user_id", profile.UserID),
				zap.Error(err),
			)
			continue
		}
		if !ok {
			d.logger.Debug("daily skill_match cap reached", zap.Int64("user_id", profile.UserID))
			continue
		}

		postID := e.PostID
		notif := &models.Notification{
			RecipientID: profile.UserID,
			Kind:        models.KindSkillMatch,
			ActorID:     e.AuthorID,
			PostID:      &postID,
			Message:     text,
		}
		if err := d.notifications.CreateNotification(notif); err != nil {
			d.logger.Error("failed to persist skill_match notification",
				zap.Int64("user_id", profile.UserID),
				zap.Error(err),
			)
		}

		if err := d.channel.Send(ctx, profile.UserID, text, button); err != nil {
			d.logger.Warn("failed to deliver skill_match notification",
				zap.Int64("user_id", profile.UserID),
				zap.Uint("post_id", e.PostID),
				zap.Error(err),
			)
		}
	}
}

// handleResponse notifies a post's owner that someone responded. The
// row is written before the delivery attempt, like follows. No cap.
func (d *Dispatcher) handleResponse(ctx context.Context, e ResponseEvent) {
	msg := fmt.Sprintf("%s откликнулся на твой пост", e.ResponderName)
	postID := e.PostID
	notif := &models.Notification{
		RecipientID: e.PostOwnerID,
		Kind:        models.KindResponseRequest,
		ActorID:     e.ResponderID,
		PostID:      &postID,
		Message:     msg,
	}
	if err := d.notifications.CreateNotification(notif); err != nil {
		d.logger.Error("failed to persist response notification",
			zap.Int64("recipient_id", e.PostOwnerID),
			zap.Error(err),
		)
		return
	}

	button := &Button{Text: "📄 Открыть пост", URL: d.links.PostLink(e.PostID)}
	if err := d.channel.Send(ctx, e.PostOwnerID, "💬 "+msg, button); err != nil {
		d.logger.Warn("failed to deliver response notification",
			zap.Int64("recipient_id", e.PostOwnerID),
			zap.Error(err),
		)
	}
}

// skillsIntersect reports whether the JSON-encoded skill list shares at
// least one skill with the lowercased tag set.
func skillsIntersect(skillsJSON string, tags map[string]bool) bool {
	var skills []string
	if err := json.Unmarshal([]byte(skillsJSON), &skills); err != nil {
		return false
	}
	for _, s := range skills {
		if tags[strings.ToLower(s)] {
			return true
		}
	}
	return false
}
