package service

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/model"
	"github.com/mathieu-neron/ViewTube/viewtube-go/internal/repository"
)

// memDB mimics the postgres schema closely enough to exercise the services:
// unique constraints, the derived channel video list and the conditional
// reaction update.
type memDB struct {
	mu       sync.Mutex
	clock    time.Time
	accounts map[uuid.UUID]model.Account
	channels map[uuid.UUID]model.Channel
	videos   map[uuid.UUID]model.Video
	comments map[uuid.UUID]model.Comment
}

func newMemDB() *memDB {
	return &memDB{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		accounts: map[uuid.UUID]model.Account{},
		channels: map[uuid.UUID]model.Channel{},
		videos:   map[uuid.UUID]model.Video{},
		comments: map[uuid.UUID]model.Comment{},
	}
}

func (m *memDB) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memDB) owner(id uuid.UUID) *model.OwnerSummary {
	a := m.accounts[id]
	return &model.OwnerSummary{ID: id, UserName: a.UserName, ProfilePic: a.ProfilePic}
}

func (m *memDB) addAccount(userName string) uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := uuid.New()
	now := m.tick()
	m.accounts[id] = model.Account{
		ID: id, UserName: userName, Email: userName + "@example.com",
		Role: model.DefaultRole, CreatedAt: now, UpdatedAt: now,
	}
	return id
}

type memAccounts struct{ *memDB }

func (s memAccounts) Create(_ context.Context, a *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts {
		if existing.Email == a.Email || existing.UserName == a.UserName {
			return repository.ErrDuplicate
		}
	}
	a.CreatedAt = s.tick()
	a.UpdatedAt = a.CreatedAt
	s.accounts[a.ID] = *a
	return nil
}

func (s memAccounts) FindByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &a, nil
}

func (s memAccounts) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s memAccounts) ExistsByEmailOrUserName(_ context.Context, email, userName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == email || a.UserName == userName {
			return true, nil
		}
	}
	return false, nil
}

func (s memAccounts) ChannelIDFor(_ context.Context, accountID uuid.UUID) (*uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.channels {
		if ch.OwnerID == accountID {
			id := ch.ID
			return &id, nil
		}
	}
	return nil, nil
}

func (s memAccounts) GetStats(_ context.Context) (*model.StatsResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &model.StatsResponse{
		TotalAccounts:    len(s.accounts),
		TotalChannels:    len(s.channels),
		TotalVideos:      len(s.videos),
		TotalComments:    len(s.comments),
		VideosByCategory: map[string]int{},
	}
	for _, v := range s.videos {
		stats.VideosByCategory[v.Category]++
	}
	return stats, nil
}

type memChannels struct{ *memDB }

func (s memChannels) Create(_ context.Context, ch *model.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.channels {
		if existing.ChannelName == ch.ChannelName || existing.OwnerID == ch.OwnerID {
			return repository.ErrDuplicate
		}
	}
	ch.CreatedAt = s.tick()
	ch.UpdatedAt = ch.CreatedAt
	s.channels[ch.ID] = *ch
	return nil
}

func (s memChannels) FindByID(_ context.Context, id uuid.UUID) (*model.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.channels[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	ch.Owner = s.owner(ch.OwnerID)
	return &ch, nil
}

func (s memChannels) FindByOwner(_ context.Context, ownerID uuid.UUID) (*model.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.channels {
		if ch.OwnerID == ownerID {
			ch.Owner = s.owner(ch.OwnerID)
			return &ch, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s memChannels) List(_ context.Context) ([]model.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Channel{}
	for _, ch := range s.channels {
		ch.Owner = s.owner(ch.OwnerID)
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s memChannels) Update(_ context.Context, id uuid.UUID, patch model.ChannelPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.channels[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if patch.ChannelName != nil {
		for otherID, other := range s.channels {
			if otherID != id && other.ChannelName == *patch.ChannelName {
				return repository.ErrDuplicate
			}
		}
		ch.ChannelName = *patch.ChannelName
	}
	if patch.Description != nil {
		ch.Description = *patch.Description
	}
	if patch.ChannelBanner != nil {
		ch.ChannelBanner = *patch.ChannelBanner
	}
	ch.UpdatedAt = s.tick()
	s.channels[id] = ch
	return nil
}

func (s memChannels) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.channels[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.channels, id)
	for vid, v := range s.videos {
		if v.ChannelID != nil && *v.ChannelID == id {
			v.ChannelID = nil
			s.videos[vid] = v
		}
	}
	return nil
}

type memVideos struct{ *memDB }

func (s memVideos) hydrate(v model.Video) model.Video {
	v.Owner = s.owner(v.OwnerID)
	v.Channel = nil
	if v.ChannelID != nil {
		if ch, ok := s.channels[*v.ChannelID]; ok {
			v.Channel = &model.ChannelSummary{ID: ch.ID, ChannelName: ch.ChannelName, Subscribers: ch.Subscribers}
		}
	}
	v.LikedBy = slices.Clone(v.LikedBy)
	v.DislikedBy = slices.Clone(v.DislikedBy)
	return v
}

func (s memVideos) filter(keep func(model.Video) bool) []model.Video {
	out := []model.Video{}
	for _, v := range s.videos {
		if keep(v) {
			out = append(out, s.hydrate(v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s memVideos) Create(_ context.Context, v *model.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.CreatedAt = s.tick()
	v.UpdatedAt = v.CreatedAt
	v.LikedBy = []uuid.UUID{}
	v.DislikedBy = []uuid.UUID{}
	s.videos[v.ID] = *v
	return nil
}

func (s memVideos) FindByID(_ context.Context, id uuid.UUID) (*model.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	v = s.hydrate(v)
	return &v, nil
}

func (s memVideos) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.videos[id]
	return ok, nil
}

func (s memVideos) List(_ context.Context) ([]model.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(model.Video) bool { return true }), nil
}

func (s memVideos) ListByChannel(_ context.Context, channelID uuid.UUID) ([]model.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(v model.Video) bool { return v.ChannelID != nil && *v.ChannelID == channelID }), nil
}

func (s memVideos) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]model.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(v model.Video) bool { return v.OwnerID == ownerID }), nil
}

func (s memVideos) Update(_ context.Context, id uuid.UUID, patch model.VideoPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[id]
	if !ok {
		return pgx.ErrNoRows
	}
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&v.Title, patch.Title)
	set(&v.Description, patch.Description)
	set(&v.Thumbnail, patch.Thumbnail)
	set(&v.VideoLink, patch.VideoLink)
	set(&v.Category, patch.Category)
	v.UpdatedAt = s.tick()
	s.videos[id] = v
	return nil
}

func (s memVideos) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.videos[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.videos, id)
	for cid, cm := range s.comments {
		if cm.VideoID == id {
			delete(s.comments, cid)
		}
	}
	return nil
}

func (s memVideos) React(_ context.Context, videoID, accountID uuid.UUID, reaction model.Reaction) (*model.ReactionResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.videos[videoID]
	if !ok {
		return nil, pgx.ErrNoRows
	}

	target, opposite := &v.LikedBy, &v.DislikedBy
	targetCount, oppositeCount := &v.Like, &v.Dislike
	if reaction == model.ReactionDislike {
		target, opposite = opposite, target
		targetCount, oppositeCount = oppositeCount, targetCount
	}
	if slices.Contains(*target, accountID) {
		return nil, repository.ErrAlreadyReacted
	}

	*target = append(*target, accountID)
	*targetCount++
	if i := slices.Index(*opposite, accountID); i >= 0 {
		*opposite = slices.Delete(*opposite, i, i+1)
		*oppositeCount = max(*oppositeCount-1, 0)
	}
	s.videos[videoID] = v
	return &model.ReactionResponse{Like: v.Like, Dislike: v.Dislike}, nil
}

type memComments struct{ *memDB }

func (s memComments) Create(_ context.Context, cm *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cm.CreatedAt = s.tick()
	cm.UpdatedAt = cm.CreatedAt
	s.comments[cm.ID] = *cm
	return nil
}

func (s memComments) FindByID(_ context.Context, id uuid.UUID) (*model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cm, ok := s.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cm.Author = s.owner(cm.AuthorID)
	return &cm, nil
}

func (s memComments) ListByVideo(_ context.Context, videoID uuid.UUID) ([]model.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Comment{}
	for _, cm := range s.comments {
		if cm.VideoID == videoID {
			cm.Author = s.owner(cm.AuthorID)
			out = append(out, cm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s memComments) UpdateMessage(_ context.Context, id uuid.UUID, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cm, ok := s.comments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	cm.Message = message
	cm.UpdatedAt = s.tick()
	s.comments[id] = cm
	return nil
}

func (s memComments) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.comments, id)
	return nil
}

// fixture wires every service onto one shared memDB.
type fixture struct {
	db       *memDB
	channels *ChannelService
	videos   *VideoService
	comments *CommentService
}

func newFixture() *fixture {
	m := newMemDB()
	return &fixture{
		db:       m,
		channels: NewChannelService(memChannels{m}, memVideos{m}),
		videos:   NewVideoService(memVideos{m}, memChannels{m}),
		comments: NewCommentService(memComments{m}, memVideos{m}),
	}
}

func validUpload(title string) model.UploadVideoRequest {
	return model.UploadVideoRequest{
		Title:       title,
		Description: "a description",
		Thumbnail:   "https://img.example.com/t.png",
		VideoLink:   "https://cdn.example.com/v.mp4",
		Category:    model.CategoryMusic,
	}
}
