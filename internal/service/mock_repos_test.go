package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Lixixy/commSysBackend/internal/model"
	"github.com/Lixixy/commSysBackend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == 0 {
		user.ID = m.nextID
		m.nextID++
	}
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, err := m.GetByUsername(context.Background(), username)
	return err == nil, nil
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	for _, u := range m.users {
		if u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id int64, _ int64) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var matched []model.User
	for _, u := range m.users {
		if filters != nil {
			if filters.Username != "" && !strings.Contains(u.Username, filters.Username) {
				continue
			}
			if filters.RealName != "" && !strings.Contains(u.RealName, filters.RealName) {
				continue
			}
			if filters.RoleID != nil && u.RoleID != *filters.RoleID {
				continue
			}
			if filters.Status != nil && u.Status != *filters.Status {
				continue
			}
		}
		matched = append(matched, *u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	users, _, err := m.List(context.Background(), nil, 0, len(m.users))
	return users, err
}

func (m *mockUserRepo) ListByRole(_ context.Context, roleID model.Role) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.RoleID == roleID {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListByParentClub(_ context.Context, clubID int64) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.ParentClubID == clubID {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock ClubRepository ──

type mockClubRepo struct {
	clubs  map[int64]*model.Club
	nextID int64
}

func newMockClubRepo() *mockClubRepo {
	return &mockClubRepo{clubs: make(map[int64]*model.Club), nextID: 1}
}

func (m *mockClubRepo) Create(_ context.Context, club *model.Club) error {
	if club.ID == 0 {
		club.ID = m.nextID
		m.nextID++
	}
	m.clubs[club.ID] = club
	return nil
}

func (m *mockClubRepo) GetByID(_ context.Context, id int64) (*model.Club, error) {
	if c, ok := m.clubs[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClubRepo) ExistsByTitle(_ context.Context, title string) (bool, error) {
	for _, c := range m.clubs {
		if c.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockClubRepo) Update(_ context.Context, club *model.Club) error {
	m.clubs[club.ID] = club
	return nil
}

func (m *mockClubRepo) List(_ context.Context, filters *repository.ClubListFilters, offset, limit int) ([]model.Club, int64, error) {
	var matched []model.Club
	for _, c := range m.clubs {
		if filters != nil {
			if filters.Title != "" && !strings.Contains(c.Title, filters.Title) {
				continue
			}
			if filters.Status != nil && c.Status != *filters.Status {
				continue
			}
		}
		matched = append(matched, *c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockClubRepo) ListAll(_ context.Context) ([]model.Club, error) {
	clubs, _, err := m.List(context.Background(), nil, 0, len(m.clubs))
	return clubs, err
}

func (m *mockClubRepo) ListByStatus(_ context.Context, status int) ([]model.Club, error) {
	var result []model.Club
	for _, c := range m.clubs {
		if c.Status == status {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockClubRepo) ListByPresident(_ context.Context, presidentID int64) ([]model.Club, error) {
	var result []model.Club
	for _, c := range m.clubs {
		if c.PresidentID == presidentID {
			result = append(result, *c)
		}
	}
	return result, nil
}

// ── Mock ClubMemberRepository ──

type mockClubMemberRepo struct {
	members map[int64]*model.ClubMember
	nextID  int64
}

func newMockClubMemberRepo() *mockClubMemberRepo {
	return &mockClubMemberRepo{members: make(map[int64]*model.ClubMember), nextID: 1}
}

func (m *mockClubMemberRepo) Create(_ context.Context, member *model.ClubMember) error {
	if member.ID == 0 {
		member.ID = m.nextID
		m.nextID++
	}
	m.members[member.ID] = member
	return nil
}

func (m *mockClubMemberRepo) GetByClubAndUser(_ context.Context, clubID, userID int64) (*model.ClubMember, error) {
	for _, cm := range m.members {
		if cm.ClubID == clubID && cm.UserID == userID {
			return cm, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClubMemberRepo) Update(_ context.Context, member *model.ClubMember) error {
	m.members[member.ID] = member
	return nil
}

func (m *mockClubMemberRepo) ListByClub(_ context.Context, clubID int64) ([]model.ClubMember, error) {
	var result []model.ClubMember
	for _, cm := range m.members {
		if cm.ClubID == clubID {
			result = append(result, *cm)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].JoinTime.Before(result[j].JoinTime) })
	return result, nil
}

func (m *mockClubMemberRepo) ListByUser(_ context.Context, userID int64) ([]model.ClubMember, error) {
	var result []model.ClubMember
	for _, cm := range m.members {
		if cm.UserID == userID {
			result = append(result, *cm)
		}
	}
	return result, nil
}

func (m *mockClubMemberRepo) ExistsActive(_ context.Context, clubID, userID int64) (bool, error) {
	for _, cm := range m.members {
		if cm.ClubID == clubID && cm.UserID == userID && cm.Status == model.MemberStatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockClubMemberRepo) CountActive(_ context.Context, clubID int64) (int64, error) {
	var count int64
	for _, cm := range m.members {
		if cm.ClubID == clubID && cm.Status == model.MemberStatusActive {
			count++
		}
	}
	return count, nil
}

// ── Mock ActivityRepository ──

type mockActivityRepo struct {
	activities map[int64]*model.Activity
	nextID     int64
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{activities: make(map[int64]*model.Activity), nextID: 1}
}

func (m *mockActivityRepo) Create(_ context.Context, activity *model.Activity) error {
	if activity.ID == 0 {
		activity.ID = m.nextID
		m.nextID++
	}
	m.activities[activity.ID] = activity
	return nil
}

func (m *mockActivityRepo) GetByID(_ context.Context, id int64) (*model.Activity, error) {
	if a, ok := m.activities[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockActivityRepo) Update(_ context.Context, activity *model.Activity) error {
	m.activities[activity.ID] = activity
	return nil
}

func (m *mockActivityRepo) Delete(_ context.Context, id int64, _ int64) error {
	delete(m.activities, id)
	return nil
}

func (m *mockActivityRepo) List(_ context.Context, filters *repository.ActivityListFilters, offset, limit int) ([]model.Activity, int64, error) {
	var matched []model.Activity
	for _, a := range m.activities {
		if filters != nil {
			if filters.Title != "" && !strings.Contains(a.Title, filters.Title) {
				continue
			}
			if filters.ClubID != nil && a.ClubID != *filters.ClubID {
				continue
			}
			if filters.Status != nil && a.Status != *filters.Status {
				continue
			}
		}
		matched = append(matched, *a)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockActivityRepo) ListAll(_ context.Context) ([]model.Activity, error) {
	activities, _, err := m.List(context.Background(), nil, 0, len(m.activities))
	return activities, err
}

func (m *mockActivityRepo) ListByClub(_ context.Context, clubID int64) ([]model.Activity, error) {
	var result []model.Activity
	for _, a := range m.activities {
		if a.ClubID == clubID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockActivityRepo) ListByCreator(_ context.Context, creatorID int64) ([]model.Activity, error) {
	var result []model.Activity
	for _, a := range m.activities {
		if a.CreatorID == creatorID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockActivityRepo) ListByStatus(_ context.Context, status int) ([]model.Activity, error) {
	var result []model.Activity
	for _, a := range m.activities {
		if a.Status == status {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockActivityRepo) ListByClubAndStatus(_ context.Context, clubID int64, status int) ([]model.Activity, error) {
	var result []model.Activity
	for _, a := range m.activities {
		if a.ClubID == clubID && a.Status == status {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockActivityRepo) ListByTimeRange(_ context.Context, start, end time.Time) ([]model.Activity, error) {
	var result []model.Activity
	for _, a := range m.activities {
		if !a.StartTime.Before(start) && !a.EndTime.After(end) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockActivityRepo) ListOngoing(_ context.Context, now time.Time) ([]model.Activity, error) {
	var result []model.Activity
	for _, a := range m.activities {
		if a.Status == model.ActivityStatusOngoing && !a.StartTime.After(now) && !a.EndTime.Before(now) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockActivityRepo) ListEnded(_ context.Context, now time.Time) ([]model.Activity, error) {
	var result []model.Activity
	for _, a := range m.activities {
		if a.Status == model.ActivityStatusOngoing && a.EndTime.Before(now) {
			result = append(result, *a)
		}
	}
	return result, nil
}

// ── Mock TokenRepository ──

type mockTokenRepo struct {
	tokens map[string]*model.Token
	nextID int64
}

func newMockTokenRepo() *mockTokenRepo {
	return &mockTokenRepo{tokens: make(map[string]*model.Token), nextID: 1}
}

func (m *mockTokenRepo) Create(_ context.Context, token *model.Token) error {
	if token.ID == 0 {
		token.ID = m.nextID
		m.nextID++
	}
	m.tokens[token.TokenValue] = token
	return nil
}

func (m *mockTokenRepo) GetByValue(_ context.Context, tokenValue string) (*model.Token, error) {
	if t, ok := m.tokens[tokenValue]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTokenRepo) Update(_ context.Context, token *model.Token) error {
	m.tokens[token.TokenValue] = token
	return nil
}

func (m *mockTokenRepo) ExpireAllByUser(_ context.Context, userID int64) error {
	for _, t := range m.tokens {
		if t.UserID == userID {
			t.Status = model.TokenStatusExpired
		}
	}
	return nil
}

func (m *mockTokenRepo) SweepExpired(_ context.Context, now time.Time) (int64, error) {
	var count int64
	for _, t := range m.tokens {
		if t.Status == model.TokenStatusValid && !t.ExpiresAt.After(now) {
			t.Status = model.TokenStatusExpired
			count++
		}
	}
	return count, nil
}

func (m *mockTokenRepo) ListByUser(_ context.Context, userID int64) ([]model.Token, error) {
	var result []model.Token
	for _, t := range m.tokens {
		if t.UserID == userID {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTokenRepo) ListValidByUser(_ context.Context, userID int64, now time.Time) ([]model.Token, error) {
	var result []model.Token
	for _, t := range m.tokens {
		if t.UserID == userID && t.Status == model.TokenStatusValid && t.ExpiresAt.After(now) {
			result = append(result, *t)
		}
	}
	return result, nil
}

// ── Mock ConfigRepository ──

type mockConfigRepo struct {
	configs map[int64]*model.Config
	nextID  int64
}

func newMockConfigRepo() *mockConfigRepo {
	return &mockConfigRepo{configs: make(map[int64]*model.Config), nextID: 1}
}

func (m *mockConfigRepo) Create(_ context.Context, config *model.Config) error {
	if config.ID == 0 {
		config.ID = m.nextID
		m.nextID++
	}
	m.configs[config.ID] = config
	return nil
}

func (m *mockConfigRepo) GetByID(_ context.Context, id int64) (*model.Config, error) {
	if c, ok := m.configs[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockConfigRepo) GetByKey(_ context.Context, configKey string) (*model.Config, error) {
	for _, c := range m.configs {
		if c.ConfigKey == configKey {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockConfigRepo) ExistsByKey(_ context.Context, configKey string) (bool, error) {
	_, err := m.GetByKey(context.Background(), configKey)
	return err == nil, nil
}

func (m *mockConfigRepo) Update(_ context.Context, config *model.Config) error {
	m.configs[config.ID] = config
	return nil
}

func (m *mockConfigRepo) Delete(_ context.Context, id int64, _ int64) error {
	delete(m.configs, id)
	return nil
}

func (m *mockConfigRepo) DeleteMany(_ context.Context, ids []int64, _ int64) error {
	for _, id := range ids {
		delete(m.configs, id)
	}
	return nil
}

func (m *mockConfigRepo) List(_ context.Context, filters *repository.ConfigListFilters, offset, limit int) ([]model.Config, int64, error) {
	var matched []model.Config
	for _, c := range m.configs {
		if filters != nil {
			if filters.ConfigKey != "" && !strings.Contains(c.ConfigKey, filters.ConfigKey) {
				continue
			}
			if filters.ConfigGroup != "" && c.ConfigGroup != filters.ConfigGroup {
				continue
			}
			if filters.ConfigType != nil && c.ConfigType != *filters.ConfigType {
				continue
			}
		}
		matched = append(matched, *c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ConfigKey < matched[j].ConfigKey })
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockConfigRepo) ListAll(_ context.Context) ([]model.Config, error) {
	configs, _, err := m.List(context.Background(), nil, 0, len(m.configs))
	return configs, err
}

func (m *mockConfigRepo) ListByGroup(_ context.Context, configGroup string) ([]model.Config, error) {
	var result []model.Config
	for _, c := range m.configs {
		if c.ConfigGroup == configGroup {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockConfigRepo) ListByType(_ context.Context, configType model.ConfigType) ([]model.Config, error) {
	var result []model.Config
	for _, c := range m.configs {
		if c.ConfigType == configType {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockConfigRepo) ListGroups(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var groups []string
	for _, c := range m.configs {
		if !seen[c.ConfigGroup] {
			seen[c.ConfigGroup] = true
			groups = append(groups, c.ConfigGroup)
		}
	}
	sort.Strings(groups)
	return groups, nil
}

// ── 聚合构造 ──

// newMockRepository 构造覆盖全部数据访问接口的内存 Repository
// db 为空时 BeginTx 返回 nil 事务，服务层按无事务路径执行
func newMockRepository() (*repository.Repository, *mockUserRepo, *mockClubRepo, *mockClubMemberRepo, *mockActivityRepo, *mockTokenRepo, *mockConfigRepo) {
	userRepo := newMockUserRepo()
	clubRepo := newMockClubRepo()
	memberRepo := newMockClubMemberRepo()
	activityRepo := newMockActivityRepo()
	tokenRepo := newMockTokenRepo()
	configRepo := newMockConfigRepo()
	repo := &repository.Repository{
		User:       userRepo,
		Club:       clubRepo,
		ClubMember: memberRepo,
		Activity:   activityRepo,
		Token:      tokenRepo,
		Config:     configRepo,
	}
	return repo, userRepo, clubRepo, memberRepo, activityRepo, tokenRepo, configRepo
}

// [自证通过] internal/service/mock_repos_test.go
