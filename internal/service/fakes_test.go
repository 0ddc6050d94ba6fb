package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"rag-chat-be/internal/constant"
	"rag-chat-be/internal/entity"
	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/internal/repository/unitofwork"
	"rag-chat-be/pkg/llm"
)

// In-memory doubles for the repository layer. Writes go to a staging area on
// Begin and only land on Commit, mirroring the transactional contract.

type fakeStore struct {
	mu       sync.Mutex
	chunks   []*entity.DocumentChunk
	messages []*entity.ChatHistory
	nextId   int64
	now      time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{nextId: 1, now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (s *fakeStore) tick() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

type fakeUnitOfWork struct {
	store *fakeStore

	inTx           bool
	committed      bool
	stagedChunks   []*entity.DocumentChunk
	stagedMessages []*entity.ChatHistory

	chunkErr   error
	chatErr    error
	searchHits []*entity.DocumentChunk
}

type fakeFactory struct {
	store *fakeStore
	// lastUow captures the most recent unit of work for assertions.
	lastUow *fakeUnitOfWork

	chunkErr   error
	chatErr    error
	searchHits []*entity.DocumentChunk
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: newFakeStore()}
}

var _ unitofwork.RepositoryFactory = (*fakeFactory)(nil)

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	f.lastUow = &fakeUnitOfWork{
		store:      f.store,
		chunkErr:   f.chunkErr,
		chatErr:    f.chatErr,
		searchHits: f.searchHits,
	}
	return f.lastUow
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	u.inTx = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if !u.inTx {
		return errors.New("commit outside transaction")
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.chunks = append(u.store.chunks, u.stagedChunks...)
	u.store.messages = append(u.store.messages, u.stagedMessages...)
	u.stagedChunks = nil
	u.stagedMessages = nil
	u.inTx = false
	u.committed = true
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.stagedChunks = nil
	u.stagedMessages = nil
	u.inTx = false
	return nil
}

// --- DocumentChunkRepository ---

type fakeChunkRepo struct{ uow *fakeUnitOfWork }

func (u *fakeUnitOfWork) DocumentChunkRepository() contract.DocumentChunkRepository {
	return &fakeChunkRepo{uow: u}
}

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if r.uow.chunkErr != nil {
		return r.uow.chunkErr
	}
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range chunks {
		c.Id = s.nextId
		s.nextId++
		c.CreatedAt = s.tick()
	}
	r.uow.stagedChunks = append(r.uow.stagedChunks, chunks...)
	return nil
}

func l2Distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		var bv float64
		if i < len(b) {
			bv = float64(b[i])
		}
		d := float64(a[i]) - bv
		sum += d * d
	}
	return sum
}

func (r *fakeChunkRepo) SearchNearest(ctx context.Context, embedding []float32, limit int) ([]*entity.DocumentChunk, error) {
	if r.uow.chunkErr != nil {
		return nil, r.uow.chunkErr
	}
	if r.uow.searchHits != nil {
		if len(r.uow.searchHits) > limit {
			return r.uow.searchHits[:limit], nil
		}
		return r.uow.searchHits, nil
	}
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*entity.DocumentChunk, len(s.chunks))
	copy(result, s.chunks)
	sort.SliceStable(result, func(i, j int) bool {
		return l2Distance(embedding, result[i].Embedding) < l2Distance(embedding, result[j].Embedding)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeChunkRepo) Count(ctx context.Context) (int64, error) {
	if r.uow.chunkErr != nil {
		return 0, r.uow.chunkErr
	}
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.chunks)), nil
}

func (r *fakeChunkRepo) First(ctx context.Context) (*entity.DocumentChunk, error) {
	if r.uow.chunkErr != nil {
		return nil, r.uow.chunkErr
	}
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.chunks) == 0 {
		return nil, nil
	}
	return s.chunks[0], nil
}

func (r *fakeChunkRepo) DeleteAll(ctx context.Context) error {
	if r.uow.chunkErr != nil {
		return r.uow.chunkErr
	}
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
	return nil
}

// --- ChatHistoryRepository ---

type fakeChatRepo struct{ uow *fakeUnitOfWork }

func (u *fakeUnitOfWork) ChatHistoryRepository() contract.ChatHistoryRepository {
	return &fakeChatRepo{uow: u}
}

func (r *fakeChatRepo) Create(ctx context.Context, message *entity.ChatHistory) error {
	if r.uow.chatErr != nil {
		return r.uow.chatErr
	}
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	message.Id = s.nextId
	s.nextId++
	message.CreatedAt = s.tick()
	r.uow.stagedMessages = append(r.uow.stagedMessages, message)
	return nil
}

func (r *fakeChatRepo) FindByConversationId(ctx context.Context, conversationId string) ([]*entity.ChatHistory, error) {
	if r.uow.chatErr != nil {
		return nil, r.uow.chatErr
	}
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []*entity.ChatHistory{}
	for _, m := range s.messages {
		if m.ConversationId == conversationId {
			result = append(result, m)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeChatRepo) ListConversations(ctx context.Context) ([]*entity.ConversationSummary, error) {
	if r.uow.chatErr != nil {
		return nil, r.uow.chatErr
	}
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()

	type agg struct {
		minContent string
		minCreated time.Time
		lastSeen   time.Time
	}
	byConv := map[string]*agg{}
	for _, m := range s.messages {
		if m.Role != constant.ChatMessageRoleUser {
			continue
		}
		a, ok := byConv[m.ConversationId]
		if !ok {
			byConv[m.ConversationId] = &agg{minContent: m.Content, minCreated: m.CreatedAt, lastSeen: m.CreatedAt}
			continue
		}
		if m.Content < a.minContent {
			a.minContent = m.Content
		}
		if m.CreatedAt.Before(a.minCreated) {
			a.minCreated = m.CreatedAt
		}
		if m.CreatedAt.After(a.lastSeen) {
			a.lastSeen = m.CreatedAt
		}
	}

	summaries := make([]*entity.ConversationSummary, 0, len(byConv))
	for id, a := range byConv {
		summaries = append(summaries, &entity.ConversationSummary{
			ConversationId: id,
			FirstMessage:   a.minContent,
			CreatedAt:      a.minCreated,
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return byConv[summaries[i].ConversationId].lastSeen.After(byConv[summaries[j].ConversationId].lastSeen)
	})
	return summaries, nil
}

func (r *fakeChatRepo) DeleteAll(ctx context.Context) error {
	if r.uow.chatErr != nil {
		return r.uow.chatErr
	}
	s := r.uow.store
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	return nil
}

// --- Providers ---

type fakeEmbedder struct {
	calls []string
	vec   []float32
	err   error
}

func (e *fakeEmbedder) Embed(ctx context.Context, text string, dimension int) ([]float32, error) {
	e.calls = append(e.calls, text)
	if e.err != nil {
		return nil, e.err
	}
	if e.vec != nil {
		return e.vec, nil
	}
	vec := make([]float32, dimension)
	for i := range vec {
		vec[i] = float32(len(text)%7) / 7
	}
	return vec, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeLLM struct {
	gotHistory []llm.Message
	gotOptions llm.Options
	answer     string
	err        error
}

func (l *fakeLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	l.gotHistory = history
	for _, opt := range opts {
		opt(&l.gotOptions)
	}
	if l.err != nil {
		return "", l.err
	}
	return l.answer, nil
}
