package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/logger"
	"github.com/iWorld-y/painpoint_scout/app/scout/pkg/model"
)

// StorageKey 收藏列表的固定存储键
const StorageKey = "painpoint_favorites"

// ErrNotFound 存储键不存在
var ErrNotFound = errors.New("favorites: key not found")

// Backend 收藏列表的持久化后端，按键读写整块数据
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

// Store 收藏列表：id → 收藏时刻的完整快照，保持收藏顺序
type Store struct {
	backend Backend

	mu     sync.RWMutex
	points []model.PainPoint
}

// NewStore 创建收藏存储，需调用 Load 载入已有数据
func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// Load 从后端载入收藏列表。数据损坏时静默丢弃并从空列表开始，
// 只有后端读取本身出错才返回错误。
func (s *Store) Load() error {
	data, err := s.backend.Read(StorageKey)
	if errors.Is(err, ErrNotFound) {
		s.replace(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read favorites: %w", err)
	}

	points, err := Decode(data)
	if err != nil {
		logger.Log.Warnf("收藏数据损坏，已丢弃: %v", err)
		points = nil
	}
	s.replace(points)
	return nil
}

// Save 将当前收藏列表写回后端
func (s *Store) Save() error {
	s.mu.RLock()
	data, err := Encode(s.points)
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := s.backend.Write(StorageKey, data); err != nil {
		return fmt.Errorf("write favorites: %w", err)
	}
	return nil
}

// Toggle 切换收藏状态并立即持久化，返回切换后是否处于收藏中。
// 持久化失败时内存中的变更仍然保留，错误交由调用方处理。
func (s *Store) Toggle(p model.PainPoint) (bool, error) {
	s.mu.Lock()
	idx := s.indexOf(p.ID)
	favorite := idx < 0
	if favorite {
		s.points = append(s.points, p.Clone())
	} else {
		s.points = append(s.points[:idx:idx], s.points[idx+1:]...)
	}
	s.mu.Unlock()

	return favorite, s.Save()
}

// Contains 是否已收藏
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// Get 返回收藏快照
func (s *Store) Get(id string) (model.PainPoint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.points[i].Clone(), true
	}
	return model.PainPoint{}, false
}

// List 按收藏顺序返回快照副本
func (s *Store) List() []model.PainPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := model.ClonePoints(s.points)
	if out == nil {
		out = []model.PainPoint{}
	}
	return out
}

// Len 收藏数量
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

func (s *Store) indexOf(id string) int {
	for i, p := range s.points {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) replace(points []model.PainPoint) {
	s.mu.Lock()
	s.points = points
	s.mu.Unlock()
}

// Encode 序列化为 JSON 数组
func Encode(points []model.PainPoint) ([]byte, error) {
	if points == nil {
		points = []model.PainPoint{}
	}
	data, err := json.Marshal(points)
	if err != nil {
		return nil, fmt.Errorf("encode favorites: %w", err)
	}
	return data, nil
}

// Decode 反序列化 JSON 数组，重复 id 只保留第一次出现
func Decode(data []byte) ([]model.PainPoint, error) {
	var points []model.PainPoint
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	seen := make(map[string]bool, len(points))
	out := points[:0]
	for _, p := range points {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out, nil
}
