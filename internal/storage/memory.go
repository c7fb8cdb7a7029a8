package storage

import "sync"

// Memory keeps blobs in a map. A positive maxBytes caps the total size of
// all stored values.
type Memory struct {
	mu       sync.RWMutex
	data     map[string][]byte
	maxBytes int
}

// NewMemory creates an empty Memory store. maxBytes <= 0 means unlimited.
func NewMemory(maxBytes int) *Memory {
	return &Memory{data: make(map[string][]byte), maxBytes: maxBytes}
}

func (m *Memory) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxBytes > 0 {
		used := len(data)
		for k, v := range m.data {
			if k != key {
				used += len(v)
			}
		}
		if used > m.maxBytes {
			return ErrQuotaExceeded
		}
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Load(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}
