package shipment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"freightdesk/pkg/platform/sentinel"
)

type memoryRecord struct {
	shipment Shipment
	seq      uint64
}

// InMemoryStore keeps shipments in process memory, guarded by a mutex.
// Development and test use only.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	nextSeq uint64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]memoryRecord)}
}

func (s *InMemoryStore) Create(_ context.Context, shipment Shipment) (Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	shipment.ID = uuid.NewString()
	shipment.CreatedAt = now
	shipment.UpdatedAt = now

	s.nextSeq++
	s.records[shipment.ID] = memoryRecord{shipment: shipment, seq: s.nextSeq}
	return shipment, nil
}

func (s *InMemoryStore) FindOwned(_ context.Context, id, ownerID string) (Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok || rec.shipment.OwnerID != ownerID {
		return Shipment{}, sentinel.ErrNotFound
	}
	return rec.shipment, nil
}

func (s *InMemoryStore) ListOwned(_ context.Context, ownerID string) ([]Shipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := make([]memoryRecord, 0)
	for _, rec := range s.records {
		if rec.shipment.OwnerID == ownerID {
			owned = append(owned, rec)
		}
	}
	// Most recent first; the insertion sequence breaks creation-time ties.
	sort.Slice(owned, func(i, j int) bool {
		if owned[i].shipment.CreatedAt.Equal(owned[j].shipment.CreatedAt) {
			return owned[i].seq > owned[j].seq
		}
		return owned[i].shipment.CreatedAt.After(owned[j].shipment.CreatedAt)
	})

	shipments := make([]Shipment, len(owned))
	for i, rec := range owned {
		shipments[i] = rec.shipment
	}
	return shipments, nil
}

func (s *InMemoryStore) CountOwned(_ context.Context, ownerID string, status *Status) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, rec := range s.records {
		if rec.shipment.OwnerID != ownerID {
			continue
		}
		if status != nil && rec.shipment.Status != *status {
			continue
		}
		count++
	}
	return count, nil
}

func (s *InMemoryStore) Update(_ context.Context, shipment Shipment) (Shipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[shipment.ID]
	if !ok || rec.shipment.OwnerID != shipment.OwnerID {
		return Shipment{}, sentinel.ErrNotFound
	}
	rec.shipment = shipment
	s.records[shipment.ID] = rec
	return shipment, nil
}

func (s *InMemoryStore) Delete(_ context.Context, shipment Shipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[shipment.ID]
	if !ok || rec.shipment.OwnerID != shipment.OwnerID {
		return sentinel.ErrNotFound
	}
	delete(s.records, shipment.ID)
	return nil
}
