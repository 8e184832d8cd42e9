package history

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Fridayxiao/arxiv-mcp-server-HTML/internal/paper"
)

type mockRepo struct {
	mu      sync.Mutex
	records map[int64]*Conversion
	nextID  int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{records: make(map[int64]*Conversion), nextID: 1}
}

func (m *mockRepo) Insert(_ context.Context, c *Conversion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID
	m.nextID++
	cp := *c
	m.records[c.ID] = &cp
	return nil
}

func (m *mockRepo) Get(_ context.Context, id int64) (*Conversion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.records[id]
	if !ok {
		return nil, &notFoundErr{}
	}
	cp := *c
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context, paperID, status string) ([]Conversion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]Conversion, 0, len(m.records))
	for _, c := range m.records {
		if paperID != "" && c.PaperID != paperID {
			continue
		}
		if status != "" && string(c.Status) != status {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

type notFoundErr struct{}

func (e *notFoundErr) Error() string { return "not found" }

func TestService_RecordTerminalJob(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	completed := time.Now().UTC()
	j := paper.Job{
		PaperID:     "2101.00001",
		Status:      paper.StatusSuccess,
		StartedAt:   completed.Add(-time.Minute),
		CompletedAt: &completed,
	}

	if err := svc.Record(context.Background(), j, "pdf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.Get(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Method != "pdf" || !got.CompletedAt.Equal(completed) {
		t.Errorf("unexpected record %+v", got)
	}
}

func TestService_RecordRejectsNonTerminal(t *testing.T) {
	svc := NewService(newMockRepo())

	j := paper.Job{PaperID: "2101.00001", Status: paper.StatusConverting, StartedAt: time.Now()}
	if err := svc.Record(context.Background(), j, ""); err == nil {
		t.Fatal("expected error for non-terminal job")
	}
}

func TestService_Get_InvalidID(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Get(context.Background(), GetConversionRequest{ID: 0}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestService_List_InvalidStatus(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.List(context.Background(), ListConversionsRequest{Status: "pending"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestService_List_Filters(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ctx := context.Background()

	now := time.Now().UTC()
	for _, j := range []paper.Job{
		{PaperID: "2101.00001", Status: paper.StatusSuccess, StartedAt: now, CompletedAt: &now},
		{PaperID: "2101.00002", Status: paper.StatusError, Error: "boom", StartedAt: now, CompletedAt: &now},
	} {
		if err := svc.Record(ctx, j, ""); err != nil {
			t.Fatal(err)
		}
	}

	got, err := svc.List(ctx, ListConversionsRequest{Status: "error"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].PaperID != "2101.00002" {
		t.Errorf("unexpected list %+v", got)
	}
}
