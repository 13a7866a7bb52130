package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesFetched    int64
	DuplicatesFiltered int64
	SourceFailures     int64
	BatchesServed      int64
	AIRequests         int64
	AIFallbacks        int64
	ChatQueries        int64

	// Timings
	LastBatchDuration    time.Duration
	TotalBatchDuration   time.Duration
	AverageBatchDuration time.Duration
	BatchCount           int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddArticlesFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFetched += int64(n)
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementSourceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourceFailures++
}

func (m *Metrics) IncrementBatchesServed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BatchesServed++
}

func (m *Metrics) IncrementAIRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AIRequests++
}

func (m *Metrics) IncrementAIFallbacks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AIFallbacks++
}

func (m *Metrics) IncrementChatQueries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChatQueries++
}

func (m *Metrics) RecordBatchDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastBatchDuration = duration
	m.TotalBatchDuration += duration
	m.BatchCount++
	m.AverageBatchDuration = m.TotalBatchDuration / time.Duration(m.BatchCount)
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"articles_fetched":       m.ArticlesFetched,
		"duplicates_filtered":    m.DuplicatesFiltered,
		"source_failures":        m.SourceFailures,
		"batches_served":         m.BatchesServed,
		"ai_requests":            m.AIRequests,
		"ai_fallbacks":           m.AIFallbacks,
		"chat_queries":           m.ChatQueries,
		"last_batch_duration_ms": m.LastBatchDuration.Milliseconds(),
		"avg_batch_duration_ms":  m.AverageBatchDuration.Milliseconds(),
		"last_run_time":          m.LastRunTime.Format(time.RFC3339),
		"last_error_time":        m.LastErrorTime.Format(time.RFC3339),
		"last_error":             m.LastError,
		"is_healthy":             m.IsHealthy,
	}
}
