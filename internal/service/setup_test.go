package service

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/db"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/domain"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/intelligence"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/llm"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/repository"
	"github.com/avrvenkatesa/multi-project-tracker-sub004/internal/testutil"
	"go.uber.org/zap"
)

type fixture struct {
	db       *sql.DB
	projects *repository.SQLiteProjectRepo
	stores   repository.WorkItemStores
	history  *repository.SQLiteEstimateHistoryRepo
	deps     *repository.SQLiteDependencyRepo
	usage    *repository.SQLiteUsageRepo
	project  *domain.Project
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, testutil.NewTestDB(t))
}

func newFixtureOn(t *testing.T, conn *sql.DB) *fixture {
	t.Helper()
	f := &fixture{
		db:       conn,
		projects: repository.NewSQLiteProjectRepo(conn),
		stores:   repository.NewWorkItemStores(conn),
		history:  repository.NewSQLiteEstimateHistoryRepo(conn),
		deps:     repository.NewSQLiteDependencyRepo(conn),
		usage:    repository.NewSQLiteUsageRepo(conn),
	}
	f.project = testutil.CreateTestProject(t, f.projects, "Tracker")
	return f
}

func (f *fixture) estimateService(client llm.LLMClient, uow db.UnitOfWork, logger *zap.Logger) EstimateService {
	if uow == nil {
		uow = testutil.NewTestUoW(f.db)
	}
	orch := intelligence.NewEstimateOrchestratorFromClient(client, logger)
	return NewEstimateService(f.stores, f.history, uow, orch, f.usage, logger)
}

// estimateReplies scripts one successful decompose + estimate round trip
// totalling 8 + 4 + 16 hours.
func estimateReplies() []testutil.Reply {
	tasks, _ := json.Marshal(map[string]any{
		"tasks": []map[string]string{
			{"name": "Design schema", "complexity": "medium", "category": "design"},
			{"name": "Write migration", "complexity": "low", "category": "development"},
			{"name": "Build endpoints", "complexity": "high", "category": "development"},
		},
		"assumptions": []string{"auth is reused"},
		"risks":       []string{"rate limits"},
	})
	estimates, _ := json.Marshal(map[string]any{
		"estimates": []map[string]any{
			{"taskId": "T1", "hours": 8, "reasoning": "two tables"},
			{"taskId": "T2", "hours": 4},
			{"taskId": "T3", "hours": 16},
		},
		"confidence":          "high",
		"confidenceReasoning": "familiar stack",
	})
	return []testutil.Reply{
		{Text: string(tasks), Model: "gpt-4o-mini", Usage: llm.Usage{PromptTokens: 400, CompletionTokens: 200}},
		{Text: string(estimates), Model: "gpt-4o-mini", Usage: llm.Usage{PromptTokens: 600, CompletionTokens: 100}},
	}
}

// repeatReplies scripts n successful estimate runs.
func repeatReplies(n int) []testutil.Reply {
	var out []testutil.Reply
	for i := 0; i < n; i++ {
		out = append(out, estimateReplies()...)
	}
	return out
}
