package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func TestBuildReportTalliesStatusPriorityCategoryAndAgents(t *testing.T) {
	agentID := "agent-1"
	created := time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC)
	assigned := ticketAt("T-1", "user-1", created)
	assigned.AgentID = &agentID
	assigned.Priority = domain.TicketPriorityHigh
	assigned.Category = domain.TicketCategoryNetwork
	inProgress := ticketAt("T-2", "user-2", created)
	inProgress.Status = domain.TicketStatusInProgress
	unassigned := ticketAt("T-3", "user-1", created)

	report := BuildReport([]domain.Ticket{assigned, inProgress, unassigned})

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Unassigned)
	assert.Equal(t, 2, report.ByStatus[domain.TicketStatusOpen])
	assert.Equal(t, 1, report.ByStatus[domain.TicketStatusInProgress])
	assert.Equal(t, 1, report.ByPriority[domain.TicketPriorityHigh])
	assert.Equal(t, 2, report.ByPriority[domain.TicketPriorityMedium])
	assert.Equal(t, 1, report.ByCategory[domain.TicketCategoryNetwork])
	assert.Equal(t, 1, report.ByAgent[agentID])
}

func TestBuildReportOnEmptySet(t *testing.T) {
	report := BuildReport(nil)

	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0, report.Unassigned)
	assert.Empty(t, report.ByStatus)
	assert.Empty(t, report.ByAgent)
}
