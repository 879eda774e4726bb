package handlers

import (
	"context"
	"net/http"

	"fintrack/internal/models"
	"fintrack/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	token    string
	user     models.User
	authErr  error
	claims   service.TokenClaims
	parseErr error

	lastSignUpUsername string
	lastSignUpPassword string
	lastLoginUsername  string
	lastLoginPassword  string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (string, models.User, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.token, m.user, m.authErr
}
func (m *mockAuth) Login(_ context.Context, username, password string) (string, models.User, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.token, m.user, m.authErr
}
func (m *mockAuth) ParseToken(token string) (service.TokenClaims, error) {
	m.lastParseToken = token
	return m.claims, m.parseErr
}
func (m *mockAuth) User(_ context.Context, id int) (models.User, error) {
	return m.user, m.authErr
}

type mockTransactions struct {
	page      service.TransactionPage
	created   models.Transaction
	listErr   error
	createErr error
	deleteErr error

	lastUserID   int
	lastQuery    service.TransactionQuery
	lastInput    service.TransactionInput
	lastDeleteID int
}

func (m *mockTransactions) List(_ context.Context, userID int, q service.TransactionQuery) (service.TransactionPage, error) {
	m.lastUserID = userID
	m.lastQuery = q
	return m.page, m.listErr
}
func (m *mockTransactions) Create(_ context.Context, userID int, in service.TransactionInput) (models.Transaction, error) {
	m.lastUserID = userID
	m.lastInput = in
	return m.created, m.createErr
}
func (m *mockTransactions) Delete(_ context.Context, userID, id int) error {
	m.lastUserID = userID
	m.lastDeleteID = id
	return m.deleteErr
}

type mockBudgets struct {
	reports   []service.BudgetReport
	budget    models.Budget
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	lastInput    service.BudgetInput
	lastPatch    service.BudgetPatch
	lastUpdateID int
	lastDeleteID int
}

func (m *mockBudgets) List(_ context.Context, userID int) ([]service.BudgetReport, error) {
	return m.reports, m.listErr
}
func (m *mockBudgets) Create(_ context.Context, userID int, in service.BudgetInput) (models.Budget, error) {
	m.lastInput = in
	return m.budget, m.createErr
}
func (m *mockBudgets) Update(_ context.Context, userID, id int, patch service.BudgetPatch) (models.Budget, error) {
	m.lastUpdateID = id
	m.lastPatch = patch
	return m.budget, m.updateErr
}
func (m *mockBudgets) Delete(_ context.Context, userID, id int) error {
	m.lastDeleteID = id
	return m.deleteErr
}

type mockGoals struct {
	goals     []models.Goal
	goal      models.Goal
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	lastInput    service.GoalInput
	lastPatch    service.GoalPatch
	lastUpdateID int
	lastDeleteID int
}

func (m *mockGoals) List(_ context.Context, userID int) ([]models.Goal, error) {
	return m.goals, m.listErr
}
func (m *mockGoals) Create(_ context.Context, userID int, in service.GoalInput) (models.Goal, error) {
	m.lastInput = in
	return m.goal, m.createErr
}
func (m *mockGoals) Update(_ context.Context, userID, id int, patch service.GoalPatch) (models.Goal, error) {
	m.lastUpdateID = id
	m.lastPatch = patch
	return m.goal, m.updateErr
}
func (m *mockGoals) Delete(_ context.Context, userID, id int) error {
	m.lastDeleteID = id
	return m.deleteErr
}

type mockDashboard struct {
	summary service.DashboardSummary
	err     error
}

func (m *mockDashboard) Summary(_ context.Context, userID int) (service.DashboardSummary, error) {
	return m.summary, m.err
}

type mockExporter struct {
	csv string
	err error
}

func (m *mockExporter) TransactionsCSV(_ context.Context, userID int) (string, error) {
	return m.csv, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// passingAuth is a mockAuth whose tokens always parse to user 1.
func passingAuth() *mockAuth {
	return &mockAuth{claims: service.TokenClaims{UserID: 1, Username: "alice"}}
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
