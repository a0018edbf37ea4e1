package service

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"financetracker/internal/config"
	"financetracker/internal/models"
)

// Store is the persistence surface the service layer depends on.
// *repository.Repository implements it; tests substitute an in-memory fake.
type Store interface {
	// users
	CreateUser(user *models.User) error
	FindUserByUsername(username string) (*models.User, error)
	FindUserByID(id int64) (*models.User, error)
	UpdateUserTheme(userID int64, theme string) error

	// accounts
	CreateAccount(account *models.Account) error
	FindAccountByUserID(userID int64) (*models.Account, error)
	ApplyToBalance(accountID int64, delta decimal.Decimal) error
	RecalculateBalance(accountID int64) (decimal.Decimal, error)
	ListAccountIDs() ([]int64, error)

	// categories
	CreateCategory(category *models.Category) error
	FindCategoryByID(id, userID int64) (*models.Category, error)
	UpdateCategory(category *models.Category) error
	DeleteCategory(id, userID int64) error
	ListCategories(userID int64, categoryType string) ([]models.Category, error)
	CategorySummaries(userID int64, categoryType string) ([]models.CategorySummary, error)

	// transactions
	CreateTransaction(transaction *models.Transaction) error
	CreateTransactionsBatch(transactions []*models.Transaction) error
	FindTransactionByID(id, accountID int64) (*models.Transaction, error)
	UpdateTransaction(transaction *models.Transaction) error
	DeleteTransaction(id, accountID int64) error
	ListTransactions(accountID int64, f models.TransactionFilter) ([]models.TransactionData, error)
	SumByType(accountID int64, transactionType string, f models.TransactionFilter) (decimal.Decimal, error)
	ExpensesByCategory(accountID int64, f models.TransactionFilter) ([]models.PieSlice, error)

	// budgets
	CreateBudget(budget *models.Budget) error
	FindBudgetByID(id, userID int64) (*models.Budget, error)
	UpdateBudget(budget *models.Budget) error
	DeleteBudget(id, userID int64) error
	BudgetsWithSpent(userID int64, start, end time.Time) ([]models.BudgetData, error)

	// goals
	CreateGoal(goal *models.Goal) error
	FindGoalByID(id, userID int64) (*models.Goal, error)
	ListGoals(userID int64) ([]models.Goal, error)
	UpdateGoal(goal *models.Goal) error
	DeleteGoal(id, userID int64) error
	AppendGoalHistory(goalID int64, amount decimal.Decimal) error
	GoalHistorySince(goalID int64, since time.Time) ([]models.GoalHistory, error)
}

// AlertSender delivers budget alert notifications to a user
type AlertSender interface {
	SendBudgetAlerts(to, username string, alerts []models.BudgetAlert) error
}

// Service handles business logic
type Service struct {
	store  Store
	log    *logrus.Logger
	config *config.Config
	mailer AlertSender
	now    func() time.Time
}

// NewService initializes a new service. mailer may be nil, in which case
// alert emails are skipped.
func NewService(store Store, log *logrus.Logger, cfg *config.Config, mailer AlertSender) *Service {
	return &Service{
		store:  store,
		log:    log,
		config: cfg,
		mailer: mailer,
		now:    time.Now,
	}
}
