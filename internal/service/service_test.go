package service

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"financetracker/internal/config"
	"financetracker/internal/models"
)

// fakeStore is an in-memory Store for service tests. Write paths count
// balance calls so tests can assert which update strategy ran, and errors
// can be injected per method.
type fakeStore struct {
	users        map[int64]*models.User
	accounts     map[int64]*models.Account
	categories   map[int64]*models.Category
	transactions map[int64]*models.Transaction
	budgets      map[int64]*models.Budget
	goals        map[int64]*models.Goal
	history      map[int64][]models.GoalHistory
	nextID       int64

	applyErr    error
	recalcErr   error
	batchErr    error
	applyCalls  int
	recalcCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        make(map[int64]*models.User),
		accounts:     make(map[int64]*models.Account),
		categories:   make(map[int64]*models.Category),
		transactions: make(map[int64]*models.Transaction),
		budgets:      make(map[int64]*models.Budget),
		goals:        make(map[int64]*models.Goal),
		history:      make(map[int64][]models.GoalHistory),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

// users

func (f *fakeStore) CreateUser(user *models.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return fmt.Errorf("username taken: %w", models.ErrConflict)
		}
	}
	user.ID = f.id()
	user.CreatedAt = time.Now()
	c := *user
	f.users[user.ID] = &c
	return nil
}

func (f *fakeStore) FindUserByUsername(username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, models.ErrNotFound)
}

func (f *fakeStore) FindUserByID(id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
	}
	c := *u
	return &c, nil
}

func (f *fakeStore) UpdateUserTheme(userID int64, theme string) error {
	u, ok := f.users[userID]
	if !ok {
		return fmt.Errorf("user %d: %w", userID, models.ErrNotFound)
	}
	u.Theme = theme
	return nil
}

// accounts

func (f *fakeStore) CreateAccount(account *models.Account) error {
	account.ID = f.id()
	c := *account
	f.accounts[account.ID] = &c
	return nil
}

func (f *fakeStore) FindAccountByUserID(userID int64) (*models.Account, error) {
	for _, a := range f.accounts {
		if a.UserID == userID {
			c := *a
			return &c, nil
		}
	}
	return nil, fmt.Errorf("account for user %d: %w", userID, models.ErrNotFound)
}

func (f *fakeStore) ApplyToBalance(accountID int64, delta decimal.Decimal) error {
	f.applyCalls++
	if f.applyErr != nil {
		return f.applyErr
	}
	a, ok := f.accounts[accountID]
	if !ok {
		return fmt.Errorf("account %d: %w", accountID, models.ErrNotFound)
	}
	a.Balance = a.Balance.Add(delta)
	return nil
}

func (f *fakeStore) RecalculateBalance(accountID int64) (decimal.Decimal, error) {
	f.recalcCalls++
	if f.recalcErr != nil {
		return decimal.Zero, f.recalcErr
	}
	a, ok := f.accounts[accountID]
	if !ok {
		return decimal.Zero, fmt.Errorf("account %d: %w", accountID, models.ErrNotFound)
	}
	total := decimal.Zero
	for _, t := range f.transactions {
		if t.AccountID != accountID {
			continue
		}
		if t.Type == models.TypeIncome {
			total = total.Add(t.Amount)
		} else {
			total = total.Sub(t.Amount)
		}
	}
	a.Balance = total
	return total, nil
}

func (f *fakeStore) ListAccountIDs() ([]int64, error) {
	ids := make([]int64, 0, len(f.accounts))
	for id := range f.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// categories

func (f *fakeStore) CreateCategory(category *models.Category) error {
	for _, c := range f.categories {
		if c.Name == category.Name {
			return fmt.Errorf("category name taken: %w", models.ErrConflict)
		}
	}
	category.ID = f.id()
	c := *category
	f.categories[category.ID] = &c
	return nil
}

func (f *fakeStore) FindCategoryByID(id, userID int64) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok || c.UserID != userID {
		return nil, fmt.Errorf("category %d: %w", id, models.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) UpdateCategory(category *models.Category) error {
	c, ok := f.categories[category.ID]
	if !ok || c.UserID != category.UserID {
		return fmt.Errorf("category %d: %w", category.ID, models.ErrNotFound)
	}
	cp := *category
	f.categories[category.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteCategory(id, userID int64) error {
	c, ok := f.categories[id]
	if !ok || c.UserID != userID {
		return fmt.Errorf("category %d: %w", id, models.ErrNotFound)
	}
	delete(f.categories, id)
	for tid, t := range f.transactions {
		if t.CategoryID == id {
			delete(f.transactions, tid)
		}
	}
	return nil
}

func (f *fakeStore) ListCategories(userID int64, categoryType string) ([]models.Category, error) {
	var out []models.Category
	for _, c := range f.categories {
		if c.UserID == userID && (categoryType == "" || c.Type == categoryType) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) CategorySummaries(userID int64, categoryType string) ([]models.CategorySummary, error) {
	var out []models.CategorySummary
	for _, c := range f.categories {
		if c.UserID != userID || c.Type != categoryType {
			continue
		}
		summary := models.CategorySummary{
			ID: c.ID, Name: c.Name, Description: c.Description,
			Type: c.Type, Icon: c.Icon, Color: c.Color,
			TotalAmount: decimal.Zero,
		}
		for _, t := range f.transactions {
			if t.CategoryID == c.ID {
				summary.TotalTransactions++
				summary.TotalAmount = summary.TotalAmount.Add(t.Amount)
			}
		}
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// transactions

func matchesFilter(t *models.Transaction, f models.TransactionFilter) bool {
	if f.StartDate != nil && t.Date.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.Date.After(*f.EndDate) {
		return false
	}
	if f.CategoryID != 0 && t.CategoryID != f.CategoryID {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	return true
}

func (f *fakeStore) CreateTransaction(transaction *models.Transaction) error {
	transaction.ID = f.id()
	c := *transaction
	f.transactions[transaction.ID] = &c
	return nil
}

func (f *fakeStore) CreateTransactionsBatch(transactions []*models.Transaction) error {
	if f.batchErr != nil {
		return f.batchErr
	}
	for _, t := range transactions {
		if err := f.CreateTransaction(t); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStore) FindTransactionByID(id, accountID int64) (*models.Transaction, error) {
	t, ok := f.transactions[id]
	if !ok || t.AccountID != accountID {
		return nil, fmt.Errorf("transaction %d: %w", id, models.ErrNotFound)
	}
	c := *t
	return &c, nil
}

func (f *fakeStore) UpdateTransaction(transaction *models.Transaction) error {
	t, ok := f.transactions[transaction.ID]
	if !ok || t.AccountID != transaction.AccountID {
		return fmt.Errorf("transaction %d: %w", transaction.ID, models.ErrNotFound)
	}
	c := *transaction
	f.transactions[transaction.ID] = &c
	return nil
}

func (f *fakeStore) DeleteTransaction(id, accountID int64) error {
	t, ok := f.transactions[id]
	if !ok || t.AccountID != accountID {
		return fmt.Errorf("transaction %d: %w", id, models.ErrNotFound)
	}
	delete(f.transactions, id)
	return nil
}

func (f *fakeStore) ListTransactions(accountID int64, filter models.TransactionFilter) ([]models.TransactionData, error) {
	var out []models.TransactionData
	for _, t := range f.transactions {
		if t.AccountID != accountID || !matchesFilter(t, filter) {
			continue
		}
		data := models.TransactionData{
			ID: t.ID, Date: t.Date, Description: t.Description,
			Type: t.Type, Amount: t.Amount, CategoryID: t.CategoryID,
		}
		if c, ok := f.categories[t.CategoryID]; ok {
			data.CategoryName = c.Name
			data.CategoryIcon = c.Icon
			data.CategoryColor = c.Color
		}
		out = append(out, data)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeStore) SumByType(accountID int64, transactionType string, filter models.TransactionFilter) (decimal.Decimal, error) {
	filter.Type = transactionType
	total := decimal.Zero
	for _, t := range f.transactions {
		if t.AccountID == accountID && matchesFilter(t, filter) {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

func (f *fakeStore) ExpensesByCategory(accountID int64, filter models.TransactionFilter) ([]models.PieSlice, error) {
	filter.Type = models.TypeExpense
	totals := make(map[int64]decimal.Decimal)
	for _, t := range f.transactions {
		if t.AccountID == accountID && matchesFilter(t, filter) {
			totals[t.CategoryID] = totals[t.CategoryID].Add(t.Amount)
		}
	}
	var out []models.PieSlice
	for id, total := range totals {
		c := f.categories[id]
		out = append(out, models.PieSlice{Category: c.Name, Color: c.Color, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out, nil
}

// budgets

func (f *fakeStore) CreateBudget(budget *models.Budget) error {
	budget.ID = f.id()
	c := *budget
	f.budgets[budget.ID] = &c
	return nil
}

func (f *fakeStore) FindBudgetByID(id, userID int64) (*models.Budget, error) {
	b, ok := f.budgets[id]
	if !ok || b.UserID != userID {
		return nil, fmt.Errorf("budget %d: %w", id, models.ErrNotFound)
	}
	c := *b
	return &c, nil
}

func (f *fakeStore) UpdateBudget(budget *models.Budget) error {
	b, ok := f.budgets[budget.ID]
	if !ok || b.UserID != budget.UserID {
		return fmt.Errorf("budget %d: %w", budget.ID, models.ErrNotFound)
	}
	c := *budget
	f.budgets[budget.ID] = &c
	return nil
}

func (f *fakeStore) DeleteBudget(id, userID int64) error {
	b, ok := f.budgets[id]
	if !ok || b.UserID != userID {
		return fmt.Errorf("budget %d: %w", id, models.ErrNotFound)
	}
	delete(f.budgets, id)
	return nil
}

func (f *fakeStore) BudgetsWithSpent(userID int64, start, end time.Time) ([]models.BudgetData, error) {
	var out []models.BudgetData
	for _, b := range f.budgets {
		if b.UserID != userID {
			continue
		}
		c := f.categories[b.CategoryID]
		spent := decimal.Zero
		for _, t := range f.transactions {
			if t.CategoryID == b.CategoryID && t.Type == models.TypeExpense &&
				!t.Date.Before(start) && !t.Date.After(end) {
				spent = spent.Add(t.Amount)
			}
		}
		out = append(out, models.BudgetData{
			ID: b.ID, Name: c.Name, Icon: c.Icon, Color: c.Color,
			Spent: spent, Amount: b.Amount, Description: b.Description,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// goals

func (f *fakeStore) CreateGoal(goal *models.Goal) error {
	goal.ID = f.id()
	goal.StartDate = time.Now()
	goal.UpdatedAt = goal.StartDate
	c := *goal
	f.goals[goal.ID] = &c
	return nil
}

func (f *fakeStore) FindGoalByID(id, userID int64) (*models.Goal, error) {
	g, ok := f.goals[id]
	if !ok || g.UserID != userID {
		return nil, fmt.Errorf("goal %d: %w", id, models.ErrNotFound)
	}
	c := *g
	return &c, nil
}

func (f *fakeStore) ListGoals(userID int64) ([]models.Goal, error) {
	var out []models.Goal
	for _, g := range f.goals {
		if g.UserID == userID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) UpdateGoal(goal *models.Goal) error {
	g, ok := f.goals[goal.ID]
	if !ok || g.UserID != goal.UserID {
		return fmt.Errorf("goal %d: %w", goal.ID, models.ErrNotFound)
	}
	goal.UpdatedAt = time.Now()
	c := *goal
	f.goals[goal.ID] = &c
	return nil
}

func (f *fakeStore) DeleteGoal(id, userID int64) error {
	g, ok := f.goals[id]
	if !ok || g.UserID != userID {
		return fmt.Errorf("goal %d: %w", id, models.ErrNotFound)
	}
	delete(f.goals, id)
	delete(f.history, id)
	return nil
}

func (f *fakeStore) AppendGoalHistory(goalID int64, amount decimal.Decimal) error {
	f.history[goalID] = append(f.history[goalID], models.GoalHistory{
		ID: f.id(), GoalID: goalID, Amount: amount, Date: time.Now(),
	})
	return nil
}

func (f *fakeStore) GoalHistorySince(goalID int64, since time.Time) ([]models.GoalHistory, error) {
	var out []models.GoalHistory
	for _, h := range f.history[goalID] {
		if !h.Date.Before(since) {
			out = append(out, h)
		}
	}
	return out, nil
}

var _ Store = (*fakeStore)(nil)

// newTestService wires a Service to the fake store with logging silenced
// and the clock pinned to a fixed instant.
func newTestService(store *fakeStore) *Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{JWTSecret: "test-secret", DBConn: "test"}
	svc := NewService(store, logger, cfg, nil)
	svc.now = func() time.Time {
		return time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

// seedUser registers a user with one account and one category of each type.
// Returns the user ID and the income and expense categories.
func seedUser(svc *Service) (int64, models.Category, models.Category) {
	user, err := svc.Register("alice", "Alice", "Smith", "alice@example.com", "password1")
	if err != nil {
		panic(err)
	}
	income, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Salary", Type: models.TypeIncome})
	if err != nil {
		panic(err)
	}
	expense, err := svc.CreateCategory(user.ID, CategoryInput{Name: "Groceries", Type: models.TypeExpense})
	if err != nil {
		panic(err)
	}
	return user.ID, *income, *expense
}
