// Command seed fills the database with demo data for a single user.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"database/sql"

	"github.com/bxcodec/faker/v3"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"financetracker/internal/config"
	"financetracker/internal/models"
	"financetracker/internal/repository"
	"financetracker/internal/service"
)

var demoCategories = []struct {
	name  string
	ctype string
	icon  string
	color string
}{
	{"Salary", models.TypeIncome, "bi-cash-stack", "success"},
	{"Freelance", models.TypeIncome, "bi-laptop", "info"},
	{"Groceries", models.TypeExpense, "bi-cart", "primary"},
	{"Rent", models.TypeExpense, "bi-house", "danger"},
	{"Transport", models.TypeExpense, "bi-bus-front", "warning"},
	{"Entertainment", models.TypeExpense, "bi-controller", "secondary"},
}

func main() {
	username := flag.String("username", "demo", "username for the seeded account")
	password := flag.String("password", "demo1234", "password for the seeded account")
	transactions := flag.Int("transactions", 60, "number of transactions to generate")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		logger.Debugf("No .env file loaded: %v", err)
	}
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := repository.RunMigrations(cfg.DBConn); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	repo := repository.NewRepository(db)
	svc := service.NewService(repo, logger, cfg, nil)

	user, err := svc.Register(*username, faker.FirstName(), faker.LastName(), faker.Email(), *password)
	if err != nil {
		logger.Fatalf("Failed to register demo user: %v", err)
	}
	logger.Infof("Created user %q (id=%d)", user.Username, user.ID)

	var income, expense []models.Category
	for _, c := range demoCategories {
		category, err := svc.CreateCategory(user.ID, service.CategoryInput{
			Name:        c.name,
			Description: faker.Sentence(),
			Type:        c.ctype,
			Icon:        c.icon,
			Color:       c.color,
		})
		if err != nil {
			logger.Fatalf("Failed to create category %q: %v", c.name, err)
		}
		if c.ctype == models.TypeIncome {
			income = append(income, *category)
		} else {
			expense = append(expense, *category)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < *transactions; i++ {
		categories := expense
		if rng.Intn(4) == 0 {
			categories = income
		}
		category := categories[rng.Intn(len(categories))]
		amount := decimal.NewFromInt(int64(rng.Intn(20000) + 100)).Div(decimal.NewFromInt(100))
		if category.Type == models.TypeIncome {
			amount = amount.Mul(decimal.NewFromInt(10))
		}
		if _, err := svc.CreateTransaction(user.ID, service.TransactionInput{
			CategoryID:  category.ID,
			Amount:      amount,
			Description: faker.Sentence(),
			Date:        time.Now().AddDate(0, 0, -rng.Intn(180)),
		}); err != nil {
			logger.Fatalf("Failed to create transaction: %v", err)
		}
	}
	logger.Infof("Created %d transactions", *transactions)

	for _, category := range expense {
		if _, err := svc.CreateBudget(user.ID, service.BudgetInput{
			CategoryID:  category.ID,
			Amount:      decimal.NewFromInt(int64(rng.Intn(900) + 100)),
			Period:      models.PeriodMonthly,
			Description: fmt.Sprintf("Monthly cap for %s", category.Name),
		}); err != nil {
			logger.Fatalf("Failed to create budget for %q: %v", category.Name, err)
		}
	}

	goals := []service.GoalInput{
		{
			Name:          "Emergency fund",
			Description:   "Three months of expenses",
			TargetAmount:  decimal.NewFromInt(5000),
			CurrentAmount: decimal.NewFromInt(int64(rng.Intn(3000))),
			TargetDate:    time.Now().AddDate(1, 0, 0),
			Icon:          "bi-shield-check",
			Color:         "success",
		},
		{
			Name:          "Vacation",
			Description:   "Two weeks abroad",
			TargetAmount:  decimal.NewFromInt(2500),
			CurrentAmount: decimal.NewFromInt(int64(rng.Intn(1500))),
			TargetDate:    time.Now().AddDate(0, 8, 0),
			Icon:          "bi-airplane",
			Color:         "info",
		},
	}
	for _, in := range goals {
		if _, err := svc.CreateGoal(user.ID, in); err != nil {
			logger.Fatalf("Failed to create goal %q: %v", in.Name, err)
		}
	}

	if _, err := svc.RecalculateBalance(user.ID); err != nil {
		logger.Fatalf("Failed to recalculate balance: %v", err)
	}
	logger.Info("Seeding complete")
	os.Exit(0)
}
