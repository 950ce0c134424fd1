// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/AminataF33/gestionbudgetback/config"
	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/application/service"
	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/account"
	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/auth"
	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/autosave"
	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/budget"
	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/category"
	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/dashboard"
	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/goal"
	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/transaction"
	"github.com/AminataF33/gestionbudgetback/internal/infra/server/router"
	"github.com/AminataF33/gestionbudgetback/internal/integration/adapters"
	"github.com/AminataF33/gestionbudgetback/internal/integration/email"
	"github.com/AminataF33/gestionbudgetback/internal/integration/email/templates"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/controller"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/middleware"
	"github.com/AminataF33/gestionbudgetback/internal/integration/lock"
	"github.com/AminataF33/gestionbudgetback/internal/integration/messaging"
	"github.com/AminataF33/gestionbudgetback/internal/integration/persistence"
	"github.com/AminataF33/gestionbudgetback/internal/integration/worker"
)

// Options carries the optional infrastructure handed to the injector.
// Nil fields fall back to in-process implementations.
type Options struct {
	Redis       *redis.Client
	Publisher   adapter.EventPublisher
	EmailSender adapter.EmailSender
}

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	// SeedCategories inserts the system categories that are missing.
	SeedCategories *category.SeedDefaultCategoriesUseCase

	// EmailWorker is nil when the worker is disabled or no sender is configured.
	EmailWorker *email.Worker

	// ProcessAutoSaves runs a single auto-save sweep.
	ProcessAutoSaves *autosave.ProcessDueAutoSavesUseCase

	// AutoSaveWorker is nil when the scheduler is disabled.
	AutoSaveWorker *worker.AutoSaveWorker

	Publisher adapter.EventPublisher
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	accountRepo := persistence.NewAccountRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	goalRepo := persistence.NewGoalRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)
	transactor := persistence.NewTransactor(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(cfg.Password.Cost)
	tokenService := adapters.NewTokenService(adapters.TokenConfig{
		Secret:          cfg.JWT.Secret,
		AccessDuration:  cfg.JWT.AccessTokenExpiry,
		RefreshDuration: cfg.JWT.RefreshTokenExpiry,
	}, tokenRepo)
	emailService := email.NewService(emailQueueRepo, cfg.Email.AppBaseURL)

	publisher := opts.Publisher
	if publisher == nil {
		publisher = messaging.NewLogPublisher()
	}

	var sweepLock adapter.SweepLock
	if opts.Redis != nil {
		sweepLock = lock.NewRedisLock(opts.Redis)
	} else {
		sweepLock = lock.NewLocalLock()
	}

	// Create domain services
	balanceUpdater := service.NewBalanceUpdater(accountRepo)
	contributionTracker := service.NewContributionTracker(goalRepo)
	eventDispatcher := service.NewEventDispatcher(publisher)
	completionNotifier := service.NewGoalCompletionNotifier(userRepo, emailService)
	spendAggregator := service.NewSpendAggregator(transactionRepo)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, accountRepo, transactor, passwordService, tokenService, cfg.Ledger.DefaultCurrency)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, accountRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getProfileUseCase := auth.NewGetProfileUseCase(userRepo)
	updatePreferencesUseCase := auth.NewUpdatePreferencesUseCase(userRepo)

	// Create account use cases
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	getAccountUseCase := account.NewGetAccountUseCase(accountRepo)
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo)
	deactivateAccountUseCase := account.NewDeactivateAccountUseCase(accountRepo)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo, budgetRepo)
	seedCategoriesUseCase := category.NewSeedDefaultCategoriesUseCase(categoryRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, accountRepo, categoryRepo, transactor, balanceUpdater, eventDispatcher)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, accountRepo, categoryRepo, transactor, balanceUpdater, eventDispatcher)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, transactor, balanceUpdater, eventDispatcher)

	// Create budget use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo, transactor, spendAggregator)
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo, categoryRepo, spendAggregator)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo, categoryRepo, spendAggregator)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, categoryRepo, transactor, spendAggregator)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)
	refreshBudgetUseCase := budget.NewRefreshBudgetUseCase(budgetRepo, categoryRepo, userRepo, spendAggregator, emailService, eventDispatcher)

	// Create goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo)
	deleteGoalUseCase := goal.NewDeleteGoalUseCase(goalRepo)
	addContributionUseCase := goal.NewAddContributionUseCase(goalRepo, transactor, contributionTracker, completionNotifier, eventDispatcher)

	// Create dashboard use cases
	getSummaryUseCase := dashboard.NewGetSummaryUseCase(accountRepo, transactionRepo, budgetRepo, goalRepo, spendAggregator)
	getCategoryBreakdownUseCase := dashboard.NewGetCategoryBreakdownUseCase(transactionRepo, categoryRepo)

	// Create controllers
	healthController := controller.NewHealthController(pingDatabase(db), optionalHealthChecks(opts.Redis))

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	userController := controller.NewUserController(
		getProfileUseCase,
		updatePreferencesUseCase,
	)

	accountController := controller.NewAccountController(
		createAccountUseCase,
		getAccountUseCase,
		listAccountsUseCase,
		updateAccountUseCase,
		deactivateAccountUseCase,
	)

	categoryController := controller.NewCategoryController(
		listCategoriesUseCase,
		createCategoryUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		getTransactionUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	budgetController := controller.NewBudgetController(
		createBudgetUseCase,
		getBudgetUseCase,
		listBudgetsUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
		refreshBudgetUseCase,
	)

	goalController := controller.NewGoalController(
		listGoalsUseCase,
		getGoalUseCase,
		createGoalUseCase,
		updateGoalUseCase,
		deleteGoalUseCase,
		addContributionUseCase,
	)

	dashboardController := controller.NewDashboardController(
		getSummaryUseCase,
		getCategoryBreakdownUseCase,
	)

	// Create middleware
	var counter middleware.AttemptCounter
	if opts.Redis != nil {
		counter = middleware.NewRedisCounter(opts.Redis)
	} else {
		counter = middleware.NewMemoryCounter()
	}
	loginRateLimiter := middleware.NewRateLimiterWithCounter(counter, middleware.RateLimiterConfig{
		Enabled:        cfg.RateLimit.Enabled,
		MaxAttempts:    cfg.RateLimit.MaxAttempts,
		WindowDuration: cfg.RateLimit.Window,
	})
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		accountController,
		categoryController,
		transactionController,
		budgetController,
		goalController,
		dashboardController,
		loginRateLimiter,
		authMiddleware,
	)

	injector := &Injector{
		Config:         cfg,
		DB:             db,
		Router:         r,
		SeedCategories: seedCategoriesUseCase,
		Publisher:      publisher,
	}

	// Create background workers
	if cfg.Email.WorkerEnabled {
		sender := opts.EmailSender
		if sender == nil && cfg.Email.ResendAPIKey != "" {
			sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
		}
		if sender == nil {
			slog.Warn("Email worker not started, RESEND_API_KEY is empty; emails stay queued")
		} else {
			renderer, err := templates.NewRenderer()
			if err != nil {
				return nil, fmt.Errorf("failed to load email templates: %w", err)
			}
			injector.EmailWorker = email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
				PollInterval:  cfg.Email.PollInterval,
				BatchSize:     cfg.Email.BatchSize,
				RetentionDays: cfg.Email.RetentionDays,
			})
		}
	}

	injector.ProcessAutoSaves = autosave.NewProcessDueAutoSavesUseCase(
		goalRepo,
		transactor,
		sweepLock,
		contributionTracker,
		completionNotifier,
		eventDispatcher,
		cfg.AutoSave.BatchSize,
		cfg.AutoSave.LockTTL,
	)
	if cfg.AutoSave.Enabled {
		injector.AutoSaveWorker = worker.NewAutoSaveWorker(injector.ProcessAutoSaves, cfg.AutoSave.Interval)
	}

	return injector, nil
}

func pingDatabase(db *gorm.DB) controller.HealthChecker {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func optionalHealthChecks(client *redis.Client) map[string]controller.HealthChecker {
	checks := make(map[string]controller.HealthChecker)
	if client != nil {
		checks["redis"] = func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
	}
	return checks
}
