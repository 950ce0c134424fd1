// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/AminataF33/gestionbudgetback/config"
	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/autosave"
	"github.com/AminataF33/gestionbudgetback/internal/infra/dependency"
	"github.com/AminataF33/gestionbudgetback/internal/integration/email"
	"github.com/AminataF33/gestionbudgetback/internal/integration/persistence/model"
	"github.com/AminataF33/gestionbudgetback/test/integration/mock"
)

// application is the server shared by every scenario. Its storage is reset between scenarios.
type application struct {
	injector *dependency.Injector
	server   *httptest.Server
	db       *mock.Db
	redis    *redis.Client
	sender   *email.RecordingSender
}

var (
	appOnce sync.Once
	app     *application
	appErr  error
)

func startApplication() (*application, error) {
	appOnce.Do(func() {
		_ = os.Setenv("ENV", "test")
		cfg := config.Load()
		cfg.Email.AppBaseURL = "https://app.example.com"

		database := mock.NewDb(model.All()...)
		redisClient := mock.NewRedis()
		sender := email.NewRecordingSender()

		injector, err := dependency.NewInjector(cfg, database.DbConn, dependency.Options{
			Redis:       redisClient,
			EmailSender: sender,
		})
		if err != nil {
			appErr = fmt.Errorf("failed to wire application: %w", err)
			return
		}

		app = &application{
			injector: injector,
			server:   httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
			db:       database,
			redis:    redisClient,
			sender:   sender,
		}
	})
	return app, appErr
}

// TestContext holds the test state for each scenario.
type TestContext struct {
	app   *application
	clock *mock.Time

	// HTTP
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken  string
	refreshToken string

	// refs maps "kind:name" to the id of a resource created during the scenario.
	refs map[string]string

	lastSweep *autosave.ProcessDueAutoSavesOutput
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if app != nil {
			app.server.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		shared, err := startApplication()
		if err != nil {
			return ctx, err
		}

		if err := shared.db.ClearDB(); err != nil {
			return ctx, fmt.Errorf("failed to reset database: %w", err)
		}
		if err := mock.ClearRedis(shared.redis); err != nil {
			return ctx, fmt.Errorf("failed to reset redis: %w", err)
		}
		shared.sender.Reset()

		if _, err := shared.injector.SeedCategories.Execute(ctx); err != nil {
			return ctx, err
		}

		tc := &TestContext{
			app:            shared,
			clock:          mock.NewTime(),
			requestHeaders: make(map[string]string),
			refs:           make(map[string]string),
		}
		return SetTestContext(ctx, tc), nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerLedgerSteps(ctx)
	registerSchedulerSteps(ctx)
}

// registerAPISteps registers HTTP request steps.
func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
	ctx.Step(`^I am registered as "([^"]*)" with password "([^"]*)"$`, iAmRegisteredAs)
	ctx.Step(`^I am not authenticated$`, iAmNotAuthenticated)
	ctx.Step(`^I remember the response field "([^"]*)" as "([^"]*)"$`, iRememberTheResponseFieldAs)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
}

// registerLedgerSteps registers account, category, transaction, budget and goal steps.
func registerLedgerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I have an? "([^"]*)" account named "([^"]*)" with balance "([^"]*)"$`, iHaveAnAccountNamedWithBalance)
	ctx.Step(`^I have an? "([^"]*)" category named "([^"]*)"$`, iHaveACategoryNamed)
	ctx.Step(`^I recorded an? "([^"]*)" of "([^"]*)" on "([^"]*)" in "([^"]*)" for "([^"]*)"$`, iRecordedATransaction)
	ctx.Step(`^I transferred "([^"]*)" from "([^"]*)" to "([^"]*)" on "([^"]*)"$`, iTransferred)
	ctx.Step(`^I have a monthly budget of "([^"]*)" for "([^"]*)" starting "([^"]*)"$`, iHaveAMonthlyBudget)
	ctx.Step(`^I have a goal "([^"]*)" with target "([^"]*)"$`, iHaveAGoalWithTarget)
	ctx.Step(`^the account "([^"]*)" should have balance "([^"]*)"$`, theAccountShouldHaveBalance)
	ctx.Step(`^the goal "([^"]*)" should have saved "([^"]*)"$`, theGoalShouldHaveSaved)
	ctx.Step(`^the goal "([^"]*)" should have status "([^"]*)"$`, theGoalShouldHaveStatus)
}

// registerSchedulerSteps registers clock, auto-save and email worker steps.
func registerSchedulerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the current time is "([^"]*)"$`, theCurrentTimeIs)
	ctx.Step(`^the goal "([^"]*)" auto-saves "([^"]*)" "([^"]*)" from "([^"]*)"$`, theGoalAutoSaves)
	ctx.Step(`^the auto-save sweep runs$`, theAutoSaveSweepRuns)
	ctx.Step(`^the sweep should have processed (\d+) goals?$`, theSweepShouldHaveProcessed)
	ctx.Step(`^the auto-save lock should be released$`, theAutoSaveLockShouldBeReleased)
	ctx.Step(`^the email worker runs$`, theEmailWorkerRuns)
	ctx.Step(`^(\d+) emails? should have been sent to "([^"]*)"$`, emailsShouldHaveBeenSentTo)
}
