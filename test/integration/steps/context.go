// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/sales-dashboard/backend/config"
	"github.com/sales-dashboard/backend/internal/infra/db"
	"github.com/sales-dashboard/backend/internal/infra/dependency"
	"github.com/sales-dashboard/backend/internal/infra/metrics"
	"github.com/sales-dashboard/backend/internal/integration/adapters"
	"github.com/sales-dashboard/backend/test/integration/mock"
)

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	server       *httptest.Server
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken string
	tokens      map[string]string

	// Last upload_id returned by the API
	lastUploadID string

	db  *mock.Db
	cfg *config.Config
}

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
		mock.NewDb(db.Models()...)
		mock.NewRedis()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		mockDb := mock.NewDb(db.Models()...)
		if err := mockDb.ClearDB(); err != nil {
			return ctx, err
		}
		redisConn := mock.NewRedis()
		if err := mock.ClearRedis(redisConn); err != nil {
			return ctx, err
		}

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.JWT.Secret = "integration-secret"

		injector := dependency.NewInjector(cfg, mockDb.DbConn, dependency.Options{
			Redis:           redisConn,
			Metrics:         metrics.New(),
			PasswordService: adapters.NewPasswordServiceWithCost(bcrypt.MinCost),
		})

		tc := &TestContext{
			server:         httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
			requestHeaders: make(map[string]string),
			tokens:         make(map[string]string),
			db:             mockDb,
			cfg:            cfg,
		}

		return SetTestContext(ctx, tc), nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc := GetTestContext(ctx)
		if tc != nil && tc.server != nil {
			tc.server.Close()
		}
		return ctx, nil
	})

	registerAPISteps(ctx)
	registerSalesSteps(ctx)
	registerResponseSteps(ctx)
}

func registerAPISteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the API server is running$`, theAPIServerIsRunning)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I set header "([^"]*)" to "([^"]*)"$`, iSetHeaderTo)
}

func registerSalesSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^a user "([^"]*)" is registered with password "([^"]*)"$`, aUserIsRegistered)
	ctx.Step(`^I am authenticated as "([^"]*)"$`, iAmAuthenticatedAs)
	ctx.Step(`^I upload "([^"]*)" with content:$`, iUploadWithContent)
	ctx.Step(`^I send a "([^"]*)" request to the last upload$`, iSendARequestToTheLastUpload)
	ctx.Step(`^I request the dashboard for the last upload$`, iRequestTheDashboardForTheLastUpload)
	ctx.Step(`^the table "([^"]*)" should have (\d+) rows?$`, theTableShouldHaveRows)
}

func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should be JSON$`, theResponseShouldBeJSON)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the response field "([^"]*)" should have (\d+) items?$`, theResponseFieldShouldHaveItems)
	ctx.Step(`^the response header "([^"]*)" should contain "([^"]*)"$`, theResponseHeaderShouldContain)
}
