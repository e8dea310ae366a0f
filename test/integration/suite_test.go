//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/jsamuelsen/console-client/internal/domain"
)

// outcome is a Result with its data kept as raw JSON, so one step set can
// assert on every operation.
type outcome struct {
	Code    int
	Message string
	Data    json.RawMessage
	Domain  domain.FailureDomain
}

func observe[T any](r domain.Result[T]) outcome {
	o := outcome{Code: r.Code, Message: r.Message, Domain: r.Domain}
	if r.Data != nil {
		o.Data, _ = json.Marshal(r.Data)
	}

	return o
}

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	server  *httptest.Server
	session *session
	api     *facades

	last   outcome
	logins map[string]outcome
}

func (tc *testContext) reset() {
	if tc.server != nil {
		tc.server.Close()
	}

	*tc = testContext{session: &session{}, logins: map[string]outcome{}}
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &testContext{}
	tc.reset()

	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the mock console is running$`, tc.theMockConsoleIsRunning)
	ctx.Step(`^the console is unreachable$`, tc.theConsoleIsUnreachable)
	ctx.Step(`^I am signed in as "([^"]*)" with password "([^"]*)"$`, tc.iAmSignedIn)
	ctx.Step(`^I sign in as "([^"]*)" with password "([^"]*)" through the (console|identity) endpoint$`, tc.iSignIn)
	ctx.Step(`^both sign-ins should resolve to the same result$`, tc.bothSignInsShouldMatch)
	ctx.Step(`^the console injects the fault "([^"]*)"$`, tc.theConsoleInjects)
	ctx.Step(`^I call "([^"]*)"$`, tc.iCall)
	ctx.Step(`^I call "([^"]*)" with params '([^']*)'$`, tc.iCallWithParams)
	ctx.Step(`^I call "([^"]*)" with body '([^']*)'$`, tc.iCallWithBody)
	ctx.Step(`^the result code should be (-?\d+)$`, tc.theResultCodeShouldBe)
	ctx.Step(`^the result message should be "([^"]*)"$`, tc.theResultMessageShouldBe)
	ctx.Step(`^the result should be a (transport|http_status|business_status|local_input) failure$`, tc.theResultShouldBeAFailure)
	ctx.Step(`^the result should carry no data$`, tc.theResultShouldCarryNoData)
	ctx.Step(`^the result data "([^"]*)" should be (.+)$`, tc.theResultDataShouldBe)
	ctx.Step(`^the result data should contain "([^"]*)"$`, tc.theResultDataShouldContain)
}

func (tc *testContext) theMockConsoleIsRunning() error {
	tc.server = startConsole(2 * time.Second)

	return tc.connect(tc.server.URL + "/api")
}

func (tc *testContext) theConsoleIsUnreachable() error {
	return tc.connect("http://127.0.0.1:1/api")
}

func (tc *testContext) connect(baseURL string) error {
	opts := defaultFacadeOptions()
	opts.timeout = 500 * time.Millisecond

	api, err := newFacades(baseURL, tc.session, opts)
	if err != nil {
		return fmt.Errorf("wiring façades: %w", err)
	}

	tc.api = api

	return nil
}

func (tc *testContext) iAmSignedIn(username, password string) error {
	r := tc.api.auth.Login(context.Background(), domain.LoginParams{Username: username, Password: password})
	if !r.OK() {
		return fmt.Errorf("sign-in failed: %w", r.Err())
	}

	tc.session.token = r.Value().Token

	return nil
}

func (tc *testContext) iSignIn(username, password, endpoint string) error {
	auth := tc.api.auth
	if endpoint == "identity" {
		auth = tc.api.identity
	}

	tc.last = observe(auth.Login(context.Background(), domain.LoginParams{Username: username, Password: password}))
	tc.logins[endpoint] = tc.last

	return nil
}

func (tc *testContext) bothSignInsShouldMatch() error {
	console, identity := tc.logins["console"], tc.logins["identity"]

	if console.Code != identity.Code || console.Message != identity.Message || console.Domain != identity.Domain {
		return fmt.Errorf("console sign-in %+v differs from identity sign-in %+v", console, identity)
	}

	if (console.Data == nil) != (identity.Data == nil) {
		return errors.New("only one sign-in carries data")
	}

	return nil
}

func (tc *testContext) theConsoleInjects(fault string) error {
	tc.session.fault = fault
	return nil
}

func (tc *testContext) iCall(operation string) error {
	return tc.call(operation, nil, nil)
}

func (tc *testContext) iCallWithParams(operation, raw string) error {
	var params map[string]any
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return fmt.Errorf("params: %w", err)
	}

	return tc.call(operation, params, nil)
}

func (tc *testContext) iCallWithBody(operation, body string) error {
	return tc.call(operation, nil, body)
}

func (tc *testContext) call(operation string, params map[string]any, body any) error {
	ctx := context.Background()
	api := tc.api

	switch operation {
	case "getUserInfo":
		tc.last = observe(api.users.Info(ctx))
	case "userAdd":
		tc.last = observe(api.users.Add(ctx, body))
	case "userList":
		tc.last = observe(api.users.List(ctx, params))
	case "roleList":
		tc.last = observe(api.roles.List(ctx, params))
	case "roleAdd":
		tc.last = observe(api.roles.Add(ctx, body))
	case "roleUpdate":
		tc.last = observe(api.roles.Update(ctx, body))
	case "roleDelete":
		tc.last = observe(api.roles.Delete(ctx, params))
	case "departmentList":
		tc.last = observe(api.departments.List(ctx, params))
	case "departmentAdd":
		tc.last = observe(api.departments.Add(ctx, body))
	case "departmentUpdate":
		tc.last = observe(api.departments.Update(ctx, body))
	case "departmentTop":
		tc.last = observe(api.departments.Top(ctx, body))
	case "departmentDelete":
		tc.last = observe(api.departments.Delete(ctx, params))
	default:
		return godog.ErrPending
	}

	return nil
}

func (tc *testContext) theResultCodeShouldBe(code int) error {
	if tc.last.Code != code {
		return fmt.Errorf("expected code %d, got %d (%s)", code, tc.last.Code, tc.last.Message)
	}

	return nil
}

func (tc *testContext) theResultMessageShouldBe(message string) error {
	if tc.last.Message != message {
		return fmt.Errorf("expected message %q, got %q", message, tc.last.Message)
	}

	return nil
}

func (tc *testContext) theResultShouldBeAFailure(name string) error {
	if tc.last.Domain.String() != name {
		return fmt.Errorf("expected a %s failure, got %s (code %d, %q)", name, tc.last.Domain, tc.last.Code, tc.last.Message)
	}

	return nil
}

func (tc *testContext) theResultShouldCarryNoData() error {
	if tc.last.Data != nil {
		return fmt.Errorf("expected no data, got %s", tc.last.Data)
	}

	return nil
}

func (tc *testContext) theResultDataShouldBe(field, expected string) error {
	var data map[string]json.RawMessage
	if err := json.Unmarshal(tc.last.Data, &data); err != nil {
		return fmt.Errorf("result data is not an object: %s", tc.last.Data)
	}

	got, ok := data[field]
	if !ok {
		return fmt.Errorf("result data has no %q: %s", field, tc.last.Data)
	}

	var want, have any
	if err := json.Unmarshal([]byte(expected), &want); err != nil {
		return fmt.Errorf("expected value %s is not JSON: %w", expected, err)
	}

	_ = json.Unmarshal(got, &have)

	a, _ := json.Marshal(want)
	b, _ := json.Marshal(have)

	if !bytes.Equal(a, b) {
		return fmt.Errorf("expected %s = %s, got %s", field, a, b)
	}

	return nil
}

func (tc *testContext) theResultDataShouldContain(text string) error {
	if !strings.Contains(string(tc.last.Data), text) {
		return fmt.Errorf("result data does not contain %q: %s", text, tc.last.Data)
	}

	return nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
