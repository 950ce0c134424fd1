package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

var refPattern = regexp.MustCompile(`\{([a-z_]+):([^}]+)\}`)

// resolveRefs replaces {kind:name} placeholders with ids remembered during the scenario.
func (tc *TestContext) resolveRefs(content string) (string, error) {
	var missing string
	resolved := refPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := refPattern.FindStringSubmatch(match)
		id, ok := tc.refs[parts[1]+":"+parts[2]]
		if !ok {
			missing = match
			return match
		}
		return id
	})
	if missing != "" {
		return "", fmt.Errorf("unknown reference %s", missing)
	}
	return resolved, nil
}

func (tc *TestContext) send(method, endpoint string, body []byte) error {
	endpoint, err := tc.resolveRefs(endpoint)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		resolved, err := tc.resolveRefs(string(body))
		if err != nil {
			return err
		}
		reader = bytes.NewBufferString(resolved)
	}

	req, err := http.NewRequest(method, tc.app.server.URL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// Add headers
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}

	// Add auth token if present
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := tc.app.server.Client().Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

// sendJSON sends a request and requires the expected status.
func (tc *TestContext) sendJSON(method, endpoint string, payload any, expectedStatus int) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return err
		}
	}
	if err := tc.send(method, endpoint, body); err != nil {
		return err
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("%s %s: expected status %d, got %d. Body: %s",
			method, endpoint, expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

// field reads a dot separated path such as "accounts.0.balance" from the last response.
func (tc *TestContext) field(path string) (any, error) {
	var data any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, fmt.Errorf("failed to parse response JSON: %w", err)
	}

	current := data
	for _, part := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[part]
			if !ok {
				return nil, fmt.Errorf("field '%s' not found in response", path)
			}
			current = value
		case []any:
			index, err := strconv.Atoi(part)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("index '%s' out of range in '%s'", part, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("field '%s' not found in response", path)
		}
	}
	return current, nil
}

func (tc *TestContext) stringField(path string) (string, error) {
	value, err := tc.field(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", value), nil
}

// Step implementations

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.app == nil || tc.app.server == nil {
		return fmt.Errorf("test server is not running")
	}
	if err := tc.send(http.MethodGet, "/health", nil); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d: %s", tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.send(method, endpoint, nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.send(method, endpoint, []byte(body.Content))
}

func iSetHeaderTo(ctx context.Context, header, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return nil
}

func iAmRegisteredAs(ctx context.Context, email, password string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	name := strings.SplitN(email, "@", 2)[0]
	err := tc.sendJSON(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":          email,
		"name":           name,
		"password":       password,
		"terms_accepted": true,
	}, http.StatusCreated)
	if err != nil {
		return err
	}

	var auth struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		User         struct {
			ID string `json:"id"`
		} `json:"user"`
		Accounts []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"accounts"`
	}
	if err := json.Unmarshal(tc.responseBody, &auth); err != nil {
		return fmt.Errorf("failed to parse register response: %w", err)
	}

	tc.accessToken = auth.AccessToken
	tc.refreshToken = auth.RefreshToken
	tc.refs["refresh_token:"+email] = auth.RefreshToken
	tc.refs["user:"+email] = auth.User.ID
	for _, account := range auth.Accounts {
		tc.refs["account:"+account.Name] = account.ID
	}
	return nil
}

func iAmNotAuthenticated(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.accessToken = ""
	return nil
}

func iRememberTheResponseFieldAs(ctx context.Context, field, ref string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, err := tc.stringField(field)
	if err != nil {
		return err
	}
	tc.refs[ref] = value
	return nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	actual, err := tc.stringField(field)
	if err != nil {
		return err
	}
	if actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	_, err := tc.field(field)
	return err
}

func theResponseFieldShouldHaveItems(ctx context.Context, field string, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, err := tc.field(field)
	if err != nil {
		return err
	}
	items, ok := value.([]any)
	if !ok {
		if value == nil && count == 0 {
			return nil
		}
		return fmt.Errorf("field '%s' is not a list", field)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func theDbShouldContainObjectsInTheTable(ctx context.Context, quantity int, table string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	count, err := tc.app.db.Count(table)
	if err != nil {
		return err
	}
	if count != int64(quantity) {
		return fmt.Errorf("expected %d objects in %s, got %d", quantity, table, count)
	}
	return nil
}
