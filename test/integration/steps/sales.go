package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/cucumber/godog"
)

func aUserIsRegistered(ctx context.Context, username, password string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	if err := tc.send(http.MethodPost, "/api/v1/auth/register", "application/json", bytes.NewReader(body)); err != nil {
		return ctx, err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return ctx, fmt.Errorf("failed to register %s: %d %s", username, tc.response.StatusCode, string(tc.responseBody))
	}

	var auth struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(tc.responseBody, &auth); err != nil {
		return ctx, err
	}
	tc.tokens[username] = auth.AccessToken
	return ctx, nil
}

func iAmAuthenticatedAs(ctx context.Context, username string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	token, ok := tc.tokens[username]
	if !ok {
		return ctx, fmt.Errorf("user %s has not been registered", username)
	}
	tc.accessToken = token
	return ctx, nil
}

func iUploadWithContent(ctx context.Context, filename string, content *godog.DocString) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return ctx, err
	}
	if _, err := part.Write([]byte(content.Content + "\n")); err != nil {
		return ctx, err
	}
	if err := writer.Close(); err != nil {
		return ctx, err
	}

	if err := tc.send(http.MethodPost, "/api/v1/uploads", writer.FormDataContentType(), &body); err != nil {
		return ctx, err
	}

	if tc.response.StatusCode == http.StatusCreated {
		var uploaded struct {
			UploadID string `json:"upload_id"`
		}
		if err := json.Unmarshal(tc.responseBody, &uploaded); err == nil {
			tc.lastUploadID = uploaded.UploadID
		}
	}
	return ctx, nil
}

func iSendARequestToTheLastUpload(ctx context.Context, method string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if tc.lastUploadID == "" {
		return ctx, fmt.Errorf("no upload has been accepted in this scenario")
	}
	return ctx, tc.send(strings.ToUpper(method), "/api/v1/uploads/"+tc.lastUploadID, "", nil)
}

func iRequestTheDashboardForTheLastUpload(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if tc.lastUploadID == "" {
		return ctx, fmt.Errorf("no upload has been accepted in this scenario")
	}
	return ctx, tc.send(http.MethodGet, "/api/v1/dashboard?upload_id="+tc.lastUploadID, "", nil)
}

func theTableShouldHaveRows(ctx context.Context, table string, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	count, err := tc.db.Count(table)
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("table %s expected %d rows, got %d", table, expected, count)
	}
	return nil
}
