package export

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"huangye/pkg/model"
)

const feishuBaseURL = "https://open.feishu.cn"

// FeishuExporter mirrors submissions into a Feishu Bitable table.
type FeishuExporter struct {
	client    *resty.Client
	appID     string
	appSecret string
	appToken  string
	tableID   string

	mu          sync.Mutex
	tenantToken string
	tokenExpiry time.Time
}

// NewFeishuExporter creates the exporter. baseURL is overridable for tests;
// pass "" for production.
func NewFeishuExporter(appID, appSecret, appToken, tableID, baseURL string) *FeishuExporter {
	if baseURL == "" {
		baseURL = feishuBaseURL
	}
	return &FeishuExporter{
		client:    resty.New().SetBaseURL(baseURL).SetTimeout(15 * time.Second),
		appID:     appID,
		appSecret: appSecret,
		appToken:  appToken,
		tableID:   tableID,
	}
}

// Name identifies the sink in logs.
func (e *FeishuExporter) Name() string { return "feishu" }

type tenantTokenResponse struct {
	Code              int    `json:"code"`
	Msg               string `json:"msg"`
	TenantAccessToken string `json:"tenant_access_token"`
	Expire            int    `json:"expire"`
}

// token returns a valid tenant access token, refreshing when expired.
func (e *FeishuExporter) token(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.tenantToken != "" && time.Now().Before(e.tokenExpiry) {
		return e.tenantToken, nil
	}

	var result tenantTokenResponse
	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"app_id": e.appID, "app_secret": e.appSecret}).
		SetResult(&result).
		Post("/open-apis/auth/v3/tenant_access_token/internal")
	if err != nil {
		return "", fmt.Errorf("feishu token request failed: %w", err)
	}
	if resp.IsError() || result.Code != 0 {
		return "", fmt.Errorf("feishu token request rejected: code=%d msg=%s", result.Code, result.Msg)
	}

	e.tenantToken = result.TenantAccessToken
	// Refresh a minute before the server-side expiry.
	e.tokenExpiry = time.Now().Add(time.Duration(result.Expire-60) * time.Second)
	return e.tenantToken, nil
}

type recordResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Export inserts one submission as a Bitable record.
func (e *FeishuExporter) Export(ctx context.Context, sub *model.Submission) error {
	token, err := e.token(ctx)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{
		"提交时间": sub.CreatedAt.Format("2006-01-02 15:04:05"),
		"姓名":   sub.Name,
		"邮箱":   sub.Email,
		"城市":   sub.City,
		"类型":   sub.Type,
		"详情":   sub.Details,
		"联系方式": sub.Contact,
	}

	var result recordResponse
	resp, err := e.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(map[string]interface{}{"fields": fields}).
		SetResult(&result).
		Post(fmt.Sprintf("/open-apis/bitable/v1/apps/%s/tables/%s/records", e.appToken, e.tableID))
	if err != nil {
		return fmt.Errorf("feishu record insert failed: %w", err)
	}
	if resp.IsError() || result.Code != 0 {
		return fmt.Errorf("feishu record insert rejected: code=%d msg=%s", result.Code, result.Msg)
	}

	return nil
}
