package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：集成测试辅助工具
//
// 集成测试 vs 单元测试：
// - 单元测试：Mock仓储接口，测试单个用例的逻辑
// - 集成测试：对着真实服务发HTTP请求，验证完整链路
//   （Handler → UseCase → Service → Repository → SQLite）
//
// 运行方式：
//   go run ./cmd/api                     # 先启动服务
//   go test -v ./test/integration/...
//
// 服务未启动时所有测试自动跳过（见RequireServer），不会误报失败

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// HealthURL 健康检查URL，用来探测服务是否在运行
	HealthURL = "http://localhost:8080/healthz"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second

	// AdminUsername 启动播种的默认管理员（与configs/config.yaml保持一致）
	AdminUsername = "admin"
	// AdminPassword 默认管理员密码
	AdminPassword = "contraseña"

	// TestPassword 所有测试用户共用的注册密码
	TestPassword = "secreto123"
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// UserData 用户响应数据
type UserData struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	IsDeleted bool   `json:"is_deleted"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// BookData 图书响应数据
type BookData struct {
	ID        uint    `json:"id"`
	Title     string  `json:"title"`
	Author    string  `json:"author"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
	IsDeleted bool    `json:"is_deleted"`
}

// SaleData 销售记录响应数据
type SaleData struct {
	ID         uint    `json:"id"`
	BookID     uint    `json:"book_id"`
	UserID     uint    `json:"user_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
	Date       string  `json:"date"`
	IsDeleted  bool    `json:"is_deleted"`
}

// PageData 分页响应数据
type PageData struct {
	List  json.RawMessage `json:"list"`
	Total int64           `json:"total"`
	Skip  int             `json:"skip"`
	Limit int             `json:"limit"`
}

// RequireServer 探测服务是否可达，不可达时跳过当前测试
func RequireServer(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(HealthURL)
	if err != nil {
		t.Skipf("服务未启动，跳过集成测试: %v", err)
	}
	resp.Body.Close()
}

// doJSON 发送HTTP请求并解析统一响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	t.Helper()
	return doJSON(t, http.MethodPost, url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Response {
	t.Helper()
	return doJSON(t, http.MethodGet, url, nil, token)
}

// PutJSON 发送PUT请求
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	t.Helper()
	return doJSON(t, http.MethodPut, url, data, token)
}

// DeleteJSON 发送DELETE请求
func DeleteJSON(t *testing.T, url string, token string) *Response {
	t.Helper()
	return doJSON(t, http.MethodDelete, url, nil, token)
}

// GenerateTestUsername 生成唯一的测试用户名
// 用户名限制为4-20个字符，prefix不要超过10个字符
func GenerateTestUsername(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, time.Now().UnixNano()%10000000000)
}

// GenerateTestTitle 生成唯一的测试书名
// 书名全局唯一（含已删除记录），加时间戳避免重复运行时撞名
func GenerateTestTitle(prefix string) string {
	return fmt.Sprintf("《%s》%d", prefix, time.Now().UnixNano()%10000000000)
}

// Today 服务端接受的销售日期（销售日期不能早于今天）
func Today() string {
	return time.Now().Format("2006-01-02")
}

// RegisterTestUser 注册测试用户并登录，返回用户名和Token
// 密码统一使用TestPassword，方便后续重新登录
func RegisterTestUser(t *testing.T, prefix string) (username, token string) {
	t.Helper()

	username = GenerateTestUsername(prefix)
	registerResp := PostJSON(t, BaseURL+"/auth/register", map[string]string{
		"username": username,
		"password": TestPassword,
	}, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	return username, Login(t, username, TestPassword)
}

// Login 登录并返回Token
func Login(t *testing.T, username, password string) string {
	t.Helper()

	loginResp := PostJSON(t, BaseURL+"/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return loginData.AccessToken
}

// LoginAdmin 使用启动播种的默认管理员登录
func LoginAdmin(t *testing.T) string {
	t.Helper()
	return Login(t, AdminUsername, AdminPassword)
}

// CreateTestBook 管理员录入测试图书，返回图书数据
func CreateTestBook(t *testing.T, adminToken, titlePrefix string, price float64, stock int) *BookData {
	t.Helper()

	bookResp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
		"title":    GenerateTestTitle(titlePrefix),
		"author":   "测试作者",
		"category": "测试",
		"price":    price,
		"stock":    stock,
	}, adminToken)
	require.Equal(t, 0, bookResp.Code, "图书录入失败: %s", bookResp.Message)

	var bookData BookData
	err := json.Unmarshal(bookResp.Data, &bookData)
	require.NoError(t, err, "解析图书响应失败")

	return &bookData
}

// GetBookStock 查询图书当前库存（核对扣减结果用）
func GetBookStock(t *testing.T, token string, bookID uint) int {
	t.Helper()

	resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), token)
	require.Equal(t, 0, resp.Code, "查询图书失败: %s", resp.Message)

	var bookData BookData
	err := json.Unmarshal(resp.Data, &bookData)
	require.NoError(t, err, "解析图书响应失败")

	return bookData.Stock
}

// CreateTestSale 创建销售记录，返回销售数据
func CreateTestSale(t *testing.T, token string, bookID uint, quantity int) *SaleData {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/sales", map[string]interface{}{
		"book_id":  bookID,
		"quantity": quantity,
		"date":     Today(),
	}, token)
	require.Equal(t, 0, resp.Code, "创建销售失败: %s", resp.Message)

	var saleData SaleData
	err := json.Unmarshal(resp.Data, &saleData)
	require.NoError(t, err, "解析销售响应失败")

	return &saleData
}
