package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/vizlet-labs/vizlet-backend-go/internal/api"
	"github.com/vizlet-labs/vizlet-backend-go/internal/config"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/metrics"
	"github.com/vizlet-labs/vizlet-backend-go/internal/core/normalize"
	"github.com/vizlet-labs/vizlet-backend-go/pkg/logger"
)

// AnalyzeFlowTestSuite exercises the assembled router end to end: the
// full middleware chain, column detection, normalization and report
// assembly, driven over HTTP the way a frontend would.
type AnalyzeFlowTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (suite *AnalyzeFlowTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port: 8000,
			Host: "localhost",
			Mode: "production",
		},
		Security: config.SecurityConfig{
			EnableCORS:     true,
			AllowedOrigins: []string{"http://localhost:3000"},
			RateLimiting: config.SecurityRateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 600,
				BurstSize:         600,
			},
		},
		Analysis: config.AnalysisConfig{
			Schema: config.SchemaConfig{
				PreferredDateColumns: []string{"날짜", "date"},
				PreferredTextColumns: []string{"문의 내용", "content"},
				DateMinRatio:         0.5,
				TextMinAvgLength:     20,
			},
			Report: config.ReportLimitsConfig{
				MaxCategoryItems:             5,
				MaxDailyBreakdownDays:        10,
				MaxMonthlyDistributionMonths: 12,
				MaxSummaryItems:              4,
				ChangeThresholdPercent:       0.1,
				MonthlyDistributionColumns:   []string{"여행일"},
			},
		},
	}

	log := logger.New()
	log.SetOutput(io.Discard)

	norm := normalize.New(&normalize.Rules{
		Exact: map[string][]string{
			"예약 문의": {"예약문의", "예약 문의"},
		},
	})

	suite.router = api.NewRouter(cfg, log, norm, nil, metrics.NewHealthChecker())
}

type envelope struct {
	Success bool                   `json:"success"`
	Data    json.RawMessage        `json:"data"`
	Meta    map[string]interface{} `json:"meta"`
	Error   string                 `json:"error"`
}

type componentView struct {
	ComponentType string          `json:"component_type"`
	Title         string          `json:"title"`
	SourceColumn  string          `json:"source_column"`
	Icon          string          `json:"icon"`
	Color         string          `json:"color"`
	Data          json.RawMessage `json:"data"`
}

func (suite *AnalyzeFlowTestSuite) post(path, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var env envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func (suite *AnalyzeFlowTestSuite) components(env envelope) []componentView {
	var comps []componentView
	suite.Require().NoError(json.Unmarshal(env.Data, &comps))
	return comps
}

const inquiryRows = `[
	{"날짜": "2025-08-01", "분류": "예약문의", "문의 내용": "8월 출발 일정으로 예약 가능한지 확인 부탁드립니다."},
	{"날짜": "2025-08-01", "분류": "예약 문의", "문의 내용": "숙소 포함 패키지로 예약 확정 부탁드립니다."},
	{"날짜": "2025-08-02", "분류": "취소 문의", "문의 내용": "개인 사정으로 예약을 취소하려고 합니다."},
	{"날짜": "2025-07-10", "분류": "예약 문의", "문의 내용": "7월 말 출발 일정이 아직 남아 있을까요?"}
]`

func (suite *AnalyzeFlowTestSuite) TestSingleReport() {
	body := fmt.Sprintf(`{"rows": %s, "year": 2025, "month": 8, "reportType": "single"}`, inquiryRows)
	w, env := suite.post("/api/v1/analyze", body)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), env.Success)
	assert.Equal(suite.T(), "single", env.Meta["report_type"])
	assert.NotContains(suite.T(), env.Meta, "fallback")

	comps := suite.components(env)
	suite.Require().NotEmpty(comps)

	assert.Equal(suite.T(), "kpi", comps[0].ComponentType)
	var kpi struct {
		Value int `json:"value"`
	}
	suite.Require().NoError(json.Unmarshal(comps[0].Data, &kpi))
	assert.Equal(suite.T(), 3, kpi.Value)

	// The exact-match rule folds 예약문의 into 예약 문의 before counting.
	var barChart []struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	for _, c := range comps {
		if c.ComponentType == "bar_chart" && c.SourceColumn == "분류" {
			suite.Require().NoError(json.Unmarshal(c.Data, &barChart))
		}
	}
	suite.Require().NotEmpty(barChart)
	assert.Equal(suite.T(), "예약 문의", barChart[0].Name)
	assert.Equal(suite.T(), 2, barChart[0].Count)
}

func (suite *AnalyzeFlowTestSuite) TestComparisonReport() {
	body := fmt.Sprintf(`{"rows": %s, "year": 2025, "month": 8, "reportType": "comparison"}`, inquiryRows)
	w, env := suite.post("/api/v1/analyze", body)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "comparison", env.Meta["report_type"])

	comps := suite.components(env)
	suite.Require().NotEmpty(comps)
	assert.Equal(suite.T(), "comparison_kpi", comps[0].ComponentType)

	var kpi struct {
		CurrentValue  int    `json:"current_value"`
		PreviousValue int    `json:"previous_value"`
		ChangeText    string `json:"change_text"`
		ChangeStatus  string `json:"change_status"`
	}
	suite.Require().NoError(json.Unmarshal(comps[0].Data, &kpi))
	assert.Equal(suite.T(), 3, kpi.CurrentValue)
	assert.Equal(suite.T(), 1, kpi.PreviousValue)
	assert.Equal(suite.T(), "increase", kpi.ChangeStatus)
	assert.Equal(suite.T(), "200% increase", kpi.ChangeText)
}

func (suite *AnalyzeFlowTestSuite) TestComparisonDowngradesWithoutPriorMonth() {
	rows := `[
		{"날짜": "2025-08-01", "분류": "예약 문의"},
		{"날짜": "2025-08-02", "분류": "취소 문의"}
	]`
	body := fmt.Sprintf(`{"rows": %s, "year": 2025, "month": 8, "reportType": "comparison"}`, rows)
	w, env := suite.post("/api/v1/analyze", body)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "single", env.Meta["report_type"])
	for _, c := range suite.components(env) {
		assert.NotContains(suite.T(), c.ComponentType, "comparison")
	}
}

func (suite *AnalyzeFlowTestSuite) TestCumulativeReport() {
	rows := `[
		{"날짜": "2025-05-10", "매출": "1,000"},
		{"날짜": "2025-06-05", "매출": 200},
		{"날짜": "2025-07-15", "매출": 300}
	]`
	body := fmt.Sprintf(`{"rows": %s, "year": 2025, "month": 7, "reportType": "cumulative"}`, rows)
	w, env := suite.post("/api/v1/analyze", body)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	comps := suite.components(env)
	suite.Require().Len(comps, 2)
	assert.Equal(suite.T(), "cumulative_column", comps[0].ComponentType)
	assert.Equal(suite.T(), "cumulative_chart", comps[1].ComponentType)

	var column struct {
		Labels []string `json:"labels"`
		Values []int    `json:"values"`
	}
	suite.Require().NoError(json.Unmarshal(comps[0].Data, &column))
	assert.Equal(suite.T(), []string{"2025-05", "2025-06", "2025-07"}, column.Labels)
	assert.Equal(suite.T(), []int{1000, 200, 300}, column.Values)
}

func (suite *AnalyzeFlowTestSuite) TestEmptyRowsYieldEmptyReport() {
	w, env := suite.post("/api/v1/analyze", `{"rows": [], "year": 2025, "month": 8}`)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), env.Success)
	assert.Empty(suite.T(), suite.components(env))
}

func (suite *AnalyzeFlowTestSuite) TestInvalidPeriodRejected() {
	w, env := suite.post("/api/v1/analyze", `{"rows": [], "year": 2025, "month": 13}`)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.False(suite.T(), env.Success)
	assert.NotEmpty(suite.T(), env.Error)
}

func (suite *AnalyzeFlowTestSuite) TestSchemaDetection() {
	w, env := suite.post("/api/v1/schema", fmt.Sprintf(`{"rows": %s}`, inquiryRows))

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var sch struct {
		DateColumn         string   `json:"dateColumn"`
		CategoricalColumns []string `json:"categoricalColumns"`
		TextualColumn      string   `json:"textualColumn"`
	}
	suite.Require().NoError(json.Unmarshal(env.Data, &sch))
	assert.Equal(suite.T(), "날짜", sch.DateColumn)
	assert.Equal(suite.T(), []string{"분류"}, sch.CategoricalColumns)
	assert.Equal(suite.T(), "문의 내용", sch.TextualColumn)
}

func (suite *AnalyzeFlowTestSuite) TestHealthAndBanner() {
	for _, path := range []string{"/", "/health"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		suite.router.ServeHTTP(w, req)
		assert.Equal(suite.T(), http.StatusOK, w.Code, path)
		assert.NotEmpty(suite.T(), w.Header().Get("X-Request-ID"), path)
	}
}

func TestAnalyzeFlowTestSuite(t *testing.T) {
	suite.Run(t, new(AnalyzeFlowTestSuite))
}
