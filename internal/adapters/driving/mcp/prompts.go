package mcp

import (
	"context"
	"fmt"
	"unicode"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts registers the workflow prompt generators.
func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "create_budget",
		Description: "Generate a prompt for creating a budget spreadsheet",
		Arguments: []*mcp.PromptArgument{
			{Name: "budget_type", Description: "Type of budget, e.g. personal or business (default personal)"},
			{Name: "currency", Description: "Currency code (default USD)"},
		},
	}, s.handleCreateBudgetPrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "analyze_data",
		Description: "Generate a prompt for importing and analyzing data",
		Arguments: []*mcp.PromptArgument{
			{Name: "data_source", Description: "Where the data comes from", Required: true},
			{Name: "analysis_type", Description: "Kind of analysis to run (default summary)"},
		},
	}, s.handleAnalyzeDataPrompt)
}

func (s *Server) handleCreateBudgetPrompt(
	_ context.Context,
	req *mcp.GetPromptRequest,
) (*mcp.GetPromptResult, error) {
	budgetType := req.Params.Arguments["budget_type"]
	if budgetType == "" {
		budgetType = "personal"
	}
	currency := req.Params.Arguments["currency"]
	if currency == "" {
		currency = "USD"
	}

	text := fmt.Sprintf(`Please create a %s budget spreadsheet with the following:

1. Create a new spreadsheet titled "%s Budget %s"
2. Add sheets for: Overview, Income, Expenses, Monthly Breakdown, Annual Summary
3. Set up the Income sheet with columns: Source, Amount, Frequency, Annual Total
4. Set up the Expenses sheet with categories and subcategories
5. Add formulas to calculate totals and remaining budget
6. Apply formatting: headers in bold, currency format for amounts, colors for categories
7. Create a pie chart showing expense distribution
8. Add data validation dropdowns for categories and frequency

Currency: %s
Budget Type: %s
`, budgetType, capitalize(budgetType), currency, currency, budgetType)

	return &mcp.GetPromptResult{
		Description: "Create Budget Spreadsheet",
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}},
	}, nil
}

func (s *Server) handleAnalyzeDataPrompt(
	_ context.Context,
	req *mcp.GetPromptRequest,
) (*mcp.GetPromptResult, error) {
	dataSource := req.Params.Arguments["data_source"]
	analysisType := req.Params.Arguments["analysis_type"]
	if analysisType == "" {
		analysisType = "summary"
	}

	text := fmt.Sprintf(`Please help me analyze data from %s:

1. Import the data into a new spreadsheet
2. Clean and format the data appropriately
3. Create a summary sheet with key metrics
4. Add formulas for %s analysis
5. Create relevant charts and visualizations
6. Add pivot tables if applicable
7. Apply conditional formatting to highlight important values
8. Generate insights and recommendations

Data Source: %s
Analysis Type: %s
`, dataSource, analysisType, dataSource, analysisType)

	return &mcp.GetPromptResult{
		Description: "Import and Analyze Data",
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}},
	}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
