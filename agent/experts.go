package agent

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/ctgr/coinpnl"
	"github.com/ctgr/coinpnl/renderer"
)

const model = "gemini-2.5-pro"

// ReportLoader reads the user's ledger and extra info files and folds
// them into a report. The accountant calls it on every question, the
// user may have edited the files between two questions.
type ReportLoader func() (*coinpnl.Report, error)

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand his crypto wallet: what he holds, what it cost
			him, what profit or loss he realized and what he owes taxes on.

			Devise a plan of questions to ask to each experts and come up with the best response to
			the user's request. Amounts come from the accountant, never invent figures.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst is the market expert, it grounds its answers in a web
// search.
func NewAnalyst() *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is an expert crypto market analyst,
		very well aware of the exchanges, the coins and the latest market news.
		Ask the Analyst whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in crypto markets, you can search and find about anything related to
			exchanges, coins, protocols and market events. You leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewAccountant is the ledger expert, it answers from the user's own
// transaction history through function calls.
func NewAccountant(load ReportLoader) *Expert {

	lib := []Function{balancesFunc(load), transactionLogFunc(load), annualReportsFunc(load)}

	return &Expert{
		Name: "Accountant",
		Description: `This is the Accountant. He has read access to the user's transaction ledger.
		He can compute the wallet content, the cost basis of every held asset, the realized
		profit and loss of every transaction and the year-end tax summaries.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an accountant in charge of the user's crypto transaction ledger.
				You know how to use the Tools to extract relevant information about the user's
				wallet and realized profits. You are part of a team of experts, yours is everything
				about the user's own transactions. They might ask you questions in approximative
				language, figure out what they meant.

				Use the available tools to get information about
				  - the wallet content and cost basis
				  - the transaction log with the realized PNL
				  - the year-end summaries
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// respond wraps a markdown result, or the error, into a function
// response.
func respond(id, name string, output string, err error) *genai.FunctionResponse {
	resp := &genai.FunctionResponse{ID: id, Name: name}
	if err != nil {
		resp.Response = map[string]any{"error": err.Error()}
		return resp
	}
	resp.Response = map[string]any{"output": output}
	return resp
}

func balancesFunc(load ReportLoader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Balances",
			Description: `Balances lists every asset currently held in the user's wallet,
			with its amount, its average obtain price in USDT and its cost basis.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the held assets.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			report, err := load()
			if err != nil {
				return respond(id, "Balances", "", err)
			}
			return respond(id, "Balances", renderer.BalanceMarkdown(report.Current()), nil)
		},
	}
}

func transactionLogFunc(load ReportLoader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "TransactionLog",
			Description: `TransactionLog lists every transaction of the ledger in order,
			with its kind, the asset and amount involved, the obtain price, the realized
			profit or loss and the running profit or loss after it.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of all transactions.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			report, err := load()
			if err != nil {
				return respond(id, "TransactionLog", "", err)
			}
			return respond(id, "TransactionLog", renderer.LogMarkdown(report.Snapshots()), nil)
		},
	}
}

func annualReportsFunc(load ReportLoader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "AnnualReports",
			Description: `AnnualReports gives, for every year of the ledger, the realized
			profit and loss and the wallet value at year end, in USD and in the user's
			home currency. This is what the user declares taxes on.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the year-end summaries.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			report, err := load()
			if err != nil {
				return respond(id, "AnnualReports", "", err)
			}
			reports, err := report.CreateAnnualReports()
			if err != nil {
				return respond(id, "AnnualReports", "", err)
			}
			return respond(id, "AnnualReports", renderer.AnnualMarkdown(reports, homeCurrencyLabel(report)), nil)
		},
	}
}

func homeCurrencyLabel(report *coinpnl.Report) string {
	if c := strings.TrimSpace(report.HomeCurrency()); c != "" {
		return c
	}
	return "USD"
}
