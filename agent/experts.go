package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/snowball"
	"github.com/etnz/snowball/date"
	"github.com/etnz/snowball/docs"
	"github.com/etnz/snowball/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

func instruction(text string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: text}}}
}

// NewFacilitator creates the expert talking to the user.
func NewFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user owns a portfolio spread over retirement, brokerage, crypto and cash accounts.
			They come primarily to understand its performance: returns, drawdowns, inflation,
			and what is wrong in their data.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
			Answer in markdown. Never make up a figure, ask the Analyst.
		`),
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher creates an expert grounded on Google Search.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert of financial markets,
		aware of financial products and institutions, and of the latest news about funds or companies.
		Ask the Researcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are an expert of financial markets, you can search and find about anything related to
			financial institutions, companies, markets, funds, inflation etc. You leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
			`),
		},
	}
}

// NewAnalyst creates the expert answering from the figures of a.
func NewAnalyst(a *snowball.Analysis) *Expert {
	lib := analystFunctions(a)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. They have computed the user's portfolio figures:
		summary, monthly timeline, calendar of monthly returns, drawdowns, live assets and data issues.
		Ask the Analyst about any figure of the user's portfolio and how it is computed.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
				You are the analyst of the user's portfolio. Use the Tools to get its figures,
				never compute a figure the tools already give.
				You are part of a team of experts, they might ask you questions with approximate
				language, figure out what they meant.

				Below is the documentation of how the figures are computed.

				` + must(docs.GetTopic("*"))),
		},
		Library: NewLibrary(lib),
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

var noParameters = &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}}

func markdownResponse(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

// analystFunctions are the tools of the Analyst, all reading a.
func analystFunctions(a *snowball.Analysis) []Function {
	static := func(name, description string, render func() string) Function {
		return &Func{
			Decl: &genai.FunctionDeclaration{
				Name:        name,
				Description: description,
				Parameters:  noParameters,
				Response:    markdownResponse(description),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				return output(id, name, render())
			},
		}
	}

	return []Function{
		static("get_summary", "A markdown summary of the portfolio: total value, profit, returns (time and money weighted) and the allocation per account.",
			func() string {
				s := renderer.Summary(a.Summary)
				if last := a.Timeline.Last(); !last.Month.IsZero() {
					s += renderer.Allocation(last)
				}
				return s
			}),
		static("get_calendar", "A markdown table of the monthly returns of the actively managed accounts per year, with quarters and year totals, then the average return per calendar month.",
			func() string { return renderer.Calendar(a.Calendar) + renderer.Seasonality(a.Seasonality) }),
		static("get_report", "A markdown report of the data issues found: rejected files, invalid rows, inconsistent history, missing prices.",
			func() string { return renderer.Report(a.Report) }),
		static("get_assets", "A markdown table of the live positions with their cost, value, profit and 24h change, then the net invested capital per account.",
			func() string { return renderer.Assets(a.Assets, a.Reconciliations) }),
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "get_timeline",
				Description: "A markdown table of the portfolio month by month: invested capital, profit, value, real value, ROI, cumulative TWR and benchmarks.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"from": {Type: genai.TypeString, Description: "First month to show, as YYYY-MM. Defaults to the first month."},
						"to":   {Type: genai.TypeString, Description: "Last month to show, as YYYY-MM. Defaults to the last month."},
					},
				},
				Response: markdownResponse("The timeline table."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				from, err := monthArg(args, "from")
				if err != nil {
					return failure(id, "get_timeline", err)
				}
				to, err := monthArg(args, "to")
				if err != nil {
					return failure(id, "get_timeline", err)
				}
				return output(id, "get_timeline", renderer.Timeline(a.Timeline.Within(span(a.Timeline, from, to))))
			},
		},
		&Func{
			Decl: &genai.FunctionDeclaration{
				Name:        "get_drawdown",
				Description: "A markdown table of the decline from the running peak of the total value each month, and the maximum drawdown.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"active": {Type: genai.TypeBoolean, Description: "Only the actively managed accounts, retirement excluded."},
					},
				},
				Response: markdownResponse("The drawdown table."),
			},
			Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
				if active, _ := args["active"].(bool); active {
					return output(id, "get_drawdown", renderer.Drawdown("Active Drawdown", a.ActiveDrawdown))
				}
				return output(id, "get_drawdown", renderer.Drawdown("Drawdown", a.Drawdown))
			},
		},
	}
}

// monthArg parses the optional month argument name.
func monthArg(args map[string]any, name string) (date.Month, error) {
	v, ok := args[name]
	if !ok {
		return date.Month{}, nil
	}
	s, ok := v.(string)
	if !ok {
		return date.Month{}, fmt.Errorf("argument %q is not a string as expected but %T", name, v)
	}
	if strings.TrimSpace(s) == "" {
		return date.Month{}, nil
	}
	return date.ParseMonth(s)
}

// span returns the range of t restricted to from..to, zero months are unbounded.
func span(t snowball.Timeline, from, to date.Month) date.Range {
	r := t.Span()
	if !from.IsZero() {
		r.From = from.Start()
	}
	if !to.IsZero() {
		r.To = to.End()
	}
	return r
}
