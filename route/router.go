package route

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/telcoagents/core"
	"github.com/hupe1980/telcoagents/logging"
	"github.com/hupe1980/telcoagents/model"
)

// Category identifies the specialist lane a conversation is routed to.
type Category string

const (
	// CategoryInfrastructure covers complete loss of cellular service, SIM
	// problems and line suspensions.
	CategoryInfrastructure Category = "infrastructure_issue"
	// CategoryApplication covers mobile data and MMS problems sitting on top
	// of working cellular service.
	CategoryApplication Category = "application_issue"
	// CategoryService covers no-service connectivity problems.
	CategoryService Category = "service_issue"
	// CategoryMobileData covers broken or slow mobile data.
	CategoryMobileData Category = "mobile_data_issue"
	// CategoryMMS covers picture, video and group messaging failures.
	CategoryMMS Category = "mms_issue"
)

// Scheme selects the category set, classifier prompts and response parsing a
// Router uses.
type Scheme int

const (
	// SchemeTwoCategory splits issues into an infrastructure lane and an
	// application lane, classifying from the full conversation.
	SchemeTwoCategory Scheme = iota
	// SchemeThreeCategory splits issues into service, mobile data and MMS
	// lanes, classifying from the full conversation.
	SchemeThreeCategory
	// SchemeFirstMessage splits issues into service, mobile data and MMS
	// lanes, classifying once from the opening user message.
	SchemeFirstMessage
)

// String implements the fmt.Stringer interface.
func (s Scheme) String() string {
	switch s {
	case SchemeTwoCategory:
		return "two_category"
	case SchemeThreeCategory:
		return "three_category"
	case SchemeFirstMessage:
		return "first_message"
	default:
		return "unknown"
	}
}

// Categories returns the closed category set of the scheme.
func (s Scheme) Categories() []Category {
	if s == SchemeTwoCategory {
		return []Category{CategoryInfrastructure, CategoryApplication}
	}

	return []Category{CategoryService, CategoryMobileData, CategoryMMS}
}

// Fallback returns the category used when classification fails or nothing in
// the response matches. Both scheme families fall back to their most
// foundational connectivity lane.
func (s Scheme) Fallback() Category {
	if s == SchemeTwoCategory {
		return CategoryInfrastructure
	}

	return CategoryService
}

func (s Scheme) systemPrompt() string {
	switch s {
	case SchemeTwoCategory:
		return twoCategorySystemPrompt
	case SchemeFirstMessage:
		return firstMessageSystemPrompt
	default:
		return threeCategorySystemPrompt
	}
}

// parse maps a raw classifier response onto a category. The reported bool is
// false when the fallback was used because nothing matched.
func (s Scheme) parse(text string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))

	switch s {
	case SchemeTwoCategory:
		return parseTwoCategory(normalized)
	case SchemeFirstMessage:
		return parseFirstMessage(normalized)
	default:
		return parseThreeCategory(normalized)
	}
}

// parseTwoCategory tries exact tokens first, then canonical substrings, then
// the three category tokens mapped onto their two category lanes: service
// belongs to infrastructure, data and MMS to application.
func parseTwoCategory(text string) (Category, bool) {
	switch Category(text) {
	case CategoryInfrastructure:
		return CategoryInfrastructure, true
	case CategoryApplication:
		return CategoryApplication, true
	}

	if strings.Contains(text, "infrastructure") {
		return CategoryInfrastructure, true
	}
	if strings.Contains(text, "application") {
		return CategoryApplication, true
	}

	if strings.Contains(text, "service") {
		return CategoryInfrastructure, true
	}
	if strings.Contains(text, "mms") || strings.Contains(text, "data") {
		return CategoryApplication, true
	}

	return CategoryInfrastructure, false
}

// parseThreeCategory tries exact tokens first, then substrings in
// most-specific-first order so "mms" wins over the "data" it depends on.
func parseThreeCategory(text string) (Category, bool) {
	switch Category(text) {
	case CategoryMMS:
		return CategoryMMS, true
	case CategoryMobileData:
		return CategoryMobileData, true
	case CategoryService:
		return CategoryService, true
	}

	if strings.Contains(text, "mms") {
		return CategoryMMS, true
	}
	if strings.Contains(text, "mobile_data") || strings.Contains(text, "data_issue") {
		return CategoryMobileData, true
	}
	if strings.Contains(text, "service") {
		return CategoryService, true
	}

	return CategoryService, false
}

// parseFirstMessage matches canonical stems by substring only, in
// most-specific-first order.
func parseFirstMessage(text string) (Category, bool) {
	if strings.Contains(text, "mms") {
		return CategoryMMS, true
	}
	if strings.Contains(text, "data") {
		return CategoryMobileData, true
	}
	if strings.Contains(text, "service") {
		return CategoryService, true
	}

	return CategoryService, false
}

// routerToolResultLimit bounds how much of each tool result the classifier
// sees.
const routerToolResultLimit = 500

// Options configure a Router.
type Options struct {
	// Logger receives routing lifecycle events.
	Logger logging.Logger
	// GenOptions are passed through to every classifier invocation. The
	// pointer is shared with the owning driver so later seed changes apply
	// here too.
	GenOptions *model.GenOptions
}

// Router classifies conversations onto a scheme's specialist categories. The
// classifier model is invoked without tools; failures and unparseable
// responses resolve to the scheme fallback rather than aborting the turn.
type Router struct {
	model   model.Model
	scheme  Scheme
	genOpts *model.GenOptions
	logger  logging.Logger
}

// NewRouter creates a Router for the given scheme.
func NewRouter(m model.Model, scheme Scheme, optFns ...func(o *Options)) *Router {
	opts := Options{
		Logger: logging.NewNoOpLogger(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Router{
		model:   m,
		scheme:  scheme,
		genOpts: opts.GenOptions,
		logger:  opts.Logger,
	}
}

// Scheme returns the routing scheme the router classifies with.
func (r *Router) Scheme() Scheme { return r.scheme }

// Classify determines the specialist category for the conversation so far.
// The full transcript is rendered into the classifier prompt. The returned
// expense carries the classifier spend whether or not parsing succeeded.
func (r *Router) Classify(ctx context.Context, transcript *core.Transcript) (Category, *core.Expense, error) {
	prompt := fmt.Sprintf(conversationPrompt, renderConversation(transcript), joinCategories(r.scheme.Categories()))

	return r.classify(ctx, prompt)
}

// ClassifyFirst determines the specialist category from the opening user
// message alone, before any history exists.
func (r *Router) ClassifyFirst(ctx context.Context, userContent string) (Category, *core.Expense, error) {
	return r.classify(ctx, fmt.Sprintf(firstMessagePrompt, userContent))
}

func (r *Router) classify(ctx context.Context, userContent string) (Category, *core.Expense, error) {
	expense := &core.Expense{}

	req := &model.Request{
		Messages: []core.Message{
			&core.SystemMessage{Content: r.scheme.systemPrompt()},
			&core.UserMessage{Content: userContent},
		},
		Options: r.genOpts,
	}

	resp, err := r.model.Generate(ctx, req)
	if err != nil {
		fallback := r.scheme.Fallback()

		if ctx.Err() != nil {
			return fallback, expense, err
		}

		r.logger.Error("router.failed", "error", err, "fallback", string(fallback))

		return fallback, expense, nil
	}

	expense.Record(resp.Cost, resp.Usage)

	category, ok := r.scheme.parse(resp.Content)
	if !ok {
		r.logger.Warn("router.response.unparsed", "response", resp.Content, "fallback", string(category))
	} else {
		r.logger.Debug("router.classified", "scheme", r.scheme.String(), "category", string(category))
	}

	return category, expense, nil
}

// renderConversation flattens the transcript into the line oriented form the
// classifier prompt embeds. Messages with empty content are skipped, tool
// call requests are omitted and tool results are truncated.
func renderConversation(t *core.Transcript) string {
	var lines []string

	for _, m := range t.Messages() {
		switch msg := m.(type) {
		case *core.UserMessage:
			if msg.Content != "" {
				lines = append(lines, "USER: "+msg.Content)
			}
		case *core.AssistantMessage:
			if msg.Content != "" {
				lines = append(lines, "ASSISTANT: "+msg.Content)
			}
		case *core.ToolMessage:
			if msg.Content != "" {
				lines = append(lines, "TOOL_RESULT: "+truncate(msg.Content, routerToolResultLimit))
			}
		}
	}

	if len(lines) == 0 {
		return "No conversation history available."
	}

	return strings.Join(lines, "\n")
}

func joinCategories(categories []Category) string {
	parts := make([]string, len(categories))
	for i, c := range categories {
		parts[i] = string(c)
	}

	return strings.Join(parts, ", ")
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n])
}
