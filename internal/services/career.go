package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/datatypes"

	"github.com/yungbote/talent-analytics-backend/internal/clients/redis"
	"github.com/yungbote/talent-analytics-backend/internal/data/repos"
	types "github.com/yungbote/talent-analytics-backend/internal/domain"
	"github.com/yungbote/talent-analytics-backend/internal/domain/people"
	"github.com/yungbote/talent-analytics-backend/internal/observability"
	"github.com/yungbote/talent-analytics-backend/internal/platform/apierr"
	"github.com/yungbote/talent-analytics-backend/internal/platform/dbctx"
	"github.com/yungbote/talent-analytics-backend/internal/platform/logger"
)

type SkillGap struct {
	Skill         string `json:"skill"`
	RequiredLevel int    `json:"requiredLevel"`
	CurrentLevel  int    `json:"currentLevel"`
	Gap           int    `json:"gap"`
}

type SkillGapReport struct {
	EmployeeID      string     `json:"employeeId"`
	TargetRoleID    string     `json:"targetRoleId"`
	TargetRoleTitle string     `json:"targetRoleTitle"`
	Gaps            []SkillGap `json:"gaps"`
}

type CareerPath struct {
	RoleID string `json:"roleId"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

type LearningRecommendation struct {
	ItemID string `json:"itemId"`
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

type CareerRecommendation struct {
	Paths    []CareerPath             `json:"paths"`
	Learning []LearningRecommendation `json:"learning"`
}

type FeedbackAnalysis struct {
	SentimentScore *float64 `json:"sentimentScore"`
	Topics         []string `json:"topics"`
}

type FeedbackSummary struct {
	Summary string `json:"summary"`
}

type HighPotentialResult struct {
	EmployeeID        string  `json:"employeeId"`
	HighPotential     bool    `json:"highPotential"`
	PerformanceRating float64 `json:"performanceRating"`
	PotentialRating   float64 `json:"potentialRating"`
	TenureMonths      float64 `json:"tenureMonths"`
}

type AddFeedbackInput struct {
	EmployeeID string `json:"employeeId"`
	Source     string `json:"source"`
	Text       string `json:"text"`
	Analyze    bool   `json:"analyze"`
}

const noFeedbackSummary = "No feedback on file for this employee."

type CareerService interface {
	SkillGaps(ctx context.Context, employeeID, roleID string) (*SkillGapReport, error)
	RecommendCareerPaths(ctx context.Context, employeeID string) (Parsed[CareerRecommendation], error)
	AnalyzeFeedbackText(ctx context.Context, text string) (Parsed[FeedbackAnalysis], error)
	SummarizeFeedback(ctx context.Context, employeeID string) (*FeedbackSummary, error)
	AddFeedback(ctx context.Context, in AddFeedbackInput) (*types.Feedback, error)
	EvaluateHighPotential(ctx context.Context, employeeID string) (*HighPotentialResult, error)
}

type careerService struct {
	log         *logger.Logger
	employees   repos.EmployeeRepo
	roles       repos.JobRoleRepo
	items       repos.LearningItemRepo
	feedback    repos.FeedbackRepo
	predictions repos.PredictionRepo
	gen         Generator
	notifier    EventNotifier
	defaults    FeatureDefaults
	now         clock
}

func NewCareerService(
	log *logger.Logger,
	employees repos.EmployeeRepo,
	roles repos.JobRoleRepo,
	items repos.LearningItemRepo,
	feedback repos.FeedbackRepo,
	predictions repos.PredictionRepo,
	gen Generator,
	notifier EventNotifier,
) CareerService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &careerService{
		log:         log.With("service", "CareerService"),
		employees:   employees,
		roles:       roles,
		items:       items,
		feedback:    feedback,
		predictions: predictions,
		gen:         gen,
		notifier:    notifier,
		defaults:    DefaultFeatureDefaults(),
		now:         systemClock,
	}
}

// ComputeSkillGaps compares emp's skills with role requirements in the role's order.
// Skill names match case-insensitively; a missing skill counts as level 0.
func ComputeSkillGaps(emp *types.Employee, role *types.JobRole) []SkillGap {
	levels := make(map[string]int, len(emp.Skills))
	for _, s := range emp.Skills {
		levels[strings.ToLower(s.Name)] = s.Level
	}
	gaps := make([]SkillGap, 0, len(role.RequiredSkills))
	for _, req := range role.RequiredSkills {
		current := levels[strings.ToLower(req.Name)]
		gaps = append(gaps, SkillGap{
			Skill:         req.Name,
			RequiredLevel: req.MinLevel,
			CurrentLevel:  current,
			Gap:           max(0, req.MinLevel-current),
		})
	}
	return gaps
}

func (s *careerService) loadEmployee(dbc dbctx.Context, employeeID string) (*types.Employee, error) {
	emp, err := s.employees.GetByEmployeeID(dbc, employeeID)
	if err != nil {
		return nil, fmt.Errorf("load employee: %w", err)
	}
	if emp == nil {
		return nil, apierr.NotFound("employee not found")
	}
	return emp, nil
}

func (s *careerService) SkillGaps(ctx context.Context, employeeID, roleID string) (*SkillGapReport, error) {
	roleID = strings.TrimSpace(roleID)
	if roleID == "" {
		return nil, apierr.Validation("roleId query parameter is required")
	}
	dbc := dbctx.New(ctx)
	emp, err := s.loadEmployee(dbc, employeeID)
	if err != nil {
		return nil, err
	}
	role, err := s.roles.GetByRoleID(dbc, roleID)
	if err != nil {
		return nil, fmt.Errorf("load job role: %w", err)
	}
	if role == nil {
		return nil, apierr.NotFound("job role not found")
	}
	return &SkillGapReport{
		EmployeeID:      employeeID,
		TargetRoleID:    role.RoleID,
		TargetRoleTitle: role.Title,
		Gaps:            ComputeSkillGaps(emp, role),
	}, nil
}

func (s *careerService) RecommendCareerPaths(ctx context.Context, employeeID string) (Parsed[CareerRecommendation], error) {
	var zero Parsed[CareerRecommendation]
	dbc := dbctx.New(ctx)
	emp, err := s.loadEmployee(dbc, employeeID)
	if err != nil {
		return zero, err
	}
	roles, err := s.roles.List(dbc)
	if err != nil {
		return zero, fmt.Errorf("list job roles: %w", err)
	}
	items, err := s.items.List(dbc)
	if err != nil {
		return zero, fmt.Errorf("list learning items: %w", err)
	}

	prompt, err := careerPrompt(emp, roles, items)
	if err != nil {
		return zero, err
	}
	raw, err := s.gen.Generate(ctx, careerSystemPrompt, prompt)
	if err != nil {
		return zero, err
	}
	parsed := ParseCareerRecommendation(raw)
	if !parsed.OK() {
		observability.Current().IncFallback("career", "unparsable_output")
	}
	return parsed, nil
}

// ParseCareerRecommendation keeps any parseable JSON object. A paths or learning field that is
// not an array becomes empty, and list entries of the wrong shape are dropped.
func ParseCareerRecommendation(raw string) Parsed[CareerRecommendation] {
	fields := ParseGeneratorJSON[struct {
		Paths    json.RawMessage `json:"paths"`
		Learning json.RawMessage `json:"learning"`
	}](raw)
	if !fields.OK() {
		return Parsed[CareerRecommendation]{RawText: raw}
	}
	return Parsed[CareerRecommendation]{Value: &CareerRecommendation{
		Paths:    LenientArray[CareerPath](fields.Value.Paths),
		Learning: LenientArray[LearningRecommendation](fields.Value.Learning),
	}}
}

func careerPrompt(emp *types.Employee, roles []*types.JobRole, items []*types.LearningItem) (string, error) {
	type roleView struct {
		RoleID         string                `json:"roleId"`
		Title          string                `json:"title"`
		JobFamily      string                `json:"jobFamily"`
		Level          string                `json:"level"`
		RequiredSkills []types.RequiredSkill `json:"requiredSkills"`
	}
	type itemView struct {
		ItemID         string   `json:"itemId"`
		Title          string   `json:"title"`
		SkillsTargeted []string `json:"skillsTargeted"`
		Level          string   `json:"level"`
	}
	rv := make([]roleView, 0, len(roles))
	for _, r := range roles {
		rv = append(rv, roleView{r.RoleID, r.Title, r.JobFamily, r.Level, r.RequiredSkills})
	}
	iv := make([]itemView, 0, len(items))
	for _, it := range items {
		iv = append(iv, itemView{it.ItemID, it.Title, it.SkillsTargeted, it.Level})
	}

	profile, err := json.MarshalIndent(emp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode employee profile: %w", err)
	}
	rolesJSON, err := json.MarshalIndent(rv, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode roles: %w", err)
	}
	itemsJSON, err := json.MarshalIndent(iv, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode learning items: %w", err)
	}
	return fmt.Sprintf(
		"Employee profile: %s\nAvailable roles: %s\nAvailable learning items: %s\n"+
			"Recommend top 3 target roles and top 5 learning items to close skill gaps. "+
			`Respond with valid JSON only: {"paths":[...],"learning":[...]}.`,
		profile, rolesJSON, itemsJSON,
	), nil
}

func (s *careerService) AnalyzeFeedbackText(ctx context.Context, text string) (Parsed[FeedbackAnalysis], error) {
	var zero Parsed[FeedbackAnalysis]
	if strings.TrimSpace(text) == "" {
		return zero, apierr.Validation("text is required")
	}
	raw, err := s.gen.Generate(ctx, feedbackAnalyzeSystemPrompt, fmt.Sprintf("Feedback text:\n%s\n\nAnalyze the sentiment and main themes.", text))
	if err != nil {
		return zero, err
	}
	return ParseGeneratorJSON[FeedbackAnalysis](raw), nil
}

func (s *careerService) SummarizeFeedback(ctx context.Context, employeeID string) (*FeedbackSummary, error) {
	items, err := s.feedback.ListByEmployee(dbctx.New(ctx), employeeID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	if len(items) == 0 {
		return &FeedbackSummary{Summary: noFeedbackSummary}, nil
	}
	lines := make([]string, 0, len(items))
	for i, f := range items {
		src := f.Source
		if src == "" {
			src = people.FeedbackOther
		}
		lines = append(lines, fmt.Sprintf("%d. [%s]: %s", i+1, src, f.Text))
	}
	prompt := fmt.Sprintf(
		"Feedback items for this employee:\n\n%s\n\nSummarize into 2-3 bullet points (main themes and overall sentiment).",
		strings.Join(lines, "\n"),
	)
	summary, err := s.gen.Generate(ctx, feedbackSummarySystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	return &FeedbackSummary{Summary: summary}, nil
}

func (s *careerService) AddFeedback(ctx context.Context, in AddFeedbackInput) (*types.Feedback, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, apierr.Validation("text is required")
	}
	source := strings.ToLower(strings.TrimSpace(in.Source))
	if source == "" {
		source = people.FeedbackOther
	}
	if !people.ValidFeedbackSource(source) {
		return nil, apierr.Validation("invalid feedback source")
	}
	dbc := dbctx.New(ctx)
	if _, err := s.loadEmployee(dbc, in.EmployeeID); err != nil {
		return nil, err
	}

	fb := &types.Feedback{EmployeeID: in.EmployeeID, Source: source, Text: text}
	if in.Analyze {
		analysis, err := s.AnalyzeFeedbackText(ctx, text)
		switch {
		case err != nil:
			s.log.Warn("feedback analysis failed, storing without sentiment", "employee_id", in.EmployeeID, "error", err)
		case analysis.OK():
			fb.SentimentScore = analysis.Value.SentimentScore
			fb.Topics = datatypes.JSONSlice[string](analysis.Value.Topics)
		}
	}
	return s.feedback.Create(dbc, fb)
}

func (s *careerService) EvaluateHighPotential(ctx context.Context, employeeID string) (*HighPotentialResult, error) {
	dbc := dbctx.New(ctx)
	emp, err := s.loadEmployee(dbc, employeeID)
	if err != nil {
		return nil, err
	}
	perf := floatOr(emp.PerformanceRating, 3)
	pot := floatOr(emp.PotentialRating, 3)
	tenure := tenureMonths(emp, s.now(), s.defaults)
	hipo := IsHighPotential(perf, pot, tenure)

	if err := s.employees.UpdateHighPotential(dbc, employeeID, hipo); err != nil {
		return nil, fmt.Errorf("update high potential flag: %w", err)
	}

	score, band := 0.0, "standard"
	if hipo {
		score, band = 1, "hipo"
	}
	pred := &types.Prediction{
		EmployeeID: employeeID,
		Type:       types.PredictionHiPo,
		Score:      score,
		Band:       band,
		FeaturesUsed: datatypes.NewJSONType(map[string]any{
			"performanceRating": perf,
			"potentialRating":   pot,
			"tenureMonths":      tenure,
		}),
		ModelVersion: types.ModelHiPoRules,
	}
	if _, err := s.predictions.Create(dbc, pred); err != nil {
		s.log.Warn("hipo prediction store failed", "employee_id", employeeID, "error", err)
	} else {
		observability.Current().IncPrediction(types.PredictionHiPo, band)
	}

	s.notifier.Notify(ctx, redis.Event{
		Type:       EventHiPoEvaluated,
		EmployeeID: employeeID,
		Payload:    map[string]any{"highPotential": hipo},
	})
	return &HighPotentialResult{
		EmployeeID:        employeeID,
		HighPotential:     hipo,
		PerformanceRating: perf,
		PotentialRating:   pot,
		TenureMonths:      tenure,
	}, nil
}
