// Package scheduling drafts interview logistics and invitation emails for
// shortlisted candidates.
package scheduling

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/job-screening/internal/llm"
	"github.com/jonathan/job-screening/internal/logging"
	"github.com/jonathan/job-screening/internal/prompts"
	"github.com/jonathan/job-screening/internal/schemas"
	"github.com/jonathan/job-screening/internal/types"
	"go.uber.org/zap"
)

// Options controls the drafter's clock and business hours.
type Options struct {
	Now           func() time.Time
	Location      *time.Location
	BusinessStart int
	BusinessEnd   int
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.BusinessStart <= 0 || o.BusinessStart > 23 {
		o.BusinessStart = 9
	}
	if o.BusinessEnd <= o.BusinessStart || o.BusinessEnd > 24 {
		o.BusinessEnd = 17
		if o.BusinessEnd <= o.BusinessStart {
			o.BusinessEnd = o.BusinessStart + 1
		}
	}
	return o
}

// Draft is a drafted interview with the status of each generated part.
type Draft struct {
	Interview       *types.Interview
	LogisticsStatus types.ResultStatus
	EmailStatus     types.ResultStatus
}

// Drafter generates interview drafts.
type Drafter struct {
	gen    llm.Client
	opts   Options
	logger *zap.Logger
}

// NewDrafter returns a Drafter. gen may be nil, in which case defaults are used.
func NewDrafter(gen llm.Client, logger *zap.Logger, opts Options) *Drafter {
	logger = logging.WithComponent(logger, "interview_drafter")
	if gen != nil {
		logger = logging.WithModel(logger, "gemini", gen.GetModel(llm.TierStandard))
	}
	return &Drafter{gen: gen, opts: opts.withDefaults(), logger: logger}
}

type logistics struct {
	Date         string          `json:"date"`
	Time         string          `json:"time"`
	Duration     json.RawMessage `json:"duration"`
	Type         string          `json:"type"`
	Format       string          `json:"format"`
	Topics       []string        `json:"topics"`
	Interviewers []string        `json:"interviewers"`
}

// Draft never fails. Logistics and email fall back to defaults independently.
func (d *Drafter) Draft(ctx context.Context, job *types.Job, c *types.Candidate, details types.MatchDetails) (out Draft) {
	now := d.opts.Now()
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("interview drafting panicked", zap.Any("panic", r))
			iv := d.defaultInterview(now)
			iv.Invitation = DefaultInvitation(job, c, iv, d.logger)
			iv.DraftStatus = types.StatusFailed
			out = Draft{Interview: iv, LogisticsStatus: types.StatusFailed, EmailStatus: types.StatusFailed}
		}
	}()

	iv, logStatus := d.draftLogistics(ctx, job, c, details, now)
	inv, emailStatus := d.draftEmail(ctx, job, c, iv)
	iv.Invitation = inv
	iv.DraftStatus = types.Worst(logStatus, emailStatus)

	d.logger.Info("interview drafted",
		zap.Time("scheduled_at", iv.ScheduledAt),
		zap.String("logistics_status", string(logStatus)),
		zap.String("email_status", string(emailStatus)),
	)
	return Draft{Interview: iv, LogisticsStatus: logStatus, EmailStatus: emailStatus}
}

func (d *Drafter) defaultInterview(now time.Time) *types.Interview {
	slot := d.opts.defaultSlot(now)
	return &types.Interview{
		ScheduledAt:     slot,
		DurationMinutes: DefaultDuration,
		Type:            DefaultType,
		Format:          DefaultFormat,
		Topics:          DefaultTopics(),
		Interviewers:    DefaultInterviewers(),
		SuggestedSlots:  d.opts.suggestSlots(slot),
		Status:          types.InterviewScheduled,
	}
}

func (d *Drafter) draftLogistics(ctx context.Context, job *types.Job, c *types.Candidate, details types.MatchDetails, now time.Time) (*types.Interview, types.ResultStatus) {
	if d.gen == nil {
		return d.defaultInterview(now), types.StatusFailed
	}

	prompt, err := prompts.Render("scheduling.json", "interview-details", map[string]any{
		"JobTitle":       titleOf(job),
		"CandidateName":  nameOf(c),
		"Score":          details.OverallScore,
		"MatchingSkills": details.MatchingSkills,
		"Today":          now.In(d.opts.Location).Format(dateLayout),
		"BusinessStart":  d.opts.BusinessStart,
		"BusinessEnd":    d.opts.BusinessEnd,
	})
	if err != nil {
		d.logger.Warn("failed to render logistics prompt", zap.Error(err))
		return d.defaultInterview(now), types.StatusFailed
	}

	resp, err := d.gen.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		d.logger.Warn("generative provider failed, using default logistics", zap.Error(err))
		return d.defaultInterview(now), types.StatusFailed
	}
	d.logger.Debug("logistics response", zap.String("response", logging.TruncateForLog(resp, 300)))

	var rec logistics
	if err := decode(resp, schemas.InterviewDetails, &rec); err != nil {
		d.logger.Warn("unusable logistics response, using defaults", zap.Error(err))
		return d.defaultInterview(now), types.StatusDegraded
	}

	slot, err := parseSlot(rec.Date, rec.Time, d.opts.Location)
	if err != nil {
		d.logger.Warn("unparseable interview date, using defaults", zap.Error(err))
		return d.defaultInterview(now), types.StatusDegraded
	}

	status := types.StatusSuccess
	slot, ok := ensureFuture(slot, now)
	if !ok {
		d.logger.Warn("generated interview date is in the past, using default slot", zap.Time("generated", slot))
		slot = d.opts.defaultSlot(now)
		status = types.StatusDegraded
	}

	iv := &types.Interview{
		ScheduledAt:     slot,
		DurationMinutes: parseDuration(rec.Duration),
		Type:            orDefault(rec.Type, DefaultType),
		Format:          orDefault(rec.Format, DefaultFormat),
		Topics:          nonEmpty(rec.Topics, DefaultTopics()),
		Interviewers:    nonEmpty(rec.Interviewers, DefaultInterviewers()),
		SuggestedSlots:  d.opts.suggestSlots(slot),
		Status:          types.InterviewScheduled,
	}
	return iv, status
}

func (d *Drafter) draftEmail(ctx context.Context, job *types.Job, c *types.Candidate, iv *types.Interview) (types.Invitation, types.ResultStatus) {
	if d.gen == nil {
		return DefaultInvitation(job, c, iv, d.logger), types.StatusFailed
	}

	prompt, err := prompts.Render("scheduling.json", "invitation-email", map[string]any{
		"JobTitle":      titleOf(job),
		"CandidateName": nameOf(c),
		"Date":          iv.ScheduledAt.Format(dateLayout),
		"Time":          iv.ScheduledAt.Format(clockLayout),
		"Duration":      iv.DurationMinutes,
		"Type":          iv.Type,
		"Format":        iv.Format,
		"Topics":        iv.Topics,
	})
	if err != nil {
		d.logger.Warn("failed to render email prompt", zap.Error(err))
		return DefaultInvitation(job, c, iv, d.logger), types.StatusFailed
	}

	resp, err := d.gen.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		d.logger.Warn("generative provider failed, using default invitation", zap.Error(err))
		return DefaultInvitation(job, c, iv, d.logger), types.StatusFailed
	}

	var inv types.Invitation
	if err := decode(resp, schemas.InvitationEmail, &inv); err != nil {
		d.logger.Warn("unusable invitation response, using default invitation", zap.Error(err))
		return DefaultInvitation(job, c, iv, d.logger), types.StatusDegraded
	}
	return inv, types.StatusSuccess
}

func decode(resp, schemaName string, out any) error {
	body := llm.CleanJSONBlock(resp)
	if !json.Valid([]byte(body)) {
		return errors.New("response is not valid JSON")
	}
	if err := schemas.Validate(schemaName, body); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// parseDuration accepts 45, "45" or "45 minutes".
func parseDuration(raw json.RawMessage) int {
	if len(raw) == 0 {
		return DefaultDuration
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil && n > 0 {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return DefaultDuration
	}
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if n, err := strconv.Atoi(s[:end]); err == nil && n > 0 {
		return n
	}
	return DefaultDuration
}

func titleOf(job *types.Job) string {
	if job == nil {
		return ""
	}
	return job.Title
}

func nameOf(c *types.Candidate) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func orDefault(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}

func nonEmpty(items, def []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
