package usecase

import (
	"context"
	stderrors "errors"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/display/internal/domain"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/engine"
)

// Analyzer 分析引擎，由 gap_analyzer 的 engine.Engine 实现
type Analyzer interface {
	AnalyzeDocument(ctx context.Context, src engine.DocumentSource) (engine.Outcome, error)
	ScoutIdea(ctx context.Context, idea string) (engine.Outcome, error)
}

// ResearchUseCase 分析业务逻辑：调用引擎并转换结果，不保留任何状态
type ResearchUseCase struct {
	analyzer Analyzer
	log      *log.Helper
}

// NewResearchUseCase 创建分析业务逻辑实例
func NewResearchUseCase(analyzer Analyzer, logger log.Logger) *ResearchUseCase {
	return &ResearchUseCase{
		analyzer: analyzer,
		log:      log.NewHelper(logger),
	}
}

// AnalyzeDocument 文档分析
func (uc *ResearchUseCase) AnalyzeDocument(ctx context.Context, src engine.DocumentSource) (*domain.Analysis, error) {
	reqID := uuid.NewString()
	uc.log.WithContext(ctx).Infof("request %s: analyze document (%s)", reqID, src.Kind)

	out, err := uc.analyzer.AnalyzeDocument(ctx, src)
	if err != nil {
		uc.log.WithContext(ctx).Infof("request %s: rejected: %v", reqID, err)
		return nil, badRequest(err)
	}
	return uc.convert(ctx, reqID, out), nil
}

// ScoutIdea 构想侦察
func (uc *ResearchUseCase) ScoutIdea(ctx context.Context, idea string) (*domain.Analysis, error) {
	reqID := uuid.NewString()
	uc.log.WithContext(ctx).Infof("request %s: scout idea", reqID)

	out, err := uc.analyzer.ScoutIdea(ctx, idea)
	if err != nil {
		uc.log.WithContext(ctx).Infof("request %s: rejected: %v", reqID, err)
		return nil, badRequest(err)
	}
	return uc.convert(ctx, reqID, out), nil
}

func (uc *ResearchUseCase) convert(ctx context.Context, reqID string, out engine.Outcome) *domain.Analysis {
	res := out.Result()
	a := &domain.Analysis{
		RequestID:  reqID,
		Workflow:   string(out.Workflow),
		Subject:    out.Subject,
		Status:     string(out.Status()),
		Report:     res.Report,
		References: make([]domain.Reference, 0, len(res.References)),
	}
	for _, r := range res.References {
		a.References = append(a.References, domain.Reference{
			Kind:    string(r.Kind),
			Label:   r.Label(),
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
		})
	}

	if out.Err != nil {
		uc.log.WithContext(ctx).Warnf("request %s: %s failed: %v", reqID, a.Workflow, out.Err)
	} else {
		uc.log.WithContext(ctx).Infof("request %s: %s %s, references=%d", reqID, a.Workflow, a.Status, len(a.References))
	}
	return a
}

func badRequest(err error) error {
	var ve *engine.ValidationError
	if stderrors.As(err, &ve) {
		return errors.BadRequest("EMPTY_INPUT", ve.Message).WithCause(err)
	}
	return errors.InternalServer("ANALYZE_FAILED", err.Error()).WithCause(err)
}
