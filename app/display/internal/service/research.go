package service

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	khttp "github.com/go-kratos/kratos/v2/transport/http"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/display/internal/conf"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/display/internal/domain"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/display/internal/usecase"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/engine"
)

const (
	OperationAnalyzeURL  = "/research.v1.Research/AnalyzeURL"
	OperationUploadPaper = "/research.v1.Research/UploadPaper"
	OperationScoutIdea   = "/research.v1.Research/ScoutIdea"
)

const (
	defaultMaxUploadMB = 32
	uploadFormField    = "file"
	// multipart 内存缓冲，超出部分落临时文件，请求结束即删除
	multipartMemory = 1 << 20
)

type AnalyzeURLRequest struct {
	URL string `json:"url"`
}

type ScoutIdeaRequest struct {
	Idea string `json:"idea"`
}

type uploadRequest struct {
	FileName string
}

type Reference struct {
	Kind    string `json:"kind"`
	Label   string `json:"label"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content,omitempty"`
}

type AnalysisReply struct {
	RequestID  string      `json:"request_id"`
	Workflow   string      `json:"workflow"`
	Subject    string      `json:"subject"`
	Status     string      `json:"status"`
	Report     string      `json:"report"`
	References []Reference `json:"references"`
}

// ResearchService 对外 HTTP 接口
type ResearchService struct {
	uc        *usecase.ResearchUseCase
	maxUpload int64
	log       *log.Helper
}

func NewResearchService(c *conf.Server, uc *usecase.ResearchUseCase, logger log.Logger) *ResearchService {
	maxMB := int64(defaultMaxUploadMB)
	if c != nil && c.Http != nil && c.Http.MaxUploadMb > 0 {
		maxMB = int64(c.Http.MaxUploadMb)
	}
	return &ResearchService{
		uc:        uc,
		maxUpload: maxMB << 20,
		log:       log.NewHelper(logger),
	}
}

// RegisterHTTPServer 注册 API 路由
func (s *ResearchService) RegisterHTTPServer(srv *khttp.Server) {
	r := srv.Route("/")
	r.POST("/api/v1/documents/url", s.analyzeURLHandler)
	r.POST("/api/v1/documents/upload", s.uploadPaperHandler)
	r.POST("/api/v1/ideas/scout", s.scoutIdeaHandler)
}

func (s *ResearchService) AnalyzeURL(ctx context.Context, req *AnalyzeURLRequest) (*AnalysisReply, error) {
	a, err := s.uc.AnalyzeDocument(ctx, engine.DocumentSource{Kind: engine.SourceURL, Name: strings.TrimSpace(req.URL)})
	if err != nil {
		return nil, err
	}
	return toReply(a), nil
}

func (s *ResearchService) ScoutIdea(ctx context.Context, req *ScoutIdeaRequest) (*AnalysisReply, error) {
	a, err := s.uc.ScoutIdea(ctx, req.Idea)
	if err != nil {
		return nil, err
	}
	return toReply(a), nil
}

func (s *ResearchService) analyzeURLHandler(ctx khttp.Context) error {
	var in AnalyzeURLRequest
	if err := ctx.Bind(&in); err != nil {
		return err
	}
	khttp.SetOperation(ctx, OperationAnalyzeURL)
	h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.AnalyzeURL(ctx, req.(*AnalyzeURLRequest))
	})
	out, err := h(ctx, &in)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

// uploadPaperHandler 只取上传文件的文件名，不读取内容
func (s *ResearchService) uploadPaperHandler(ctx khttp.Context) error {
	req := ctx.Request()
	req.Body = http.MaxBytesReader(ctx.Response(), req.Body, s.maxUpload)

	var in uploadRequest
	if err := req.ParseMultipartForm(multipartMemory); err != nil && err != http.ErrNotMultipart {
		return errors.BadRequest("INVALID_UPLOAD", err.Error())
	}
	if req.MultipartForm != nil {
		defer req.MultipartForm.RemoveAll()
		if files := req.MultipartForm.File[uploadFormField]; len(files) > 0 {
			in.FileName = files[0].Filename
			s.log.WithContext(ctx).Debugf("upload %q (%d bytes)", files[0].Filename, files[0].Size)
		}
	}

	khttp.SetOperation(ctx, OperationUploadPaper)
	h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
		in := req.(*uploadRequest)
		a, err := s.uc.AnalyzeDocument(ctx, engine.DocumentSource{Kind: engine.SourceFile, Name: in.FileName})
		if err != nil {
			return nil, err
		}
		return toReply(a), nil
	})
	out, err := h(ctx, &in)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

func (s *ResearchService) scoutIdeaHandler(ctx khttp.Context) error {
	var in ScoutIdeaRequest
	if err := ctx.Bind(&in); err != nil {
		return err
	}
	khttp.SetOperation(ctx, OperationScoutIdea)
	h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
		return s.ScoutIdea(ctx, req.(*ScoutIdeaRequest))
	})
	out, err := h(ctx, &in)
	if err != nil {
		return err
	}
	return ctx.Result(http.StatusOK, out)
}

func toReply(a *domain.Analysis) *AnalysisReply {
	refs := make([]Reference, 0, len(a.References))
	for _, r := range a.References {
		refs = append(refs, Reference{
			Kind:    r.Kind,
			Label:   r.Label,
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
		})
	}
	return &AnalysisReply{
		RequestID:  a.RequestID,
		Workflow:   a.Workflow,
		Subject:    a.Subject,
		Status:     a.Status,
		Report:     a.Report,
		References: refs,
	}
}
