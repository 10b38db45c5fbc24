package server

import (
	"github.com/google/wire"

	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/display/internal/service"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/display/internal/usecase"
	"github.com/RimshaAbbas/Research-Gap-Analyzer/app/gap_analyzer/pkg/engine"
)

// ProviderSet 是展示服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewAnalyzerEngine,
	wire.Bind(new(usecase.Analyzer), new(*engine.Engine)),

	// UseCase providers
	usecase.NewResearchUseCase,

	// Service providers
	service.NewResearchService,
)
