package conf

type Bootstrap struct {
	Server   *Server
	Analyzer *Analyzer
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
	// MaxUploadMb 上传文件大小上限，只读取文件名
	MaxUploadMb int32 `json:"max_upload_mb"`
}

type Analyzer struct {
	Llm    *LLM    `json:"llm"`
	Search *Search `json:"search"`
	Arxiv  *Arxiv  `json:"arxiv"`
	Log    *Log    `json:"log"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
	Referer string `json:"referer"`
	Title   string `json:"title"`
}

type Search struct {
	Provider         string   `json:"provider"`
	Tavily           *Tavily  `json:"tavily"`
	Searxng          *SearXNG `json:"searxng"`
	EnrichMinContent int32    `json:"enrich_min_content"`
	EnrichTimeout    string   `json:"enrich_timeout"`
}

type Tavily struct {
	ApiKey      string `json:"api_key"`
	BaseUrl     string `json:"base_url"`
	SearchDepth string `json:"search_depth"`
	MaxResults  int32  `json:"max_results"`
	Timeout     string `json:"timeout"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Arxiv struct {
	BaseUrl     string `json:"base_url"`
	Timeout     string `json:"timeout"`
	MaxResults  int32  `json:"max_results"`
	MaxQueryLen int32  `json:"max_query_len"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}
