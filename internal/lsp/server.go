package lsp

import (
	"fmt"

	"github.com/jsvensson/recolor"
	"github.com/jsvensson/recolor/internal/palette"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const serverName = "recolor-lsp"

var log = commonlog.GetLogger("recolor.lsp")

// target is the palette stylesheet colors are matched against.
type target struct {
	scheme  *recolor.Scheme
	matcher *palette.Matcher
	inv     *palette.Inversion
}

func newTarget(s *recolor.Scheme) (*target, error) {
	m, err := palette.New(s.Target, s.Metric)
	if err != nil {
		return nil, err
	}
	t := &target{scheme: s, matcher: m}
	if len(s.Invert) > 0 {
		t.inv = palette.NewInversion(s.Invert)
	}
	return t, nil
}

func (t *target) inversion() *palette.Inversion {
	return t.inv
}

// name returns the palette entry name at index i, or its hex form if the
// entry is unnamed.
func (t *target) name(i int) string {
	if i >= 0 && i < len(t.scheme.Names) {
		return t.scheme.Names[i]
	}
	if i >= 0 && i < len(t.scheme.Target) {
		return t.scheme.Target[i].Hex()
	}
	return ""
}

func (t *target) label() string {
	if t.scheme.Meta.Name != "" {
		return t.scheme.Meta.Name
	}
	return "target"
}

type Server struct {
	handler protocol.Handler
	docs    *DocumentStore
	target  *target
	version string
}

// NewServer creates a server matching stylesheet colors against the scheme
// found by recolor.Load(scheme).
func NewServer(version, scheme string) (*Server, error) {
	s, err := recolor.Load(scheme)
	if err != nil {
		return nil, err
	}
	t, err := newTarget(s)
	if err != nil {
		return nil, fmt.Errorf("loading scheme %s: %w", scheme, err)
	}
	return newServer(version, t), nil
}

func newServer(version string, t *target) *Server {
	s := &Server{
		docs:    NewDocumentStore(),
		target:  t,
		version: version,
	}

	s.handler = protocol.Handler{
		Initialize:                    s.initialize,
		Initialized:                   s.initialized,
		Shutdown:                      s.shutdown,
		SetTrace:                      s.setTrace,
		TextDocumentDidOpen:           s.textDocumentDidOpen,
		TextDocumentDidChange:         s.textDocumentDidChange,
		TextDocumentDidClose:          s.textDocumentDidClose,
		TextDocumentHover:             s.textDocumentHover,
		TextDocumentCompletion:        s.textDocumentCompletion,
		TextDocumentColor:             s.textDocumentDocumentColor,
		TextDocumentColorPresentation: s.textDocumentColorPresentation,
		TextDocumentCodeAction:        s.textDocumentCodeAction,
		TextDocumentFormatting:        s.textDocumentFormatting,
	}

	return s
}

func (s *Server) Run() error {
	commonlog.Configure(1, nil)
	log.Infof("serving %d colors from %s", len(s.target.scheme.Target), s.target.label())
	srv := server.NewServer(&s.handler, serverName, false)
	return srv.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"#", ":", "."},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.Open(uri, params.TextDocument.Text, Analyze(uri, params.TextDocument.Text, s.target))
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	for _, change := range params.ContentChanges {
		if c, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.docs.Update(uri, c.Text, Analyze(uri, c.Text, s.target))
		}
	}
	s.publishDiagnostics(ctx, uri)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.Close(uri)
	if ctx != nil && ctx.Notify != nil {
		ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: []protocol.Diagnostic{},
		})
	}
	return nil
}

func (s *Server) publishDiagnostics(ctx *glsp.Context, uri string) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	diags := []protocol.Diagnostic{}
	if result := s.getResult(uri); result != nil && result.Diagnostics != nil {
		diags = result.Diagnostics
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

// getResult returns the analysis of an open document, or nil.
func (s *Server) getResult(uri string) *AnalysisResult {
	doc, ok := s.docs.Get(uri)
	if !ok {
		return nil
	}
	return doc.Result
}
