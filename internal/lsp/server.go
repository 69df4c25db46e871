// Package lsp serves propslint diagnostics over the Language Server
// Protocol. Documents are re-parsed in full whenever their text changes;
// a save or re-open with unchanged text republishes the last diagnostics.
package lsp

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	// Registers the commonlog backend used by glsp's own logging.
	_ "github.com/tliron/commonlog/simple"

	"github.com/yaklabco/propslint/internal/logging"
	"github.com/yaklabco/propslint/pkg/config"
	"github.com/yaklabco/propslint/pkg/lint"
	"github.com/yaklabco/propslint/pkg/parser/cfgprops"
	"github.com/yaklabco/propslint/pkg/parser/diag"
)

const serverName = "propslint"

// ConfigLoader returns the configuration for a workspace rooted at dir.
type ConfigLoader func(ctx context.Context, dir string) (*config.Config, error)

// Options configure a Server.
type Options struct {
	// Version is reported to the client in the initialize response.
	Version string

	// Config is used until the client names a workspace root.
	Config *config.Config

	// LoadConfig, if set, reloads Config for the workspace root.
	LoadConfig ConfigLoader

	// Registry holds the rules to run. Defaults to lint.DefaultRegistry.
	Registry *lint.Registry

	// Debug turns on glsp's protocol logging.
	Debug bool
}

// Server is a stdio language server. It is safe for concurrent use.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	opts    Options
	ctx     context.Context

	mu       sync.Mutex
	cfg      *config.Config
	strategy diag.Strategy
	engine   *lint.Engine
	docs     map[protocol.DocumentUri]*document
}

// New creates a server. ctx carries the logger and bounds every analysis.
func New(ctx context.Context, opts Options) (*Server, error) {
	if opts.Registry == nil {
		opts.Registry = lint.DefaultRegistry
	}
	if opts.Config == nil {
		opts.Config = config.NewConfig()
	}

	ls := &Server{
		opts: opts,
		ctx:  ctx,
		docs: make(map[protocol.DocumentUri]*document),
	}
	if err := ls.setConfig(opts.Config); err != nil {
		return nil, err
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidSave:   ls.textDocumentDidSave,
		TextDocumentDidClose:  ls.textDocumentDidClose,
	}

	ls.server = server.NewServer(&ls.handler, serverName, opts.Debug)
	ls.server.Context = ctx

	return ls, nil
}

// RunStdio serves the protocol on stdin/stdout until the client exits.
func (ls *Server) RunStdio() error {
	verbosity := 0
	if ls.opts.Debug {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	logging.FromContext(ls.ctx).Debug("language server starting", logging.FieldVersion, ls.opts.Version)

	if err := ls.server.RunStdio(); err != nil {
		return fmt.Errorf("language server: %w", err)
	}
	return nil
}

// setConfig swaps the configuration. Open documents keep their parsers;
// the next analysis uses the new strategy and rules.
func (ls *Server) setConfig(cfg *config.Config) error {
	strategy, err := diag.ParseStrategy(cfg.Strategy)
	if err != nil {
		return err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.cfg = cfg
	ls.strategy = strategy
	ls.engine = lint.NewEngine(cfgprops.NewFileParser(cfgprops.Options{Strategy: strategy}), ls.opts.Registry)
	for _, doc := range ls.docs {
		doc.parser = cfgprops.New(cfgprops.Options{Strategy: strategy})
		doc.forget()
	}

	return nil
}

func (ls *Server) logger() *log.Logger {
	return logging.FromContext(ls.ctx)
}

func (ls *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if root := workspaceRoot(params); root != "" && ls.opts.LoadConfig != nil {
		cfg, err := ls.opts.LoadConfig(ls.ctx, root)
		if err != nil {
			ls.logger().Warn("keeping startup configuration", logging.FieldWorkingDir, root, logging.FieldError, err)
		} else if err := ls.setConfig(cfg); err != nil {
			ls.logger().Warn("invalid workspace configuration", logging.FieldWorkingDir, root, logging.FieldError, err)
		}
	}

	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindIncremental),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &ls.opts.Version,
		},
	}, nil
}

func (ls *Server) initialized(*glsp.Context, *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(*glsp.Context) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	for uri, doc := range ls.docs {
		doc.parser.Reset()
		delete(ls.docs, uri)
	}

	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	return ls.update(ctx, item.URI, item.Version, func(string) string { return item.Text })
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	return ls.update(ctx, params.TextDocument.URI, params.TextDocument.Version, func(text string) string {
		return applyChanges(text, params.ContentChanges)
	})
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI

	ls.mu.Lock()
	doc, ok := ls.docs[uri]
	version := protocol.Integer(0)
	if ok {
		version = doc.version
	}
	ls.mu.Unlock()

	return ls.update(ctx, uri, version, func(text string) string {
		if params.Text != nil {
			return *params.Text
		}
		return text
	})
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI

	ls.mu.Lock()
	if doc, ok := ls.docs[uri]; ok {
		doc.parser.Reset()
		delete(ls.docs, uri)
	}
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

// update edits the stored text of uri, re-analyses it and publishes the
// diagnostics.
func (ls *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, version protocol.Integer, edit func(string) string) error {
	diagnostics, err := ls.analyze(uri, version, edit)
	if err != nil {
		ls.logger().Error("analysis failed", logging.FieldURI, uri, logging.FieldError, err)
		return nil
	}

	published := protocol.UInteger(version)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Version:     &published,
		Diagnostics: diagnostics,
	})
	return nil
}

// analyze applies edit to the document and lints the result.
func (ls *Server) analyze(
	uri protocol.DocumentUri,
	version protocol.Integer,
	edit func(string) string,
) ([]protocol.Diagnostic, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	doc, ok := ls.docs[uri]
	if !ok {
		doc = &document{parser: cfgprops.New(cfgprops.Options{Strategy: ls.strategy})}
		ls.docs[uri] = doc
	}

	text := edit(doc.text)
	doc.version = version
	if doc.current(text) {
		return doc.diagnostics, nil
	}

	doc.text = text
	doc.forget()

	res, err := doc.parser.Parse(ls.ctx, doc.text)
	if err != nil {
		return nil, err
	}

	snapshot, err := res.Snapshot(uriToPath(uri))
	if err != nil {
		return nil, err
	}

	fileResult, err := ls.engine.LintSnapshot(ls.ctx, snapshot, ls.cfg)
	if err != nil {
		return nil, fmt.Errorf("lint %s: %w", uri, err)
	}

	for ruleID, ruleErr := range fileResult.RuleErrors {
		ls.logger().Warn("rule failed", logging.FieldURI, uri, logging.FieldRule, ruleID, logging.FieldError, ruleErr)
	}

	doc.result = res
	doc.diagnostics = toProtocol(snapshot, fileResult.Diagnostics)

	return doc.diagnostics, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
