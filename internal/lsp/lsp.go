// Package lsp exposes a minimal Language Server Protocol surface over the
// declaration parser: exactly one capability, textDocument/documentSymbol,
// built directly from a parsed model.Package tree. Grounded on dhamidi-sai's
// own glsp-based server (java/codebase/lsp.go), trimmed to the single
// capability this repository's parser can back honestly.
package lsp

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/schmittjoh/pdepend/pkg/model"
	"github.com/schmittjoh/pdepend/pkg/parser"
	"github.com/schmittjoh/pdepend/pkg/token"
)

const serverName = "pdepend-lsp"

// Server is a documentSymbol-only language server: it reparses a document
// into a fresh Builder on every open and change and answers symbol
// requests from that Builder's tree, trading incremental reanalysis for
// simplicity.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	docs map[string]*model.DefaultBuilder
}

// NewServer returns a Server ready to RunStdio.
func NewServer(version string) *Server {
	commonlog.Configure(1, nil)

	s := &Server{version: version, docs: make(map[string]*model.DefaultBuilder)}
	s.handler = protocol.Handler{
		Initialize:              s.initialize,
		Shutdown:                s.shutdown,
		TextDocumentDidOpen:     s.didOpen,
		TextDocumentDidChange:   s.didChange,
		TextDocumentDidClose:    s.didClose,
		TextDocumentDocumentSymbol: s.documentSymbol,
	}
	s.server = server.NewServer(&s.handler, serverName, false)
	return s
}

// RunStdio blocks serving the protocol over stdin/stdout.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.reparse(params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.reparse(params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	delete(s.docs, params.TextDocument.URI)
	return nil
}

func (s *Server) reparse(uri, text string) {
	path, err := uriToPath(uri)
	if err != nil {
		path = uri
	}
	builder := model.NewDefaultBuilder()
	p := parser.New(builder)
	_ = p.Parse(token.NewTokenizer(path, text))
	s.docs[uri] = builder
}

// documentSymbol answers textDocument/documentSymbol with every type
// (class/interface), its methods and properties, and every top-level
// function the last reparse of this document produced.
func (s *Server) documentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	builder, ok := s.docs[params.TextDocument.URI]
	if !ok {
		return nil, nil
	}

	var symbols []any
	for _, name := range builder.TypeNames() {
		t, ok := builder.Type(name)
		if !ok {
			continue
		}
		symbols = append(symbols, typeSymbol(t))
	}
	for _, pkg := range builder.Packages() {
		for _, fn := range pkg.Functions {
			symbols = append(symbols, callableSymbol(fn, protocol.SymbolKindFunction))
		}
	}
	return symbols, nil
}

func typeSymbol(t *model.Type) protocol.DocumentSymbol {
	kind := protocol.SymbolKindClass
	if t.IsInterface {
		kind = protocol.SymbolKindInterface
	}
	rng := lineRange(t.StartLine, t.EndLine)

	var children []protocol.DocumentSymbol
	for _, m := range t.Methods {
		children = append(children, callableSymbol(m, protocol.SymbolKindMethod))
	}
	for _, p := range t.Properties {
		children = append(children, protocol.DocumentSymbol{
			Name:           p.Name,
			Kind:           protocol.SymbolKindField,
			Range:          lineRange(p.StartLine, p.EndLine),
			SelectionRange: lineRange(p.StartLine, p.StartLine),
		})
	}

	return protocol.DocumentSymbol{
		Name:           t.Name,
		Detail:         strPtr(strcase.ToCamel(kindLabel(kind))),
		Kind:           kind,
		Range:          rng,
		SelectionRange: rng,
		Children:       children,
	}
}

func callableSymbol(c *model.Callable, kind protocol.SymbolKind) protocol.DocumentSymbol {
	rng := lineRange(c.StartLine, c.EndLine)
	return protocol.DocumentSymbol{
		Name:           c.Name,
		Kind:           kind,
		Range:          rng,
		SelectionRange: rng,
	}
}

func kindLabel(kind protocol.SymbolKind) string {
	switch kind {
	case protocol.SymbolKindInterface:
		return "interface"
	default:
		return "class"
	}
}

func lineRange(start, end int) protocol.Range {
	if end < start {
		end = start
	}
	return protocol.Range{
		Start: protocol.Position{Line: zeroBased(start)},
		End:   protocol.Position{Line: zeroBased(end)},
	}
}

func zeroBased(line int) uint32 {
	if line <= 0 {
		return 0
	}
	return uint32(line - 1)
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool { return &b }
func strPtr(s string) *string { return &s }
func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind { return &k }
