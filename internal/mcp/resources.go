// resources.go implements MCP resources for reading casks by identifier.
//
// Resources give clients read-only access to a cask without a tool call,
// for loading context before acting on a search result.
//
// Design: URIs follow caskfind://casks/{identifier}, where the identifier is
// the catalogue listing form: "firefox" or "caskroom/versions/firefox-beta".
// Resolution matches the info command, so a bare token in one non-default
// tap resolves and an ambiguous one is an error.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jpl-au/caskfind/internal/store"
)

const caskURIPrefix = "caskfind://casks/"

var (
	// ErrInvalidURI indicates a malformed resource URI.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrEmptyIdentifier indicates a URI without a cask identifier.
	ErrEmptyIdentifier = errors.New("empty cask identifier")
)

func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResourceTemplate(
		mcp.NewResourceTemplate(
			caskURIPrefix+"{+identifier}",
			"Cask",
			mcp.WithTemplateDescription("Read a cask's details by identifier"),
			mcp.WithTemplateMIMEType("application/json"),
		),
		h.readCask,
	)
}

// readCask handles caskfind://casks/{identifier} resource requests.
func (h *handlers) readCask(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ext, res := h.context()
	if res != nil {
		return nil, errors.New(ErrNotInitialised)
	}

	id, err := parseCaskURI(req.Params.URI)
	if err != nil {
		return nil, err
	}
	c, err := ext.Service().Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := store.MarshalJSON(c.ToJSON())
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// parseCaskURI extracts the identifier from a cask URI.
func parseCaskURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, caskURIPrefix)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}
	if rest == "" {
		return "", ErrEmptyIdentifier
	}
	return rest, nil
}
